package workload

import (
	"github.com/ajitpratap0/poolkit/pkg/fakepool"
	"github.com/ajitpratap0/poolkit/pkg/refpool"
)

// driver abstracts the handle operations a workload performs, so the same
// loop bodies can drive the real pool and the fakepool shim. H is the
// concrete handle type of the backing package.
type driver[H any] interface {
	// Construct builds a handle whose node carries the given key.
	Construct(key uint64) H
	// Clone returns a counted alias of the handle.
	Clone(h H) H
	// Mutate bumps the node's revision through the copy-on-write path,
	// detaching the handle if it is shared.
	Mutate(h *H)
	// Read returns the node's key.
	Read(h H) uint64
	// Release drops the handle.
	Release(h H)
	// Len reports the backing pool's current free-list size.
	Len() int
	// Stats reports the backing pool's usage counters.
	Stats() refpool.Stats
}

// poolDriver drives a real pool.
type poolDriver struct {
	pool *refpool.Pool[Node]
}

func (d *poolDriver) Construct(key uint64) refpool.Ref[Node] {
	ref := refpool.Default(d.pool)
	ref.Get().Key = key
	return ref
}

func (d *poolDriver) Clone(h refpool.Ref[Node]) refpool.Ref[Node] {
	return h.Clone()
}

func (d *poolDriver) Mutate(h *refpool.Ref[Node]) {
	refpool.MakeMut(d.pool, h).Revision++
}

func (d *poolDriver) Read(h refpool.Ref[Node]) uint64 {
	return h.Get().Key
}

func (d *poolDriver) Release(h refpool.Ref[Node]) {
	h.Release()
}

func (d *poolDriver) Len() int {
	return d.pool.Len()
}

func (d *poolDriver) Stats() refpool.Stats {
	return d.pool.Stats()
}

// fakeDriver drives the pass-through shim.
type fakeDriver struct {
	pool *fakepool.Pool[Node]
}

func (d *fakeDriver) Construct(key uint64) fakepool.Ref[Node] {
	ref := fakepool.Default(d.pool)
	ref.Get().Key = key
	return ref
}

func (d *fakeDriver) Clone(h fakepool.Ref[Node]) fakepool.Ref[Node] {
	return h.Clone()
}

func (d *fakeDriver) Mutate(h *fakepool.Ref[Node]) {
	fakepool.MakeMut(d.pool, h).Revision++
}

func (d *fakeDriver) Read(h fakepool.Ref[Node]) uint64 {
	return h.Get().Key
}

func (d *fakeDriver) Release(h fakepool.Ref[Node]) {
	h.Release()
}

func (d *fakeDriver) Len() int {
	return d.pool.Len()
}

func (d *fakeDriver) Stats() refpool.Stats {
	return d.pool.Stats()
}

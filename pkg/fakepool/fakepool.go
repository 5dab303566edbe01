// Package fakepool provides pass-through stand-ins for the refpool types.
//
// The Pool here holds no state and never recycles anything; handles are
// plain heap allocations with a real strong count. The API mirrors
// pkg/refpool exactly, so code written against one package compiles and
// behaves identically against the other, differing only in performance.
// Swap the import to turn pooling off.
//
// Unlike its real counterpart, this Pool reports its size and capacity as
// zero regardless of the value passed to its constructor, and it always
// reports itself full, consistent with those sizes. Code that might run on a
// fake pool should not assume the constructor argument has any effect.
package fakepool

import "sync/atomic"

// Pool is a stateless stand-in for refpool.Pool.
type Pool[T any] struct{}

// NewPool returns a fake pool. maxSize is ignored.
func NewPool[T any](maxSize int) *Pool[T] {
	return &Pool[T]{}
}

// NewSharedPool returns a fake pool. Handles are always safe for concurrent
// use here, since their counts are atomic regardless.
func NewSharedPool[T any](maxSize int) *Pool[T] {
	return &Pool[T]{}
}

// Cap always reports zero.
func (p *Pool[T]) Cap() int { return 0 }

// Len always reports zero.
func (p *Pool[T]) Len() int { return 0 }

// IsFull always reports true, consistent with a permanently empty free-list.
func (p *Pool[T]) IsFull() bool { return true }

// Fill does nothing.
func (p *Pool[T]) Fill() {}

// Filled does nothing and returns the pool.
func (p *Pool[T]) Filled() *Pool[T] { return p }

// String renders the pool the way an exhausted real pool would.
func (p *Pool[T]) String() string { return "FakePool[0/0]" }

// Cast returns a fake pool for the target type. There is no shared state and
// therefore no layout contract to enforce, so Cast never panics.
func Cast[B, A any](p *Pool[A]) *Pool[B] {
	return &Pool[B]{}
}

// cell is the heap allocation behind a fake handle. The count is atomic so
// the same shim serves both concurrency regimes.
type cell[T any] struct {
	refs  atomic.Int64
	value T
}

// Ref mirrors refpool.Ref over a plain heap allocation.
type Ref[T any] struct {
	cell *cell[T]
}

func newCell[T any]() *cell[T] {
	c := &cell[T]{}
	c.refs.Store(1)
	return c
}

// Default constructs a Ref holding the payload type's default value. The
// PoolDefault capability is honoured the same way the real pool honours it.
func Default[T any](p *Pool[T]) Ref[T] {
	c := newCell[T]()
	defaultInto(&c.value)
	return Ref[T]{cell: c}
}

// New constructs a Ref wrapping the given value.
func New[T any](p *Pool[T], value T) Ref[T] {
	c := newCell[T]()
	c.value = value
	return Ref[T]{cell: c}
}

// CloneFrom constructs a Ref holding a clone of *value.
func CloneFrom[T any](p *Pool[T], value *T) Ref[T] {
	c := newCell[T]()
	cloneInto(&c.value, value)
	return Ref[T]{cell: c}
}

// Cloned constructs a Ref holding a clone of another handle's payload.
func Cloned[T any](p *Pool[T], ref Ref[T]) Ref[T] {
	return CloneFrom(p, &ref.cell.value)
}

// Get returns a pointer to the payload.
func (r Ref[T]) Get() *T {
	return &r.cell.value
}

// Clone returns a new handle aliasing the same allocation.
func (r Ref[T]) Clone() Ref[T] {
	r.cell.refs.Add(1)
	return Ref[T]{cell: r.cell}
}

// Release drops this handle's claim. There is no pool to return to; the
// collector reclaims the allocation once the count reaches zero and no raw
// pointers remain.
func (r Ref[T]) Release() {
	if r.cell == nil {
		return
	}
	if r.cell.refs.Add(-1) == 0 {
		var zero T
		r.cell.value = zero
	}
}

// StrongCount returns the number of live handles on the allocation.
func (r Ref[T]) StrongCount() int {
	return int(r.cell.refs.Load())
}

// GetMut returns a mutable pointer to the payload if the handle is unique.
func (r *Ref[T]) GetMut() (*T, bool) {
	if r.cell.refs.Load() > 1 {
		return nil, false
	}
	return &r.cell.value, true
}

// MakeMut returns a mutable pointer to the payload, detaching into a fresh
// allocation first if the handle is shared.
func MakeMut[T any](p *Pool[T], r *Ref[T]) *T {
	if r.cell.refs.Load() > 1 {
		nc := newCell[T]()
		cloneInto(&nc.value, &r.cell.value)
		r.cell.refs.Add(-1)
		r.cell = nc
	}
	return &r.cell.value
}

// TryUnwrap consumes the handle and returns the payload by value if unique,
// leaving the handle intact and returning false otherwise.
func (r Ref[T]) TryUnwrap() (T, bool) {
	var zero T
	if r.cell.refs.Load() > 1 {
		return zero, false
	}
	value := r.cell.value
	r.cell.value = zero
	r.cell.refs.Store(0)
	return value, true
}

// UnwrapOrClone consumes the handle and returns the payload by value,
// cloning when the handle is shared.
func (r Ref[T]) UnwrapOrClone() T {
	if v, ok := r.TryUnwrap(); ok {
		return v
	}
	var out T
	cloneInto(&out, &r.cell.value)
	r.Release()
	return out
}

// PtrEqual reports whether two handles reference the identical allocation.
func PtrEqual[T any](a, b Ref[T]) bool {
	return a.cell == b.cell
}

// Box mirrors refpool.Box over a plain heap allocation.
type Box[T any] struct {
	cell *cell[T]
}

// DefaultBox constructs a Box holding the payload type's default value.
func DefaultBox[T any](p *Pool[T]) Box[T] {
	c := newCell[T]()
	defaultInto(&c.value)
	return Box[T]{cell: c}
}

// NewBox constructs a Box wrapping the given value.
func NewBox[T any](p *Pool[T], value T) Box[T] {
	c := newCell[T]()
	c.value = value
	return Box[T]{cell: c}
}

// CloneFromBox constructs a Box holding a clone of *value.
func CloneFromBox[T any](p *Pool[T], value *T) Box[T] {
	c := newCell[T]()
	cloneInto(&c.value, value)
	return Box[T]{cell: c}
}

// Get returns a pointer to the payload.
func (b Box[T]) Get() *T {
	return &b.cell.value
}

// Clone returns a Box holding a deep copy of the payload.
func (b Box[T]) Clone() Box[T] {
	var p Pool[T]
	return CloneFromBox(&p, &b.cell.value)
}

// Release scrubs the payload and drops the allocation for the collector.
func (b Box[T]) Release() {
	if b.cell == nil {
		return
	}
	var zero T
	b.cell.value = zero
	b.cell.refs.Store(0)
}

// BoxPtrEqual reports whether two Boxes reference the identical allocation.
func BoxPtrEqual[T any](a, b Box[T]) bool {
	return a.cell == b.cell
}

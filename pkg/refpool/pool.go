package refpool

import (
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Pool is a bounded free-list of slot-sized storage for values of type T,
// plus capacity bookkeeping. It is a factory for Ref and Box handles; values
// constructed through it are returned to the free-list when their last
// handle is released, up to the pool's capacity, and abandoned to the
// garbage collector past that.
//
// A *Pool is a shared handle: copy the pointer to share the pool. Pools
// built by NewPool must stay on one goroutine; pools built by NewSharedPool
// may be shared and used concurrently.
//
// Example:
//
//	pool := refpool.NewPool[uint64](1024)
//	ref := refpool.New(pool, 1337)
//	defer ref.Release()
type Pool[T any] struct {
	policy   backend[T]
	capacity int
	free     stack[*slot[T]]

	stats struct {
		reused    atomic.Int64
		fresh     atomic.Int64
		recycled  atomic.Int64
		discarded atomic.Int64
	}
}

// Stats is a snapshot of a pool's usage counters.
type Stats struct {
	// Reused counts constructions served from the free-list.
	Reused int64
	// Fresh counts constructions that had to allocate.
	Fresh int64
	// Recycled counts slots returned to the free-list.
	Recycled int64
	// Discarded counts slots dropped because the free-list was full.
	Discarded int64
}

// NewPool constructs a pool with the given maximum size for use on a single
// goroutine. Reference counting and the free-list carry no synchronisation;
// sharing the pool or its handles across goroutines is a logic error.
//
// A maxSize of zero builds a null pool: every construction allocates, every
// release discards, and Len reports zero forever. Callers can rely on this
// to write pool-enabled code that runs identically with pooling disabled,
// without reaching for a nil check.
func NewPool[T any](maxSize int) *Pool[T] {
	return newPool[T](local[T]{}, maxSize)
}

// NewSharedPool constructs a pool with the given maximum size that is safe
// for concurrent use. Reference counts are atomic and the free-list is
// lock-free. A maxSize of zero builds a null pool, as with NewPool.
func NewSharedPool[T any](maxSize int) *Pool[T] {
	return newPool[T](shared[T]{}, maxSize)
}

func newPool[T any](policy backend[T], maxSize int) *Pool[T] {
	p := &Pool[T]{policy: policy, capacity: maxSize}
	if maxSize > 0 {
		p.free = policy.newStack(maxSize)
	}
	return p
}

// Cap returns the maximum number of slots the pool will retain.
func (p *Pool[T]) Cap() int {
	if p == nil {
		return 0
	}
	return p.capacity
}

// Len returns the number of slots currently waiting on the free-list.
// For shared pools the value may be stale by the time it is observed.
func (p *Pool[T]) Len() int {
	if p == nil || p.free == nil {
		return 0
	}
	return p.free.len()
}

// IsFull reports whether the free-list has reached the pool's capacity.
// A null pool is always full, consistent with everything overflowing it.
func (p *Pool[T]) IsFull() bool {
	return p.Len() >= p.Cap()
}

// Fill pre-populates the free-list with freshly allocated slots until the
// pool is full. Useful to pre-warm a pool before a latency-sensitive phase.
// A null pool stays empty.
func (p *Pool[T]) Fill() {
	if p == nil || p.free == nil {
		return
	}
	for !p.IsFull() {
		if !p.free.push(&slot[T]{}) {
			return
		}
	}
}

// Filled fills the pool and returns it, so a warm pool can be built in one
// expression:
//
//	pool := refpool.NewPool[uint64](1024).Filled()
func (p *Pool[T]) Filled() *Pool[T] {
	p.Fill()
	return p
}

// Stats returns a snapshot of the pool's usage counters.
func (p *Pool[T]) Stats() Stats {
	if p == nil {
		return Stats{}
	}
	return Stats{
		Reused:    p.stats.reused.Load(),
		Fresh:     p.stats.fresh.Load(),
		Recycled:  p.stats.recycled.Load(),
		Discarded: p.stats.discarded.Load(),
	}
}

// String renders the pool as Pool[len/cap].
func (p *Pool[T]) String() string {
	return fmt.Sprintf("Pool[%d/%d]", p.Len(), p.Cap())
}

// Cast reinterprets a pool of A as a pool of B sharing the same free-list,
// so values of layout-compatible types can reuse each other's slots. A and B
// must have the same size, and A's alignment must be at least B's. Violating
// the layout contract is a programmer error and panics; there is no
// recoverable path.
func Cast[B, A any](p *Pool[A]) *Pool[B] {
	var a A
	var b B
	if unsafe.Sizeof(a) != unsafe.Sizeof(b) || unsafe.Alignof(a) < unsafe.Alignof(b) {
		panic(fmt.Sprintf(
			"refpool: cast between incompatible layouts: %d bytes %d align to %d bytes %d align",
			unsafe.Sizeof(a), unsafe.Alignof(a), unsafe.Sizeof(b), unsafe.Alignof(b),
		))
	}
	return (*Pool[B])(unsafe.Pointer(p))
}

// acquire hands out slot storage: recycled off the free-list when possible,
// freshly allocated otherwise. The payload of the returned slot is always
// zero-valued (see the storage invariant on slot).
func (p *Pool[T]) acquire() *slot[T] {
	if p != nil && p.free != nil {
		if s, ok := p.free.pop(); ok {
			p.stats.reused.Add(1)
			s.pool = p
			return s
		}
	}
	if p != nil {
		p.stats.fresh.Add(1)
	}
	return &slot[T]{pool: p}
}

// release takes back a slot whose last handle was dropped. The slot is
// scrubbed so the collector can reclaim anything the payload referenced,
// then pushed onto the free-list if there is room. Past capacity, or on a
// null pool, the slot is simply abandoned.
func (p *Pool[T]) release(s *slot[T]) {
	var zero T
	s.value = zero
	s.pool = nil
	s.refs = 0
	if p != nil && p.free != nil && !p.IsFull() && p.free.push(s) {
		p.stats.recycled.Add(1)
		return
	}
	if p != nil {
		p.stats.discarded.Add(1)
	}
}

package refpool

import "sync/atomic"

// backend is the concurrency policy a pool is constructed with. It selects
// the reference counter discipline and the free-list implementation so that
// the pool and handle logic is written once and specialised at construction,
// never branched on a mode flag in the hot path.
//
// Counter methods operate on the int64 embedded in each slot. decRef returns
// the count before the decrement; observing 1 means the caller dropped the
// last handle and owns the teardown.
type backend[T any] interface {
	newStack(capacity int) stack[*slot[T]]
	incRef(n *int64) int64
	decRef(n *int64) int64
	refCount(n *int64) int64
}

// local is the single-goroutine policy: plain arithmetic and a growable
// slice stack. A pool built on it must never cross a goroutine boundary.
type local[T any] struct{}

func (local[T]) newStack(capacity int) stack[*slot[T]] {
	return newSliceStack[*slot[T]](capacity)
}

func (local[T]) incRef(n *int64) int64 {
	*n++
	return *n
}

func (local[T]) decRef(n *int64) int64 {
	if *n == 0 {
		panic("refpool: release of an already released handle")
	}
	prev := *n
	*n--
	return prev
}

func (local[T]) refCount(n *int64) int64 {
	return *n
}

// shared is the thread-safe policy: atomic counters and a fixed-capacity
// lock-free stack. Go's atomic operations are sequentially consistent, which
// covers the required ordering: every write made by a releasing goroutine
// happens before whichever goroutine observes the count reach zero.
type shared[T any] struct{}

func (shared[T]) newStack(capacity int) stack[*slot[T]] {
	return newTreiberStack[slot[T]](capacity)
}

func (shared[T]) incRef(n *int64) int64 {
	return atomic.AddInt64(n, 1)
}

func (shared[T]) decRef(n *int64) int64 {
	return atomic.AddInt64(n, -1) + 1
}

func (shared[T]) refCount(n *int64) int64 {
	return atomic.LoadInt64(n)
}

package refpool

// Box is a single-owner handle to a pool-allocated value of T. It shares the
// slot layout with Ref but skips shared-ownership bookkeeping: exactly one
// Box exists per slot, mutable access needs no uniqueness check, and Release
// always recycles.
type Box[T any] struct {
	slot *slot[T]
}

// DefaultBox constructs a Box holding the payload type's default value,
// using the PoolDefault capability when T declares one.
func DefaultBox[T any](p *Pool[T]) Box[T] {
	s := p.acquire()
	defaultInto(&s.value)
	s.policy().incRef(&s.refs)
	return Box[T]{slot: s}
}

// NewBox constructs a Box wrapping the given value.
func NewBox[T any](p *Pool[T], value T) Box[T] {
	s := p.acquire()
	s.value = value
	s.policy().incRef(&s.refs)
	return Box[T]{slot: s}
}

// CloneFromBox constructs a Box holding a clone of *value, using the
// PoolClone capability when T declares one.
func CloneFromBox[T any](p *Pool[T], value *T) Box[T] {
	s := p.acquire()
	cloneInto(&s.value, value)
	s.policy().incRef(&s.refs)
	return Box[T]{slot: s}
}

// Get returns a pointer to the payload. The owner may mutate through it
// freely; no other handle can observe the slot.
func (b Box[T]) Get() *T {
	return &b.slot.value
}

// Clone allocates a new Box from the owning pool holding a clone of the
// payload. Unlike Ref.Clone this is a deep copy; two Boxes never share a
// slot.
func (b Box[T]) Clone() Box[T] {
	return CloneFromBox(b.slot.pool, &b.slot.value)
}

// Release scrubs the payload and returns the slot to the pool. Calling
// Release on the zero Box is a no-op; releasing the same Box twice is a
// logic error, and panics on pools built by NewPool. Without the count
// check a double release would push the slot onto the free-list twice and
// hand the same storage to two owners.
func (b Box[T]) Release() {
	s := b.slot
	if s == nil {
		return
	}
	if s.policy().decRef(&s.refs) != 1 {
		return
	}
	s.pool.release(s)
}

// BoxPtrEqual reports whether two Boxes reference the identical slot. Since
// a slot has exactly one Box, this is only ever true for copies of the same
// handle.
func BoxPtrEqual[T any](a, b Box[T]) bool {
	return a.slot == b.slot
}

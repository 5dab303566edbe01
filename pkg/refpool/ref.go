package refpool

// Ref is a reference-counted handle to a pool-allocated value of T. Cloning
// a Ref shares the underlying slot; releasing the last Ref returns the slot
// to its pool. The zero Ref references nothing and must not be used except
// to call Release, which is a no-op on it.
//
// A Ref is copied by value, but a plain copy does not participate in
// reference counting. Use Clone to create a counted alias and Release
// exactly once per counted handle.
type Ref[T any] struct {
	slot *slot[T]
}

// Default constructs a Ref holding the payload type's default value,
// using the PoolDefault capability when T declares one and the zero value
// otherwise.
//
//	pool := refpool.NewPool[uint64](256)
//	zero := refpool.Default(pool)
//	defer zero.Release()
func Default[T any](p *Pool[T]) Ref[T] {
	s := p.acquire()
	defaultInto(&s.value)
	s.policy().incRef(&s.refs)
	return Ref[T]{slot: s}
}

// New constructs a Ref wrapping the given value. The whole value is copied
// into pool-managed storage, which can be slower than Default for types with
// a cheap in-place initialiser.
func New[T any](p *Pool[T], value T) Ref[T] {
	s := p.acquire()
	s.value = value
	s.policy().incRef(&s.refs)
	return Ref[T]{slot: s}
}

// CloneFrom constructs a Ref holding a clone of *value, using the PoolClone
// capability when T declares one.
func CloneFrom[T any](p *Pool[T], value *T) Ref[T] {
	s := p.acquire()
	cloneInto(&s.value, value)
	s.policy().incRef(&s.refs)
	return Ref[T]{slot: s}
}

// Cloned constructs a Ref holding a clone of another handle's payload. The
// new handle references its own slot; the original is untouched.
func Cloned[T any](p *Pool[T], ref Ref[T]) Ref[T] {
	return CloneFrom(p, &ref.slot.value)
}

// Get returns a pointer to the payload. The pointer stays valid until the
// last handle on the slot is released; mutating through it while the slot is
// shared is visible to every other handle, so prefer GetMut or MakeMut for
// mutation.
func (r Ref[T]) Get() *T {
	return &r.slot.value
}

// Clone returns a new handle aliasing the same slot. O(1), never allocates.
func (r Ref[T]) Clone() Ref[T] {
	r.slot.policy().incRef(&r.slot.refs)
	return Ref[T]{slot: r.slot}
}

// Release drops this handle's claim on the slot. The handle that brings the
// count to zero scrubs the payload and returns the slot to the pool. Calling
// Release on the zero Ref is a no-op; releasing the same counted handle
// twice is a logic error.
func (r Ref[T]) Release() {
	s := r.slot
	if s == nil {
		return
	}
	if s.policy().decRef(&s.refs) != 1 {
		return
	}
	// Last handle out performs the teardown. For shared pools the atomic
	// decrement is the synchronisation point making every prior payload
	// access visible here.
	s.pool.release(s)
}

// StrongCount returns the number of live handles referencing the slot.
func (r Ref[T]) StrongCount() int {
	return int(r.slot.policy().refCount(&r.slot.refs))
}

// GetMut returns a mutable pointer to the payload if this handle is the only
// one referencing the slot, and false otherwise. It never clones.
func (r *Ref[T]) GetMut() (*T, bool) {
	s := r.slot
	if s.shared() {
		return nil, false
	}
	return &s.value, true
}

// MakeMut returns a mutable pointer to the payload, detaching the handle
// first if the slot is shared: the payload is cloned into a slot acquired
// from p, the handle is rebound to the new slot, and this handle's claim on
// the old slot is dropped. Other handles never observe their value change
// through this call. O(1) when already unique, one clone otherwise.
func MakeMut[T any](p *Pool[T], r *Ref[T]) *T {
	s := r.slot
	if s.shared() {
		ns := p.acquire()
		cloneInto(&ns.value, &s.value)
		ns.policy().incRef(&ns.refs)
		if s.policy().decRef(&s.refs) == 1 {
			// Every other holder vanished between the shared check and the
			// decrement; the old slot is ours to recycle.
			s.pool.release(s)
		}
		r.slot = ns
	}
	return &r.slot.value
}

// TryUnwrap consumes the handle and returns the payload by value if this is
// the only handle on the slot. The slot is not returned to the pool; the
// caller owns the bare value from here on. If the slot is shared, TryUnwrap
// returns false and the handle remains valid.
func (r Ref[T]) TryUnwrap() (T, bool) {
	s := r.slot
	var zero T
	if s.shared() {
		return zero, false
	}
	value := s.value
	s.value = zero
	s.pool = nil
	s.refs = 0
	return value, true
}

// UnwrapOrClone consumes the handle and returns the payload by value in all
// cases: unwrapped when the handle is unique, cloned otherwise. As with
// TryUnwrap, the returned value is no longer pool-managed.
func (r Ref[T]) UnwrapOrClone() T {
	if v, ok := r.TryUnwrap(); ok {
		return v
	}
	var out T
	cloneInto(&out, &r.slot.value)
	r.Release()
	return out
}

// PtrEqual reports whether two handles reference the identical slot.
func PtrEqual[T any](a, b Ref[T]) bool {
	return a.slot == b.slot
}

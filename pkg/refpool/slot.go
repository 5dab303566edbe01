package refpool

// slot is the allocation unit: the reference count, a back-reference to the
// owning pool, and the payload, colocated in one allocation so recycling the
// slot recycles all three.
//
// Storage invariant: a slot that sits on a free-list always has a zero
// payload, a nil pool field and a zero count. Fresh slots are zeroed by the
// allocator, released slots are scrubbed before they are pushed, and Fill
// pushes newly zeroed slots. Constructors may therefore treat acquired
// storage as zero-valued.
type slot[T any] struct {
	refs  int64
	pool  *Pool[T]
	value T
}

// policy resolves the concurrency policy governing this slot. A slot whose
// pool reference is a literal nil handle was never pooled and plain
// counting suffices.
func (s *slot[T]) policy() backend[T] {
	if s.pool == nil {
		return local[T]{}
	}
	return s.pool.policy
}

// shared reports whether more than one handle currently references the slot.
func (s *slot[T]) shared() bool {
	return s.policy().refCount(&s.refs) > 1
}

package refpool

// stack is the pool free-list: a LIFO collection of recycled slots.
//
// push reports whether the value was accepted. The slice-backed stack always
// accepts (its capacity is a size hint and the pool enforces the bound); the
// lock-free stack rejects once its fixed capacity is reached, at which point
// the rejected slot is abandoned to the collector.
type stack[V any] interface {
	push(v V) bool
	pop() (V, bool)
	len() int
}

// sliceStack is the unsynchronised free-list. Amortised O(1) push and pop,
// grows past its initial capacity if pushed beyond it.
type sliceStack[V any] struct {
	items []V
}

func newSliceStack[V any](capacity int) *sliceStack[V] {
	return &sliceStack[V]{items: make([]V, 0, capacity)}
}

func (s *sliceStack[V]) push(v V) bool {
	s.items = append(s.items, v)
	return true
}

func (s *sliceStack[V]) pop() (V, bool) {
	var zero V
	if len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	v := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return v, true
}

func (s *sliceStack[V]) len() int {
	return len(s.items)
}

package refpool

import (
	"runtime"
	"sync/atomic"
)

// treiberStack is the lock-free free-list for shared pools: a fixed-capacity
// array stack whose size counter is claimed by compare-and-swap. The
// capacity is set at construction to match the pool's configured capacity.
//
// Claiming an index through the size counter does not by itself publish the
// cell, so each cell is an atomic pointer: a push stores its value with a
// nil-to-value compare-and-swap and a pop takes it with a swap-to-nil. When
// a pop and a push race over the same index, each spins until the other's
// cell operation lands, so no slot is ever lost or handed out twice.
type treiberStack[E any] struct {
	size  atomic.Int64
	cells []atomic.Pointer[E]
}

func newTreiberStack[E any](capacity int) *treiberStack[E] {
	return &treiberStack[E]{cells: make([]atomic.Pointer[E], capacity)}
}

// push places v above the current top. Returns false when the stack is at
// capacity and the value was not stored.
func (s *treiberStack[E]) push(v *E) bool {
	for {
		n := s.size.Load()
		if n >= int64(len(s.cells)) {
			return false
		}
		if s.size.CompareAndSwap(n, n+1) {
			// Index n is claimed. A racing pop of this same index may
			// still be draining the cell, so wait for it to go nil.
			for !s.cells[n].CompareAndSwap(nil, v) {
				runtime.Gosched()
			}
			return true
		}
		runtime.Gosched()
	}
}

// pop removes and returns the value below the current top, or false when
// the stack is empty.
func (s *treiberStack[E]) pop() (*E, bool) {
	for {
		n := s.size.Load()
		if n == 0 {
			return nil, false
		}
		if s.size.CompareAndSwap(n, n-1) {
			// Index n-1 is claimed. The push that made it visible may not
			// have stored the cell yet, so spin until the value lands.
			for {
				if v := s.cells[n-1].Swap(nil); v != nil {
					return v, true
				}
				runtime.Gosched()
			}
		}
		runtime.Gosched()
	}
}

func (s *treiberStack[E]) len() int {
	return int(s.size.Load())
}

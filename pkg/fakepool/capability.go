package fakepool

import "github.com/ajitpratap0/poolkit/pkg/refpool"

// The capability contracts are shared with the real pool so that a payload
// type declares them once and behaves the same under either package.

// Stats always reports zero counters, matching the pool's permanently empty
// free-list. Present so a fake pool can stand in wherever pool statistics
// are scraped.
func (p *Pool[T]) Stats() refpool.Stats {
	return refpool.Stats{}
}

func defaultInto[T any](dst *T) {
	if d, ok := any(dst).(refpool.PoolDefault); ok {
		d.DefaultInPlace()
	}
}

func cloneInto[T any](dst, src *T) {
	if c, ok := any(src).(refpool.PoolClone[T]); ok {
		c.CloneInPlace(dst)
		return
	}
	*dst = *src
}

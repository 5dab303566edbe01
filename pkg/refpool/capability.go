package refpool

// PoolDefault is implemented by payload types that want to initialise
// recycled slot storage in place. DefaultInPlace is called on a pointer to
// zero-valued storage and must leave the value observably identical to the
// type's ordinary default construction, with no field left stale.
//
// Types that do not implement PoolDefault fall back to the zero value, which
// is already in place: the pool hands out zeroed storage by construction,
// both for fresh allocations and for recycled slots.
type PoolDefault interface {
	DefaultInPlace()
}

// PoolClone is implemented by payload types that need more than assignment
// to be duplicated, typically because they own slices or maps that must not
// be shared between handles. CloneInPlace writes a clone of the receiver
// into dst, which holds zero-valued storage, and must produce a value
// observably identical to the type's ordinary clone operation.
//
// Types that do not implement PoolClone are cloned by plain assignment,
// which is the ordinary clone for value types in Go.
type PoolClone[T any] interface {
	CloneInPlace(dst *T)
}

// cloneInto duplicates *src into *dst using the clone capability when the
// payload type declares one.
func cloneInto[T any](dst, src *T) {
	if c, ok := any(src).(PoolClone[T]); ok {
		c.CloneInPlace(dst)
		return
	}
	*dst = *src
}

// defaultInto initialises *dst using the default capability when the payload
// type declares one. dst always points at zero-valued storage, so there is
// nothing to do for the fallback.
func defaultInto[T any](dst *T) {
	if d, ok := any(dst).(PoolDefault); ok {
		d.DefaultInPlace()
	}
}

package refpool

import "unsafe"

// payloadOffset is the offset of the payload within a slot allocation,
// used to walk from a raw payload pointer back to its slot header.
func payloadOffset[T any]() uintptr {
	var probe slot[T]
	return unsafe.Offsetof(probe.value)
}

// IntoRaw consumes the handle and returns a raw pointer to the payload, for
// storage in foreign structures that cannot hold a Ref. The slot's count is
// unchanged; the pointer carries the claim. The only valid way to release
// that claim is to rebuild the handle with FromRaw.
func IntoRaw[T any](r Ref[T]) *T {
	return &r.slot.value
}

// FromRaw rebuilds a Ref from a pointer previously produced by IntoRaw on a
// handle of the same type. Passing any other pointer corrupts the slot
// bookkeeping; there is no way to detect it at runtime.
func FromRaw[T any](ptr *T) Ref[T] {
	base := unsafe.Add(unsafe.Pointer(ptr), -int(payloadOffset[T]()))
	return Ref[T]{slot: (*slot[T])(base)}
}

// BoxIntoRaw consumes the Box and returns a raw pointer to the payload.
// The counterpart of IntoRaw for exclusive handles.
func BoxIntoRaw[T any](b Box[T]) *T {
	return &b.slot.value
}

// BoxFromRaw rebuilds a Box from a pointer previously produced by
// BoxIntoRaw. The same contract as FromRaw applies.
func BoxFromRaw[T any](ptr *T) Box[T] {
	base := unsafe.Add(unsafe.Pointer(ptr), -int(payloadOffset[T]()))
	return Box[T]{slot: (*slot[T])(base)}
}

// Package refpool provides fixed-capacity pooled allocation for
// reference-counted values of a single type.
//
// A Pool keeps a bounded free-list of slot-sized storage. Handles built on
// top of it (the shared Ref and the exclusive Box) return their slot to the
// free-list when the last holder releases it, so workloads that churn
// through many short-lived values of the same type skip the allocator and
// reduce garbage collection pressure.
//
// The package provides:
//   - Generic type-safe pools with Pool[T], created by NewPool (single
//     goroutine) or NewSharedPool (safe for concurrent use)
//   - Ref[T], a reference-counted handle with copy-on-write mutation
//   - Box[T], a single-owner handle over the same slot layout
//   - Capability interfaces (PoolDefault, PoolClone) that let payload types
//     control how recycled storage is initialised
//   - Usage statistics for monitoring recycle efficiency
//
// Example usage:
//
//	pool := refpool.NewPool[int](1024)
//	ref := refpool.New(pool, 31337)
//	defer ref.Release()
//
//	other := ref.Clone()
//	defer other.Release()
//
//	fmt.Println(*ref.Get()) // 31337
//
// A pool constructed with capacity zero never recycles anything and behaves
// exactly like plain heap allocation. This makes it a useful null value:
// code written against a Pool works identically whether pooling is enabled
// or not. The sibling package fakepool offers the same property with an
// identical API and zero pool state.
//
// Handles are released explicitly. Releasing a handle twice, or using it
// after release, is a logic error, not a recoverable condition.
package refpool

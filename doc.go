// Package poolkit provides fixed-capacity object pooling with
// reference-counted handles.
//
// A pool hands out slot storage for values of one type and takes it back
// when the last handle is released, bounding how much recycled storage the
// process retains. Handles come in two flavours: Ref, a reference-counted
// shared handle with copy-on-write mutation, and Box, a single-owner handle
// with direct mutable access.
//
// # Packages
//
//   - pkg/refpool: the pool and its handles, in single-goroutine and
//     concurrent variants selected at construction.
//   - pkg/fakepool: pass-through stand-ins with the same API and no pooling,
//     for measuring whether pooling pays off.
//   - pkg/metrics: a Prometheus collector over pool statistics.
//   - internal/workload, cmd/poolbench: the benchmark tool driving
//     allocation workloads against both implementations.
//
// # Quick start
//
//	pool := refpool.NewPool[Node](4096).Filled()
//
//	ref := refpool.New(pool, Node{Key: 1})
//	defer ref.Release()
//
//	alias := ref.Clone()
//	*refpool.MakeMut(pool, &alias) = Node{Key: 2} // detaches, ref unchanged
//	alias.Release()
//
// Pools built with NewPool must stay on one goroutine; NewSharedPool builds
// a pool whose handles may cross goroutines, backed by atomic counts and a
// lock-free free-list.
package poolkit

// Package refpool provides example usage of pooled reference-counted
// handles.
package refpool_test

import (
	"fmt"

	"github.com/ajitpratap0/poolkit/pkg/refpool"
)

// Example demonstrates the basic allocate, share and release cycle.
func Example() {
	pool := refpool.NewPool[uint64](256)

	ref := refpool.New(pool, uint64(1337))
	defer ref.Release()

	alias := ref.Clone()
	fmt.Printf("value: %d, handles: %d\n", *alias.Get(), alias.StrongCount())
	alias.Release()

	// Output:
	// value: 1337, handles: 2
}

// ExamplePool_Fill shows pre-warming a pool before a latency-sensitive
// phase.
func ExamplePool_Fill() {
	pool := refpool.NewPool[uint64](128)
	pool.Fill()

	fmt.Println(pool)

	// Output:
	// Pool[128/128]
}

// ExampleMakeMut demonstrates copy-on-write mutation of a shared handle.
func ExampleMakeMut() {
	pool := refpool.NewPool[uint64](64)

	original := refpool.New(pool, uint64(10))
	derived := original.Clone()

	// The write detaches derived; original keeps its value.
	*refpool.MakeMut(pool, &derived) = 99

	fmt.Printf("original: %d\n", *original.Get())
	fmt.Printf("derived: %d\n", *derived.Get())

	derived.Release()
	original.Release()

	// Output:
	// original: 10
	// derived: 99
}

// ExampleNewSharedPool shows a pool whose handles may cross goroutines.
func ExampleNewSharedPool() {
	pool := refpool.NewSharedPool[string](64)

	ref := refpool.New(pool, "hello")
	done := make(chan struct{})
	go func() {
		defer close(done)
		c := ref.Clone()
		fmt.Println(*c.Get())
		c.Release()
	}()
	<-done
	ref.Release()

	// Output:
	// hello
}

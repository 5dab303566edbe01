// Package workload drives allocation workloads against a pool for the
// poolbench tool: churn (allocate and release), cow (clone and detach) and
// fanout (share handles across goroutines). Each workload runs against
// either the real pool or the fakepool shim, so the two can be compared
// under identical load.
package workload

// Node is the payload driven through pools. It is shaped like a node of a
// persistent data structure, the workload this kind of pool exists for: a
// small fixed header plus an owned slice that makes cloning non-trivial.
type Node struct {
	Key      uint64
	Revision uint64
	Children []uint64
}

// CloneInPlace implements the pool clone capability. The children slice is
// owned by the node, so a detached copy must not share its backing array.
func (n *Node) CloneInPlace(dst *Node) {
	dst.Key = n.Key
	dst.Revision = n.Revision
	dst.Children = append(dst.Children[:0], n.Children...)
}


package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajitpratap0/poolkit/pkg/refpool"
)

func TestNodeCloneInPlace(t *testing.T) {
	src := Node{Key: 1, Revision: 2, Children: []uint64{10, 20}}

	var dst Node
	src.CloneInPlace(&dst)

	assert.Equal(t, src, dst)

	// The clone owns its children.
	dst.Children[0] = 99
	assert.Equal(t, uint64(10), src.Children[0])
}

func TestNodeDetachesUnderCopyOnWrite(t *testing.T) {
	pool := refpool.NewPool[Node](8)

	a := refpool.New(pool, Node{Key: 1, Children: []uint64{5}})
	b := a.Clone()

	refpool.MakeMut(pool, &b).Children[0] = 6

	assert.Equal(t, uint64(5), a.Get().Children[0])
	assert.Equal(t, uint64(6), b.Get().Children[0])

	a.Release()
	b.Release()
}

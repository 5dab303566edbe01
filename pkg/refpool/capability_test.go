package refpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter initialises to a non-zero floor in place.
type counter struct {
	n uint64
}

func (c *counter) DefaultInPlace() {
	c.n = 100
}

// document owns a slice and must deep-copy it when cloned.
type document struct {
	title string
	lines []string
}

func (d *document) CloneInPlace(dst *document) {
	dst.title = d.title
	dst.lines = append(dst.lines[:0], d.lines...)
}

func TestDefaultCapability(t *testing.T) {
	pool := NewPool[counter](4)

	ref := Default(pool)
	assert.Equal(t, uint64(100), ref.Get().n)
	ref.Release()

	// The capability also runs on recycled storage.
	again := Default(pool)
	assert.Equal(t, uint64(100), again.Get().n)
	again.Release()

	box := DefaultBox(pool)
	assert.Equal(t, uint64(100), box.Get().n)
	box.Release()
}

func TestDefaultFallbackIsZeroValue(t *testing.T) {
	pool := NewPool[uint64](4)
	ref := Default(pool)
	defer ref.Release()
	assert.Equal(t, uint64(0), *ref.Get())
}

func TestCloneCapabilityDeepCopies(t *testing.T) {
	pool := NewPool[document](4)

	src := document{title: "notes", lines: []string{"one", "two"}}
	ref := CloneFrom(pool, &src)
	defer ref.Release()

	// Mutating the source must not reach the handle.
	src.lines[0] = "changed"
	assert.Equal(t, "one", ref.Get().lines[0])
}

func TestMakeMutUsesCloneCapability(t *testing.T) {
	pool := NewPool[document](4)

	a := New(pool, document{title: "draft", lines: []string{"alpha"}})
	b := a.Clone()

	MakeMut(pool, &b).lines[0] = "beta"

	require.False(t, PtrEqual(a, b))
	assert.Equal(t, "alpha", a.Get().lines[0])
	assert.Equal(t, "beta", b.Get().lines[0])

	a.Release()
	b.Release()
}

func TestUnwrapOrCloneUsesCloneCapability(t *testing.T) {
	pool := NewPool[document](4)

	a := New(pool, document{lines: []string{"shared"}})
	b := a.Clone()

	out := b.UnwrapOrClone()
	out.lines[0] = "mine"
	assert.Equal(t, "shared", a.Get().lines[0])

	a.Release()
}

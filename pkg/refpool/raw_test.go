package refpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefRawRoundTrip(t *testing.T) {
	pool := NewPool[uint64](4)

	ref := New(pool, uint64(1337))
	ptr := IntoRaw(ref)
	assert.Equal(t, uint64(1337), *ptr)

	// The raw pointer carries the claim; the slot was not released.
	assert.Equal(t, 0, pool.Len())

	back := FromRaw(ptr)
	assert.Equal(t, uint64(1337), *back.Get())
	assert.Equal(t, 1, back.StrongCount())

	back.Release()
	assert.Equal(t, 1, pool.Len())
}

func TestRefRawPreservesAliases(t *testing.T) {
	pool := NewPool[uint64](4)

	a := New(pool, uint64(7))
	alias := a.Clone()

	back := FromRaw(IntoRaw(a))
	assert.Equal(t, 2, back.StrongCount())
	assert.True(t, PtrEqual(back, alias))

	back.Release()
	assert.Equal(t, uint64(7), *alias.Get())
	alias.Release()
}

func TestBoxRawRoundTrip(t *testing.T) {
	pool := NewPool[uint64](4)

	box := NewBox(pool, uint64(42))
	ptr := BoxIntoRaw(box)
	require.Equal(t, uint64(42), *ptr)

	back := BoxFromRaw(ptr)
	assert.Equal(t, uint64(42), *back.Get())
	back.Release()
	assert.Equal(t, 1, pool.Len())
}

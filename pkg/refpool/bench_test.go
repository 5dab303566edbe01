package refpool

import "testing"

type benchPayload struct {
	key      uint64
	revision uint64
	children [6]uint64
}

func BenchmarkPoolAllocRelease(b *testing.B) {
	pool := NewPool[benchPayload](1024).Filled()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ref := Default(pool)
		ref.Get().key = uint64(i)
		ref.Release()
	}
}

func BenchmarkNullPoolAllocRelease(b *testing.B) {
	pool := NewPool[benchPayload](0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ref := Default(pool)
		ref.Get().key = uint64(i)
		ref.Release()
	}
}

func BenchmarkSharedPoolAllocRelease(b *testing.B) {
	pool := NewSharedPool[benchPayload](1024).Filled()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			ref := Default(pool)
			ref.Release()
		}
	})
}

func BenchmarkRefClone(b *testing.B) {
	pool := NewPool[benchPayload](16)
	ref := New(pool, benchPayload{key: 1})
	defer ref.Release()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := ref.Clone()
		c.Release()
	}
}

func BenchmarkMakeMutUnique(b *testing.B) {
	pool := NewPool[benchPayload](16)
	ref := New(pool, benchPayload{key: 1})
	defer ref.Release()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MakeMut(pool, &ref).revision++
	}
}

func BenchmarkMakeMutShared(b *testing.B) {
	pool := NewSharedPool[benchPayload](1024).Filled()
	base := New(pool, benchPayload{key: 1})
	defer base.Release()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := base.Clone()
		MakeMut(pool, &c).revision++
		c.Release()
	}
}

package dynarray

import (
	"testing"
)

// BenchmarkRealisticUsage compares array setups on request-shaped workloads.
func BenchmarkRealisticUsage(b *testing.B) {
	type record struct {
		ID    int64
		Score float64
		Flags [48]byte // 64 bytes total
	}

	// Many small per-request arrays
	b.Run("SmallArrays/Heap", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			for j := 0; j < 10; j++ {
				a := New[record]()
				for k := 0; k < 20; k++ {
					a.Push(record{ID: int64(k)})
				}
				a.Release()
			}
		}
	})

	b.Run("SmallArrays/Arena", func(b *testing.B) {
		ar := NewArena(64 * 1024)
		defer ar.Release()
		aa := NewArenaAllocator[record](ar)
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			for j := 0; j < 10; j++ {
				a := NewWith[record](aa)
				for k := 0; k < 20; k++ {
					a.Push(record{ID: int64(k)})
				}
				a.Release()
			}
			// End of request
			ar.Reset()
		}
	})

	// Known size up front
	b.Run("Presized/Reserve", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a := New[record]()
			a.Reserve(500)
			for k := 0; k < 500; k++ {
				a.Push(record{ID: int64(k)})
			}
			a.Release()
		}
	})

	b.Run("Presized/Doubling", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			a := New[record]()
			for k := 0; k < 500; k++ {
				a.Push(record{ID: int64(k)})
			}
			a.Release()
		}
	})

	// Random access after build
	b.Run("RandomAccess", func(b *testing.B) {
		a := New[record]()
		for k := 0; k < 4096; k++ {
			a.Push(record{ID: int64(k)})
		}
		b.ResetTimer()
		var sum int64
		for i := 0; i < b.N; i++ {
			r := a.At((i * 2654435761) & 4095)
			r.Score++
			sum += r.ID
		}
		_ = sum
	})
}

// Package dynarray implements a growable contiguous array that manages its
// own storage block.
//
// # Overview
//
// An Array holds Len() initialized elements in a single block of Cap()
// slots. When a Push finds the block full, the array allocates a block of
// twice the capacity (1 for an empty array), copies the elements over in
// order, and only then releases the old block. Reserve grows the block to an
// exact capacity and never shrinks it.
//
// # Basic Usage
//
//	a := dynarray.New[int]() // no allocation yet
//	defer a.Release()
//
//	for i := 0; i < 230; i++ {
//		a.Push(i)
//	}
//	// a.Len() == 230, a.Cap() == 256
//
//	a.Reserve(400)   // a.Cap() == 400
//	*a.At(0) = 42    // in-place update
//	v := a.Get(1)    // copy of element 1
//
//	b := dynarray.From([]string{"x", "y"}) // Len() == Cap() == 2
//
// # Allocators
//
// Every block comes from an Allocator and goes back to it exactly once:
//
//   - HeapAllocator: the Go heap (default)
//   - ManualAllocator: memory outside the Go heap, freed on Release
//   - ArenaAllocator: blocks carved from an Arena, reclaimed on Arena.Reset
//   - TrackingAllocator: wraps any of the above and counts blocks, rejecting
//     double or unknown releases
//
// ManualAllocator and ArenaAllocator only accept pointer-free element types.
//
// # Errors
//
// Misuse is not reported through return values. Indexing outside [0, Len())
// panics with *IndexError; an allocator failure panics with *AllocError; a
// capacity whose byte size overflows int panics with ErrCapacityOverflow.
//
// # Thread Safety
//
// Array is not goroutine-safe. Wrap it in a SafeArray, or guard it with your
// own lock, when several goroutines need it.
package dynarray

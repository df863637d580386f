package dynarray

import (
	"fmt"
)

// Example demonstrates basic array usage
func Example() {
	a := New[int]()
	defer a.Release()

	for i := 0; i < 230; i++ {
		a.Push(i)
	}
	fmt.Printf("len=%d cap=%d\n", a.Len(), a.Cap())

	// Reserve never shrinks
	a.Reserve(10)
	fmt.Printf("after Reserve(10): cap=%d\n", a.Cap())

	// Growing by Reserve sets the exact capacity
	a.Reserve(400)
	fmt.Printf("after Reserve(400): cap=%d\n", a.Cap())

	for i := 0; i < 230; i++ {
		a.Push(i)
	}
	fmt.Printf("len=%d cap=%d\n", a.Len(), a.Cap())

	// Output:
	// len=230 cap=256
	// after Reserve(10): cap=256
	// after Reserve(400): cap=400
	// len=460 cap=800
}

func ExampleFrom() {
	a := From([]string{"x", "y", "z"})
	defer a.Release()

	*a.At(0) = "X"
	fmt.Println(a, a.Get(0), a.Get(2))

	// Output:
	// dynarray.Array[len=3 cap=3] X z
}

// ExampleTrackingAllocator shows how to check an array for leaked blocks
func ExampleTrackingAllocator() {
	tr := NewTrackingAllocator[int](nil, nil)
	a := NewWith[int](tr)
	for i := 0; i < 5; i++ {
		a.Push(i)
	}
	fmt.Println(tr.Metrics().LiveBlocks, "live block")

	a.Release()
	m := tr.Metrics()
	fmt.Printf("allocs=%d releases=%d leaks=%v\n", m.Allocs, m.Releases, tr.CheckLeaks())

	// Output:
	// 1 live block
	// allocs=4 releases=4 leaks=<nil>
}

// ExampleArenaAllocator keeps array blocks in an arena that is reset per request
func ExampleArenaAllocator() {
	ar := NewArena(4096)
	defer ar.Release()

	for req := 0; req < 3; req++ {
		ids := NewWith[uint32](NewArenaAllocator[uint32](ar))
		for i := 0; i < 100; i++ {
			ids.Push(uint32(req*1000 + i))
		}
		fmt.Printf("request %d: last id %d, arena chunks %d\n", req, ids.Get(ids.Len()-1), ar.NumChunks())
		ids.Release()
		ar.Reset()
	}

	// Output:
	// request 0: last id 99, arena chunks 1
	// request 1: last id 1099, arena chunks 1
	// request 2: last id 2099, arena chunks 1
}

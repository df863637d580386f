package dynarray

import "fmt"

// Cloner is implemented by element types that need more than a value copy
// to be duplicated. From uses it when copying the input values.
type Cloner[T any] interface {
	Clone() T
}

// Array is a growable contiguous array that manages its own block.
// Elements [0, Len()) are initialized; the remaining slots up to Cap() are
// allocated but never read. Not goroutine-safe; see SafeArray.
type Array[T any] struct {
	block    []T
	size     int
	capacity int
	alloc    Allocator[T]
}

// New returns an empty array backed by the Go heap. It does not allocate.
func New[T any]() *Array[T] {
	return NewWith[T](nil)
}

// NewWith returns an empty array that takes its blocks from a.
// A nil allocator selects the Go heap.
func NewWith[T any](a Allocator[T]) *Array[T] {
	if a == nil {
		a = NewHeapAllocator[T]()
	}
	return &Array[T]{alloc: a}
}

// From returns a heap-backed array holding a copy of values, with
// Len() == Cap() == len(values).
func From[T any](values []T) *Array[T] {
	return FromWith(nil, values)
}

// FromWith is like From but takes its block from a. Exactly len(values)
// slots are allocated; an empty input allocates nothing.
func FromWith[T any](a Allocator[T], values []T) *Array[T] {
	arr := NewWith(a)
	if len(values) == 0 {
		return arr
	}
	block := arr.allocate(len(values))
	// A panicking Clone must not leak the fresh block.
	adopted := false
	defer func() {
		if !adopted {
			arr.release(block)
		}
	}()
	for i, v := range values {
		block[i] = cloneValue(v)
	}
	arr.block = block
	arr.size = len(values)
	arr.capacity = len(values)
	adopted = true
	return arr
}

func cloneValue[T any](v T) T {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v
}

// Len returns the number of elements in the array.
func (a *Array[T]) Len() int { return a.size }

// Cap returns the number of allocated slots.
func (a *Array[T]) Cap() int { return a.capacity }

// Get returns the element at index i. It panics with *IndexError unless
// 0 <= i < Len().
func (a *Array[T]) Get(i int) T {
	a.checkIndex(i)
	return a.block[i]
}

// At returns a pointer to the element at index i, for in-place mutation.
// The pointer is invalidated by the next Push or Reserve that grows the
// array, and by Release. It panics with *IndexError unless 0 <= i < Len().
func (a *Array[T]) At(i int) *T {
	a.checkIndex(i)
	return &a.block[i]
}

// Set overwrites the element at index i.
func (a *Array[T]) Set(i int, v T) {
	*a.At(i) = v
}

func (a *Array[T]) checkIndex(i int) {
	if i < 0 || i >= a.size {
		panic(&IndexError{Index: i, Len: a.size})
	}
}

// Push appends v. A full array first grows to twice its capacity (or to 1
// when empty), so appends are amortized O(1).
func (a *Array[T]) Push(v T) {
	if a.size == a.capacity {
		newCap := 1
		if a.capacity > 0 {
			if a.capacity > maxInt/2 {
				panic(ErrCapacityOverflow)
			}
			newCap = a.capacity * 2
		}
		block := a.allocate(newCap)
		copy(block, a.block[:a.size])
		block[a.size] = v
		a.adopt(block, newCap)
	} else {
		a.block[a.size] = v
	}
	a.size++
}

// Reserve ensures at least n slots are allocated. When n exceeds Cap() the
// capacity becomes exactly n; otherwise Reserve does nothing. Length and
// element values are never changed.
func (a *Array[T]) Reserve(n int) {
	if n <= a.capacity {
		return
	}
	block := a.allocate(n)
	copy(block, a.block[:a.size])
	a.adopt(block, n)
}

// Release hands the block back to the allocator and leaves the array empty.
// Calling Release on an array without a block is a no-op.
func (a *Array[T]) Release() {
	old := a.block
	a.block = nil
	a.size = 0
	a.capacity = 0
	if old != nil {
		a.release(old)
	}
}

// Utilization returns Len()/Cap(), or 0 for an array without a block.
func (a *Array[T]) Utilization() float64 {
	if a.capacity == 0 {
		return 0
	}
	return float64(a.size) / float64(a.capacity)
}

func (a *Array[T]) String() string {
	return fmt.Sprintf("dynarray.Array[len=%d cap=%d]", a.size, a.capacity)
}

// adopt installs block as the current storage and only then releases the
// previous one.
func (a *Array[T]) adopt(block []T, capacity int) {
	old := a.block
	a.block = block
	a.capacity = capacity
	if old != nil {
		a.release(old)
	}
}

func (a *Array[T]) allocate(n int) []T {
	if _, err := blockBytes[T](n); err != nil {
		panic(err)
	}
	block, err := a.alloc.Allocate(n)
	if err != nil {
		panic(&AllocError{Op: "allocate", Elems: n, Err: err})
	}
	if len(block) < n {
		panic(&AllocError{Op: "allocate", Elems: n, Err: fmt.Errorf("short block of %d elements", len(block))})
	}
	return block[:n:n]
}

func (a *Array[T]) release(block []T) {
	if err := a.alloc.Release(block); err != nil {
		panic(&AllocError{Op: "release", Elems: len(block), Err: err})
	}
}

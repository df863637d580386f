package dynarray

import (
	"math/bits"
	"reflect"
	"unsafe"
)

// Allocator supplies the blocks an Array stores its elements in.
// Allocate returns a block with len == cap == n for n > 0. Release takes back
// a block previously returned by Allocate; the Array never touches the block
// again afterwards.
type Allocator[T any] interface {
	Allocate(n int) ([]T, error)
	Release(block []T) error
}

// HeapAllocator hands out blocks from the Go heap. It works for every element
// type and is the default allocator of New and From.
type HeapAllocator[T any] struct{}

// NewHeapAllocator returns a heap allocator for T.
func NewHeapAllocator[T any]() *HeapAllocator[T] {
	return &HeapAllocator[T]{}
}

// Allocate returns a fresh heap block of n elements.
func (*HeapAllocator[T]) Allocate(n int) ([]T, error) {
	if _, err := blockBytes[T](n); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

// Release clears the block so it retains no references. The memory itself
// is reclaimed by the garbage collector.
func (*HeapAllocator[T]) Release(block []T) error {
	clear(block)
	return nil
}

// elemSize returns the in-memory size of one T.
func elemSize[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// elemAlign returns the required alignment of T.
func elemAlign[T any]() uintptr {
	var zero T
	return unsafe.Alignof(zero)
}

// blockBytes computes the byte size of a block of n elements, reporting
// ErrCapacityOverflow when it does not fit in an int.
func blockBytes[T any](n int) (int, error) {
	if n < 0 {
		return 0, ErrCapacityOverflow
	}
	hi, lo := bits.Mul64(uint64(elemSize[T]()), uint64(n))
	if hi != 0 || lo > uint64(maxInt) {
		return 0, ErrCapacityOverflow
	}
	return int(lo), nil
}

const maxInt = int(^uint(0) >> 1)

// blockFromBytes reinterprets raw memory as a block of n elements.
// The caller guarantees b holds at least n*sizeof(T) bytes, suitably aligned.
func blockFromBytes[T any](b []byte, n int) []T {
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// blockAsBytes returns the raw memory behind a block.
func blockAsBytes[T any](block []T) []byte {
	size := int(elemSize[T]()) * len(block)
	return unsafe.Slice((*byte)(unsafe.Pointer(&block[0])), size)
}

// blockAddr identifies a block by the address of its first slot.
func blockAddr[T any](block []T) uintptr {
	if len(block) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&block[0]))
}

// mustBePointerFree panics with ErrPointerType if T holds pointers. Memory
// outside the Go heap (or inside an untyped byte arena) is not scanned by
// the collector, so pointers stored there would dangle.
func mustBePointerFree[T any]() {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if hasPointers(t) {
		panic(ErrPointerType)
	}
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

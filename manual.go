package dynarray

import (
	"sync"

	"github.com/pkg/errors"
	"modernc.org/memory"
)

// ManualAllocator takes blocks from memory mapped outside the Go heap and
// frees them explicitly on Release. Blocks that are never released stay
// mapped until Close. The element type must be pointer-free because the
// garbage collector does not scan this memory.
type ManualAllocator[T any] struct {
	mu    sync.Mutex
	heap  memory.Allocator
	align uintptr
}

// NewManualAllocator returns a manual allocator for T. It panics with
// ErrPointerType if T contains pointers.
func NewManualAllocator[T any]() *ManualAllocator[T] {
	mustBePointerFree[T]()
	return &ManualAllocator[T]{align: elemAlign[T]()}
}

// Allocate maps a block of n elements. Its contents are undefined.
func (m *ManualAllocator[T]) Allocate(n int) ([]T, error) {
	size, err := blockBytes[T](n)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return make([]T, n), nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.heap.Malloc(size)
	if err != nil {
		return nil, errors.Wrapf(err, "malloc %d bytes", size)
	}
	if addr := blockAddr(b); addr%m.align != 0 {
		_ = m.heap.Free(b)
		return nil, errors.Errorf("malloc returned %#x, not aligned to %d", addr, m.align)
	}
	return blockFromBytes[T](b, n), nil
}

// Release frees a block returned by Allocate.
func (m *ManualAllocator[T]) Release(block []T) error {
	if len(block) == 0 || elemSize[T]() == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.heap.Free(blockAsBytes(block)); err != nil {
		return errors.Wrap(err, "free")
	}
	return nil
}

// Close unmaps all memory, including blocks still in use. Arrays using the
// allocator must not be touched afterwards.
func (m *ManualAllocator[T]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heap.Close()
}

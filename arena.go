package dynarray

import (
	"unsafe"

	"github.com/pkg/errors"
)

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// ErrArenaReleased is returned when allocating from a released arena.
var ErrArenaReleased = errors.New("dynarray: arena used after Release")

// chunk is one contiguous piece of arena memory.
type chunk struct {
	buf    []byte
	offset uintptr // first free byte in buf
}

// Arena is a chunked bump allocator that array blocks can be carved from.
// Blocks are never freed one by one; Reset and Release reclaim everything
// at once. Not goroutine-safe.
type Arena struct {
	chunks    []chunk
	chunkSize int
	current   int // index of the chunk allocations are served from
}

// NewArena creates an arena with the given chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	a.grow(chunkSize)
	return a
}

// alloc returns n bytes whose address is a multiple of align.
func (a *Arena) alloc(n int, align uintptr) []byte {
	a.panicIfReleased()
	if n <= 0 {
		return nil
	}
	// Later chunks are tried after Reset, when they are empty again.
	for ; a.current < len(a.chunks); a.current++ {
		if b := a.chunks[a.current].carve(n, align); b != nil {
			return b
		}
	}
	// Room for the worst-case alignment padding.
	a.grow(n + int(align))
	return a.chunks[a.current].carve(n, align)
}

// carve takes n aligned bytes from the chunk, or returns nil if they do not fit.
func (c *chunk) carve(n int, align uintptr) []byte {
	if len(c.buf) == 0 {
		return nil
	}
	base := uintptr(unsafe.Pointer(&c.buf[0]))
	off := alignUp(base+c.offset, align) - base
	if off+uintptr(n) > uintptr(len(c.buf)) {
		return nil
	}
	c.offset = off + uintptr(n)
	return c.buf[off : off+uintptr(n) : off+uintptr(n)]
}

// Reset makes all chunks available again but keeps them for reuse.
// Blocks handed out earlier must no longer be used.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.current = 0
}

// Release drops all chunks and makes the arena unusable.
func (a *Arena) Release() {
	a.chunks = nil
	a.current = 0
}

// grow appends a chunk of at least min bytes and makes it current.
func (a *Arena) grow(min int) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	a.chunks = append(a.chunks, chunk{buf: make([]byte, size)})
	a.current = len(a.chunks) - 1
}

func (a *Arena) released() bool { return a.chunks == nil }

func (a *Arena) panicIfReleased() {
	if a.released() {
		panic(ErrArenaReleased)
	}
}

// alignUp rounds p up to a multiple of align (a power of two).
func alignUp(p, align uintptr) uintptr {
	mask := align - 1
	return (p + mask) &^ mask
}

// ArenaAllocator carves array blocks out of an Arena. Releasing a block is a
// no-op: the space comes back when the arena is Reset or Released. The
// element type must be pointer-free.
type ArenaAllocator[T any] struct {
	arena *Arena
}

// NewArenaAllocator returns an allocator serving blocks of T from a.
// It panics with ErrPointerType if T contains pointers.
func NewArenaAllocator[T any](a *Arena) *ArenaAllocator[T] {
	mustBePointerFree[T]()
	return &ArenaAllocator[T]{arena: a}
}

// Arena returns the arena blocks are carved from.
func (aa *ArenaAllocator[T]) Arena() *Arena { return aa.arena }

// Allocate carves a block of n elements from the arena.
func (aa *ArenaAllocator[T]) Allocate(n int) ([]T, error) {
	size, err := blockBytes[T](n)
	if err != nil {
		return nil, err
	}
	if aa.arena.released() {
		return nil, ErrArenaReleased
	}
	if size == 0 {
		// Zero-size elements need no backing memory.
		return make([]T, n), nil
	}
	b := aa.arena.alloc(size, elemAlign[T]())
	return blockFromBytes[T](b, n), nil
}

// Release is a no-op; see ArenaAllocator.
func (aa *ArenaAllocator[T]) Release(block []T) error {
	return nil
}

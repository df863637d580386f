package dynarray

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TrackingAllocator wraps another allocator and records every block that
// passes through it. It refuses releases of blocks it does not know about or
// has already seen released, so leaks and double releases show up in tests.
// Safe for use by several arrays from multiple goroutines.
type TrackingAllocator[T any] struct {
	mu       sync.Mutex
	inner    Allocator[T]
	logger   *zap.Logger
	live     map[uintptr]int // block address -> elements
	released map[uintptr]struct{}
	m        AllocMetrics
}

// NewTrackingAllocator wraps inner. A nil inner selects the Go heap; a nil
// logger disables logging.
func NewTrackingAllocator[T any](inner Allocator[T], logger *zap.Logger) *TrackingAllocator[T] {
	if inner == nil {
		inner = NewHeapAllocator[T]()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrackingAllocator[T]{
		inner:    inner,
		logger:   logger,
		live:     make(map[uintptr]int),
		released: make(map[uintptr]struct{}),
	}
}

// Allocate forwards to the wrapped allocator and records the block.
func (t *TrackingAllocator[T]) Allocate(n int) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	block, err := t.inner.Allocate(n)
	if err != nil {
		t.logger.Error("allocate failed", zap.Int("elems", n), zap.Error(err))
		return nil, err
	}
	addr := blockAddr(block)
	bytes := int(elemSize[T]()) * n
	if bytes > 0 {
		// The address may be reused after a release.
		delete(t.released, addr)
		t.live[addr] = n
	}
	t.m.Allocs++
	t.m.LiveBlocks++
	t.m.LiveBytes += bytes
	t.m.TotalBytes += bytes
	if t.m.LiveBytes > t.m.PeakBytes {
		t.m.PeakBytes = t.m.LiveBytes
	}
	t.logger.Debug("allocate",
		zap.Int("elems", n),
		zap.Int("bytes", bytes),
		zap.Uintptr("addr", addr),
		zap.Int("live_blocks", t.m.LiveBlocks))
	return block, nil
}

// Release checks that block is live, forwards it to the wrapped allocator
// and records the release.
func (t *TrackingAllocator[T]) Release(block []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	bytes := int(elemSize[T]()) * len(block)
	addr := blockAddr(block)
	if bytes > 0 {
		n, ok := t.live[addr]
		if !ok {
			t.m.Rejected++
			err := ErrUnknownBlock
			if _, seen := t.released[addr]; seen {
				err = ErrDoubleRelease
			}
			t.logger.Error("rejected release", zap.Uintptr("addr", addr), zap.Error(err))
			return errors.Wrapf(err, "block %#x", addr)
		}
		if n != len(block) {
			t.m.Rejected++
			t.logger.Error("release size mismatch",
				zap.Uintptr("addr", addr), zap.Int("allocated", n), zap.Int("released", len(block)))
			return errors.Errorf("dynarray: block %#x allocated with %d elements, released with %d", addr, n, len(block))
		}
	}
	if err := t.inner.Release(block); err != nil {
		t.logger.Error("release failed", zap.Uintptr("addr", addr), zap.Error(err))
		return err
	}
	if bytes > 0 {
		delete(t.live, addr)
		t.released[addr] = struct{}{}
	}
	t.m.Releases++
	t.m.LiveBlocks--
	t.m.LiveBytes -= bytes
	t.logger.Debug("release",
		zap.Int("elems", len(block)),
		zap.Int("bytes", bytes),
		zap.Uintptr("addr", addr),
		zap.Int("live_blocks", t.m.LiveBlocks))
	return nil
}

// Metrics returns a snapshot of the allocation counters.
func (t *TrackingAllocator[T]) Metrics() AllocMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.m
}

// CheckLeaks returns an error naming every block that is still live.
func (t *TrackingAllocator[T]) CheckLeaks() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.m.LiveBlocks == 0 {
		return nil
	}
	addrs := make([]uintptr, 0, len(t.live))
	for addr := range t.live {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	var sb strings.Builder
	for i, addr := range addrs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%#x(%d)", addr, t.live[addr])
	}
	return errors.Errorf("dynarray: %d blocks (%d bytes) leaked: %s",
		t.m.LiveBlocks, t.m.LiveBytes, sb.String())
}

package dynarray

// SizeInUse returns the number of arena bytes handed out, including
// alignment padding.
func (a *Arena) SizeInUse() int {
	sum := 0
	for _, c := range a.chunks {
		sum += int(c.offset)
	}
	return sum
}

// NumChunks returns the number of chunks owned by the arena.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// Capacity returns the total size in bytes of all chunks.
func (a *Arena) Capacity() int {
	sum := 0
	for _, c := range a.chunks {
		sum += len(c.buf)
	}
	return sum
}

// Utilization returns SizeInUse()/Capacity(), or 0 for an empty arena.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the default chunk size of the arena.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.ChunkSize(),
		Utilization: a.Utilization(),
	}
}

// ArenaMetrics contains statistical information about an arena.
type ArenaMetrics struct {
	SizeInUse   int     // Bytes handed out
	Capacity    int     // Total capacity in bytes
	NumChunks   int     // Number of chunks
	ChunkSize   int     // Default chunk size
	Utilization float64 // Ratio of used to total capacity (0.0-1.0)
}

// AllocMetrics is a snapshot of the blocks seen by a TrackingAllocator.
type AllocMetrics struct {
	Allocs     int // Successful Allocate calls
	Releases   int // Successful Release calls
	LiveBlocks int // Blocks allocated and not yet released
	LiveBytes  int // Bytes held by live blocks
	PeakBytes  int // Highest LiveBytes seen
	TotalBytes int // Bytes allocated over the allocator's lifetime
	Rejected   int // Releases refused as double or unknown
}

// Balanced reports whether every allocated block has been released and no
// release was refused.
func (m AllocMetrics) Balanced() bool {
	return m.LiveBlocks == 0 && m.Allocs == m.Releases && m.Rejected == 0
}

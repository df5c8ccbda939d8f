package domain

import "math"

// Chunk is a contiguous byte range of the source image.
type Chunk struct {
	// ID is the opaque chunk identifier from the manifest.
	ID string

	// Start is the offset of the first byte covered by the chunk.
	Start int64

	// Size is the number of bytes in the chunk. Always positive.
	Size int64
}

// End returns the offset of the last byte covered by the chunk.
func (c Chunk) End() int64 {
	return c.Start + c.Size - 1
}

// AddSizes returns a+b for non-negative byte counts, clamped to math.MaxInt64.
func AddSizes(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Overlaps reports whether c's last byte falls strictly inside next's range
// while next extends past it. This is the edge rule of the overlap graph:
// c -> next exists iff c.Overlaps(next).
func (c Chunk) Overlaps(next Chunk) bool {
	end := c.End()
	return end > next.Start && end < next.End()
}

package domain

import (
	"fmt"
	"math"
	"strings"
)

// Catalog is the registry of chunks loaded from one manifest.
// It is populated once and treated as read-only afterwards.
type Catalog struct {
	imageSize int64
	chunks    map[string]Chunk
	ids       []string
}

// NewCatalog creates an empty catalog for an image of the given size.
func NewCatalog(imageSize int64) (*Catalog, error) {
	if imageSize <= 0 {
		return nil, fmt.Errorf("%w: image size must be positive, got %d", ErrMalformedRecord, imageSize)
	}
	return &Catalog{
		imageSize: imageSize,
		chunks:    make(map[string]Chunk),
	}, nil
}

// AddChunk inserts a chunk, or overwrites the chunk already stored under id.
// An overwritten chunk keeps its original load position.
func (c *Catalog) AddChunk(id string, start, size int64) error {
	if id == "" {
		return fmt.Errorf("%w: empty chunk id", ErrMalformedRecord)
	}
	if start < 0 {
		return fmt.Errorf("%w: chunk %s has negative start %d", ErrMalformedRecord, id, start)
	}
	if size <= 0 {
		return fmt.Errorf("%w: chunk %s has non-positive size %d", ErrMalformedRecord, id, size)
	}
	if start > math.MaxInt64-size {
		return fmt.Errorf("%w: chunk %s range %d+%d overflows", ErrMalformedRecord, id, start, size)
	}

	if _, ok := c.chunks[id]; !ok {
		c.ids = append(c.ids, id)
	}
	c.chunks[id] = Chunk{ID: id, Start: start, Size: size}
	return nil
}

// Lookup returns the chunk stored under id.
func (c *Catalog) Lookup(id string) (Chunk, error) {
	chunk, ok := c.chunks[id]
	if !ok {
		return Chunk{}, fmt.Errorf("%w: %s", ErrUnknownChunk, id)
	}
	return chunk, nil
}

// TotalSize returns the sum of all chunk sizes, clamped to math.MaxInt64.
func (c *Catalog) TotalSize() int64 {
	var total int64
	for _, id := range c.ids {
		total = AddSizes(total, c.chunks[id].Size)
	}
	return total
}

// ImageSize returns the size of the full image in bytes.
func (c *Catalog) ImageSize() int64 {
	return c.imageSize
}

// Len returns the number of distinct chunks.
func (c *Catalog) Len() int {
	return len(c.ids)
}

// IDs returns the chunk ids in load order.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Chunks returns the chunks in load order.
func (c *Catalog) Chunks() []Chunk {
	chunks := make([]Chunk, len(c.ids))
	for i, id := range c.ids {
		chunks[i] = c.chunks[id]
	}
	return chunks
}

// StartChunk returns the id of the chunk that begins at byte 0.
func (c *Catalog) StartChunk() (string, error) {
	return c.unique(func(ch Chunk) bool {
		return ch.Start == 0
	}, ErrNoStartChunk, ErrAmbiguousStartChunk)
}

// EndChunk returns the id of the chunk that ends at the last image byte.
func (c *Catalog) EndChunk() (string, error) {
	return c.unique(func(ch Chunk) bool {
		return ch.Start+ch.Size == c.imageSize
	}, ErrNoEndChunk, ErrAmbiguousEndChunk)
}

func (c *Catalog) unique(match func(Chunk) bool, none, many error) (string, error) {
	var found []string
	for _, id := range c.ids {
		if match(c.chunks[id]) {
			found = append(found, id)
		}
	}

	switch len(found) {
	case 0:
		return "", none
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%w: %s", many, strings.Join(found, ", "))
	}
}

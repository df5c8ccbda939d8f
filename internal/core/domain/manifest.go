package domain

import (
	"fmt"
	"time"
)

// Manifest is a chunk listing as read from a manifest file or the store.
type Manifest struct {
	// ID is assigned when the manifest is imported into the store.
	ID string

	// Name is the user-facing name (file path or stored name).
	Name string

	// ImageSize is the size of the full image in bytes.
	ImageSize int64

	// Chunks are the records in file order.
	Chunks []Chunk

	// CreatedAt is when the manifest was imported.
	CreatedAt time.Time
}

// Catalog builds a chunk catalog from the manifest records.
func (m *Manifest) Catalog() (*Catalog, error) {
	catalog, err := NewCatalog(m.ImageSize)
	if err != nil {
		return nil, err
	}
	for i, ch := range m.Chunks {
		if err := catalog.AddChunk(ch.ID, ch.Start, ch.Size); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return catalog, nil
}

// Info returns the summary of the manifest.
func (m *Manifest) Info() ManifestInfo {
	return ManifestInfo{
		ID:         m.ID,
		Name:       m.Name,
		ImageSize:  m.ImageSize,
		ChunkCount: len(m.Chunks),
		CreatedAt:  m.CreatedAt,
	}
}

// ManifestInfo summarises a stored manifest without its records.
type ManifestInfo struct {
	ID         string
	Name       string
	ImageSize  int64
	ChunkCount int
	CreatedAt  time.Time
}

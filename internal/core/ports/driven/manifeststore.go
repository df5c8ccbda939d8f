package driven

import (
	"context"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// ManifestStore persists imported manifests.
// Chunk records are returned in the order they were saved.
type ManifestStore interface {
	// Save stores a new manifest. Returns domain.ErrAlreadyExists if the
	// name is taken.
	Save(ctx context.Context, manifest *domain.Manifest) error

	// Replace atomically swaps the manifest stored under manifest.Name for
	// manifest, or stores it if the name is free. On failure the previous
	// manifest is left untouched.
	Replace(ctx context.Context, manifest *domain.Manifest) error

	// Get retrieves a manifest by name, or domain.ErrNotFound.
	Get(ctx context.Context, name string) (*domain.Manifest, error)

	// List returns summaries of all manifests ordered by name.
	List(ctx context.Context) ([]domain.ManifestInfo, error)

	// Delete removes a manifest by name, or returns domain.ErrNotFound.
	Delete(ctx context.Context, name string) error
}

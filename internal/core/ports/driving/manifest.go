package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
)

// ManifestService reads manifests and manages the ones kept in the store.
type ManifestService interface {
	// Parse decodes a manifest from r and names it name.
	Parse(ctx context.Context, name string, r io.Reader) (*domain.Manifest, error)

	// Open reads and decodes the manifest file at path.
	Open(ctx context.Context, path string) (*domain.Manifest, error)

	// Import stores a manifest under name.
	// An existing manifest with the same name is replaced only if replace is set.
	Import(ctx context.Context, name string, manifest *domain.Manifest, replace bool) (*domain.Manifest, error)

	// Get retrieves a stored manifest by name.
	Get(ctx context.Context, name string) (*domain.Manifest, error)

	// List returns summaries of all stored manifests ordered by name.
	List(ctx context.Context) ([]domain.ManifestInfo, error)

	// Remove deletes a stored manifest.
	Remove(ctx context.Context, name string) error

	// Export writes a stored manifest to w in manifest file format.
	Export(ctx context.Context, name string, w io.Writer) error
}

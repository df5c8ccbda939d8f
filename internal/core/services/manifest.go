package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driven"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driving"
	"github.com/custodia-labs/chunkroute/internal/logger"
)

// Ensure ManifestService implements the interface.
var _ driving.ManifestService = (*ManifestService)(nil)

// ManifestService reads manifest files and manages stored manifests.
type ManifestService struct {
	codec driven.ManifestCodec
	store driven.ManifestStore
	now   func() time.Time
}

// NewManifestService creates a new manifest service.
// The store is optional; without it only Parse and Open are available.
func NewManifestService(codec driven.ManifestCodec, store driven.ManifestStore) *ManifestService {
	return &ManifestService{
		codec: codec,
		store: store,
		now:   time.Now,
	}
}

// Parse decodes a manifest from r and names it name.
func (s *ManifestService) Parse(_ context.Context, name string, r io.Reader) (*domain.Manifest, error) {
	if s.codec == nil {
		return nil, domain.ErrNotImplemented
	}
	manifest, err := s.codec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	manifest.Name = name
	logger.Debug("Parsed %s: image size %d, %d records", name, manifest.ImageSize, len(manifest.Chunks))
	return manifest, nil
}

// Open reads and decodes the manifest file at path.
func (s *ManifestService) Open(ctx context.Context, path string) (*domain.Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	return s.Parse(ctx, path, f)
}

// Import validates a manifest and stores a copy of it under name.
func (s *ManifestService) Import(
	ctx context.Context, name string, manifest *domain.Manifest, replace bool,
) (*domain.Manifest, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	name = strings.TrimSpace(name)
	if name == "" || manifest == nil {
		return nil, domain.ErrInvalidInput
	}
	catalog, err := manifest.Catalog()
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", name, err)
	}
	if _, err := catalog.StartChunk(); err != nil {
		return nil, fmt.Errorf("import %s: %w", name, err)
	}
	if _, err := catalog.EndChunk(); err != nil {
		return nil, fmt.Errorf("import %s: %w", name, err)
	}

	stored := &domain.Manifest{
		ID:        uuid.NewString(),
		Name:      name,
		ImageSize: manifest.ImageSize,
		Chunks:    append([]domain.Chunk(nil), manifest.Chunks...),
		CreatedAt: s.now(),
	}

	if replace {
		if err := s.store.Replace(ctx, stored); err != nil {
			return nil, fmt.Errorf("replace %s: %w", name, err)
		}
	} else if err := s.store.Save(ctx, stored); err != nil {
		return nil, fmt.Errorf("import %s: %w", name, err)
	}

	logger.Info("Imported manifest %s (%s)", name, stored.ID)
	return stored, nil
}

// Get retrieves a stored manifest by name.
func (s *ManifestService) Get(ctx context.Context, name string) (*domain.Manifest, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	manifest, err := s.store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", name, err)
	}
	return manifest, nil
}

// List returns summaries of all stored manifests ordered by name.
func (s *ManifestService) List(ctx context.Context) ([]domain.ManifestInfo, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Remove deletes a stored manifest.
func (s *ManifestService) Remove(ctx context.Context, name string) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.store.Delete(ctx, name); err != nil {
		return fmt.Errorf("manifest %s: %w", name, err)
	}
	return nil
}

// Export writes a stored manifest to w in manifest file format.
func (s *ManifestService) Export(ctx context.Context, name string, w io.Writer) error {
	if s.codec == nil {
		return domain.ErrNotImplemented
	}
	manifest, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	return s.codec.Encode(w, manifest)
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driven"
)

// Ensure ManifestStore implements the interface.
var _ driven.ManifestStore = (*ManifestStore)(nil)

// ManifestStore is an in-memory implementation of driven.ManifestStore.
type ManifestStore struct {
	mu        sync.RWMutex
	manifests map[string]domain.Manifest
}

// NewManifestStore creates a new in-memory manifest store.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{
		manifests: make(map[string]domain.Manifest),
	}
}

// Save stores a new manifest.
func (s *ManifestStore) Save(_ context.Context, manifest *domain.Manifest) error {
	if manifest == nil || manifest.Name == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.manifests[manifest.Name]; ok {
		return domain.ErrAlreadyExists
	}
	s.manifests[manifest.Name] = clone(*manifest)
	return nil
}

// Replace stores manifest, overwriting any manifest with the same name.
func (s *ManifestStore) Replace(_ context.Context, manifest *domain.Manifest) error {
	if manifest == nil || manifest.Name == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.manifests[manifest.Name] = clone(*manifest)
	return nil
}

// Get retrieves a manifest by name.
func (s *ManifestStore) Get(_ context.Context, name string) (*domain.Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	m := clone(manifest)
	return &m, nil
}

// List returns summaries of all manifests ordered by name.
func (s *ManifestStore) List(_ context.Context) ([]domain.ManifestInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ManifestInfo, 0, len(s.manifests))
	for _, manifest := range s.manifests {
		result = append(result, manifest.Info())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

// Delete removes a manifest.
func (s *ManifestStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.manifests[name]; !ok {
		return domain.ErrNotFound
	}
	delete(s.manifests, name)
	return nil
}

// clone copies the chunk slice so callers cannot mutate stored records.
func clone(m domain.Manifest) domain.Manifest {
	m.Chunks = append([]domain.Chunk(nil), m.Chunks...)
	return m
}

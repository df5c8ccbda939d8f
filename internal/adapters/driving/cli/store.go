package cli

import (
	"context"
	"sync"

	"github.com/custodia-labs/chunkroute/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driven"
)

// Ensure lazyStore implements the interface.
var _ driven.ManifestStore = (*lazyStore)(nil)

// lazyStore opens the SQLite database on first use, so commands that only
// read manifest files never create one.
type lazyStore struct {
	dir  string
	once sync.Once
	db   *sqlite.Store
	err  error
}

func newLazyStore(dir string) *lazyStore {
	return &lazyStore{dir: dir}
}

func (l *lazyStore) open() (driven.ManifestStore, error) {
	l.once.Do(func() {
		l.db, l.err = sqlite.NewStore(l.dir)
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.db.ManifestStore(), nil
}

func (l *lazyStore) Save(ctx context.Context, manifest *domain.Manifest) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.Save(ctx, manifest)
}

func (l *lazyStore) Replace(ctx context.Context, manifest *domain.Manifest) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.Replace(ctx, manifest)
}

func (l *lazyStore) Get(ctx context.Context, name string) (*domain.Manifest, error) {
	s, err := l.open()
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, name)
}

func (l *lazyStore) List(ctx context.Context) ([]domain.ManifestInfo, error) {
	s, err := l.open()
	if err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (l *lazyStore) Delete(ctx context.Context, name string) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.Delete(ctx, name)
}

// Close closes the database if it was opened.
func (l *lazyStore) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

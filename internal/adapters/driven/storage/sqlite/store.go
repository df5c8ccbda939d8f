package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/chunkroute/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/chunkroute/internal/core/domain"
	"github.com/custodia-labs/chunkroute/internal/core/ports/driven"
)

// dbFile is the database file name inside the data directory.
const dbFile = "manifests.db"

// Store owns the SQLite connection and hands out store interfaces
// through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the given data directory.
// If dataDir is empty, defaults to ~/.chunkroute/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".chunkroute", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)

	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ManifestStore returns a ManifestStore interface backed by this store.
func (s *Store) ManifestStore() driven.ManifestStore {
	return &manifestStore{store: s}
}

// migrate applies every pending up migration in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// schemaVersion returns the highest applied migration version.
func (s *Store) schemaVersion() (int, error) {
	var version int
	err := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	return version, err
}

// ==================== Manifest Store ====================

// manifestStore implements driven.ManifestStore.
type manifestStore struct {
	store *Store
}

var _ driven.ManifestStore = (*manifestStore)(nil)

// Save stores a new manifest and its records in one transaction.
func (s *manifestStore) Save(ctx context.Context, manifest *domain.Manifest) error {
	return s.write(ctx, manifest, false)
}

// Replace deletes any manifest with the same name and stores manifest in
// its place, in one transaction.
func (s *manifestStore) Replace(ctx context.Context, manifest *domain.Manifest) error {
	return s.write(ctx, manifest, true)
}

func (s *manifestStore) write(ctx context.Context, manifest *domain.Manifest, replace bool) (err error) {
	if manifest == nil || manifest.ID == "" || manifest.Name == "" {
		return domain.ErrInvalidInput
	}
	createdAt := manifest.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if replace {
		if _, err = tx.ExecContext(ctx, "DELETE FROM manifests WHERE name = ?", manifest.Name); err != nil {
			return fmt.Errorf("replacing manifest: %w", err)
		}
	} else {
		var exists int
		err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM manifests WHERE name = ?", manifest.Name).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking manifest name: %w", err)
		}
		if exists > 0 {
			return domain.ErrAlreadyExists
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO manifests (id, name, image_size, created_at)
		VALUES (?, ?, ?, ?)
	`, manifest.ID, manifest.Name, manifest.ImageSize, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO manifest_chunks (manifest_id, seq, chunk_id, start_byte, size)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing chunk insert: %w", err)
	}
	defer stmt.Close()

	for i, ch := range manifest.Chunks {
		if _, err = stmt.ExecContext(ctx, manifest.ID, i, ch.ID, ch.Start, ch.Size); err != nil {
			return fmt.Errorf("saving chunk %s: %w", ch.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing manifest: %w", err)
	}
	return nil
}

// Get retrieves a manifest and its records by name.
func (s *manifestStore) Get(ctx context.Context, name string) (*domain.Manifest, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, image_size, created_at
		FROM manifests WHERE name = ?
	`, name)

	var manifest domain.Manifest
	var createdAt sql.NullTime
	if err := row.Scan(&manifest.ID, &manifest.Name, &manifest.ImageSize, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning manifest: %w", err)
	}
	if createdAt.Valid {
		manifest.CreatedAt = createdAt.Time
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT chunk_id, start_byte, size
		FROM manifest_chunks WHERE manifest_id = ?
		ORDER BY seq
	`, manifest.ID)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ch domain.Chunk
		if err := rows.Scan(&ch.ID, &ch.Start, &ch.Size); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		manifest.Chunks = append(manifest.Chunks, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return &manifest, nil
}

// List returns summaries of all manifests ordered by name.
func (s *manifestStore) List(ctx context.Context) ([]domain.ManifestInfo, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT m.id, m.name, m.image_size, m.created_at, COUNT(c.seq)
		FROM manifests m
		LEFT JOIN manifest_chunks c ON c.manifest_id = m.id
		GROUP BY m.id, m.name, m.image_size, m.created_at
		ORDER BY m.name
	`)
	if err != nil {
		return nil, fmt.Errorf("querying manifests: %w", err)
	}
	defer rows.Close()

	infos := []domain.ManifestInfo{}
	for rows.Next() {
		var info domain.ManifestInfo
		var createdAt sql.NullTime
		if err := rows.Scan(&info.ID, &info.Name, &info.ImageSize, &createdAt, &info.ChunkCount); err != nil {
			return nil, fmt.Errorf("scanning manifest: %w", err)
		}
		if createdAt.Valid {
			info.CreatedAt = createdAt.Time
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manifests: %w", err)
	}

	return infos, nil
}

// Delete removes a manifest and its records.
func (s *manifestStore) Delete(ctx context.Context, name string) error {
	result, err := s.store.db.ExecContext(ctx, "DELETE FROM manifests WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting manifest: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting manifest: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

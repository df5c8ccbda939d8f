// Package sqlite provides the SQLite-backed manifest store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Manifests are kept in two tables: manifests holds one row
// per imported manifest and manifest_chunks holds its records, keyed by their
// position in the original file so load order survives a round trip.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files, and
// applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.chunkroute/data/manifests.db
package sqlite

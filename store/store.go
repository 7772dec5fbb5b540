// Package store is the persistence layer for analysis results.
//
// One SQLite database holds every analysis: the scored report as JSON plus
// the artifact paths (screenshot, markdown snapshot) written by the
// orchestration layer. Open applies the production pragmas via dbopen.
package store

import (
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/pagelens/pagelens/dbopen"
)

// ErrNotFound is returned when no analysis exists for the requested ID.
var ErrNotFound = errors.New("store: analysis not found")

// Store wraps the analyses database.
type Store struct {
	DB *sql.DB
}

// Open opens (creating if needed) the analyses database at path.
func Open(path string) (*Store, error) {
	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(Schema))
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// OpenMemory opens an in-memory store for testing.
func OpenMemory(t testing.TB) *Store {
	t.Helper()
	return &Store{DB: dbopen.OpenMemory(t, dbopen.WithSchema(Schema))}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Package sqlite is a read-only spot store over a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/couchcryptid/psws-spot-service/internal/adapter/spotsql"
	"github.com/couchcryptid/psws-spot-service/internal/domain"
)

// Store implements domain.SpotStore. The schema is owned by the ingesting
// decoder; this package never creates or migrates tables.
type Store struct {
	db    *sql.DB
	table string
}

// Open opens the database at path read-only and verifies the connection. A
// missing file is an error rather than a new empty database.
func Open(ctx context.Context, path, table string) (*Store, error) {
	db, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return New(db, table), nil
}

// New wraps an existing handle.
func New(db *sql.DB, table string) *Store {
	return &Store{db: db, table: table}
}

func (s *Store) FindSpots(ctx context.Context, q domain.SpotQuery) ([]domain.RawSpot, error) {
	query, args := spotsql.Build(s.table, q, spotsql.Question)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query spots: %w", err)
	}
	defer rows.Close()

	var spots []domain.RawSpot
	for rows.Next() {
		spot, err := spotsql.ScanSpot(rows)
		if err != nil {
			return nil, err
		}
		spots = append(spots, spot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spots: %w", err)
	}
	return spots, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func readOnlyDSN(path string) string {
	return "file:" + filepath.ToSlash(path) + "?mode=ro"
}

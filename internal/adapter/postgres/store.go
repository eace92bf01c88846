// Package postgres is a spot store over a PostgreSQL pool.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/couchcryptid/psws-spot-service/internal/adapter/spotsql"
	"github.com/couchcryptid/psws-spot-service/internal/domain"
)

// Store implements domain.SpotStore.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// Connect creates a pool for url and verifies it with a ping.
func Connect(ctx context.Context, url, table string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return New(pool, table), nil
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool, table string) *Store {
	return &Store{pool: pool, table: table}
}

func (s *Store) FindSpots(ctx context.Context, q domain.SpotQuery) ([]domain.RawSpot, error) {
	query, args := spotsql.Build(s.table, q, spotsql.Dollar)

	rows, err := s.pool.Query(ctx, query, args...)
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
	return s.pool.Ping(ctx)
}

// Close releases pool connections.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

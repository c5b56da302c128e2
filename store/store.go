// Package store is the Postgres data access layer. Lookups of a single row
// return nil, nil when the row does not exist.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrNoDraft is returned when publishing a GP that has no draft result.
var ErrNoDraft = errors.New("no draft result for grand prix")

// Store wraps a bun connection pool.
type Store struct {
	db *bun.DB
}

// New creates a Store over db.
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// scanOne runs q and reports false instead of sql.ErrNoRows.
func scanOne(ctx context.Context, q *bun.SelectQuery, what string) (bool, error) {
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("select %s: %w", what, err)
	}
	return true, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps cache records in the qualitative_cache table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Get(ctx context.Context, ticker string) (*Record, error) {
	query := `
		SELECT ticker, payload, updated_at
		FROM qualitative_cache
		WHERE ticker = $1
	`
	var rec Record
	if err := pgxscan.Get(ctx, s.pool, &rec, query, normalizeTicker(ticker)); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache for %s: %w", ticker, err)
	}
	return &rec, nil
}

func (s *PostgresStore) Put(ctx context.Context, rec Record) error {
	query := `
		INSERT INTO qualitative_cache (ticker, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticker) DO UPDATE SET
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.pool.Exec(ctx, query, normalizeTicker(rec.Ticker), rec.Payload, rec.UpdatedAt); err != nil {
		return fmt.Errorf("failed to write cache for %s: %w", rec.Ticker, err)
	}
	return nil
}

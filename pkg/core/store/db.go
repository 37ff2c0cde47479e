package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"shariah_screener/pkg/core/logging"
)

// ErrNoDatabaseURL is returned by InitDB when no connection string is set.
var ErrNoDatabaseURL = errors.New("DATABASE_URL not set")

var (
	poolMu sync.Mutex
	pool   *pgxpool.Pool
)

// Pool sizing for the cache workload: short reads and single-row upserts.
const (
	maxPoolConns    = 8
	maxConnIdleTime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// InitDB opens the shared pool and verifies it with a ping. It is a no-op
// once a pool is open; a failed attempt leaves nothing behind, so callers
// may retry.
func InitDB(ctx context.Context, dbURL string) error {
	poolMu.Lock()
	defer poolMu.Unlock()

	if pool != nil {
		return nil
	}
	if dbURL == "" {
		return ErrNoDatabaseURL
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}
	config.MaxConns = maxPoolConns
	config.MaxConnIdleTime = maxConnIdleTime

	p, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	pool = p
	logger := logging.For("store")
	logger.Info().
		Str("host", config.ConnConfig.Host).
		Str("database", config.ConnConfig.Database).
		Msg("postgres cache connected")
	return nil
}

// GetPool returns the shared pool, or nil before InitDB succeeds.
func GetPool() *pgxpool.Pool {
	poolMu.Lock()
	defer poolMu.Unlock()
	return pool
}

// Close closes the shared pool. A later InitDB opens a new one.
func Close() {
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps cache records in a local SQLite file, for single-node
// deployments and the CLI.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path. ":memory:"
// gives a private in-process database.
func OpenSQLite(path string) (*SQLiteStore, error) {
	connStr := path
	if path == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS qualitative_cache (
			ticker     TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, ticker string) (*Record, error) {
	var (
		rec     Record
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT ticker, payload, updated_at FROM qualitative_cache WHERE ticker = ?`,
		normalizeTicker(ticker),
	).Scan(&rec.Ticker, &rec.Payload, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query cache for %s: %w", ticker, err)
	}
	rec.UpdatedAt = time.UnixMilli(updated).UTC()
	return &rec, nil
}

func (s *SQLiteStore) Put(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO qualitative_cache (ticker, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, normalizeTicker(rec.Ticker), rec.Payload, rec.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert cache for %s: %w", rec.Ticker, err)
	}
	return nil
}

package store

import (
	"context"
	"strings"
	"time"
)

// Record is one row of the qualitative cache.
type Record struct {
	Ticker    string    `db:"ticker"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

// KV is the key-value contract behind the qualitative cache. Get returns nil
// without error on a miss. Put upserts on ticker; the last write wins.
type KV interface {
	Get(ctx context.Context, ticker string) (*Record, error)
	Put(ctx context.Context, rec Record) error
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

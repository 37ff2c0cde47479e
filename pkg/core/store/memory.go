package store

import (
	"context"

	"github.com/alphadose/haxmap"
)

// MemoryStore is a process-local KV used when no database is configured.
type MemoryStore struct {
	records *haxmap.Map[string, Record]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: haxmap.New[string, Record]()}
}

func (s *MemoryStore) Get(_ context.Context, ticker string) (*Record, error) {
	rec, ok := s.records.Get(normalizeTicker(ticker))
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, rec Record) error {
	rec.Ticker = normalizeTicker(rec.Ticker)
	rec.Payload = append([]byte(nil), rec.Payload...)
	s.records.Set(rec.Ticker, rec)
	return nil
}

// Len reports the number of cached tickers.
func (s *MemoryStore) Len() int {
	return int(s.records.Len())
}

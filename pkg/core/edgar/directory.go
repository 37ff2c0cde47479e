package edgar

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alphadose/haxmap"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"shariah_screener/pkg/core/logging"
)

// DirectoryTTL is how long a loaded ticker directory is reused.
const DirectoryTTL = 24 * time.Hour

// Directory maps tickers to padded CIKs. It is loaded lazily on first use and
// reloaded on the first lookup after it expires. Concurrent lookups during an
// expiry may each trigger a reload; the last completed load wins and readers
// always see a fully built map.
type Directory struct {
	fetch    func(ctx context.Context) ([]byte, error)
	ttl      time.Duration
	now      func() time.Time
	entries  atomic.Pointer[haxmap.Map[string, string]]
	loadedAt atomic.Int64
	logger   zerolog.Logger
}

// NewDirectory creates a directory backed by fetch, which returns the raw
// company_tickers.json document.
func NewDirectory(fetch func(ctx context.Context) ([]byte, error), ttl time.Duration) *Directory {
	if ttl <= 0 {
		ttl = DirectoryTTL
	}
	return &Directory{
		fetch:  fetch,
		ttl:    ttl,
		now:    time.Now,
		logger: logging.For("edgar.directory"),
	}
}

// Lookup returns the CIK for ticker. ok is false when the ticker is unknown.
func (d *Directory) Lookup(ctx context.Context, ticker string) (string, bool, error) {
	entries, err := d.current(ctx)
	if err != nil {
		return "", false, err
	}

	for _, key := range tickerKeys(ticker) {
		if cik, ok := entries.Get(key); ok {
			return cik, true, nil
		}
	}
	return "", false, nil
}

func (d *Directory) current(ctx context.Context) (*haxmap.Map[string, string], error) {
	entries := d.entries.Load()
	age := d.now().Sub(time.Unix(0, d.loadedAt.Load()))
	if entries != nil && age < d.ttl {
		return entries, nil
	}

	fresh, err := d.load(ctx)
	if err != nil {
		if entries != nil {
			d.logger.Warn().Err(err).Msg("ticker directory refresh failed, serving stale copy")
			return entries, nil
		}
		return nil, err
	}

	d.entries.Store(fresh)
	d.loadedAt.Store(d.now().UnixNano())
	return fresh, nil
}

// load fetches and parses the directory.
// Format: {"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}, ...}
func (d *Directory) load(ctx context.Context) (*haxmap.Map[string, string], error) {
	body, err := d.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch company tickers: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to parse ticker JSON: invalid document")
	}

	entries := haxmap.New[string, string]()
	count := 0
	gjson.ParseBytes(body).ForEach(func(_, entry gjson.Result) bool {
		ticker := entry.Get("ticker")
		cik := entry.Get("cik_str")
		if ticker.Type != gjson.String || !cik.Exists() || cik.Int() <= 0 {
			return true
		}
		entries.Set(normalizeTicker(ticker.String()), fmt.Sprintf("%010d", cik.Int()))
		count++
		return true
	})

	d.logger.Info().Int("tickers", count).Msg("loaded ticker directory")
	return entries, nil
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// tickerKeys lists the spellings tried for a ticker: share-class tickers
// appear as "BRK-B" in the directory but are often typed "BRK.B".
func tickerKeys(ticker string) []string {
	t := normalizeTicker(ticker)
	keys := []string{t}
	if dashed := strings.ReplaceAll(t, ".", "-"); dashed != t {
		keys = append(keys, dashed)
	}
	return keys
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"shariah_screener/pkg/core/logging"
	"shariah_screener/pkg/models"
)

// SchemaVersion is bumped whenever QualitativeResult or the extraction rules
// change in a way that invalidates stored results.
const SchemaVersion = 3

// QualitativeTTL is how long a cached qualitative result stays valid.
const QualitativeTTL = 30 * 24 * time.Hour

// HintChecker reports whether a ticker has a registered extraction hint.
type HintChecker interface {
	HasHint(ticker string) bool
}

type cachePayload struct {
	Version int                       `json:"version"`
	Result  *models.QualitativeResult `json:"result"`
}

// QualitativeCache stores per-ticker qualitative results in a KV with a TTL
// and schema version. Failures on either side behave as a miss or are logged.
type QualitativeCache struct {
	kv     KV
	hints  HintChecker
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

// NewQualitativeCache creates a cache over kv. hints may be nil.
func NewQualitativeCache(kv KV, hints HintChecker) *QualitativeCache {
	return &QualitativeCache{
		kv:     kv,
		hints:  hints,
		ttl:    QualitativeTTL,
		now:    time.Now,
		logger: logging.For("qualitative-cache"),
	}
}

// WithClock replaces the time source.
func (c *QualitativeCache) WithClock(now func() time.Time) *QualitativeCache {
	c.now = now
	return c
}

// Get returns the cached result for ticker. An entry is a hit only when its
// version matches, it is at most 30 days old, and, for tickers with an
// extraction hint, it carries at least one segment.
func (c *QualitativeCache) Get(ctx context.Context, ticker string) (*models.QualitativeResult, bool) {
	rec, err := c.kv.Get(ctx, ticker)
	if err != nil {
		c.logger.Warn().Err(err).Str("ticker", ticker).Msg("cache read failed")
		return nil, false
	}
	if rec == nil {
		return nil, false
	}

	var payload cachePayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		c.logger.Warn().Err(err).Str("ticker", ticker).Msg("discarding undecodable cache entry")
		return nil, false
	}
	if payload.Version != SchemaVersion || payload.Result == nil {
		return nil, false
	}
	if c.now().Sub(rec.UpdatedAt) > c.ttl {
		return nil, false
	}
	if c.hints != nil && c.hints.HasHint(ticker) && len(payload.Result.Segments) == 0 {
		// Stored before the hint existed or when it failed to match.
		return nil, false
	}
	return payload.Result, true
}

// Put stores result for ticker. Errors are logged and not returned.
func (c *QualitativeCache) Put(ctx context.Context, ticker string, result *models.QualitativeResult) {
	if err := c.put(ctx, ticker, result); err != nil {
		c.logger.Warn().Err(err).Str("ticker", ticker).Msg("cache write failed")
	}
}

func (c *QualitativeCache) put(ctx context.Context, ticker string, result *models.QualitativeResult) error {
	if result == nil {
		return fmt.Errorf("nil result")
	}
	data, err := json.Marshal(cachePayload{Version: SchemaVersion, Result: result})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return c.kv.Put(ctx, Record{Ticker: ticker, Payload: data, UpdatedAt: c.now().UTC()})
}

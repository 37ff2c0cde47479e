package config

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcfg "shariah_screener/pkg/core/config"
	"shariah_screener/pkg/core/screening"
)

func TestHandleConfig(t *testing.T) {
	h := NewHandler(&appcfg.Config{
		AppEnv:         "production",
		CacheBackend:   "postgres",
		DatabaseURL:    "postgres://secret@db/screener",
		SECMinInterval: 250 * time.Millisecond,
	}, screening.NewBoycottList(screening.BoycottEntry{Ticker: "XYZ"}))

	rec := httptest.NewRecorder()
	h.HandleConfig(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")

	var got Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "production", got.Environment)
	assert.Equal(t, int64(250), got.SECMinIntervalMs)
	assert.Equal(t, 1, got.BoycottEntries)
	assert.Equal(t, 30.0, got.RatioThreshold)
	assert.Equal(t, 5.0, got.RevenueThreshold)
	assert.Equal(t, 30, got.CacheTTLDays)
}

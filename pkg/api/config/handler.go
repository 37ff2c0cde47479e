package config

import (
	"net/http"

	"github.com/goccy/go-json"

	appcfg "shariah_screener/pkg/core/config"
	"shariah_screener/pkg/core/ratios"
	"shariah_screener/pkg/core/screening"
	"shariah_screener/pkg/core/store"
)

// Response is the non-secret runtime configuration.
type Response struct {
	Environment        string  `json:"environment"`
	CacheBackend       string  `json:"cache_backend"`
	SECMinIntervalMs   int64   `json:"sec_min_interval_ms"`
	DocumentCache      bool    `json:"document_cache"`
	BoycottEntries     int     `json:"boycott_entries"`
	RatioThreshold     float64 `json:"ratio_threshold"`
	RevenueThreshold   float64 `json:"revenue_threshold"`
	CacheTTLDays       int     `json:"cache_ttl_days"`
	CacheSchemaVersion int     `json:"cache_schema_version"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Config  *appcfg.Config
	Boycott *screening.BoycottList
}

// NewHandler creates a new config handler
func NewHandler(cfg *appcfg.Config, boycott *screening.BoycottList) *Handler {
	return &Handler{
		Config:  cfg,
		Boycott: boycott,
	}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	// Add CORS headers for local dev
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")

	resp := Response{
		Environment:        h.Config.AppEnv,
		CacheBackend:       h.Config.CacheBackend,
		SECMinIntervalMs:   h.Config.SECMinInterval.Milliseconds(),
		DocumentCache:      h.Config.DocumentCacheDir != "",
		BoycottEntries:     h.Boycott.Len(),
		RatioThreshold:     ratios.Threshold,
		RevenueThreshold:   screening.RevenueThreshold,
		CacheTTLDays:       int(store.QualitativeTTL.Hours() / 24),
		CacheSchemaVersion: store.SchemaVersion,
	}
	json.NewEncoder(w).Encode(resp)
}

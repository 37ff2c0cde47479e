package screening

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	core "shariah_screener/pkg/core/screening"
	"shariah_screener/pkg/models"
)

// Screener is the part of the orchestrator the handlers use.
type Screener interface {
	Screen(ctx context.Context, req core.Request) *models.ScreeningResult
	Qualitative(ctx context.Context, ticker string) (*models.QualitativeResult, bool, []string, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// QualitativeResponse wraps a qualitative result with its cache provenance.
type QualitativeResponse struct {
	Ticker    string                    `json:"ticker"`
	FromCache bool                      `json:"fromCache"`
	Result    *models.QualitativeResult `json:"result"`
}

// Handler holds dependencies for screening endpoints
type Handler struct {
	Screener Screener
	Timeout  time.Duration
}

// NewHandler creates a new screening handler
func NewHandler(s Screener) *Handler {
	return &Handler{Screener: s, Timeout: 2 * time.Minute}
}

// Routes mounts the endpoints on r.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/screening", h.HandleScreen)
	r.Get("/api/screening/{ticker}/qualitative", h.HandleQualitative)
}

// HandleScreen runs a full screening for the posted profile and financials.
func (h *Handler) HandleScreen(w http.ResponseWriter, r *http.Request) {
	var req core.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Profile.Ticker) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "profile.ticker is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	writeJSON(w, http.StatusOK, h.Screener.Screen(ctx, req))
}

// HandleQualitative returns the qualitative bundle for a ticker, from cache
// when fresh.
func (h *Handler) HandleQualitative(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "ticker")))
	if ticker == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "ticker is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	result, fromCache, _, err := h.Screener.Qualitative(ctx, ticker)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	if !result.HasRevenue() {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "no filing data for " + ticker})
		return
	}
	writeJSON(w, http.StatusOK, QualitativeResponse{Ticker: ticker, FromCache: fromCache, Result: result})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

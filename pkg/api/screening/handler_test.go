package screening

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "shariah_screener/pkg/core/screening"
	"shariah_screener/pkg/models"
)

type MockScreener struct {
	LastRequest core.Request
	Result      *models.QualitativeResult
	FromCache   bool
	Err         error
}

func (m *MockScreener) Screen(_ context.Context, req core.Request) *models.ScreeningResult {
	m.LastRequest = req
	return &models.ScreeningResult{
		Ticker:            strings.ToUpper(req.Profile.Ticker),
		OverallStatus:     models.StatusCompliant,
		QualitativeMethod: models.MethodSegmentBased,
		Issues:            []string{},
	}
}

func (m *MockScreener) Qualitative(context.Context, string) (*models.QualitativeResult, bool, []string, error) {
	return m.Result, m.FromCache, nil, m.Err
}

func newRouter(s Screener) http.Handler {
	r := chi.NewRouter()
	NewHandler(s).Routes(r)
	return r
}

func TestHandleScreen(t *testing.T) {
	mock := &MockScreener{}
	body := `{"profile": {"ticker": "aapl", "sector": "Technology"}, "financials": {"marketCap": 800000, "totalDebt": 5500}}`

	rec := httptest.NewRecorder()
	newRouter(mock).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/screening", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, 800000.0, mock.LastRequest.Financials.MarketCap)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "AAPL", got["ticker"])
	assert.Equal(t, "Compliant", got["overallStatus"])
	assert.Equal(t, "segment_based", got["qualitativeMethod"])
}

func TestHandleScreenRejectsBadInput(t *testing.T) {
	for _, body := range []string{`{`, `{"profile": {"ticker": "  "}}`} {
		rec := httptest.NewRecorder()
		newRouter(&MockScreener{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/screening", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestHandleQualitative(t *testing.T) {
	revenue := 1000.0
	mock := &MockScreener{Result: &models.QualitativeResult{TotalRevenue: &revenue, CompliantPercent: 100}, FromCache: true}

	rec := httptest.NewRecorder()
	newRouter(mock).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/screening/msft/qualitative", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got QualitativeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "MSFT", got.Ticker)
	assert.True(t, got.FromCache)
	assert.Equal(t, 100.0, got.Result.CompliantPercent)
}

func TestHandleQualitativeNotFoundAndErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&MockScreener{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/screening/zzzz/qualitative", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	newRouter(&MockScreener{Err: errors.New("sec down")}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/screening/zzzz/qualitative", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "sec down")
}

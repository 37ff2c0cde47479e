package screening

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shariah_screener/pkg/core/classify"
	"shariah_screener/pkg/core/edgar"
	"shariah_screener/pkg/core/overrides"
	"shariah_screener/pkg/core/segments"
	"shariah_screener/pkg/models"
)

type MockFilingSource struct {
	CIKs     map[string]string
	Filing   *models.FilingReference
	Facts    string
	HTML     string
	FactsErr error
	DocErr   error
}

func (m *MockFilingSource) LookupCIK(_ context.Context, ticker string) (string, bool, error) {
	cik, ok := m.CIKs[ticker]
	return cik, ok, nil
}

func (m *MockFilingSource) LatestAnnualFiling(context.Context, string) (*models.FilingReference, error) {
	return m.Filing, nil
}

func (m *MockFilingSource) CompanyFacts(context.Context, string) (*edgar.CompanyFacts, error) {
	if m.FactsErr != nil {
		return nil, m.FactsErr
	}
	if m.Facts == "" {
		return nil, nil
	}
	return edgar.ParseCompanyFacts([]byte(m.Facts))
}

func (m *MockFilingSource) FetchDocument(context.Context, *models.FilingReference) (string, error) {
	return m.HTML, m.DocErr
}

const scalarFacts = `{"entityName": "Acme", "facts": {"us-gaap": {
  "Revenues": {"units": {"USD": [
    {"val": 900, "form": "10-K", "end": "2023-12-31", "filed": "2024-02-01"},
    {"val": 1000, "form": "10-K", "end": "2024-12-31", "filed": "2025-02-01"}
  ]}},
  "InvestmentIncomeInterest": {"units": {"USD": [
    {"val": 20, "form": "10-K", "end": "2024-12-31", "filed": "2025-02-01"}
  ]}}
}}}`

const segmentFacts = `{"entityName": "Acme", "facts": {"us-gaap": {
  "Revenues": {"units": {"USD": [
    {"val": 1000, "form": "10-K", "end": "2024-12-31", "filed": "2025-02-01"},
    {"val": 600, "form": "10-K", "end": "2024-12-31", "filed": "2025-02-01", "segment": {"srt:ProductOrServiceAxis": "acme:HardwareMember"}},
    {"val": 400, "form": "10-K", "end": "2024-12-31", "filed": "2025-02-01", "segment": {"srt:ProductOrServiceAxis": "acme:LicensingMember"}}
  ]}}
}}}`

const expenseOnlyDocument = `<html><body>
<p>Operating expenses by segment (in millions)</p>
<table>
  <tr><td>Cost of revenue</td><td>1,200</td></tr>
  <tr><td>Research and development</td><td>800</td></tr>
  <tr><td>Sales and marketing</td><td>500</td></tr>
  <tr><td>Total operating expenses</td><td>2,500</td></tr>
</table>
</body></html>`

func newTestPipeline(source FilingSource) *QualitativePipeline {
	reg := overrides.NewRegistry()
	return NewQualitativePipeline(source, segments.NewExtractor(reg), classify.New(reg))
}

func testFiling() *models.FilingReference {
	return &models.FilingReference{CIK: "0000000042", Form: "10-K", DocumentURL: "https://www.sec.gov/Archives/edgar/data/42/000004225000001/acme-20241231.htm"}
}

func TestBuild_UnknownTickerIsAbsent(t *testing.T) {
	p := newTestPipeline(&MockFilingSource{})

	res, debug, err := p.Build(context.Background(), "NOPE")

	require.NoError(t, err)
	assert.Nil(t, res)
	assert.NotEmpty(t, debug)
}

func TestBuild_SegmentBased(t *testing.T) {
	p := newTestPipeline(&MockFilingSource{
		CIKs:   map[string]string{"ACME": "42"},
		Filing: testFiling(),
		Facts:  segmentFacts,
	})

	res, _, err := p.Build(context.Background(), "ACME")

	require.NoError(t, err)
	require.True(t, res.HasRevenue())
	assert.Equal(t, 1000.0, *res.TotalRevenue)
	assert.Equal(t, "us-gaap:Revenues", res.XBRLTags.TotalRevenue)
	assert.Equal(t, "xbrl_segments", res.ExtractionMethod)
	require.Len(t, res.Segments, 2)
	assert.Equal(t, models.CategoryAllowed, res.Segments[0].ComplianceCategory)
	assert.Equal(t, models.CategoryQuestionable, res.Segments[1].ComplianceCategory)
	assert.InDelta(t, 60, res.CompliantPercent, 1e-9)
	assert.InDelta(t, 40, res.QuestionablePercent, 1e-9)
	assert.InDelta(t, 0, res.NonCompliantPercent, 1e-9)
	assert.Equal(t, 1000.0, res.SegmentTotal)
	assert.Equal(t, testFiling().DocumentURL, res.DataSources["filing"])

	var share float64
	for _, s := range res.Segments {
		share += s.PercentOfTotal
	}
	assert.InDelta(t, 100, share, 1e-9)
	assert.InDelta(t, 100, res.CompliantPercent+res.QuestionablePercent+res.NonCompliantPercent, 1e-9)
}

func TestBuild_ExpenseTableFallsBackToScalars(t *testing.T) {
	p := newTestPipeline(&MockFilingSource{
		CIKs:   map[string]string{"ACME": "42"},
		Filing: testFiling(),
		Facts:  scalarFacts,
		HTML:   expenseOnlyDocument,
	})

	res, debug, err := p.Build(context.Background(), "ACME")

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Empty(t, res.Segments)
	assert.Empty(t, res.ExtractionMethod)
	assert.InDelta(t, 2, res.InterestIncomePercent, 1e-9)
	assert.InDelta(t, 2, res.NonCompliantPercent, 1e-9)
	assert.InDelta(t, 98, res.CompliantPercent, 1e-9)
	assert.Zero(t, res.SegmentTotal)
	assert.Contains(t, debug, "no usable segment breakdown; percentages derived from interest income")
}

func TestBuild_DocumentFailureDegrades(t *testing.T) {
	p := newTestPipeline(&MockFilingSource{
		CIKs:   map[string]string{"ACME": "42"},
		Filing: testFiling(),
		Facts:  segmentFacts,
		DocErr: errors.New("timeout"),
	})

	res, debug, err := p.Build(context.Background(), "ACME")

	require.NoError(t, err)
	assert.Len(t, res.Segments, 2)
	assert.Contains(t, debug, "filing document fetch failed: timeout")
}

func TestBuild_FactsErrorPropagates(t *testing.T) {
	p := newTestPipeline(&MockFilingSource{
		CIKs:     map[string]string{"ACME": "42"},
		FactsErr: errors.New("status 429"),
	})

	_, _, err := p.Build(context.Background(), "ACME")

	assert.ErrorContains(t, err, "status 429")
}

func TestBuild_NoRevenue(t *testing.T) {
	p := newTestPipeline(&MockFilingSource{
		CIKs:  map[string]string{"ACME": "42"},
		Facts: `{"facts": {"us-gaap": {"Assets": {"units": {"USD": [{"val": 5, "form": "10-K", "end": "2024-12-31"}]}}}}}`,
	})

	res, _, err := p.Build(context.Background(), "ACME")

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, res.HasRevenue())
}

func TestEstimateFor(t *testing.T) {
	haram := classify.New(overrides.NewRegistry())

	tests := []struct {
		name    string
		profile models.CompanyProfile
		want    [3]float64
	}{
		{"gold miner", models.CompanyProfile{Sector: "Basic Materials", Industry: "Gold"}, [3]float64{100, 0, 0}},
		{"gold in description", models.CompanyProfile{Sector: "Basic Materials", Industry: "Other Precious Metals", Description: "A gold mining company"}, [3]float64{100, 0, 0}},
		{"casino", models.CompanyProfile{Sector: "Consumer Cyclical", Industry: "Resorts & Casinos"}, [3]float64{0, 0, 100}},
		{"financials", models.CompanyProfile{Sector: "Financials"}, [3]float64{10, 20, 70}},
		{"technology", models.CompanyProfile{Sector: "Technology"}, [3]float64{85, 12, 3}},
		{"gics alias", models.CompanyProfile{Sector: "Information Technology"}, [3]float64{85, 12, 3}},
		{"real estate", models.CompanyProfile{Sector: "Real Estate"}, [3]float64{60, 20, 20}},
		{"unknown", models.CompanyProfile{Sector: "Conglomerates"}, [3]float64{70, 20, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := EstimateFor(tt.profile, haram)
			assert.Equal(t, tt.want, [3]float64{est.Compliant, est.Questionable, est.NonCompliant})
		})
	}
}

func TestBoycottList(t *testing.T) {
	var nilList *BoycottList
	_, ok := nilList.Lookup("X")
	assert.False(t, ok)

	b := NewBoycottList(BoycottEntry{Ticker: " xyz ", Reason: "r"}, BoycottEntry{})
	assert.Equal(t, 1, b.Len())
	e, ok := b.Lookup("XYZ")
	require.True(t, ok)
	assert.Equal(t, "r", e.Reason)
}

package screening

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"shariah_screener/pkg/core/classify"
	"shariah_screener/pkg/core/edgar"
	"shariah_screener/pkg/core/logging"
	"shariah_screener/pkg/core/segments"
	"shariah_screener/pkg/models"
)

// FilingSource is the SEC side of the pipeline. A nil result with a nil
// error means "not found".
type FilingSource interface {
	LookupCIK(ctx context.Context, ticker string) (string, bool, error)
	LatestAnnualFiling(ctx context.Context, cik string) (*models.FilingReference, error)
	CompanyFacts(ctx context.Context, cik string) (*edgar.CompanyFacts, error)
	FetchDocument(ctx context.Context, ref *models.FilingReference) (string, error)
}

// QualitativePipeline builds a QualitativeResult from filings: scalar facts,
// segment extraction and classification.
type QualitativePipeline struct {
	source     FilingSource
	extractor  *segments.Extractor
	classifier *classify.Classifier
	logger     zerolog.Logger
}

// NewQualitativePipeline wires the pipeline stages.
func NewQualitativePipeline(source FilingSource, extractor *segments.Extractor, classifier *classify.Classifier) *QualitativePipeline {
	return &QualitativePipeline{
		source:     source,
		extractor:  extractor,
		classifier: classifier,
		logger:     logging.For("qualitative"),
	}
}

// Build runs the pipeline for ticker. It returns a nil result for unknown
// tickers and companies without structured facts. The debug notes describe
// degraded steps that did not abort the run.
func (p *QualitativePipeline) Build(ctx context.Context, ticker string) (*models.QualitativeResult, []string, error) {
	var debug []string

	cik, ok, err := p.source.LookupCIK(ctx, ticker)
	if err != nil {
		return nil, debug, fmt.Errorf("lookup CIK for %s: %w", ticker, err)
	}
	if !ok {
		return nil, append(debug, fmt.Sprintf("ticker %s not found in SEC directory", ticker)), nil
	}

	filing, err := p.source.LatestAnnualFiling(ctx, cik)
	if err != nil {
		return nil, debug, fmt.Errorf("locate annual filing for %s: %w", ticker, err)
	}
	if filing == nil {
		debug = append(debug, fmt.Sprintf("no annual filing found for CIK %s", cik))
	}

	facts, err := p.source.CompanyFacts(ctx, cik)
	if err != nil {
		return nil, debug, fmt.Errorf("fetch company facts for %s: %w", ticker, err)
	}
	if facts == nil {
		return nil, append(debug, fmt.Sprintf("no structured facts for CIK %s", cik)), nil
	}

	result := &models.QualitativeResult{
		Filing:      filing,
		DataSources: make(map[string]string),
	}
	if filing != nil {
		result.DataSources["filing"] = filing.DocumentURL
	}

	revenue := facts.Scalar("totalRevenue", edgar.RevenueTags)
	if revenue == nil || revenue.Value <= 0 {
		return result, append(debug, "no usable total revenue in structured facts"), nil
	}
	result.TotalRevenue = &revenue.Value
	result.XBRLTags.TotalRevenue = revenue.SourceTag
	result.DataSources["totalRevenue"] = revenue.SourceTag

	if interest := facts.Scalar("interestIncome", edgar.InterestIncomeTags); interest != nil {
		result.InterestIncome = &interest.Value
		result.XBRLTags.InterestIncome = interest.SourceTag
		result.DataSources["interestIncome"] = interest.SourceTag
		result.InterestIncomePercent = classify.Clamp(interest.Value / revenue.Value * 100)
	}

	var html string
	if filing != nil {
		html, err = p.source.FetchDocument(ctx, filing)
		if err != nil {
			p.logger.Warn().Err(err).Str("ticker", ticker).Msg("filing document unavailable, using structured facts only")
			debug = append(debug, fmt.Sprintf("filing document fetch failed: %v", err))
			html = ""
		}
	}

	extracted := p.extractor.Extract(&segments.Input{
		Ticker:       ticker,
		Facts:        facts,
		HTML:         html,
		TotalRevenue: revenue.Value,
	})
	result.ExtractionMethod = extracted.Method
	if extracted.Method != "" {
		result.DataSources["segments"] = extracted.Method
	}

	segs, breakdown := p.classifier.ClassifyAll(ticker, extracted.Segments)
	if !breakdown.Usable {
		debug = append(debug, "no usable segment breakdown; percentages derived from interest income")
		breakdown = classify.ScalarBreakdown(result.TotalRevenue, result.InterestIncome)
	}
	result.Segments = segs
	result.SegmentTotal = breakdown.SegmentTotal
	result.CompliantPercent = breakdown.CompliantPercent
	result.QuestionablePercent = breakdown.QuestionablePercent
	result.NonCompliantPercent = breakdown.NonCompliantPercent

	p.logger.Debug().
		Str("ticker", ticker).
		Str("method", extracted.Method).
		Int("segments", len(segs)).
		Float64("non_compliant_pct", result.NonCompliantPercent).
		Msg("qualitative result built")
	return result, debug, nil
}

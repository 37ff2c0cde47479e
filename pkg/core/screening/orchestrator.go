// Package screening combines the qualitative pipeline, the ratio screen and
// the fallback rules into a single compliance verdict.
package screening

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shariah_screener/pkg/core/classify"
	"shariah_screener/pkg/core/fx"
	"shariah_screener/pkg/core/logging"
	"shariah_screener/pkg/core/ratios"
	"shariah_screener/pkg/models"
)

// RevenueThreshold is the percentage at or above which questionable or
// non-compliant revenue fails the qualitative screen.
const RevenueThreshold = 5.0

// IssueSECUnavailable is appended whenever the sector estimate is used.
const IssueSECUnavailable = "SEC data unavailable; qualitative screening uses sector-based estimates"

// QualitativeSource produces a fresh qualitative result for a ticker.
type QualitativeSource interface {
	Build(ctx context.Context, ticker string) (*models.QualitativeResult, []string, error)
}

// QualitativeCache stores qualitative results between requests.
type QualitativeCache interface {
	Get(ctx context.Context, ticker string) (*models.QualitativeResult, bool)
	Put(ctx context.Context, ticker string, result *models.QualitativeResult)
}

// Request is one screening request. Financials come from the caller's quote
// provider.
type Request struct {
	Profile    models.CompanyProfile `json:"profile"`
	Financials models.Financials     `json:"financials"`
}

// Orchestrator runs a screening end to end. It is safe for concurrent use.
type Orchestrator struct {
	source     QualitativeSource
	cache      QualitativeCache
	classifier *classify.Classifier
	boycott    *BoycottList
	converter  *fx.Converter
	production bool
	now        func() time.Time
	logger     zerolog.Logger
}

// NewOrchestrator creates an orchestrator. cache may be nil.
func NewOrchestrator(source QualitativeSource, cache QualitativeCache, classifier *classify.Classifier) *Orchestrator {
	if classifier == nil {
		classifier = classify.New(nil)
	}
	return &Orchestrator{
		source:     source,
		cache:      cache,
		classifier: classifier,
		now:        time.Now,
		logger:     logging.For("orchestrator"),
	}
}

// SetBoycottList sets the exclusion list.
func (o *Orchestrator) SetBoycottList(b *BoycottList) { o.boycott = b }

// SetConverter sets the currency converter used for mismatched financials.
func (o *Orchestrator) SetConverter(c *fx.Converter) { o.converter = c }

// SetProduction hides debug messages from results when true.
func (o *Orchestrator) SetProduction(production bool) { o.production = production }

// SetClock replaces the time source.
func (o *Orchestrator) SetClock(now func() time.Time) { o.now = now }

// Qualitative returns the cached qualitative result for ticker or builds a
// fresh one. Only results with a usable total revenue are cached.
func (o *Orchestrator) Qualitative(ctx context.Context, ticker string) (*models.QualitativeResult, bool, []string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if o.cache != nil {
		if cached, ok := o.cache.Get(ctx, ticker); ok {
			return cached, true, nil, nil
		}
	}
	if o.source == nil {
		return nil, false, []string{"no filing source configured"}, nil
	}

	result, debug, err := o.source.Build(ctx, ticker)
	if err != nil {
		return nil, false, debug, err
	}
	if o.cache != nil && result.HasRevenue() {
		o.cache.Put(ctx, ticker, result)
	}
	return result, false, debug, nil
}

// Screen produces the verdict for req. It never fails: missing or broken
// inputs degrade the result and are explained in Issues.
func (o *Orchestrator) Screen(ctx context.Context, req Request) *models.ScreeningResult {
	ticker := strings.ToUpper(strings.TrimSpace(req.Profile.Ticker))
	result := &models.ScreeningResult{
		ScreeningID:       uuid.NewString(),
		Ticker:            ticker,
		Name:              req.Profile.Name,
		Sector:            req.Profile.Sector,
		Industry:          req.Profile.Industry,
		QualitativeMethod: models.MethodInsufficientData,
		Issues:            []string{},
		ScreenedAt:        o.now().UTC(),
	}
	var debug []string

	// Quantitative
	financials := o.normalizeFinancials(req.Financials, result)
	quant, quantErr := ratios.Compute(financials)
	if quantErr != nil {
		result.Issues = append(result.Issues, "Market capitalization unavailable; quantitative screen failed")
	}
	result.Quantitative = quant
	result.RawData.Financials = financials

	// Qualitative
	qual, fromCache, notes, err := o.Qualitative(ctx, ticker)
	debug = append(debug, notes...)
	if err != nil {
		o.logger.Warn().Err(err).Str("ticker", ticker).Msg("qualitative pipeline failed")
		debug = append(debug, fmt.Sprintf("SEC data fetch failed: %v", err))
	}
	if qual != nil {
		result.SECFiling = qual.Filing
		result.RawData.TotalRevenue = qual.TotalRevenue
		result.RawData.InterestIncome = qual.InterestIncome
	}

	if qual.HasRevenue() {
		result.QualitativeMethod = models.MethodSegmentBased
		result.Qualitative = models.QualitativeSummary{
			CompliantPercent:      qual.CompliantPercent,
			QuestionablePercent:   qual.QuestionablePercent,
			NonCompliantPercent:   qual.NonCompliantPercent,
			InterestIncomePercent: qual.InterestIncomePercent,
			Segments:              qual.Segments,
			SegmentTotal:          qual.SegmentTotal,
			DataSources:           qual.DataSources,
			XBRLTags:              qual.XBRLTags,
			FromCache:             fromCache,
		}
	} else {
		est := EstimateFor(req.Profile, o.classifier)
		result.QualitativeMethod = models.MethodIndustryEstimate
		result.Qualitative = models.QualitativeSummary{
			CompliantPercent:    est.Compliant,
			QuestionablePercent: est.Questionable,
			NonCompliantPercent: est.NonCompliant,
			Segments:            []models.Segment{},
			DataSources:         map[string]string{"estimate": est.Basis},
		}
		result.Issues = append(result.Issues, IssueSECUnavailable)
	}
	q := &result.Qualitative
	q.Passed = q.NonCompliantPercent < RevenueThreshold &&
		q.QuestionablePercent < RevenueThreshold &&
		q.InterestIncomePercent < RevenueThreshold

	result.Issues = append(result.Issues, quantitativeIssues(quant, quantErr == nil)...)
	result.OverallStatus = o.decide(req.Profile, result)

	if !o.production {
		result.Debug = debug
	}
	o.logger.Info().
		Str("ticker", ticker).
		Str("status", string(result.OverallStatus)).
		Str("method", string(result.QualitativeMethod)).
		Msg("screening complete")
	return result
}

// decide applies the status precedence and appends the matching issue.
func (o *Orchestrator) decide(profile models.CompanyProfile, result *models.ScreeningResult) models.OverallStatus {
	q := result.Qualitative

	if !result.Quantitative.Passed {
		return models.StatusNonCompliant
	}
	if entry, ok := o.boycott.Lookup(result.Ticker); ok {
		issue := "Company is on the boycott list"
		if entry.Reason != "" {
			issue += ": " + entry.Reason
		}
		result.Issues = append(result.Issues, issue)
		return models.StatusQuestionable
	}
	if o.classifier.HasDisallowedKeyword(profile.Sector) || o.classifier.HasDisallowedKeyword(profile.Industry) {
		result.Issues = append(result.Issues, "Sector or industry involves a prohibited business activity")
		return models.StatusNonCompliant
	}
	if IsFinancialSector(profile.Sector) {
		result.Issues = append(result.Issues, "Financial services companies are not permissible")
		return models.StatusNonCompliant
	}
	if q.NonCompliantPercent >= RevenueThreshold {
		result.Issues = append(result.Issues, fmt.Sprintf("Non-compliant revenue %.2f%% is at or above the %.0f%% threshold", q.NonCompliantPercent, RevenueThreshold))
		return models.StatusNonCompliant
	}
	if q.QuestionablePercent >= RevenueThreshold {
		result.Issues = append(result.Issues, fmt.Sprintf("Questionable revenue %.2f%% is at or above the %.0f%% threshold", q.QuestionablePercent, RevenueThreshold))
		return models.StatusQuestionable
	}
	if !q.Passed {
		result.Issues = append(result.Issues, fmt.Sprintf("Interest income %.2f%% of revenue is at or above the %.0f%% threshold", q.InterestIncomePercent, RevenueThreshold))
		return models.StatusQuestionable
	}
	return models.StatusCompliant
}

func (o *Orchestrator) normalizeFinancials(f models.Financials, result *models.ScreeningResult) models.Financials {
	from, to := strings.ToUpper(f.FinancialCurrency), strings.ToUpper(f.MarketCapCurrency)
	if from == "" || to == "" || from == to {
		return f
	}
	if o.converter != nil {
		if converted, ok := o.converter.NormalizeFinancials(f); ok {
			return converted
		}
	}
	result.Issues = append(result.Issues, fmt.Sprintf("No exchange rate from %s to %s; ratios use unconverted figures", from, to))
	return f
}

func quantitativeIssues(r models.QuantitativeRatios, computed bool) []string {
	if !computed {
		return nil
	}
	var issues []string
	if !r.DebtPassed {
		issues = append(issues, fmt.Sprintf("Debt ratio %.2f%% is not below the %.0f%% threshold", r.DebtRatio, ratios.Threshold))
	}
	if !r.SecuritiesPassed {
		issues = append(issues, fmt.Sprintf("Securities ratio %.2f%% is not below the %.0f%% threshold", r.SecuritiesRatio, ratios.Threshold))
	}
	if r.LiquidityRatio != nil && !r.LiquidityPassed {
		issues = append(issues, fmt.Sprintf("Liquidity ratio %.2f%% is not below the %.0f%% threshold", *r.LiquidityRatio, ratios.Threshold))
	}
	return issues
}

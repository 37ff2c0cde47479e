package models

import "time"

// ComplianceCategory is the permissibility bucket of a revenue segment.
type ComplianceCategory string

const (
	CategoryAllowed      ComplianceCategory = "allowed"
	CategoryQuestionable ComplianceCategory = "questionable"
	CategoryDisallowed   ComplianceCategory = "disallowed"
)

// OverallStatus is the final verdict of a screening.
type OverallStatus string

const (
	StatusCompliant    OverallStatus = "Compliant"
	StatusQuestionable OverallStatus = "Questionable"
	StatusNonCompliant OverallStatus = "Non-Compliant"
)

// QualitativeMethod records how the qualitative percentages were obtained.
type QualitativeMethod string

const (
	MethodInsufficientData QualitativeMethod = "insufficient_data"
	MethodSegmentBased     QualitativeMethod = "segment_based"
	MethodIndustryEstimate QualitativeMethod = "industry_estimate"
)

// FilingReference points at a company's latest annual filing.
type FilingReference struct {
	CIK                 string `json:"cik"`
	Form                string `json:"form"`
	DocumentURL         string `json:"documentUrl"`
	FiledDate           string `json:"filedDate"`
	AccessionID         string `json:"accessionId"`
	PrimaryDocumentName string `json:"primaryDocumentName"`
}

// FinancialFact is a scalar value selected from the structured facts document.
// SourceTag records which tag of the preference list matched.
type FinancialFact struct {
	TagName   string  `json:"tagName"`
	Value     float64 `json:"value"`
	SourceTag string  `json:"sourceTag"`
	PeriodEnd string  `json:"periodEnd,omitempty"`
}

// Segment is one line of a revenue-by-segment breakdown.
type Segment struct {
	Name               string             `json:"name"`
	Value              float64            `json:"value"`
	SourceTag          string             `json:"sourceTag"`
	PeriodEnd          string             `json:"periodEnd,omitempty"`
	PercentOfTotal     float64            `json:"percentOfTotal"`
	ComplianceCategory ComplianceCategory `json:"complianceCategory"`
}

// XBRLTags records which taxonomy tags produced the scalar facts.
type XBRLTags struct {
	TotalRevenue   string `json:"totalRevenue,omitempty"`
	InterestIncome string `json:"interestIncome,omitempty"`
}

// QualitativeResult is the qualitative bundle computed per ticker and cached.
type QualitativeResult struct {
	TotalRevenue          *float64          `json:"totalRevenue"`
	InterestIncome        *float64          `json:"interestIncome"`
	InterestIncomePercent float64           `json:"interestIncomePercent"`
	CompliantPercent      float64           `json:"compliantPercent"`
	QuestionablePercent   float64           `json:"questionablePercent"`
	NonCompliantPercent   float64           `json:"nonCompliantPercent"`
	Filing                *FilingReference  `json:"filing,omitempty"`
	DataSources           map[string]string `json:"dataSources"`
	XBRLTags              XBRLTags          `json:"xbrlTags"`
	Segments              []Segment         `json:"segments"`
	SegmentTotal          float64           `json:"segmentTotal"`
	ExtractionMethod      string            `json:"extractionMethod,omitempty"`
}

// HasRevenue reports whether the bundle carries a usable total revenue.
func (q *QualitativeResult) HasRevenue() bool {
	return q != nil && q.TotalRevenue != nil && *q.TotalRevenue > 0
}

// Financials are the balance-sheet and market inputs of the ratio screen.
// Currency fields are ISO codes; an empty FinancialCurrency means the figures
// are already in MarketCapCurrency.
type Financials struct {
	MarketCap            float64 `json:"marketCap"`
	TotalDebt            float64 `json:"totalDebt"`
	CashAndEquivalents   float64 `json:"cashAndEquivalents"`
	ShortTermInvestments float64 `json:"shortTermInvestments"`
	AccountsReceivable   float64 `json:"accountsReceivable"`
	TotalAssets          float64 `json:"totalAssets"`
	MarketCapCurrency    string  `json:"marketCapCurrency,omitempty"`
	FinancialCurrency    string  `json:"financialCurrency,omitempty"`
}

// QuantitativeRatios are the AAOIFI leverage and liquidity ratios.
type QuantitativeRatios struct {
	DebtRatio               float64  `json:"debtRatio"`
	SecuritiesRatio         float64  `json:"securitiesRatio"`
	LiquidityRatio          *float64 `json:"liquidityRatio"`
	LiquidityRatioAvailable bool     `json:"liquidityRatioAvailable"`
	DebtPassed              bool     `json:"debtPassed"`
	SecuritiesPassed        bool     `json:"securitiesPassed"`
	LiquidityPassed         bool     `json:"liquidityPassed"`
	Passed                  bool     `json:"passed"`
}

// QualitativeSummary is the qualitative section of a ScreeningResult.
type QualitativeSummary struct {
	CompliantPercent      float64           `json:"compliantPercent"`
	QuestionablePercent   float64           `json:"questionablePercent"`
	NonCompliantPercent   float64           `json:"nonCompliantPercent"`
	InterestIncomePercent float64           `json:"interestIncomePercent"`
	Passed                bool              `json:"passed"`
	Segments              []Segment         `json:"segments"`
	SegmentTotal          float64           `json:"segmentTotal"`
	DataSources           map[string]string `json:"dataSources,omitempty"`
	XBRLTags              XBRLTags          `json:"xbrlTags"`
	FromCache             bool              `json:"fromCache"`
}

// RawData echoes the inputs the verdict was computed from.
type RawData struct {
	Financials     Financials `json:"financials"`
	TotalRevenue   *float64   `json:"totalRevenue"`
	InterestIncome *float64   `json:"interestIncome"`
}

// ScreeningResult is the contract returned to callers. It is built once per
// request and never mutated afterwards.
type ScreeningResult struct {
	ScreeningID       string             `json:"screeningId"`
	Ticker            string             `json:"ticker"`
	Name              string             `json:"name"`
	Sector            string             `json:"sector"`
	Industry          string             `json:"industry"`
	OverallStatus     OverallStatus      `json:"overallStatus"`
	Qualitative       QualitativeSummary `json:"qualitative"`
	Quantitative      QuantitativeRatios `json:"quantitative"`
	RawData           RawData            `json:"rawData"`
	SECFiling         *FilingReference   `json:"secFiling,omitempty"`
	QualitativeMethod QualitativeMethod  `json:"qualitativeMethod"`
	Issues            []string           `json:"issues"`
	Debug             []string           `json:"debug,omitempty"`
	ScreenedAt        time.Time          `json:"screenedAt"`
}

// CompanyProfile describes the company being screened. Name, sector and
// industry come from the caller's quote provider.
type CompanyProfile struct {
	Ticker      string `json:"ticker"`
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Description string `json:"description,omitempty"`
}

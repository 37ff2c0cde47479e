// Package segments extracts a best-effort revenue-by-segment breakdown from a
// company's structured facts and annual filing document.
//
// Extraction runs an ordered chain of strategies; the first one returning a
// non-empty result wins:
//
//  1. structured per-segment facts
//  2. HTML tables matched by a per-ticker hint
//  3. generic HTML table heuristics
//  4. plain-text line heuristics
package segments

import (
	"github.com/rs/zerolog"

	"shariah_screener/pkg/core/edgar"
	"shariah_screener/pkg/core/logging"
	"shariah_screener/pkg/core/overrides"
	"shariah_screener/pkg/models"
)

// Input carries everything the strategies may read. HTML is parsed lazily
// and at most once per Input.
type Input struct {
	Ticker       string
	Facts        *edgar.CompanyFacts
	HTML         string
	TotalRevenue float64

	tables     []Table
	text       string
	tablesDone bool
	textDone   bool
}

// Tables returns the parsed tables of the filing document.
func (in *Input) Tables() []Table {
	if !in.tablesDone {
		in.tables = ScanTables(in.HTML)
		in.tablesDone = true
	}
	return in.tables
}

// Text returns the filing document with markup stripped, one block per line.
func (in *Input) Text() string {
	if !in.textDone {
		in.text = StripMarkup(in.HTML)
		in.textDone = true
	}
	return in.text
}

// Strategy is one extraction tier. An empty result means "not found here".
type Strategy interface {
	Name() string
	Extract(in *Input) []models.Segment
}

// Result is the outcome of running the chain.
type Result struct {
	Segments []models.Segment
	Method   string // name of the strategy that produced Segments, or "override"
}

// Extractor runs the strategy chain and applies post-extraction rewrites.
type Extractor struct {
	strategies []Strategy
	registry   *overrides.Registry
	logger     zerolog.Logger
}

// NewExtractor builds the default chain backed by registry.
func NewExtractor(registry *overrides.Registry) *Extractor {
	return NewExtractorWith(registry,
		StructuredFacts{},
		HintedTables{Registry: registry},
		GenericTables{},
		PlainText{},
	)
}

// NewExtractorWith builds an extractor over an explicit strategy list.
func NewExtractorWith(registry *overrides.Registry, strategies ...Strategy) *Extractor {
	if registry == nil {
		registry = overrides.Default()
	}
	return &Extractor{
		strategies: strategies,
		registry:   registry,
		logger:     logging.For("segments"),
	}
}

// Extract runs the chain for in.
func (e *Extractor) Extract(in *Input) Result {
	var res Result
	for _, s := range e.strategies {
		segs := s.Extract(in)
		if len(segs) == 0 {
			e.logger.Debug().Str("ticker", in.Ticker).Str("strategy", s.Name()).Msg("no segments, falling through")
			continue
		}
		res = Result{Segments: segs, Method: s.Name()}
		break
	}

	if rw, ok := e.registry.Rewrite(in.Ticker); ok && in.TotalRevenue > 0 {
		e.logger.Debug().Str("ticker", in.Ticker).Str("reason", rw.Reason).Msg("segments rewritten")
		res = Result{
			Segments: []models.Segment{{
				Name:               rw.SegmentName,
				Value:              in.TotalRevenue,
				SourceTag:          "override",
				ComplianceCategory: models.CategoryAllowed,
			}},
			Method: "override",
		}
	}
	return res
}

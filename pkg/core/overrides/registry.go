// Package overrides - Per-company override registry
// Holds the small, explicit set of ticker-keyed exceptions to the generic
// extraction and classification heuristics.
package overrides

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"

	"shariah_screener/pkg/models"
)

// =============================================================================
// LAYERED OVERRIDES
// =============================================================================
//
// Layer 1: Generic heuristics (segments, classify packages - always applied)
// Layer 2: Company-specific overrides (per ticker, this package)
//
// Resolution order: Company → Generic. Overrides never leak across tickers.

// ExtractionHint tells the HTML table extractor where a company's revenue
// breakdown lives and which rows to read.
type ExtractionHint struct {
	Ticker         string
	TablePattern   *regexp.Regexp // must match the table's text
	RowPattern     *regexp.Regexp // must match a row label
	ExcludePattern *regexp.Regexp // optional; rejects matching row labels
	ExpectedOrder  []string       // stable output order, prefix matched
}

// ClassificationRule maps a keyword found in a segment name to a category.
type ClassificationRule struct {
	Keyword  string                    `yaml:"keyword"`
	Category models.ComplianceCategory `yaml:"category"`
}

// SegmentRewrite collapses a company's segments into one allowed segment
// equal to total revenue.
type SegmentRewrite struct {
	Ticker      string `yaml:"ticker"`
	SegmentName string `yaml:"segment_name"`
	Reason      string `yaml:"reason"`
}

// =============================================================================
// OVERRIDE REGISTRY
// =============================================================================

// Registry manages all override configurations
type Registry struct {
	mu             sync.RWMutex
	hints          map[string]*ExtractionHint
	classification map[string][]ClassificationRule
	rewrites       map[string]SegmentRewrite
}

// NewRegistry creates a registry holding the built-in overrides.
func NewRegistry() *Registry {
	r := &Registry{
		hints:          make(map[string]*ExtractionHint),
		classification: make(map[string][]ClassificationRule),
		rewrites:       make(map[string]SegmentRewrite),
	}
	r.initDefaults()
	return r
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry. It is built on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Hint returns the extraction hint registered for ticker.
func (r *Registry) Hint(ticker string) (*ExtractionHint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hints[normalizeTicker(ticker)]
	return h, ok
}

// HasHint reports whether ticker has an extraction hint.
func (r *Registry) HasHint(ticker string) bool {
	_, ok := r.Hint(ticker)
	return ok
}

// ClassificationRules returns the ticker's ordered classification overrides.
func (r *Registry) ClassificationRules(ticker string) []ClassificationRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classification[normalizeTicker(ticker)]
}

// Rewrite returns the post-extraction segment rewrite for ticker, if any.
func (r *Registry) Rewrite(ticker string) (SegmentRewrite, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rw, ok := r.rewrites[normalizeTicker(ticker)]
	return rw, ok
}

// AddHint registers or replaces an extraction hint.
func (r *Registry) AddHint(h *ExtractionHint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h.Ticker = normalizeTicker(h.Ticker)
	r.hints[h.Ticker] = h
}

// AddClassificationRules replaces the classification overrides of ticker.
func (r *Registry) AddClassificationRules(ticker string, rules []ClassificationRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range rules {
		rules[i].Keyword = strings.ToLower(strings.TrimSpace(rules[i].Keyword))
	}
	r.classification[normalizeTicker(ticker)] = rules
}

// AddRewrite registers a segment rewrite.
func (r *Registry) AddRewrite(rw SegmentRewrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rw.Ticker = normalizeTicker(rw.Ticker)
	r.rewrites[rw.Ticker] = rw
}

// =============================================================================
// FILE LOADING
// =============================================================================

type fileConfig struct {
	Hints []struct {
		Ticker  string   `yaml:"ticker"`
		Table   string   `yaml:"table"`
		Row     string   `yaml:"row"`
		Exclude string   `yaml:"exclude"`
		Order   []string `yaml:"order"`
	} `yaml:"hints"`
	Classification map[string][]ClassificationRule `yaml:"classification"`
	Rewrites       []SegmentRewrite                `yaml:"rewrites"`
}

// LoadFile merges overrides from a YAML file into the registry.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read overrides file: %w", err)
	}
	return r.Load(data)
}

// Load merges overrides from YAML content.
func (r *Registry) Load(data []byte) error {
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse overrides: %w", err)
	}

	for _, h := range cfg.Hints {
		hint, err := compileHint(h.Ticker, h.Table, h.Row, h.Exclude, h.Order)
		if err != nil {
			return err
		}
		r.AddHint(hint)
	}
	for ticker, rules := range cfg.Classification {
		for _, rule := range rules {
			if !validCategory(rule.Category) {
				return fmt.Errorf("ticker %s: unknown category %q", ticker, rule.Category)
			}
		}
		r.AddClassificationRules(ticker, rules)
	}
	for _, rw := range cfg.Rewrites {
		if rw.Ticker == "" || rw.SegmentName == "" {
			return fmt.Errorf("rewrite needs ticker and segment_name")
		}
		r.AddRewrite(rw)
	}
	return nil
}

func compileHint(ticker, table, row, exclude string, order []string) (*ExtractionHint, error) {
	if ticker == "" || table == "" || row == "" {
		return nil, fmt.Errorf("hint needs ticker, table and row patterns")
	}
	h := &ExtractionHint{Ticker: ticker, ExpectedOrder: order}

	var err error
	if h.TablePattern, err = regexp.Compile(table); err != nil {
		return nil, fmt.Errorf("hint %s: table pattern: %w", ticker, err)
	}
	if h.RowPattern, err = regexp.Compile(row); err != nil {
		return nil, fmt.Errorf("hint %s: row pattern: %w", ticker, err)
	}
	if exclude != "" {
		if h.ExcludePattern, err = regexp.Compile(exclude); err != nil {
			return nil, fmt.Errorf("hint %s: exclude pattern: %w", ticker, err)
		}
	}
	return h, nil
}

func validCategory(c models.ComplianceCategory) bool {
	switch c {
	case models.CategoryAllowed, models.CategoryQuestionable, models.CategoryDisallowed:
		return true
	}
	return false
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

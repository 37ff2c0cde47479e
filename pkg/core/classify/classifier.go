// Package classify assigns compliance categories to revenue segments and
// aggregates them into percentages.
package classify

import (
	"regexp"
	"strings"

	"shariah_screener/pkg/core/overrides"
	"shariah_screener/pkg/models"
)

// Classifier maps a (ticker, segment name) pair to a category. Evaluation
// order is ticker overrides, disallowed keywords, questionable keywords,
// then allowed. It holds no per-call state.
type Classifier struct {
	registry     *overrides.Registry
	disallowed   *regexp.Regexp
	questionable *regexp.Regexp
}

// New creates a classifier backed by registry, or by the process registry
// when nil.
func New(registry *overrides.Registry) *Classifier {
	if registry == nil {
		registry = overrides.Default()
	}
	return &Classifier{
		registry:     registry,
		disallowed:   keywordPattern(disallowedKeywords),
		questionable: keywordPattern(questionableKeywords),
	}
}

// Classify returns the category of one segment name.
func (c *Classifier) Classify(ticker, segmentName string) models.ComplianceCategory {
	name := strings.ToLower(strings.TrimSpace(segmentName))

	for _, rule := range c.registry.ClassificationRules(ticker) {
		if rule.Keyword != "" && strings.Contains(name, rule.Keyword) {
			return rule.Category
		}
	}
	if c.disallowed.MatchString(name) {
		return models.CategoryDisallowed
	}
	if c.questionable.MatchString(name) {
		return models.CategoryQuestionable
	}
	return models.CategoryAllowed
}

// HasDisallowedKeyword reports whether text mentions a disallowed activity.
// The orchestrator runs it over sector and industry names.
func (c *Classifier) HasDisallowedKeyword(text string) bool {
	return c.disallowed.MatchString(strings.ToLower(text))
}

// ClassifyAll returns a copy of segs with categories and percent-of-total
// filled in, plus the category breakdown.
func (c *Classifier) ClassifyAll(ticker string, segs []models.Segment) ([]models.Segment, Breakdown) {
	out := make([]models.Segment, len(segs))
	for i, s := range segs {
		s.ComplianceCategory = c.Classify(ticker, s.Name)
		out[i] = s
	}
	return out, Aggregate(out)
}

func keywordPattern(words []string) *regexp.Regexp {
	alts := make([]string, 0, len(words))
	for _, w := range words {
		if stem, ok := strings.CutSuffix(w, "*"); ok {
			alts = append(alts, regexp.QuoteMeta(stem)+`[a-z]*`)
			continue
		}
		alts = append(alts, regexp.QuoteMeta(w))
	}
	return regexp.MustCompile(`\b(` + strings.Join(alts, "|") + `)\b`)
}

package segments

import (
	"strings"

	"shariah_screener/pkg/models"
)

// expenseTerms identify rows that describe costs or margins rather than
// revenue.
var expenseTerms = []string{
	"cost of",
	"costs",
	"expense",
	"research and development",
	"selling, general",
	"general and administrative",
	"sales and marketing",
	"marketing",
	"depreciation",
	"amortization",
	"impairment",
	"restructuring",
	"income tax",
	"provision for",
	"interest expense",
	"compensation",
	"margin",
	"profit",
	"operating income",
	"operating loss",
	"net income",
	"ebitda",
}

// IsExpenseLabel reports whether a row label looks like an expense line.
func IsExpenseLabel(label string) bool {
	lower := strings.ToLower(label)
	for _, term := range expenseTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// LooksLikeRevenue accepts a heuristic result only when fewer than half of
// its names match an expense term.
func LooksLikeRevenue(segs []models.Segment) bool {
	if len(segs) == 0 {
		return false
	}
	expenses := 0
	for _, s := range segs {
		if IsExpenseLabel(s.Name) {
			expenses++
		}
	}
	return expenses*2 < len(segs)
}

// accept returns segs when they pass the revenue guard, nil otherwise.
func accept(segs []models.Segment) []models.Segment {
	if !LooksLikeRevenue(segs) {
		return nil
	}
	return segs
}

// segmentSet collects segments in discovery order, skipping repeated names.
type segmentSet struct {
	seen map[string]bool
	segs []models.Segment
}

func (s *segmentSet) add(seg models.Segment) bool {
	key := strings.ToLower(seg.Name)
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if key == "" || s.seen[key] {
		return false
	}
	s.seen[key] = true
	s.segs = append(s.segs, seg)
	return true
}

func (s *segmentSet) len() int { return len(s.segs) }

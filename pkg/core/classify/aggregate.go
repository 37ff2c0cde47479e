package classify

import "shariah_screener/pkg/models"

// Breakdown holds category percentages of revenue. Usable is false when it
// could not be computed from segments.
type Breakdown struct {
	CompliantPercent    float64
	QuestionablePercent float64
	NonCompliantPercent float64
	SegmentTotal        float64
	Usable              bool
}

// Aggregate divides per-category sums by the segment total and sets each
// segment's PercentOfTotal in place. Only positive values count toward the
// total. Compliant is the complement of the other two so the three always
// sum to 100.
func Aggregate(segs []models.Segment) Breakdown {
	var total, questionable, disallowed float64
	for _, s := range segs {
		if s.Value <= 0 {
			continue
		}
		total += s.Value
		switch s.ComplianceCategory {
		case models.CategoryQuestionable:
			questionable += s.Value
		case models.CategoryDisallowed:
			disallowed += s.Value
		}
	}
	if total <= 0 {
		return Breakdown{}
	}

	for i := range segs {
		segs[i].PercentOfTotal = Clamp(segs[i].Value / total * 100)
	}

	b := Breakdown{
		QuestionablePercent: Clamp(questionable / total * 100),
		NonCompliantPercent: Clamp(disallowed / total * 100),
		SegmentTotal:        total,
		Usable:              true,
	}
	b.CompliantPercent = Clamp(100 - b.QuestionablePercent - b.NonCompliantPercent)
	return b
}

// ScalarBreakdown derives percentages from total revenue and interest income
// alone: interest income is the non-compliant share and the rest is compliant.
func ScalarBreakdown(totalRevenue, interestIncome *float64) Breakdown {
	if totalRevenue == nil || *totalRevenue <= 0 {
		return Breakdown{}
	}
	b := Breakdown{Usable: true}
	if interestIncome != nil && *interestIncome > 0 {
		b.NonCompliantPercent = Clamp(*interestIncome / *totalRevenue * 100)
	}
	b.CompliantPercent = Clamp(100 - b.NonCompliantPercent)
	return b
}

// Clamp bounds a percentage to [0, 100].
func Clamp(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

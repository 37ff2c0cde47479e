package segments

import (
	"strings"

	"shariah_screener/pkg/core/overrides"
	"shariah_screener/pkg/models"
)

// HintedTables reads the table named by the ticker's extraction hint.
type HintedTables struct {
	Registry *overrides.Registry
}

func (HintedTables) Name() string { return "html_hint" }

// Extract takes the first table matching the hint's table pattern that yields
// rows. Each row's value is its last numeric cell.
func (h HintedTables) Extract(in *Input) []models.Segment {
	if h.Registry == nil {
		return nil
	}
	hint, ok := h.Registry.Hint(in.Ticker)
	if !ok {
		return nil
	}

	for _, table := range in.Tables() {
		if !hint.TablePattern.MatchString(table.Text) {
			continue
		}

		var set segmentSet
		for _, row := range table.Rows {
			if len(row.Numbers) == 0 || !hint.RowPattern.MatchString(row.Label) {
				continue
			}
			if hint.ExcludePattern != nil && hint.ExcludePattern.MatchString(row.Label) {
				continue
			}
			set.add(models.Segment{
				Name:      row.Label,
				Value:     row.Numbers[len(row.Numbers)-1] * table.Scale,
				SourceTag: "html:hint",
			})
		}
		if segs := accept(set.segs); segs != nil {
			return Reorder(segs, hint.ExpectedOrder)
		}
	}
	return nil
}

// Reorder places segments whose names start with an expected name first, in
// expected order, then the rest in discovery order. Matching ignores case.
func Reorder(segs []models.Segment, expected []string) []models.Segment {
	if len(expected) == 0 {
		return segs
	}
	used := make([]bool, len(segs))
	out := make([]models.Segment, 0, len(segs))
	for _, want := range expected {
		want = strings.ToLower(want)
		for i, s := range segs {
			if !used[i] && strings.HasPrefix(strings.ToLower(s.Name), want) {
				used[i] = true
				out = append(out, s)
				break
			}
		}
	}
	for i, s := range segs {
		if !used[i] {
			out = append(out, s)
		}
	}
	return out
}

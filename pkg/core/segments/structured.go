package segments

import (
	"sort"
	"strings"
	"unicode"

	"shariah_screener/pkg/core/edgar"
	"shariah_screener/pkg/models"
)

const maxStructuredSegments = 10

// nonRevenueTagWords mark tags that mention revenue or sales without being
// revenue, e.g. CostOfRevenue or DeferredRevenueCurrent. Tax words are
// specific so the ...ExcludingAssessedTax revenue tags still match.
var nonRevenueTagWords = []string{
	"cost", "expense", "deferred", "receivable", "unbilled", "remaining",
	"incometax", "taxpayable", "taxespayable", "salesandexcisetax", "exciseandsalestax",
}

// StructuredFacts reads dimensioned revenue facts from the companyfacts data.
type StructuredFacts struct{}

func (StructuredFacts) Name() string { return "xbrl_segments" }

type segmentCandidate struct {
	entry     edgar.FactEntry
	sourceTag string
}

// Extract keeps the latest annual value per segment key across every
// revenue-like tag, drops keys not reported for the latest period, and
// returns the ten largest.
func (StructuredFacts) Extract(in *Input) []models.Segment {
	if in.Facts == nil {
		return nil
	}

	latest := make(map[string]segmentCandidate)
	var keys []string
	for _, concept := range in.Facts.Concepts() {
		if !isRevenueTag(concept.Tag) {
			continue
		}
		for _, e := range concept.Units["USD"] {
			if !e.HasSegment() || !e.IsAnnual() || e.Value <= 0 {
				continue
			}
			key := SegmentKey(e.Segment)
			cur, seen := latest[key]
			if !seen {
				keys = append(keys, key)
			}
			if !seen || e.End > cur.entry.End || (e.End == cur.entry.End && e.Filed > cur.entry.Filed) {
				latest[key] = segmentCandidate{entry: e, sourceTag: concept.SourceTag()}
			}
		}
	}
	if len(latest) == 0 {
		return nil
	}

	var newestEnd string
	for _, c := range latest {
		if c.entry.End > newestEnd {
			newestEnd = c.entry.End
		}
	}

	var segs []models.Segment
	for _, key := range keys {
		c := latest[key]
		if c.entry.End != newestEnd {
			continue
		}
		segs = append(segs, models.Segment{
			Name:      segmentName(c.entry.Segment),
			Value:     c.entry.Value,
			SourceTag: c.sourceTag,
			PeriodEnd: c.entry.End,
		})
	}

	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Value > segs[j].Value })
	if len(segs) > maxStructuredSegments {
		segs = segs[:maxStructuredSegments]
	}
	return segs
}

// SegmentKey flattens a dimension map into a sorted "axis:member" string so
// equivalent descriptors collapse to one key.
func SegmentKey(dims map[string]string) string {
	parts := make([]string, 0, len(dims))
	for axis, member := range dims {
		parts = append(parts, axis+":"+member)
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func isRevenueTag(tag string) bool {
	lower := strings.ToLower(tag)
	if !strings.Contains(lower, "revenue") && !strings.Contains(lower, "sales") {
		return false
	}
	for _, w := range nonRevenueTagWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

// segmentName turns members like "aapl:WearablesHomeandAccessoriesMember"
// into a readable label, ordered by axis.
func segmentName(dims map[string]string) string {
	axes := make([]string, 0, len(dims))
	for axis := range dims {
		axes = append(axes, axis)
	}
	sort.Strings(axes)

	names := make([]string, 0, len(axes))
	for _, axis := range axes {
		member := dims[axis]
		if i := strings.LastIndex(member, ":"); i >= 0 {
			member = member[i+1:]
		}
		member = strings.TrimSuffix(member, "Member")
		names = append(names, splitCamel(member))
	}
	return strings.Join(names, " / ")
}

// splitCamel inserts spaces at word boundaries: "CloudServices" → "Cloud
// Services", "XMLFeeds" → "XML Feeds". A single leading capital stays
// attached ("IPhone").
func splitCamel(s string) string {
	runes := []rune(s)
	var b strings.Builder
	upperRun := 0
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower && upperRun >= 2) {
				b.WriteRune(' ')
			}
		}
		if unicode.IsUpper(r) {
			upperRun++
		} else {
			upperRun = 0
		}
		b.WriteRune(r)
	}
	return b.String()
}

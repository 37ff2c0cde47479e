package segments

import (
	"regexp"
	"strings"

	"shariah_screener/pkg/models"
)

const maxTableSegments = 20

var (
	revenueWords   = regexp.MustCompile(`(?i)\b(revenues?|net sales|sales)\b`)
	breakdownWords = regexp.MustCompile(`(?i)disaggregat|\bsegments?\b|\b(revenues?|sales) by\b|\bby (product|category|type|source|service|line of business)\b`)

	advertisingRow  = regexp.MustCompile(`(?i)^advertising( revenues?)?$`)
	otherRevenueRow = regexp.MustCompile(`(?i)^other revenues?$`)
	netRevenueHead  = regexp.MustCompile(`(?i)^net (revenues?|sales)$`)
	totalRow        = regexp.MustCompile(`(?i)\btotal\b`)
)

// GenericTables applies table heuristics that need no per-company hint.
type GenericTables struct{}

func (GenericTables) Name() string { return "html_generic" }

// Extract scans breakdown-looking tables first, then falls back to any table
// with a "Net revenues:" header row. Values are the first numeric cell, which
// filings put in the most recent period's column.
func (GenericTables) Extract(in *Input) []models.Segment {
	tables := in.Tables()

	for _, table := range tables {
		if !revenueWords.MatchString(table.Text) || !breakdownWords.MatchString(table.Text) {
			continue
		}
		if segs := accept(advertisingBreakdown(table)); segs != nil {
			return segs
		}
		if segs := accept(breakdownRows(table)); segs != nil {
			return segs
		}
	}

	for _, table := range tables {
		if segs := accept(netRevenueSection(table)); segs != nil {
			return segs
		}
	}
	return nil
}

// advertisingBreakdown handles the two-line "Advertising / Other revenue"
// presentation used by ad-funded platforms.
func advertisingBreakdown(table Table) []models.Segment {
	var ads, other *Row
	for i := range table.Rows {
		row := &table.Rows[i]
		if len(row.Numbers) == 0 {
			continue
		}
		switch {
		case ads == nil && advertisingRow.MatchString(row.Label):
			ads = row
		case other == nil && otherRevenueRow.MatchString(row.Label):
			other = row
		}
	}
	if ads == nil || other == nil {
		return nil
	}
	return []models.Segment{
		tableSegment(*ads, table.Scale),
		tableSegment(*other, table.Scale),
	}
}

// breakdownRows returns every labelled numeric row that is not a total.
func breakdownRows(table Table) []models.Segment {
	var set segmentSet
	for _, row := range table.Rows {
		if len(row.Numbers) == 0 || totalRow.MatchString(row.Label) {
			continue
		}
		set.add(tableSegment(row, table.Scale))
	}
	if set.len() < 2 || set.len() > maxTableSegments {
		return nil
	}
	return set.segs
}

// netRevenueSection collects the rows under a "Net revenues:" header up to
// the first total or expense row.
func netRevenueSection(table Table) []models.Segment {
	var set segmentSet
	inSection := false
	for _, row := range table.Rows {
		if !inSection {
			inSection = len(row.Numbers) == 0 && netRevenueHead.MatchString(row.Label)
			continue
		}
		if totalRow.MatchString(row.Label) || IsExpenseLabel(row.Label) {
			break
		}
		if len(row.Numbers) == 0 {
			continue
		}
		set.add(tableSegment(row, table.Scale))
	}
	if set.len() < 2 {
		return nil
	}
	return set.segs
}

func tableSegment(row Row, scale float64) models.Segment {
	return models.Segment{
		Name:      strings.TrimSpace(row.Label),
		Value:     row.Numbers[0] * scale,
		SourceTag: "html:table",
	}
}

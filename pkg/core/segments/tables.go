package segments

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// TABLE SCANNER - Flatten HTML tables into labelled numeric rows
// =============================================================================

// Scale multipliers for reported values.
const (
	ScaleUnits     = 1.0
	ScaleThousands = 1e3
	ScaleMillions  = 1e6
)

var (
	millionsPattern  = regexp.MustCompile(`(?i)\bin\s+millions\b|\(\s*millions\s*\)|\bmillions\s+of\s+(u\.s\.\s+)?dollars\b`)
	thousandsPattern = regexp.MustCompile(`(?i)\bin\s+thousands\b|\(\s*thousands\s*\)|\bthousands\s+of\s+(u\.s\.\s+)?dollars\b`)

	yearPattern       = regexp.MustCompile(`^(19|20)\d{2}$`)
	footnotePattern   = regexp.MustCompile(`\s*\((\d{1,2}|[a-z])\)\s*$`)
	whitespace        = regexp.MustCompile(`\s+`)
	nonNumericPattern = regexp.MustCompile(`[^0-9.]`)
	hasLetter         = regexp.MustCompile(`[A-Za-z]`)
)

// Row is one labelled table row. Numbers holds every numeric cell after the
// label in column order; percentages and bare years are skipped.
type Row struct {
	Label   string
	Numbers []float64
}

// Table is a flattened HTML table.
type Table struct {
	Index int
	Text  string // whitespace-collapsed text of the table and its caption context
	Scale float64
	Rows  []Row
}

// ScanTables parses every <table> in html. Unparseable documents yield nil.
func ScanTables(html string) []Table {
	if strings.TrimSpace(html) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var tables []Table
	doc.Find("table").Each(func(i int, sel *goquery.Selection) {
		context := collapse(precedingText(sel) + " " + sel.Text())
		t := Table{
			Index: i,
			Text:  context,
			Scale: DetectScale(context),
		}
		sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			if row, ok := parseRow(tr); ok {
				t.Rows = append(t.Rows, row)
			}
		})
		if len(t.Rows) > 0 {
			tables = append(tables, t)
		}
	})
	return tables
}

// DetectScale reports the unit multiplier declared in text, defaulting to
// units when none is stated.
func DetectScale(text string) float64 {
	switch {
	case millionsPattern.MatchString(text):
		return ScaleMillions
	case thousandsPattern.MatchString(text):
		return ScaleThousands
	default:
		return ScaleUnits
	}
}

// ParseCellValue reads a single table cell.
//
//	"(1,234)" → -1234
//	"$1,234.56" → 1234.56
//	"—", "12%", "2024" → not a value
func ParseCellValue(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\u00a0", " "))
	switch raw {
	case "", "—", "-", "–", "$", "N/A", "n/a":
		return 0, false
	}
	if strings.Contains(raw, "%") || hasLetter.MatchString(raw) {
		return 0, false
	}
	if yearPattern.MatchString(raw) {
		return 0, false
	}

	negative := strings.Contains(raw, "(")
	cleaned := nonNumericPattern.ReplaceAllString(raw, "")
	if cleaned == "" || cleaned == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// CleanLabel normalises a row label: collapses whitespace and drops trailing
// colons and footnote markers like "(1)".
func CleanLabel(s string) string {
	s = collapse(s)
	for {
		trimmed := strings.TrimSpace(strings.TrimRight(footnotePattern.ReplaceAllString(s, ""), ":"))
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

func parseRow(tr *goquery.Selection) (Row, bool) {
	var row Row
	tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		text := cell.Text()
		if row.Label == "" {
			if label := CleanLabel(text); hasLetter.MatchString(label) {
				row.Label = label
			}
			return
		}
		if v, ok := ParseCellValue(text); ok {
			row.Numbers = append(row.Numbers, v)
		}
	})
	return row, row.Label != ""
}

// precedingText returns the text of up to two elements before the table,
// where filings usually put the caption and the "(in millions)" note.
func precedingText(sel *goquery.Selection) string {
	var parts []string
	prev := sel.Prev()
	for i := 0; i < 2 && prev.Length() > 0; i++ {
		parts = append([]string{prev.Text()}, parts...)
		prev = prev.Prev()
	}
	return strings.Join(parts, " ")
}

func collapse(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(strings.ReplaceAll(s, "\u00a0", " "), " "))
}

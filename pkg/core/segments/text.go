package segments

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"shariah_screener/pkg/models"
)

const maxTextSegments = 10

var (
	blockTags = regexp.MustCompile(`(?i)</(p|div|tr|li|h[1-6]|table)>|<br\s*/?>`)
	cellTags  = regexp.MustCompile(`(?i)</t[dh]>`)

	// A label followed by at least one comma-grouped amount on the same line.
	textLine = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9&,'’./() -]{1,80}?)[\s:$]*\(?\$?\s*(\d{1,3}(?:,\d{3})+(?:\.\d+)?)`)

	totalRevenueLine = regexp.MustCompile(`(?i)total\s+(net\s+)?(revenues?|sales)`)
)

// PlainText scans the stripped document line by line.
type PlainText struct{}

func (PlainText) Name() string { return "text" }

// Extract keeps up to ten distinct labelled amounts, scaled by the document's
// declared unit.
func (PlainText) Extract(in *Input) []models.Segment {
	text := in.Text()
	if text == "" {
		return nil
	}
	scale := DetectScale(text)

	var set segmentSet
	for _, line := range strings.Split(text, "\n") {
		line = collapse(line)
		if line == "" || totalRevenueLine.MatchString(line) {
			continue
		}
		m := textLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
		if err != nil {
			continue
		}
		set.add(models.Segment{
			Name:      CleanLabel(strings.TrimRight(m[1], " ($")),
			Value:     v * scale,
			SourceTag: "text",
		})
		if set.len() == maxTextSegments {
			break
		}
	}
	return accept(set.segs)
}

// StripMarkup reduces an HTML document to text with one block element per
// line. Scripts, styles and hidden inline-XBRL headers are dropped.
func StripMarkup(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	html = cellTags.ReplaceAllString(html, "$0 ")
	html = blockTags.ReplaceAllString(html, "$0\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style").Remove()
	doc.Find(`[style*="display:none"], [style*="display: none"]`).Remove()
	return doc.Text()
}

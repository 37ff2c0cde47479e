package edgar

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"shariah_screener/pkg/models"
)

// AnnualForms is the ordered preference list of annual-report form types.
// Domestic 10-K first, then amendments, then foreign private issuer forms.
var AnnualForms = []string{"10-K", "10-K/A", "20-F", "20-F/A", "40-F", "40-F/A"}

// SubmissionsResponse from the SEC submissions API
type SubmissionsResponse struct {
	CIK     string   `json:"cik"`
	Name    string   `json:"name"`
	Tickers []string `json:"tickers"`
	Filings Filings  `json:"filings"`
}

// Filings contains filing information
type Filings struct {
	Recent RecentFilings `json:"recent"`
}

// RecentFilings holds the parallel filing arrays. The arrays are not assumed
// to be sorted or to have equal lengths.
type RecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// ParseSubmissions decodes a submissions document.
func ParseSubmissions(body []byte) (*SubmissionsResponse, error) {
	var resp SubmissionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse submissions JSON: %w", err)
	}
	return &resp, nil
}

// SelectAnnualFiling walks AnnualForms in order and, for the first form type
// with any usable entry, returns the entry with the latest filing date.
// urlPattern takes the unpadded CIK, the accession without dashes and the
// primary document name. Returns nil when no annual filing exists.
func SelectAnnualFiling(cik string, recent RecentFilings, urlPattern string) *models.FilingReference {
	if urlPattern == "" {
		urlPattern = filingBaseURL
	}

	for _, form := range AnnualForms {
		best := -1
		for i, f := range recent.Form {
			if !strings.EqualFold(strings.TrimSpace(f), form) {
				continue
			}
			if _, ok := at(recent.AccessionNumber, i); !ok {
				continue
			}
			if _, ok := at(recent.PrimaryDocument, i); !ok {
				continue
			}
			if best < 0 {
				best = i
				continue
			}
			// ISO dates compare lexically.
			date, _ := at(recent.FilingDate, i)
			bestDate, _ := at(recent.FilingDate, best)
			if date > bestDate {
				best = i
			}
		}

		if best < 0 {
			continue
		}

		accession, _ := at(recent.AccessionNumber, best)
		document, _ := at(recent.PrimaryDocument, best)
		filed, _ := at(recent.FilingDate, best)
		shortCIK := strings.TrimLeft(cik, "0")

		return &models.FilingReference{
			CIK:                 padCIK(cik),
			Form:                strings.TrimSpace(recent.Form[best]),
			DocumentURL:         fmt.Sprintf(urlPattern, shortCIK, strings.ReplaceAll(accession, "-", ""), document),
			FiledDate:           filed,
			AccessionID:         accession,
			PrimaryDocumentName: document,
		}
	}
	return nil
}

// at returns the trimmed non-empty element at i, if any.
func at(values []string, i int) (string, bool) {
	if i < 0 || i >= len(values) {
		return "", false
	}
	v := strings.TrimSpace(values[i])
	return v, v != ""
}

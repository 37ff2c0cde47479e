package edgar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectAnnualFiling(t *testing.T) {
	tests := []struct {
		name          string
		recent        RecentFilings
		wantNil       bool
		wantAccession string
		wantForm      string
	}{
		{
			name: "picks 10-K over newer 8-K and 10-Q",
			recent: RecentFilings{
				Form:            []string{"8-K", "10-Q", "10-K", "10-K"},
				AccessionNumber: []string{"0001-24-000004", "0001-24-000003", "0001-23-000002", "0001-24-000001"},
				PrimaryDocument: []string{"a.htm", "b.htm", "k2023.htm", "k2024.htm"},
				FilingDate:      []string{"2024-12-01", "2024-11-01", "2023-11-03", "2024-11-01"},
			},
			wantAccession: "0001-24-000001",
			wantForm:      "10-K",
		},
		{
			name: "index not sorted latest first",
			recent: RecentFilings{
				Form:            []string{"10-K", "10-K"},
				AccessionNumber: []string{"0001-21-000001", "0001-23-000001"},
				PrimaryDocument: []string{"old.htm", "new.htm"},
				FilingDate:      []string{"2021-02-01", "2023-02-01"},
			},
			wantAccession: "0001-23-000001",
			wantForm:      "10-K",
		},
		{
			name: "foreign issuer 20-F",
			recent: RecentFilings{
				Form:            []string{"6-K", "20-F"},
				AccessionNumber: []string{"0002-24-000009", "0002-24-000002"},
				PrimaryDocument: []string{"x.htm", "form20f.htm"},
				FilingDate:      []string{"2024-06-01", "2024-03-20"},
			},
			wantAccession: "0002-24-000002",
			wantForm:      "20-F",
		},
		{
			name: "10-K preferred over later amendment",
			recent: RecentFilings{
				Form:            []string{"10-K/A", "10-K"},
				AccessionNumber: []string{"0003-24-000005", "0003-24-000001"},
				PrimaryDocument: []string{"amend.htm", "main.htm"},
				FilingDate:      []string{"2024-04-30", "2024-02-15"},
			},
			wantAccession: "0003-24-000001",
			wantForm:      "10-K",
		},
		{
			name: "ragged arrays skip incomplete entries",
			recent: RecentFilings{
				Form:            []string{"10-K", "10-K"},
				AccessionNumber: []string{"0004-24-000001"},
				PrimaryDocument: []string{"", "late.htm"},
				FilingDate:      []string{"2024-01-01", "2024-02-01"},
			},
			wantNil: true,
		},
		{
			name: "no annual filing",
			recent: RecentFilings{
				Form:            []string{"8-K", "S-1"},
				AccessionNumber: []string{"a", "b"},
				PrimaryDocument: []string{"a.htm", "b.htm"},
				FilingDate:      []string{"2024-01-01", "2024-01-02"},
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := SelectAnnualFiling("320193", tt.recent, "")
			if tt.wantNil {
				assert.Nil(t, ref)
				return
			}
			require.NotNil(t, ref)
			assert.Equal(t, tt.wantAccession, ref.AccessionID)
			assert.Equal(t, tt.wantForm, ref.Form)
			assert.Equal(t, "0000320193", ref.CIK)
		})
	}
}

func TestSelectAnnualFiling_DocumentURL(t *testing.T) {
	recent := RecentFilings{
		Form:            []string{"10-K"},
		AccessionNumber: []string{"0000320193-24-000123"},
		PrimaryDocument: []string{"aapl-20240928.htm"},
		FilingDate:      []string{"2024-11-01"},
	}

	ref := SelectAnnualFiling("0000320193", recent, "")
	require.NotNil(t, ref)
	assert.Equal(t, "https://www.sec.gov/Archives/edgar/data/320193/000032019324000123/aapl-20240928.htm", ref.DocumentURL)
	assert.Equal(t, "2024-11-01", ref.FiledDate)
	assert.Equal(t, "aapl-20240928.htm", ref.PrimaryDocumentName)
}

func TestPadCIK(t *testing.T) {
	assert.Equal(t, "0000320193", padCIK("320193"))
	assert.Equal(t, "0000320193", padCIK("0000320193"))
	assert.Equal(t, "0000320193", padCIK(" 00320193 "))
}

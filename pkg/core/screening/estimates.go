package screening

import (
	"regexp"
	"strings"

	"shariah_screener/pkg/models"
)

// Estimate is a fixed compliant/questionable/non-compliant split used when no
// filing-based result is available.
type Estimate struct {
	Compliant    float64
	Questionable float64
	NonCompliant float64
	Basis        string
}

var (
	goldEstimate      = Estimate{Compliant: 100, Basis: "gold mining"}
	haramEstimate     = Estimate{NonCompliant: 100, Basis: "prohibited industry"}
	financialEstimate = Estimate{Compliant: 10, Questionable: 20, NonCompliant: 70, Basis: "financial services"}
	defaultEstimate   = Estimate{Compliant: 70, Questionable: 20, NonCompliant: 10, Basis: "default"}

	sectorEstimates = map[string]Estimate{
		"technology":             {Compliant: 85, Questionable: 12, NonCompliant: 3},
		"healthcare":             {Compliant: 85, Questionable: 10, NonCompliant: 5},
		"consumer cyclical":      {Compliant: 75, Questionable: 17, NonCompliant: 8},
		"consumer defensive":     {Compliant: 80, Questionable: 15, NonCompliant: 5},
		"industrials":            {Compliant: 82, Questionable: 13, NonCompliant: 5},
		"energy":                 {Compliant: 80, Questionable: 15, NonCompliant: 5},
		"basic materials":        {Compliant: 85, Questionable: 10, NonCompliant: 5},
		"communication services": {Compliant: 65, Questionable: 25, NonCompliant: 10},
		"real estate":            {Compliant: 60, Questionable: 20, NonCompliant: 20},
		"utilities":              {Compliant: 85, Questionable: 10, NonCompliant: 5},
	}

	// GICS-style names quote providers use for the same sectors.
	sectorAliases = map[string]string{
		"information technology": "technology",
		"health care":            "healthcare",
		"consumer discretionary": "consumer cyclical",
		"consumer staples":       "consumer defensive",
		"materials":              "basic materials",
		"communication":          "communication services",
		"telecommunications":     "communication services",
	}

	financialSectors = map[string]bool{
		"financial services": true,
		"financials":         true,
		"financial":          true,
	}

	goldPattern = regexp.MustCompile(`(?i)\bgold\b`)
)

// HaramMatcher reports whether a sector or industry name names a prohibited
// activity.
type HaramMatcher interface {
	HasDisallowedKeyword(text string) bool
}

// EstimateFor applies the fallback rules in order: gold mining, prohibited
// industry, financial services, sector table, default.
func EstimateFor(profile models.CompanyProfile, haram HaramMatcher) Estimate {
	if goldPattern.MatchString(profile.Industry) || (goldPattern.MatchString(profile.Description) && mentionsMining(profile.Description)) {
		return goldEstimate
	}
	if haram != nil && (haram.HasDisallowedKeyword(profile.Sector) || haram.HasDisallowedKeyword(profile.Industry)) {
		return haramEstimate
	}
	if IsFinancialSector(profile.Sector) {
		return financialEstimate
	}
	sector := normalizeSector(profile.Sector)
	if est, ok := sectorEstimates[sector]; ok {
		est.Basis = sector
		return est
	}
	return defaultEstimate
}

// IsFinancialSector reports whether sector is financial services.
func IsFinancialSector(sector string) bool {
	return financialSectors[strings.ToLower(strings.TrimSpace(sector))]
}

func normalizeSector(sector string) string {
	s := strings.ToLower(strings.TrimSpace(sector))
	if alias, ok := sectorAliases[s]; ok {
		return alias
	}
	return s
}

func mentionsMining(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "mining") || strings.Contains(lower, "miner")
}

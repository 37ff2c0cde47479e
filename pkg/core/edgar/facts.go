package edgar

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"

	"shariah_screener/pkg/models"
)

// Tag preference lists for the two scalar facts. The first tag carrying at
// least one numeric USD value wins.
var (
	RevenueTags = []string{
		"Revenues",
		"RevenueFromContractWithCustomerExcludingAssessedTax",
		"RevenueFromContractWithCustomerIncludingAssessedTax",
		"SalesRevenueNet",
		"SalesRevenueGoodsNet",
		"SalesRevenueServicesNet",
		"RevenuesNetOfInterestExpense",
		"Revenue",
	}

	InterestIncomeTags = []string{
		"InvestmentIncomeInterest",
		"InterestAndDividendIncomeOperating",
		"InvestmentIncomeInterestAndDividend",
		"InterestIncomeOperating",
		"InterestAndOtherIncome",
		"InterestRevenueCalculatedUsingEffectiveInterestMethod",
	}
)

const usdUnit = "USD"

// taxonomyOrder ranks taxonomies when the same tag appears in several.
var taxonomyOrder = map[string]int{"us-gaap": 0, "ifrs-full": 1, "dei": 3}

// FactEntry is one reported value of a concept.
type FactEntry struct {
	Value   float64
	Form    string
	End     string
	Filed   string
	Segment map[string]string
}

// IsAnnual reports whether the entry comes from an annual-report form.
func (e FactEntry) IsAnnual() bool {
	return isAnnualForm(e.Form)
}

// HasSegment reports whether the entry is dimensioned by a segment.
func (e FactEntry) HasSegment() bool {
	return len(e.Segment) > 0
}

// Concept is a single taxonomy tag with its values grouped by unit.
type Concept struct {
	Taxonomy string
	Tag      string
	Label    string
	Units    map[string][]FactEntry
}

// SourceTag is the qualified "taxonomy:Tag" name used for provenance.
func (c *Concept) SourceTag() string {
	return c.Taxonomy + ":" + c.Tag
}

// CompanyFacts is the parsed companyfacts document.
type CompanyFacts struct {
	EntityName string
	concepts   []*Concept
	byTag      map[string]*Concept
}

type factsDocument struct {
	EntityName string                                `json:"entityName"`
	Facts      map[string]map[string]conceptDocument `json:"facts"`
}

type conceptDocument struct {
	Label string                       `json:"label"`
	Units map[string][]json.RawMessage `json:"units"`
}

// ParseCompanyFacts decodes a companyfacts document. Entries whose value is
// missing or non-numeric are dropped.
func ParseCompanyFacts(body []byte) (*CompanyFacts, error) {
	var doc factsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse company facts JSON: %w", err)
	}

	facts := &CompanyFacts{
		EntityName: doc.EntityName,
		byTag:      make(map[string]*Concept),
	}
	for taxonomy, tags := range doc.Facts {
		for tag, cd := range tags {
			concept := &Concept{
				Taxonomy: taxonomy,
				Tag:      tag,
				Label:    cd.Label,
				Units:    make(map[string][]FactEntry),
			}
			for unit, raws := range cd.Units {
				for _, raw := range raws {
					if entry, ok := parseFactEntry(raw); ok {
						concept.Units[unit] = append(concept.Units[unit], entry)
					}
				}
			}
			facts.concepts = append(facts.concepts, concept)
		}
	}

	sort.Slice(facts.concepts, func(i, j int) bool {
		a, b := facts.concepts[i], facts.concepts[j]
		if ra, rb := taxonomyRank(a.Taxonomy), taxonomyRank(b.Taxonomy); ra != rb {
			return ra < rb
		}
		if a.Taxonomy != b.Taxonomy {
			return a.Taxonomy < b.Taxonomy
		}
		return a.Tag < b.Tag
	})
	for _, c := range facts.concepts {
		if _, seen := facts.byTag[c.Tag]; !seen {
			facts.byTag[c.Tag] = c
		}
	}
	return facts, nil
}

// Concepts returns every concept in taxonomy-preference then tag order.
func (f *CompanyFacts) Concepts() []*Concept {
	if f == nil {
		return nil
	}
	return f.concepts
}

// Concept returns the preferred concept for an unqualified tag name.
func (f *CompanyFacts) Concept(tag string) (*Concept, bool) {
	if f == nil {
		return nil, false
	}
	c, ok := f.byTag[tag]
	return c, ok
}

// Scalar selects the latest annual USD value for the first tag in tags that
// has any numeric value. Returns nil when no tag matches.
func (f *CompanyFacts) Scalar(name string, tags []string) *models.FinancialFact {
	for _, tag := range tags {
		concept, ok := f.Concept(tag)
		if !ok {
			continue
		}

		var entries []FactEntry
		for _, e := range concept.Units[usdUnit] {
			if !e.HasSegment() {
				entries = append(entries, e)
			}
		}
		latest, ok := LatestEntry(entries)
		if !ok {
			continue
		}
		return &models.FinancialFact{
			TagName:   name,
			Value:     latest.Value,
			SourceTag: concept.SourceTag(),
			PeriodEnd: latest.End,
		}
	}
	return nil
}

// LatestEntry restricts entries to annual forms when any exist, then returns
// the one with the latest period end. Ties go to the later filing.
func LatestEntry(entries []FactEntry) (FactEntry, bool) {
	if len(entries) == 0 {
		return FactEntry{}, false
	}

	pool := make([]FactEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsAnnual() {
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		pool = append(pool, entries...)
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].End != pool[j].End {
			return pool[i].End < pool[j].End
		}
		return pool[i].Filed < pool[j].Filed
	})
	return pool[len(pool)-1], true
}

// parseFactEntry reads one raw entry. The segment descriptor may be an object
// of axis → member or an array of {dimension, value} pairs.
func parseFactEntry(raw []byte) (FactEntry, bool) {
	r := gjson.ParseBytes(raw)
	if !r.IsObject() {
		return FactEntry{}, false
	}

	val := r.Get("val")
	if val.Type != gjson.Number {
		return FactEntry{}, false
	}
	v := val.Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FactEntry{}, false
	}

	entry := FactEntry{
		Value: v,
		Form:  strings.TrimSpace(r.Get("form").String()),
		End:   strings.TrimSpace(r.Get("end").String()),
		Filed: strings.TrimSpace(r.Get("filed").String()),
	}

	seg := r.Get("segment")
	switch {
	case seg.IsObject():
		seg.ForEach(func(k, v gjson.Result) bool {
			if k.String() != "" && v.String() != "" {
				entry.addDimension(k.String(), v.String())
			}
			return true
		})
	case seg.IsArray():
		seg.ForEach(func(_, v gjson.Result) bool {
			axis := firstString(v, "dimension", "axis")
			member := firstString(v, "value", "member")
			if axis != "" && member != "" {
				entry.addDimension(axis, member)
			}
			return true
		})
	}
	return entry, true
}

func (e *FactEntry) addDimension(axis, member string) {
	if e.Segment == nil {
		e.Segment = make(map[string]string)
	}
	e.Segment[axis] = member
}

func firstString(r gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := r.Get(k); v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	return ""
}

func isAnnualForm(form string) bool {
	f := strings.ToUpper(strings.TrimSpace(form))
	for _, annual := range AnnualForms {
		if f == annual {
			return true
		}
	}
	return f == "10-KT" || f == "10-KT/A"
}

func taxonomyRank(taxonomy string) int {
	if r, ok := taxonomyOrder[taxonomy]; ok {
		return r
	}
	return 2
}

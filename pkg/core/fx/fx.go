// Package fx converts reported financials into the market-cap currency using
// a static table of exchange rates.
package fx

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"

	"shariah_screener/pkg/models"
)

// Rate is one quoted pair: 1 unit of From buys Rate units of To.
type Rate struct {
	From string  `yaml:"from"`
	To   string  `yaml:"to"`
	Rate float64 `yaml:"rate"`
}

type ratesFile struct {
	Rates []Rate `yaml:"rates"`
}

// Converter looks up a direct quote first and falls back to the inverse of
// the opposite quote.
type Converter struct {
	mu    sync.RWMutex
	rates map[string]float64
}

// NewConverter creates a converter seeded with rates.
func NewConverter(rates ...Rate) *Converter {
	c := &Converter{rates: make(map[string]float64)}
	for _, r := range rates {
		c.Set(r.From, r.To, r.Rate)
	}
	return c
}

// LoadFile reads a YAML file of the form
//
//	rates:
//	  - {from: EUR, to: USD, rate: 1.08}
func LoadFile(path string) (*Converter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fx rates %s: %w", path, err)
	}
	var f ratesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fx rates %s: %w", path, err)
	}
	for _, r := range f.Rates {
		if r.Rate <= 0 || r.From == "" || r.To == "" {
			return nil, fmt.Errorf("invalid fx rate %s/%s: %v", r.From, r.To, r.Rate)
		}
	}
	return NewConverter(f.Rates...), nil
}

// Set stores a quote. Non-positive rates are ignored.
func (c *Converter) Set(from, to string, rate float64) {
	if rate <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[pair(from, to)] = rate
}

// Rate returns the multiplier from → to.
func (c *Converter) Rate(from, to string) (float64, bool) {
	from, to = normalize(from), normalize(to)
	if from == to {
		return 1, true
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if r, ok := c.rates[pair(from, to)]; ok {
		return r, true
	}
	if r, ok := c.rates[pair(to, from)]; ok {
		return 1 / r, true
	}
	return 0, false
}

// Convert converts amount from → to.
func (c *Converter) Convert(amount float64, from, to string) (float64, bool) {
	r, ok := c.Rate(from, to)
	if !ok {
		return 0, false
	}
	return amount * r, true
}

// NormalizeFinancials restates balance-sheet figures in the market-cap
// currency. It returns f unchanged and false when no rate is known.
func (c *Converter) NormalizeFinancials(f models.Financials) (models.Financials, bool) {
	if f.FinancialCurrency == "" || f.MarketCapCurrency == "" {
		return f, true
	}
	r, ok := c.Rate(f.FinancialCurrency, f.MarketCapCurrency)
	if !ok {
		return f, false
	}
	out := f
	out.TotalDebt *= r
	out.CashAndEquivalents *= r
	out.ShortTermInvestments *= r
	out.AccountsReceivable *= r
	out.TotalAssets *= r
	out.FinancialCurrency = f.MarketCapCurrency
	return out, true
}

func pair(from, to string) string {
	return normalize(from) + "/" + normalize(to)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

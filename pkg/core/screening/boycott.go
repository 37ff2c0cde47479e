package screening

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"
)

// BoycottEntry is one listed company.
type BoycottEntry struct {
	Ticker string `yaml:"ticker"`
	Reason string `yaml:"reason"`
}

type boycottFile struct {
	Companies []BoycottEntry `yaml:"companies"`
}

// BoycottList is an externally maintained exclusion list, applied
// independently of the financial screens.
type BoycottList struct {
	mu      sync.RWMutex
	entries map[string]BoycottEntry
}

// NewBoycottList creates a list holding entries.
func NewBoycottList(entries ...BoycottEntry) *BoycottList {
	b := &BoycottList{entries: make(map[string]BoycottEntry)}
	for _, e := range entries {
		b.Add(e)
	}
	return b
}

// LoadBoycottFile reads a YAML file of the form
//
//	companies:
//	  - ticker: XYZ
//	    reason: ...
func LoadBoycottFile(path string) (*BoycottList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boycott list %s: %w", path, err)
	}
	var f boycottFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse boycott list %s: %w", path, err)
	}
	return NewBoycottList(f.Companies...), nil
}

// Add lists a company. Entries without a ticker are ignored.
func (b *BoycottList) Add(e BoycottEntry) {
	e.Ticker = strings.ToUpper(strings.TrimSpace(e.Ticker))
	if e.Ticker == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[e.Ticker] = e
}

// Lookup returns the entry for ticker. A nil list contains nothing.
func (b *BoycottList) Lookup(ticker string) (BoycottEntry, bool) {
	if b == nil {
		return BoycottEntry{}, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	e, ok := b.entries[strings.ToUpper(strings.TrimSpace(ticker))]
	return e, ok
}

// Len returns the number of listed companies.
func (b *BoycottList) Len() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

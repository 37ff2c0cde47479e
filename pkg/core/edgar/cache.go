package edgar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DocumentCache provides file-based caching for raw filing documents.
// Filings are immutable once accepted, so entries never expire.
type DocumentCache struct {
	cacheDir string
}

// NewDocumentCache creates a cache rooted at dir, creating it if needed.
func NewDocumentCache(dir string) (*DocumentCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create document cache dir: %w", err)
	}
	return &DocumentCache{cacheDir: dir}, nil
}

// cacheKey generates a unique key for a filing
func (c *DocumentCache) cacheKey(cik, accession string) string {
	accession = strings.ReplaceAll(accession, "-", "")
	return fmt.Sprintf("%s_%s", padCIK(cik), accession)
}

func (c *DocumentCache) filePath(key string) string {
	return filepath.Join(c.cacheDir, key+".htm")
}

// Get returns the cached document, or "" when not cached.
func (c *DocumentCache) Get(cik, accession string) string {
	data, err := os.ReadFile(c.filePath(c.cacheKey(cik, accession)))
	if err != nil {
		return ""
	}
	return string(data)
}

// Set stores a document in the cache
func (c *DocumentCache) Set(cik, accession, html string) error {
	if accession == "" {
		return fmt.Errorf("cannot cache document without accession number")
	}
	return os.WriteFile(c.filePath(c.cacheKey(cik, accession)), []byte(html), 0644)
}

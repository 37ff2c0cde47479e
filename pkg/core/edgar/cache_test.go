package edgar

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCache_RoundTrip(t *testing.T) {
	cache, err := NewDocumentCache(filepath.Join(t.TempDir(), "filings"))
	require.NoError(t, err)

	assert.Empty(t, cache.Get("320193", "0000320193-24-000123"))
	require.NoError(t, cache.Set("320193", "0000320193-24-000123", "<html>10-K</html>"))
	assert.Equal(t, "<html>10-K</html>", cache.Get("0000320193", "000032019324000123"))
	assert.Error(t, cache.Set("320193", "", "<html></html>"))
}

func TestDocumentCache_UnwritableDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	cache, err := NewDocumentCache(filepath.Join(blocker, "filings"))

	assert.Error(t, err)
	assert.Nil(t, cache)

	c := NewClient(Config{DocumentCacheDir: filepath.Join(blocker, "filings")})
	assert.Nil(t, c.docCache)
}

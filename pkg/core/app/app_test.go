package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shariah_screener/pkg/core/config"
)

func TestNewWithSQLiteAndFiles(t *testing.T) {
	dir := t.TempDir()
	boycott := filepath.Join(dir, "boycott.yaml")
	rates := filepath.Join(dir, "fx.yaml")
	require.NoError(t, os.WriteFile(boycott, []byte("companies:\n  - ticker: xyz\n    reason: test\n"), 0o644))
	require.NoError(t, os.WriteFile(rates, []byte("rates:\n  - {from: EUR, to: USD, rate: 1.1}\n"), 0o644))

	a, err := New(context.Background(), &config.Config{
		CacheBackend: config.BackendSQLite,
		SQLitePath:   filepath.Join(dir, "cache.db"),
		BoycottFile:  boycott,
		FXRatesFile:  rates,
	})
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Orchestrator)
	_, listed := a.Boycott.Lookup("XYZ")
	assert.True(t, listed)
}

func TestNewFailsOnMissingBoycottFile(t *testing.T) {
	_, err := New(context.Background(), &config.Config{
		CacheBackend: config.BackendMemory,
		BoycottFile:  filepath.Join(t.TempDir(), "missing.yaml"),
	})
	assert.Error(t, err)
}

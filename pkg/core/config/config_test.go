package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 200*time.Millisecond, cfg.SECMinInterval)
	assert.Equal(t, BackendMemory, cfg.CacheBackend)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("CACHE_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/cache.db")
	t.Setenv("SEC_MIN_INTERVAL", "500ms")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, BackendSQLite, cfg.CacheBackend)
	assert.Equal(t, "/tmp/cache.db", cfg.SQLitePath)
	assert.Equal(t, 500*time.Millisecond, cfg.SECMinInterval)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "screener.yaml")
	require.NoError(t, os.WriteFile(path, []byte("LISTEN_ADDR: \":9090\"\nBOYCOTT_FILE: boycott.yaml\n"), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "boycott.yaml", cfg.BoycottFile)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{CacheBackend: BackendMemory}, false},
		{"postgres without url", Config{CacheBackend: BackendPostgres}, true},
		{"postgres with url", Config{CacheBackend: BackendPostgres, DatabaseURL: "postgres://localhost/db"}, false},
		{"sqlite without path", Config{CacheBackend: BackendSQLite}, true},
		{"unknown backend", Config{CacheBackend: "redis"}, true},
		{"negative interval", Config{CacheBackend: BackendMemory, SECMinInterval: -time.Second}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

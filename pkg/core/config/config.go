// Package config resolves runtime settings from .env, the environment and an
// optional config file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cache backends.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config is the resolved runtime configuration.
type Config struct {
	AppEnv           string
	ListenAddr       string
	SECUserAgent     string
	SECMinInterval   time.Duration
	CacheBackend     string
	DatabaseURL      string
	SQLitePath       string
	DocumentCacheDir string
	OverridesFile    string
	BoycottFile      string
	FXRatesFile      string
	LogLevel         string
	LogFormat        string
}

// IsProduction reports whether debug details must be hidden from callers.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads .env (if present), then resolves every key from the environment
// and, when configFile is set, from that file. Environment wins over file.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		AppEnv:           v.GetString("APP_ENV"),
		ListenAddr:       v.GetString("LISTEN_ADDR"),
		SECUserAgent:     v.GetString("SEC_USER_AGENT"),
		SECMinInterval:   v.GetDuration("SEC_MIN_INTERVAL"),
		CacheBackend:     strings.ToLower(strings.TrimSpace(v.GetString("CACHE_BACKEND"))),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		SQLitePath:       v.GetString("SQLITE_PATH"),
		DocumentCacheDir: v.GetString("DOCUMENT_CACHE_DIR"),
		OverridesFile:    v.GetString("OVERRIDES_FILE"),
		BoycottFile:      v.GetString("BOYCOTT_FILE"),
		FXRatesFile:      v.GetString("FX_RATES_FILE"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("CACHE_BACKEND=postgres requires DATABASE_URL")
		}
	case BackendSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("CACHE_BACKEND=sqlite requires SQLITE_PATH")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q (want postgres, sqlite or memory)", c.CacheBackend)
	}
	if c.SECMinInterval < 0 {
		return fmt.Errorf("SEC_MIN_INTERVAL must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("SEC_USER_AGENT", "")
	v.SetDefault("SEC_MIN_INTERVAL", "200ms")
	v.SetDefault("CACHE_BACKEND", BackendMemory)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", "screener.db")
	v.SetDefault("DOCUMENT_CACHE_DIR", "")
	v.SetDefault("OVERRIDES_FILE", "")
	v.SetDefault("BOYCOTT_FILE", "")
	v.SetDefault("FX_RATES_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

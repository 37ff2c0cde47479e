// Package app wires the screening services from a resolved Config. Both the
// HTTP server and the CLI build their dependencies through New.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"shariah_screener/pkg/core/classify"
	"shariah_screener/pkg/core/config"
	"shariah_screener/pkg/core/edgar"
	"shariah_screener/pkg/core/fx"
	"shariah_screener/pkg/core/logging"
	"shariah_screener/pkg/core/overrides"
	"shariah_screener/pkg/core/screening"
	"shariah_screener/pkg/core/segments"
	"shariah_screener/pkg/core/store"
)

// App holds the long-lived services of the process.
type App struct {
	Config       *config.Config
	Registry     *overrides.Registry
	Boycott      *screening.BoycottList
	Orchestrator *screening.Orchestrator

	closers []func()
	logger  zerolog.Logger
}

// New builds every service described by cfg. Call Close when done.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg, logger: logging.For("app")}

	a.Registry = overrides.Default()
	if cfg.OverridesFile != "" {
		if err := a.Registry.LoadFile(cfg.OverridesFile); err != nil {
			return nil, err
		}
		a.logger.Info().Str("file", cfg.OverridesFile).Msg("loaded overrides")
	}

	kv, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	client := edgar.NewClient(edgar.Config{
		UserAgent:        cfg.SECUserAgent,
		MinInterval:      cfg.SECMinInterval,
		DocumentCacheDir: cfg.DocumentCacheDir,
	})
	classifier := classify.New(a.Registry)
	pipeline := screening.NewQualitativePipeline(client, segments.NewExtractor(a.Registry), classifier)

	a.Orchestrator = screening.NewOrchestrator(pipeline, store.NewQualitativeCache(kv, a.Registry), classifier)
	a.Orchestrator.SetProduction(cfg.IsProduction())

	a.Boycott = screening.NewBoycottList()
	if cfg.BoycottFile != "" {
		if a.Boycott, err = screening.LoadBoycottFile(cfg.BoycottFile); err != nil {
			a.Close()
			return nil, err
		}
	}
	a.Orchestrator.SetBoycottList(a.Boycott)

	if cfg.FXRatesFile != "" {
		converter, err := fx.LoadFile(cfg.FXRatesFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Orchestrator.SetConverter(converter)
	}

	a.logger.Info().
		Str("cache_backend", cfg.CacheBackend).
		Int("boycott_entries", a.Boycott.Len()).
		Bool("production", cfg.IsProduction()).
		Msg("services ready")
	return a, nil
}

// Close releases database handles.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *App) openStore(ctx context.Context) (store.KV, error) {
	switch a.Config.CacheBackend {
	case config.BackendPostgres:
		if err := store.InitDB(ctx, a.Config.DatabaseURL); err != nil {
			return nil, fmt.Errorf("init postgres cache: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store.NewPostgresStore(store.GetPool()), nil
	case config.BackendSQLite:
		s, err := store.OpenSQLite(a.Config.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite cache: %w", err)
		}
		a.closers = append(a.closers, func() { s.Close() })
		return s, nil
	default:
		return store.NewMemoryStore(), nil
	}
}

package core

import (
	"context"
	"fmt"
	"log"

	"github.com/status-im/coin-tracker/api"
	"github.com/status-im/coin-tracker/cache"
	"github.com/status-im/coin-tracker/coin_detail"
	"github.com/status-im/coin-tracker/coin_list"
	"github.com/status-im/coin-tracker/config"
	"github.com/status-im/coin-tracker/persistence"
	"github.com/status-im/coin-tracker/remote"
	"github.com/status-im/coin-tracker/storage"
	"github.com/status-im/coin-tracker/theme"
)

// Options selects the optional parts of the application
type Options struct {
	// WithServer registers the HTTP API on cfg.Server.Port
	WithServer bool
}

// App holds the wired services
type App struct {
	Registry      *Registry
	Storage       storage.KV
	Cache         *cache.Service
	Persistence   *persistence.Store
	Remote        *remote.Service
	CoinList      *coin_list.Service
	DetailManager *coin_detail.Manager
	Theme         *theme.Service
	Server        *api.Server
}

// storageCloser closes the database when the registry stops, after every
// service that writes to it
type storageCloser struct {
	kv storage.KV
}

func (s storageCloser) Start(ctx context.Context) error { return nil }

func (s storageCloser) Stop() {
	if err := s.kv.Close(); err != nil {
		log.Printf("Storage: failed to close database: %v", err)
	}
}

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	kv, err := storage.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return SetupWithStorage(ctx, cfg, kv, opts)
}

// SetupWithStorage wires the application on an already opened store
func SetupWithStorage(ctx context.Context, cfg *config.Config, kv storage.KV, opts Options) (*App, error) {
	registry := NewRegistry()
	registry.Register("storage", storageCloser{kv: kv})

	// Read cache in front of the database
	cacheService := cache.NewService(cfg.Cache)
	registry.Register("cache", cacheService)

	store, err := persistence.NewStore(kv, cacheService, cfg.Persistence)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to create persistence: %w", err)
	}
	registry.Register("persistence", store)

	remoteService := remote.NewService(cfg.CoinGecko)

	themeService := theme.NewService(store)
	registry.Register("theme", themeService)

	coinList := coin_list.NewService(remoteService, store)
	registry.Register("coin_list", coinList)

	detailManager, err := coin_detail.NewManager(remoteService, store, cfg.Sync.DefaultTimeFrameDays, cfg.Sync.DetailSessions)
	if err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("failed to create detail manager: %w", err)
	}

	app := &App{
		Registry:      registry,
		Storage:       kv,
		Cache:         cacheService,
		Persistence:   store,
		Remote:        remoteService,
		CoinList:      coinList,
		DetailManager: detailManager,
		Theme:         themeService,
	}

	if opts.WithServer {
		app.Server = api.New(cfg.Server.Port, coinList, detailManager, themeService, store, remoteService)
		registry.Register("api", app.Server)
	}

	return app, nil
}

// ClearLocalData removes every stored key, favorites included, and drops
// detail sessions. The list keeps its in-memory state until the next fetch.
func (a *App) ClearLocalData(ctx context.Context) error {
	if err := a.Persistence.Clear(ctx); err != nil {
		return err
	}
	a.DetailManager.Reset()
	return nil
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

// @title Dongnae API
// @version 1.0
// @description Seoul neighborhood and place recommendations matched to taste, purpose, companions and crowd preference.
//
// @contact.name GitHub Repository
// @contact.url https://github.com/tomtom215/dongnae
//
// @license.name AGPL-3.0-or-later
// @license.url https://www.gnu.org/licenses/agpl-3.0.html
//
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/dongnae/docs" // swagger spec

	"github.com/tomtom215/dongnae/internal/api"
	"github.com/tomtom215/dongnae/internal/config"
	"github.com/tomtom215/dongnae/internal/logging"
	"github.com/tomtom215/dongnae/internal/supervisor"
	"github.com/tomtom215/dongnae/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	// storeGCInterval is how often the badger value log is compacted.
	storeGCInterval = time.Hour

	cacheJanitorInterval = 10 * time.Minute
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		logging.Warn().Err(err).Msg("Failed to load .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Bool("seoul_enabled", cfg.Seoul.Enabled()).
		Bool("photo_enabled", cfg.Photo.Enabled()).
		Bool("llm_enabled", cfg.LLM.Enabled()).
		Str("store", cfg.Store.Backend).
		Msg("Starting Dongnae")

	if !cfg.Seoul.Enabled() {
		logging.Warn().Msg("SEOUL_API_KEY is not set; place recommendations will be empty and area ranking uses the curated list")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Server stopped")
}

// run wires every component and blocks until SIGINT or SIGTERM.
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dislikes, badgerStore, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		if err := dislikes.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing dislike store")
		}
	}()

	sources := initSources(cfg, logging.WithComponent("sources"))

	engine, err := initEngine(cfg, sources, dislikes, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	handler := api.NewHandler(engine, nil, sources.Status(), api.HandlerConfig{
		RequestTimeout:  cfg.Server.RequestTimeout,
		CatalogRequired: cfg.Seoul.Enabled(),
		Version:         version,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(chiMiddlewareConfig(cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	tree.AddDataService(services.NewCatalogRefresher(engine, services.CatalogRefresherConfig{
		WarmOnStart:     cfg.Seoul.Enabled(),
		RefreshInterval: cfg.Recommend.RefreshInterval,
	}, logging.WithComponent("catalog")))

	cacheLog := logging.WithComponent("cache")
	tree.AddDataService(services.NewPeriodicService("cache-janitor", cacheJanitorInterval,
		func(ctx context.Context) error {
			if n := sources.PurgeCaches(ctx); n > 0 {
				cacheLog.Debug().Int("removed", n).Msg("Purged expired cache entries")
			}
			return nil
		}, cacheLog))

	if badgerStore != nil {
		tree.AddDataService(services.NewPeriodicService("store-gc", storeGCInterval,
			badgerStore.CollectGarbage, logging.WithComponent("store")))
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}
	return nil
}

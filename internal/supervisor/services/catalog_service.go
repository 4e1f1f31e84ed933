// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CatalogEngine is the part of the recommendation engine the refresher
// drives. Satisfied by *recommend.Engine.
type CatalogEngine interface {
	RefreshCatalog(ctx context.Context) error
	SweepSessions() int
}

// CatalogRefresherConfig holds the refresher schedule.
type CatalogRefresherConfig struct {
	// WarmOnStart loads the catalog before the first tick.
	WarmOnStart bool

	// RefreshInterval is how often the catalog is reloaded. Default 6h.
	RefreshInterval time.Duration

	// SweepInterval is how often idle feed states are dropped. Default 5m.
	SweepInterval time.Duration

	// RefreshTimeout bounds a single reload, retries included. Default 2m.
	RefreshTimeout time.Duration
}

func (c CatalogRefresherConfig) withDefaults() CatalogRefresherConfig {
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 6 * time.Hour
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = 5 * time.Minute
	}
	if c.RefreshTimeout <= 0 {
		c.RefreshTimeout = 2 * time.Minute
	}
	return c
}

// CatalogRefresher keeps the place catalog warm and the session store small.
// A failed reload keeps the previous snapshot; requests still load lazily on
// a cache miss.
type CatalogRefresher struct {
	engine CatalogEngine
	config CatalogRefresherConfig
	logger zerolog.Logger
	name   string
}

// NewCatalogRefresher creates the refresher service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalogRefresher(engine CatalogEngine, cfg CatalogRefresherConfig, logger zerolog.Logger) *CatalogRefresher {
	return &CatalogRefresher{
		engine: engine,
		config: cfg.withDefaults(),
		logger: logger.With().Str("service", "catalog-refresher").Logger(),
		name:   "catalog-refresher",
	}
}

// Serve implements suture.Service.
func (s *CatalogRefresher) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("warm_on_start", s.config.WarmOnStart).
		Dur("refresh_interval", s.config.RefreshInterval).
		Dur("sweep_interval", s.config.SweepInterval).
		Msg("catalog refresher starting")

	if s.config.WarmOnStart {
		s.refresh(ctx)
	}

	refresh := time.NewTicker(s.config.RefreshInterval)
	defer refresh.Stop()
	sweep := time.NewTicker(s.config.SweepInterval)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresher shutting down")
			return ctx.Err()

		case <-refresh.C:
			s.refresh(ctx)

		case <-sweep.C:
			if n := s.engine.SweepSessions(); n > 0 {
				s.logger.Debug().Int("removed", n).Msg("idle feed states swept")
			}
		}
	}
}

func (s *CatalogRefresher) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.RefreshTimeout)
	defer cancel()

	start := time.Now()
	if err := s.engine.RefreshCatalog(refreshCtx); err != nil {
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("catalog refresh failed, keeping previous snapshot")
		return
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("catalog refreshed")
}

// String returns the service name for suture's logs.
func (s *CatalogRefresher) String() string {
	return s.name
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package api

import (
	"context"
	"time"

	"github.com/tomtom215/dongnae/internal/areas"
	"github.com/tomtom215/dongnae/internal/place"
	"github.com/tomtom215/dongnae/internal/recommend"
)

// defaultRequestTimeout bounds a recommendation call when none is configured.
const defaultRequestTimeout = 10 * time.Second

// Engine is the recommendation engine as seen by the handlers. Satisfied by
// *recommend.Engine.
type Engine interface {
	Recommend(ctx context.Context, sessionID string, q recommend.Query) (*recommend.Response, error)
	RerankAll(ctx context.Context, sessionID, signature string) (*recommend.Response, error)
	Dislike(ctx context.Context, sessionID, signature string, areaNames []string) (*recommend.Response, error)
	RecommendAreas(ctx context.Context, q recommend.Query) (*recommend.AreaResponse, error)
	CatalogStats() (place.Stats, bool)
}

// SourceStatus reports one external source for the readiness probe.
type SourceStatus interface {
	Name() string
	Enabled() bool
	BreakerState() string
}

// HandlerConfig configures a Handler.
type HandlerConfig struct {
	// RequestTimeout bounds each engine call.
	RequestTimeout time.Duration

	// CatalogRequired makes readiness wait for the first catalog load. It is
	// false when the place source has no API key.
	CatalogRequired bool

	Version string
}

// Handler serves the Dongnae API.
type Handler struct {
	engine    Engine
	areas     *areas.Catalog
	sources   []SourceStatus
	config    HandlerConfig
	startTime time.Time
}

// NewHandler creates a Handler. A nil catalog means the embedded one.
func NewHandler(engine Engine, catalog *areas.Catalog, sources []SourceStatus, cfg HandlerConfig) *Handler {
	if catalog == nil {
		catalog = areas.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		engine:    engine,
		areas:     catalog,
		sources:   sources,
		config:    cfg,
		startTime: time.Now(),
	}
}

// withTimeout derives the per-request engine deadline.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, h.config.RequestTimeout)
}

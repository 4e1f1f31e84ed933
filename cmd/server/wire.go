// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dongnae/internal/api"
	"github.com/tomtom215/dongnae/internal/config"
	"github.com/tomtom215/dongnae/internal/llm"
	"github.com/tomtom215/dongnae/internal/recommend"
	"github.com/tomtom215/dongnae/internal/resilience"
	"github.com/tomtom215/dongnae/internal/sources/photo"
	"github.com/tomtom215/dongnae/internal/sources/seoul"
	"github.com/tomtom215/dongnae/internal/store"
)

// dislikeTTL is how long a persisted dislike set outlives its last update.
const dislikeTTL = 7 * 24 * time.Hour

// Sources holds the external clients and the guards in front of them.
type Sources struct {
	Seoul  *seoul.Client
	Photo  *photo.Client
	LLM    *llm.Client
	guards map[string]*resilience.Guard
}

// Status lists every source for the readiness probe.
func (s *Sources) Status() []api.SourceStatus {
	return []api.SourceStatus{
		api.NewSourceStatus(seoul.SourceName, s.Seoul.Enabled(), s.guards[seoul.SourceName]),
		api.NewSourceStatus(photo.SourceName, s.Photo.Enabled(), s.guards[photo.SourceName]),
		api.NewSourceStatus(llm.SourceName, s.LLM.Enabled(), s.guards[llm.SourceName]),
	}
}

// PurgeCaches drops expired entries from every client cache.
func (s *Sources) PurgeCaches(_ context.Context) int {
	return s.Seoul.PurgeExpired() + s.Photo.PurgeExpired() + s.LLM.PurgeExpired()
}

// retryPolicy converts the shared retry settings.
func retryPolicy(cfg config.RetryConfig) resilience.Policy {
	policy := resilience.DefaultPolicy()
	if cfg.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.BaseDelay > 0 {
		policy.BaseDelay = cfg.BaseDelay
	}
	if cfg.MaxDelay > 0 {
		policy.MaxDelay = cfg.MaxDelay
	}
	if cfg.Jitter >= 0 {
		policy.Jitter = cfg.Jitter
	}
	return policy
}

// initSources builds one guarded client per external API. A client without
// a key makes no calls.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initSources(cfg *config.Config, logger zerolog.Logger) *Sources {
	policy := retryPolicy(cfg.Retry)
	guard := func(name string, rps float64) *resilience.Guard {
		return resilience.NewGuard(name, policy, rps, logger)
	}

	guards := map[string]*resilience.Guard{
		seoul.SourceName: guard(seoul.SourceName, cfg.Seoul.RequestsPerSecond),
		photo.SourceName: guard(photo.SourceName, cfg.Photo.RequestsPerSecond),
		llm.SourceName:   guard(llm.SourceName, cfg.LLM.RequestsPerSecond),
	}

	return &Sources{
		Seoul: seoul.NewClient(seoul.Config{
			BaseURL:      cfg.Seoul.BaseURL,
			Key:          cfg.Seoul.APIKey,
			ServiceName:  cfg.Seoul.ServiceName,
			CatalogID:    cfg.Seoul.CatalogID,
			Timeout:      cfg.Seoul.Timeout,
			CrowdTimeout: cfg.Seoul.CrowdTimeout,
			ServiceTTL:   cfg.Seoul.ServiceTTL,
			PlacesTTL:    cfg.Seoul.PlacesTTL,
			CrowdTTL:     cfg.Seoul.CrowdTTL,
		}, guards[seoul.SourceName], logger),
		Photo: photo.NewClient(photo.Config{
			BaseURL: cfg.Photo.BaseURL,
			Key:     cfg.Photo.APIKey,
			Timeout: cfg.Photo.Timeout,
			TTL:     cfg.Photo.TTL,
		}, guards[photo.SourceName], logger),
		LLM: llm.NewClient(llm.Config{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		}, guards[llm.SourceName], logger),
		guards: guards,
	}
}

// dislikeStore is a DislikeStore the server must close on exit.
type dislikeStore interface {
	recommend.DislikeStore
	Close() error
}

// openStore opens the configured dislike store. The returned Badger is nil
// for the memory backend.
func openStore(cfg config.StoreConfig) (dislikeStore, *store.Badger, error) {
	switch cfg.Backend {
	case config.StoreBadger:
		db, err := store.OpenBadger(cfg.Path, dislikeTTL)
		if err != nil {
			return nil, nil, err
		}
		return db, db, nil
	case config.StoreMemory, "":
		return store.NewMemory(), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// buildEngineConfig converts the engine settings. Zero values keep the
// engine defaults.
func buildEngineConfig(cfg *config.RecommendConfig) *recommend.Config {
	out := recommend.DefaultConfig()

	setInt := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	setInt(&out.ResultCount, cfg.ResultCount)
	setInt(&out.BaseLimit, cfg.BaseLimit)
	setInt(&out.MaxLimit, cfg.MaxLimit)
	setInt(&out.MaxCandidates, cfg.MaxCandidates)
	setInt(&out.TourIndexCap, cfg.TourIndexCap)
	setInt(&out.RerankWindow, cfg.RerankWindow)
	if cfg.MaxCompanions >= 0 {
		out.MaxCompanions = cfg.MaxCompanions
	}

	if cfg.Denylist != nil {
		out.Denylist = cfg.Denylist
	}
	if cfg.FeedTTL > 0 {
		out.FeedTTL = cfg.FeedTTL
	}
	if cfg.CatalogTTL > 0 {
		out.CatalogTTL = cfg.CatalogTTL
	}

	if cfg.Weights != (config.WeightsConfig{}) {
		out.Weights = recommend.Weights{
			UserToken:    cfg.Weights.UserToken,
			ExtraKeyword: cfg.Weights.ExtraKeyword,
			CrowdMatch:   cfg.Weights.CrowdMatch,
			CrowdBase:    cfg.Weights.CrowdBase,
			CrowdStep:    cfg.Weights.CrowdStep,
			KeywordHit:   cfg.Weights.KeywordHit,
			KeywordCap:   cfg.Weights.KeywordCap,
			Vibe:         cfg.Weights.Vibe,
		}
	}
	return out
}

// initEngine builds the recommendation engine over the sources.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEngine(cfg *config.Config, src *Sources, dislikes recommend.DislikeStore, logger zerolog.Logger) (*recommend.Engine, error) {
	deps := recommend.Deps{
		Catalog:  src.Seoul,
		Crowd:    src.Seoul,
		Dislikes: dislikes,
	}
	// Disabled optional clients stay nil.
	if src.Photo.Enabled() {
		deps.Photos = src.Photo
	}
	if src.LLM.Enabled() {
		deps.Advisor = src.LLM
	}
	return recommend.NewEngine(buildEngineConfig(&cfg.Recommend), deps, logger)
}

// chiMiddlewareConfig converts the CORS and rate limit settings.
func chiMiddlewareConfig(cfg config.SecurityConfig) *api.ChiMiddlewareConfig {
	out := api.DefaultChiMiddlewareConfig()
	out.CORSAllowedOrigins = cfg.CORSOrigins
	if cfg.RateLimitReqs > 0 {
		out.RateLimitRequests = cfg.RateLimitReqs
	}
	if cfg.RateLimitWindow > 0 {
		out.RateLimitWindow = cfg.RateLimitWindow
	}
	out.RateLimitDisabled = cfg.RateLimitDisabled
	return out
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// ResultCount is the number of results per batch (R).
	// Default: 4
	ResultCount int `json:"result_count"`

	// BaseLimit is the initial buffering ceiling of a feed.
	// Default: 200
	BaseLimit int `json:"base_limit"`

	// MaxLimit is the ceiling used by the first relaxation step.
	// Default: 500
	MaxLimit int `json:"max_limit"`

	// MaxCandidates caps the number of region candidates for area ranking.
	// Default: 600
	MaxCandidates int `json:"max_candidates"`

	// MaxCompanions caps the companions considered per query.
	// Default: 2
	MaxCompanions int `json:"max_companions"`

	// TourIndexCap is the number of descriptive texts scanned per district.
	// Default: 300
	TourIndexCap int `json:"tour_index_cap"`

	// RerankWindow is how many top areas are offered to the advisor for
	// reranking.
	// Default: 20
	RerankWindow int `json:"rerank_window"`

	// Weights are the additive scoring constants.
	Weights Weights `json:"weights"`

	// Denylist holds substrings of name or address that exclude a place.
	// Default: ["안녕인사동"]
	Denylist []string `json:"denylist"`

	// FeedTTL is how long an idle session keeps its feed state.
	// Default: 1h
	FeedTTL time.Duration `json:"feed_ttl"`

	// CatalogTTL is how long a normalized catalog snapshot is reused.
	// Default: 1h
	CatalogTTL time.Duration `json:"catalog_ttl"`
}

// Weights are the hand-tuned scoring constants.
type Weights struct {
	// UserToken is added per query token found in a place's text.
	UserToken float64 `json:"user_token"`

	// ExtraKeyword is added per expansion keyword found in a place's text.
	ExtraKeyword float64 `json:"extra_keyword"`

	// CrowdMatch is the crowd term when the observed level equals the preference.
	CrowdMatch float64 `json:"crowd_match"`

	// CrowdBase and CrowdStep give max(0, base - step*distance) otherwise.
	CrowdBase float64 `json:"crowd_base"`
	CrowdStep float64 `json:"crowd_step"`

	// KeywordHit is added per (text, token) hit in the tour index, capped at
	// KeywordCap.
	KeywordHit float64 `json:"keyword_hit"`
	KeywordCap float64 `json:"keyword_cap"`

	// Vibe is added per query token found in an area's vibe tags.
	Vibe float64 `json:"vibe"`
}

// DefaultWeights returns the stock scoring constants.
func DefaultWeights() Weights {
	return Weights{
		UserToken:    0.4,
		ExtraKeyword: 0.2,
		CrowdMatch:   2.0,
		CrowdBase:    1.5,
		CrowdStep:    0.7,
		KeywordHit:   0.15,
		KeywordCap:   6.0,
		Vibe:         0.8,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ResultCount:   4,
		BaseLimit:     200,
		MaxLimit:      500,
		MaxCandidates: 600,
		MaxCompanions: 2,
		TourIndexCap:  300,
		RerankWindow:  20,
		Weights:       DefaultWeights(),
		Denylist:      []string{"안녕인사동"},
		FeedTTL:       time.Hour,
		CatalogTTL:    time.Hour,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.ResultCount < 1 {
		return fmt.Errorf("result_count must be at least 1, got %d", c.ResultCount)
	}
	if c.BaseLimit < c.ResultCount {
		return fmt.Errorf("base_limit (%d) must be at least result_count (%d)", c.BaseLimit, c.ResultCount)
	}
	if c.MaxLimit < c.BaseLimit {
		return fmt.Errorf("max_limit (%d) must be at least base_limit (%d)", c.MaxLimit, c.BaseLimit)
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("max_candidates must be positive, got %d", c.MaxCandidates)
	}
	if c.MaxCompanions < 0 {
		return fmt.Errorf("max_companions must be non-negative, got %d", c.MaxCompanions)
	}
	if c.TourIndexCap < 1 {
		return fmt.Errorf("tour_index_cap must be positive, got %d", c.TourIndexCap)
	}
	if c.RerankWindow < 0 {
		return fmt.Errorf("rerank_window must be non-negative, got %d", c.RerankWindow)
	}
	if c.FeedTTL <= 0 {
		return fmt.Errorf("feed_ttl must be positive, got %v", c.FeedTTL)
	}
	if c.CatalogTTL <= 0 {
		return fmt.Errorf("catalog_ttl must be positive, got %v", c.CatalogTTL)
	}
	return c.Weights.validate()
}

func (w Weights) validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"user_token", w.UserToken},
		{"extra_keyword", w.ExtraKeyword},
		{"crowd_match", w.CrowdMatch},
		{"crowd_base", w.CrowdBase},
		{"crowd_step", w.CrowdStep},
		{"keyword_hit", w.KeywordHit},
		{"keyword_cap", w.KeywordCap},
		{"vibe", w.Vibe},
	}
	for _, n := range named {
		if n.value < 0 {
			return fmt.Errorf("weights.%s must be non-negative, got %v", n.name, n.value)
		}
	}
	return nil
}

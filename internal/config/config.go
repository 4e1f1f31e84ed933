// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. External sources:
//     - Seoul: Open data API (attraction catalog, live crowd levels)
//     - Photo: Tourism photo gallery
//     - LLM: OpenAI-compatible chat completions
//
//  2. Engine:
//     - Recommend: Feed sizes, scoring weights, catalog refresh
//     - Retry: Retry policy shared by every external call
//     - Store: Dislike persistence backend
//
//  3. Service:
//     - Server: HTTP listener and timeouts
//     - Security: CORS and per-IP rate limiting
//     - Logging: Log level and output format
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Security  SecurityConfig  `koanf:"security"`
	Seoul     SeoulConfig     `koanf:"seoul"`
	Photo     PhotoConfig     `koanf:"photo"`
	LLM       LLMConfig       `koanf:"llm"`
	Recommend RecommendConfig `koanf:"recommend"`
	Retry     RetryConfig     `koanf:"retry"`
	Store     StoreConfig     `koanf:"store"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds the handling of a single API request.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// SecurityConfig holds CORS and rate limiting settings
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// SeoulConfig configures the Seoul open data API.
//
// Environment Variables:
//   - SEOUL_API_KEY: API key; without it the catalog and crowd levels are empty
//   - OA21050_SERVICE_NAME: service name of the attraction dataset, skipping the lookup
type SeoulConfig struct {
	BaseURL     string `koanf:"base_url"`
	APIKey      string `koanf:"api_key"`
	ServiceName string `koanf:"service_name"`
	CatalogID   string `koanf:"catalog_id"`

	Timeout      time.Duration `koanf:"timeout"`
	CrowdTimeout time.Duration `koanf:"crowd_timeout"`

	ServiceTTL time.Duration `koanf:"service_ttl"`
	PlacesTTL  time.Duration `koanf:"places_ttl"`
	CrowdTTL   time.Duration `koanf:"crowd_ttl"`

	// RequestsPerSecond limits outbound calls. 0 disables the limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// Enabled reports whether an API key is configured.
func (s SeoulConfig) Enabled() bool { return s.APIKey != "" }

// PhotoConfig configures the tourism photo gallery.
type PhotoConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	TTL               time.Duration `koanf:"ttl"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// Enabled reports whether a service key is configured.
func (p PhotoConfig) Enabled() bool { return p.APIKey != "" }

// LLMConfig configures the chat completions advisor. It is used only when an
// API key is present.
type LLMConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Model             string        `koanf:"model"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// Enabled reports whether an API key is configured.
func (l LLMConfig) Enabled() bool { return l.APIKey != "" }

// RecommendConfig holds recommendation engine settings.
//
// Environment Variables:
//   - RECOMMEND_RESULT_COUNT: results per batch (default: 4)
//   - RECOMMEND_DENYLIST: comma-separated substrings that exclude a place
//   - CATALOG_REFRESH_INTERVAL: how often the place catalog is reloaded (default: 6h)
type RecommendConfig struct {
	ResultCount   int `koanf:"result_count"`
	BaseLimit     int `koanf:"base_limit"`
	MaxLimit      int `koanf:"max_limit"`
	MaxCandidates int `koanf:"max_candidates"`
	MaxCompanions int `koanf:"max_companions"`
	TourIndexCap  int `koanf:"tour_index_cap"`
	RerankWindow  int `koanf:"rerank_window"`

	Weights  WeightsConfig `koanf:"weights"`
	Denylist []string      `koanf:"denylist"`

	FeedTTL    time.Duration `koanf:"feed_ttl"`
	CatalogTTL time.Duration `koanf:"catalog_ttl"`

	// RefreshInterval is how often the catalog refresher reloads places and
	// sweeps idle sessions.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// WeightsConfig holds the scoring constants.
type WeightsConfig struct {
	UserToken    float64 `koanf:"user_token"`
	ExtraKeyword float64 `koanf:"extra_keyword"`
	CrowdMatch   float64 `koanf:"crowd_match"`
	CrowdBase    float64 `koanf:"crowd_base"`
	CrowdStep    float64 `koanf:"crowd_step"`
	KeywordHit   float64 `koanf:"keyword_hit"`
	KeywordCap   float64 `koanf:"keyword_cap"`
	Vibe         float64 `koanf:"vibe"`
}

// RetryConfig is the retry policy applied to every external call.
type RetryConfig struct {
	MaxAttempts int           `koanf:"max_attempts"`
	BaseDelay   time.Duration `koanf:"base_delay"`
	MaxDelay    time.Duration `koanf:"max_delay"`
	Jitter      float64       `koanf:"jitter"`
}

// Store backends.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

// StoreConfig selects the dislike store backend.
type StoreConfig struct {
	// Backend is "memory" (default) or "badger".
	Backend string `koanf:"backend"`

	// Path is the BadgerDB directory, required for the badger backend.
	Path string `koanf:"path"`
}

// Load loads configuration using Koanf with layered sources.
// Precedence: Environment Variables > Config File > Defaults
func Load() (*Config, error) {
	return LoadWithKoanf()
}

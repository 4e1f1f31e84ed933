// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/dongnae/config.yaml",
	"/etc/dongnae/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RequestTimeout:  10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Seoul: SeoulConfig{
			BaseURL:           "http://openapi.seoul.go.kr:8088",
			CatalogID:         "OA-21050",
			Timeout:           10 * time.Second,
			CrowdTimeout:      15 * time.Second,
			ServiceTTL:        24 * time.Hour,
			PlacesTTL:         6 * time.Hour,
			CrowdTTL:          5 * time.Minute,
			RequestsPerSecond: 5,
		},
		Photo: PhotoConfig{
			BaseURL:           "https://apis.data.go.kr/B551011/PhotoGalleryService1/gallerySearchList1",
			Timeout:           10 * time.Second,
			TTL:               24 * time.Hour,
			RequestsPerSecond: 5,
		},
		LLM: LLMConfig{
			BaseURL:           "https://api.openai.com/v1",
			Model:             "gpt-4o-mini",
			Timeout:           20 * time.Second,
			RequestsPerSecond: 2,
		},
		Recommend: RecommendConfig{
			ResultCount:   4,
			BaseLimit:     200,
			MaxLimit:      500,
			MaxCandidates: 600,
			MaxCompanions: 2,
			TourIndexCap:  300,
			RerankWindow:  20,
			Weights: WeightsConfig{
				UserToken:    0.4,
				ExtraKeyword: 0.2,
				CrowdMatch:   2.0,
				CrowdBase:    1.5,
				CrowdStep:    0.7,
				KeywordHit:   0.15,
				KeywordCap:   6.0,
				Vibe:         0.8,
			},
			Denylist:        []string{"안녕인사동"},
			FeedTTL:         time.Hour,
			CatalogTTL:      time.Hour,
			RefreshInterval: 6 * time.Hour,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   800 * time.Millisecond,
			MaxDelay:    5 * time.Second,
			Jitter:      0.2,
		},
		Store: StoreConfig{
			Backend: StoreMemory,
			Path:    "./data/dislikes",
		},
	}
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables already set win. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// SEOUL_API_KEY -> seoul.api_key
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
	"recommend.denylist",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"request_timeout":       "server.request_timeout",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Seoul open data mappings
	"seoul_base_url":       "seoul.base_url",
	"seoul_api_key":        "seoul.api_key",
	"oa21050_service_name": "seoul.service_name",
	"seoul_catalog_id":     "seoul.catalog_id",
	"seoul_timeout":        "seoul.timeout",
	"seoul_crowd_timeout":  "seoul.crowd_timeout",
	"seoul_places_ttl":     "seoul.places_ttl",
	"seoul_crowd_ttl":      "seoul.crowd_ttl",
	"seoul_rps":            "seoul.requests_per_second",

	// Photo gallery mappings
	"photo_korea_base_url": "photo.base_url",
	"photo_korea_api_key":  "photo.api_key",
	"photo_timeout":        "photo.timeout",
	"photo_ttl":            "photo.ttl",

	// LLM mappings
	"openai_base_url": "llm.base_url",
	"openai_api_key":  "llm.api_key",
	"openai_model":    "llm.model",
	"llm_timeout":     "llm.timeout",

	// Recommendation engine mappings
	"recommend_result_count":   "recommend.result_count",
	"recommend_base_limit":     "recommend.base_limit",
	"recommend_max_limit":      "recommend.max_limit",
	"recommend_max_candidates": "recommend.max_candidates",
	"recommend_denylist":       "recommend.denylist",
	"recommend_feed_ttl":       "recommend.feed_ttl",
	"catalog_refresh_interval": "recommend.refresh_interval",

	// Retry mappings
	"retry_max_attempts": "retry.max_attempts",
	"retry_base_delay":   "retry.base_delay",
	"retry_max_delay":    "retry.max_delay",

	// Store mappings
	"dislike_store":      "store.backend",
	"dislike_store_path": "store.path",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - SEOUL_API_KEY -> seoul.api_key
//   - OA21050_SERVICE_NAME -> seoul.service_name
//   - OPENAI_API_KEY -> llm.api_key
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables do not
	// pollute the config.
	return ""
}

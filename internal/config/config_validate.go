// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateSecurity,
		c.validateSources,
		c.validateRecommend,
		c.validateRetry,
		c.validateStore,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	timeouts := []struct {
		name  string
		value time.Duration
	}{
		{"HTTP_READ_TIMEOUT", c.Server.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", c.Server.WriteTimeout},
		{"HTTP_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout},
		{"REQUEST_TIMEOUT", c.Server.RequestTimeout},
	}
	for _, t := range timeouts {
		if t.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", t.name, t.value)
		}
	}
	return nil
}

// validateSecurity validates CORS and rate limiting
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects empty origins and wildcards mixed with explicit origins.
func (c *Config) validateCORS() error {
	for _, origin := range c.Security.CORSOrigins {
		if strings.TrimSpace(origin) == "" {
			return fmt.Errorf("CORS_ORIGINS contains an empty origin")
		}
	}
	if c.hasWildcardCORS() && len(c.Security.CORSOrigins) > 1 {
		return fmt.Errorf("CORS_ORIGINS=* cannot be combined with explicit origins")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateSources validates the external API settings. Missing keys are
// allowed: each source then degrades to empty results.
func (c *Config) validateSources() error {
	urls := []struct {
		name, value string
	}{
		{"SEOUL_BASE_URL", c.Seoul.BaseURL},
		{"PHOTO_KOREA_BASE_URL", c.Photo.BaseURL},
		{"OPENAI_BASE_URL", c.LLM.BaseURL},
	}
	for _, u := range urls {
		if err := validateHTTPURL(u.value, u.name); err != nil {
			return err
		}
	}

	keys := []struct {
		name, value string
	}{
		{"SEOUL_API_KEY", c.Seoul.APIKey},
		{"PHOTO_KOREA_API_KEY", c.Photo.APIKey},
		{"OPENAI_API_KEY", c.LLM.APIKey},
	}
	for _, k := range keys {
		if k.value != "" && containsPlaceholder(k.value) {
			return fmt.Errorf("%s appears to be a placeholder value; set a real key or leave it empty", k.name)
		}
	}

	if c.Seoul.ServiceName != "" && !serviceNamePattern.MatchString(c.Seoul.ServiceName) {
		return fmt.Errorf("OA21050_SERVICE_NAME must be 3-80 letters, digits or underscores, got %q", c.Seoul.ServiceName)
	}
	if strings.TrimSpace(c.Seoul.CatalogID) == "" {
		return fmt.Errorf("SEOUL_CATALOG_ID is required")
	}
	if c.LLM.Enabled() && strings.TrimSpace(c.LLM.Model) == "" {
		return fmt.Errorf("OPENAI_MODEL is required when OPENAI_API_KEY is set")
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"SEOUL_TIMEOUT", c.Seoul.Timeout},
		{"SEOUL_CROWD_TIMEOUT", c.Seoul.CrowdTimeout},
		{"seoul.service_ttl", c.Seoul.ServiceTTL},
		{"SEOUL_PLACES_TTL", c.Seoul.PlacesTTL},
		{"SEOUL_CROWD_TTL", c.Seoul.CrowdTTL},
		{"PHOTO_TIMEOUT", c.Photo.Timeout},
		{"PHOTO_TTL", c.Photo.TTL},
		{"LLM_TIMEOUT", c.LLM.Timeout},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", d.name, d.value)
		}
	}

	rates := []struct {
		name  string
		value float64
	}{
		{"SEOUL_RPS", c.Seoul.RequestsPerSecond},
		{"photo.requests_per_second", c.Photo.RequestsPerSecond},
		{"llm.requests_per_second", c.LLM.RequestsPerSecond},
	}
	for _, r := range rates {
		if r.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %v", r.name, r.value)
		}
	}
	return nil
}

// validateRecommend validates engine settings. The engine's own Validate
// runs again when the engine is built.
func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.ResultCount < 1 {
		return fmt.Errorf("RECOMMEND_RESULT_COUNT must be at least 1, got %d", r.ResultCount)
	}
	if r.BaseLimit < r.ResultCount {
		return fmt.Errorf("RECOMMEND_BASE_LIMIT (%d) must be at least the result count (%d)", r.BaseLimit, r.ResultCount)
	}
	if r.MaxLimit < r.BaseLimit {
		return fmt.Errorf("RECOMMEND_MAX_LIMIT (%d) must be at least the base limit (%d)", r.MaxLimit, r.BaseLimit)
	}
	if r.MaxCandidates < 1 {
		return fmt.Errorf("RECOMMEND_MAX_CANDIDATES must be positive, got %d", r.MaxCandidates)
	}
	if r.MaxCompanions < 0 {
		return fmt.Errorf("recommend.max_companions must be non-negative, got %d", r.MaxCompanions)
	}
	if r.FeedTTL <= 0 {
		return fmt.Errorf("RECOMMEND_FEED_TTL must be positive, got %v", r.FeedTTL)
	}
	if r.RefreshInterval < time.Minute {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must be at least 1m, got %v", r.RefreshInterval)
	}
	return nil
}

// validateRetry validates the shared retry policy
func (c *Config) validateRetry() error {
	r := c.Retry
	if r.MaxAttempts < 1 || r.MaxAttempts > 10 {
		return fmt.Errorf("RETRY_MAX_ATTEMPTS must be between 1 and 10, got %d", r.MaxAttempts)
	}
	if r.BaseDelay <= 0 {
		return fmt.Errorf("RETRY_BASE_DELAY must be positive, got %v", r.BaseDelay)
	}
	if r.MaxDelay < r.BaseDelay {
		return fmt.Errorf("RETRY_MAX_DELAY (%v) must be at least RETRY_BASE_DELAY (%v)", r.MaxDelay, r.BaseDelay)
	}
	if r.Jitter < 0 || r.Jitter >= 1 {
		return fmt.Errorf("retry.jitter must be in [0, 1), got %v", r.Jitter)
	}
	return nil
}

// validStoreBackends defines the allowed dislike store backends
var validStoreBackends = map[string]bool{
	StoreMemory: true,
	StoreBadger: true,
}

// validateStore validates the dislike store selection
func (c *Config) validateStore() error {
	if !validStoreBackends[c.Store.Backend] {
		return fmt.Errorf("DISLIKE_STORE must be one of: memory, badger")
	}
	if c.Store.Backend == StoreBadger && strings.TrimSpace(c.Store.Path) == "" {
		return fmt.Errorf("DISLIKE_STORE_PATH is required when DISLIKE_STORE=badger")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if c.Logging.Level == "" {
		return nil
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_KEY",
	"YOUR_API_KEY",
	"PLACEHOLDER",
	"TODO",
	"FIXME",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns.
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}

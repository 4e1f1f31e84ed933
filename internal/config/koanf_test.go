// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// isolate points CONFIG_PATH at a missing file so that no config file is
// picked up from the working directory.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 8080 || cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server addr = %s, want 0.0.0.0:8080", cfg.Server.Addr())
	}
	if cfg.Server.ReadTimeout != 15*time.Second || cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("Server timeouts = %v/%v, want 15s/30s", cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json", cfg.Logging)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Security.RateLimitReqs != 120 || cfg.Security.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d/%v, want 120/1m", cfg.Security.RateLimitReqs, cfg.Security.RateLimitWindow)
	}

	if cfg.Seoul.Enabled() || cfg.Photo.Enabled() || cfg.LLM.Enabled() {
		t.Error("sources should be disabled without keys")
	}
	if cfg.Seoul.CatalogID != "OA-21050" {
		t.Errorf("Seoul.CatalogID = %q, want OA-21050", cfg.Seoul.CatalogID)
	}
	if cfg.Seoul.PlacesTTL != 6*time.Hour || cfg.Seoul.CrowdTTL != 5*time.Minute {
		t.Errorf("Seoul TTLs = %v/%v, want 6h/5m", cfg.Seoul.PlacesTTL, cfg.Seoul.CrowdTTL)
	}
	if cfg.LLM.Model != "gpt-4o-mini" || cfg.LLM.Timeout != 20*time.Second {
		t.Errorf("LLM = %+v", cfg.LLM)
	}

	r := cfg.Recommend
	if r.ResultCount != 4 || r.BaseLimit != 200 || r.MaxLimit != 500 || r.MaxCandidates != 600 {
		t.Errorf("Recommend sizes = %+v", r)
	}
	if r.Weights.CrowdMatch != 2.0 || r.Weights.KeywordCap != 6.0 || r.Weights.Vibe != 0.8 {
		t.Errorf("Recommend.Weights = %+v", r.Weights)
	}
	if !reflect.DeepEqual(r.Denylist, []string{"안녕인사동"}) {
		t.Errorf("Denylist = %v", r.Denylist)
	}
	if r.RefreshInterval != 6*time.Hour {
		t.Errorf("RefreshInterval = %v, want 6h", r.RefreshInterval)
	}

	if cfg.Retry.MaxAttempts != 3 || cfg.Retry.BaseDelay != 800*time.Millisecond || cfg.Retry.Jitter != 0.2 {
		t.Errorf("Retry = %+v", cfg.Retry)
	}
	if cfg.Store.Backend != StoreMemory {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"SEOUL_API_KEY", "seoul.api_key"},
		{"OA21050_SERVICE_NAME", "seoul.service_name"},
		{"SEOUL_RPS", "seoul.requests_per_second"},
		{"PHOTO_KOREA_API_KEY", "photo.api_key"},
		{"OPENAI_API_KEY", "llm.api_key"},
		{"OPENAI_MODEL", "llm.model"},
		{"HTTP_PORT", "server.port"},
		{"http_port", "server.port"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"RECOMMEND_DENYLIST", "recommend.denylist"},
		{"CATALOG_REFRESH_INTERVAL", "recommend.refresh_interval"},
		{"DISLIKE_STORE", "store.backend"},
		{"LOG_LEVEL", "logging.level"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery through CONFIG_PATH
func TestFindConfigFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")

	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}

	isolate(t)
	if got := findConfigFile(); got != "" {
		for _, p := range DefaultConfigPaths {
			if got == p {
				t.Skipf("a default config file exists at %s", p)
			}
		}
		t.Errorf("findConfigFile() = %q, want empty", got)
	}
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	isolate(t)
	t.Setenv("SEOUL_API_KEY", "abc123")
	t.Setenv("OA21050_SERVICE_NAME", "TbVwAttractions")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SEOUL_RPS", "2.5")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "30m")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test")
	t.Setenv("RECOMMEND_DENYLIST", "폐업,임시휴업")
	t.Setenv("DISABLE_RATE_LIMIT", "true")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if !cfg.Seoul.Enabled() || cfg.Seoul.APIKey != "abc123" {
		t.Errorf("Seoul.APIKey = %q", cfg.Seoul.APIKey)
	}
	if cfg.Seoul.ServiceName != "TbVwAttractions" {
		t.Errorf("Seoul.ServiceName = %q", cfg.Seoul.ServiceName)
	}
	if !cfg.LLM.Enabled() {
		t.Error("LLM should be enabled with a key")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Seoul.RequestsPerSecond != 2.5 {
		t.Errorf("Seoul.RequestsPerSecond = %v, want 2.5", cfg.Seoul.RequestsPerSecond)
	}
	if cfg.Recommend.RefreshInterval != 30*time.Minute {
		t.Errorf("RefreshInterval = %v, want 30m", cfg.Recommend.RefreshInterval)
	}
	if want := []string{"https://a.test", "https://b.test"}; !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if want := []string{"폐업", "임시휴업"}; !reflect.DeepEqual(cfg.Recommend.Denylist, want) {
		t.Errorf("Denylist = %v, want %v", cfg.Recommend.Denylist, want)
	}
	if !cfg.Security.RateLimitDisabled {
		t.Error("RateLimitDisabled should be true")
	}

	// Untouched settings keep their defaults.
	if cfg.Recommend.ResultCount != 4 || cfg.Photo.TTL != 24*time.Hour {
		t.Errorf("defaults lost: result_count=%d photo.ttl=%v", cfg.Recommend.ResultCount, cfg.Photo.TTL)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 7000
  request_timeout: 5s
seoul:
  api_key: filekey
  crowd_ttl: 2m
recommend:
  result_count: 3
  denylist:
    - 폐업
  weights:
    vibe: 1.2
store:
  backend: badger
  path: /tmp/dongnae-dislikes
`)
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 7000 || cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Seoul.APIKey != "filekey" || cfg.Seoul.CrowdTTL != 2*time.Minute {
		t.Errorf("Seoul = %+v", cfg.Seoul)
	}
	if cfg.Recommend.ResultCount != 3 || cfg.Recommend.Weights.Vibe != 1.2 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Recommend.Weights.CrowdMatch != 2.0 {
		t.Errorf("unset weight lost its default: %v", cfg.Recommend.Weights.CrowdMatch)
	}
	if !reflect.DeepEqual(cfg.Recommend.Denylist, []string{"폐업"}) {
		t.Errorf("Denylist = %v", cfg.Recommend.Denylist)
	}
	if cfg.Store.Backend != StoreBadger || cfg.Store.Path != "/tmp/dongnae-dislikes" {
		t.Errorf("Store = %+v", cfg.Store)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 7000\nlogging:\n  level: debug\n")
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9999")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999 (env override)", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug (from file)", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad port", map[string]string{"HTTP_PORT": "70000"}, "HTTP_PORT"},
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad store", map[string]string{"DISLIKE_STORE": "redis"}, "DISLIKE_STORE"},
		{"placeholder key", map[string]string{"SEOUL_API_KEY": "your_api_key"}, "SEOUL_API_KEY"},
		{"bad base url", map[string]string{"OPENAI_BASE_URL": "ftp://x"}, "OPENAI_BASE_URL"},
		{"bad service name", map[string]string{"OA21050_SERVICE_NAME": "bad name!"}, "OA21050_SERVICE_NAME"},
		{"short refresh", map[string]string{"CATALOG_REFRESH_INTERVAL": "5s"}, "CATALOG_REFRESH_INTERVAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatal("LoadWithKoanf() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("DONGNAE_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DONGNAE_TEST_DOTENV", "")
	os.Unsetenv("DONGNAE_TEST_DOTENV")

	if err := LoadDotEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("DONGNAE_TEST_DOTENV"); got != "from-file" {
		t.Errorf("DONGNAE_TEST_DOTENV = %q, want from-file", got)
	}
}

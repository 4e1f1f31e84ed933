// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

/*
Package config provides centralized configuration management for Dongnae.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. A .env file may be loaded into the
environment first with LoadDotEnv.

# Configuration Sources

  - Defaults (defaultConfig)
  - YAML file: CONFIG_PATH, else config.yaml, config.yml, /etc/dongnae/config.yaml
  - Environment variables through an explicit mapping table

Unmapped environment variables are ignored.

# Environment Variables

External sources:
  - SEOUL_API_KEY: Seoul open data key (catalog and crowd levels)
  - OA21050_SERVICE_NAME: skip the service name lookup
  - PHOTO_KOREA_API_KEY: tourism photo gallery key
  - OPENAI_API_KEY, OPENAI_MODEL, OPENAI_BASE_URL: chat completions advisor

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT, REQUEST_TIMEOUT
  - CORS_ORIGINS: comma-separated (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Engine:
  - RECOMMEND_RESULT_COUNT, RECOMMEND_DENYLIST, RECOMMEND_FEED_TTL
  - CATALOG_REFRESH_INTERVAL (default: 6h)
  - RETRY_MAX_ATTEMPTS, RETRY_BASE_DELAY, RETRY_MAX_DELAY
  - DISLIKE_STORE (memory or badger), DISLIKE_STORE_PATH

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load returns an error for out-of-range values, malformed URLs and placeholder
API keys. Missing API keys are valid: the matching source is disabled and the
service degrades to fallbacks.

# Usage

	if err := config.LoadDotEnv(); err != nil {
	    log.Fatal(err)
	}
	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	addr := cfg.Server.Addr()
*/
package config

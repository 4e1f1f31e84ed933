// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

/*
Package metrics defines the Prometheus collectors exported at /metrics.

Collectors are registered with promauto on the default registry at package
init. Callers use the Record* helpers rather than touching the vectors
directly so label sets stay consistent.

# Available Metrics

API:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

External sources (seoul_catalog, seoul_citydata, photo, llm):
  - external_requests_total{source, outcome}
  - external_request_duration_seconds{source}
  - external_retries_total{source}
  - circuit_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}

Recommendation pipeline:
  - recommend_requests_total{action}
  - recommend_relaxation_stage_total{stage}
  - recommend_fallback_fills_total
  - recommend_master_pool_size
  - recommend_feed_states
  - recommend_dislikes_total{kind}
  - catalog_places
  - catalog_refresh_total{result}

Caches:
  - cache_requests_total{cache, result}
*/
package metrics

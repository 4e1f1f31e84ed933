// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// External Source Metrics
	ExternalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_requests_total",
			Help: "Total number of calls to external data sources",
		},
		[]string{"source", "outcome"}, // outcome: "success", "failure", "skipped"
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_request_duration_seconds",
			Help:    "Duration of external source calls including retries",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 40},
		},
		[]string{"source"},
	)

	ExternalRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_retries_total",
			Help: "Total number of retried external calls",
		},
		[]string{"source"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation passes by action",
		},
		[]string{"action"}, // "recommend", "rerank_all", "dislike", "areas"
	)

	RelaxationStage = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_relaxation_stage_total",
			Help: "Number of recommendation passes finishing at each relaxation stage",
		},
		[]string{"stage"},
	)

	FallbackFills = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_fallback_fills_total",
			Help: "Number of passes that filled results from the master pool allowing duplicates",
		},
	)

	MasterPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_master_pool_size",
			Help:    "Size of master pools built per signature",
			Buckets: []float64{0, 4, 10, 50, 100, 200, 500, 1000, 2000},
		},
	)

	FeedStates = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recommend_feed_states",
			Help: "Number of live (session, signature) feed states",
		},
	)

	Dislikes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_dislikes_total",
			Help: "Number of dislike entries recorded",
		},
		[]string{"kind"}, // "area", "place"
	)

	CatalogPlaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_places",
			Help: "Number of places in the last loaded catalog",
		},
	)

	CatalogRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_refresh_total",
			Help: "Number of catalog refresh attempts",
		},
		[]string{"result"},
	)

	// Cache Metrics
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Cache lookups by cache name and result",
		},
		[]string{"cache", "result"}, // result: "hit", "miss"
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordExternalCall records one logical call to an external source.
func RecordExternalCall(source string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	ExternalRequests.WithLabelValues(source, outcome).Inc()
	ExternalRequestDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordExternalSkipped records a call not made because the source is not configured.
func RecordExternalSkipped(source string) {
	ExternalRequests.WithLabelValues(source, "skipped").Inc()
}

// RecordRetry records a retry of an external call.
func RecordRetry(source string) {
	ExternalRetries.WithLabelValues(source).Inc()
}

// RecordRelaxation records the relaxation stage a pass finished at (1 to 4).
func RecordRelaxation(stage int) {
	RelaxationStage.WithLabelValues(strconv.Itoa(stage)).Inc()
	if stage >= 4 {
		FallbackFills.Inc()
	}
}

// RecordCacheLookup records a hit or miss for the named cache.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheRequests.WithLabelValues(cache, result).Inc()
}

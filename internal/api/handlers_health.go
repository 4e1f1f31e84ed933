// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/dongnae/internal/place"
)

// SourceHealth is one external source in the readiness report.
type SourceHealth struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Breaker string `json:"breaker"`
}

// ReadyStatus is the readiness report.
type ReadyStatus struct {
	Status        string         `json:"status"`
	Version       string         `json:"version"`
	CatalogLoaded bool           `json:"catalog_loaded"`
	Catalog       *place.Stats   `json:"catalog,omitempty"`
	Sources       []SourceHealth `json:"sources"`
	Uptime        float64        `json:"uptime"`
}

// HealthLive reports that the process is up.
//
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse
// @Router /health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady reports whether the service can answer recommendation
// requests. It is not ready until the place catalog has loaded once, unless
// the place source is disabled. Open breakers are reported but do not fail
// the probe, since every source degrades on its own.
//
// @Summary Readiness probe
// @Tags Health
// @Produce json
// @Success 200 {object} APIResponse{data=ReadyStatus}
// @Failure 503 {object} APIResponse{data=ReadyStatus} "Catalog not loaded"
// @Router /health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	stats, loaded := h.engine.CatalogStats()

	status := ReadyStatus{
		Status:        "ready",
		Version:       h.config.Version,
		CatalogLoaded: loaded,
		Sources:       make([]SourceHealth, 0, len(h.sources)),
		Uptime:        time.Since(h.startTime).Seconds(),
	}
	if loaded {
		status.Catalog = &stats
	}
	for _, s := range h.sources {
		status.Sources = append(status.Sources, SourceHealth{
			Name:    s.Name(),
			Enabled: s.Enabled(),
			Breaker: s.BreakerState(),
		})
	}

	if h.config.CatalogRequired && !loaded {
		status.Status = "not_ready"
		respondJSON(w, r, http.StatusServiceUnavailable, &APIResponse{
			Status: "error",
			Data:   status,
			Error:  &APIError{Code: ErrCodeNotReady, Message: "Place catalog has not loaded yet"},
		})
		return
	}
	respondSuccess(w, r, status, time.Now())
}

// BreakerReporter exposes a circuit breaker state. Satisfied by
// *resilience.Guard.
type BreakerReporter interface {
	BreakerState() string
}

type sourceStatus struct {
	name    string
	enabled bool
	breaker BreakerReporter
}

func (s sourceStatus) Name() string  { return s.name }
func (s sourceStatus) Enabled() bool { return s.enabled }

func (s sourceStatus) BreakerState() string {
	if s.breaker == nil {
		return "n/a"
	}
	return s.breaker.BreakerState()
}

// NewSourceStatus describes a source for the readiness probe.
func NewSourceStatus(name string, enabled bool, breaker BreakerReporter) SourceStatus {
	return sourceStatus{name: name, enabled: enabled, breaker: breaker}
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

/*
Package middleware provides HTTP middleware for the API router.

  - RequestID: X-Request-ID propagation into the response, chi and the logging context
  - AccessLog: one structured line per request, warn for slow requests and 5xx
  - PrometheusMetrics: request count, duration and in-flight gauge labeled by chi route pattern

All middleware use the standard func(http.Handler) http.Handler shape:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

/*
Package api provides the HTTP REST API for Dongnae.

Endpoints:

	POST /api/v1/recommendations          first or next batch for a query
	POST /api/v1/recommendations/rerank   replace the whole last batch
	POST /api/v1/recommendations/dislike  exclude areas and serve a new batch
	POST /api/v1/areas/rank               area-level ranking
	GET  /api/v1/areas                    curated area catalog
	GET  /api/v1/areas/suggest?q=         prefix completion
	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	GET  /metrics
	GET  /swagger/*

Every JSON response uses the same envelope:

	{
	  "status": "success" | "error",
	  "data": ...,
	  "metadata": {"timestamp": "...", "request_id": "...", "query_time_ms": 12},
	  "error": {"code": "VALIDATION_ERROR", "message": "...", "details": {...}}
	}

A recommendation session is identified by the session_id returned with the
first batch. Follow-up actions (rerank, dislike) must also send the signature
of the query they refer to; a signature that is no longer the session's
current query is rejected with 409 STALE_SIGNATURE.

Middleware order: request id, real IP, access log, panic recovery,
Prometheus metrics, CORS, then per-IP rate limiting, security headers and
gzip on the API routes.
*/
package api

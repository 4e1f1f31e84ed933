// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

// Package resilience wraps calls to external APIs with retries, circuit
// breaking and client-side rate limiting.
//
// A Guard combines the three for one named source:
//
//	guard := resilience.NewGuard("seoul_catalog", policy, 5, logger)
//	err := guard.Do(ctx, func(ctx context.Context) error {
//	    return fetch(ctx)
//	})
//
// Each attempt waits on the rate limiter, then runs inside the circuit
// breaker. Failed attempts are retried with exponential backoff plus jitter
// (Policy) up to MaxAttempts. Errors wrapped with Permanent, 4xx responses
// and an open breaker are not retried.
//
// Policy takes a Clock so that tests can run the backoff schedule without
// sleeping; see ManualClock.
package resilience

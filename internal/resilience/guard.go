// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package resilience

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/dongnae/internal/logging"
	"github.com/tomtom215/dongnae/internal/metrics"
)

// Guard protects calls to one external source.
type Guard struct {
	name    string
	policy  Policy
	limiter *rate.Limiter
	breaker *Breaker
	logger  zerolog.Logger
}

// NewGuard creates a Guard. rps <= 0 disables rate limiting.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewGuard(name string, policy Policy, rps float64, logger zerolog.Logger) *Guard {
	logger = logger.With().Str("source", name).Logger()
	g := &Guard{
		name:    name,
		policy:  policy,
		breaker: NewBreaker(name, logger),
		logger:  logger,
	}
	if rps > 0 {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}

	userHook := policy.OnRetry
	g.policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		metrics.RecordRetry(name)
		g.logger.Warn().
			Str("error", logging.SanitizeError(err)).
			Int("attempt", attempt).
			Int("max_attempts", policy.MaxAttempts).
			Dur("wait", wait).
			Msg("External call failed, retrying")
		if userHook != nil {
			userHook(attempt, err, wait)
		}
	}
	return g
}

// Name returns the source name.
func (g *Guard) Name() string { return g.name }

// BreakerState returns the breaker state for health reporting.
func (g *Guard) BreakerState() string { return g.breaker.State() }

// Do runs op with rate limiting, circuit breaking and retries.
func (g *Guard) Do(ctx context.Context, op func(context.Context) error) error {
	start := g.policy.clock().Now()
	err := g.policy.Do(ctx, func(ctx context.Context) error {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				return Permanent(err)
			}
		}
		return g.breaker.Execute(func() error { return op(ctx) })
	})
	metrics.RecordExternalCall(g.name, g.policy.clock().Now().Sub(start), err)
	return err
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package resilience

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrRetriesExhausted wraps the last error once every attempt has failed.
var ErrRetriesExhausted = errors.New("retries exhausted")

// Policy describes how an external call is retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	// Default: 3
	MaxAttempts int `json:"max_attempts"`

	// BaseDelay is the wait before the second attempt. Later waits double.
	// Default: 800ms
	BaseDelay time.Duration `json:"base_delay"`

	// MaxDelay caps a single wait.
	// Default: 5s
	MaxDelay time.Duration `json:"max_delay"`

	// Jitter is the randomization factor applied to each wait (0.2 = ±20%).
	// Default: 0.2
	Jitter float64 `json:"jitter"`

	// Clock drives the waits. Nil means the wall clock.
	Clock Clock `json:"-"`

	// OnRetry, if set, is called before each wait.
	OnRetry func(attempt int, err error, wait time.Duration) `json:"-"`
}

// DefaultPolicy returns 3 attempts with 0.8s, 1.6s waits and 20% jitter.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   800 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Jitter:      0.2,
	}
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

// CheckStatus returns nil for 2xx codes. 429 and 5xx come back as retryable
// StatusErrors; any other code is permanent.
func CheckStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests || code >= 500:
		return &StatusError{Code: code}
	default:
		return Permanent(&StatusError{Code: code})
	}
}

func (p Policy) clock() Clock {
	if p.Clock == nil {
		return SystemClock{}
	}
	return p.Clock
}

func (p Policy) backOff(ctx context.Context) backoff.BackOff {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = p.Jitter
	b.MaxInterval = p.MaxDelay
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	b.MaxElapsedTime = 0
	b.Clock = p.clock()
	b.Reset()

	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx)
}

// Do runs op until it succeeds, returns a permanent error, the context ends,
// or MaxAttempts is reached. Exhaustion wraps ErrRetriesExhausted.
func (p Policy) Do(ctx context.Context, op func(context.Context) error) error {
	attempt := 0
	var last error

	err := backoff.RetryNotifyWithTimer(func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		attempt++
		last = op(ctx)
		return last
	}, p.backOff(ctx), func(err error, wait time.Duration) {
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}
	}, p.clock().NewTimer())

	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case IsPermanent(last):
		return err
	default:
		return fmt.Errorf("%w after %d attempts: %w", ErrRetriesExhausted, attempt, err)
	}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *backoff.PermanentError
	return errors.As(err, &pe)
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package resilience

import (
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Clock supplies the current time and backoff timers.
type Clock interface {
	Now() time.Time
	NewTimer() backoff.Timer
}

// SystemClock uses the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// NewTimer implements Clock.
func (SystemClock) NewTimer() backoff.Timer { return &systemTimer{} }

type systemTimer struct {
	timer *time.Timer
}

func (t *systemTimer) Start(d time.Duration) {
	if t.timer == nil {
		t.timer = time.NewTimer(d)
		return
	}
	t.timer.Reset(d)
}

func (t *systemTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *systemTimer) C() <-chan time.Time { return t.timer.C }

// ManualClock is a Clock whose timers fire immediately and advance its time
// by the requested duration. Every wait is recorded.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Time
	waits []time.Duration
}

// NewManualClock returns a ManualClock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Waits returns every backoff wait requested so far.
func (c *ManualClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.waits...)
}

// NewTimer implements Clock.
func (c *ManualClock) NewTimer() backoff.Timer { return &manualTimer{clock: c} }

type manualTimer struct {
	clock *ManualClock
	ch    chan time.Time
}

func (t *manualTimer) Start(d time.Duration) {
	t.clock.mu.Lock()
	t.clock.now = t.clock.now.Add(d)
	t.clock.waits = append(t.clock.waits, d)
	now := t.clock.now
	t.clock.mu.Unlock()

	t.ch = make(chan time.Time, 1)
	t.ch <- now
}

func (t *manualTimer) Stop() {}

func (t *manualTimer) C() <-chan time.Time { return t.ch }

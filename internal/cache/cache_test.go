// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/dongnae/internal/metrics"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(name string, ttl time.Duration) (*Cache[string], *fakeClock) {
	clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	return New[string](name, ttl, WithClock[string](clk.Now)), clk
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache("test_setget", time.Minute)

	c.Set("a", "1")
	got, ok := c.Get("a")
	if !ok || got != "1" {
		t.Fatalf("Get(a) = %q, %v; want 1, true", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	stats := c.GetStats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.TotalKeys != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if c.HitRate() != 50 {
		t.Errorf("HitRate() = %v, want 50", c.HitRate())
	}
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()
	c, clk := newTestCache("test_expiry", time.Minute)

	c.Set("a", "1")
	c.SetWithTTL("b", "2", time.Hour)
	clk.Advance(2 * time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if v, ok := c.Get("b"); !ok || v != "2" {
		t.Errorf("Get(b) = %q, %v", v, ok)
	}
	if c.GetStats().Evictions != 1 {
		t.Errorf("evictions = %d, want 1", c.GetStats().Evictions)
	}
}

func TestCache_Cleanup(t *testing.T) {
	t.Parallel()
	c, clk := newTestCache("test_cleanup", time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.SetWithTTL("c", "3", time.Hour)
	clk.Advance(time.Minute + time.Second)

	if n := c.Cleanup(); n != 2 {
		t.Errorf("Cleanup() = %d, want 2", n)
	}
	if c.GetStats().TotalKeys != 1 {
		t.Errorf("TotalKeys = %d, want 1", c.GetStats().TotalKeys)
	}
}

func TestCache_DeleteClear(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache("test_delete", time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("a should be gone")
	}
	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("b should be gone")
	}
	if c.GetStats().Evictions != 2 {
		t.Errorf("evictions = %d, want 2", c.GetStats().Evictions)
	}
}

func TestCache_GetOrLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		keep      bool
		err       error
		wantCalls int
	}{
		{"kept value is reused", "여유", true, nil, 1},
		{"unkept value reloads", "", false, nil, 2},
		{"errors are not cached", "", false, errors.New("upstream down"), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestCache("test_getorload", time.Minute)

			calls := 0
			load := func(context.Context) (string, bool, error) {
				calls++
				return tt.value, tt.keep, tt.err
			}
			for i := 0; i < 2; i++ {
				got, err := c.GetOrLoad(context.Background(), "k", load)
				if !errors.Is(err, tt.err) {
					t.Fatalf("err = %v, want %v", err, tt.err)
				}
				if err == nil && got != tt.value {
					t.Errorf("value = %q, want %q", got, tt.value)
				}
			}
			if calls != tt.wantCalls {
				t.Errorf("loader calls = %d, want %d", calls, tt.wantCalls)
			}
		})
	}
}

func TestCache_RecordsMetrics(t *testing.T) {
	t.Parallel()
	c, _ := newTestCache("test_metrics_cache", time.Minute)

	c.Set("a", "1")
	c.Get("a")
	c.Get("b")

	if got := testutil.ToFloat64(metrics.CacheRequests.WithLabelValues("test_metrics_cache", "hit")); got != 1 {
		t.Errorf("hit metric = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.CacheRequests.WithLabelValues("test_metrics_cache", "miss")); got != 1 {
		t.Errorf("miss metric = %v, want 1", got)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	c := New[int]("test_concurrent", time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := GenerateKey("k", j%10)
				c.Set(key, i)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	if c.GetStats().TotalKeys != 10 {
		t.Errorf("TotalKeys = %d, want 10", c.GetStats().TotalKeys)
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()
	a := GenerateKey("crowd", map[string]string{"area": "성수카페거리"})
	b := GenerateKey("crowd", map[string]string{"area": "성수카페거리"})
	c := GenerateKey("crowd", map[string]string{"area": "홍대 관광특구"})
	if a != b {
		t.Error("identical params should produce identical keys")
	}
	if a == c {
		t.Error("different params should produce different keys")
	}
}

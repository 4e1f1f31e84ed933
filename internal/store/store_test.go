// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func newTestBadger(t *testing.T, ttl time.Duration) *Badger {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Disable logging for tests
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open BadgerDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewBadger(db, ttl)
}

func backends(t *testing.T) map[string]DislikeStore {
	t.Helper()
	return map[string]DislikeStore{
		"memory": NewMemory(),
		"badger": newTestBadger(t, time.Hour),
	}
}

func TestDislikeStore_Lifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := s.Get(ctx, "sess|abc"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
			}

			if err := s.Add(ctx, "sess|abc", Set{Places: []string{"p1", "p2"}}); err != nil {
				t.Fatalf("Add() error = %v", err)
			}
			if err := s.Add(ctx, "sess|abc", Set{Places: []string{"p2", "p3"}, Areas: []string{"성수"}}); err != nil {
				t.Fatalf("Add() error = %v", err)
			}

			got, err := s.Get(ctx, "sess|abc")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			want := Set{Places: []string{"p1", "p2", "p3"}, Areas: []string{"성수"}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Get() = %+v, want %+v", got, want)
			}

			if _, err := s.Get(ctx, "sess|other"); !errors.Is(err, ErrNotFound) {
				t.Errorf("keys are not isolated: %v", err)
			}

			if err := s.Clear(ctx, "sess|abc"); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}
			if _, err := s.Get(ctx, "sess|abc"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get() after Clear error = %v, want ErrNotFound", err)
			}
			if err := s.Clear(ctx, "never-set"); err != nil {
				t.Errorf("Clear(missing) error = %v", err)
			}
		})
	}
}

func TestSet_Merge(t *testing.T) {
	t.Parallel()

	got := Set{Places: []string{"a"}}.Merge(Set{Places: []string{"", "a", "b"}, Areas: []string{"연남", "연남"}})
	want := Set{Places: []string{"a", "b"}, Areas: []string{"연남"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge() = %+v, want %+v", got, want)
	}
	if got.Empty() || !(Set{}).Empty() {
		t.Error("Empty() mismatch")
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := NewMemory()

	_ = m.Add(ctx, "k", Set{Places: []string{"p1"}})
	got, _ := m.Get(ctx, "k")
	got.Places[0] = "mutated"

	again, _ := m.Get(ctx, "k")
	if again.Places[0] != "p1" {
		t.Errorf("stored set was mutated through Get: %v", again.Places)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestBadger_Count(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	b := newTestBadger(t, 0)

	for _, k := range []string{"a", "b", "c"} {
		if err := b.Add(ctx, k, Set{Areas: []string{"한남"}}); err != nil {
			t.Fatalf("Add(%s) error = %v", k, err)
		}
	}
	n, err := b.Count()
	if err != nil || n != 3 {
		t.Errorf("Count() = %d, %v; want 3", n, err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("Close() on borrowed db error = %v", err)
	}
}

func TestBadger_CollectGarbage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("in memory", func(t *testing.T) {
		t.Parallel()
		if err := newTestBadger(t, 0).CollectGarbage(ctx); err != nil {
			t.Errorf("CollectGarbage() error = %v", err)
		}
	})

	t.Run("on disk", func(t *testing.T) {
		t.Parallel()
		b, err := OpenBadger(t.TempDir(), time.Hour)
		if err != nil {
			t.Fatalf("OpenBadger() error = %v", err)
		}
		defer b.Close()

		if err := b.Add(ctx, "sig", Set{Places: []string{"p1"}}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if err := b.CollectGarbage(ctx); err != nil {
			t.Errorf("CollectGarbage() error = %v", err)
		}
	})
}

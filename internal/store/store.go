// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

// Package store persists per-session dislikes.
//
// Keys are opaque strings built by the caller (session id plus query
// signature digest). Two backends are provided: Memory for development and
// tests, and Badger for restarts that should keep exclusions.
package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when a key has no dislikes recorded.
var ErrNotFound = errors.New("dislikes not found")

// Set is the disliked place ids and area names for one key.
type Set struct {
	Places []string `json:"places"`
	Areas  []string `json:"areas"`
}

// Empty reports whether the set holds nothing.
func (s Set) Empty() bool { return len(s.Places) == 0 && len(s.Areas) == 0 }

// Merge returns s with every value of add appended once, keeping first-seen
// order.
func (s Set) Merge(add Set) Set {
	return Set{
		Places: union(s.Places, add.Places),
		Areas:  union(s.Areas, add.Areas),
	}
}

func union(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, v := range list {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// DislikeStore is implemented by every backend.
type DislikeStore interface {
	// Get returns ErrNotFound when nothing was recorded for key.
	Get(ctx context.Context, key string) (Set, error)

	// Add merges add into the set stored under key.
	Add(ctx context.Context, key string, add Set) error

	// Clear forgets key. Clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error

	Close() error
}

// Memory is an in-process DislikeStore.
type Memory struct {
	mu   sync.RWMutex
	sets map[string]Set
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sets: make(map[string]Set)}
}

// Get implements DislikeStore.
func (m *Memory) Get(_ context.Context, key string) (Set, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sets[key]
	if !ok {
		return Set{}, ErrNotFound
	}
	return Set{
		Places: append([]string(nil), s.Places...),
		Areas:  append([]string(nil), s.Areas...),
	}, nil
}

// Add implements DislikeStore.
func (m *Memory) Add(_ context.Context, key string, add Set) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[key] = m.sets[key].Merge(add)
	return nil
}

// Clear implements DislikeStore.
func (m *Memory) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sets, key)
	return nil
}

// Len returns the number of keys held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sets)
}

// Close implements DislikeStore.
func (m *Memory) Close() error { return nil }

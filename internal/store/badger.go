// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// dislikeKeyPrefix namespaces dislike sets in a shared database.
const dislikeKeyPrefix = "dislike:"

// Badger is a DislikeStore backed by BadgerDB. Entries expire after the TTL
// given at construction, refreshed on every Add.
type Badger struct {
	db  *badger.DB
	ttl time.Duration
	own bool
}

// OpenBadger opens (or creates) a database at path.
func OpenBadger(path string, ttl time.Duration) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB internal logs
	opts.ValueLogFileSize = 16 << 20

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for dislikes: %w", err)
	}
	return &Badger{db: db, ttl: ttl, own: true}, nil
}

// NewBadger wraps an existing database; Close leaves it open.
func NewBadger(db *badger.DB, ttl time.Duration) *Badger {
	return &Badger{db: db, ttl: ttl}
}

// Get implements DislikeStore.
func (b *Badger) Get(_ context.Context, key string) (Set, error) {
	var set Set
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(dislikeKeyPrefix + key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get dislikes: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &set)
		})
	})
	if err != nil {
		return Set{}, err
	}
	return set, nil
}

// Add implements DislikeStore. The read and write happen in one transaction.
func (b *Badger) Add(_ context.Context, key string, add Set) error {
	k := []byte(dislikeKeyPrefix + key)
	return b.db.Update(func(txn *badger.Txn) error {
		var cur Set
		item, err := txn.Get(k)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return fmt.Errorf("get dislikes: %w", err)
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &cur)
			}); err != nil {
				return fmt.Errorf("decode dislikes: %w", err)
			}
		}

		data, err := json.Marshal(cur.Merge(add))
		if err != nil {
			return fmt.Errorf("marshal dislikes: %w", err)
		}
		entry := badger.NewEntry(k, data)
		if b.ttl > 0 {
			entry = entry.WithTTL(b.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Clear implements DislikeStore.
func (b *Badger) Clear(_ context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(dislikeKeyPrefix + key))
	})
}

// Count returns the number of stored dislike sets.
func (b *Badger) Count() (int, error) {
	n := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(dislikeKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// gcDiscardRatio is the fraction of a value log file that must be stale
// before it is rewritten.
const gcDiscardRatio = 0.5

// CollectGarbage rewrites value log files until badger reports nothing left
// to reclaim. Expired dislike sets only free disk space after this runs.
func (b *Badger) CollectGarbage(_ context.Context) error {
	for {
		err := b.db.RunValueLogGC(gcDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run value log gc: %w", err)
		}
	}
}

// Close closes the database when OpenBadger created it.
func (b *Badger) Close() error {
	if !b.own {
		return nil
	}
	return b.db.Close()
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

/*
Package cache provides a generic thread-safe in-memory TTL cache.

It fronts the external sources so a burst of recommendation requests does
not multiply upstream traffic:

  - raw cultural-space records (6 hour TTL)
  - per-area crowd levels (5 minute TTL)
  - photo lookups (24 hour TTL)

# Usage

	crowd := cache.New[string]("crowd", 5*time.Minute)
	level, err := crowd.GetOrLoad(ctx, area, func(ctx context.Context) (string, bool, error) {
	    lvl, err := client.CrowdLevel(ctx, area)
	    return lvl, err == nil && lvl != "", err
	})

Expired entries are dropped lazily on Get. Cleanup removes all of them at
once; the server runs it from a periodic service.

# Thread Safety

Entries sit behind a sync.RWMutex; statistics use a separate mutex so
hit/miss counting never blocks readers.
*/
package cache

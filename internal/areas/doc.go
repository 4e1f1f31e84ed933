// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

// Package areas holds the curated neighborhood catalog and the geographic
// helpers built on it: travel time heuristics, great-circle distances, map
// links and prefix suggestions.
//
// The catalog is embedded from areas.yaml and indexed twice: by exact name for
// lookups and in a patricia trie (Korean name and romanized slug) for
// suggestions.
package areas

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

// Package recommend turns a free-text taste/purpose query into a short list of
// places in distinct neighborhoods.
//
// # Architecture
//
// The pipeline runs leaves first:
//
//   - Master pool: every normalized catalog place with an area is scored
//     against the query tokens and expansion keywords, given a small
//     query-seeded jitter and sorted once per query signature.
//   - Feed: a (session, signature) scoped cursor over the master pool that
//     buffers candidates, serves batches without repeating a place or an area
//     inside one batch, and relaxes its buffering limit when a batch comes up
//     short.
//   - Area scoring: a coarser ranking over districts using crowd levels, a
//     per-district tour text index and curated vibe tags.
//   - Signature: a canonical fingerprint of the normalized query, used to reuse
//     the pool and to key dislikes.
//
// # Relaxation Ladder
//
// With a target count R:
//
//  1. Refill, take R.
//  2. Raise the limit to min(max limit, pool size), refill, take the rest.
//  3. Raise the limit to the pool size, refill, take the rest.
//  4. Append master pool items in order, duplicates allowed, until R is
//     reached or the pool runs out. Results from this stage are flagged.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, recommend.Deps{
//	    Catalog:  seoulClient,
//	    Crowd:    seoulClient,
//	    Photos:   photoClient,
//	    Advisor:  llmClient,
//	    Dislikes: store.NewMemory(),
//	    Areas:    areas.Default(),
//	}, logger)
//
//	resp, err := engine.Recommend(ctx, sessionID, recommend.Query{
//	    MainTaste:   "카페",
//	    MainPurpose: "데이트",
//	    CrowdPref:   recommend.CrowdModerate,
//	})
//
// # Thread Safety
//
// Engine is safe for concurrent use. Each session is guarded by its own mutex
// because the refill/take sequence is not atomic; different sessions never
// contend.
package recommend

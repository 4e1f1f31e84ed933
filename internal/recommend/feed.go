// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

// Stages of the relaxation ladder.
const (
	StageBase     = 1
	StageMaxLimit = 2
	StageFullPool = 3
	StageFallback = 4
)

// Exclusions is a set of place ids and area names that must not be served.
type Exclusions map[string]struct{}

func (e Exclusions) has(c *Candidate) bool {
	if len(e) == 0 {
		return false
	}
	if _, ok := e[c.ID]; ok {
		return true
	}
	_, ok := e[c.Area]
	return ok
}

// FeedState paginates one master pool. It is not safe for concurrent use;
// callers serialize access per session.
type FeedState struct {
	signature string
	pool      []Candidate
	cursor    int
	limit     int
	baseLimit int
	maxLimit  int
	buffer    []Candidate
	seen      map[string]struct{}
}

// NewFeedState creates a feed over pool starting at baseLimit.
func NewFeedState(signature string, pool []Candidate, baseLimit, maxLimit int) *FeedState {
	f := &FeedState{
		signature: signature,
		baseLimit: baseLimit,
		maxLimit:  maxLimit,
	}
	f.Reset(pool)
	return f
}

// Reset discards the buffer, the seen set and the cursor and installs pool.
func (f *FeedState) Reset(pool []Candidate) {
	f.pool = pool
	f.cursor = 0
	f.limit = f.baseLimit
	f.buffer = nil
	f.seen = make(map[string]struct{})
}

// Signature returns the query signature the pool was built for.
func (f *FeedState) Signature() string { return f.signature }

// PoolSize returns the master pool length.
func (f *FeedState) PoolSize() int { return len(f.pool) }

// Buffered returns the number of candidates waiting in the buffer.
func (f *FeedState) Buffered() int { return len(f.buffer) }

// Cursor returns the next unconsumed pool index.
func (f *FeedState) Cursor() int { return f.cursor }

// Limit returns the current buffering ceiling.
func (f *FeedState) Limit() int { return f.limit }

// Seen reports whether a place id has been served.
func (f *FeedState) Seen(id string) bool {
	_, ok := f.seen[id]
	return ok
}

// Refill moves candidates from the pool into the buffer until the cursor or
// the buffer reaches min(limit, pool size). Calling it twice is the same as
// calling it once.
func (f *FeedState) Refill() {
	limit := min(f.limit, len(f.pool))
	for f.cursor < limit && len(f.buffer) < limit {
		f.buffer = append(f.buffer, f.pool[f.cursor])
		f.cursor++
	}
}

// Take pops up to n candidates from the front of the buffer. Candidates that
// were served before, are excluded, or share an area with one already taken
// in this call are dropped.
func (f *FeedState) Take(n int, exclude Exclusions) []Candidate {
	areas := make(map[string]struct{}, n)
	out := make([]Candidate, 0, n)
	for len(f.buffer) > 0 && len(out) < n {
		c := f.buffer[0]
		f.buffer = f.buffer[1:]

		if _, ok := f.seen[c.ID]; ok || exclude.has(&c) {
			continue
		}
		if c.Area != "" {
			if _, ok := areas[c.Area]; ok {
				continue
			}
			areas[c.Area] = struct{}{}
		}
		f.seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Batch is the outcome of one pass over the relaxation ladder.
type Batch struct {
	Items []Candidate

	// Stage is the last ladder stage used (StageBase..StageFallback).
	Stage int

	// Fallback is set when stage 4 added items. Items may then repeat places
	// served earlier.
	Fallback bool
}

// Recommend runs the relaxation ladder for a batch of r candidates. Area
// uniqueness applies within each Take, so a later stage may return an area
// an earlier stage already used.
func (f *FeedState) Recommend(r int, exclude Exclusions) Batch {
	f.Refill()
	b := Batch{Items: f.Take(r, exclude), Stage: StageBase}

	if len(b.Items) < r {
		b.Stage = StageMaxLimit
		f.limit = min(f.maxLimit, len(f.pool))
		f.Refill()
		b.Items = append(b.Items, f.Take(r-len(b.Items), exclude)...)
	}

	if len(b.Items) < r {
		b.Stage = StageFullPool
		f.limit = len(f.pool)
		f.Refill()
		b.Items = append(b.Items, f.Take(r-len(b.Items), exclude)...)
	}

	if len(b.Items) < r {
		b.Stage = StageFallback
		before := len(b.Items)
		for i := range f.pool {
			if len(b.Items) >= r {
				break
			}
			if exclude.has(&f.pool[i]) {
				continue
			}
			b.Items = append(b.Items, f.pool[i])
		}
		b.Fallback = len(b.Items) > before
	}
	return b
}

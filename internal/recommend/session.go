// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/dongnae/internal/metrics"
)

// Session is the per-user recommendation state. Fields are guarded by the
// session lock held between Acquire (or Lookup) and the returned release.
type Session struct {
	mu sync.Mutex

	ID        string
	Query     Query
	Signature string
	Feed      *FeedState

	// LastBatch is the most recent batch served, used by RerankAll and
	// Dislike.
	LastBatch []Candidate

	// Extra holds the expansion keywords the current pool was built with.
	Extra []string

	// lastUsed is guarded by the store lock.
	lastUsed time.Time
}

// SessionStore holds sessions in memory and expires idle ones.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a store whose sessions expire after ttl of idleness.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Acquire returns the locked session for id, creating it when missing. An
// empty id always creates a new session with a generated id. The caller must
// call release exactly once.
func (s *SessionStore) Acquire(id string) (sess *Session, release func()) {
	s.mu.Lock()
	if id == "" {
		id = uuid.NewString()
	}
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id}
		s.sessions[id] = sess
		metrics.FeedStates.Set(float64(len(s.sessions)))
	}
	sess.lastUsed = s.now()
	s.mu.Unlock()

	sess.mu.Lock()
	return sess, sess.mu.Unlock
}

// Lookup returns the locked session for id if it exists.
func (s *SessionStore) Lookup(id string) (sess *Session, release func(), ok bool) {
	s.mu.Lock()
	sess, ok = s.sessions[id]
	if ok {
		sess.lastUsed = s.now()
	}
	s.mu.Unlock()
	if !ok {
		return nil, nil, false
	}

	sess.mu.Lock()
	return sess, sess.mu.Unlock, true
}

// Sweep drops sessions idle for longer than the TTL and returns how many were
// removed. Sessions in use are skipped.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if !sess.lastUsed.Before(cutoff) {
			continue
		}
		if !sess.mu.TryLock() {
			continue
		}
		delete(s.sessions, id)
		sess.mu.Unlock()
		removed++
	}
	metrics.FeedStates.Set(float64(len(s.sessions)))
	return removed
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

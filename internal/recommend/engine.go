// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dongnae/internal/areas"
	"github.com/tomtom215/dongnae/internal/cache"
	"github.com/tomtom215/dongnae/internal/llm"
	"github.com/tomtom215/dongnae/internal/metrics"
	"github.com/tomtom215/dongnae/internal/place"
	"github.com/tomtom215/dongnae/internal/sources/photo"
	"github.com/tomtom215/dongnae/internal/store"
)

var (
	// ErrEmptyCatalog is returned by catalog loads that produced no places.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrUnknownSession is returned when a session id has no feed.
	ErrUnknownSession = errors.New("unknown session")

	// ErrStaleSignature is returned when a follow-up action names a query
	// signature other than the session's current one.
	ErrStaleSignature = errors.New("signature does not match the current query")
)

const (
	snapshotKey = "catalog"

	// emptyCatalogReason is reported when area ranking falls back to the
	// curated areas.
	emptyCatalogReason = "places empty"
)

// Catalog supplies raw place rows.
type Catalog interface {
	Places(ctx context.Context) ([]place.RawRecord, error)
}

// CrowdSource resolves the live crowd level of an area. Implementations
// return pref when the level is unknown.
type CrowdSource interface {
	CrowdLevel(ctx context.Context, area, pref string) string
}

// PhotoFinder picks a representative photo for an area, skipping URLs in
// used.
type PhotoFinder interface {
	Find(ctx context.Context, area string, terms []string, used map[string]struct{}) (photo.Photo, bool)
}

// Advisor is the optional language-model helper. Every method degrades to an
// empty or template result on its own.
type Advisor interface {
	ExpandKeywords(ctx context.Context, prefs llm.Preferences) []string
	RerankAreas(ctx context.Context, prefs llm.Preferences, hints []llm.AreaHint) []string
	Reason(ctx context.Context, req llm.ReasonRequest) llm.Reason
}

// DislikeStore persists exclusions per session and signature.
type DislikeStore interface {
	Get(ctx context.Context, key string) (store.Set, error)
	Add(ctx context.Context, key string, add store.Set) error
}

// Deps are the engine's collaborators. Catalog, Dislikes and Areas are
// required; the rest may be nil.
type Deps struct {
	Catalog  Catalog
	Crowd    CrowdSource
	Photos   PhotoFinder
	Advisor  Advisor
	Dislikes DislikeStore
	Areas    *areas.Catalog
}

// snapshot is one normalized catalog load.
type snapshot struct {
	places []place.Place
	stats  place.Stats
	index  TourIndex
}

// Engine serves recommendations.
type Engine struct {
	cfg        *Config
	deps       Deps
	normalizer *place.Normalizer
	sessions   *SessionStore
	snapshots  *cache.Cache[*snapshot]
	poolOpts   PoolOptions
	logger     zerolog.Logger
}

// NewEngine creates an engine.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *Config, deps Deps, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recommend config: %w", err)
	}
	if deps.Catalog == nil {
		return nil, errors.New("recommend: catalog is required")
	}
	if deps.Dislikes == nil {
		return nil, errors.New("recommend: dislike store is required")
	}
	if deps.Areas == nil {
		deps.Areas = areas.Default()
	}

	log := logger.With().Str("component", "recommend").Logger()
	return &Engine{
		cfg:        cfg,
		deps:       deps,
		normalizer: place.NewNormalizer(log),
		sessions:   NewSessionStore(cfg.FeedTTL),
		snapshots:  cache.New[*snapshot]("catalog", cfg.CatalogTTL),
		poolOpts:   PoolOptions{Weights: cfg.Weights, Denylist: cfg.Denylist},
		logger:     log,
	}, nil
}

// Sessions exposes the session store for sweeping and health reporting.
func (e *Engine) Sessions() *SessionStore { return e.sessions }

// SweepSessions drops idle sessions.
func (e *Engine) SweepSessions() int {
	n := e.sessions.Sweep()
	if n > 0 {
		e.logger.Debug().Int("removed", n).Int("live", e.sessions.Len()).Msg("swept idle sessions")
	}
	return n
}

// loadSnapshot fetches and normalizes the catalog. Empty loads are returned
// but not cached.
func (e *Engine) loadSnapshot(ctx context.Context) (*snapshot, bool, error) {
	rows, err := e.deps.Catalog.Places(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load catalog: %w", err)
	}
	places, stats := e.normalizer.NormalizeAll(rows)

	seen := make(map[string]struct{})
	var districts []string
	for i := range places {
		d := places[i].District
		if _, ok := seen[d]; ok || d == "" {
			continue
		}
		seen[d] = struct{}{}
		districts = append(districts, d)
	}
	sort.Strings(districts)

	snap := &snapshot{
		places: places,
		stats:  stats,
		index:  BuildTourIndex(places, districts, e.cfg.TourIndexCap),
	}
	metrics.CatalogPlaces.Set(float64(len(places)))
	e.logger.Info().
		Int("places", stats.Total).
		Int("area_empty", stats.AreaEmpty).
		Int("district_empty", stats.DistrictEmpty).
		Int("placeholder_names", stats.PlaceholderNames).
		Int("with_coords", stats.WithCoords).
		Msg("catalog normalized")
	return snap, len(places) > 0, nil
}

// catalog returns the cached snapshot, loading on a miss. A failed load is
// logged and treated as an empty catalog.
func (e *Engine) catalog(ctx context.Context) *snapshot {
	snap, err := e.snapshots.GetOrLoad(ctx, snapshotKey, e.loadSnapshot)
	if err != nil {
		e.logger.Warn().Err(err).Msg("catalog unavailable")
		return &snapshot{}
	}
	return snap
}

// RefreshCatalog reloads the catalog snapshot regardless of its age.
func (e *Engine) RefreshCatalog(ctx context.Context) error {
	snap, keep, err := e.loadSnapshot(ctx)
	if err != nil {
		metrics.CatalogRefreshes.WithLabelValues("error").Inc()
		return err
	}
	if !keep {
		metrics.CatalogRefreshes.WithLabelValues("empty").Inc()
		return ErrEmptyCatalog
	}
	e.snapshots.Set(snapshotKey, snap)
	metrics.CatalogRefreshes.WithLabelValues("success").Inc()
	return nil
}

// CatalogStats returns the statistics of the cached snapshot, if any.
func (e *Engine) CatalogStats() (place.Stats, bool) {
	snap, ok := e.snapshots.Get(snapshotKey)
	if !ok {
		return place.Stats{}, false
	}
	return snap.stats, true
}

// normalizeQuery trims companions to the configured maximum and defaults an
// unknown crowd preference.
func (e *Engine) normalizeQuery(q Query) Query {
	if len(q.Companions) > e.cfg.MaxCompanions {
		q.Companions = q.Companions[:e.cfg.MaxCompanions]
	}
	q.CrowdPref = strings.TrimSpace(q.CrowdPref)
	if !IsCrowdLevel(q.CrowdPref) {
		q.CrowdPref = CrowdModerate
	}
	return q
}

func (e *Engine) expand(ctx context.Context, q *Query) []string {
	if e.deps.Advisor == nil {
		return nil
	}
	return e.deps.Advisor.ExpandKeywords(ctx, q.Preferences())
}

// Recommend serves the first batch for a query, or the next batch when the
// session already holds a feed for the same query. A different query resets
// the session's feed.
func (e *Engine) Recommend(ctx context.Context, sessionID string, q Query) (*Response, error) {
	metrics.RecommendRequests.WithLabelValues("recommend").Inc()
	q = e.normalizeQuery(q)

	snap := e.catalog(ctx)
	if len(snap.places) == 0 {
		e.logger.Warn().Str("session_id", sessionID).Msg("empty catalog, returning no recommendations")
		return &Response{SessionID: sessionID, Results: []Recommendation{}}, nil
	}

	sess, release := e.sessions.Acquire(sessionID)
	defer release()

	sig := MakeSignature(&q)
	if sess.Feed == nil || sess.Feed.Signature() != sig {
		extra := e.expand(ctx, &q)
		pool := BuildMasterPool(snap.places, UserText(&q), extra, e.poolOpts)
		metrics.MasterPoolSize.Observe(float64(len(pool)))

		sess.Query = q
		sess.Signature = sig
		sess.Extra = extra
		sess.LastBatch = nil
		sess.Feed = NewFeedState(sig, pool, e.cfg.BaseLimit, e.cfg.MaxLimit)

		e.logger.Info().
			Str("session_id", sess.ID).
			Str("signature", SignatureHash(sig)).
			Int("pool", len(pool)).
			Int("extra_keywords", len(extra)).
			Msg("master pool built")
	}

	return e.serve(ctx, sess, snap)
}

// session looks up and locks an existing session, checking the signature
// when one is given.
func (e *Engine) session(sessionID, signature string) (*Session, func(), error) {
	sess, release, ok := e.sessions.Lookup(sessionID)
	if !ok {
		return nil, nil, ErrUnknownSession
	}
	if sess.Feed == nil {
		release()
		return nil, nil, ErrUnknownSession
	}
	if signature != "" && signature != sess.Signature {
		release()
		return nil, nil, ErrStaleSignature
	}
	return sess, release, nil
}

// RerankAll dislikes every place of the last batch and serves a new one.
func (e *Engine) RerankAll(ctx context.Context, sessionID, signature string) (*Response, error) {
	metrics.RecommendRequests.WithLabelValues("rerank_all").Inc()

	sess, release, err := e.session(sessionID, signature)
	if err != nil {
		return nil, err
	}
	defer release()

	add := store.Set{}
	for i := range sess.LastBatch {
		add.Places = append(add.Places, sess.LastBatch[i].ID)
	}
	if err := e.addDislikes(ctx, sess, add); err != nil {
		return nil, err
	}
	return e.serve(ctx, sess, e.catalog(ctx))
}

// Dislike excludes the named areas, and every last-batch place in them, then
// serves a new batch.
func (e *Engine) Dislike(ctx context.Context, sessionID, signature string, areaNames []string) (*Response, error) {
	metrics.RecommendRequests.WithLabelValues("dislike").Inc()

	sess, release, err := e.session(sessionID, signature)
	if err != nil {
		return nil, err
	}
	defer release()

	add := store.Set{}
	named := make(map[string]struct{}, len(areaNames))
	for _, a := range areaNames {
		if a = strings.TrimSpace(a); a != "" {
			named[a] = struct{}{}
			add.Areas = append(add.Areas, a)
		}
	}
	for i := range sess.LastBatch {
		if _, ok := named[sess.LastBatch[i].Area]; ok {
			add.Places = append(add.Places, sess.LastBatch[i].ID)
		}
	}
	if err := e.addDislikes(ctx, sess, add); err != nil {
		return nil, err
	}
	return e.serve(ctx, sess, e.catalog(ctx))
}

func dislikeKey(sess *Session) string {
	return sess.ID + "|" + SignatureHash(sess.Signature)
}

func (e *Engine) addDislikes(ctx context.Context, sess *Session, add store.Set) error {
	if len(add.Places) == 0 && len(add.Areas) == 0 {
		return nil
	}
	if err := e.deps.Dislikes.Add(ctx, dislikeKey(sess), add); err != nil {
		return fmt.Errorf("record dislikes: %w", err)
	}
	metrics.Dislikes.WithLabelValues("place").Add(float64(len(add.Places)))
	metrics.Dislikes.WithLabelValues("area").Add(float64(len(add.Areas)))
	return nil
}

// exclusions loads the session's dislikes. A store failure is logged and
// serves without exclusions.
func (e *Engine) exclusions(ctx context.Context, sess *Session) Exclusions {
	set, err := e.deps.Dislikes.Get(ctx, dislikeKey(sess))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			e.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to load dislikes")
		}
		return nil
	}
	ex := make(Exclusions, len(set.Places)+len(set.Areas))
	for _, id := range set.Places {
		ex[id] = struct{}{}
	}
	for _, a := range set.Areas {
		ex[a] = struct{}{}
	}
	return ex
}

// serve runs one pass of the relaxation ladder and enriches the batch.
func (e *Engine) serve(ctx context.Context, sess *Session, snap *snapshot) (*Response, error) {
	batch := sess.Feed.Recommend(e.cfg.ResultCount, e.exclusions(ctx, sess))
	sess.LastBatch = batch.Items

	metrics.RecordRelaxation(batch.Stage)
	if batch.Stage > StageBase {
		e.logger.Debug().
			Str("session_id", sess.ID).
			Int("stage", batch.Stage).
			Int("limit", sess.Feed.Limit()).
			Int("served", len(batch.Items)).
			Msg("relaxation stage reached")
	}
	e.reportCodeNames(batch.Items)
	if batch.Fallback {
		e.logger.Warn().
			Str("session_id", sess.ID).
			Str("signature", SignatureHash(sess.Signature)).
			Int("pool", sess.Feed.PoolSize()).
			Msg("relaxation exhausted, filled batch with duplicates")
	}

	crowdPref := CrowdPrefFromSignature(sess.Signature)
	return &Response{
		SessionID: sess.ID,
		Signature: sess.Signature,
		Results:   e.enrich(ctx, &sess.Query, crowdPref, batch.Items, snap.places),
		Fallback:  batch.Fallback,
		Stage:     batch.Stage,
		PoolSize:  sess.Feed.PoolSize(),
	}, nil
}

// reportCodeNames warns about served places whose name looks like a
// language code. They are still served.
func (e *Engine) reportCodeNames(items []Candidate) {
	var bad []string
	for i := range items {
		if place.IsLanguageCode(items[i].Name) {
			bad = append(bad, items[i].Name)
		}
	}
	if len(bad) > 0 {
		e.logger.Warn().Strs("names", bad).Msg("language-code names in results")
	}
}

func (e *Engine) crowdLevel(ctx context.Context, area, pref string) string {
	if e.deps.Crowd == nil {
		return pref
	}
	if level := e.deps.Crowd.CrowdLevel(ctx, area, pref); IsCrowdLevel(level) {
		return level
	}
	return pref
}

// RecommendAreas ranks districts (or, with an empty catalog, the curated
// areas) for a query.
func (e *Engine) RecommendAreas(ctx context.Context, q Query) (*AreaResponse, error) {
	metrics.RecommendRequests.WithLabelValues("areas").Inc()
	q = e.normalizeQuery(q)

	snap := e.catalog(ctx)
	resp := &AreaResponse{}

	candidates := RegionCandidates(snap.places, e.cfg.MaxCandidates)
	if len(candidates) == 0 {
		resp.Fallback = true
		resp.FallbackReason = emptyCatalogReason
		for _, a := range e.deps.Areas.All() {
			candidates = append(candidates, AreaCandidate{
				Name:      a.Name,
				District:  a.District,
				Center:    a.Center,
				HasCenter: true,
			})
		}
		e.logger.Warn().Int("areas", len(candidates)).Msg("no region candidates, ranking curated areas")
	}

	extra := e.expand(ctx, &q)
	tokens := AreaTokens(&q, extra)
	mainTokens := Tokenize(q.MainTaste + " " + q.MainPurpose)

	scored := make([]ScoredArea, 0, len(candidates))
	for _, c := range candidates {
		crowd := e.crowdLevel(ctx, c.Name, q.CrowdPref)
		vibe := e.deps.Areas.Vibe(c.Name)
		scored = append(scored, ScoredArea{
			AreaCandidate: c,
			Crowd:         crowd,
			Vibe:          vibe,
			Score: ScoreArea(e.cfg.Weights, AreaScoreInput{
				Area:       c.Name,
				District:   c.District,
				CrowdPref:  q.CrowdPref,
				CrowdNow:   crowd,
				Tokens:     tokens,
				MainTokens: mainTokens,
				Vibe:       vibe,
				Index:      snap.index,
				IndexCap:   e.cfg.TourIndexCap,
			}),
		})
	}
	RankAreas(scored)
	resp.Reranked = e.rerank(ctx, &q, scored)

	n := min(e.cfg.ResultCount, len(scored))
	travelers := q.Travelers()
	resp.Areas = make([]AreaResult, 0, n)
	for i := 0; i < n; i++ {
		s := &scored[i]
		dest := areas.Destination{Name: s.Name, District: s.District, Center: s.Center}
		hits := s.Score.Hits
		if hits == nil {
			hits = []string{}
		}
		resp.Areas = append(resp.Areas, AreaResult{
			Rank:        i + 1,
			Name:        s.Name,
			District:    s.District,
			Center:      s.Center,
			PlaceCount:  s.PlaceCount,
			Crowd:       s.Crowd,
			Score:       s.Score.Total,
			KeywordHits: hits,
			Vibe:        nonNil(s.Vibe),
			TravelTimes: areas.TravelTimeLines(travelers, dest),
			Links:       areas.Links(s.Name),
			Summary:     llm.QuickReason(s.Name, q.MainTaste, q.MainPurpose),
		})
	}
	return resp, nil
}

// rerank lets the advisor reorder the top window of scored areas. It reports
// whether the order came from the advisor.
func (e *Engine) rerank(ctx context.Context, q *Query, scored []ScoredArea) bool {
	if e.deps.Advisor == nil || e.cfg.RerankWindow == 0 || len(scored) < 2 {
		return false
	}
	window := scored[:min(e.cfg.RerankWindow, len(scored))]

	hints := make([]llm.AreaHint, 0, len(window))
	names := make([]string, 0, len(window))
	for i := range window {
		hints = append(hints, llm.AreaHint{
			Area:        window[i].Name,
			Gu:          window[i].District,
			Crowd:       window[i].Crowd,
			ScoreHint:   math.Round(window[i].Score.Total*100) / 100,
			KeywordHits: window[i].Score.Hits,
		})
		names = append(names, window[i].Name)
	}

	ranked := e.deps.Advisor.RerankAreas(ctx, q.Preferences(), hints)
	if len(ranked) == 0 {
		return false
	}

	pos := make(map[string]int, len(window))
	for i, name := range llm.ApplyOrder(names, ranked) {
		pos[name] = i
	}
	sort.SliceStable(window, func(i, j int) bool {
		return pos[window[i].Name] < pos[window[j].Name]
	})
	return true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

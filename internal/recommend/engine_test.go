// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dongnae/internal/llm"
	"github.com/tomtom215/dongnae/internal/logging"
	"github.com/tomtom215/dongnae/internal/place"
	"github.com/tomtom215/dongnae/internal/sources/photo"
	"github.com/tomtom215/dongnae/internal/store"
)

type fakeCatalog struct {
	mu   sync.Mutex
	rows []place.RawRecord
	err  error
}

func (f *fakeCatalog) Places(context.Context) ([]place.RawRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows, f.err
}

func (f *fakeCatalog) set(rows []place.RawRecord, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows, f.err = rows, err
}

type fakeCrowd map[string]string

func (f fakeCrowd) CrowdLevel(_ context.Context, area, _ string) string {
	if level, ok := f[area]; ok {
		return level
	}
	return "모름"
}

type fakePhotos struct{}

func (fakePhotos) Find(_ context.Context, area string, _ []string, used map[string]struct{}) (photo.Photo, bool) {
	u := "https://img.test/" + area
	if _, ok := used[u]; ok {
		return photo.Photo{}, false
	}
	return photo.Photo{URL: u, Caption: area, Orientation: photo.Unknown}, true
}

type fakeAdvisor struct {
	extra  []string
	ranked []string

	mu    sync.Mutex
	hints []llm.AreaHint
}

func (f *fakeAdvisor) ExpandKeywords(context.Context, llm.Preferences) []string { return f.extra }

func (f *fakeAdvisor) RerankAreas(_ context.Context, _ llm.Preferences, hints []llm.AreaHint) []string {
	f.mu.Lock()
	f.hints = hints
	f.mu.Unlock()
	return f.ranked
}

func (f *fakeAdvisor) Reason(_ context.Context, req llm.ReasonRequest) llm.Reason {
	return llm.Reason{OneLiner: "reason " + req.Area, Bullets: []string{req.Crowd}, Generated: true}
}

func catalogRow(id, name, addr, theme string) place.RawRecord {
	return place.RawRecord{
		"ID":    place.String(id),
		"NAME":  place.String(name),
		"ADDR":  place.String(addr),
		"THEME": place.String(theme),
	}
}

// sixAreas has one place in each of six neighborhoods.
func sixAreas() []place.RawRecord {
	return []place.RawRecord{
		catalogRow("p1", "쌈지길", "서울 종로구 인사동 44", "공예"),
		catalogRow("p2", "성수 카페거리", "서울 성동구 성수동 12", "카페"),
		catalogRow("p3", "연남 산책길", "서울 마포구 연남동 23", "산책"),
		catalogRow("p4", "한남 갤러리", "서울 용산구 한남동 34", "전시"),
		catalogRow("p5", "서촌 한옥", "서울 종로구 누하동 45", "한옥"),
		catalogRow("p6", "잠실 호수", "서울 송파구 잠실동 56", "호수"),
	}
}

type engineFixture struct {
	engine   *Engine
	catalog  *fakeCatalog
	dislikes *store.Memory
	advisor  *fakeAdvisor
}

func newFixture(t *testing.T, rows []place.RawRecord, advisor *fakeAdvisor) *engineFixture {
	t.Helper()
	f := &engineFixture{
		catalog:  &fakeCatalog{rows: rows},
		dislikes: store.NewMemory(),
		advisor:  advisor,
	}
	deps := Deps{
		Catalog:  f.catalog,
		Crowd:    fakeCrowd{"인사동": CrowdBusy},
		Photos:   fakePhotos{},
		Dislikes: f.dislikes,
	}
	if advisor != nil {
		deps.Advisor = advisor
	}
	e, err := NewEngine(DefaultConfig(), deps, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	f.engine = e
	return f
}

func testQuery() Query {
	return Query{
		MainTaste:   "카페",
		MainPurpose: "데이트",
		CrowdPref:   CrowdRelaxed,
		Start:       StartLocation{Scope: "서울 내", Gu: "마포구"},
	}
}

func resultIDs(rs []Recommendation) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].PlaceID
	}
	return out
}

func TestNewEngine_RequiresCollaborators(t *testing.T) {
	t.Parallel()

	if _, err := NewEngine(nil, Deps{Dislikes: store.NewMemory()}, zerolog.Nop()); err == nil {
		t.Error("NewEngine without catalog succeeded")
	}
	if _, err := NewEngine(nil, Deps{Catalog: &fakeCatalog{}}, zerolog.Nop()); err == nil {
		t.Error("NewEngine without dislike store succeeded")
	}
	bad := DefaultConfig()
	bad.ResultCount = 0
	if _, err := NewEngine(bad, Deps{Catalog: &fakeCatalog{}, Dislikes: store.NewMemory()}, zerolog.Nop()); err == nil {
		t.Error("NewEngine with invalid config succeeded")
	}
}

func TestEngine_RecommendFirstBatch(t *testing.T) {
	t.Parallel()
	f := newFixture(t, sixAreas(), &fakeAdvisor{})
	q := testQuery()

	resp, err := f.engine.Recommend(context.Background(), "", q)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.SessionID == "" {
		t.Error("no session id issued")
	}
	if resp.Signature != MakeSignature(&q) {
		t.Errorf("Signature = %s, want %s", resp.Signature, MakeSignature(&q))
	}
	if len(resp.Results) != 4 || resp.Fallback || resp.Stage != StageBase || resp.PoolSize != 6 {
		t.Fatalf("batch = %d results, fallback %v, stage %d, pool %d", len(resp.Results), resp.Fallback, resp.Stage, resp.PoolSize)
	}

	areas := make(map[string]bool)
	photos := make(map[string]bool)
	for i, r := range resp.Results {
		if areas[r.Area] {
			t.Errorf("area %s served twice in one batch", r.Area)
		}
		areas[r.Area] = true

		if r.Rank != i+1 {
			t.Errorf("rank = %d, want %d", r.Rank, i+1)
		}
		if r.RoadAddress == "" || r.Summary == "" || len(r.TravelTimes) == 0 {
			t.Errorf("result %s not enriched: %+v", r.PlaceID, r)
		}
		if r.Reason.OneLiner != "reason "+r.Area {
			t.Errorf("reason = %q", r.Reason.OneLiner)
		}
		if r.Photo == nil || photos[r.Photo.URL] {
			t.Errorf("photo for %s missing or repeated", r.Area)
		} else {
			photos[r.Photo.URL] = true
		}

		wantCrowd := CrowdRelaxed
		if r.Area == "인사동" {
			wantCrowd = CrowdBusy
		}
		if r.Crowd != wantCrowd {
			t.Errorf("crowd for %s = %q, want %q", r.Area, r.Crowd, wantCrowd)
		}
	}
}

func TestEngine_RecommendNextBatchRelaxes(t *testing.T) {
	t.Parallel()
	f := newFixture(t, sixAreas(), nil)
	ctx := context.Background()

	first, err := f.engine.Recommend(ctx, "", testQuery())
	if err != nil {
		t.Fatal(err)
	}
	served := make(map[string]bool)
	for _, id := range resultIDs(first.Results) {
		served[id] = true
	}

	second, err := f.engine.Recommend(ctx, first.SessionID, testQuery())
	if err != nil {
		t.Fatal(err)
	}
	if second.SessionID != first.SessionID || second.Signature != first.Signature {
		t.Fatal("same query did not continue the session")
	}
	if len(second.Results) != 4 || !second.Fallback || second.Stage != StageFallback {
		t.Fatalf("second batch = %d results, fallback %v, stage %d", len(second.Results), second.Fallback, second.Stage)
	}
	for _, r := range second.Results[:2] {
		if served[r.PlaceID] {
			t.Errorf("fresh part of second batch repeats %s", r.PlaceID)
		}
	}
	if second.Results[0].Reason.Generated {
		t.Error("reason without advisor should be the template")
	}
}

func TestEngine_ReportCodeNames(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	e, err := NewEngine(nil, Deps{Catalog: &fakeCatalog{}, Dislikes: store.NewMemory()}, logging.NewTestLogger(&buf))
	if err != nil {
		t.Fatal(err)
	}

	items := []Candidate{
		{Place: place.Place{ID: "a", Name: "en"}},
		{Place: place.Place{ID: "b", Name: "쌈지길"}},
		{Place: place.Place{ID: "c", Name: "zh-Hant"}},
	}
	e.reportCodeNames(items)

	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, `"names":["en","zh-Hant"]`) {
		t.Errorf("warning missing code names: %q", out)
	}
	if strings.Contains(out, "쌈지길") {
		t.Errorf("Korean name reported as a code: %q", out)
	}

	buf.Reset()
	e.reportCodeNames(items[1:2])
	if buf.Len() != 0 {
		t.Errorf("clean batch logged %q", buf.String())
	}
}

func TestEngine_LogsRelaxationStage(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	catalog := &fakeCatalog{rows: sixAreas()}
	e, err := NewEngine(DefaultConfig(), Deps{Catalog: catalog, Dislikes: store.NewMemory()}, logging.NewTestLogger(&buf))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	first, err := e.Recommend(ctx, "", testQuery())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "relaxation stage reached") {
		t.Errorf("base stage logged a relaxation: %q", buf.String())
	}

	if _, err := e.Recommend(ctx, first.SessionID, testQuery()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "relaxation stage reached") || !strings.Contains(out, `"stage":4`) {
		t.Errorf("relaxation stage not logged: %q", out)
	}
}

func TestEngine_QueryChangeResetsFeed(t *testing.T) {
	t.Parallel()
	f := newFixture(t, sixAreas(), nil)
	ctx := context.Background()

	first, err := f.engine.Recommend(ctx, "", testQuery())
	if err != nil {
		t.Fatal(err)
	}

	q := testQuery()
	q.MainTaste = "전시"
	changed, err := f.engine.Recommend(ctx, first.SessionID, q)
	if err != nil {
		t.Fatal(err)
	}
	if changed.Signature == first.Signature {
		t.Error("signature did not change with the query")
	}
	if len(changed.Results) != 4 || changed.Fallback || changed.Stage != StageBase {
		t.Errorf("reset batch = %d results, fallback %v, stage %d", len(changed.Results), changed.Fallback, changed.Stage)
	}
}

func TestEngine_RerankAll(t *testing.T) {
	t.Parallel()
	f := newFixture(t, sixAreas(), nil)
	ctx := context.Background()

	first, err := f.engine.Recommend(ctx, "", testQuery())
	if err != nil {
		t.Fatal(err)
	}
	disliked := resultIDs(first.Results)

	resp, err := f.engine.RerankAll(ctx, first.SessionID, first.Signature)
	if err != nil {
		t.Fatalf("RerankAll() error = %v", err)
	}
	for _, r := range resp.Results {
		for _, id := range disliked {
			if r.PlaceID == id {
				t.Errorf("disliked place %s served again", id)
			}
		}
	}
	if len(resp.Results) != 4 || !resp.Fallback {
		t.Errorf("rerank batch = %d results, fallback %v; want 4 with duplicates", len(resp.Results), resp.Fallback)
	}

	set, err := f.dislikes.Get(ctx, first.SessionID+"|"+SignatureHash(first.Signature))
	if err != nil {
		t.Fatalf("dislikes not stored: %v", err)
	}
	got := append([]string(nil), set.Places...)
	sort.Strings(got)
	sort.Strings(disliked)
	if len(got) != len(disliked) {
		t.Errorf("stored places = %v, want %v", got, disliked)
	}
}

func TestEngine_DislikeAreas(t *testing.T) {
	t.Parallel()
	f := newFixture(t, sixAreas(), nil)
	ctx := context.Background()

	first, err := f.engine.Recommend(ctx, "", testQuery())
	if err != nil {
		t.Fatal(err)
	}
	area := first.Results[0].Area

	resp, err := f.engine.Dislike(ctx, first.SessionID, first.Signature, []string{area, "  "})
	if err != nil {
		t.Fatalf("Dislike() error = %v", err)
	}
	for _, r := range resp.Results {
		if r.Area == area {
			t.Errorf("disliked area %s served again", area)
		}
	}

	set, err := f.dislikes.Get(ctx, first.SessionID+"|"+SignatureHash(first.Signature))
	if err != nil {
		t.Fatal(err)
	}
	if len(set.Areas) != 1 || set.Areas[0] != area {
		t.Errorf("stored areas = %v, want [%s]", set.Areas, area)
	}
	if len(set.Places) != 1 || set.Places[0] != first.Results[0].PlaceID {
		t.Errorf("stored places = %v, want the batch place in %s", set.Places, area)
	}
}

func TestEngine_FollowUpErrors(t *testing.T) {
	t.Parallel()
	f := newFixture(t, sixAreas(), nil)
	ctx := context.Background()

	if _, err := f.engine.RerankAll(ctx, "missing", ""); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("RerankAll(missing) error = %v, want ErrUnknownSession", err)
	}
	if _, err := f.engine.Dislike(ctx, "missing", "", nil); !errors.Is(err, ErrUnknownSession) {
		t.Errorf("Dislike(missing) error = %v, want ErrUnknownSession", err)
	}

	first, err := f.engine.Recommend(ctx, "", testQuery())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.engine.RerankAll(ctx, first.SessionID, "stale"); !errors.Is(err, ErrStaleSignature) {
		t.Errorf("RerankAll(stale) error = %v, want ErrStaleSignature", err)
	}
	if _, err := f.engine.RerankAll(ctx, first.SessionID, ""); err != nil {
		t.Errorf("RerankAll without signature error = %v", err)
	}
}

func TestEngine_EmptyCatalog(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	resp, err := f.engine.Recommend(ctx, "", testQuery())
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if resp.Results == nil || len(resp.Results) != 0 {
		t.Errorf("Results = %v, want empty non-nil", resp.Results)
	}
	if f.engine.Sessions().Len() != 0 {
		t.Error("empty catalog created a session")
	}

	if err := f.engine.RefreshCatalog(ctx); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("RefreshCatalog() error = %v, want ErrEmptyCatalog", err)
	}

	boom := errors.New("boom")
	f.catalog.set(nil, boom)
	if err := f.engine.RefreshCatalog(ctx); !errors.Is(err, boom) {
		t.Errorf("RefreshCatalog() error = %v, want wrapped source error", err)
	}
}

func TestEngine_RefreshCatalogReplacesSnapshot(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	if _, ok := f.engine.CatalogStats(); ok {
		t.Error("stats present before any load")
	}

	f.catalog.set(sixAreas(), nil)
	if err := f.engine.RefreshCatalog(ctx); err != nil {
		t.Fatalf("RefreshCatalog() error = %v", err)
	}
	stats, ok := f.engine.CatalogStats()
	if !ok || stats.Total != 6 {
		t.Errorf("stats = %+v, %v; want 6 places", stats, ok)
	}

	resp, err := f.engine.Recommend(ctx, "", testQuery())
	if err != nil || len(resp.Results) != 4 {
		t.Errorf("Recommend() after refresh = %v results, %v", len(resp.Results), err)
	}
}

func TestEngine_RecommendAreas(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("scored districts", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, sixAreas(), nil)

		resp, err := f.engine.RecommendAreas(ctx, testQuery())
		if err != nil {
			t.Fatal(err)
		}
		if resp.Fallback || resp.Reranked || len(resp.Areas) != 4 {
			t.Fatalf("resp = fallback %v reranked %v areas %d", resp.Fallback, resp.Reranked, len(resp.Areas))
		}
		if resp.Areas[0].Name != "성동구" || resp.Areas[1].Name != "종로구" {
			t.Errorf("order = %s, %s; want 성동구 (keyword hit) then 종로구 (most places)", resp.Areas[0].Name, resp.Areas[1].Name)
		}
		if len(resp.Areas[0].KeywordHits) != 1 || resp.Areas[0].KeywordHits[0] != "카페" {
			t.Errorf("hits = %v, want [카페]", resp.Areas[0].KeywordHits)
		}
		if resp.Areas[1].PlaceCount != 2 {
			t.Errorf("종로구 places = %d, want 2", resp.Areas[1].PlaceCount)
		}
	})

	t.Run("advisor rerank", func(t *testing.T) {
		t.Parallel()
		advisor := &fakeAdvisor{ranked: []string{"마포구", "없는구"}}
		f := newFixture(t, sixAreas(), advisor)

		resp, err := f.engine.RecommendAreas(ctx, testQuery())
		if err != nil {
			t.Fatal(err)
		}
		if !resp.Reranked || resp.Areas[0].Name != "마포구" || resp.Areas[1].Name != "성동구" {
			t.Errorf("reranked = %v, top = %s, %s", resp.Reranked, resp.Areas[0].Name, resp.Areas[1].Name)
		}
		advisor.mu.Lock()
		defer advisor.mu.Unlock()
		if len(advisor.hints) != 5 {
			t.Errorf("hints = %d, want every candidate", len(advisor.hints))
		}
	})

	t.Run("curated fallback", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, nil, nil)

		resp, err := f.engine.RecommendAreas(ctx, testQuery())
		if err != nil {
			t.Fatal(err)
		}
		if !resp.Fallback || resp.FallbackReason != emptyCatalogReason {
			t.Errorf("fallback = %v %q", resp.Fallback, resp.FallbackReason)
		}
		got := []string{resp.Areas[0].Name, resp.Areas[1].Name, resp.Areas[2].Name, resp.Areas[3].Name}
		want := []string{"연남", "익선동", "성수", "삼청동"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("order = %v, want %v", got, want)
				break
			}
		}
		if resp.Areas[0].Vibe == nil || resp.Areas[0].TravelTimes == nil {
			t.Errorf("area not enriched: %+v", resp.Areas[0])
		}
	})
}

func TestEngine_SweepSessions(t *testing.T) {
	t.Parallel()
	f := newFixture(t, sixAreas(), nil)

	if _, err := f.engine.Recommend(context.Background(), "", testQuery()); err != nil {
		t.Fatal(err)
	}
	if n := f.engine.SweepSessions(); n != 0 {
		t.Errorf("SweepSessions() removed %d fresh sessions", n)
	}
	if f.engine.Sessions().Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.engine.Sessions().Len())
	}
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/dongnae/internal/place"
)

// otherDistrict groups places whose district could not be derived.
const otherDistrict = "기타"

// TourIndex maps a district to lowercased descriptive texts mentioning it.
type TourIndex map[string][]string

// BuildTourIndex indexes each place's text under every district named in it,
// keeping at most limit texts per district.
func BuildTourIndex(places []place.Place, districts []string, limit int) TourIndex {
	idx := make(TourIndex, len(districts))
	for _, d := range districts {
		idx[d] = nil
	}
	for i := range places {
		p := &places[i]
		text := fold(strings.Join([]string{
			p.Name, p.Area, p.District, p.Address, strings.Join(p.Tags, " "), p.Description,
		}, " "))
		if strings.TrimSpace(text) == "" {
			continue
		}
		for _, d := range districts {
			if len(idx[d]) < limit && strings.Contains(text, d) {
				idx[d] = append(idx[d], text)
			}
		}
	}
	return idx
}

// AreaTokens returns the unique keyword tokens of a query: main taste and
// purpose, every companion that gave either, then the extra keywords.
func AreaTokens(q *Query, extraKeywords []string) []string {
	tokens := Tokenize(q.MainTaste + " " + q.MainPurpose)
	for _, c := range q.Companions {
		if c.Blank() {
			continue
		}
		tokens = append(tokens, Tokenize(c.Taste+" "+c.Purpose)...)
	}
	for _, k := range extraKeywords {
		tokens = append(tokens, Tokenize(k)...)
	}

	seen := make(map[string]struct{}, len(tokens))
	out := tokens[:0]
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// AreaScoreInput is everything ScoreArea needs for one area.
type AreaScoreInput struct {
	Area      string
	District  string
	CrowdPref string
	CrowdNow  string

	// Tokens are the unique query tokens from AreaTokens.
	Tokens []string

	// MainTokens are the main taste and purpose tokens only, duplicates kept.
	MainTokens []string

	Vibe  []string
	Index TourIndex

	// IndexCap bounds the texts scanned for the district.
	IndexCap int
}

// AreaScore breaks down an area score.
type AreaScore struct {
	Total   float64
	Crowd   float64
	Keyword float64
	Vibe    float64

	// Hits lists the tokens found at least once in the district's texts.
	Hits []string
}

// CrowdTerm scores an observed crowd level against the preference. Unknown
// levels score zero.
func CrowdTerm(w Weights, pref, now string) float64 {
	pi, ni := CrowdIndex(pref), CrowdIndex(now)
	if pi < 0 || ni < 0 {
		return 0
	}
	if pi == ni {
		return w.CrowdMatch
	}
	dist := pi - ni
	if dist < 0 {
		dist = -dist
	}
	return max(0, w.CrowdBase-w.CrowdStep*float64(dist))
}

// ScoreArea is the unbounded sum of the crowd, keyword and vibe terms.
func ScoreArea(w Weights, in AreaScoreInput) AreaScore {
	s := AreaScore{Crowd: CrowdTerm(w, in.CrowdPref, in.CrowdNow)}

	if in.District != "" && len(in.Tokens) > 0 {
		texts := in.Index[in.District]
		if in.IndexCap > 0 && len(texts) > in.IndexCap {
			texts = texts[:in.IndexCap]
		}
		hits := 0
		found := make(map[string]bool, len(in.Tokens))
		for _, text := range texts {
			for _, t := range in.Tokens {
				if strings.Contains(text, t) {
					hits++
					found[t] = true
				}
			}
		}
		s.Keyword = min(w.KeywordCap, float64(hits)*w.KeywordHit)
		for _, t := range in.Tokens {
			if found[t] {
				s.Hits = append(s.Hits, t)
			}
		}
	}

	if len(in.Vibe) > 0 {
		tags := fold(strings.Join(in.Vibe, " "))
		for _, t := range in.MainTokens {
			if strings.Contains(tags, t) {
				s.Vibe += w.Vibe
			}
		}
	}

	s.Total = s.Crowd + s.Keyword + s.Vibe
	return s
}

// AreaCandidate is a district-level grouping of catalog places.
type AreaCandidate struct {
	Name       string
	District   string
	Center     place.LatLng
	HasCenter  bool
	PlaceCount int
	Places     []place.Place
}

// RegionCandidates groups places by district, most populated first, capped at
// limit. Places without a district fall into one 기타 group.
func RegionCandidates(places []place.Place, limit int) []AreaCandidate {
	if len(places) == 0 {
		return nil
	}

	groups := make(map[string]*AreaCandidate)
	var order []string
	for i := range places {
		gu := strings.TrimSpace(places[i].District)
		if gu == "" {
			gu = otherDistrict
		}
		g, ok := groups[gu]
		if !ok {
			g = &AreaCandidate{Name: gu}
			if gu != otherDistrict {
				g.District = gu
			}
			groups[gu] = g
			order = append(order, gu)
		}
		g.Places = append(g.Places, places[i])
	}

	out := make([]AreaCandidate, 0, len(order))
	for _, gu := range order {
		g := groups[gu]
		g.PlaceCount = len(g.Places)
		g.Center = place.SeoulCityHall
		var lat, lng float64
		n := 0
		for j := range g.Places {
			if c := g.Places[j].Coord; c != nil {
				lat += c.Lat
				lng += c.Lng
				n++
			}
		}
		if n > 0 {
			g.Center = place.LatLng{Lat: lat / float64(n), Lng: lng / float64(n)}
			g.HasCenter = true
		}
		out = append(out, *g)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PlaceCount > out[j].PlaceCount
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ScoredArea pairs a candidate with its score.
type ScoredArea struct {
	AreaCandidate
	Crowd string
	Score AreaScore
	Vibe  []string
}

// RankAreas sorts scored areas by descending total, keeping input order for
// ties.
func RankAreas(scored []ScoredArea) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score.Total > scored[j].Score.Total
	})
}

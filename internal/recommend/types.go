// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/dongnae/internal/areas"
	"github.com/tomtom215/dongnae/internal/llm"
	"github.com/tomtom215/dongnae/internal/place"
	"github.com/tomtom215/dongnae/internal/sources/photo"
)

// Crowd levels, from least to most crowded.
const (
	CrowdRelaxed  = "여유"
	CrowdModerate = "약간 붐빔"
	CrowdBusy     = "붐빔"
)

// CrowdLevels is the ordered crowd scale.
var CrowdLevels = []string{CrowdRelaxed, CrowdModerate, CrowdBusy}

// CrowdIndex returns the position of level on the crowd scale, or -1.
func CrowdIndex(level string) int {
	for i, l := range CrowdLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// IsCrowdLevel reports whether s is one of the three crowd levels.
func IsCrowdLevel(s string) bool {
	return CrowdIndex(s) >= 0
}

// StartLocation is where a person sets off from.
type StartLocation = areas.StartLocation

// Person is a companion travelling with the primary user.
type Person struct {
	Relationship string        `json:"relationship,omitempty" validate:"max=40"`
	Taste        string        `json:"taste,omitempty" validate:"max=200"`
	Purpose      string        `json:"purpose,omitempty" validate:"max=200"`
	Start        StartLocation `json:"start"`
}

// Blank reports whether the companion gave no taste or purpose.
func (p Person) Blank() bool {
	return strings.TrimSpace(p.Taste) == "" && strings.TrimSpace(p.Purpose) == ""
}

// Query is one recommendation request. Companions never include the primary
// user, whose preferences are MainTaste and MainPurpose.
type Query struct {
	MainTaste   string        `json:"main_taste"`
	MainPurpose string        `json:"main_purpose"`
	CrowdPref   string        `json:"crowd_pref"`
	Start       StartLocation `json:"start"`
	Companions  []Person      `json:"companions"`
}

// Travelers labels the primary user and every companion for travel lines.
func (q *Query) Travelers() []areas.Traveler {
	out := make([]areas.Traveler, 0, 1+len(q.Companions))
	out = append(out, areas.Traveler{Label: "본인", Start: q.Start})
	for i, c := range q.Companions {
		label := strings.TrimSpace(c.Relationship)
		if label == "" {
			label = fmt.Sprintf("동행자 %d", i+1)
		}
		out = append(out, areas.Traveler{Label: label, Start: c.Start})
	}
	return out
}

// Preferences converts the query for the language model advisor.
func (q *Query) Preferences() llm.Preferences {
	prefs := llm.Preferences{Taste: q.MainTaste, Purpose: q.MainPurpose}
	for _, c := range q.Companions {
		prefs.Companions = append(prefs.Companions, llm.Companion{
			Relationship: c.Relationship,
			Taste:        c.Taste,
			Purpose:      c.Purpose,
		})
	}
	return prefs
}

// Candidate is a scored place in a master pool.
type Candidate struct {
	place.Place
	Score  float64      `json:"score"`
	Center place.LatLng `json:"center"`
}

// Recommendation is a served candidate with everything a client needs to
// render it.
type Recommendation struct {
	Rank        int            `json:"rank"`
	PlaceID     string         `json:"place_id"`
	Name        string         `json:"name"`
	Area        string         `json:"area"`
	District    string         `json:"district,omitempty"`
	Address     string         `json:"address,omitempty"`
	RoadAddress string         `json:"road_address"`
	Description string         `json:"description,omitempty"`
	HomepageURL string         `json:"homepage_url,omitempty"`
	Tags        []string       `json:"tags"`
	Center      place.LatLng   `json:"center"`
	Score       float64        `json:"score"`
	Crowd       string         `json:"crowd"`
	Stations    []string       `json:"stations"`
	NearbyBest  []string       `json:"nearby_best"`
	TravelTimes []string       `json:"travel_times"`
	Distances   []string       `json:"distances"`
	Links       areas.MapLinks `json:"links"`
	Photo       *photo.Photo   `json:"photo,omitempty"`
	Summary     string         `json:"summary"`
	Reason      llm.Reason     `json:"reason"`
}

// Response is the result of one recommendation pass.
type Response struct {
	SessionID string           `json:"session_id"`
	Signature string           `json:"signature"`
	Results   []Recommendation `json:"results"`

	// Fallback is set when the batch was completed from the master pool with
	// duplicates allowed, so places served earlier may repeat.
	Fallback bool `json:"fallback"`
	Stage    int  `json:"stage"`
	PoolSize int  `json:"pool_size"`
}

// AreaResult is one ranked area from RecommendAreas.
type AreaResult struct {
	Rank        int            `json:"rank"`
	Name        string         `json:"name"`
	District    string         `json:"district,omitempty"`
	Center      place.LatLng   `json:"center"`
	PlaceCount  int            `json:"place_count"`
	Crowd       string         `json:"crowd"`
	Score       float64        `json:"score"`
	KeywordHits []string       `json:"keyword_hits"`
	Vibe        []string       `json:"vibe"`
	TravelTimes []string       `json:"travel_times"`
	Links       areas.MapLinks `json:"links"`
	Summary     string         `json:"summary"`
}

// AreaResponse is the result of RecommendAreas.
type AreaResponse struct {
	Areas []AreaResult `json:"areas"`

	// Fallback is set when the catalog was empty and the curated areas were
	// ranked instead.
	Fallback       bool   `json:"fallback"`
	FallbackReason string `json:"fallback_reason,omitempty"`
	Reranked       bool   `json:"reranked"`
}

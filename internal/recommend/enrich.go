// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"context"

	"github.com/tomtom215/dongnae/internal/areas"
	"github.com/tomtom215/dongnae/internal/llm"
	"github.com/tomtom215/dongnae/internal/place"
)

// enrich turns served candidates into client-ready recommendations. Photos
// are not repeated within one batch.
func (e *Engine) enrich(ctx context.Context, q *Query, crowdPref string, items []Candidate, places []place.Place) []Recommendation {
	out := make([]Recommendation, 0, len(items))
	usedPhotos := make(map[string]struct{}, len(items))
	travelers := q.Travelers()
	prefs := q.Preferences()

	for i := range items {
		c := &items[i]
		dest := areas.Destination{Name: c.Area, District: c.District, Center: c.Center}
		crowd := e.crowdLevel(ctx, c.Area, crowdPref)

		road := place.ToRoadAddress(c.Address)
		if road == "" {
			road = "서울 " + c.Area
		}

		rec := Recommendation{
			Rank:        i + 1,
			PlaceID:     c.ID,
			Name:        c.Name,
			Area:        c.Area,
			District:    c.District,
			Address:     c.Address,
			RoadAddress: road,
			Description: c.Description,
			HomepageURL: c.HomepageURL,
			Tags:        nonNil(c.Tags),
			Center:      c.Center,
			Score:       c.Score,
			Crowd:       crowd,
			Stations:    nonNil(e.deps.Areas.Stations(c.Area)),
			NearbyBest:  []string{},
			TravelTimes: areas.TravelTimeLines(travelers, dest),
			Distances:   nonNil(areas.DistanceLines(travelers, dest, places)),
			Links:       areas.Links(c.Area),
			Summary:     llm.QuickReason(c.Area, q.MainTaste, q.MainPurpose),
		}
		if a, ok := e.deps.Areas.Lookup(c.Area); ok {
			rec.NearbyBest = nonNil(a.NearbyBest)
		}

		if e.deps.Photos != nil {
			if p, ok := e.deps.Photos.Find(ctx, c.Area, e.deps.Areas.SearchTerms(c.Area), usedPhotos); ok {
				usedPhotos[p.URL] = struct{}{}
				rec.Photo = &p
			}
		}

		if e.deps.Advisor != nil {
			rec.Reason = e.deps.Advisor.Reason(ctx, llm.ReasonRequest{
				Area:        c.Area,
				District:    c.District,
				PlaceName:   c.Name,
				Prefs:       prefs,
				Crowd:       crowd,
				Vibe:        e.deps.Areas.Vibe(c.Area),
				NearbyBest:  rec.NearbyBest,
				Keywords:    e.deps.Areas.NearbyKeywords(c.Area),
				TravelTimes: rec.TravelTimes,
			})
		} else {
			rec.Reason = llm.FallbackReason(c.Area, q.MainTaste, q.MainPurpose)
		}

		out = append(out, rec)
	}
	return out
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package place

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SeoulCityHall is used as the center of anything without coordinates.
var SeoulCityHall = LatLng{Lat: 37.5665, Lng: 126.9780}

// Place is a normalized point of interest.
//
// Coord is nil when the source row had no usable coordinate pair; it is never
// half populated.
type Place struct {
	ID          string   `json:"place_id"`
	Name        string   `json:"name"`
	Area        string   `json:"area"`
	Address     string   `json:"address,omitempty"`
	District    string   `json:"district,omitempty"`
	Tags        []string `json:"tags"`
	Description string   `json:"description,omitempty"`
	HomepageURL string   `json:"homepage_url,omitempty"`
	Coord       *LatLng  `json:"coord,omitempty"`
}

// Center returns the place coordinate, or Seoul City Hall when unknown.
func (p *Place) Center() LatLng {
	if p.Coord != nil {
		return *p.Coord
	}
	return SeoulCityHall
}

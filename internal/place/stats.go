// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package place

// Stats counts data quality problems in a normalized batch.
type Stats struct {
	Total            int `json:"total"`
	AreaEmpty        int `json:"area_empty"`
	DistrictEmpty    int `json:"district_empty"`
	PlaceholderNames int `json:"placeholder_names"`
	CodeNames        int `json:"code_names"`
	WithCoords       int `json:"with_coords"`
}

func (s *Stats) observe(p *Place, rejectedNames int) {
	s.Total++
	if p.Area == "" {
		s.AreaEmpty++
	}
	if p.District == "" {
		s.DistrictEmpty++
	}
	if p.Name == unknownName {
		s.PlaceholderNames++
	}
	if rejectedNames > 0 {
		s.CodeNames++
	}
	if p.Coord != nil {
		s.WithCoords++
	}
}

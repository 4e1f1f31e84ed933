// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package areas

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/dongnae/internal/place"
)

// Start location scopes.
const (
	ScopeSeoul   = "서울 내"
	ScopeOutside = "서울 외부"
)

const earthRadiusKm = 6371.0

// StartLocation is where a person sets off from. Si is only meaningful
// outside Seoul, Gu only inside.
type StartLocation struct {
	Scope string `json:"scope" validate:"omitempty,oneof='서울 내' '서울 외부'"`
	Si    string `json:"si,omitempty" validate:"max=40"`
	Gu    string `json:"gu,omitempty" validate:"max=40"`
	Dong  string `json:"dong,omitempty" validate:"max=40"`
}

// Empty reports whether no location detail was given.
func (s StartLocation) Empty() bool {
	return strings.TrimSpace(s.Gu) == "" && strings.TrimSpace(s.Dong) == "" && strings.TrimSpace(s.Si) == ""
}

// Destination is the subset of an area or place needed for travel estimates.
type Destination struct {
	Name     string
	District string
	Center   place.LatLng
}

// Traveler is a labeled start location ("본인", "친구", "동행자 1").
type Traveler struct {
	Label string
	Start StartLocation
}

// EstimateTravelTime returns a rough public-transport duration in minutes and
// the mode used.
//
//	outside Seoul          90 (지하철/버스)
//	same district          25
//	start dong names area  15
//	district known         50
//	otherwise              55
func EstimateTravelTime(start StartLocation, dest Destination) (int, string) {
	if start.Scope == ScopeOutside {
		return 90, "지하철/버스"
	}
	gu := strings.TrimSpace(start.Gu)
	if gu != "" && dest.District != "" && gu == strings.TrimSpace(dest.District) {
		return 25, "지하철"
	}
	if start.Dong != "" && dest.Name != "" && strings.Contains(start.Dong, dest.Name) {
		return 15, "지하철"
	}
	if gu != "" {
		return 50, "지하철"
	}
	return 55, "지하철"
}

// TravelTimeLines formats "{label}: 약 {n}분 ({mode})" for every traveler
// with at least one location detail.
func TravelTimeLines(travelers []Traveler, dest Destination) []string {
	lines := make([]string, 0, len(travelers))
	for _, t := range travelers {
		if t.Start.Empty() {
			continue
		}
		mins, mode := EstimateTravelTime(t.Start, dest)
		if mins <= 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: 약 %d분 (%s)", t.Label, mins, mode))
	}
	return lines
}

// HaversineKm is the great-circle distance between a and b.
func HaversineKm(a, b place.LatLng) float64 {
	p1 := a.Lat * math.Pi / 180
	p2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	s := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(p1)*math.Cos(p2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
}

// StartCenter estimates where a start location is by averaging the
// coordinates of catalog places whose address mentions its dong, or its gu
// when no dong is given.
func StartCenter(places []place.Place, start StartLocation) (place.LatLng, bool) {
	key := strings.TrimSpace(start.Dong)
	if key == "" {
		key = strings.TrimSpace(start.Gu)
	}
	if key == "" {
		return place.LatLng{}, false
	}

	var sumLat, sumLng float64
	n := 0
	for i := range places {
		p := &places[i]
		if p.Coord == nil || !strings.Contains(p.Address, key) {
			continue
		}
		sumLat += p.Coord.Lat
		sumLng += p.Coord.Lng
		n++
	}
	if n == 0 {
		return place.LatLng{}, false
	}
	return place.LatLng{Lat: sumLat / float64(n), Lng: sumLng / float64(n)}, true
}

// DistanceLines formats "{label}: 약 {km}km" for every traveler whose start
// can be located among places.
func DistanceLines(travelers []Traveler, dest Destination, places []place.Place) []string {
	lines := make([]string, 0, len(travelers))
	for _, t := range travelers {
		from, ok := StartCenter(places, t.Start)
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: 약 %.1fkm", t.Label, HaversineKm(from, dest.Center)))
	}
	return lines
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package place

import (
	"crypto/sha1" //nolint:gosec // content ids, not a security boundary
	"encoding/hex"
	"math"
	"strings"

	"github.com/rs/zerolog"
)

// maxRejectSamples caps how many rejected name values are logged per record.
const maxRejectSamples = 5

type verdict uint8

const (
	skip verdict = iota
	accept
	reject
)

// fieldRule resolves one Place field: the first key (in order) whose value
// the check accepts wins.
type fieldRule struct {
	keys  []string
	check func(string) verdict
}

func acceptAny(string) verdict { return accept }

func koreanName(v string) verdict {
	switch {
	case IsCode(v):
		return reject
	case HasHangul(v):
		return accept
	default:
		return skip
	}
}

var (
	nameRule = fieldRule{
		keys: []string{
			"NAME", "name", "TITLE", "title", "PLACE_NM", "PLACE_NAME", "POI_NM",
			"TOUR_NM", "SIGHT_NM", "NM", "SUBJECT", "TRRSRT_NM", "TRRSRT_NAME", "FACI_NM",
		},
		check: koreanName,
	}
	addressRule  = fieldRule{keys: []string{"ADDR", "ADDR_1", "ADDR1", "ADDRESS", "ROAD_ADDR", "ADDR_NM"}, check: acceptAny}
	descRule     = fieldRule{keys: []string{"DESC", "DESCRIPTION", "CONTENT", "DTL_CN"}, check: acceptAny}
	homepageRule = fieldRule{keys: []string{"HOMEPAGE", "URL", "HOMEPAGE_URL", "HMPG_URL"}, check: acceptAny}
	districtRule = fieldRule{keys: []string{"GU_NM", "GU", "SGG_NM", "SIGUNGU", "SIGUNGU_NM"}, check: acceptAny}
	latRule      = fieldRule{keys: []string{"LAT", "LATITUDE", "Y", "MAPY"}, check: acceptAny}
	lngRule      = fieldRule{keys: []string{"LNG", "LON", "LONGITUDE", "X", "MAPX"}, check: acceptAny}
	idRule       = fieldRule{keys: []string{"ID", "PLACE_ID", "POI_ID", "SEQ", "MNG_NO", "관리번호"}, check: acceptAny}

	tagKeys = []string{"THEMA", "THEME", "TAG", "TAGS", "CATEGORY", "CLASS"}
)

// unknownName is the placeholder for rows without any usable name.
var unknownName = func() string {
	sum := sha1.Sum([]byte("unknown")) //nolint:gosec
	return "이름미상-" + hex.EncodeToString(sum[:])[:6]
}()

// resolve applies the rule to rec. Values the check rejects are appended to
// rejected when it is non-nil.
func (fr fieldRule) resolve(rec RawRecord, rejected *[]string) string {
	for _, key := range fr.keys {
		v, ok := rec.lookup([]string{key})
		if !ok {
			continue
		}
		switch fr.check(v) {
		case accept:
			return v
		case reject:
			if rejected != nil {
				*rejected = append(*rejected, v)
			}
		}
	}
	return ""
}

// Normalizer converts RawRecords into Places.
type Normalizer struct {
	logger zerolog.Logger
}

// NewNormalizer creates a Normalizer that reports rejected names to logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return &Normalizer{logger: logger.With().Str("component", "normalizer").Logger()}
}

// Normalize never fails. The returned Place always has a non-empty Name and ID.
func (n *Normalizer) Normalize(raw RawRecord) Place {
	p, _ := n.normalize(raw)
	return p
}

func (n *Normalizer) normalize(raw RawRecord) (Place, int) {
	var rejected []string
	name := nameRule.resolve(raw, &rejected)
	if name == "" {
		name = scanForName(raw)
	}
	resolved := name
	if name == "" {
		name = unknownName
	}
	if len(rejected) > 0 {
		sample := rejected
		if len(sample) > maxRejectSamples {
			sample = sample[:maxRejectSamples]
		}
		n.logger.Debug().Strs("rejected", sample).Int("count", len(rejected)).Msg("Name candidates rejected as codes")
	}

	address := addressRule.resolve(raw, nil)
	district := districtRule.resolve(raw, nil)
	if district == "" {
		district = ExtractDistrict(address)
	}

	area := ExtractArea(address)
	if area == "" {
		area = ExtractArea(name)
	}

	id := idRule.resolve(raw, nil)
	if id == "" {
		id = ContentID(resolved, address)
	}

	return Place{
		ID:          id,
		Name:        name,
		Area:        area,
		Address:     address,
		District:    district,
		Tags:        extractTags(raw),
		Description: descRule.resolve(raw, nil),
		HomepageURL: homepageRule.resolve(raw, nil),
		Coord:       extractCoord(raw),
	}, len(rejected)
}

// NormalizeAll normalizes a batch and logs data quality counters.
func (n *Normalizer) NormalizeAll(rows []RawRecord) ([]Place, Stats) {
	places := make([]Place, 0, len(rows))
	var stats Stats
	for _, row := range rows {
		p, rejected := n.normalize(row)
		stats.observe(&p, rejected)
		places = append(places, p)
	}
	n.logger.Info().
		Int("total", stats.Total).
		Int("area_empty", stats.AreaEmpty).
		Int("district_empty", stats.DistrictEmpty).
		Int("placeholder_names", stats.PlaceholderNames).
		Int("code_names", stats.CodeNames).
		Int("with_coords", stats.WithCoords).
		Msg("Normalized catalog rows")
	return places, stats
}

// ContentID is the SHA-1 hex digest of "name|address". Rows without a name
// hash an empty name, not the placeholder.
func ContentID(name, address string) string {
	sum := sha1.Sum([]byte(name + "|" + address)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// scanForName looks through every string value, in key order, for a Hangul
// value that is neither a code nor address shaped.
func scanForName(raw RawRecord) string {
	for _, k := range raw.keys() {
		v := raw[k]
		if v.Kind() != KindString {
			continue
		}
		s := v.Text()
		if s == "" || IsCode(s) || LooksLikeAddress(s) {
			continue
		}
		if HasHangul(s) {
			return s
		}
	}
	return ""
}

func extractTags(raw RawRecord) []string {
	tags := []string{}
	for _, key := range tagKeys {
		v, ok := raw.lookup([]string{key})
		if !ok {
			continue
		}
		for _, t := range strings.Split(strings.ReplaceAll(v, "/", ","), ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

func extractCoord(raw RawRecord) *LatLng {
	lat, okLat := parseCoord(latRule.resolve(raw, nil))
	lng, okLng := parseCoord(lngRule.resolve(raw, nil))
	if !okLat || !okLng {
		return nil
	}
	return &LatLng{Lat: lat, Lng: lng}
}

func parseCoord(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, ok := String(s).Float()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

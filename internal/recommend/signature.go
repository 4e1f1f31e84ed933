// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/goccy/go-json"
)

// Field order is alphabetical so the encoding is key-sorted.
type sigLocation struct {
	Dong  string `json:"dong"`
	Gu    string `json:"gu"`
	Scope string `json:"scope"`
	Si    string `json:"si"`
}

type sigPerson struct {
	Loc     sigLocation `json:"loc"`
	Purpose string      `json:"purpose"`
	Rel     string      `json:"rel"`
	Taste   string      `json:"taste"`
}

type sigCore struct {
	CrowdPref   string      `json:"crowd_pref"`
	MainPurpose string      `json:"main_purpose"`
	MainTaste   string      `json:"main_taste"`
	People      []sigPerson `json:"people"`
}

// normText trims, lowercases and collapses internal whitespace.
func normText(s string) string {
	return strings.Join(strings.Fields(fold(s)), " ")
}

// MakeSignature fingerprints the normalized query. Queries that differ only in
// whitespace or letter case produce byte-identical signatures. The primary
// user's start location is not part of the signature.
func MakeSignature(q *Query) string {
	core := sigCore{
		CrowdPref:   strings.TrimSpace(q.CrowdPref),
		MainPurpose: normText(q.MainPurpose),
		MainTaste:   normText(q.MainTaste),
		People:      make([]sigPerson, 0, len(q.Companions)),
	}
	for _, c := range q.Companions {
		core.People = append(core.People, sigPerson{
			Loc: sigLocation{
				Dong:  normText(c.Start.Dong),
				Gu:    normText(c.Start.Gu),
				Scope: strings.TrimSpace(c.Start.Scope),
				Si:    normText(c.Start.Si),
			},
			Purpose: normText(c.Purpose),
			Rel:     normText(c.Relationship),
			Taste:   normText(c.Taste),
		})
	}

	data, err := json.MarshalNoEscape(core)
	if err != nil {
		// Only strings and slices are encoded; this cannot fail.
		panic(err)
	}
	return string(data)
}

// CrowdPrefFromSignature recovers the crowd preference from a signature,
// defaulting to CrowdModerate.
func CrowdPrefFromSignature(signature string) string {
	var core struct {
		CrowdPref string `json:"crowd_pref"`
	}
	if err := json.Unmarshal([]byte(signature), &core); err == nil && IsCrowdLevel(core.CrowdPref) {
		return core.CrowdPref
	}
	return CrowdModerate
}

// SignatureHash is a short stable digest of a signature for logs and storage
// keys.
func SignatureHash(signature string) string {
	sum := sha256.Sum256([]byte(signature))
	return hex.EncodeToString(sum[:8])
}

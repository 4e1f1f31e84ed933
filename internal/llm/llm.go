// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package llm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	defaultTaste   = "다양한 취향"
	defaultPurpose = "여러 목적"

	maxBullets = 3

	// bulletSplitMinLen is the length above which a single sentence is split
	// further on ';' and '•'.
	bulletSplitMinLen = 30
)

var (
	sentenceEnd = regexp.MustCompile(`([.!?。])\s+`)
	bulletMark  = regexp.MustCompile(`[;•]`)
)

// Companion is a companion's stated preferences.
type Companion struct {
	Relationship string `json:"relationship"`
	Taste        string `json:"taste"`
	Purpose      string `json:"purpose"`
}

// Preferences are the query fields sent to the model.
type Preferences struct {
	Taste      string      `json:"taste"`
	Purpose    string      `json:"purpose"`
	Companions []Companion `json:"companions"`
}

// AreaHint describes one rerank candidate.
type AreaHint struct {
	Area        string   `json:"area"`
	Gu          string   `json:"gu"`
	Crowd       string   `json:"crowd"`
	ScoreHint   float64  `json:"score_hint"`
	KeywordHits []string `json:"keyword_hits"`
}

// ReasonRequest is the context for one recommendation reason.
type ReasonRequest struct {
	Area        string      `json:"area"`
	District    string      `json:"district,omitempty"`
	PlaceName   string      `json:"place,omitempty"`
	Prefs       Preferences `json:"prefs"`
	Crowd       string      `json:"crowd"`
	Vibe        []string    `json:"vibe,omitempty"`
	NearbyBest  []string    `json:"nearby_best,omitempty"`
	Keywords    []string    `json:"keywords,omitempty"`
	TravelTimes []string    `json:"travel_times,omitempty"`
}

// Course lists short suggestions per category.
type Course struct {
	Culture  []string `json:"culture"`
	Cafe     []string `json:"cafe"`
	Food     []string `json:"food"`
	Activity []string `json:"activity"`
}

// Reason is why an area was recommended.
type Reason struct {
	OneLiner string   `json:"one_liner"`
	Bullets  []string `json:"bullets"`
	Course   Course   `json:"course"`

	// Generated is false for template reasons.
	Generated bool `json:"generated"`
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

// QuickReason is the one-line summary shown in result lists.
func QuickReason(area, taste, purpose string) string {
	return fmt.Sprintf("%s은(는) %s과(와) %s에 맞춰 동선이 깔끔합니다.",
		area, orDefault(taste, defaultTaste), orDefault(purpose, defaultPurpose))
}

// FallbackReason is the three-sentence template used when the model is
// disabled or fails.
func FallbackReason(area, taste, purpose string) Reason {
	text := fmt.Sprintf("%s은(는) %s과(와) %s에 맞춘 동선이 잘 맞습니다. ",
		area, orDefault(taste, defaultTaste), orDefault(purpose, defaultPurpose)) +
		"주변에 선택지가 모여 있어 일정 구성 부담이 낮습니다. " +
		"취향 키워드와 연결된 포인트를 중심으로 코스를 잡기 좋습니다."
	return Reason{
		OneLiner: text,
		Bullets:  SplitBullets(text),
		Course:   emptyCourse(),
	}
}

func emptyCourse() Course {
	return Course{Culture: []string{}, Cafe: []string{}, Food: []string{}, Activity: []string{}}
}

// SplitBullets splits text into at most three sentences. Text without
// sentence breaks that is longer than 30 characters is also split on ';' and
// '•'.
func SplitBullets(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	var bullets []string
	for _, part := range strings.Split(sentenceEnd.ReplaceAllString(text, "$1\x00"), "\x00") {
		if part = strings.TrimSpace(part); part != "" {
			bullets = append(bullets, part)
		}
	}

	if len(bullets) <= 1 && utf8.RuneCountInString(text) > bulletSplitMinLen {
		var chunks []string
		for _, chunk := range bulletMark.Split(text, -1) {
			chunk = strings.TrimSpace(chunk)
			if chunk != "" && !contains(chunks, chunk) {
				chunks = append(chunks, chunk)
			}
		}
		if len(chunks) > 1 {
			bullets = chunks
		}
	}

	if len(bullets) > maxBullets {
		bullets = bullets[:maxBullets]
	}
	return bullets
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ApplyOrder reorders names by ranked. Ranked entries that are not in names,
// or repeat, are dropped; names the ranking left out follow in their original
// order.
func ApplyOrder(names, ranked []string) []string {
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	out := make([]string, 0, len(names))
	placed := make(map[string]bool, len(names))
	for _, r := range ranked {
		r = strings.TrimSpace(r)
		if known[r] && !placed[r] {
			placed[r] = true
			out = append(out, r)
		}
	}
	for _, n := range names {
		if !placed[n] {
			placed[n] = true
			out = append(out, n)
		}
	}
	return out
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"hash/fnv"
	"math/rand"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/dongnae/internal/place"
)

// maxJitter bounds the query-seeded tie breaker added to every pool score.
const maxJitter = 0.01

var tokenStrip = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// fold applies NFKC and lowercasing. cases.Caser is not safe for concurrent
// use, so one is created per call.
func fold(s string) string {
	return cases.Lower(language.Und).String(norm.NFKC.String(s))
}

// Tokenize splits text into lowercase tokens of at least two characters after
// replacing everything but letters, digits and whitespace with spaces.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	cleaned := tokenStrip.ReplaceAllString(fold(text), " ")
	var tokens []string
	for _, t := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(t) >= 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// UserText joins the main taste and purpose with every companion's taste and
// purpose; it is the text the master pool is scored against.
func UserText(q *Query) string {
	tastes := make([]string, 0, len(q.Companions))
	purposes := make([]string, 0, len(q.Companions))
	for _, c := range q.Companions {
		tastes = append(tastes, c.Taste)
		purposes = append(purposes, c.Purpose)
	}
	return strings.Join([]string{
		q.MainTaste,
		q.MainPurpose,
		strings.Join(tastes, " "),
		strings.Join(purposes, " "),
	}, " ")
}

// PoolOptions tune BuildMasterPool.
type PoolOptions struct {
	Weights  Weights
	Denylist []string
}

// DefaultPoolOptions returns the stock weights and denylist.
func DefaultPoolOptions() PoolOptions {
	cfg := DefaultConfig()
	return PoolOptions{Weights: cfg.Weights, Denylist: cfg.Denylist}
}

// Excluded reports whether a place hits the denylist.
func (o PoolOptions) Excluded(name, address string) bool {
	target := strings.TrimSpace(name + " " + address)
	for _, d := range o.Denylist {
		if d != "" && strings.Contains(target, d) {
			return true
		}
	}
	return false
}

// Eligible reports whether a normalized place may enter a master pool: not
// denylisted, with a Korean area, and with a Korean name when it has one.
func (o PoolOptions) Eligible(p *place.Place) bool {
	if o.Excluded(p.Name, p.Address) {
		return false
	}
	if p.Area == "" || !place.HasHangul(p.Area) {
		return false
	}
	if p.Name != "" && !place.HasHangul(p.Name) {
		return false
	}
	return true
}

// BuildMasterPool scores every eligible place against userText and
// extraKeywords and returns them sorted by descending score. Identical
// arguments always produce an identical order.
func BuildMasterPool(places []place.Place, userText string, extraKeywords []string, opts PoolOptions) []Candidate {
	if len(places) == 0 {
		return []Candidate{}
	}

	userTokens := Tokenize(userText)
	extras := make([]string, 0, len(extraKeywords))
	for _, k := range extraKeywords {
		if k = fold(strings.TrimSpace(k)); k != "" {
			extras = append(extras, k)
		}
	}

	pool := make([]Candidate, 0, len(places))
	for i := range places {
		p := places[i]
		if !opts.Eligible(&p) {
			continue
		}
		pool = append(pool, Candidate{
			Place:  p,
			Score:  scorePlace(&p, userTokens, extras, opts.Weights),
			Center: p.Center(),
		})
	}

	rng := rand.New(rand.NewSource(jitterSeed(userText))) //nolint:gosec // tie breaking, not security
	for i := range pool {
		pool[i].Score += rng.Float64() * maxJitter
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})
	return pool
}

// BuildMasterPoolFromRecords normalizes raw catalog rows and builds a pool
// from them.
func BuildMasterPoolFromRecords(n *place.Normalizer, rows []place.RawRecord, userText string, extraKeywords []string, opts PoolOptions) []Candidate {
	places, _ := n.NormalizeAll(rows)
	return BuildMasterPool(places, userText, extraKeywords, opts)
}

// scorePlace adds the user token weight per token and the extra keyword
// weight per keyword found in the place's name, tags and description.
// extras must already be folded.
func scorePlace(p *place.Place, userTokens, extras []string, w Weights) float64 {
	text := fold(strings.Join([]string{p.Name, strings.Join(p.Tags, " "), p.Description}, " "))
	score := 0.0
	for _, t := range userTokens {
		if strings.Contains(text, t) {
			score += w.UserToken
		}
	}
	for _, k := range extras {
		if strings.Contains(text, k) {
			score += w.ExtraKeyword
		}
	}
	return score
}

func jitterSeed(userText string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(userText))
	return int64(h.Sum64() % 10000)
}

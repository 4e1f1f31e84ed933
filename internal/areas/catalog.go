// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package areas

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/tchap/go-patricia/v2/patricia"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/dongnae/internal/place"
)

//go:embed areas.yaml
var embeddedCatalog []byte

// Area is one curated neighborhood.
type Area struct {
	Name       string       `yaml:"name" json:"name"`
	Slug       string       `yaml:"-" json:"slug"`
	District   string       `yaml:"district" json:"district"`
	Center     place.LatLng `yaml:"center" json:"center"`
	Address    string       `yaml:"address" json:"address"`
	Vibe       []string     `yaml:"vibe" json:"vibe"`
	NearbyBest []string     `yaml:"nearby_best" json:"nearby_best"`
	Stations   []string     `yaml:"stations" json:"stations"`
	Keywords   []string     `yaml:"keywords" json:"keywords,omitempty"`
}

type catalogFile struct {
	Areas []Area `yaml:"areas"`
}

// Catalog is an immutable, indexed set of areas. It is safe for concurrent use.
type Catalog struct {
	areas  []Area
	byName map[string]int
	trie   *patricia.Trie
}

// Load parses a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse area catalog: %w", err)
	}

	c := &Catalog{
		areas:  make([]Area, 0, len(file.Areas)),
		byName: make(map[string]int, len(file.Areas)),
		trie:   patricia.NewTrie(),
	}
	for _, a := range file.Areas {
		a.Name = strings.TrimSpace(a.Name)
		if a.Name == "" {
			return nil, fmt.Errorf("parse area catalog: area without name")
		}
		if _, dup := c.byName[a.Name]; dup {
			return nil, fmt.Errorf("parse area catalog: duplicate area %q", a.Name)
		}
		a.Slug = Slug(a.Name)

		idx := len(c.areas)
		c.areas = append(c.areas, a)
		c.byName[a.Name] = idx
		c.trie.Insert(patricia.Prefix(a.Name), idx)
		if a.Slug != "" {
			c.trie.Insert(patricia.Prefix(a.Slug), idx)
		}
	}
	return c, nil
}

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which the tests guard against.
func Default() *Catalog {
	c, err := Load(embeddedCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns every area in catalog order.
func (c *Catalog) All() []Area {
	out := make([]Area, len(c.areas))
	copy(out, c.areas)
	return out
}

// Lookup finds an area by exact name.
func (c *Catalog) Lookup(name string) (Area, bool) {
	idx, ok := c.byName[strings.TrimSpace(name)]
	if !ok {
		return Area{}, false
	}
	return c.areas[idx], true
}

// Vibe returns the affinity tags of an area, nil for unknown areas.
func (c *Catalog) Vibe(name string) []string {
	if a, ok := c.Lookup(name); ok {
		return a.Vibe
	}
	return nil
}

// Stations returns subway stations near the area.
func (c *Catalog) Stations(name string) []string {
	if a, ok := c.Lookup(name); ok {
		return a.Stations
	}
	return nil
}

// Districts returns the sorted distinct districts of the catalog.
func (c *Catalog) Districts() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, a := range c.areas {
		if _, ok := seen[a.District]; ok || a.District == "" {
			continue
		}
		seen[a.District] = struct{}{}
		out = append(out, a.District)
	}
	sort.Strings(out)
	return out
}

// Suggest returns up to limit areas whose Korean name or romanized slug
// starts with prefix, in catalog order.
func (c *Catalog) Suggest(prefix string, limit int) []Area {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return []Area{}
	}

	hits := make(map[int]struct{})
	_ = c.trie.VisitSubtree(patricia.Prefix(prefix), func(_ patricia.Prefix, item patricia.Item) error {
		hits[item.(int)] = struct{}{}
		return nil
	})

	idx := make([]int, 0, len(hits))
	for i := range hits {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	if len(idx) > limit {
		idx = idx[:limit]
	}

	out := make([]Area, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.areas[i])
	}
	return out
}

// RegionKeywords returns the landmark keywords curated for an area.
func (c *Catalog) RegionKeywords(name string) []string {
	if a, ok := c.Lookup(name); ok {
		return a.Keywords
	}
	return nil
}

// NearbyKeywords lists the nearby highlights of an area followed by their own
// region keywords, without duplicates.
func (c *Catalog) NearbyKeywords(name string) []string {
	a, ok := c.Lookup(name)
	if !ok {
		return nil
	}
	var out []string
	for _, n := range a.NearbyBest {
		out = append(out, n)
		out = append(out, c.RegionKeywords(n)...)
	}
	return dedupe(out)
}

// SearchTerms is the area name plus its region keywords with "동" variants,
// used for photo lookups.
func (c *Catalog) SearchTerms(name string) []string {
	return ExpandDongTerms(append([]string{name}, c.RegionKeywords(name)...))
}

// ExpandDongTerms adds a "동"-suffixed variant after every term that lacks
// one.
func ExpandDongTerms(terms []string) []string {
	out := make([]string, 0, len(terms)*2)
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if !strings.HasSuffix(t, "동") && len([]rune(t)) >= 2 {
			out = append(out, t+"동")
		}
	}
	return dedupe(out)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slug romanizes name into a lowercase ASCII identifier ("인사동" -> "insadong").
func Slug(name string) string {
	s := strings.ToLower(unidecode.Unidecode(name))
	return strings.Trim(slugStrip.ReplaceAllString(s, "-"), "-")
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package photo

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/dongnae/internal/cache"
	"github.com/tomtom215/dongnae/internal/logging"
	"github.com/tomtom215/dongnae/internal/metrics"
	"github.com/tomtom215/dongnae/internal/resilience"
)

// SourceName labels gallery calls in metrics and logs.
const SourceName = "photo_gallery"

const (
	// DefaultBaseURL is the gallery search endpoint.
	DefaultBaseURL = "https://apis.data.go.kr/B551011/PhotoGalleryService1/gallerySearchList1"

	credit = "ⓒ한국관광공사 사진갤러리"

	requiredCity = "서울"
	scenicSuffix = "풍경"
	pageSize     = 20

	// Orientation values.
	Landscape = "landscape"
	Portrait  = "portrait"
	Unknown   = "unknown"
)

var (
	urlKeys          = []string{"galWebImageUrl", "galWebImageUrl1", "galWebImageUrl2", "originImgUrl", "imageUrl"}
	titleKeys        = []string{"galTitle", "title"}
	locationKeys     = []string{"galPhotographyLocation", "location"}
	addressKeys      = []string{"addr", "address", "galPhotographyLocation"}
	photographerKeys = []string{"galPhotographer", "photographer"}
	widthKeys        = []string{"galWebImageWidth", "imageWidth", "width"}
	heightKeys       = []string{"galWebImageHeight", "imageHeight", "height"}

	scenicWords = []string{"풍경", "전경", "전망", "야경"}
)

// Photo is a representative image with its attribution.
type Photo struct {
	URL         string `json:"url"`
	Caption     string `json:"caption"`
	Credit      string `json:"credit"`
	Orientation string `json:"orientation"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
}

// Config configures the gallery client.
type Config struct {
	BaseURL string
	Key     string
	Timeout time.Duration

	// TTL is how long search results are reused per keyword.
	TTL time.Duration
}

// Item is one gallery search result, keyed by the source's field names.
type Item map[string]any

// Client searches the tourism photo gallery.
type Client struct {
	cfg      Config
	http     *http.Client
	guard    *resilience.Guard
	searches *cache.Cache[[]Item]
	logger   zerolog.Logger
}

// NewClient creates a client. guard may be nil for unguarded calls.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg Config, guard *resilience.Guard, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{Timeout: cfg.Timeout},
		guard:    guard,
		searches: cache.New[[]Item]("photo_search", cfg.TTL),
		logger:   logger.With().Str("component", "photo").Logger(),
	}
}

// Enabled reports whether a service key is configured.
func (c *Client) Enabled() bool { return c.cfg.Key != "" }

// PurgeExpired drops expired search results.
func (c *Client) PurgeExpired() int { return c.searches.Cleanup() }

// Find picks a photo for area. Each tier tries "서울 {area} 풍경" and then
// every term: first requiring one of terms in the item text, then without
// that filter, and finally without the scenic suffix. URLs in used are
// skipped. Failures return false.
func (c *Client) Find(ctx context.Context, area string, terms []string, used map[string]struct{}) (Photo, bool) {
	area = strings.TrimSpace(area)
	if area == "" {
		return Photo{}, false
	}
	if !c.Enabled() {
		metrics.RecordExternalSkipped(SourceName)
		return Photo{}, false
	}

	subjects := append([]string{area}, terms...)
	tiers := []struct {
		suffix   string
		required []string
	}{
		{scenicSuffix, terms},
		{scenicSuffix, nil},
		{"", nil},
	}
	for _, tier := range tiers {
		for _, subject := range subjects {
			subject = strings.TrimSpace(subject)
			if subject == "" {
				continue
			}
			keyword := strings.TrimSpace(requiredCity + " " + subject + " " + tier.suffix)
			items, err := c.search(ctx, keyword)
			if err != nil {
				if ctx.Err() != nil {
					return Photo{}, false
				}
				continue
			}
			if p, ok := Pick(items, keyword, tier.required, used); ok {
				return p, true
			}
		}
	}
	return Photo{}, false
}

// search returns the gallery items for keyword. Empty results are not cached.
func (c *Client) search(ctx context.Context, keyword string) ([]Item, error) {
	return c.searches.GetOrLoad(ctx, keyword, func(ctx context.Context) ([]Item, bool, error) {
		var items []Item
		call := func(ctx context.Context) error {
			var err error
			items, err = c.fetch(ctx, keyword)
			return err
		}
		var err error
		if c.guard != nil {
			err = c.guard.Do(ctx, call)
		} else {
			err = call(ctx)
		}
		if err != nil {
			c.logger.Debug().Str("keyword", keyword).Str("error", logging.SanitizeError(err)).Msg("gallery search failed")
			return nil, false, err
		}
		return items, len(items) > 0, nil
	})
}

func (c *Client) fetch(ctx context.Context, keyword string) ([]Item, error) {
	params := url.Values{}
	params.Set("serviceKey", c.cfg.Key)
	params.Set("numOfRows", strconv.Itoa(pageSize))
	params.Set("pageNo", "1")
	params.Set("MobileOS", "ETC")
	params.Set("MobileApp", "Dongnae")
	params.Set("_type", "json")
	params.Set("keyword", keyword)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, resilience.Permanent(fmt.Errorf("create request failed: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := resilience.CheckStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var body any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, resilience.Permanent(fmt.Errorf("failed to decode response: %w", err))
	}
	return ExtractItems(body), nil
}

// ExtractItems finds the result items in a decoded gallery response. The
// documented path is response.body.items.item, which holds an object when
// there is a single result. Other shapes are searched for the first "item" or
// "items" list.
func ExtractItems(body any) []Item {
	if node := dig(body, "response", "body", "items", "item"); node != nil {
		if items := toItems(node); len(items) > 0 {
			return items
		}
	}
	return walkItems(body)
}

func dig(v any, path ...string) any {
	for _, key := range path {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v = m[key]
	}
	return v
}

func toItems(v any) []Item {
	switch t := v.(type) {
	case map[string]any:
		return []Item{t}
	case []any:
		out := make([]Item, 0, len(t))
		for _, e := range t {
			if m, ok := e.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

func walkItems(v any) []Item {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if k == "item" || k == "items" {
				if items := toItems(t[k]); len(items) > 0 && items[0].hasImage() {
					return items
				}
			}
		}
		for _, k := range keys {
			if items := walkItems(t[k]); len(items) > 0 {
				return items
			}
		}
	case []any:
		for _, e := range t {
			if items := walkItems(e); len(items) > 0 {
				return items
			}
		}
	}
	return nil
}

// field returns the first non-blank value among keys, matching each key
// exactly first and then case-insensitively.
func (it Item) field(keys ...string) string {
	for _, key := range keys {
		if s := text(it[key]); s != "" {
			return s
		}
		for k, v := range it {
			if strings.EqualFold(k, key) {
				if s := text(v); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func (it Item) hasImage() bool { return it.field(urlKeys...) != "" }

func (it Item) intField(keys ...string) int {
	f, err := strconv.ParseFloat(it.field(keys...), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

type scored struct {
	seoul, scenic, landscape int
	ratio                    float64
	item                     Item
}

// Pick chooses the best item. Items must mention 서울 and, when required is
// non-empty, one of required. Candidates are ordered by Seoul mention,
// scenic words, landscape orientation, and closeness to a 4:3 ratio.
func Pick(items []Item, keyword string, required []string, used map[string]struct{}) (Photo, bool) {
	var candidates []scored
	for _, it := range items {
		u := httpsURL(it.field(urlKeys...))
		if u == "" {
			continue
		}
		if _, seen := used[u]; seen {
			continue
		}

		txt := strings.Join([]string{it.field(titleKeys...), it.field(locationKeys...), it.field(addressKeys...)}, " ")
		if !strings.Contains(txt, requiredCity) {
			continue
		}
		if len(required) > 0 && !containsAny(txt, required) {
			continue
		}

		s := scored{seoul: 1, item: it, ratio: math.Inf(-1)}
		if containsAny(txt, scenicWords) {
			s.scenic = 1
		}
		w, h := it.intField(widthKeys...), it.intField(heightKeys...)
		if w > 0 && h > 0 {
			if w >= h {
				s.landscape = 1
			}
			s.ratio = -math.Abs(float64(w)/float64(h) - 4.0/3.0)
		}
		candidates = append(candidates, s)
	}
	if len(candidates) == 0 {
		return Photo{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if sa, sb := a.total(), b.total(); sa != sb {
			return sa > sb
		}
		return a.ratio > b.ratio
	})
	return build(candidates[0].item, keyword), true
}

// total weighs the Seoul mention above scenic words above orientation.
func (s scored) total() int {
	return 3*s.seoul + 2*s.scenic + s.landscape
}

func build(it Item, keyword string) Photo {
	p := Photo{
		URL:         httpsURL(it.field(urlKeys...)),
		Width:       it.intField(widthKeys...),
		Height:      it.intField(heightKeys...),
		Credit:      credit,
		Orientation: Unknown,
	}

	p.Caption = it.field("galTitle")
	if p.Caption == "" {
		p.Caption = it.field("galPhotographyLocation")
	}
	if p.Caption == "" {
		p.Caption = strings.TrimSpace(strings.TrimSuffix(keyword, scenicSuffix)) + " " + scenicSuffix
	}

	if who := it.field(photographerKeys...); who != "" {
		p.Credit = credit + "-" + who
	}
	if p.Width > 0 && p.Height > 0 {
		p.Orientation = Portrait
		if p.Width >= p.Height {
			p.Orientation = Landscape
		}
	}
	return p
}

func httpsURL(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

func containsAny(s string, terms []string) bool {
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" && strings.Contains(s, t) {
			return true
		}
	}
	return false
}

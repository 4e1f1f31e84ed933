// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package seoul

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/dongnae/internal/cache"
	"github.com/tomtom215/dongnae/internal/logging"
	"github.com/tomtom215/dongnae/internal/metrics"
	"github.com/tomtom215/dongnae/internal/place"
	"github.com/tomtom215/dongnae/internal/resilience"
)

// SourceName labels open data calls in metrics and logs.
const SourceName = "seoul_opendata"

const (
	// DefaultBaseURL is the open data API root.
	DefaultBaseURL = "http://openapi.seoul.go.kr:8088"

	// DefaultCatalogID is the tourist attraction dataset.
	DefaultCatalogID = "OA-21050"

	serviceLookup = "SearchOpenAPIIOValueService"
	cityData      = "citydata"

	placesPageSize = 1000
	cityPageSize   = 200
	lookupPageSize = 5

	cacheKey = "all"
)

// ErrNoServiceName is returned when the dataset's service name cannot be
// resolved.
var ErrNoServiceName = errors.New("seoul: service name not found")

var (
	serviceKeys = []string{
		"OPENAPISERVICE", "openApiService", "openapiService", "serviceName", "SERVICE_NAME",
		"OpenAPIServiceName", "openapi서비스명", "SERVICE", "service", "svc", "SVC",
	}
	identifier = regexp.MustCompile(`^[A-Za-z0-9_]{3,80}$`)

	// crowdLevels are the congestion labels the engine understands.
	crowdLevels = []string{"여유", "약간 붐빔", "붐빔"}
)

// Config configures the open data client.
type Config struct {
	BaseURL string
	Key     string

	// ServiceName skips the service name lookup when set.
	ServiceName string
	CatalogID   string

	Timeout      time.Duration
	CrowdTimeout time.Duration

	ServiceTTL time.Duration
	PlacesTTL  time.Duration
	CrowdTTL   time.Duration
}

func (c *Config) applyDefaults() {
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.CatalogID == "" {
		c.CatalogID = DefaultCatalogID
	}
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.CrowdTimeout <= 0 {
		c.CrowdTimeout = 15 * time.Second
	}
	if c.ServiceTTL <= 0 {
		c.ServiceTTL = 24 * time.Hour
	}
	if c.PlacesTTL <= 0 {
		c.PlacesTTL = 6 * time.Hour
	}
	if c.CrowdTTL <= 0 {
		c.CrowdTTL = 5 * time.Minute
	}
}

// Client reads the Seoul open data API.
type Client struct {
	cfg      Config
	http     *http.Client
	guard    *resilience.Guard
	services *cache.Cache[string]
	places   *cache.Cache[[]place.RawRecord]
	crowds   *cache.Cache[map[string]string]
	logger   zerolog.Logger
}

// NewClient creates a client. guard may be nil for unguarded calls.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg Config, guard *resilience.Guard, logger zerolog.Logger) *Client {
	cfg.applyDefaults()
	return &Client{
		cfg:      cfg,
		http:     &http.Client{},
		guard:    guard,
		services: cache.New[string]("seoul_service", cfg.ServiceTTL),
		places:   cache.New[[]place.RawRecord]("seoul_places", cfg.PlacesTTL),
		crowds:   cache.New[map[string]string]("seoul_crowd", cfg.CrowdTTL),
		logger:   logger.With().Str("component", "seoul").Logger(),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.cfg.Key != "" }

// PurgeExpired drops expired cache entries and returns how many were removed.
func (c *Client) PurgeExpired() int {
	return c.services.Cleanup() + c.places.Cleanup() + c.crowds.Cleanup()
}

// Places returns the raw attraction rows. Without a key it returns nothing
// and makes no calls.
func (c *Client) Places(ctx context.Context) ([]place.RawRecord, error) {
	if !c.Enabled() {
		metrics.RecordExternalSkipped(SourceName)
		return nil, nil
	}
	return c.places.GetOrLoad(ctx, cacheKey, func(ctx context.Context) ([]place.RawRecord, bool, error) {
		svc, err := c.ServiceName(ctx)
		if err != nil {
			return nil, false, err
		}

		var payload any
		if err := c.get(ctx, c.cfg.Timeout, servicePath(svc, 1, placesPageSize), &payload); err != nil {
			c.logger.Warn().Str("error", logging.SanitizeError(err)).Msg("place fetch failed")
			return nil, false, fmt.Errorf("fetch places: %w", err)
		}

		rows := findRows(payload)
		if len(rows) == 0 {
			c.logger.Warn().Interface("result", resultOf(payload)).Msg("place rows empty")
			return nil, false, nil
		}
		records, err := toRecords(rows)
		if err != nil {
			return nil, false, err
		}
		c.logger.Info().Int("rows", len(records)).Str("service", svc).Msg("places fetched")
		return records, true, nil
	})
}

// ServiceName resolves the service name of the attraction dataset: the
// configured override, else the catalog lookup.
func (c *Client) ServiceName(ctx context.Context) (string, error) {
	if svc := strings.TrimSpace(c.cfg.ServiceName); svc != "" {
		return svc, nil
	}
	return c.services.GetOrLoad(ctx, c.cfg.CatalogID, func(ctx context.Context) (string, bool, error) {
		var payload any
		err := c.get(ctx, c.cfg.Timeout, servicePath(serviceLookup, 1, lookupPageSize, c.cfg.CatalogID), &payload)
		if err != nil {
			c.logger.Warn().Str("error", logging.SanitizeError(err)).Msg("service name lookup failed")
			return "", false, fmt.Errorf("service name lookup: %w", err)
		}

		rows := findRows(payload)
		if len(rows) == 0 {
			c.logger.Warn().Interface("result", resultOf(payload)).Msg("service name lookup returned no rows")
		}
		svc := extractServiceName(rows)
		if svc == "" {
			return "", false, ErrNoServiceName
		}
		c.logger.Debug().Str("service", svc).Msg("service name resolved")
		return svc, true, nil
	})
}

// CrowdLevel returns the live congestion level of area, or pref when the
// area is not listed or the call fails.
func (c *Client) CrowdLevel(ctx context.Context, area, pref string) string {
	if !c.Enabled() {
		return pref
	}
	levels, err := c.crowds.GetOrLoad(ctx, cacheKey, func(ctx context.Context) (map[string]string, bool, error) {
		var payload struct {
			CityData struct {
				Row []map[string]any `json:"row"`
			} `json:"CITYDATA"`
		}
		if err := c.get(ctx, c.cfg.CrowdTimeout, servicePath(cityData, 1, cityPageSize), &payload); err != nil {
			return nil, false, err
		}
		levels := make(map[string]string, len(payload.CityData.Row))
		for _, row := range payload.CityData.Row {
			name := scalar(row["AREA_NM"])
			level := scalar(row["AREA_CONGEST_LVL"])
			if name != "" && isCrowdLevel(level) {
				levels[name] = level
			}
		}
		return levels, len(levels) > 0, nil
	})
	if err != nil {
		c.logger.Debug().Str("error", logging.SanitizeError(err)).Msg("crowd lookup failed")
		return pref
	}
	if level, ok := levels[strings.TrimSpace(area)]; ok {
		return level
	}
	return pref
}

// servicePath builds the path-style request for service: /{key}/json/{service}/{start}/{end}/{args...}/
func servicePath(service string, start, end int, args ...string) string {
	parts := []string{"json", service, strconv.Itoa(start), strconv.Itoa(end)}
	parts = append(parts, args...)
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "/" + strings.Join(parts, "/") + "/"
}

func (c *Client) get(ctx context.Context, timeout time.Duration, path string, out any) error {
	call := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		u := c.cfg.BaseURL + "/" + url.PathEscape(c.cfg.Key) + path
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
		if err != nil {
			return resilience.Permanent(fmt.Errorf("create request failed: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if err := resilience.CheckStatus(resp.StatusCode); err != nil {
			return err
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resilience.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		return nil
	}
	if c.guard != nil {
		return c.guard.Do(ctx, call)
	}
	return call(ctx)
}

// findRows returns the first "row" list found in payload, searching objects
// in key order.
func findRows(v any) []any {
	switch t := v.(type) {
	case map[string]any:
		if rows, ok := t["row"].([]any); ok {
			return rows
		}
		for _, k := range sortedKeys(t) {
			if rows := findRows(t[k]); rows != nil {
				return rows
			}
		}
	case []any:
		for _, e := range t {
			if rows := findRows(e); rows != nil {
				return rows
			}
		}
	}
	return nil
}

// resultOf returns the API's RESULT block, which explains empty responses.
func resultOf(payload any) any {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	if r, ok := m["RESULT"]; ok {
		return r
	}
	for _, k := range sortedKeys(m) {
		if inner, ok := m[k].(map[string]any); ok {
			if r, ok := inner["RESULT"]; ok {
				return r
			}
		}
	}
	return nil
}

// extractServiceName looks for a known service key in each row, then for any
// identifier-like value.
func extractServiceName(rows []any) string {
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if svc := firstValue(row, serviceKeys); svc != "" {
			return svc
		}
		for _, k := range sortedKeys(row) {
			var s string
			switch v := row[k].(type) {
			case string:
				s = v
			case float64:
				if v != float64(int64(v)) {
					continue
				}
				s = strconv.FormatInt(int64(v), 10)
			default:
				continue
			}
			if identifier.MatchString(s) {
				return s
			}
		}
	}
	return ""
}

func firstValue(row map[string]any, keys []string) string {
	for _, key := range keys {
		if s := scalar(row[key]); s != "" {
			return s
		}
		for _, k := range sortedKeys(row) {
			if strings.EqualFold(k, key) {
				if s := scalar(row[k]); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// toRecords converts decoded rows to raw records, skipping non-objects.
func toRecords(rows []any) ([]place.RawRecord, error) {
	objects := make([]any, 0, len(rows))
	for _, r := range rows {
		if _, ok := r.(map[string]any); ok {
			objects = append(objects, r)
		}
	}
	data, err := json.Marshal(objects)
	if err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}
	return place.DecodeRecords(data)
}

func isCrowdLevel(s string) bool {
	for _, l := range crowdLevels {
		if s == l {
			return true
		}
	}
	return false
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/dongnae/internal/cache"
	"github.com/tomtom215/dongnae/internal/logging"
	"github.com/tomtom215/dongnae/internal/resilience"
)

// SourceName labels the advisor in metrics and health reports.
const SourceName = "llm"

// ErrDisabled is returned by calls made without an API key.
var ErrDisabled = errors.New("llm: no API key configured")

const (
	reasonPrompt = "너는 서울 내 약속/데이트 장소 추천 서비스의 카피라이터다. " +
		"과장 없이, 3문장으로만 작성한다. " +
		"사용자가 입력한 취향/목적 키워드가 있으면 반드시 문장에 포함한다. " +
		"이모지는 절대 사용하지 않는다. " +
		"추천 이유는 bullets(3문장 리스트)로도 반환하고, " +
		"상세 코스는 culture/cafe/food/activity 각 2~3개씩 간단 키워드로 제시한다. " +
		"출력은 반드시 JSON만 반환한다."
	expandPrompt = "키워드 확장기. JSON만 반환."
	rerankPrompt = "추천 지역 재랭킹. JSON만 반환."

	reasonTemperature = 0.6
	expandTemperature = 0.4
	rerankTemperature = 0.3

	// maxErrorBody bounds how much of an error response is logged.
	maxErrorBody = 512
)

// Config configures the chat completions client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	// ReasonTTL is how long generated reasons are reused.
	ReasonTTL time.Duration
}

// Client calls an OpenAI-compatible chat completions endpoint. Every public
// method degrades to an empty or template result.
type Client struct {
	cfg     Config
	http    *http.Client
	guard   *resilience.Guard
	reasons *cache.Cache[Reason]
	logger  zerolog.Logger
}

// NewClient creates a client. guard may be nil for unguarded calls.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewClient(cfg Config, guard *resilience.Guard, logger zerolog.Logger) *Client {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.ReasonTTL <= 0 {
		cfg.ReasonTTL = time.Hour
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		guard:   guard,
		reasons: cache.New[Reason]("llm_reason", cfg.ReasonTTL),
		logger:  logger.With().Str("component", "llm").Logger(),
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool { return c.cfg.APIKey != "" }

// PurgeExpired drops expired cached reasons.
func (c *Client) PurgeExpired() int { return c.reasons.Cleanup() }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete sends one JSON-mode completion and decodes the message content
// into out.
func (c *Client) complete(ctx context.Context, system string, user any, temperature float64, out any) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	userJSON, err := json.MarshalNoEscape(user)
	if err != nil {
		return fmt.Errorf("marshal prompt: %w", err)
	}
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: string(userJSON)},
		},
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var content string
	call := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
		if err != nil {
			return resilience.Permanent(fmt.Errorf("create request failed: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if err := resilience.CheckStatus(resp.StatusCode); err != nil {
			snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			c.logger.Debug().Int("status", resp.StatusCode).Str("body", logging.RedactSecrets(string(snippet))).Msg("completion rejected")
			return err
		}

		var parsed chatResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return resilience.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}
		if len(parsed.Choices) == 0 {
			return resilience.Permanent(errors.New("completion has no choices"))
		}
		content = parsed.Choices[0].Message.Content
		return nil
	}

	if c.guard != nil {
		err = c.guard.Do(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decode completion content: %w", err)
	}
	return nil
}

func (c *Client) logFailure(op string, err error) {
	if errors.Is(err, ErrDisabled) {
		return
	}
	c.logger.Warn().Str("op", op).Str("error", logging.SanitizeError(err)).Msg("llm call failed, using fallback")
}

type expandPayload struct {
	Taste      string      `json:"taste"`
	Purpose    string      `json:"purpose"`
	Companions []Companion `json:"companions"`
	Format     any         `json:"format"`
}

// ExpandKeywords asks for related search keywords. It returns nil when the
// model is disabled or fails.
func (c *Client) ExpandKeywords(ctx context.Context, prefs Preferences) []string {
	var out struct {
		Keywords []any `json:"keywords"`
	}
	err := c.complete(ctx, expandPrompt, expandPayload{
		Taste:      prefs.Taste,
		Purpose:    prefs.Purpose,
		Companions: nonNilCompanions(prefs.Companions),
		Format:     map[string][]string{"keywords": {"string", "string", "string"}},
	}, expandTemperature, &out)
	if err != nil {
		c.logFailure("expand", err)
		return nil
	}
	return cleanStrings(out.Keywords)
}

type rerankPayload struct {
	Taste      string      `json:"taste"`
	Purpose    string      `json:"purpose"`
	Companions []Companion `json:"companions"`
	Candidates []AreaHint  `json:"candidates"`
	Format     any         `json:"format"`
}

// RerankAreas asks for a preferred order of the hinted areas. The result may
// name unknown areas or omit some; callers pass it through ApplyOrder. It
// returns nil when the model is disabled or fails.
func (c *Client) RerankAreas(ctx context.Context, prefs Preferences, hints []AreaHint) []string {
	if len(hints) == 0 {
		return nil
	}
	var out struct {
		Ranked []any `json:"ranked"`
	}
	err := c.complete(ctx, rerankPrompt, rerankPayload{
		Taste:      prefs.Taste,
		Purpose:    prefs.Purpose,
		Companions: nonNilCompanions(prefs.Companions),
		Candidates: hints,
		Format:     map[string][]string{"ranked": {"area_name"}},
	}, rerankTemperature, &out)
	if err != nil {
		c.logFailure("rerank", err)
		return nil
	}
	return cleanStrings(out.Ranked)
}

type reasonPayload struct {
	Area    string         `json:"area"`
	Crowd   string         `json:"crowd"`
	Taste   string         `json:"taste"`
	Purpose string         `json:"purpose"`
	Context map[string]any `json:"context"`
	Format  any            `json:"format"`
}

var reasonFormat = map[string]any{
	"one_liner": "3 sentences string",
	"bullets":   []string{"sentence1", "sentence2", "sentence3"},
	"course": map[string][]string{
		"culture":  {"string", "string"},
		"cafe":     {"string", "string"},
		"food":     {"string", "string"},
		"activity": {"string", "string"},
	},
}

// Reason writes a three-sentence recommendation reason with a course. Results
// are cached per request; failures return FallbackReason.
func (c *Client) Reason(ctx context.Context, req ReasonRequest) Reason {
	if !c.Enabled() {
		return FallbackReason(req.Area, req.Prefs.Taste, req.Prefs.Purpose)
	}

	key := cache.GenerateKey("reason", req)
	reason, err := c.reasons.GetOrLoad(ctx, key, func(ctx context.Context) (Reason, bool, error) {
		r, err := c.generateReason(ctx, req)
		return r, err == nil, err
	})
	if err != nil {
		c.logFailure("reason", err)
		return FallbackReason(req.Area, req.Prefs.Taste, req.Prefs.Purpose)
	}
	return reason
}

func (c *Client) generateReason(ctx context.Context, req ReasonRequest) (Reason, error) {
	extra := map[string]any{
		"district":     req.District,
		"place":        req.PlaceName,
		"vibe":         req.Vibe,
		"nearby_best":  req.NearbyBest,
		"keywords":     req.Keywords,
		"travel_times": req.TravelTimes,
		"companions":   nonNilCompanions(req.Prefs.Companions),
	}

	var out struct {
		OneLiner string          `json:"one_liner"`
		Bullets  json.RawMessage `json:"bullets"`
		Course   json.RawMessage `json:"course"`
	}
	if err := c.complete(ctx, reasonPrompt, reasonPayload{
		Area:    req.Area,
		Crowd:   req.Crowd,
		Taste:   req.Prefs.Taste,
		Purpose: req.Prefs.Purpose,
		Context: extra,
		Format:  reasonFormat,
	}, reasonTemperature, &out); err != nil {
		return Reason{}, err
	}

	r := Reason{OneLiner: strings.TrimSpace(out.OneLiner), Course: emptyCourse(), Generated: true}

	var bullets []any
	if len(out.Bullets) > 0 && json.Unmarshal(out.Bullets, &bullets) == nil {
		r.Bullets = cleanStrings(bullets)
	}
	if len(r.Bullets) == 0 {
		r.Bullets = SplitBullets(r.OneLiner)
	}

	var course struct {
		Culture  []any `json:"culture"`
		Cafe     []any `json:"cafe"`
		Food     []any `json:"food"`
		Activity []any `json:"activity"`
	}
	if len(out.Course) > 0 && json.Unmarshal(out.Course, &course) == nil {
		r.Course = Course{
			Culture:  cleanStrings(course.Culture),
			Cafe:     cleanStrings(course.Cafe),
			Food:     cleanStrings(course.Food),
			Activity: cleanStrings(course.Activity),
		}
	}

	if r.OneLiner == "" && len(r.Bullets) == 0 {
		return Reason{}, errors.New("completion has no reason text")
	}
	return r, nil
}

// cleanStrings stringifies scalar entries and drops blanks.
func cleanStrings(in []any) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		var s string
		switch t := v.(type) {
		case nil:
			continue
		case string:
			s = t
		default:
			s = fmt.Sprint(t)
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonNilCompanions(c []Companion) []Companion {
	if c == nil {
		return []Companion{}
	}
	return c
}

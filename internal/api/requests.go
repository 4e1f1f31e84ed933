// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dongnae/internal/recommend"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 64 << 10

// suggestLimit caps the number of suggestions per call.
const suggestLimit = 10

// QueryRequest carries the preferences of one query. It is also the body of
// POST /api/v1/areas/rank.
// Text is an alternative to MainTaste and MainPurpose: "취향: 카페\n목적: 데이트"
// or "카페 / 데이트".
type QueryRequest struct {
	Text        string                  `json:"text,omitempty" validate:"max=500"`
	MainTaste   string                  `json:"main_taste,omitempty" validate:"max=200"`
	MainPurpose string                  `json:"main_purpose,omitempty" validate:"max=200"`
	CrowdPref   string                  `json:"crowd_pref,omitempty" validate:"omitempty,crowd"`
	Start       recommend.StartLocation `json:"start"`
	Companions  []recommend.Person      `json:"companions,omitempty" validate:"max=2,dive"`
}

// Query converts the request. Explicit taste and purpose fields win over the
// parsed free text.
func (q *QueryRequest) Query() recommend.Query {
	taste, purpose := recommend.ParseTastePurpose(q.Text)
	if s := strings.TrimSpace(q.MainTaste); s != "" {
		taste = s
	}
	if s := strings.TrimSpace(q.MainPurpose); s != "" {
		purpose = s
	}
	return recommend.Query{
		MainTaste:   taste,
		MainPurpose: purpose,
		CrowdPref:   q.CrowdPref,
		Start:       q.Start,
		Companions:  q.Companions,
	}
}

// RecommendRequest is the body of POST /api/v1/recommendations. A missing
// session id starts a new session.
type RecommendRequest struct {
	SessionID   string                  `json:"session_id,omitempty" validate:"omitempty,sessionid"`
	Text        string                  `json:"text,omitempty" validate:"max=500"`
	MainTaste   string                  `json:"main_taste,omitempty" validate:"max=200"`
	MainPurpose string                  `json:"main_purpose,omitempty" validate:"max=200"`
	CrowdPref   string                  `json:"crowd_pref,omitempty" validate:"omitempty,crowd"`
	Start       recommend.StartLocation `json:"start"`
	Companions  []recommend.Person      `json:"companions,omitempty" validate:"max=2,dive"`
}

// Query converts the request like QueryRequest.Query.
func (req *RecommendRequest) Query() recommend.Query {
	q := QueryRequest{
		Text:        req.Text,
		MainTaste:   req.MainTaste,
		MainPurpose: req.MainPurpose,
		CrowdPref:   req.CrowdPref,
		Start:       req.Start,
		Companions:  req.Companions,
	}
	return q.Query()
}

// RerankRequest is the body of POST /api/v1/recommendations/rerank.
type RerankRequest struct {
	SessionID string `json:"session_id" validate:"required,sessionid"`
	Signature string `json:"signature" validate:"required,signature"`
}

// DislikeRequest is the body of POST /api/v1/recommendations/dislike.
type DislikeRequest struct {
	SessionID string   `json:"session_id" validate:"required,sessionid"`
	Signature string   `json:"signature" validate:"required,signature"`
	Areas     []string `json:"areas" validate:"required,min=1,max=10,dive,required,max=40"`
}

// SuggestRequest holds the query parameters of GET /api/v1/areas/suggest.
type SuggestRequest struct {
	Q     string `json:"q" validate:"required,max=40"`
	Limit int    `json:"limit" validate:"gte=1,lte=10"`
}

var errEmptyBody = errors.New("request body is empty")

// decodeJSON reads a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("request body exceeds %d bytes", maxErr.Limit)
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

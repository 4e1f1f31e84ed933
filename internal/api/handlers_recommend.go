// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/dongnae/internal/logging"
)

// Recommend serves the first or next batch of place recommendations.
//
// @Summary Recommend places
// @Description Returns up to four places, one per area. Repeating the same query with the same session id pages through the feed; a different query resets it. A session id is issued when none is sent.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body RecommendRequest true "Preferences"
// @Success 200 {object} APIResponse{data=recommend.Response}
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 504 {object} APIResponse "Timed out"
// @Router /recommendations [post]
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx, cancel := h.withTimeout(logging.ContextWithSessionID(r.Context(), sessionID))
	defer cancel()

	resp, err := h.engine.Recommend(ctx, sessionID, req.Query())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, resp, started)
}

// Rerank dislikes the whole last batch and serves a new one.
//
// @Summary Replace all results
// @Description Excludes every place of the last batch for this query and returns a fresh batch.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body RerankRequest true "Session and signature"
// @Success 200 {object} APIResponse{data=recommend.Response}
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 404 {object} APIResponse "Unknown session"
// @Failure 409 {object} APIResponse "Signature is not the session's current query"
// @Router /recommendations/rerank [post]
func (h *Handler) Rerank(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req RerankRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	ctx, cancel := h.withTimeout(logging.ContextWithSessionID(r.Context(), req.SessionID))
	defer cancel()

	resp, err := h.engine.RerankAll(ctx, req.SessionID, req.Signature)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, resp, started)
}

// Dislike excludes the named areas and serves a new batch.
//
// @Summary Dislike areas
// @Description Excludes the named areas, and every last-batch place in them, for this query. Dislikes persist per query signature.
// @Tags Recommendations
// @Accept json
// @Produce json
// @Param request body DislikeRequest true "Session, signature and areas"
// @Success 200 {object} APIResponse{data=recommend.Response}
// @Failure 400 {object} APIResponse "Invalid request"
// @Failure 404 {object} APIResponse "Unknown session"
// @Failure 409 {object} APIResponse "Signature is not the session's current query"
// @Router /recommendations/dislike [post]
func (h *Handler) Dislike(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req DislikeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	ctx, cancel := h.withTimeout(logging.ContextWithSessionID(r.Context(), req.SessionID))
	defer cancel()

	resp, err := h.engine.Dislike(ctx, req.SessionID, req.Signature, req.Areas)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, resp, started)
}

// RankAreas ranks areas for a query.
//
// @Summary Rank areas
// @Description Ranks districts by crowd match, keyword hits and vibe. Falls back to the curated areas when the place catalog is empty.
// @Tags Areas
// @Accept json
// @Produce json
// @Param request body QueryRequest true "Preferences"
// @Success 200 {object} APIResponse{data=recommend.AreaResponse}
// @Failure 400 {object} APIResponse "Invalid request"
// @Router /areas/rank [post]
func (h *Handler) RankAreas(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req QueryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	resp, err := h.engine.RecommendAreas(ctx, req.Query())
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, resp, started)
}

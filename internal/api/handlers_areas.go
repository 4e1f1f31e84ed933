// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ListAreas returns the curated area catalog.
//
// @Summary List areas
// @Description Returns the curated neighborhoods with their vibe tags, stations and nearby spots.
// @Tags Areas
// @Produce json
// @Success 200 {object} APIResponse{data=[]areas.Area}
// @Router /areas [get]
func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.areas.All(), time.Now())
}

// SuggestAreas completes an area name from a prefix.
//
// @Summary Suggest areas
// @Description Prefix match on the Korean name or the romanized slug ("ins" matches 인사동).
// @Tags Areas
// @Produce json
// @Param q query string true "Prefix"
// @Param limit query int false "Maximum suggestions (1-10)" default(10)
// @Success 200 {object} APIResponse{data=[]areas.Area}
// @Failure 400 {object} APIResponse "Invalid query"
// @Router /areas/suggest [get]
func (h *Handler) SuggestAreas(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	req := SuggestRequest{
		Q:     strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: getIntParam(r, "limit", suggestLimit),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	respondSuccess(w, r, h.areas.Suggest(req.Q, req.Limit), started)
}

// getIntParam reads an integer query parameter, falling back to def when it
// is absent or malformed.
func getIntParam(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

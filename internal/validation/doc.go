// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by every request handler. Field
// names in errors are json tag paths (companions[0].start.gu), so clients see
// the names they sent.
//
// # Custom Tags
//
//   - crowd: one of 여유, 약간 붐빔, 붐빔
//   - sessionid: 8-64 characters of [A-Za-z0-9_-]
//   - signature: the JSON signature returned with each recommendation response
//
// # Usage
//
//	type RerankRequest struct {
//	    SessionID string `json:"session_id" validate:"required,sessionid"`
//	    Signature string `json:"signature" validate:"required,signature"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, verr)
//	    return
//	}
package validation

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

// Package logging provides zerolog-based structured logging for Dongnae.
//
// A single global logger is configured once at startup:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//	logging.Info().Str("addr", addr).Msg("Server starting")
//
// Components keep their own child logger tagged with a component name:
//
//	logger := logging.WithComponent("seoul")
//
// Request scoped logging picks up request and session ids from the context:
//
//	logging.Ctx(ctx).Warn().Msg("Fallback fill used")
//
// Always finish an event chain with Msg or Send, otherwise nothing is written.
//
// External API keys end up in URLs (the Seoul open data API puts the key in
// the path). Use RedactSecrets or SanitizeError before logging any URL or
// transport error.
package logging

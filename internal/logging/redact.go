// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package logging

import (
	"regexp"
	"strings"
)

const redacted = "[REDACTED]"

var (
	// Seoul open data puts the key in the first path segment: host:8088/{key}/json/...
	pathKeyPattern  = regexp.MustCompile(`(:8088/)[^/\s"]+(/)`)
	queryKeyPattern = regexp.MustCompile(`(?i)((?:servicekey|api_key|apikey|key)=)[^&\s"]+`)
	bearerPattern   = regexp.MustCompile(`(?i)(bearer\s+)[A-Za-z0-9\-._~+/]+=*`)
)

// RedactSecrets removes API keys from URLs and error strings before they are logged.
func RedactSecrets(s string) string {
	if s == "" {
		return s
	}
	s = pathKeyPattern.ReplaceAllString(s, "${1}"+redacted+"${2}")
	s = queryKeyPattern.ReplaceAllString(s, "${1}"+redacted)
	s = bearerPattern.ReplaceAllString(s, "${1}"+redacted)
	return s
}

// SanitizeError returns the redacted error text, or "" for nil.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return RedactSecrets(err.Error())
}

// MaskKey keeps the last four characters of a secret for correlation in logs.
func MaskKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

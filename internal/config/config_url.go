// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package config

import (
	"fmt"
	"net/url"
	"regexp"
)

// serviceNamePattern matches open data service names such as TbVwAttractions.
var serviceNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,80}$`)

// validateHTTPURL validates that an endpoint URL is absolute HTTP/HTTPS.
// Paths are allowed since several APIs are addressed by endpoint; query
// parameters are not, because clients add their own.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"regexp"
	"strings"
)

var (
	tasteLabel   = regexp.MustCompile(`취향\s*[:\-]\s*(.+)`)
	purposeLabel = regexp.MustCompile(`목적\s*[:\-]\s*(.+)`)
)

// ParseTastePurpose splits one free-text field into taste and purpose.
//
//	"취향: 카페\n목적: 데이트" -> ("카페", "데이트")
//	"카페 / 데이트"            -> ("카페", "데이트")
//	"카페\n데이트"             -> ("카페", "데이트")
//	"카페"                     -> ("카페", "")
func ParseTastePurpose(raw string) (taste, purpose string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ""
	}

	if m := tasteLabel.FindStringSubmatch(text); m != nil {
		taste = strings.TrimSpace(firstLine(m[1]))
	}
	if m := purposeLabel.FindStringSubmatch(text); m != nil {
		purpose = strings.TrimSpace(firstLine(m[1]))
	}
	if taste != "" || purpose != "" {
		return taste, purpose
	}

	if before, after, ok := strings.Cut(text, "/"); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after)
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) >= 2 {
		return lines[0], lines[1]
	}
	return text, ""
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}

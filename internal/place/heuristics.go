// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package place

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	langCodePattern  = regexp.MustCompile(`^[a-z]{2,3}$`)
	langTagPattern   = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{2,8})+$`)
	alphaPattern     = regexp.MustCompile(`^[A-Za-z]+$`)
	digitsPattern    = regexp.MustCompile(`^[0-9]+$`)
	alnumPattern     = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	hangulPattern    = regexp.MustCompile(`[가-힣]`)
	hangulRunPattern = regexp.MustCompile(`[가-힣]{2,}`)
	addressPattern   = regexp.MustCompile(`(?i)(로|길|동|구|구청|번지|[0-9]{2,}|-dong|-gu|seoul|서울)`)

	areaPattern          = regexp.MustCompile(`([가-힣]{2,4}동)`)
	romanAreaPattern     = regexp.MustCompile(`([A-Za-z\-]+)-dong`)
	districtPattern      = regexp.MustCompile(`([가-힣]{2,4}구)`)
	romanDistrictPattern = regexp.MustCompile(`([A-Za-z\-]+)-gu`)

	displayStrip  = regexp.MustCompile(`[^0-9가-힣\s\-]`)
	spaceRun      = regexp.MustCompile(`\s+`)
	digitRun      = regexp.MustCompile(`[0-9]+`)
	roadFullCity  = regexp.MustCompile(`(서울\s*[가-힣]{2,4}구\s*[가-힣]{2,4}동)`)
	roadGuAndDong = regexp.MustCompile(`([가-힣]{2,4}구\s*[가-힣]{2,4}동)`)
)

// HasHangul reports whether s contains at least one precomposed Hangul syllable.
func HasHangul(s string) bool {
	return hangulPattern.MatchString(s)
}

// IsLanguageCode reports whether s looks like a language tag ("en", "ko-KR")
// or a very short alphabetic code.
func IsLanguageCode(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if langCodePattern.MatchString(s) || langTagPattern.MatchString(s) {
		return true
	}
	return utf8.RuneCountInString(s) <= 3 && alphaPattern.MatchString(s)
}

// IsNumericCode reports whether s is all digits or a short alphanumeric id.
func IsNumericCode(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if digitsPattern.MatchString(s) {
		return true
	}
	return utf8.RuneCountInString(s) <= 6 && alnumPattern.MatchString(s)
}

// IsCode is true for values that must never be used as a display name.
func IsCode(s string) bool {
	return IsLanguageCode(s) || IsNumericCode(s)
}

// LooksLikeAddress reports whether s contains street or administrative markers.
func LooksLikeAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ExtractArea returns the first neighborhood token ("인사동", or "Insa-dong"
// for romanized text) found in s, or "".
func ExtractArea(s string) string {
	if s == "" {
		return ""
	}
	if m := areaPattern.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if m := romanAreaPattern.FindStringSubmatch(s); m != nil {
		return m[1] + "-dong"
	}
	return ""
}

// ExtractDistrict resolves the "-gu" district of an address. Korean names are
// taken as is; romanized and Hanja names go through the district tables.
// Romanized names missing from the table come back as "<name>-gu".
func ExtractDistrict(address string) string {
	if address == "" {
		return ""
	}
	if m := districtPattern.FindStringSubmatch(address); m != nil {
		return m[1]
	}
	if m := romanDistrictPattern.FindStringSubmatch(address); m != nil {
		if ko, ok := districts.romanized(m[1]); ok {
			return ko
		}
		return m[1] + "-gu"
	}
	if ko, ok := districts.hanja(address); ok {
		return ko
	}
	return ""
}

// PickKoreanName returns the longest run of two or more Hangul syllables
// across the candidates.
func PickKoreanName(candidates ...string) string {
	best := ""
	for _, c := range candidates {
		for _, run := range hangulRunPattern.FindAllString(c, -1) {
			if utf8.RuneCountInString(run) > utf8.RuneCountInString(best) {
				best = run
			}
		}
	}
	return best
}

// DisplayText keeps digits, Hangul, whitespace and hyphens.
func DisplayText(s string) string {
	s = displayStrip.ReplaceAllString(s, "")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// ToRoadAddress shortens an address to "서울 <gu> <dong>" when both parts are
// present, dropping street numbers.
func ToRoadAddress(address string) string {
	if address == "" {
		return ""
	}
	cleaned := digitRun.ReplaceAllString(DisplayText(address), "")
	cleaned = strings.TrimSpace(spaceRun.ReplaceAllString(cleaned, " "))
	if m := roadFullCity.FindString(cleaned); m != "" {
		return m
	}
	if m := roadGuAndDong.FindString(cleaned); m != "" {
		return "서울 " + m
	}
	return cleaned
}

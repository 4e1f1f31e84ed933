// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package areas

import "net/url"

// MapLinks are search links for an area on the common map services.
type MapLinks struct {
	Naver  string `json:"naver"`
	Kakao  string `json:"kakao"`
	Google string `json:"google"`
}

// Links builds map search links for name.
func Links(name string) MapLinks {
	return MapLinks{
		Naver:  "https://map.naver.com/v5/search/" + url.PathEscape(name),
		Kakao:  "https://map.kakao.com/?q=" + url.QueryEscape(name),
		Google: "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(name),
	}
}

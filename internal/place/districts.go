// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package place

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Seoul's 25 autonomous districts by romanized name.
var romanizedDistricts = map[string]string{
	"Jongno":       "종로구",
	"Jung":         "중구",
	"Yongsan":      "용산구",
	"Seongdong":    "성동구",
	"Gwangjin":     "광진구",
	"Dongdaemun":   "동대문구",
	"Jungnang":     "중랑구",
	"Seongbuk":     "성북구",
	"Gangbuk":      "강북구",
	"Dobong":       "도봉구",
	"Nowon":        "노원구",
	"Eunpyeong":    "은평구",
	"Seodaemun":    "서대문구",
	"Mapo":         "마포구",
	"Yangcheon":    "양천구",
	"Gangseo":      "강서구",
	"Guro":         "구로구",
	"Geumcheon":    "금천구",
	"Yeongdeungpo": "영등포구",
	"Dongjak":      "동작구",
	"Gwanak":       "관악구",
	"Seocho":       "서초구",
	"Gangnam":      "강남구",
	"Songpa":       "송파구",
	"Gangdong":     "강동구",
}

// Hanja spellings seen in Chinese-language rows of the catalog.
var hanjaDistricts = map[string]string{
	"江南區":  "강남구",
	"瑞草區":  "서초구",
	"鐘路區":  "종로구",
	"中區":   "중구",
	"麻浦區":  "마포구",
	"龍山區":  "용산구",
	"松坡區":  "송파구",
	"永登浦區": "영등포구",
}

var errFound = errors.New("found")

// districtTables holds both lookup tables as tries. The romanized trie is
// keyed by lowercase name for exact lookups; the Hanja trie is probed at
// every rune offset of an address with VisitPrefixes.
type districtTables struct {
	roman *patricia.Trie
	han   *patricia.Trie
}

var districts = newDistrictTables()

func newDistrictTables() *districtTables {
	t := &districtTables{roman: patricia.NewTrie(), han: patricia.NewTrie()}
	for en, ko := range romanizedDistricts {
		t.roman.Insert(patricia.Prefix(strings.ToLower(en)), ko)
	}
	for zh, ko := range hanjaDistricts {
		t.han.Insert(patricia.Prefix(zh), ko)
	}
	return t
}

func (t *districtTables) romanized(name string) (string, bool) {
	item := t.roman.Get(patricia.Prefix(strings.ToLower(name)))
	if item == nil {
		return "", false
	}
	return item.(string), true
}

// hanja returns the district for the leftmost Hanja district name in s.
func (t *districtTables) hanja(s string) (string, bool) {
	var found string
	for i := 0; i < len(s); {
		err := t.han.VisitPrefixes(patricia.Prefix(s[i:]), func(_ patricia.Prefix, item patricia.Item) error {
			found = item.(string)
			return errFound
		})
		if errors.Is(err, errFound) {
			return found, true
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return "", false
}

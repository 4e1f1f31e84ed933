// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package place

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomtom215/dongnae/internal/logging"
)

func newTestNormalizer(t *testing.T) (*Normalizer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewNormalizer(logging.NewTestLogger(&buf)), &buf
}

func TestNormalize_FullRecord(t *testing.T) {
	t.Parallel()
	n, _ := newTestNormalizer(t)

	p := n.Normalize(RawRecord{
		"POI_NM":   String("쌈지길"),
		"ADDR":     String("서울특별시 종로구 인사동 38"),
		"THEME":    String("공예/쇼핑, 전시"),
		"DTL_CN":   String("공예품 상점이 모인 복합 문화 공간"),
		"HMPG_URL": String("https://ssamzigil.co.kr"),
		"MAPY":     Number(37.5743),
		"MAPX":     String("126.9850"),
		"SEQ":      Number(1042),
	})

	if p.Name != "쌈지길" {
		t.Errorf("Name = %q, want 쌈지길", p.Name)
	}
	if p.Area != "인사동" {
		t.Errorf("Area = %q, want 인사동", p.Area)
	}
	if p.District != "종로구" {
		t.Errorf("District = %q, want 종로구", p.District)
	}
	if p.ID != "1042" {
		t.Errorf("ID = %q, want 1042", p.ID)
	}
	wantTags := []string{"공예", "쇼핑", "전시"}
	if strings.Join(p.Tags, "|") != strings.Join(wantTags, "|") {
		t.Errorf("Tags = %v, want %v", p.Tags, wantTags)
	}
	if p.Coord == nil || p.Coord.Lat != 37.5743 || p.Coord.Lng != 126.985 {
		t.Errorf("Coord = %+v, want 37.5743,126.985", p.Coord)
	}
	if p.HomepageURL != "https://ssamzigil.co.kr" {
		t.Errorf("HomepageURL = %q", p.HomepageURL)
	}
}

func TestNormalize_NameRejection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  RawRecord
		want string
	}{
		{
			name: "language code skipped for later key",
			raw:  RawRecord{"NAME": String("en"), "TITLE": String("북촌 한옥마을")},
			want: "북촌 한옥마을",
		},
		{
			name: "language tag and numeric code skipped",
			raw:  RawRecord{"NAME": String("ko-KR"), "title": String("12345"), "NM": String("서울숲")},
			want: "서울숲",
		},
		{
			name: "case insensitive key match",
			raw:  RawRecord{"Place_Nm": String("석촌호수")},
			want: "석촌호수",
		},
		{
			name: "fallback scan skips addresses",
			raw:  RawRecord{"A_FIELD": String("서울 종로구 북촌로 12"), "Z_FIELD": String("북촌 전망대")},
			want: "북촌 전망대",
		},
		{
			name: "placeholder when nothing qualifies",
			raw:  RawRecord{"NAME": String("AB12"), "OTHER": Number(3)},
			want: unknownName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n, _ := newTestNormalizer(t)
			if got := n.Normalize(tt.raw).Name; got != tt.want {
				t.Errorf("Name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_UnknownNamePlaceholder(t *testing.T) {
	t.Parallel()
	if unknownName != "이름미상-50d8b4" {
		t.Errorf("unknownName = %q, want 이름미상-50d8b4", unknownName)
	}
}

func TestNormalize_IDDeterministic(t *testing.T) {
	t.Parallel()
	n, _ := newTestNormalizer(t)

	raw := RawRecord{"NAME": String("경복궁"), "ADDRESS": String("서울 종로구 사직로 161")}
	a := n.Normalize(raw)
	b := n.Normalize(raw)
	if a.ID == "" || a.ID != b.ID {
		t.Fatalf("IDs differ or empty: %q vs %q", a.ID, b.ID)
	}
	if a.ID != "9e7145508995da655b11dc9ab310d0fadbbb015d" {
		t.Errorf("ID = %q, want content hash", a.ID)
	}
}

func TestNormalize_IDForUnnamedRowHashesEmptyName(t *testing.T) {
	t.Parallel()
	n, _ := newTestNormalizer(t)

	const addr = "서울 종로구 사직로 161"
	p := n.Normalize(RawRecord{"NAME": String("en"), "ADDR": String(addr)})
	if p.Name != unknownName {
		t.Fatalf("Name = %q, want placeholder", p.Name)
	}
	if p.ID != ContentID("", addr) {
		t.Errorf("ID = %q, want hash of empty name and address", p.ID)
	}
	if p.ID == ContentID(unknownName, addr) {
		t.Error("ID hashes the placeholder name")
	}
}

func TestNormalize_CoordinatesNeverHalfPopulated(t *testing.T) {
	t.Parallel()
	n, _ := newTestNormalizer(t)

	tests := []struct {
		name string
		raw  RawRecord
		want bool
	}{
		{"both numeric", RawRecord{"LAT": Number(37.5), "LNG": Number(127.0)}, true},
		{"both strings", RawRecord{"Y": String("37.5"), "X": String("127.0")}, true},
		{"lat only", RawRecord{"LAT": Number(37.5)}, false},
		{"lng garbage", RawRecord{"LAT": Number(37.5), "LNG": String("east")}, false},
		{"zero means unknown", RawRecord{"LAT": Number(0), "LNG": Number(127.0)}, false},
		{"nan rejected", RawRecord{"LAT": String("NaN"), "LNG": Number(127.0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := n.Normalize(tt.raw).Coord != nil; got != tt.want {
				t.Errorf("has coord = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalize_AreaFromNameWhenAddressHasNone(t *testing.T) {
	t.Parallel()
	n, _ := newTestNormalizer(t)

	p := n.Normalize(RawRecord{"NAME": String("익선동 한옥거리"), "ADDR": String("서울 종로구")})
	if p.Area != "익선동" {
		t.Errorf("Area = %q, want 익선동", p.Area)
	}
	if p.District != "종로구" {
		t.Errorf("District = %q, want 종로구", p.District)
	}
}

func TestNormalize_LogsRejectedSamplesCapped(t *testing.T) {
	t.Parallel()
	logging.SetLevelString("debug")
	n, buf := newTestNormalizer(t)

	raw := RawRecord{}
	for i, key := range nameRule.keys[:8] {
		raw[key] = String([]string{"en", "ko", "ja", "zh", "fr", "de", "es", "it"}[i])
	}
	n.Normalize(raw)

	out := buf.String()
	if !strings.Contains(out, `"count":8`) {
		t.Fatalf("expected rejected count in log, got %q", out)
	}
	if strings.Contains(out, `"es"`) {
		t.Errorf("sample should be capped at %d values: %q", maxRejectSamples, out)
	}
}

func TestNormalizeAll_Stats(t *testing.T) {
	t.Parallel()
	n, _ := newTestNormalizer(t)

	rows := []RawRecord{
		{"NAME": String("쌈지길"), "ADDR": String("서울 종로구 인사동 38"), "LAT": Number(37.5), "LNG": Number(126.9)},
		{"NAME": String("en"), "ADDR": String("Seoul")},
		{"NAME": String("롯데월드타워"), "ADDR": String("서울 송파구 올림픽로 300")},
	}
	places, stats := n.NormalizeAll(rows)
	if len(places) != 3 {
		t.Fatalf("len(places) = %d, want 3", len(places))
	}
	want := Stats{Total: 3, AreaEmpty: 2, DistrictEmpty: 1, PlaceholderNames: 1, CodeNames: 1, WithCoords: 1}
	if stats != want {
		t.Errorf("stats = %+v, want %+v", stats, want)
	}
}

func TestDecodeRecords(t *testing.T) {
	t.Parallel()

	data := []byte(`[{"NAME":"서울숲","SEQ":12,"OPEN":true,"NOTE":null,"META":{"a":1}}]`)
	rows, err := DecodeRecords(data)
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	row := rows[0]
	if row["NAME"].Text() != "서울숲" || row["SEQ"].Text() != "12" {
		t.Errorf("unexpected decoded values: %+v", row)
	}
	if row["OPEN"].Text() != "true" {
		t.Errorf("bool should decode as text, got %q", row["OPEN"].Text())
	}
	if row["NOTE"].Kind() != KindNull {
		t.Errorf("null should decode as KindNull")
	}
	if row["META"].Text() != `{"a":1}` {
		t.Errorf("object should be kept as compact json, got %q", row["META"].Text())
	}

	if _, err := DecodeRecords([]byte(`{"not":"an array"}`)); err == nil {
		t.Error("expected error for non-array payload")
	}
}

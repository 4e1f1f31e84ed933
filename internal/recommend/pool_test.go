// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package recommend

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dongnae/internal/place"
)

func testPlace(id, name, area string, tags ...string) place.Place {
	return place.Place{
		ID:      id,
		Name:    name,
		Area:    area,
		Address: "서울 종로구 " + area,
		Tags:    tags,
	}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"drops single characters", "카페 a 산책", []string{"카페", "산책"}},
		{"strips punctuation", "카페, 데이트!", []string{"카페", "데이트"}},
		{"lowercases", "Gallery 전시", []string{"gallery", "전시"}},
		{"full width folds", "ＡＢ 카페", []string{"ab", "카페"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Tokenize(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUserText(t *testing.T) {
	t.Parallel()

	q := &Query{
		MainTaste:   "카페",
		MainPurpose: "데이트",
		Companions: []Person{
			{Taste: "전시", Purpose: "산책"},
			{Taste: "맛집"},
		},
	}
	want := "카페 데이트 전시 맛집 산책 "
	if got := UserText(q); got != want {
		t.Errorf("UserText() = %q, want %q", got, want)
	}
}

func TestPoolOptions_Eligible(t *testing.T) {
	t.Parallel()
	opts := DefaultPoolOptions()

	tests := []struct {
		name  string
		place place.Place
		want  bool
	}{
		{"korean name and area", testPlace("1", "쌈지길", "인사동"), true},
		{"denylisted name", testPlace("2", "안녕인사동", "인사동"), false},
		{"empty area", testPlace("3", "쌈지길", ""), false},
		{"romanized area", testPlace("4", "쌈지길", "Insa-dong"), false},
		{"non korean name", testPlace("5", "Ssamziegil", "인사동"), false},
		{"empty name", testPlace("6", "", "인사동"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := tt.place
			if got := opts.Eligible(&p); got != tt.want {
				t.Errorf("Eligible(%+v) = %v, want %v", p, got, tt.want)
			}
		})
	}
}

func TestBuildMasterPool_ScoresAndOrders(t *testing.T) {
	t.Parallel()

	places := []place.Place{
		testPlace("plain", "종로책방", "인사동"),
		testPlace("cafe", "연남카페", "연남동", "카페"),
		testPlace("both", "성수카페", "성수동", "카페", "데이트"),
		testPlace("extra", "삼청갤러리", "삼청동", "전시"),
		testPlace("denied", "안녕인사동", "인사동", "카페", "데이트"),
	}

	pool := BuildMasterPool(places, "카페 데이트", []string{"전시"}, DefaultPoolOptions())

	if len(pool) != 4 {
		t.Fatalf("len(pool) = %d, want 4", len(pool))
	}
	gotOrder := []string{pool[0].ID, pool[1].ID, pool[2].ID, pool[3].ID}
	wantOrder := []string{"both", "cafe", "extra", "plain"}
	if !reflect.DeepEqual(gotOrder, wantOrder) {
		t.Errorf("order = %v, want %v", gotOrder, wantOrder)
	}

	wantBase := map[string]float64{"both": 0.8, "cafe": 0.4, "extra": 0.2, "plain": 0}
	for _, c := range pool {
		base := wantBase[c.ID]
		if c.Score < base || c.Score >= base+maxJitter {
			t.Errorf("%s score = %v, want in [%v, %v)", c.ID, c.Score, base, base+maxJitter)
		}
	}
}

func TestBuildMasterPool_Deterministic(t *testing.T) {
	t.Parallel()

	var places []place.Place
	for _, area := range []string{"인사동", "성수동", "연남동", "한남동", "서촌"} {
		for _, name := range []string{"카페", "책방", "공방"} {
			places = append(places, testPlace(area+name, area+name, area, name))
		}
	}

	first := BuildMasterPool(places, "카페 산책", nil, DefaultPoolOptions())
	second := BuildMasterPool(places, "카페 산책", nil, DefaultPoolOptions())
	if !reflect.DeepEqual(first, second) {
		t.Error("identical arguments produced different pools")
	}
}

func TestBuildMasterPool_Empty(t *testing.T) {
	t.Parallel()

	pool := BuildMasterPool(nil, "카페", nil, DefaultPoolOptions())
	if pool == nil || len(pool) != 0 {
		t.Errorf("BuildMasterPool(nil) = %v, want empty non-nil", pool)
	}
}

func TestBuildMasterPoolFromRecords(t *testing.T) {
	t.Parallel()

	rows := []place.RawRecord{
		{"POI_NM": place.String("쌈지길"), "ADDR": place.String("서울특별시 종로구 인사동 38"), "THEME": place.String("공예")},
		{"POI_NM": place.String("ko"), "ADDR": place.String("서울 송파구 올림픽로 300")},
	}
	pool := BuildMasterPoolFromRecords(place.NewNormalizer(zerolog.Nop()), rows, "공예", nil, DefaultPoolOptions())

	if len(pool) != 1 {
		t.Fatalf("len(pool) = %d, want 1", len(pool))
	}
	if pool[0].Name != "쌈지길" || pool[0].Area != "인사동" {
		t.Errorf("pool[0] = %+v", pool[0].Place)
	}
	if pool[0].Center != place.SeoulCityHall {
		t.Errorf("Center = %+v, want city hall for rows without coordinates", pool[0].Center)
	}
}

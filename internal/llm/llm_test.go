// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package llm

import (
	"reflect"
	"strings"
	"testing"
)

func TestQuickReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		taste, purpose string
		want           string
	}{
		{"카페", "데이트", "성수은(는) 카페과(와) 데이트에 맞춰 동선이 깔끔합니다."},
		{"", " ", "성수은(는) 다양한 취향과(와) 여러 목적에 맞춰 동선이 깔끔합니다."},
	}
	for _, tt := range tests {
		if got := QuickReason("성수", tt.taste, tt.purpose); got != tt.want {
			t.Errorf("QuickReason(%q, %q) = %q, want %q", tt.taste, tt.purpose, got, tt.want)
		}
	}
}

func TestFallbackReason(t *testing.T) {
	t.Parallel()

	r := FallbackReason("연남", "", "산책")
	if !strings.HasPrefix(r.OneLiner, "연남은(는) 다양한 취향과(와) 산책에 맞춘 동선이 잘 맞습니다.") {
		t.Errorf("OneLiner = %q", r.OneLiner)
	}
	if len(r.Bullets) != 3 {
		t.Errorf("len(Bullets) = %d, want 3: %v", len(r.Bullets), r.Bullets)
	}
	if r.Generated {
		t.Error("template reason marked as generated")
	}
	if r.Course.Cafe == nil || len(r.Course.Cafe) != 0 {
		t.Errorf("Course.Cafe = %v, want empty non-nil", r.Course.Cafe)
	}
}

func TestSplitBullets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "  ", []string{}},
		{"sentences", "하나입니다. 둘입니다! 셋인가요? 넷입니다.", []string{"하나입니다.", "둘입니다!", "셋인가요?"}},
		{"short single", "짧은 문장", []string{"짧은 문장"}},
		{
			"long without stops",
			"첫째 포인트는 골목 산책입니다; 둘째는 카페 투어 • 셋째는 저녁 식사",
			[]string{"첫째 포인트는 골목 산책입니다", "둘째는 카페 투어", "셋째는 저녁 식사"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SplitBullets(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitBullets(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyOrder(t *testing.T) {
	t.Parallel()

	names := []string{"성수", "연남", "한남", "서촌"}
	tests := []struct {
		name   string
		ranked []string
		want   []string
	}{
		{"full order", []string{"서촌", "한남", "연남", "성수"}, []string{"서촌", "한남", "연남", "성수"}},
		{"unknown dropped", []string{"강남", "한남"}, []string{"한남", "성수", "연남", "서촌"}},
		{"duplicates and spaces", []string{" 연남 ", "연남"}, []string{"연남", "성수", "한남", "서촌"}},
		{"empty ranking", nil, names},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ApplyOrder(names, tt.ranked); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ApplyOrder() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package validation

import (
	"strings"
	"testing"
)

type location struct {
	Scope string `json:"scope" validate:"omitempty,oneof='서울 내' '서울 외부'"`
	Gu    string `json:"gu,omitempty" validate:"max=10"`
}

type companion struct {
	Taste string   `json:"taste" validate:"max=20"`
	Start location `json:"start"`
}

type followUp struct {
	SessionID  string      `json:"session_id" validate:"required,sessionid"`
	Signature  string      `json:"signature" validate:"required,signature"`
	CrowdPref  string      `json:"crowd_pref" validate:"omitempty,crowd"`
	Areas      []string    `json:"areas" validate:"omitempty,min=1,max=3,dive,required"`
	Companions []companion `json:"companions" validate:"max=2,dive"`
	Internal   string      `json:"-" validate:"max=1"`
}

const validSignature = `{"crowd_pref":"여유","main_purpose":"데이트","main_taste":"카페","people":[]}`

func validFollowUp() followUp {
	return followUp{
		SessionID: "3f0c1a52-9b7e-4c11-8d2e-0a6f4e9b1c77",
		Signature: validSignature,
		CrowdPref: "약간 붐빔",
	}
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if v1, v2 := GetValidator(), GetValidator(); v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one non-nil instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*followUp)
		wantField string
		wantTag   string
	}{
		{"valid", func(*followUp) {}, "", ""},
		{"missing session", func(f *followUp) { f.SessionID = "" }, "session_id", "required"},
		{"short session", func(f *followUp) { f.SessionID = "abc" }, "session_id", "sessionid"},
		{"session with spaces", func(f *followUp) { f.SessionID = "abc def ghi" }, "session_id", "sessionid"},
		{"signature not json", func(f *followUp) { f.Signature = "카페|데이트" }, "signature", "signature"},
		{"signature array", func(f *followUp) { f.Signature = `["x"]` }, "signature", "signature"},
		{"unknown crowd", func(f *followUp) { f.CrowdPref = "보통" }, "crowd_pref", "crowd"},
		{"crowd with spaces trimmed", func(f *followUp) { f.CrowdPref = " 붐빔 " }, "", ""},
		{"too many areas", func(f *followUp) { f.Areas = []string{"a", "b", "c", "d"} }, "areas", "max"},
		{"blank area", func(f *followUp) { f.Areas = []string{"성수", ""} }, "areas[1]", "required"},
		{"too many companions", func(f *followUp) { f.Companions = make([]companion, 3) }, "companions", "max"},
		{"nested scope", func(f *followUp) {
			f.Companions = []companion{{}, {Start: location{Scope: "부산"}}}
		}, "companions[1].start.scope", "oneof"},
		{"nested hangul length", func(f *followUp) {
			f.Companions = []companion{{Start: location{Gu: "가나다라마바사아자차카"}}}
		}, "companions[0].start.gu", "max"},
		{"scope inside seoul", func(f *followUp) {
			f.Companions = []companion{{Start: location{Scope: "서울 내", Gu: "마포구"}}}
		}, "", ""},
		{"json dash uses go name", func(f *followUp) { f.Internal = "xx" }, "Internal", "max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := validFollowUp()
			tt.mutate(&req)
			verr := ValidateStruct(&req)

			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("ValidateStruct() = nil, want %s error on %s", tt.wantTag, tt.wantField)
			}
			errs := verr.Errors()
			if len(errs) != 1 {
				t.Fatalf("got %d errors (%v), want 1", len(errs), verr)
			}
			if errs[0].Field() != tt.wantField || errs[0].Tag() != tt.wantTag {
				t.Errorf("error = %s/%s, want %s/%s", errs[0].Field(), errs[0].Tag(), tt.wantField, tt.wantTag)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	t.Run("single", func(t *testing.T) {
		t.Parallel()
		req := validFollowUp()
		req.CrowdPref = "보통"

		apiErr := ValidateStruct(&req).ToAPIError()
		if apiErr.Code != "VALIDATION_ERROR" {
			t.Errorf("Code = %q", apiErr.Code)
		}
		if apiErr.Message != "crowd_pref must be one of: 여유, 약간 붐빔, 붐빔" {
			t.Errorf("Message = %q", apiErr.Message)
		}
		if apiErr.Details["field"] != "crowd_pref" {
			t.Errorf("Details = %v", apiErr.Details)
		}
	})

	t.Run("multiple", func(t *testing.T) {
		t.Parallel()
		req := followUp{Areas: []string{"a", "b", "c", "d"}}

		apiErr := ValidateStruct(&req).ToAPIError()
		for _, want := range []string{"session_id: session_id is required", "signature: signature is required", "areas must contain at most 3 items"} {
			if !strings.Contains(apiErr.Message, want) {
				t.Errorf("Message %q missing %q", apiErr.Message, want)
			}
		}
		fields, ok := apiErr.Details["fields"].([]map[string]interface{})
		if !ok || len(fields) != 3 {
			t.Errorf("Details[fields] = %v, want 3 entries", apiErr.Details["fields"])
		}
	})
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	type bounds struct {
		Text  string   `json:"text" validate:"min=2,max=4"`
		Items []string `json:"items" validate:"min=1"`
		Count int      `json:"count" validate:"gte=1,lte=5"`
	}

	tests := []struct {
		name  string
		input bounds
		want  string
	}{
		{"string min", bounds{Text: "a", Items: []string{"x"}, Count: 1}, "text must be at least 2 characters"},
		{"string max counts runes", bounds{Text: "가나다라마", Items: []string{"x"}, Count: 1}, "text must be at most 4 characters"},
		{"slice min", bounds{Text: "ab", Items: []string{}, Count: 1}, "items must contain at least 1 items"},
		{"numeric lte", bounds{Text: "ab", Items: []string{"x"}, Count: 9}, "count must be less than or equal to 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)
			if verr == nil {
				t.Fatal("ValidateStruct() = nil")
			}
			if got := verr.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

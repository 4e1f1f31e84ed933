// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

package place

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Kind enumerates the variants a Value can hold.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
)

// Value is a scalar cell of a RawRecord.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric Value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Null returns the null Value.
func Null() Value { return Value{} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Text renders the value as trimmed text. Numbers use the shortest
// representation, so 127 renders as "127" and 37.5 as "37.5".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return strings.TrimSpace(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Empty reports whether the value carries nothing usable. Zero numbers count
// as empty; the catalog uses 0 for unknown coordinates and ids.
func (v Value) Empty() bool {
	switch v.kind {
	case KindString:
		return strings.TrimSpace(v.str) == ""
	case KindNumber:
		return v.num == 0
	default:
		return true
	}
}

// Float converts the value to a float64.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler. Booleans become "true"/"false"
// strings. Objects and arrays are kept as their compact JSON text.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*v = Null()
		return nil
	}

	switch data[0] {
	case 'n':
		*v = Null()
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode string value: %w", err)
		}
		*v = String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("decode bool value: %w", err)
		}
		*v = String(strconv.FormatBool(b))
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return fmt.Errorf("compact nested value: %w", err)
		}
		*v = String(buf.String())
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("decode number value %q: %w", data, err)
		}
		*v = Number(f)
	}
	return nil
}

// RawRecord is one untrusted source row.
type RawRecord map[string]Value

// DecodeRecords decodes a JSON array of flat objects.
func DecodeRecords(data []byte) ([]RawRecord, error) {
	var rows []RawRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode raw records: %w", err)
	}
	return rows, nil
}

// lookup returns the first non-empty value among keys. Each key is tried as an
// exact match first, then case-insensitively.
func (r RawRecord) lookup(keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := r[key]; ok && !v.Empty() {
			return v.Text(), true
		}
		for _, k := range r.keys() {
			if v := r[k]; strings.EqualFold(k, key) && !v.Empty() {
				return v.Text(), true
			}
		}
	}
	return "", false
}

// keys returns the field names in sorted order so that scans are deterministic.
func (r RawRecord) keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

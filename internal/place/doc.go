// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

// Package place turns loosely structured point-of-interest rows into Place records.
//
// Rows from the Seoul open data catalog have no fixed schema. Field names vary
// between datasets and releases, values mix Korean text, romanized text, ISO
// language codes and numeric codes. A RawRecord models such a row as a map of
// closed Values (string, number or null), and Normalizer.Normalize is a total
// function from RawRecord to Place: it never fails and always yields a Place
// with a non-empty name and id.
//
// The string heuristics (language code detection, address detection, area and
// district extraction) are plain functions with no I/O so they can be tested
// and fuzzed on their own.
package place

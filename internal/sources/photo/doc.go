// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

// Package photo picks representative area photos from the Korea Tourism
// Organization photo gallery. Lookups are best effort: a missing key, a failed
// call, or no matching item all yield no photo.
package photo

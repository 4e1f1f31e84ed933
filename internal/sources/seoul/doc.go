// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

/*
Package seoul reads the Seoul open data API (openapi.seoul.go.kr).

Two datasets are used:

  - OA-21050, the tourist attraction list. Its service name is not fixed, so
    it is resolved through SearchOpenAPIIOValueService unless configured, and
    cached for a day. Rows come back as place.RawRecord for the normalizer.
  - citydata, the live congestion level per hotspot (AREA_NM, AREA_CONGEST_LVL).

The API key is part of the URL path. Errors pass through logging.SanitizeError
before they are logged so the key never reaches the logs.
*/
package seoul

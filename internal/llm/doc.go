// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

/*
Package llm is the optional language-model advisor.

It talks to any OpenAI-compatible chat completions endpoint in JSON mode and
offers three calls:

  - ExpandKeywords: related search keywords for a query ({"keywords": [...]})
  - RerankAreas: a preferred order of candidate areas ({"ranked": [...]})
  - Reason: a three-sentence reason with bullets and a short course

Nothing here is required for a correct recommendation. Without an API key, or
when a call fails after retries, ExpandKeywords and RerankAreas return nil and
Reason returns FallbackReason. ApplyOrder makes any ranking safe to apply by
dropping unknown names and appending the ones the model left out.

Generated reasons are cached for an hour per request.
*/
package llm

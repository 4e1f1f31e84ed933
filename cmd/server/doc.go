// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

/*
Package main is the entry point for the Dongnae server.

Dongnae recommends Seoul neighborhoods and places for a group of people,
matching their tastes and purposes, the crowd level they prefer and where
each of them sets off from.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("dongnae")
	├── DataSupervisor ("data-layer")
	│   ├── CatalogRefresher (catalog warm-up, refresh and session sweep)
	│   └── PeriodicService "store-gc" (badger backend only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Environment: .env files through godotenv (already-set variables win)
 2. Configuration: Koanf v2 with defaults, optional YAML file, environment
 3. Logging: zerolog with JSON or console output
 4. Dislike store: in-memory or BadgerDB
 5. Sources: Seoul open data, photo gallery and the language model, each
    behind a retry policy, a circuit breaker and a rate limiter
 6. Recommendation engine
 7. HTTP handler, chi router and middleware
 8. Supervisor tree

# Configuration

	HTTP_PORT=8080               # listen port
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	SEOUL_API_KEY=<key>          # place catalog and live crowd levels
	OA21050_SERVICE_NAME=<name>  # skips the dataset service name lookup
	PHOTO_KOREA_API_KEY=<key>    # area photos
	OPENAI_API_KEY=<key>         # keyword expansion, area rerank, reasons
	OPENAI_MODEL=gpt-4o-mini

	DISLIKE_STORE=memory         # memory or badger
	DISLIKE_STORE_PATH=./data/dislikes
	CATALOG_REFRESH_INTERVAL=6h

Every source is optional. Without SEOUL_API_KEY the place catalog is empty
and area ranking falls back to the curated area list; without the photo or
language model keys results carry no photo and template reasons.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests within HTTP_SHUTDOWN_TIMEOUT, the data services stop, and the
dislike store is closed last.

# API Documentation

Swagger documentation is served at /swagger/index.html.
*/
package main

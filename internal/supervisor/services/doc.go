// Dongnae - Seoul Neighborhood Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dongnae

/*
Package services provides suture.Service wrappers for Dongnae components.

Each wrapper implements

	type Service interface {
	    Serve(ctx context.Context) error
	}

and returns ctx.Err() on cancellation so the supervisor does not count a
clean stop as a failure.

# Available Services

HTTPServerService runs the API server and drains it with a bounded
Shutdown when the tree stops.

CatalogRefresher warms the place catalog at startup, reloads it on the
refresh interval and sweeps idle feed states. A failed reload is logged and
the previous snapshot stays in place.

PeriodicService runs an arbitrary task on an interval; the server uses it
for badger value log GC.
*/
package services

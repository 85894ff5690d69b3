// Marquee - Hybrid Movie Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee recommends movies by blending TF-IDF content similarity with a
biased matrix factorisation model trained on explicit ratings. The catalog,
ratings and watchlist live in DuckDB; trained models are cached on disk (or
in BadgerDB) and reused while the data fingerprint is unchanged.

# Application Architecture

	RootSupervisor ("marquee")
	├── EngineSupervisor ("engine-layer")
	│   └── RefreshService
	├── MessagingSupervisor ("messaging-layer")
	│   └── EventRouterService (EVENTS_ENABLED=true)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. Database: DuckDB store for movies, ratings and watchlist
 4. Model cache: file or badger backend
 5. Provider: lazily built, refreshable recommendation engine
 6. Event bus: watermill gochannel refresh topic (optional)
 7. HTTP server: chi router under /api/v1

# Configuration

	export DUCKDB_PATH=/data/marquee.duckdb
	export RECOMMEND_CACHE_PATH=/data/models
	export RECOMMEND_REFRESH_INTERVAL=6h
	./marquee

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for SHUTDOWN_TIMEOUT, the event bus and model
cache are closed, and DuckDB is checkpointed before exit.
*/
package main

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package main is the entry point for the Bookend server.

Bookend serves a read-only analytics API over a Goodreads-derived dataset:
a catalog explorer with filters and rankings, book pages, reader profiles,
full-text search and saved filter states.

# Startup

Components are initialized in order:

 1. Configuration: Koanf v2 (defaults, optional YAML file, environment)
 2. Logging: zerolog, JSON or console output
 3. Dataset: four Parquet tables read through DuckDB, loaded once
 4. Catalog engine, book and profile resolvers
 5. Search index: in-memory Bleve index (optional)
 6. Filter store: memory, BadgerDB or Redis
 7. Supervisor tree: HTTP server and sweeper under suture v4

A dataset that cannot be loaded within DATASET_LOAD_TIMEOUT ends the
process with a non-zero exit status. There is no retry.

# Supervision

	RootSupervisor ("bookend")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── SweeperService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops
accepting connections and drains in-flight requests for up to 10 seconds,
then the filter store and search index are closed.

# Example

	export BOOKS_URL=https://example.org/goodreads/books.parquet
	export REVIEWS_URL=https://example.org/goodreads/reviews.parquet
	export USERS_URL=https://example.org/goodreads/users.parquet
	export TASTE_URL=https://example.org/goodreads/taste.parquet
	export FILTER_STORE_BACKEND=redis
	export REDIS_ADDR=localhost:6379
	./bookend
*/
package main

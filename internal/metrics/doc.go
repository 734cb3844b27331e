// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8050/metrics

# Available Metrics

Dataset Metrics:
  - dataset_load_duration_seconds: Time to read one parquet source (histogram)
    Labels: table (books, reviews, users, taste)
  - dataset_rows: Rows loaded per table (gauge)
  - dataset_load_errors_total: Failed table loads (counter)
  - dataset_repairs_total: Rows dropped or repaired during indexing (counter)
    Labels: kind

API Metrics:
  - api_requests_total: Requests by method, route pattern and status (counter)
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)

Cache and Store Metrics:
  - cache_hits_total / cache_misses_total / cache_evictions_total
    Labels: cache_type
  - filter_store_operations_total: Saved filter operations (counter)
    Labels: backend, operation, result
  - filter_store_expired_total: Saved filters purged by TTL (counter)

Search Metrics:
  - search_queries_total: Queries by result (counter)
  - search_duration_seconds: Query latency (histogram)

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests by result (counter)
  - circuit_breaker_consecutive_failures: Current failure streak (gauge)
  - circuit_breaker_state_transitions_total: State changes (counter)

# Usage

	start := time.Now()
	rows, err := loadBooks(ctx)
	metrics.RecordTableLoad("books", len(rows), time.Since(start), err)

Route labels use chi route patterns rather than raw paths so that IDs in
URLs do not create unbounded label cardinality.
*/
package metrics

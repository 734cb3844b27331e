// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package middleware provides the HTTP middleware shared by the API router.

Every constructor returns the chi-compatible shape func(http.Handler)
http.Handler so it can be passed straight to r.Use or r.With.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - Metrics: Prometheus request count, latency and in-flight gauge keyed
    by the chi route pattern rather than the raw path
  - RequestLogger: one structured log line per request, raised to warn
    above a latency threshold
  - Compression: pooled gzip for clients that accept it

Typical stack:

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(500 * time.Millisecond))
	r.Use(middleware.Metrics)
	r.With(middleware.Compression).Get("/api/v1/books", h.Listing)

Route patterns are only known after chi has matched the request, so
Metrics reads them once the wrapped handler returns. Requests that match
no route are recorded under the "unmatched" endpoint label to keep the
label set bounded.
*/
package middleware

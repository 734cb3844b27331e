// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package api provides the HTTP REST API layer for Bookend.

Every endpoint is read-only over the loaded dataset except the filter
session endpoints, which write to the configured filter store.

Endpoints:

	GET    /api/v1/health              overall status and dataset stats
	GET    /api/v1/health/live         liveness probe
	GET    /api/v1/health/ready        readiness probe
	GET    /metrics                    Prometheus metrics
	GET    /api/v1/catalog/overview    summary cards, rankings, genre breakdown
	GET    /api/v1/catalog/rank/{strategy}
	GET    /api/v1/catalog/options     genre, author, year and era options
	GET    /api/v1/catalog/suggest     author or genre prefix suggestions
	GET    /api/v1/books               paginated listing
	GET    /api/v1/books/{workID}      book detail
	GET    /api/v1/profile?user_id=    reader profile
	POST   /api/v1/filters             save a filter state
	GET    /api/v1/filters/{session}   read a saved filter state
	DELETE /api/v1/filters/{session}   forget a saved filter state
	GET    /api/v1/search?q=           full-text book search

Catalog criteria are shared by overview, rank and books:

	genres    comma separated or repeated; case-insensitive substring
	authors   repeated, one name per key; exact match
	year_min  inclusive lower bound (defaults to the dataset minimum)
	year_max  inclusive upper bound (defaults to the dataset maximum)
	era       pre-1800s, 1800s, modern, contemporary or 2000s; wins over years
	where     boolean expression over `book`, e.g. book.avg_rating >= 4.0
	session   a saved filter session; replaces the parameters above

Response Format:

Every response uses the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "cached": true}
	}

Error Mapping:

  - unknown book, reader or session: 404 NOT_FOUND
  - criteria that match no books: 200 with status "empty" and EMPTY_RESULT
  - malformed parameters or expressions: 400 VALIDATION_ERROR
  - filter store failures: 503 STORE_UNAVAILABLE
  - rate limits: 429 RATE_LIMIT_EXCEEDED

Malformed auxiliary data never fails a request; the affected section is
returned empty and listed in data.warnings.
*/
package api

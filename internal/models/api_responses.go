// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package models

import (
	"time"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusError   = "error"
)

// APIResponse is the envelope used by every HTTP endpoint.
//
// Status field values:
//   - "success": Request completed, see Data
//   - "empty": Valid query with zero matching books, see Error for the notice
//   - "error": Request failed, see Error
//
// Example empty response:
//
//	{
//	  "status": "empty",
//	  "data": {"filters": {"genres": ["Cyberpunk"]}},
//	  "error": {"code": "EMPTY_RESULT", "message": "No books match the selected filters."},
//	  "metadata": {"timestamp": "2026-05-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and caching information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is a machine-readable error with a human-readable message.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - NOT_FOUND: Book or reader does not exist
//   - EMPTY_RESULT: Filters matched nothing
//   - STORE_UNAVAILABLE: Filter store backend failed
//   - RATE_LIMIT_EXCEEDED: Too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PageInfo describes an offset page of a listing.
type PageInfo struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status        string        `json:"status"`
	Version       string        `json:"version"`
	DatasetLoaded bool          `json:"dataset_loaded"`
	Dataset       *DatasetStats `json:"dataset,omitempty"`
	SearchReady   bool          `json:"search_ready"`
	FilterStore   string        `json:"filter_store"`
	Uptime        float64       `json:"uptime_seconds"`
}

// DatasetStats summarizes the loaded tables.
type DatasetStats struct {
	Books        int       `json:"books"`
	Reviews      int       `json:"reviews"`
	Users        int       `json:"users"`
	TasteRecords int       `json:"taste_records"`
	MinYear      int       `json:"min_year"`
	MaxYear      int       `json:"max_year"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import "errors"

// API error codes.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeEmptyResult        = "EMPTY_RESULT"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodeSearchUnavailable  = "SEARCH_UNAVAILABLE"
	CodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	CodeNotReady           = "NOT_READY"
	CodeInternal           = "INTERNAL_ERROR"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
	CodeRequestBodyInvalid = "INVALID_REQUEST_BODY"
)

// ErrSearchDisabled is returned by the search endpoint when no index was built.
var ErrSearchDisabled = errors.New("full-text search is disabled")

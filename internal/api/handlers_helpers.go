// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookend/internal/catalog"
	"github.com/tomtom215/bookend/internal/filterstore"
	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/models"
	"github.com/tomtom215/bookend/internal/search"
	"github.com/tomtom215/bookend/internal/validation"
)

const emptyResultMessage = "No books match the selected filters."

// sanitizeLogValue replaces control characters so client input cannot
// forge log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag hashes a response body with FNV-1a.
func generateETag(data []byte) string {
	h := fnv.New32a()
	_, _ = h.Write(data)
	return `"` + strconv.FormatUint(uint64(h.Sum32()), 16) + `"`
}

func metadata(start time.Time, cached bool) models.Metadata {
	return models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(start).Milliseconds(),
		Cached:      cached,
	}
}

// respondSuccess sends data in a success envelope.
func respondSuccess(w http.ResponseWriter, start time.Time, data interface{}, cached bool) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     data,
		Metadata: metadata(start, cached),
	})
}

// respondEmpty reports a valid query that matched nothing. It is a 200 so
// clients can render the notice in place of results.
func respondEmpty(w http.ResponseWriter, start time.Time, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   models.StatusEmpty,
		Data:     data,
		Metadata: metadata(start, false),
		Error: &models.APIError{
			Code:    CodeEmptyResult,
			Message: emptyResultMessage,
		},
	})
}

// respondError sends an error response. err, when set, is logged.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		event := logging.Ctx(r.Context()).Warn()
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.Str("code", code).Str("error", sanitizeLogValue(err.Error())).Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status:   models.StatusError,
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// respondValidation sends a 400 for a failed request validation.
func respondValidation(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details, nil)
}

// handleError maps a service error to its HTTP response. emptyData is
// returned as data when err is models.ErrEmptyResult.
func handleError(w http.ResponseWriter, r *http.Request, start time.Time, err error, emptyData interface{}) {
	var verr *validation.RequestValidationError
	var notFound *models.NotFoundError

	switch {
	case errors.As(err, &verr):
		respondValidation(w, r, verr)

	case errors.Is(err, catalog.ErrInvalidCriteria),
		errors.Is(err, search.ErrEmptyQuery),
		errors.Is(err, filterstore.ErrInvalidSessionID):
		respondError(w, r, http.StatusBadRequest, CodeValidation, err.Error(), nil, nil)

	case errors.As(err, &notFound):
		respondError(w, r, http.StatusNotFound, CodeNotFound, notFound.Message,
			map[string]interface{}{"kind": notFound.Kind, "id": notFound.ID}, nil)

	case errors.Is(err, models.ErrNotFound):
		respondError(w, r, http.StatusNotFound, CodeNotFound, "Not found", nil, nil)

	case errors.Is(err, models.ErrEmptyResult):
		respondEmpty(w, start, emptyData)

	case errors.Is(err, filterstore.ErrUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, CodeStoreUnavailable,
			"Saved filters are temporarily unavailable", nil, err)

	case errors.Is(err, search.ErrThrottled):
		respondError(w, r, http.StatusTooManyRequests, CodeRateLimitExceeded,
			"Search is busy, try again shortly", nil, nil)

	case errors.Is(err, ErrSearchDisabled):
		respondError(w, r, http.StatusServiceUnavailable, CodeSearchUnavailable, "Full-text search is disabled", nil, nil)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respondError(w, r, http.StatusServiceUnavailable, CodeInternal, "Request timed out", nil, err)

	default:
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Internal server error", nil, err)
	}
}

// queryValues returns every value of a multi-valued parameter, accepting
// both repeated keys (?genres=a&genres=b) and comma lists (?genres=a,b).
// Blank items are dropped.
func queryValues(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		out = append(out, parseCommaSeparated(raw)...)
	}
	return out
}

// repeatedValues returns every value of a parameter given as repeated keys
// (?authors=a&authors=b), each kept whole so values may contain commas.
// Values are trimmed and blank ones dropped.
func repeatedValues(r *http.Request, key string) []string {
	var out []string
	for _, raw := range r.URL.Query()[key] {
		if v := strings.TrimSpace(raw); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseCommaSeparated splits a comma-separated string and trims the parts.
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// intParam reads an integer query parameter. A missing parameter yields
// def; a present but non-numeric one is a validation error.
func intParam(r *http.Request, key string, def int) (int, *validation.RequestValidationError) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, validation.NewRequestValidationError(key, "numeric", raw, key+" must be an integer")
	}
	return n, nil
}

// optionalIntParam is intParam for parameters without a default.
func optionalIntParam(r *http.Request, key string) (*int, *validation.RequestValidationError) {
	if strings.TrimSpace(r.URL.Query().Get(key)) == "" {
		return nil, nil
	}
	n, verr := intParam(r, key, 0)
	if verr != nil {
		return nil, verr
	}
	return &n, nil
}

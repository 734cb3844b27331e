// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/bookend/internal/filterstore"
	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/models"
	"github.com/tomtom215/bookend/internal/validation"
)

// maxFilterBody bounds the size of a saved filter request.
const maxFilterBody = 64 << 10

// SaveFiltersRequest is the body of POST /api/v1/filters.
type SaveFiltersRequest struct {
	SessionID string             `json:"session_id" validate:"omitempty,session_id"`
	Filters   models.FilterState `json:"filters"`
}

// SaveFilters normalizes and stores a filter state. The session ID is
// taken from the body or generated; the response carries it together with
// the stored state.
func (h *Handler) SaveFilters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, maxFilterBody)

	var req SaveFiltersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		msg := "Request body must be a JSON object with a filters field"
		if errors.As(err, &tooLarge) {
			msg = "Request body is too large"
		}
		respondError(w, r, http.StatusBadRequest, CodeRequestBodyInvalid, msg, nil, nil)
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	state, err := h.catalog.Normalize(req.Filters)
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}

	id := req.SessionID
	if id == "" {
		id = filterstore.NewSessionID()
	}
	ctx := logging.ContextWithFilterSession(r.Context(), id)
	if err := h.filters.Save(ctx, id, state); err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	logging.Ctx(ctx).Debug().Str("backend", h.filters.Backend()).Msg("Filter state saved")

	w.Header().Set("Location", "/api/v1/filters/"+id)
	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status:   models.StatusSuccess,
		Data:     models.SavedFilter{SessionID: id, Filters: state},
		Metadata: metadata(start, false),
	})
}

// GetFilters returns a saved filter state.
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := sessionParam(w, r, start)
	if !ok {
		return
	}
	ctx := logging.ContextWithFilterSession(r.Context(), id)

	state, err := h.filters.Load(ctx, id)
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	respondSuccess(w, start, models.SavedFilter{SessionID: id, Filters: state}, false)
}

// DeleteFilters forgets a saved filter state. Deleting an unknown session
// succeeds.
func (h *Handler) DeleteFilters(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, ok := sessionParam(w, r, start)
	if !ok {
		return
	}
	ctx := logging.ContextWithFilterSession(r.Context(), id)

	if err := h.filters.Delete(ctx, id); err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	respondSuccess(w, start, map[string]interface{}{"session_id": id, "deleted": true}, false)
}

// sessionParam reads and checks the {session} path segment.
func sessionParam(w http.ResponseWriter, r *http.Request, start time.Time) (string, bool) {
	id := chi.URLParam(r, "session")
	if !filterstore.ValidSessionID(id) {
		handleError(w, r, start, fmt.Errorf("%w: %q", filterstore.ErrInvalidSessionID, id), nil)
		return "", false
	}
	return id, true
}

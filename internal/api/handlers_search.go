// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/bookend/internal/search"
	"github.com/tomtom215/bookend/internal/validation"
)

// SearchRequest holds the search endpoint parameters.
type SearchRequest struct {
	Query string `query:"q" validate:"required,max=200"`
	Limit int    `query:"limit" validate:"gte=1"`
}

// Search runs a full-text query over titles, authors, genres and
// descriptions. Misspelled words and word prefixes still match.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.search == nil {
		handleError(w, r, start, ErrSearchDisabled, nil)
		return
	}

	limit, verr := intParam(r, "limit", 20)
	if verr != nil {
		respondValidation(w, r, verr)
		return
	}
	req := SearchRequest{Query: r.URL.Query().Get("q"), Limit: limit}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}
	if req.Limit > search.MaxLimit {
		req.Limit = search.MaxLimit
	}

	result, err := h.search.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	respondSuccess(w, start, result, false)
}

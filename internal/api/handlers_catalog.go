// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/bookend/internal/catalog"
	"github.com/tomtom215/bookend/internal/models"
	"github.com/tomtom215/bookend/internal/validation"
)

// maxTopN bounds ranking lengths.
const maxTopN = 100

// RankingResponse is one ranking table.
type RankingResponse struct {
	Strategy catalog.Strategy   `json:"strategy"`
	Filters  models.FilterState `json:"filters"`
	Books    []models.BookCard  `json:"books"`
}

// SuggestRequest holds the suggest endpoint parameters.
type SuggestRequest struct {
	Field  string `query:"field" validate:"required,oneof=author genre"`
	Prefix string `query:"prefix" validate:"max=200"`
	Limit  int    `query:"limit" validate:"gte=1,lte=10"`
}

// ListingRequest holds the listing paging parameters.
type ListingRequest struct {
	Sort   string `query:"sort" validate:"omitempty,oneof=popularity reviews"`
	Limit  int    `query:"limit" validate:"gte=1"`
	Offset int    `query:"offset" validate:"gte=0"`
}

// emptyFilters is the data of an empty-result response.
func emptyFilters(state models.FilterState) map[string]interface{} {
	return map[string]interface{}{"filters": state}
}

// topN reads the ranking length parameter.
func (h *Handler) topN(r *http.Request) (int, *validation.RequestValidationError) {
	def := 5
	if h.config != nil && h.config.API.DefaultTopN > 0 {
		def = h.config.API.DefaultTopN
	}
	n, verr := intParam(r, "limit", def)
	if verr != nil {
		return 0, verr
	}
	if n < 1 || n > maxTopN {
		return 0, validation.NewRequestValidationError("limit", "range", n, "limit must be between 1 and 100")
	}
	return n, nil
}

// CatalogOverview returns summary cards, the three rankings and the genre
// breakdown for the requested criteria.
func (h *Handler) CatalogOverview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	state, err := h.criteria(r)
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	n, verr := h.topN(r)
	if verr != nil {
		respondValidation(w, r, verr)
		return
	}

	overview, cached, err := h.catalog.Overview(state, n)
	if err != nil {
		handleError(w, r, start, err, emptyFilters(state))
		return
	}
	respondSuccess(w, start, overview, cached)
}

// CatalogRank returns a single ranking: most-reviewed, most-popular or
// hidden-gems.
func (h *Handler) CatalogRank(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	strategy, err := catalog.ParseStrategy(chi.URLParam(r, "strategy"))
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	state, err := h.criteria(r)
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	n, verr := h.topN(r)
	if verr != nil {
		respondValidation(w, r, verr)
		return
	}

	books, err := h.catalog.Rank(state, strategy, n)
	if err != nil {
		handleError(w, r, start, err, emptyFilters(state))
		return
	}
	respondSuccess(w, start, RankingResponse{Strategy: strategy, Filters: state, Books: books}, false)
}

// CatalogOptions returns the genre, author, year and era options.
func (h *Handler) CatalogOptions(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, time.Now(), h.catalog.Options(), false)
}

// CatalogSuggest returns author or genre completions for a prefix.
func (h *Handler) CatalogSuggest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	limit, verr := intParam(r, "limit", 10)
	if verr != nil {
		respondValidation(w, r, verr)
		return
	}
	req := SuggestRequest{
		Field:  strings.ToLower(strings.TrimSpace(r.URL.Query().Get("field"))),
		Prefix: r.URL.Query().Get("prefix"),
		Limit:  limit,
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	suggestions, err := h.catalog.Suggest(req.Field, req.Prefix, req.Limit)
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	respondSuccess(w, start, suggestions, false)
}

// BookListing returns one page of the full listing. It filters exactly
// like CatalogOverview.
func (h *Handler) BookListing(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	state, err := h.criteria(r)
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}

	defLimit, maxLimit := h.pageLimits()
	limit, verr := intParam(r, "limit", defLimit)
	if verr != nil {
		respondValidation(w, r, verr)
		return
	}
	offset, verr := intParam(r, "offset", 0)
	if verr != nil {
		respondValidation(w, r, verr)
		return
	}
	req := ListingRequest{
		Sort:   strings.ToLower(strings.TrimSpace(r.URL.Query().Get("sort"))),
		Limit:  limit,
		Offset: offset,
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}
	if req.Limit > maxLimit {
		respondValidation(w, r, validation.NewRequestValidationError("limit", "lte", req.Limit,
			"limit must be less than or equal to "+strconv.Itoa(maxLimit)))
		return
	}

	listing, err := h.catalog.Listing(state, req.Sort, req.Limit, req.Offset)
	if err != nil {
		handleError(w, r, start, err, emptyFilters(state))
		return
	}
	respondSuccess(w, start, listing, false)
}

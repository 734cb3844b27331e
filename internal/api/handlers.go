// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"time"

	"github.com/tomtom215/bookend/internal/catalog"
	"github.com/tomtom215/bookend/internal/config"
	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/detail"
	"github.com/tomtom215/bookend/internal/filterstore"
	"github.com/tomtom215/bookend/internal/profile"
	"github.com/tomtom215/bookend/internal/search"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by resource:
//   - handlers_health.go: health, liveness and readiness
//   - handlers_catalog.go: overview, rankings, options, suggestions, listing
//   - handlers_books.go: book detail
//   - handlers_profile.go: reader profile
//   - handlers_filters.go: saved filter sessions
//   - handlers_search.go: full-text search
type Handler struct {
	config    *config.Config
	dataset   *dataset.Dataset
	catalog   *catalog.Engine
	books     *detail.Resolver
	profiles  *profile.Resolver
	search    *search.Index
	filters   filterstore.Store
	version   string
	startTime time.Time
}

// Dependencies are the services a Handler serves from. Search may be nil
// when full-text search is disabled; everything else is required.
type Dependencies struct {
	Config   *config.Config
	Dataset  *dataset.Dataset
	Catalog  *catalog.Engine
	Books    *detail.Resolver
	Profiles *profile.Resolver
	Search   *search.Index
	Filters  filterstore.Store
	Version  string
}

// NewHandler creates a new API handler.
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		config:    deps.Config,
		dataset:   deps.Dataset,
		catalog:   deps.Catalog,
		books:     deps.Books,
		profiles:  deps.Profiles,
		search:    deps.Search,
		filters:   deps.Filters,
		version:   deps.Version,
		startTime: time.Now(),
	}
}

// pageLimits returns the default and maximum page size.
func (h *Handler) pageLimits() (def, maxSize int) {
	def, maxSize = 50, 500
	if h.config != nil {
		if h.config.API.DefaultPageSize > 0 {
			def = h.config.API.DefaultPageSize
		}
		if h.config.API.MaxPageSize > 0 {
			maxSize = h.config.API.MaxPageSize
		}
	}
	return def, maxSize
}

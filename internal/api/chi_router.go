// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/bookend/internal/middleware"
)

// slowRequestThreshold raises request logs to warn level.
const slowRequestThreshold = 500 * time.Millisecond

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	timeout       time.Duration
}

// NewRouter creates a router. timeout bounds each request's context; zero
// leaves requests unbounded.
func NewRouter(handler *Handler, mw *ChiMiddleware, timeout time.Duration) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw, timeout: timeout}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(slowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, CodeRouteNotFound, "Route not found", nil, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil, nil)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(middleware.Metrics)
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("api"))
		r.Use(middleware.Metrics)
		if router.timeout > 0 {
			r.Use(chimiddleware.Timeout(router.timeout))
		}

		r.Route("/api/v1/catalog", func(r chi.Router) {
			r.Get("/overview", router.handler.CatalogOverview)
			r.Get("/rank/{strategy}", router.handler.CatalogRank)
			r.Get("/options", router.handler.CatalogOptions)
			r.Get("/suggest", router.handler.CatalogSuggest)
		})

		r.Route("/api/v1/books", func(r chi.Router) {
			r.With(middleware.Compression).Get("/", router.handler.BookListing)
			r.Get("/{workID}", router.handler.BookDetail)
		})

		r.Get("/api/v1/profile", router.handler.Profile)

		r.Route("/api/v1/filters", func(r chi.Router) {
			r.Post("/", router.handler.SaveFilters)
			r.Get("/{session}", router.handler.GetFilters)
			r.Delete("/{session}", router.handler.DeleteFilters)
		})

		r.With(middleware.Compression).Get("/api/v1/search", router.handler.Search)
	})

	return r
}

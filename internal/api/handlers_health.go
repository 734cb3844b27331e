// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/bookend/internal/models"
)

// pinger is implemented by filter stores with a remote backend.
type pinger interface {
	Ping(ctx context.Context) error
}

// storeReachable reports whether the filter store answers. Local stores
// always do.
func (h *Handler) storeReachable(ctx context.Context) bool {
	p, ok := h.filters.(pinger)
	if !ok {
		return true
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.Ping(ctx) == nil
}

// Health returns overall status with dataset statistics. The status is
// "degraded" when the filter store does not answer; the catalog is still
// served from memory.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	health := models.HealthStatus{
		Status:        "healthy",
		Version:       h.version,
		DatasetLoaded: h.dataset != nil,
		SearchReady:   h.search != nil,
		Uptime:        time.Since(h.startTime).Seconds(),
	}
	if h.dataset != nil {
		stats := h.dataset.Stats()
		health.Dataset = &stats
	}
	if h.filters != nil {
		health.FilterStore = h.filters.Backend()
		if !h.storeReachable(r.Context()) {
			health.Status = "degraded"
		}
	}
	respondSuccess(w, start, health, false)
}

// HealthLive is the liveness probe: 200 while the process serves HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, time.Now(), map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, false)
}

// HealthReady is the readiness probe: 200 once the dataset is loaded and
// the filter store answers, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	switch {
	case h.dataset == nil || h.catalog == nil:
		respondError(w, r, http.StatusServiceUnavailable, CodeNotReady, "Dataset not loaded", nil, nil)
	case h.filters == nil || !h.storeReachable(r.Context()):
		respondError(w, r, http.StatusServiceUnavailable, CodeNotReady, "Filter store not reachable", nil, nil)
	default:
		respondSuccess(w, start, map[string]interface{}{"ready": true}, false)
	}
}

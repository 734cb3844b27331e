// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"net/http"
	"strings"
	"time"
)

// Profile returns the reader profile for the user_id query parameter, the
// public dummy ID. A missing or unknown ID is a 404 whose message is meant
// for display.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	profile, err := h.profiles.Resolve(strings.TrimSpace(r.URL.Query().Get("user_id")))
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	respondSuccess(w, start, profile, false)
}

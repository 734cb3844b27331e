// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// BookDetail returns the book page for a work ID. Sections whose stored
// data could not be decoded come back empty with a warning.
func (h *Handler) BookDetail(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	book, err := h.books.Resolve(chi.URLParam(r, "workID"))
	if err != nil {
		handleError(w, r, start, err, nil)
		return
	}
	respondSuccess(w, start, book, false)
}

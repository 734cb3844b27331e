// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"strings"

	"github.com/tomtom215/bookend/internal/cache"
	"github.com/tomtom215/bookend/internal/models"
)

// FilterBooks returns the books matching the structured criteria of state,
// in table order. The Where expression is not applied here; see Engine.Filter.
//
// Genres match when any requested value occurs, case-insensitively, as a
// substring of the raw genre field. Authors match exactly. The year
// constraint is inclusive and excludes books without a year; an era
// replaces any explicit range. Dimensions combine with AND, and a state
// with no constraints returns every book.
func FilterBooks(books []models.Book, state models.FilterState, minYear, maxYear int) []*models.Book {
	var genres *cache.AhoCorasick
	if patterns := nonBlank(state.Genres); len(patterns) > 0 {
		genres = cache.NewAhoCorasick(patterns, false)
	}

	var authors map[string]struct{}
	if names := nonBlank(state.Authors); len(names) > 0 {
		authors = make(map[string]struct{}, len(names))
		for _, a := range names {
			authors[a] = struct{}{}
		}
	}

	years := effectiveYears(state, minYear, maxYear)

	out := make([]*models.Book, 0, len(books))
	for i := range books {
		b := &books[i]
		if genres != nil && !genres.Contains(b.Genres) {
			continue
		}
		if authors != nil {
			if _, ok := authors[b.Author]; !ok {
				continue
			}
		}
		if years != nil && (b.PublicationYear == nil || !years.Contains(*b.PublicationYear)) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// nonBlank drops empty and whitespace-only values, keeping the rest verbatim.
func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

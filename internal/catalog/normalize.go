// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"fmt"
	"strings"

	"github.com/tomtom215/bookend/internal/models"
)

// Normalize returns the canonical form of a filter state, as saved by the
// filter store and used for cache keys:
//   - genre and author values are trimmed, blanks dropped, duplicates removed;
//   - an era is validated and its year range filled in;
//   - an explicit range covering the whole dataset is dropped, but only
//     when every book has a year, since any range excludes undated books;
//   - the where expression is trimmed and compiled.
//
// Invalid input wraps ErrInvalidCriteria.
func (e *Engine) Normalize(state models.FilterState) (models.FilterState, error) {
	out := models.FilterState{
		Genres:  dedupe(state.Genres),
		Authors: dedupe(state.Authors),
		Era:     models.Era(strings.ToLower(strings.TrimSpace(string(state.Era)))),
		Where:   strings.TrimSpace(state.Where),
	}
	minYear, maxYear := e.ds.YearBounds()

	if out.Era != "" {
		r, ok := EraRange(out.Era, minYear, maxYear)
		if !ok {
			return models.FilterState{}, fmt.Errorf("%w: unknown era %q", ErrInvalidCriteria, state.Era)
		}
		out.Years = &r
	} else if state.Years != nil {
		r := *state.Years
		if r.Min > r.Max {
			return models.FilterState{}, fmt.Errorf("%w: year_min %d is after year_max %d", ErrInvalidCriteria, r.Min, r.Max)
		}
		if r.Min > minYear || r.Max < maxYear || e.ds.UndatedBooks() > 0 {
			out.Years = &r
		}
	}

	if out.Where != "" {
		if _, err := e.exprs.compile(out.Where); err != nil {
			return models.FilterState{}, err
		}
	}
	return out, nil
}

// dedupe trims values and drops blanks and repeats, keeping first-seen order.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

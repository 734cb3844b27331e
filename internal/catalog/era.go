// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"github.com/tomtom215/bookend/internal/models"
)

// EraRange resolves an era to its inclusive year range. The open-ended
// eras use the dataset bounds. Unknown eras report false.
func EraRange(era models.Era, minYear, maxYear int) (models.YearRange, bool) {
	switch era {
	case models.EraPre1800s:
		return models.YearRange{Min: minYear, Max: 1799}, true
	case models.Era1800s:
		return models.YearRange{Min: 1800, Max: 1899}, true
	case models.EraModern:
		return models.YearRange{Min: 1900, Max: 1945}, true
	case models.EraContemporary:
		return models.YearRange{Min: 1946, Max: 1999}, true
	case models.Era2000s:
		return models.YearRange{Min: 2000, Max: maxYear}, true
	default:
		return models.YearRange{}, false
	}
}

// EraLabel is the display form of an era ("Modern", "Pre-1800s").
func EraLabel(era models.Era) string {
	return Capitalize(string(era))
}

// EraOptions lists every era with its resolved range, oldest first.
func EraOptions(minYear, maxYear int) []models.EraOption {
	out := make([]models.EraOption, 0, len(models.Eras))
	for _, era := range models.Eras {
		r, _ := EraRange(era, minYear, maxYear)
		out = append(out, models.EraOption{Era: era, Label: EraLabel(era), Years: r})
	}
	return out
}

// effectiveYears returns the year constraint of a filter state: the era's
// range when an era is set, otherwise the explicit range, otherwise nil.
func effectiveYears(state models.FilterState, minYear, maxYear int) *models.YearRange {
	if state.Era != "" {
		if r, ok := EraRange(state.Era, minYear, maxYear); ok {
			return &r
		}
	}
	return state.Years
}

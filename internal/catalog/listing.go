// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/bookend/internal/models"
)

// Listing sort orders. The empty order keeps table order.
const (
	SortNone       = ""
	SortPopularity = "popularity"
	SortReviews    = "reviews"
)

// Listing returns one page of the full listing for state. It filters
// exactly like Overview. A state matching no books returns
// models.ErrEmptyResult; an offset past the end is an empty page.
func (e *Engine) Listing(state models.FilterState, sortBy string, limit, offset int) (*models.CatalogListing, error) {
	switch sortBy {
	case SortNone, SortPopularity, SortReviews:
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidCriteria, sortBy)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidCriteria)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", ErrInvalidCriteria)
	}

	subset, err := e.Filter(state)
	if err != nil {
		return nil, err
	}
	if len(subset) == 0 {
		return nil, fmt.Errorf("listing: %w", models.ErrEmptyResult)
	}

	ordered := sortListing(subset, sortBy)
	total := len(ordered)
	start := min(offset, total)
	end := min(start+limit, total)

	return &models.CatalogListing{
		Filters: state,
		Sort:    sortBy,
		Labels:  listingLabels(state),
		Books:   cards(ordered[start:end]),
		Page: models.PageInfo{
			Limit:   limit,
			Offset:  offset,
			Total:   total,
			HasMore: end < total,
		},
	}, nil
}

// sortListing returns subset in the requested order without modifying it.
// Books without a popularity score sort last under SortPopularity.
func sortListing(subset []*models.Book, sortBy string) []*models.Book {
	if sortBy == SortNone {
		return subset
	}
	out := append([]*models.Book(nil), subset...)
	switch sortBy {
	case SortPopularity:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i], out[j]
			if a.HasPopularity() != b.HasPopularity() {
				return a.HasPopularity()
			}
			return a.PopularityScore > b.PopularityScore
		})
	case SortReviews:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReviewsCount > out[j].ReviewsCount
		})
	}
	return out
}

// listingLabels builds the header cards of the listing.
func listingLabels(state models.FilterState) models.ListingLabels {
	labels := models.ListingLabels{
		Authors: joinOrAll(state.Authors),
		Genres:  joinOrAll(state.Genres),
		Era:     "All",
	}
	switch {
	case state.Era != "":
		labels.Era = EraLabel(state.Era)
	case state.Years != nil:
		labels.Era = "Custom"
	}
	return labels
}

func joinOrAll(values []string) string {
	values = nonBlank(values)
	if len(values) == 0 {
		return "All"
	}
	return strings.Join(values, "|")
}

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomtom215/bookend/internal/models"
)

// Strategy names a ranking order.
type Strategy string

// Ranking strategies.
const (
	MostReviewed Strategy = "most-reviewed"
	MostPopular  Strategy = "most-popular"
	HiddenGems   Strategy = "hidden-gems"
)

// Strategies lists every ranking strategy.
var Strategies = []Strategy{MostReviewed, MostPopular, HiddenGems}

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	for _, known := range Strategies {
		if Strategy(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("%w: unknown ranking strategy %q", ErrInvalidCriteria, s)
}

// Rank orders subset by strategy and returns at most n books. The input is
// not modified and ties keep their input order.
//
// Most-popular skips books without a popularity score. Hidden gems keeps
// books with minReviews <= reviews_count <= median(reviews_count of subset),
// ordered by rating descending (unrated last) then reviews ascending.
func Rank(subset []*models.Book, strategy Strategy, n int, minReviews int64) []*models.Book {
	if n <= 0 || len(subset) == 0 {
		return []*models.Book{}
	}

	var ranked []*models.Book
	switch strategy {
	case MostReviewed:
		ranked = append(ranked, subset...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].ReviewsCount > ranked[j].ReviewsCount
		})

	case MostPopular:
		for _, b := range subset {
			if b.HasPopularity() {
				ranked = append(ranked, b)
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].PopularityScore > ranked[j].PopularityScore
		})

	case HiddenGems:
		median := medianReviews(subset)
		for _, b := range subset {
			rc := float64(b.ReviewsCount)
			if b.ReviewsCount >= minReviews && rc <= median {
				ranked = append(ranked, b)
			}
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := ranked[i], ranked[j]
			if a.HasRating() != b.HasRating() {
				return a.HasRating()
			}
			if a.HasRating() && a.AvgRating != b.AvgRating {
				return a.AvgRating > b.AvgRating
			}
			return a.ReviewsCount < b.ReviewsCount
		})

	default:
		return []*models.Book{}
	}

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	if ranked == nil {
		ranked = []*models.Book{}
	}
	return ranked
}

// medianReviews is the linearly interpolated 0.5 quantile of reviews_count.
func medianReviews(subset []*models.Book) float64 {
	if len(subset) == 0 {
		return math.NaN()
	}
	values := make([]float64, len(subset))
	for i, b := range subset {
		values[i] = float64(b.ReviewsCount)
	}
	sort.Float64s(values)

	pos := 0.5 * float64(len(values)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return values[lo] + (values[hi]-values[lo])*frac
}

// cards converts ranked books to cards.
func cards(books []*models.Book) []models.BookCard {
	out := make([]models.BookCard, len(books))
	for i, b := range books {
		out[i] = models.NewBookCard(b)
	}
	return out
}

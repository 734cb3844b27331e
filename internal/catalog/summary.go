// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tomtom215/bookend/internal/models"
)

// Summary computes the headline cards for subset. MeanRating ignores
// unrated books and is nil when none is rated. UserTotal is passed in; it
// is an external figure, not derived from the books.
func Summary(subset []*models.Book, userTotal int) models.CatalogSummary {
	ids := make(map[int64]struct{}, len(subset))
	var reviews int64
	var sum float64
	rated := 0
	for _, b := range subset {
		ids[b.WorkID] = struct{}{}
		reviews += b.ReviewsCount
		if b.HasRating() {
			sum += b.AvgRating
			rated++
		}
	}

	s := models.CatalogSummary{
		BookCount:   len(ids),
		ReviewTotal: reviews,
		UserTotal:   userTotal,
	}
	if rated > 0 {
		mean := sum / float64(rated)
		s.MeanRating = &mean
	}
	return s
}

// GenreBreakdown counts genre tags across subset. Each book counts once
// per tag it carries. Tags are trimmed and capitalized; blanks are skipped.
// The result is ordered by count descending, then name ascending.
func GenreBreakdown(subset []*models.Book) []models.GenreCount {
	counts := make(map[string]int)
	for _, b := range subset {
		for _, tag := range SplitGenres(b.Genres) {
			counts[tag]++
		}
	}
	return sortedCounts(counts)
}

// SplitGenres splits a raw genre field into capitalized, non-empty tags.
func SplitGenres(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, Capitalize(p))
		}
	}
	return out
}

// Capitalize upper-cases the first rune and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func sortedCounts(counts map[string]int) []models.GenreCount {
	out := make([]models.GenreCount, 0, len(counts))
	for genre, n := range counts {
		out = append(out, models.GenreCount{Genre: genre, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}

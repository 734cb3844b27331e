// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"math"
	"testing"

	"github.com/tomtom215/bookend/internal/config"
	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/models"
)

func yr(y int) *int { return &y }

// testBooks is a small catalog spanning every era.
func testBooks() []models.Book {
	nan := math.NaN()
	return []models.Book{
		{WorkID: 1, Title: "Pride and Prejudice", Author: "Jane Austen", Genres: "romance, classics, fiction", PublicationYear: yr(1813), AvgRating: 4.25, ReviewsCount: 900, PopularityScore: 0.95},
		{WorkID: 2, Title: "Emma", Author: "Jane Austen", Genres: "romance, classics", PublicationYear: yr(1815), AvgRating: 4.0, ReviewsCount: 120, PopularityScore: 0.60},
		{WorkID: 3, Title: "Dracula", Author: "Bram Stoker", Genres: "horror, classics", PublicationYear: yr(1897), AvgRating: 3.9, ReviewsCount: 300, PopularityScore: nan},
		{WorkID: 4, Title: "The Hobbit", Author: "J.R.R. Tolkien", Genres: "fantasy, fiction", PublicationYear: yr(1937), AvgRating: 4.3, ReviewsCount: 2000, PopularityScore: 0.99},
		{WorkID: 5, Title: "Dune", Author: "Frank Herbert", Genres: "science fiction, fiction", PublicationYear: yr(1965), AvgRating: 4.2, ReviewsCount: 60, PopularityScore: 0.70},
		{WorkID: 6, Title: "Station Eleven", Author: "Emily St. John Mandel", Genres: "Science Fiction, dystopia", PublicationYear: yr(2014), AvgRating: nan, ReviewsCount: 80, PopularityScore: 0.40},
		{WorkID: 7, Title: "Beowulf", Author: "Unknown", Genres: "poetry, classics", PublicationYear: yr(1000), AvgRating: 3.5, ReviewsCount: 40, PopularityScore: 0.10},
		{WorkID: 8, Title: "Undated Pamphlet", Author: "Anon", Genres: "", AvgRating: 3.0, ReviewsCount: 55, PopularityScore: 0.05},
	}
}

func testDataset() *dataset.Dataset {
	ds, _ := dataset.New(testBooks(), nil, nil, nil)
	return ds
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(testDataset(), config.CatalogConfig{ReaderCount: 18800, HiddenGemMinReviews: 50}, 5)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

func ids(books []*models.Book) []int64 {
	out := make([]int64, len(books))
	for i, b := range books {
		out[i] = b.WorkID
	}
	return out
}

func cardIDs(cards []models.BookCard) []int64 {
	out := make([]int64, len(cards))
	for i, c := range cards {
		out[i] = c.WorkID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

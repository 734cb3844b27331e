// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package profile

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/models"
)

func testResolver() *Resolver {
	books := []models.Book{
		{WorkID: 1, Title: "One"},
		{WorkID: 2, Title: "Two"},
		{WorkID: 3, Title: "Three"},
	}
	users := []models.User{
		{
			UserID: "internal-1", DummyID: "reader1", Name: "Ada",
			BooksRead: 42, AvgRating: 3.75, AvgReadingTime: 73 * time.Hour,
			FavoriteGenre:   "Fantasy",
			StarRatings:     models.StarBuckets{10, 20, 5, 1, 0},
			RecentReads:     []int64{3, 99, 1},
			Recommendations: []int64{2, 404, 1, 405},
		},
		{
			UserID: "internal-2", DummyID: "reader2", Name: "Bo",
			AvgRating:                math.NaN(),
			RecommendationsMalformed: true,
		},
	}
	taste := []models.TasteRecord{
		{UserID: "internal-1", MainGenre: "Fantasy", Author: "Tolkien"},
		{UserID: "internal-1", MainGenre: "Fantasy", Author: "Le Guin"},
		{UserID: "internal-1", MainGenre: "Fantasy", Author: "Tolkien"},
		{UserID: "internal-1", MainGenre: "Horror", Author: "King"},
		{UserID: "internal-1", MainGenre: "Classics", Author: "Austen"},
		{UserID: "internal-1", MainGenre: "", Author: "Nobody"},
		{UserID: "internal-1", MainGenre: "Poetry", Author: ""},
	}
	ds, _ := dataset.New(books, nil, users, taste)
	return NewResolver(ds)
}

func cardIDs(cards []models.BookCard) []int64 {
	out := make([]int64, len(cards))
	for i, c := range cards {
		out[i] = c.WorkID
	}
	return out
}

func TestResolve(t *testing.T) {
	p, err := testResolver().Resolve("reader1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if p.Name != "Ada" || p.DummyID != "reader1" {
		t.Errorf("identity = %s/%s, want Ada/reader1", p.Name, p.DummyID)
	}
	if p.KPIs.BooksRead != 42 || p.KPIs.AvgRating == nil || *p.KPIs.AvgRating != 3.75 {
		t.Errorf("KPIs = %+v", p.KPIs)
	}
	if p.KPIs.ReadingTime != (models.ReadingTime{Days: 3, Hours: 1}) {
		t.Errorf("ReadingTime = %+v, want 3 days 1 hour", p.KPIs.ReadingTime)
	}
	if p.KPIs.FavoriteGenre != "Fantasy" {
		t.Errorf("FavoriteGenre = %q, want Fantasy", p.KPIs.FavoriteGenre)
	}

	if got := cardIDs(p.RecentReads); len(got) != 2 || got[0] != 3 || got[1] != 1 {
		t.Errorf("RecentReads = %v, want [3 1]", got)
	}
	if got := cardIDs(p.Recommendations); len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("Recommendations = %v, want [2 1]", got)
	}
	if p.UnresolvedRecommendations != 2 {
		t.Errorf("UnresolvedRecommendations = %d, want 2", p.UnresolvedRecommendations)
	}
	if len(p.RatingHistogram) != 5 || p.RatingHistogram[1].Count != 20 {
		t.Errorf("RatingHistogram = %+v", p.RatingHistogram)
	}
	if len(p.Warnings) != 0 {
		t.Errorf("Warnings = %+v, want none", p.Warnings)
	}
}

func TestResolve_Taste(t *testing.T) {
	p, err := testResolver().Resolve("reader1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(p.Taste) != 3 {
		t.Fatalf("len(Taste) = %d, want 3: %+v", len(p.Taste), p.Taste)
	}
	wantGenres := []string{"Fantasy", "Classics", "Horror"}
	wantCounts := []int{3, 1, 1}
	for i := range wantGenres {
		if p.Taste[i].Genre != wantGenres[i] || p.Taste[i].Count != wantCounts[i] {
			t.Errorf("Taste[%d] = %s/%d, want %s/%d", i, p.Taste[i].Genre, p.Taste[i].Count, wantGenres[i], wantCounts[i])
		}
	}
	fantasy := p.Taste[0].Authors
	if len(fantasy) != 2 || fantasy[0] != (models.TasteAuthor{Author: "Tolkien", Count: 2}) || fantasy[1].Author != "Le Guin" {
		t.Errorf("Fantasy authors = %+v", fantasy)
	}
}

func TestResolve_Degraded(t *testing.T) {
	p, err := testResolver().Resolve("reader2")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.KPIs.FavoriteGenre != NoFavoriteGenre {
		t.Errorf("FavoriteGenre = %q, want %q", p.KPIs.FavoriteGenre, NoFavoriteGenre)
	}
	if p.KPIs.AvgRating != nil {
		t.Errorf("AvgRating = %v, want nil", *p.KPIs.AvgRating)
	}
	if p.Recommendations == nil || len(p.Recommendations) != 0 {
		t.Errorf("Recommendations = %v, want empty", p.Recommendations)
	}
	if len(p.Warnings) != 1 || p.Warnings[0].Section != "recommendations" || p.Warnings[0].Code != models.WarningMalformedAuxiliaryData {
		t.Errorf("Warnings = %+v", p.Warnings)
	}
	if p.RecentReads == nil || len(p.Taste) != 0 {
		t.Errorf("RecentReads = %v, Taste = %v; want empty", p.RecentReads, p.Taste)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := testResolver()
	tests := []struct {
		id      string
		message string
	}{
		{"", "Please enter a User ID."},
		{"   ", "Please enter a User ID."},
		{"internal-1", "No data found for User ID: internal-1"},
		{"ghost", "No data found for User ID: ghost"},
	}
	for _, tt := range tests {
		_, err := r.Resolve(tt.id)
		var nf *models.NotFoundError
		if !errors.As(err, &nf) {
			t.Errorf("Resolve(%q) error = %v, want *NotFoundError", tt.id, err)
			continue
		}
		if nf.Message != tt.message {
			t.Errorf("Resolve(%q) message = %q, want %q", tt.id, nf.Message, tt.message)
		}
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Resolve(%q) should match ErrNotFound", tt.id)
		}
	}
}

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"testing"

	"github.com/tomtom215/bookend/internal/models"
)

func TestFilterBooks(t *testing.T) {
	books := testBooks()
	const minYear, maxYear = 1000, 2014

	tests := []struct {
		name  string
		state models.FilterState
		want  []int64
	}{
		{
			name:  "empty state returns everything in order",
			state: models.FilterState{},
			want:  []int64{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			name:  "genre substring is case insensitive",
			state: models.FilterState{Genres: []string{"SCIENCE FICTION"}},
			want:  []int64{5, 6},
		},
		{
			name:  "genres combine with OR",
			state: models.FilterState{Genres: []string{"horror", "fantasy"}},
			want:  []int64{3, 4},
		},
		{
			name:  "blank genre values are ignored",
			state: models.FilterState{Genres: []string{"", "  "}},
			want:  []int64{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			name:  "genre values are literal",
			state: models.FilterState{Genres: []string{"fic.*"}},
			want:  []int64{},
		},
		{
			name:  "authors match exactly",
			state: models.FilterState{Authors: []string{"Jane Austen", "jane austen"}},
			want:  []int64{1, 2},
		},
		{
			name:  "year range is inclusive and skips undated books",
			state: models.FilterState{Years: &models.YearRange{Min: 1815, Max: 1937}},
			want:  []int64{2, 3, 4},
		},
		{
			name:  "era overrides years",
			state: models.FilterState{Era: models.Era1800s, Years: &models.YearRange{Min: 2000, Max: 2014}},
			want:  []int64{1, 2, 3},
		},
		{
			name:  "pre-1800s starts at the dataset minimum",
			state: models.FilterState{Era: models.EraPre1800s},
			want:  []int64{7},
		},
		{
			name:  "2000s ends at the dataset maximum",
			state: models.FilterState{Era: models.Era2000s},
			want:  []int64{6},
		},
		{
			name:  "dimensions combine with AND",
			state: models.FilterState{Genres: []string{"classics"}, Authors: []string{"Jane Austen"}, Era: models.Era1800s},
			want:  []int64{1, 2},
		},
		{
			name:  "no match yields an empty subset",
			state: models.FilterState{Authors: []string{"Nobody"}},
			want:  []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterBooks(books, tt.state, minYear, maxYear))
			if !equalIDs(got, tt.want) {
				t.Errorf("FilterBooks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterBooks_GenreSubstringOverMatch(t *testing.T) {
	books := []models.Book{
		{WorkID: 1, Genres: "Fantasy, Adventure"},
		{WorkID: 2, Genres: "High Fantasy"},
		{WorkID: 3, Genres: "Horror"},
		{WorkID: 4, Genres: "science fiction"},
		{WorkID: 5, Genres: "fiction"},
	}

	tests := []struct {
		name   string
		genres []string
		want   []int64
	}{
		{"value inside another tag", []string{"Fantasy"}, []int64{1, 2}},
		{"shorter value matches longer tag", []string{"fiction"}, []int64{4, 5}},
		{"longer value skips shorter tag", []string{"science fiction"}, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(FilterBooks(books, models.FilterState{Genres: tt.genres}, 0, 0))
			if !equalIDs(got, tt.want) {
				t.Errorf("FilterBooks(%q) = %v, want %v", tt.genres, got, tt.want)
			}
		})
	}
}

func TestFilterBooks_DoesNotCopyBooks(t *testing.T) {
	books := testBooks()
	got := FilterBooks(books, models.FilterState{}, 1000, 2014)
	if got[0] != &books[0] {
		t.Error("FilterBooks should return pointers into the input slice")
	}
}

func TestEraRange(t *testing.T) {
	tests := []struct {
		era  models.Era
		want models.YearRange
		ok   bool
	}{
		{models.EraPre1800s, models.YearRange{Min: 1000, Max: 1799}, true},
		{models.Era1800s, models.YearRange{Min: 1800, Max: 1899}, true},
		{models.EraModern, models.YearRange{Min: 1900, Max: 1945}, true},
		{models.EraContemporary, models.YearRange{Min: 1946, Max: 1999}, true},
		{models.Era2000s, models.YearRange{Min: 2000, Max: 2014}, true},
		{"victorian", models.YearRange{}, false},
	}
	for _, tt := range tests {
		got, ok := EraRange(tt.era, 1000, 2014)
		if ok != tt.ok || got != tt.want {
			t.Errorf("EraRange(%q) = %v, %v; want %v, %v", tt.era, got, ok, tt.want, tt.ok)
		}
	}
}

func TestEraOptions(t *testing.T) {
	opts := EraOptions(1000, 2014)
	if len(opts) != len(models.Eras) {
		t.Fatalf("len(EraOptions) = %d, want %d", len(opts), len(models.Eras))
	}
	if opts[0].Label != "Pre-1800s" {
		t.Errorf("first label = %q, want Pre-1800s", opts[0].Label)
	}
	if opts[2].Label != "Modern" {
		t.Errorf("third label = %q, want Modern", opts[2].Label)
	}
}

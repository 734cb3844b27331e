// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package models

import (
	"math"
	"time"
)

// StarBuckets holds per-star counts, index 0 is five stars and index 4 is one star.
type StarBuckets [5]int64

// StarLabels are the display labels matching StarBuckets order.
var StarLabels = [5]string{"5 Stars", "4 Stars", "3 Stars", "2 Stars", "1 Star"}

// Sentiment holds the precomputed average sentiment proportions of a book.
type Sentiment struct {
	Positive float64
	Neutral  float64
	Negative float64
}

// Book is one row of the books table.
//
// AvgRating and PopularityScore are NaN when the source value is missing.
// SimilarBooksMalformed is set when the stored related-ID list could not be
// decoded; SimilarBooks is then empty.
type Book struct {
	WorkID          int64
	Title           string
	Author          string
	Description     string
	Genres          string
	GenreTags       []string
	PublicationYear *int
	NumPages        *int
	AvgRating       float64
	RatingsCount    int64
	StarRatings     StarBuckets
	ReviewsCount    int64
	PopularityScore float64
	AvgReadingTime  time.Duration
	Sentiment       *Sentiment
	ReviewSummary   string
	ImageURL        string

	SimilarBooks          []int64
	SimilarBooksMalformed bool
}

// HasRating reports whether the book carries an average rating.
func (b *Book) HasRating() bool {
	return !math.IsNaN(b.AvgRating)
}

// HasPopularity reports whether the book carries a popularity score.
func (b *Book) HasPopularity() bool {
	return !math.IsNaN(b.PopularityScore)
}

// Review is one row of the selected reviews table.
// Rating is nil when missing; DateAdded is nil when the stored value was
// absent or unparseable.
type Review struct {
	WorkID    int64
	UserID    string
	Rating    *float64
	Text      string
	DateAdded *time.Time
}

// User is one row of the users table.
//
// DummyID is the only identifier accepted from clients; UserID links to
// reviews and taste records.
type User struct {
	UserID         string
	DummyID        string
	Name           string
	BooksRead      int64
	AvgRating      float64
	AvgReadingTime time.Duration
	FavoriteGenre  string
	StarRatings    StarBuckets

	RecentReads          []int64
	RecentReadsMalformed bool

	Recommendations          []int64
	RecommendationsMalformed bool
}

// TasteRecord is one row of the sunburst table. Empty MainGenre or Author
// means the source value was missing.
type TasteRecord struct {
	UserID    string
	MainGenre string
	Author    string
}

// Complete reports whether the record can take part in taste aggregation.
func (t TasteRecord) Complete() bool {
	return t.MainGenre != "" && t.Author != ""
}

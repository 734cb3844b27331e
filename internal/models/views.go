// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package models

import (
	"math"
	"time"
)

// Warning codes attached to partially degraded views.
const (
	WarningMalformedAuxiliaryData = "MALFORMED_AUXILIARY_DATA"
)

// Warning reports a section of a view that was degraded instead of failing
// the whole request.
type Warning struct {
	Section string `json:"section"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BookCard is the compact book representation used in rankings, shelves,
// listings and search hits.
type BookCard struct {
	WorkID          int64    `json:"work_id"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	Genres          string   `json:"genres,omitempty"`
	PublicationYear *int     `json:"publication_year,omitempty"`
	AvgRating       *float64 `json:"avg_rating,omitempty"`
	ReviewsCount    int64    `json:"reviews_count"`
	PopularityScore *float64 `json:"popularity_score,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
}

// NewBookCard builds a card from a book record.
func NewBookCard(b *Book) BookCard {
	return BookCard{
		WorkID:          b.WorkID,
		Title:           b.Title,
		Author:          b.Author,
		Genres:          b.Genres,
		PublicationYear: b.PublicationYear,
		AvgRating:       FloatPtr(b.AvgRating),
		ReviewsCount:    b.ReviewsCount,
		PopularityScore: FloatPtr(b.PopularityScore),
		ImageURL:        b.ImageURL,
	}
}

// FloatPtr returns nil for NaN or infinite values and a pointer otherwise.
func FloatPtr(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ReadingTime is a duration split the way it is displayed.
type ReadingTime struct {
	Days  int `json:"days"`
	Hours int `json:"hours"`
}

// NewReadingTime splits d into whole days and the whole hours left over.
// Days use floor division so negative durations stay consistent.
func NewReadingTime(d time.Duration) ReadingTime {
	const day = 24 * time.Hour
	days := d / day
	rem := d - days*day
	if rem < 0 {
		days--
		rem += day
	}
	return ReadingTime{Days: int(days), Hours: int(rem / time.Hour)}
}

// HistogramBucket is one bar of a star-rating histogram.
type HistogramBucket struct {
	Label string `json:"label"`
	Stars int    `json:"stars"`
	Count int64  `json:"count"`
}

// NewHistogram renders per-star counts as five buckets, five stars first.
func NewHistogram(b StarBuckets) []HistogramBucket {
	out := make([]HistogramBucket, len(b))
	for i, count := range b {
		out[i] = HistogramBucket{Label: StarLabels[i], Stars: 5 - i, Count: count}
	}
	return out
}

// SentimentSlice is one wedge of the sentiment donut.
type SentimentSlice struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// CatalogSummary holds the explorer's headline cards.
type CatalogSummary struct {
	BookCount   int      `json:"book_count"`
	ReviewTotal int64    `json:"review_total"`
	MeanRating  *float64 `json:"mean_rating"`
	UserTotal   int      `json:"user_total"`
}

// GenreCount is one bucket of the genre breakdown.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// CatalogOverview is everything the explorer view renders for one filter state.
type CatalogOverview struct {
	Filters        FilterState    `json:"filters"`
	Summary        CatalogSummary `json:"summary"`
	MostReviewed   []BookCard     `json:"most_reviewed"`
	MostPopular    []BookCard     `json:"most_popular"`
	HiddenGems     []BookCard     `json:"hidden_gems"`
	GenreBreakdown []GenreCount   `json:"genre_breakdown"`
}

// ListingLabels are the header cards of the full listing.
type ListingLabels struct {
	Authors string `json:"authors"`
	Genres  string `json:"genres"`
	Era     string `json:"era"`
}

// CatalogListing is one page of the full listing.
type CatalogListing struct {
	Filters FilterState   `json:"filters"`
	Sort    string        `json:"sort,omitempty"`
	Labels  ListingLabels `json:"labels"`
	Books   []BookCard    `json:"books"`
	Page    PageInfo      `json:"page"`
}

// ReviewView is a review as shown on the book page.
type ReviewView struct {
	ReviewerName string     `json:"reviewer_name"`
	Rating       int        `json:"rating"`
	Text         string     `json:"text"`
	DateAdded    *time.Time `json:"date_added"`
}

// BookDetail is the assembled book page.
type BookDetail struct {
	WorkID          int64             `json:"work_id"`
	Title           string            `json:"title"`
	Author          string            `json:"author"`
	Description     string            `json:"description"`
	Genres          string            `json:"genres"`
	PublicationYear *int              `json:"publication_year,omitempty"`
	NumPages        *int              `json:"num_pages,omitempty"`
	AvgRating       *float64          `json:"avg_rating"`
	RatingsCount    int64             `json:"ratings_count"`
	ReviewsCount    int64             `json:"reviews_count"`
	ReadingTime     ReadingTime       `json:"reading_time"`
	ImageURL        string            `json:"image_url,omitempty"`
	ReviewSummary   string            `json:"review_summary,omitempty"`
	RatingHistogram []HistogramBucket `json:"rating_histogram"`
	Sentiment       []SentimentSlice  `json:"sentiment,omitempty"`
	SimilarBooks    []BookCard        `json:"similar_books"`
	Reviews         []ReviewView      `json:"reviews"`
	Warnings        []Warning         `json:"warnings,omitempty"`
}

// ProfileKPIs are the headline numbers of a profile.
type ProfileKPIs struct {
	BooksRead     int64       `json:"books_read"`
	AvgRating     *float64    `json:"avg_rating"`
	ReadingTime   ReadingTime `json:"reading_time"`
	FavoriteGenre string      `json:"favorite_genre"`
}

// TasteAuthor is a leaf of the taste hierarchy.
type TasteAuthor struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// TasteGenre is a branch of the taste hierarchy.
type TasteGenre struct {
	Genre   string        `json:"genre"`
	Count   int           `json:"count"`
	Authors []TasteAuthor `json:"authors"`
}

// ProfileDetail is the assembled reader profile.
type ProfileDetail struct {
	DummyID                   string            `json:"user_id"`
	Name                      string            `json:"name"`
	KPIs                      ProfileKPIs       `json:"kpis"`
	RecentReads               []BookCard        `json:"recent_reads"`
	Recommendations           []BookCard        `json:"recommendations"`
	UnresolvedRecommendations int               `json:"unresolved_recommendations"`
	RatingHistogram           []HistogramBucket `json:"rating_histogram"`
	Taste                     []TasteGenre      `json:"taste"`
	Warnings                  []Warning         `json:"warnings,omitempty"`
}

// SearchHit is one full-text search result.
type SearchHit struct {
	Book  BookCard `json:"book"`
	Score float64  `json:"score"`
}

// SearchResult is a page of search hits.
type SearchResult struct {
	Query string      `json:"query"`
	Total uint64      `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// EraOption describes an era and the year range it resolves to.
type EraOption struct {
	Era   Era       `json:"era"`
	Label string    `json:"label"`
	Years YearRange `json:"years"`
}

// FilterOptions lists the values a client can choose from.
type FilterOptions struct {
	Genres  []string    `json:"genres"`
	Authors []string    `json:"authors"`
	Years   YearRange   `json:"years"`
	Eras    []EraOption `json:"eras"`
}

// Suggestion is one prefix completion.
type Suggestion struct {
	Value string `json:"value"`
	Books int    `json:"books"`
}

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package detail

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/models"
)

// MaxSimilarBooks caps the similar-books shelf.
const MaxSimilarBooks = 5

// UnknownReader is shown for reviews whose author is not in the users table.
const UnknownReader = "Unknown reader"

// Resolver assembles book pages from the dataset.
type Resolver struct {
	ds *dataset.Dataset
}

// NewResolver creates a resolver over ds.
func NewResolver(ds *dataset.Dataset) *Resolver {
	return &Resolver{ds: ds}
}

// Resolve builds the page of one book. An empty, unparseable or unknown
// work ID returns a *models.NotFoundError. A malformed similar-books list
// degrades that section to an empty shelf with a warning.
func (r *Resolver) Resolve(workID string) (*models.BookDetail, error) {
	raw := strings.TrimSpace(workID)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, models.NewNotFoundError("book", workID, "Book ID %q is not a valid work ID.", workID)
	}
	b, ok := r.ds.Book(id)
	if !ok {
		return nil, models.NewNotFoundError("book", workID, "No book found with work ID %d.", id)
	}

	d := &models.BookDetail{
		WorkID:          b.WorkID,
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		Genres:          b.Genres,
		PublicationYear: b.PublicationYear,
		NumPages:        b.NumPages,
		AvgRating:       models.FloatPtr(b.AvgRating),
		RatingsCount:    b.RatingsCount,
		ReviewsCount:    b.ReviewsCount,
		ReadingTime:     models.NewReadingTime(b.AvgReadingTime),
		ImageURL:        b.ImageURL,
		ReviewSummary:   b.ReviewSummary,
		RatingHistogram: models.NewHistogram(b.StarRatings),
		Sentiment:       sentimentSlices(b.Sentiment),
		Reviews:         r.reviews(b.WorkID),
	}

	if b.SimilarBooksMalformed {
		logging.Debug().Int64("work_id", b.WorkID).Msg("Similar books list is malformed")
		d.SimilarBooks = []models.BookCard{}
		d.Warnings = append(d.Warnings, models.Warning{
			Section: "similar_books",
			Code:    models.WarningMalformedAuxiliaryData,
			Message: "The similar books list for this title could not be read.",
		})
	} else {
		d.SimilarBooks = r.similar(b.SimilarBooks)
	}
	return d, nil
}

// similar resolves related IDs to cards in table order, skipping unknown
// and repeated IDs, and keeps at most MaxSimilarBooks.
func (r *Resolver) similar(related []int64) []models.BookCard {
	positions := make([]int, 0, len(related))
	seen := make(map[int]struct{}, len(related))
	for _, id := range related {
		pos, ok := r.ds.BookPosition(id)
		if !ok {
			continue
		}
		if _, dup := seen[pos]; dup {
			continue
		}
		seen[pos] = struct{}{}
		positions = append(positions, pos)
	}
	sort.Ints(positions)
	if len(positions) > MaxSimilarBooks {
		positions = positions[:MaxSimilarBooks]
	}

	books := r.ds.Books()
	out := make([]models.BookCard, len(positions))
	for i, pos := range positions {
		out[i] = models.NewBookCard(&books[pos])
	}
	return out
}

// reviews returns a book's reviews newest first, undated reviews last.
func (r *Resolver) reviews(workID int64) []models.ReviewView {
	rows := r.ds.ReviewsFor(workID)
	out := make([]models.ReviewView, len(rows))
	for i, rv := range rows {
		out[i] = models.ReviewView{
			ReviewerName: r.reviewerName(rv.UserID),
			Rating:       starCount(rv.Rating),
			Text:         rv.Text,
			DateAdded:    rv.DateAdded,
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DateAdded, out[j].DateAdded
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.After(*b)
	})
	return out
}

func (r *Resolver) reviewerName(userID string) string {
	if u, ok := r.ds.UserByID(userID); ok && u.Name != "" {
		return u.Name
	}
	return UnknownReader
}

// starCount truncates a rating to a whole number of stars in [0, 5].
// Missing ratings count as zero.
func starCount(rating *float64) int {
	if rating == nil || math.IsNaN(*rating) {
		return 0
	}
	v := math.Trunc(*rating)
	switch {
	case v < 0:
		return 0
	case v > 5:
		return 5
	}
	return int(v)
}

func sentimentSlices(s *models.Sentiment) []models.SentimentSlice {
	if s == nil {
		return nil
	}
	return []models.SentimentSlice{
		{Label: "Positive", Score: s.Positive},
		{Label: "Neutral", Score: s.Neutral},
		{Label: "Negative", Score: s.Negative},
	}
}

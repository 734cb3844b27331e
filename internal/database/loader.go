// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package database

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/bookend/internal/config"
	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/metrics"
	"github.com/tomtom215/bookend/internal/models"
)

// Loader reads the four parquet sources into a dataset.Dataset.
type Loader struct {
	db      *DB
	sources *config.DatasetConfig
}

// NewLoader creates a loader reading the configured sources through db.
func NewLoader(db *DB, sources *config.DatasetConfig) *Loader {
	return &Loader{db: db, sources: sources}
}

// Load reads every source table concurrently and indexes the result.
//
// Any failure, including a missing required column, aborts the whole load
// and is wrapped in models.ErrFatalStartup. Loading is attempted once.
func (l *Loader) Load(ctx context.Context) (*dataset.Dataset, error) {
	if l.sources.LoadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.sources.LoadTimeout)
		defer cancel()
	}

	if l.needsHTTPFS() {
		if err := l.db.EnsureExtension(ctx, "httpfs"); err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrFatalStartup, err)
		}
	}

	start := time.Now()
	var (
		books   []models.Book
		reviews []models.Review
		users   []models.User
		taste   []models.TasteRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		started := time.Now()
		var err error
		books, err = l.loadBooks(gctx)
		return recordLoad(booksTable.name, len(books), started, err)
	})
	g.Go(func() error {
		started := time.Now()
		var err error
		reviews, err = l.loadReviews(gctx)
		return recordLoad(reviewsTable.name, len(reviews), started, err)
	})
	g.Go(func() error {
		started := time.Now()
		var err error
		users, err = l.loadUsers(gctx)
		return recordLoad(usersTable.name, len(users), started, err)
	})
	g.Go(func() error {
		started := time.Now()
		var err error
		taste, err = l.loadTaste(gctx)
		return recordLoad(tasteTable.name, len(taste), started, err)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrFatalStartup, err)
	}

	ds, repairs := dataset.New(books, reviews, users, taste)
	metrics.RecordRepairs("duplicate_book", repairs.DuplicateBooks)
	metrics.RecordRepairs("duplicate_dummy_id", repairs.DuplicateDummyID)
	metrics.RecordRepairs("orphan_review", repairs.OrphanReviews)

	stats := ds.Stats()
	logging.Info().
		Int("books", stats.Books).
		Int("reviews", stats.Reviews).
		Int("users", stats.Users).
		Int("taste_records", stats.TasteRecords).
		Int("duplicate_books", repairs.DuplicateBooks).
		Int("duplicate_dummy_ids", repairs.DuplicateDummyID).
		Int("orphan_reviews", repairs.OrphanReviews).
		Dur("elapsed", time.Since(start)).
		Msg("Dataset loaded")
	return ds, nil
}

// recordLoad records a table load and wraps its error with the table name.
func recordLoad(table string, rows int, started time.Time, err error) error {
	elapsed := time.Since(started)
	metrics.RecordTableLoad(table, rows, elapsed, err)
	if err != nil {
		return fmt.Errorf("load %s: %w", table, err)
	}
	logging.Debug().Str("table", table).Int("rows", rows).Dur("elapsed", elapsed).Msg("Table loaded")
	return nil
}

func (l *Loader) needsHTTPFS() bool {
	for _, src := range []string{l.sources.BooksURL, l.sources.ReviewsURL, l.sources.UsersURL, l.sources.TasteURL} {
		if config.IsRemoteSource(src) {
			return true
		}
	}
	return false
}

// scanTable runs the projection for spec against source and calls fn per row.
func (l *Loader) scanTable(ctx context.Context, spec tableSpec, source string, fn func(*record) error) error {
	present, err := sourceColumns(ctx, l.db.Conn(), source)
	if err != nil {
		return err
	}
	query, err := buildSelect(spec, source, present)
	if err != nil {
		return err
	}

	rows, err := l.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query %s: %w", spec.name, err)
	}
	defer closeWithLog(rows, "rows")

	rec := newRecord(spec)
	for rows.Next() {
		if err := rows.Scan(rec.values...); err != nil {
			return fmt.Errorf("scan %s: %w", spec.name, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (l *Loader) loadBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	malformed := 0
	err := l.scanTable(ctx, booksTable, l.sources.BooksURL, func(r *record) error {
		id, ok := r.integer("work_id")
		if !ok {
			return nil
		}
		b := models.Book{
			WorkID:          id,
			Title:           r.str("original_title"),
			Author:          r.str("author"),
			Description:     r.str("description"),
			Genres:          r.str("genres"),
			PublicationYear: r.intPtr("original_publication_year"),
			NumPages:        r.intPtr("num_pages"),
			AvgRating:       nullableFloat(r, "avg_rating"),
			RatingsCount:    r.count("ratings_count"),
			ReviewsCount:    r.count("reviews_count"),
			PopularityScore: nullableFloat(r, "popularity_score"),
			ReviewSummary:   r.str("review_text_summary"),
			ImageURL:        r.str("image_url"),
		}
		b.GenreTags = splitGenreTags(b.Genres)
		for i := range b.StarRatings {
			b.StarRatings[i] = r.count(fmt.Sprintf("%d_star_ratings", 5-i))
		}
		if d, ok := parseDuration(r.str("avg_reading_time")); ok {
			b.AvgReadingTime = d
		}
		b.Sentiment = readSentiment(r)

		similar, err := decodeNullableList(r, "similar_books")
		if err != nil {
			b.SimilarBooksMalformed = true
			malformed++
		} else {
			b.SimilarBooks = similar
		}

		books = append(books, b)
		return nil
	})
	metrics.RecordRepairs("malformed_list", malformed)
	return books, err
}

func (l *Loader) loadReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	err := l.scanTable(ctx, reviewsTable, l.sources.ReviewsURL, func(r *record) error {
		id, ok := r.integer("work_id")
		if !ok {
			return nil
		}
		rv := models.Review{
			WorkID:    id,
			UserID:    r.str("user_id"),
			Text:      r.str("review_text"),
			DateAdded: parseReviewDate(r.str("date_added")),
		}
		if v, ok := r.number("rating"); ok && !math.IsNaN(v) {
			rv.Rating = &v
		}
		reviews = append(reviews, rv)
		return nil
	})
	return reviews, err
}

func (l *Loader) loadUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	malformed := 0
	err := l.scanTable(ctx, usersTable, l.sources.UsersURL, func(r *record) error {
		u := models.User{
			UserID:        r.str("user_id"),
			DummyID:       r.str("dummy_id"),
			Name:          r.str("name"),
			BooksRead:     r.count("books_read"),
			AvgRating:     nullableFloat(r, "avg_rating"),
			FavoriteGenre: r.str("favorite_genre"),
		}
		if u.DummyID == "" {
			return nil
		}
		for i := range u.StarRatings {
			u.StarRatings[i] = r.count(fmt.Sprintf("%d_star_rating", 5-i))
		}
		if d, ok := parseDuration(r.str("avg_reading_time")); ok {
			u.AvgReadingTime = d
		}

		recent, err := decodeNullableList(r, "recent_reads")
		switch {
		case errors.Is(err, errNullList):
			u.RecentReads = []int64{}
		case err != nil:
			u.RecentReadsMalformed = true
			malformed++
		default:
			u.RecentReads = recent
		}

		recs, err := decodeNullableList(r, "book_recs_id")
		if err != nil {
			u.RecommendationsMalformed = true
			malformed++
		} else {
			u.Recommendations = recs
		}

		users = append(users, u)
		return nil
	})
	metrics.RecordRepairs("malformed_list", malformed)
	return users, err
}

func (l *Loader) loadTaste(ctx context.Context) ([]models.TasteRecord, error) {
	var taste []models.TasteRecord
	err := l.scanTable(ctx, tasteTable, l.sources.TasteURL, func(r *record) error {
		taste = append(taste, models.TasteRecord{
			UserID:    r.str("user_id"),
			MainGenre: r.str("main_genre"),
			Author:    r.str("author"),
		})
		return nil
	})
	return taste, err
}

// decodeNullableList decodes a serialized ID list column. A NULL value is
// reported as errNullList so callers can decide whether absence is malformed.
func decodeNullableList(r *record, column string) ([]int64, error) {
	raw, ok := r.text(column)
	if !ok {
		return nil, errNullList
	}
	return decodeIDList(raw)
}

// nullableFloat returns a numeric column with NULL mapped to NaN.
func nullableFloat(r *record, column string) float64 {
	v, ok := r.number(column)
	if !ok {
		return math.NaN()
	}
	return v
}

// readSentiment returns nil when none of the three proportions is present.
func readSentiment(r *record) *models.Sentiment {
	pos, okPos := r.number("avg_sentiment_pos")
	neu, okNeu := r.number("avg_sentiment_neu")
	neg, okNeg := r.number("avg_sentiment_neg")
	if !okPos && !okNeu && !okNeg {
		return nil
	}
	return &models.Sentiment{
		Positive: zeroIfNaN(pos),
		Neutral:  zeroIfNaN(neu),
		Negative: zeroIfNaN(neg),
	}
}

func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

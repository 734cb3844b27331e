// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/bookend/internal/config"
	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/metrics"
	"github.com/tomtom215/bookend/internal/models"
)

var (
	// ErrEmptyQuery is returned for blank queries.
	ErrEmptyQuery = errors.New("search query must not be blank")

	// ErrThrottled is returned when the process-wide query budget is spent.
	ErrThrottled = errors.New("search rate limit exceeded")
)

// MaxLimit caps the number of hits per query.
const MaxLimit = 100

const batchSize = 500

// Index is an in-memory full-text index over the book catalog.
// It is built once and is safe for concurrent queries.
type Index struct {
	index   bleve.Index
	ds      *dataset.Dataset
	limiter *rate.Limiter
}

// Build indexes every book of ds. A zero cfg.RateLimit disables throttling.
func Build(ds *dataset.Dataset, cfg config.SearchConfig) (*Index, error) {
	start := time.Now()

	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}

	books := ds.Books()
	for i := 0; i < len(books); i += batchSize {
		end := min(i+batchSize, len(books))
		batch := idx.NewBatch()
		for j := i; j < end; j++ {
			b := &books[j]
			doc := bookDocument{
				Title:       b.Title,
				Author:      b.Author,
				Genres:      b.Genres,
				Description: b.Description,
			}
			if err := batch.Index(strconv.FormatInt(b.WorkID, 10), doc.toMap()); err != nil {
				_ = idx.Close()
				return nil, fmt.Errorf("index book %d: %w", b.WorkID, err)
			}
		}
		if err := idx.Batch(batch); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	s := &Index{index: idx, ds: ds}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	logging.Info().
		Int("books", len(books)).
		Dur("duration", time.Since(start)).
		Msg("Search index built")
	return s, nil
}

// Close releases the index.
func (s *Index) Close() error {
	return s.index.Close()
}

// DocumentCount returns the number of indexed books.
func (s *Index) DocumentCount() (uint64, error) {
	return s.index.DocCount()
}

// Search runs q and returns at most limit hits, best first. limit is
// clamped to [1, MaxLimit].
func (s *Index) Search(ctx context.Context, q string, limit int) (*models.SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if s.limiter != nil && !s.limiter.Allow() {
		metrics.RecordSearch("throttled", 0)
		return nil, ErrThrottled
	}
	limit = max(1, min(limit, MaxLimit))

	start := time.Now()
	req := bleve.NewSearchRequestOptions(buildQuery(q), limit, 0, false)
	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		metrics.RecordSearch("error", 0)
		return nil, fmt.Errorf("execute search: %w", err)
	}

	out := &models.SearchResult{
		Query: q,
		Total: res.Total,
		Hits:  make([]models.SearchHit, 0, len(res.Hits)),
	}
	for _, hit := range res.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		b, ok := s.ds.Book(id)
		if !ok {
			continue
		}
		out.Hits = append(out.Hits, models.SearchHit{Book: models.NewBookCard(b), Score: hit.Score})
	}

	metrics.RecordSearch("ok", time.Since(start))
	return out, nil
}

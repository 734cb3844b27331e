// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookend/internal/catalog"
	"github.com/tomtom215/bookend/internal/config"
	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/detail"
	"github.com/tomtom215/bookend/internal/filterstore"
	"github.com/tomtom215/bookend/internal/models"
	"github.com/tomtom215/bookend/internal/profile"
	"github.com/tomtom215/bookend/internal/search"
)

func yr(y int) *int { return &y }

func testDataset() *dataset.Dataset {
	five := 5.0
	added := time.Date(2016, 3, 1, 0, 0, 0, 0, time.UTC)
	books := []models.Book{
		{WorkID: 1, Title: "Pride and Prejudice", Author: "Jane Austen", Genres: "romance, classics, fiction", PublicationYear: yr(1813), AvgRating: 4.25, ReviewsCount: 900, PopularityScore: 0.95, SimilarBooks: []int64{4, 2}},
		{WorkID: 2, Title: "Emma", Author: "Jane Austen", Genres: "romance, classics", PublicationYear: yr(1815), AvgRating: 4.0, ReviewsCount: 120, PopularityScore: 0.60},
		{WorkID: 3, Title: "Dracula", Author: "Bram Stoker", Genres: "horror, classics", PublicationYear: yr(1897), AvgRating: 3.9, ReviewsCount: 300, PopularityScore: math.NaN(), SimilarBooksMalformed: true},
		{WorkID: 4, Title: "The Hobbit", Author: "J.R.R. Tolkien", Genres: "fantasy, fiction", Description: "A hobbit is swept into a quest for dragon gold.", PublicationYear: yr(1937), AvgRating: 4.3, ReviewsCount: 2000, PopularityScore: 0.99},
		{WorkID: 5, Title: "Dune", Author: "Frank Herbert", Genres: "science fiction, fiction", PublicationYear: yr(1965), AvgRating: 4.2, ReviewsCount: 60, PopularityScore: 0.70},
		{WorkID: 6, Title: "Station Eleven", Author: "Emily St. John Mandel", Genres: "science fiction, dystopia", PublicationYear: yr(2014), AvgRating: 3.8, ReviewsCount: 80, PopularityScore: 0.40},
	}
	reviews := []models.Review{
		{WorkID: 1, UserID: "u-1", Rating: &five, Text: "Loved it", DateAdded: &added},
		{WorkID: 1, UserID: "u-404", Text: "Anonymous"},
	}
	users := []models.User{
		{UserID: "u-1", DummyID: "reader1", Name: "Ada", BooksRead: 12, AvgRating: 4.1, FavoriteGenre: "Fantasy", RecentReads: []int64{4, 1}, Recommendations: []int64{5, 999}},
	}
	ds, _ := dataset.New(books, reviews, users, nil)
	return ds
}

func testConfig() *config.Config {
	return &config.Config{
		API:     config.APIConfig{DefaultPageSize: 2, MaxPageSize: 5, DefaultTopN: 3},
		Catalog: config.CatalogConfig{ReaderCount: 18800, HiddenGemMinReviews: 50, CacheTTL: time.Minute},
	}
}

type testOptions struct {
	store      filterstore.Store
	noSearch   bool
	middleware *ChiMiddlewareConfig
}

func setupTestServer(t *testing.T, opts testOptions) http.Handler {
	t.Helper()
	cfg := testConfig()
	ds := testDataset()

	engine, err := catalog.New(ds, cfg.Catalog, cfg.API.DefaultTopN)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	var idx *search.Index
	if !opts.noSearch {
		idx, err = search.Build(ds, config.SearchConfig{Enabled: true})
		if err != nil {
			t.Fatalf("search.Build() error = %v", err)
		}
		t.Cleanup(func() { _ = idx.Close() })
	}

	store := opts.store
	if store == nil {
		store = filterstore.NewMemoryStore(time.Hour)
	}

	mwCfg := opts.middleware
	if mwCfg == nil {
		mwCfg = DefaultChiMiddlewareConfig()
		mwCfg.RateLimitDisabled = true
	}

	h := NewHandler(Dependencies{
		Config:   cfg,
		Dataset:  ds,
		Catalog:  engine,
		Books:    detail.NewResolver(ds),
		Profiles: profile.NewResolver(ds),
		Search:   idx,
		Filters:  store,
		Version:  "test",
	})
	return NewRouter(h, NewChiMiddleware(mwCfg), 0).SetupChi()
}

// envelope mirrors models.APIResponse with undecoded data.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func do(t *testing.T, h http.Handler, method, target string, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode body %q: %v", method, target, rec.Body.String(), err)
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
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

// unavailableStore fails every operation like a Redis store whose breaker
// is open.
type unavailableStore struct{}

func (unavailableStore) Save(context.Context, string, models.FilterState) error {
	return fmt.Errorf("save: %w", filterstore.ErrUnavailable)
}

func (unavailableStore) Load(context.Context, string) (models.FilterState, error) {
	return models.FilterState{}, fmt.Errorf("load: %w", filterstore.ErrUnavailable)
}

func (unavailableStore) Delete(context.Context, string) error {
	return fmt.Errorf("delete: %w", filterstore.ErrUnavailable)
}

func (unavailableStore) Sweep(context.Context) (int, error) { return 0, nil }
func (unavailableStore) Backend() string                    { return "redis" }
func (unavailableStore) Close() error                       { return nil }
func (unavailableStore) Ping(context.Context) error         { return filterstore.ErrUnavailable }

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/bookend/internal/detail"
	"github.com/tomtom215/bookend/internal/models"
)

func TestBookDetail(t *testing.T) {
	h := setupTestServer(t, testOptions{})

	rec, env := do(t, h, http.MethodGet, "/api/v1/books/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var book models.BookDetail
	decodeData(t, env, &book)

	if book.Title != "Pride and Prejudice" {
		t.Errorf("Title = %q", book.Title)
	}
	if got := cardIDs(book.SimilarBooks); !equalIDs(got, []int64{2, 4}) {
		t.Errorf("SimilarBooks = %v, want [2 4] in table order", got)
	}
	if len(book.Reviews) != 2 {
		t.Fatalf("len(Reviews) = %d, want 2", len(book.Reviews))
	}
	if book.Reviews[0].ReviewerName != "Ada" || book.Reviews[0].Rating != 5 {
		t.Errorf("Reviews[0] = %+v, want Ada rating 5", book.Reviews[0])
	}
	if book.Reviews[1].ReviewerName != detail.UnknownReader || book.Reviews[1].Rating != 0 {
		t.Errorf("Reviews[1] = %+v, want unknown reader rating 0", book.Reviews[1])
	}
	if len(book.Warnings) != 0 {
		t.Errorf("Warnings = %+v, want none", book.Warnings)
	}
}

func TestBookDetail_MalformedSimilarBooks(t *testing.T) {
	h := setupTestServer(t, testOptions{})

	rec, env := do(t, h, http.MethodGet, "/api/v1/books/3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var book models.BookDetail
	decodeData(t, env, &book)

	if len(book.SimilarBooks) != 0 {
		t.Errorf("SimilarBooks = %v, want empty", cardIDs(book.SimilarBooks))
	}
	if len(book.Warnings) != 1 || book.Warnings[0].Section != "similar_books" || book.Warnings[0].Code != models.WarningMalformedAuxiliaryData {
		t.Errorf("Warnings = %+v, want one similar_books warning", book.Warnings)
	}
}

func TestBookDetail_NotFound(t *testing.T) {
	h := setupTestServer(t, testOptions{})

	for _, id := range []string{"77", "abc", "1.5"} {
		rec, env := do(t, h, http.MethodGet, "/api/v1/books/"+id, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", id, rec.Code)
			continue
		}
		if env.Error == nil || env.Error.Code != CodeNotFound {
			t.Errorf("%s: Error = %+v, want NOT_FOUND", id, env.Error)
		}
	}
}

func TestProfile(t *testing.T) {
	h := setupTestServer(t, testOptions{})

	rec, env := do(t, h, http.MethodGet, "/api/v1/profile?user_id=reader1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var p models.ProfileDetail
	decodeData(t, env, &p)

	if p.Name != "Ada" || p.KPIs.FavoriteGenre != "Fantasy" {
		t.Errorf("profile = %s/%s", p.Name, p.KPIs.FavoriteGenre)
	}
	if got := cardIDs(p.RecentReads); !equalIDs(got, []int64{4, 1}) {
		t.Errorf("RecentReads = %v, want [4 1]", got)
	}
	if got := cardIDs(p.Recommendations); !equalIDs(got, []int64{5}) {
		t.Errorf("Recommendations = %v, want [5]", got)
	}
	if p.UnresolvedRecommendations != 1 {
		t.Errorf("UnresolvedRecommendations = %d, want 1", p.UnresolvedRecommendations)
	}
}

func TestProfile_NotFound(t *testing.T) {
	h := setupTestServer(t, testOptions{})

	tests := []struct {
		query   string
		message string
	}{
		{"", "Please enter a User ID."},
		{"?user_id=%20", "Please enter a User ID."},
		{"?user_id=ghost", "No data found for User ID: ghost"},
	}
	for _, tt := range tests {
		rec, env := do(t, h, http.MethodGet, "/api/v1/profile"+tt.query, "")
		if rec.Code != http.StatusNotFound {
			t.Errorf("%q: status = %d, want 404", tt.query, rec.Code)
			continue
		}
		if env.Error == nil || env.Error.Message != tt.message {
			t.Errorf("%q: Error = %+v, want message %q", tt.query, env.Error, tt.message)
		}
	}
}

func TestSearch(t *testing.T) {
	h := setupTestServer(t, testOptions{})

	tests := []struct {
		name  string
		query string
		first int64
	}{
		{"exact title word", "dracula", 3},
		{"misspelled title word", "hobit", 4},
		{"title prefix", "statio", 6},
		{"author", "herbert", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodGet, "/api/v1/search?q="+tt.query, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var res models.SearchResult
			decodeData(t, env, &res)
			if len(res.Hits) == 0 || res.Hits[0].Book.WorkID != tt.first {
				t.Errorf("hits = %+v, want work %d first", res.Hits, tt.first)
			}
		})
	}
}

func TestSearch_Invalid(t *testing.T) {
	h := setupTestServer(t, testOptions{})

	for _, q := range []string{"", "?q=", "?q=%20%20", "?q=dune&limit=x", "?q=" + strings.Repeat("a", 201)} {
		rec, env := do(t, h, http.MethodGet, "/api/v1/search"+q, "")
		if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != CodeValidation {
			t.Errorf("%q: status = %d, error = %+v, want 400 VALIDATION_ERROR", q, rec.Code, env.Error)
		}
	}
}

func TestSearch_Disabled(t *testing.T) {
	h := setupTestServer(t, testOptions{noSearch: true})

	rec, env := do(t, h, http.MethodGet, "/api/v1/search?q=dune", "")
	if rec.Code != http.StatusServiceUnavailable || env.Error.Code != CodeSearchUnavailable {
		t.Errorf("status = %d, error = %+v, want 503 SEARCH_UNAVAILABLE", rec.Code, env.Error)
	}
}

func TestHealth(t *testing.T) {
	h := setupTestServer(t, testOptions{})

	rec, env := do(t, h, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var health models.HealthStatus
	decodeData(t, env, &health)
	if health.Status != "healthy" || !health.DatasetLoaded || !health.SearchReady {
		t.Errorf("health = %+v", health)
	}
	if health.FilterStore != "memory" || health.Dataset == nil || health.Dataset.Books != 6 {
		t.Errorf("health = %+v", health)
	}

	for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready"} {
		if rec, _ := do(t, h, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestHealth_StoreDown(t *testing.T) {
	h := setupTestServer(t, testOptions{store: unavailableStore{}})

	_, env := do(t, h, http.MethodGet, "/api/v1/health", "")
	var health models.HealthStatus
	decodeData(t, env, &health)
	if health.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", health.Status)
	}

	rec, env := do(t, h, http.MethodGet, "/api/v1/health/ready", "")
	if rec.Code != http.StatusServiceUnavailable || env.Error.Code != CodeNotReady {
		t.Errorf("ready: status = %d, error = %+v", rec.Code, env.Error)
	}
	if rec, _ := do(t, h, http.MethodGet, "/api/v1/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("live: status = %d, want 200", rec.Code)
	}
}

func TestRouter_Fallbacks(t *testing.T) {
	h := setupTestServer(t, testOptions{})

	rec, env := do(t, h, http.MethodGet, "/api/v1/nowhere", "")
	if rec.Code != http.StatusNotFound || env.Error.Code != CodeRouteNotFound {
		t.Errorf("unknown route: status = %d, error = %+v", rec.Code, env.Error)
	}

	rec, env = do(t, h, http.MethodPut, "/api/v1/filters/abc", "{}")
	if rec.Code != http.StatusMethodNotAllowed || env.Error.Code != CodeMethodNotAllowed {
		t.Errorf("wrong method: status = %d, error = %+v", rec.Code, env.Error)
	}

	rec, _ = do(t, h, http.MethodGet, "/api/v1/catalog/options", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := setupTestServer(t, testOptions{})
	do(t, h, http.MethodGet, "/api/v1/books/1", "")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `endpoint="/api/v1/books/{workID}"`) {
		t.Error("metrics should label requests by route pattern")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitRequests = 2
	mw.RateLimitWindow = time.Minute
	h := setupTestServer(t, testOptions{middleware: mw})

	for i := 0; i < 2; i++ {
		if rec, _ := do(t, h, http.MethodGet, "/api/v1/catalog/options", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}
	rec, env := do(t, h, http.MethodGet, "/api/v1/catalog/options", "")
	if rec.Code != http.StatusTooManyRequests || env.Error.Code != CodeRateLimitExceeded {
		t.Errorf("status = %d, error = %+v, want 429 RATE_LIMIT_EXCEEDED", rec.Code, env.Error)
	}

	if rec, _ := do(t, h, http.MethodGet, "/api/v1/health/live", ""); rec.Code != http.StatusOK {
		t.Errorf("health probes use their own budget, status = %d", rec.Code)
	}
}

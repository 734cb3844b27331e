// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

func sampleCount(t *testing.T, h prometheus.Metric) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordTableLoad(t *testing.T) {
	RecordTableLoad("books_test", 42, 150*time.Millisecond, nil)
	if got := testutil.ToFloat64(DatasetRows.WithLabelValues("books_test")); got != 42 {
		t.Errorf("dataset_rows = %v, want 42", got)
	}

	before := testutil.ToFloat64(DatasetLoadErrors.WithLabelValues("users_test"))
	RecordTableLoad("users_test", 0, time.Second, errors.New("http 404"))
	if got := testutil.ToFloat64(DatasetLoadErrors.WithLabelValues("users_test")); got != before+1 {
		t.Errorf("dataset_load_errors_total = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(DatasetRows.WithLabelValues("users_test")); got != 0 {
		t.Errorf("failed load should not set rows, got %v", got)
	}
}

func TestRecordRepairs(t *testing.T) {
	before := testutil.ToFloat64(DatasetRepairs.WithLabelValues("orphan_review_test"))
	RecordRepairs("orphan_review_test", 0)
	RecordRepairs("orphan_review_test", 3)
	if got := testutil.ToFloat64(DatasetRepairs.WithLabelValues("orphan_review_test")); got != before+3 {
		t.Errorf("dataset_repairs_total = %v, want %v", got, before+3)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{"catalog overview", "GET", "/api/v1/catalog/overview", "200", 5 * time.Millisecond},
		{"unknown book", "GET", "/api/v1/books/{id}", "404", time.Millisecond},
		{"bad filter", "POST", "/api/v1/filters", "400", 2 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordAPIRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("api_requests_total = %v, want %v", after, before+1)
			}
		})
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+2 {
		t.Errorf("api_active_requests = %v, want %v", got, before+2)
	}
	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("api_active_requests = %v, want %v", got, before)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("overview_test"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("overview_test"))

	RecordCacheLookup("overview_test", true)
	RecordCacheLookup("overview_test", false)
	RecordCacheLookup("overview_test", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("overview_test")); got != hits+1 {
		t.Errorf("cache_hits_total = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("overview_test")); got != misses+2 {
		t.Errorf("cache_misses_total = %v, want %v", got, misses+2)
	}
}

func TestRecordFilterStoreOp(t *testing.T) {
	before := testutil.ToFloat64(FilterStoreOperations.WithLabelValues("memory", "get", "not_found"))
	RecordFilterStoreOp("memory", "get", "not_found")
	if got := testutil.ToFloat64(FilterStoreOperations.WithLabelValues("memory", "get", "not_found")); got != before+1 {
		t.Errorf("filter_store_operations_total = %v, want %v", got, before+1)
	}
}

func TestRecordSearch(t *testing.T) {
	ok := testutil.ToFloat64(SearchQueries.WithLabelValues("ok"))
	throttled := testutil.ToFloat64(SearchQueries.WithLabelValues("throttled"))
	observed := sampleCount(t, SearchDuration)

	RecordSearch("ok", time.Millisecond)
	RecordSearch("throttled", 0)

	if got := testutil.ToFloat64(SearchQueries.WithLabelValues("ok")); got != ok+1 {
		t.Errorf("search_queries_total{ok} = %v, want %v", got, ok+1)
	}
	if got := testutil.ToFloat64(SearchQueries.WithLabelValues("throttled")); got != throttled+1 {
		t.Errorf("search_queries_total{throttled} = %v, want %v", got, throttled+1)
	}
	if got := sampleCount(t, SearchDuration); got != observed+1 {
		t.Errorf("search_duration_seconds samples = %d, want %d; throttled queries are not timed", got, observed+1)
	}
}

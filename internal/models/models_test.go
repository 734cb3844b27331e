// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package models

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestNewReadingTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want ReadingTime
	}{
		{"zero", 0, ReadingTime{}},
		{"hours only", 5*time.Hour + 59*time.Minute, ReadingTime{Days: 0, Hours: 5}},
		{"days and hours", 3*24*time.Hour + 4*time.Hour + 30*time.Minute, ReadingTime{Days: 3, Hours: 4}},
		{"negative floors days", -2 * time.Hour, ReadingTime{Days: -1, Hours: 22}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewReadingTime(tt.in); got != tt.want {
				t.Errorf("NewReadingTime(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHistogram(t *testing.T) {
	h := NewHistogram(StarBuckets{50, 40, 30, 20, 10})
	if len(h) != 5 {
		t.Fatalf("len = %d, want 5", len(h))
	}
	if h[0].Label != "5 Stars" || h[0].Stars != 5 || h[0].Count != 50 {
		t.Errorf("first bucket = %+v", h[0])
	}
	if h[4].Label != "1 Star" || h[4].Stars != 1 || h[4].Count != 10 {
		t.Errorf("last bucket = %+v", h[4])
	}
}

func TestFloatPtr(t *testing.T) {
	if FloatPtr(math.NaN()) != nil {
		t.Error("NaN should map to nil")
	}
	if FloatPtr(math.Inf(1)) != nil {
		t.Error("Inf should map to nil")
	}
	if p := FloatPtr(4.25); p == nil || *p != 4.25 {
		t.Errorf("FloatPtr(4.25) = %v", p)
	}
}

func TestBookCard_EncodesWithMissingScores(t *testing.T) {
	b := &Book{WorkID: 7, Title: "Untitled", AvgRating: math.NaN(), PopularityScore: math.NaN()}
	data, err := json.Marshal(NewBookCard(b))
	if err != nil {
		t.Fatalf("marshal card: %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := out["avg_rating"]; ok {
		t.Error("avg_rating should be omitted when missing")
	}
	if out["work_id"] != float64(7) {
		t.Errorf("work_id = %v, want 7", out["work_id"])
	}
}

func TestFilterState_IsEmptyAndClone(t *testing.T) {
	var empty FilterState
	if !empty.IsEmpty() {
		t.Error("zero FilterState should be empty")
	}

	f := FilterState{Genres: []string{"Fantasy"}, Years: &YearRange{Min: 1800, Max: 1899}}
	if f.IsEmpty() {
		t.Error("FilterState with genres should not be empty")
	}

	c := f.Clone()
	c.Genres[0] = "Horror"
	c.Years.Min = 1
	if f.Genres[0] != "Fantasy" || f.Years.Min != 1800 {
		t.Errorf("Clone shares memory with original: %+v", f)
	}
}

func TestEraValid(t *testing.T) {
	for _, e := range Eras {
		if !e.Valid() {
			t.Errorf("%q should be valid", e)
		}
	}
	if Era("victorian").Valid() {
		t.Error("unknown era should be invalid")
	}
}

func TestNotFoundError_Is(t *testing.T) {
	err := fmt.Errorf("resolve: %w", NewNotFoundError("book", "x", "No book with ID %s", "x"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped NotFoundError should match ErrNotFound")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Message != "No book with ID x" {
		t.Errorf("errors.As failed or message wrong: %+v", nf)
	}
}

func TestTasteRecordComplete(t *testing.T) {
	if (TasteRecord{MainGenre: "Fantasy"}).Complete() {
		t.Error("record without author should be incomplete")
	}
	if !(TasteRecord{MainGenre: "Fantasy", Author: "Tolkien"}).Complete() {
		t.Error("record with genre and author should be complete")
	}
}

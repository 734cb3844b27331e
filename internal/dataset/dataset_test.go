// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package dataset

import (
	"testing"

	"github.com/tomtom215/bookend/internal/models"
)

func year(y int) *int { return &y }

func TestNew_IndexesAndRepairs(t *testing.T) {
	books := []models.Book{
		{WorkID: 1, Title: "First", Author: "B", PublicationYear: year(1850)},
		{WorkID: 2, Title: "Second", Author: "A", PublicationYear: year(2010)},
		{WorkID: 1, Title: "Duplicate", Author: "C", PublicationYear: year(1500)},
		{WorkID: 3, Title: "Undated", Author: "A"},
	}
	reviews := []models.Review{
		{WorkID: 1, UserID: "u1", Text: "a"},
		{WorkID: 9, UserID: "u1", Text: "orphan"},
		{WorkID: 1, UserID: "u2", Text: "b"},
	}
	users := []models.User{
		{UserID: "u1", DummyID: "d1", Name: "Ada"},
		{UserID: "u2", DummyID: "d1", Name: "Dup"},
		{UserID: "u3", DummyID: "d3", Name: "Cy"},
	}
	taste := []models.TasteRecord{
		{UserID: "u1", MainGenre: "Fantasy", Author: "B"},
		{UserID: "u1", MainGenre: "", Author: "B"},
	}

	d, repairs := New(books, reviews, users, taste)

	if repairs.DuplicateBooks != 1 {
		t.Errorf("DuplicateBooks = %d, want 1", repairs.DuplicateBooks)
	}
	if repairs.DuplicateDummyID != 1 {
		t.Errorf("DuplicateDummyID = %d, want 1", repairs.DuplicateDummyID)
	}
	if repairs.OrphanReviews != 1 {
		t.Errorf("OrphanReviews = %d, want 1", repairs.OrphanReviews)
	}

	if got := len(d.Books()); got != 3 {
		t.Fatalf("len(Books) = %d, want 3", got)
	}
	b, ok := d.Book(1)
	if !ok || b.Title != "First" {
		t.Errorf("Book(1) = %+v, %v; want the first row", b, ok)
	}
	if _, ok := d.Book(42); ok {
		t.Error("Book(42) should not exist")
	}

	minY, maxY := d.YearBounds()
	if minY != 1850 || maxY != 2010 {
		t.Errorf("YearBounds = %d..%d, want 1850..2010", minY, maxY)
	}
	if got := d.UndatedBooks(); got != 1 {
		t.Errorf("UndatedBooks() = %d, want 1", got)
	}

	if got := d.ReviewsFor(1); len(got) != 2 || got[0].Text != "a" {
		t.Errorf("ReviewsFor(1) = %+v", got)
	}

	u, ok := d.UserByDummyID("d1")
	if !ok || u.Name != "Ada" {
		t.Errorf("UserByDummyID(d1) = %+v, %v", u, ok)
	}
	if _, ok := d.UserByID("u2"); ok {
		t.Error("user dropped as duplicate should not be indexed by internal ID")
	}
	if len(d.TasteFor("u1")) != 2 {
		t.Errorf("TasteFor(u1) = %d records, want 2", len(d.TasteFor("u1")))
	}

	stats := d.Stats()
	if stats.Books != 3 || stats.Reviews != 2 || stats.Users != 2 || stats.TasteRecords != 2 {
		t.Errorf("Stats = %+v", stats)
	}

	authors := d.Authors()
	if len(authors) != 2 || authors[0] != "A" || authors[1] != "B" {
		t.Errorf("Authors = %v, want [A B]", authors)
	}

	if pos, ok := d.BookPosition(3); !ok || pos != 2 {
		t.Errorf("BookPosition(3) = %d, %v; want 2", pos, ok)
	}
}

func TestNew_Empty(t *testing.T) {
	d, _ := New(nil, nil, nil, nil)
	if len(d.Books()) != 0 {
		t.Error("expected no books")
	}
	minY, maxY := d.YearBounds()
	if minY != 0 || maxY != 0 {
		t.Errorf("YearBounds = %d..%d, want 0..0", minY, maxY)
	}
}

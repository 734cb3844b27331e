// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

// Package dataset holds the immutable, indexed snapshot of the four source
// tables. A Dataset is built once after loading and handed to every engine
// and resolver; nothing mutates it afterwards, so concurrent readers need
// no locking.
package dataset

import (
	"sort"
	"time"

	"github.com/tomtom215/bookend/internal/models"
)

// Dataset is the read-only handle over books, reviews, users and taste records.
type Dataset struct {
	books       []models.Book
	bookIndex   map[int64]int
	reviews     map[int64][]models.Review
	reviewCount int
	users       []models.User
	userByID    map[string]int
	userByDummy map[string]int
	taste       map[string][]models.TasteRecord
	tasteCount  int
	minYear     int
	maxYear     int
	undated     int
	loadedAt    time.Time
}

// Repairs counts rows dropped or fixed while building a Dataset.
type Repairs struct {
	DuplicateBooks   int
	DuplicateDummyID int
	OrphanReviews    int
}

// New builds a Dataset from loaded rows.
//
// Duplicate work IDs and duplicate dummy IDs keep their first row. Reviews
// for unknown books are kept out of the index since no page can show them.
// Review order within a book is preserved.
func New(books []models.Book, reviews []models.Review, users []models.User, taste []models.TasteRecord) (*Dataset, Repairs) {
	var repairs Repairs
	d := &Dataset{
		books:       make([]models.Book, 0, len(books)),
		bookIndex:   make(map[int64]int, len(books)),
		reviews:     make(map[int64][]models.Review),
		users:       make([]models.User, 0, len(users)),
		userByID:    make(map[string]int, len(users)),
		userByDummy: make(map[string]int, len(users)),
		taste:       make(map[string][]models.TasteRecord),
		loadedAt:    time.Now().UTC(),
	}

	first := true
	for i := range books {
		b := books[i]
		if _, dup := d.bookIndex[b.WorkID]; dup {
			repairs.DuplicateBooks++
			continue
		}
		d.bookIndex[b.WorkID] = len(d.books)
		d.books = append(d.books, b)

		if b.PublicationYear == nil {
			d.undated++
			continue
		}
		year := *b.PublicationYear
		if first {
			d.minYear, d.maxYear = year, year
			first = false
			continue
		}
		if year < d.minYear {
			d.minYear = year
		}
		if year > d.maxYear {
			d.maxYear = year
		}
	}

	for i := range reviews {
		r := reviews[i]
		if _, ok := d.bookIndex[r.WorkID]; !ok {
			repairs.OrphanReviews++
			continue
		}
		d.reviews[r.WorkID] = append(d.reviews[r.WorkID], r)
		d.reviewCount++
	}

	for i := range users {
		u := users[i]
		if _, dup := d.userByDummy[u.DummyID]; dup {
			repairs.DuplicateDummyID++
			continue
		}
		idx := len(d.users)
		d.users = append(d.users, u)
		d.userByDummy[u.DummyID] = idx
		if _, seen := d.userByID[u.UserID]; !seen {
			d.userByID[u.UserID] = idx
		}
	}

	for _, rec := range taste {
		d.taste[rec.UserID] = append(d.taste[rec.UserID], rec)
		d.tasteCount++
	}

	return d, repairs
}

// Books returns every book in table order. Callers must not modify the slice.
func (d *Dataset) Books() []models.Book {
	return d.books
}

// Book returns the book with the given work ID.
func (d *Dataset) Book(workID int64) (*models.Book, bool) {
	idx, ok := d.bookIndex[workID]
	if !ok {
		return nil, false
	}
	return &d.books[idx], true
}

// BookPosition returns the table position of a work ID.
func (d *Dataset) BookPosition(workID int64) (int, bool) {
	idx, ok := d.bookIndex[workID]
	return idx, ok
}

// ReviewsFor returns the reviews of one book in table order.
func (d *Dataset) ReviewsFor(workID int64) []models.Review {
	return d.reviews[workID]
}

// UserByDummyID looks a reader up by the public identifier.
func (d *Dataset) UserByDummyID(dummyID string) (*models.User, bool) {
	idx, ok := d.userByDummy[dummyID]
	if !ok {
		return nil, false
	}
	return &d.users[idx], true
}

// UserByID looks a reader up by the internal identifier.
func (d *Dataset) UserByID(userID string) (*models.User, bool) {
	idx, ok := d.userByID[userID]
	if !ok {
		return nil, false
	}
	return &d.users[idx], true
}

// TasteFor returns the taste records of one internal user ID.
func (d *Dataset) TasteFor(userID string) []models.TasteRecord {
	return d.taste[userID]
}

// YearBounds returns the smallest and largest publication year.
// Both are zero when no book has a year.
func (d *Dataset) YearBounds() (minYear, maxYear int) {
	return d.minYear, d.maxYear
}

// UndatedBooks returns the number of books without a publication year.
func (d *Dataset) UndatedBooks() int {
	return d.undated
}

// Stats summarizes table sizes.
func (d *Dataset) Stats() models.DatasetStats {
	return models.DatasetStats{
		Books:        len(d.books),
		Reviews:      d.reviewCount,
		Users:        len(d.users),
		TasteRecords: d.tasteCount,
		MinYear:      d.minYear,
		MaxYear:      d.maxYear,
		LoadedAt:     d.loadedAt,
	}
}

// Authors returns the distinct authors, sorted.
func (d *Dataset) Authors() []string {
	seen := make(map[string]struct{})
	for i := range d.books {
		if a := d.books[i].Author; a != "" {
			seen[a] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for a := range seen {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

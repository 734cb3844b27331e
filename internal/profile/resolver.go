// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package profile

import (
	"sort"
	"strings"

	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/models"
)

// NoFavoriteGenre is shown when a reader has no favorite genre on record.
const NoFavoriteGenre = "N/A"

// Resolver assembles reader profiles from the dataset.
type Resolver struct {
	ds *dataset.Dataset
}

// NewResolver creates a resolver over ds.
func NewResolver(ds *dataset.Dataset) *Resolver {
	return &Resolver{ds: ds}
}

// Resolve builds the profile of the reader with the given public ID.
// Lookups are by dummy ID only. Missing or unknown IDs return a
// *models.NotFoundError whose message is suitable for display.
func (r *Resolver) Resolve(dummyID string) (*models.ProfileDetail, error) {
	id := strings.TrimSpace(dummyID)
	if id == "" {
		return nil, models.NewNotFoundError("user", dummyID, "Please enter a User ID.")
	}
	u, ok := r.ds.UserByDummyID(id)
	if !ok {
		return nil, models.NewNotFoundError("user", id, "No data found for User ID: %s", id)
	}

	p := &models.ProfileDetail{
		DummyID: u.DummyID,
		Name:    u.Name,
		KPIs: models.ProfileKPIs{
			BooksRead:     u.BooksRead,
			AvgRating:     models.FloatPtr(u.AvgRating),
			ReadingTime:   models.NewReadingTime(u.AvgReadingTime),
			FavoriteGenre: favoriteGenre(u.FavoriteGenre),
		},
		RatingHistogram: models.NewHistogram(u.StarRatings),
		Taste:           Taste(r.ds.TasteFor(u.UserID)),
	}

	if u.RecentReadsMalformed {
		p.RecentReads = []models.BookCard{}
		p.Warnings = append(p.Warnings, malformed("recent_reads", "The recent reads list for this reader could not be read."))
	} else {
		p.RecentReads, _ = r.shelf(u.RecentReads)
	}

	if u.RecommendationsMalformed {
		p.Recommendations = []models.BookCard{}
		p.Warnings = append(p.Warnings, malformed("recommendations", "The recommendations for this reader could not be read."))
	} else {
		p.Recommendations, p.UnresolvedRecommendations = r.shelf(u.Recommendations)
	}

	if len(p.Warnings) > 0 {
		logging.Debug().Str("dummy_id", id).Int("warnings", len(p.Warnings)).Msg("Profile assembled with degraded sections")
	}
	return p, nil
}

// shelf resolves IDs to cards in stored order. IDs missing from the books
// table are skipped and counted.
func (r *Resolver) shelf(workIDs []int64) ([]models.BookCard, int) {
	out := make([]models.BookCard, 0, len(workIDs))
	unresolved := 0
	for _, id := range workIDs {
		b, ok := r.ds.Book(id)
		if !ok {
			unresolved++
			continue
		}
		out = append(out, models.NewBookCard(b))
	}
	return out, unresolved
}

func favoriteGenre(g string) string {
	if g = strings.TrimSpace(g); g == "" {
		return NoFavoriteGenre
	}
	return g
}

func malformed(section, message string) models.Warning {
	return models.Warning{Section: section, Code: models.WarningMalformedAuxiliaryData, Message: message}
}

// Taste groups complete taste records by genre then author. Both levels
// are ordered by row count descending, then name ascending.
func Taste(records []models.TasteRecord) []models.TasteGenre {
	byGenre := make(map[string]map[string]int)
	totals := make(map[string]int)
	for _, rec := range records {
		if !rec.Complete() {
			continue
		}
		authors, ok := byGenre[rec.MainGenre]
		if !ok {
			authors = make(map[string]int)
			byGenre[rec.MainGenre] = authors
		}
		authors[rec.Author]++
		totals[rec.MainGenre]++
	}

	out := make([]models.TasteGenre, 0, len(byGenre))
	for genre, authors := range byGenre {
		leaves := make([]models.TasteAuthor, 0, len(authors))
		for a, n := range authors {
			leaves = append(leaves, models.TasteAuthor{Author: a, Count: n})
		}
		sort.Slice(leaves, func(i, j int) bool {
			if leaves[i].Count != leaves[j].Count {
				return leaves[i].Count > leaves[j].Count
			}
			return leaves[i].Author < leaves[j].Author
		})
		out = append(out, models.TasteGenre{Genre: genre, Count: totals[genre], Authors: leaves})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package catalog implements the book explorer: filtering, rankings,
aggregations, the full listing and the filter option lists.

# Filtering

A models.FilterState combines genres, authors, a year range or an era,
and an optional CEL expression. Dimensions combine with AND; values within
one dimension combine with OR:

	subset, err := engine.Filter(models.FilterState{
	    Genres: []string{"fantasy"},
	    Era:    models.Era1800s,
	    Where:  "book.avg_rating >= 4.0",
	})

Genre values are matched as literal, case-insensitive substrings of the
raw genre field using an Aho-Corasick automaton from internal/cache.

# Rankings

Rank orders a subset by one of three strategies: most-reviewed,
most-popular and hidden-gems. Hidden gems are books with at least
HiddenGemMinReviews reviews but no more than the subset's median.

# Caching

Overview results are kept in a TTL cache keyed by the filter state and
the ranking length. Compiled where expressions are cached per expression
text. Engine.Cleanup is called by the supervisor's sweeper.

# Errors

ErrInvalidCriteria wraps every client mistake. A state matching no books
yields models.ErrEmptyResult from Overview, Rank and Listing.
*/
package catalog

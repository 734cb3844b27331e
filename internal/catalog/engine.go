// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/bookend/internal/cache"
	"github.com/tomtom215/bookend/internal/config"
	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/models"
)

// ErrInvalidCriteria marks criteria the client must correct: an unknown
// era, strategy or sort, an inverted year range, or a bad where expression.
var ErrInvalidCriteria = errors.New("invalid criteria")

// Suggestion fields accepted by Suggest.
const (
	FieldAuthor = "author"
	FieldGenre  = "genre"
)

// Engine serves the catalog explorer and listing over one dataset.
type Engine struct {
	ds        *dataset.Dataset
	cfg       config.CatalogConfig
	topN      int
	overviews *cache.Cache
	exprs     exprCompiler
	options   models.FilterOptions
	authors   *cache.Trie
	genres    *cache.Trie
}

// New builds an engine. Option lists and suggestion tries are computed
// once here since the dataset never changes.
func New(ds *dataset.Dataset, cfg config.CatalogConfig, topN int) (*Engine, error) {
	env, err := newExprEnv()
	if err != nil {
		return nil, fmt.Errorf("create expression environment: %w", err)
	}
	if topN <= 0 {
		topN = 5
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	e := &Engine{
		ds:        ds,
		cfg:       cfg,
		topN:      topN,
		overviews: cache.New("overview", ttl),
		exprs:     exprCompiler{env: env, programs: cache.New("where", ttl)},
		authors:   cache.NewTrieWithOptions(false, 10),
		genres:    cache.NewTrieWithOptions(false, 10),
	}
	e.buildOptions()
	return e, nil
}

func (e *Engine) buildOptions() {
	genreCounts := make(map[string]int)
	authorCounts := make(map[string]int)
	books := e.ds.Books()
	for i := range books {
		for _, tag := range SplitGenres(books[i].Genres) {
			genreCounts[tag]++
		}
		if a := books[i].Author; a != "" {
			authorCounts[a]++
		}
	}

	genres := make([]string, 0, len(genreCounts))
	for g, n := range genreCounts {
		genres = append(genres, g)
		e.genres.Add(g, n)
	}
	sort.Strings(genres)

	for a, n := range authorCounts {
		e.authors.Add(a, n)
	}

	minYear, maxYear := e.ds.YearBounds()
	e.options = models.FilterOptions{
		Genres:  genres,
		Authors: e.ds.Authors(),
		Years:   models.YearRange{Min: minYear, Max: maxYear},
		Eras:    EraOptions(minYear, maxYear),
	}
	logging.Debug().Int("genres", len(genres)).Int("authors", len(authorCounts)).Msg("Catalog options built")
}

// Filter applies state to the catalog: structured criteria first, then the
// where expression. A bad expression wraps ErrInvalidCriteria; an empty
// result is not an error here.
func (e *Engine) Filter(state models.FilterState) ([]*models.Book, error) {
	minYear, maxYear := e.ds.YearBounds()
	if state.Era != "" && !state.Era.Valid() {
		return nil, fmt.Errorf("%w: unknown era %q", ErrInvalidCriteria, state.Era)
	}
	subset := FilterBooks(e.ds.Books(), state, minYear, maxYear)

	where := strings.TrimSpace(state.Where)
	if where == "" {
		return subset, nil
	}
	prg, err := e.exprs.compile(where)
	if err != nil {
		return nil, err
	}
	return applyProgram(prg, subset), nil
}

// overviewKey is the cache key payload for an overview.
type overviewKey struct {
	Filters models.FilterState `json:"filters"`
	N       int                `json:"n"`
}

// Overview computes the explorer view for state: summary cards, the three
// rankings and the genre breakdown. Results are cached per normalized
// state. A state matching no books returns models.ErrEmptyResult.
func (e *Engine) Overview(state models.FilterState, n int) (*models.CatalogOverview, bool, error) {
	if n <= 0 {
		n = e.topN
	}
	key := cache.GenerateKey("overview", overviewKey{Filters: state, N: n})

	v, cached, err := e.overviews.GetOrCompute(key, func() (any, error) {
		subset, err := e.Filter(state)
		if err != nil {
			return nil, err
		}
		if len(subset) == 0 {
			return nil, fmt.Errorf("overview: %w", models.ErrEmptyResult)
		}
		ov := &models.CatalogOverview{
			Filters:        state,
			Summary:        Summary(subset, e.cfg.ReaderCount),
			MostReviewed:   cards(Rank(subset, MostReviewed, n, e.cfg.HiddenGemMinReviews)),
			MostPopular:    cards(Rank(subset, MostPopular, n, e.cfg.HiddenGemMinReviews)),
			HiddenGems:     cards(Rank(subset, HiddenGems, n, e.cfg.HiddenGemMinReviews)),
			GenreBreakdown: GenreBreakdown(subset),
		}
		return ov, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*models.CatalogOverview), cached, nil
}

// Rank returns one ranking for state. A state matching no books returns
// models.ErrEmptyResult; a ranking that filters everything out (for
// example no hidden gems) is an empty slice.
func (e *Engine) Rank(state models.FilterState, strategy Strategy, n int) ([]models.BookCard, error) {
	if n <= 0 {
		n = e.topN
	}
	subset, err := e.Filter(state)
	if err != nil {
		return nil, err
	}
	if len(subset) == 0 {
		return nil, fmt.Errorf("rank: %w", models.ErrEmptyResult)
	}
	return cards(Rank(subset, strategy, n, e.cfg.HiddenGemMinReviews)), nil
}

// Options returns the filter option lists.
func (e *Engine) Options() models.FilterOptions {
	return e.options
}

// Suggest returns up to limit author or genre completions for prefix,
// heaviest first.
func (e *Engine) Suggest(field, prefix string, limit int) ([]models.Suggestion, error) {
	var trie *cache.Trie
	switch field {
	case FieldAuthor:
		trie = e.authors
	case FieldGenre:
		trie = e.genres
	default:
		return nil, fmt.Errorf("%w: unknown suggestion field %q", ErrInvalidCriteria, field)
	}

	results := trie.AutocompleteWithLimit(strings.TrimSpace(prefix), limit)
	out := make([]models.Suggestion, len(results))
	for i, r := range results {
		out[i] = models.Suggestion{Value: r.Value, Books: r.Weight}
	}
	return out, nil
}

// Cleanup drops expired cache entries and returns how many were removed.
func (e *Engine) Cleanup() int {
	return e.overviews.Cleanup() + e.exprs.programs.Cleanup()
}

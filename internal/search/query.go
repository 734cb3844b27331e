// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package search

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Field boosts for match queries.
var fieldBoosts = []struct {
	field string
	boost float64
}{
	{fieldTitle, 3.0},
	{fieldAuthor, 2.0},
	{fieldGenres, 1.0},
	{fieldDescription, 1.0},
}

// minPrefixLength is the shortest token that gets a prefix query.
const minPrefixLength = 2

// buildQuery combines, with OR:
//   - an analyzed match of the whole input on every field, boosted;
//   - a fuzzy (edit distance 1) query per token on title and author;
//   - a prefix query per token on title and author.
func buildQuery(input string) query.Query {
	var queries []query.Query

	for _, fb := range fieldBoosts {
		m := bleve.NewMatchQuery(input)
		m.SetField(fb.field)
		m.SetBoost(fb.boost)
		queries = append(queries, m)
	}

	for _, tok := range tokens(input) {
		for _, field := range []string{fieldTitle, fieldAuthor} {
			fq := bleve.NewFuzzyQuery(tok)
			fq.SetFuzziness(1)
			fq.SetField(field)
			fq.SetBoost(0.8)
			queries = append(queries, fq)

			if len([]rune(tok)) >= minPrefixLength {
				pq := bleve.NewPrefixQuery(tok)
				pq.SetField(field)
				pq.SetBoost(0.5)
				queries = append(queries, pq)
			}
		}
	}

	return bleve.NewDisjunctionQuery(queries...)
}

// tokens lower-cases input and splits it into letter/digit runs, the way
// the standard analyzer sees indexed text. Term-level queries bypass
// analysis, so they need the same normalization.
func tokens(input string) []string {
	fields := strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

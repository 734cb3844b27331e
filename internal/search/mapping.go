// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Indexed field names.
const (
	fieldTitle       = "title"
	fieldAuthor      = "author"
	fieldGenres      = "genres"
	fieldDescription = "description"
)

// buildIndexMapping maps book documents. All text fields use the standard
// analyzer (unicode tokens, lower-cased, no stemming) so fuzzy and prefix
// terms compare against whole words. Nothing is stored; hits are resolved
// back to the dataset by ID.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = standard.Name

	doc := bleve.NewDocumentMapping()
	for _, name := range []string{fieldTitle, fieldAuthor, fieldGenres, fieldDescription} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = false
		fm.IncludeTermVectors = false
		doc.AddFieldMappingsAt(name, fm)
	}

	indexMapping.DefaultMapping = doc
	return indexMapping
}

// bookDocument is the indexed form of a book.
type bookDocument struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Genres      string `json:"genres"`
	Description string `json:"description"`
}

func (d bookDocument) toMap() map[string]interface{} {
	return map[string]interface{}{
		fieldTitle:       d.Title,
		fieldAuthor:      d.Author,
		fieldGenres:      d.Genres,
		fieldDescription: d.Description,
	}
}

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
)

// columnKind selects how a source column is cast and scanned.
type columnKind int

const (
	kindText    columnKind = iota // TRY_CAST AS VARCHAR into sql.NullString
	kindNumber                    // TRY_CAST AS DOUBLE into sql.NullFloat64
	kindInteger                   // TRY_CAST AS BIGINT into sql.NullInt64
)

// columnSpec describes one column the loader reads.
type columnSpec struct {
	name     string
	kind     columnKind
	required bool
}

func required(name string, kind columnKind) columnSpec {
	return columnSpec{name: name, kind: kind, required: true}
}

func optional(name string, kind columnKind) columnSpec {
	return columnSpec{name: name, kind: kind}
}

// tableSpec lists the columns read from one parquet source.
type tableSpec struct {
	name    string
	columns []columnSpec
}

var booksTable = tableSpec{
	name: "books",
	columns: []columnSpec{
		required("work_id", kindInteger),
		required("original_title", kindText),
		required("author", kindText),
		required("genres", kindText),
		required("original_publication_year", kindNumber),
		required("avg_rating", kindNumber),
		required("reviews_count", kindNumber),
		required("popularity_score", kindNumber),
		optional("description", kindText),
		optional("num_pages", kindNumber),
		optional("ratings_count", kindNumber),
		optional("5_star_ratings", kindNumber),
		optional("4_star_ratings", kindNumber),
		optional("3_star_ratings", kindNumber),
		optional("2_star_ratings", kindNumber),
		optional("1_star_ratings", kindNumber),
		optional("avg_reading_time", kindText),
		optional("avg_sentiment_pos", kindNumber),
		optional("avg_sentiment_neu", kindNumber),
		optional("avg_sentiment_neg", kindNumber),
		optional("review_text_summary", kindText),
		optional("image_url", kindText),
		optional("similar_books", kindText),
	},
}

var reviewsTable = tableSpec{
	name: "reviews",
	columns: []columnSpec{
		required("work_id", kindInteger),
		required("user_id", kindText),
		optional("rating", kindNumber),
		optional("review_text", kindText),
		optional("date_added", kindText),
	},
}

var usersTable = tableSpec{
	name: "users",
	columns: []columnSpec{
		required("user_id", kindText),
		required("dummy_id", kindText),
		required("name", kindText),
		optional("books_read", kindNumber),
		optional("avg_rating", kindNumber),
		optional("avg_reading_time", kindText),
		optional("favorite_genre", kindText),
		optional("recent_reads", kindText),
		optional("book_recs_id", kindText),
		optional("5_star_rating", kindNumber),
		optional("4_star_rating", kindNumber),
		optional("3_star_rating", kindNumber),
		optional("2_star_rating", kindNumber),
		optional("1_star_rating", kindNumber),
	},
}

var tasteTable = tableSpec{
	name: "taste",
	columns: []columnSpec{
		required("user_id", kindText),
		required("main_genre", kindText),
		required("author", kindText),
	},
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// quoteIdent renders s as a SQL identifier.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// sourceColumns returns the column names present in a parquet source,
// keyed by lower-case name.
func sourceColumns(ctx context.Context, conn *sql.DB, source string) (map[string]string, error) {
	rows, err := conn.QueryContext(ctx, fmt.Sprintf("SELECT * FROM read_parquet(%s) LIMIT 0", quoteLiteral(source)))
	if err != nil {
		return nil, fmt.Errorf("read parquet schema: %w", err)
	}
	defer closeWithLog(rows, "rows")

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read column names: %w", err)
	}
	present := make(map[string]string, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if _, dup := present[key]; !dup {
			present[key] = n
		}
	}
	return present, rows.Err()
}

// buildSelect renders the projection for a table. Missing optional columns
// are selected as typed NULLs; a missing required column is an error.
func buildSelect(spec tableSpec, source string, present map[string]string) (string, error) {
	exprs := make([]string, 0, len(spec.columns))
	for _, col := range spec.columns {
		sqlType := "VARCHAR"
		switch col.kind {
		case kindNumber:
			sqlType = "DOUBLE"
		case kindInteger:
			sqlType = "BIGINT"
		}

		actual, ok := present[strings.ToLower(col.name)]
		if !ok {
			if col.required {
				return "", missingColumnError(spec.name, col.name)
			}
			exprs = append(exprs, fmt.Sprintf("CAST(NULL AS %s)", sqlType))
			continue
		}
		exprs = append(exprs, fmt.Sprintf("TRY_CAST(%s AS %s)", quoteIdent(actual), sqlType))
	}
	return fmt.Sprintf("SELECT %s FROM read_parquet(%s)", strings.Join(exprs, ", "), quoteLiteral(source)), nil
}

// record is one scanned row, addressed by column name.
type record struct {
	index  map[string]int
	values []any
}

func newRecord(spec tableSpec) *record {
	r := &record{
		index:  make(map[string]int, len(spec.columns)),
		values: make([]any, len(spec.columns)),
	}
	for i, col := range spec.columns {
		r.index[col.name] = i
		switch col.kind {
		case kindNumber:
			r.values[i] = new(sql.NullFloat64)
		case kindInteger:
			r.values[i] = new(sql.NullInt64)
		default:
			r.values[i] = new(sql.NullString)
		}
	}
	return r
}

// text returns a text column and whether it was non-NULL.
func (r *record) text(name string) (string, bool) {
	v, ok := r.values[r.index[name]].(*sql.NullString)
	if !ok || !v.Valid {
		return "", false
	}
	return v.String, true
}

// str returns a text column, trimmed, with NULL as "".
func (r *record) str(name string) string {
	s, _ := r.text(name)
	return strings.TrimSpace(s)
}

// number returns a numeric column and whether it was non-NULL.
func (r *record) number(name string) (float64, bool) {
	v, ok := r.values[r.index[name]].(*sql.NullFloat64)
	if !ok || !v.Valid {
		return 0, false
	}
	return v.Float64, true
}

// integer returns an integer column and whether it was non-NULL.
func (r *record) integer(name string) (int64, bool) {
	v, ok := r.values[r.index[name]].(*sql.NullInt64)
	if !ok || !v.Valid {
		return 0, false
	}
	return v.Int64, true
}

// count returns a numeric column as a count, with NULL and negatives as 0.
func (r *record) count(name string) int64 {
	f, ok := r.number(name)
	if !ok || math.IsNaN(f) || f < 0 {
		return 0
	}
	return int64(f)
}

// intPtr returns a numeric column as *int, nil when NULL.
func (r *record) intPtr(name string) *int {
	f, ok := r.number(name)
	if !ok || math.IsNaN(f) {
		return nil
	}
	v := int(f)
	return &v
}

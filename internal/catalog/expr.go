// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package catalog

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/tomtom215/bookend/internal/cache"
	"github.com/tomtom215/bookend/internal/models"
)

// maxExpressionLength bounds the size of a where expression.
const maxExpressionLength = 1024

// newExprEnv declares the single `book` variable visible to where expressions.
func newExprEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("book", cel.MapType(cel.StringType, cel.DynType)),
		cel.CrossTypeNumericComparisons(true),
	)
}

// exprCompiler compiles where expressions once and caches the programs.
type exprCompiler struct {
	env      *cel.Env
	programs *cache.Cache
}

// compile returns the program for expr. Syntax and type errors, and
// expressions that can never produce a boolean, wrap ErrInvalidCriteria.
func (c *exprCompiler) compile(expr string) (cel.Program, error) {
	if len(expr) > maxExpressionLength {
		return nil, fmt.Errorf("%w: where expression longer than %d characters", ErrInvalidCriteria, maxExpressionLength)
	}

	v, _, err := c.programs.GetOrCompute(expr, func() (any, error) {
		ast, iss := c.env.Compile(expr)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("%w: where: %s", ErrInvalidCriteria, strings.TrimSpace(iss.Err().Error()))
		}
		out := ast.OutputType()
		if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
			return nil, fmt.Errorf("%w: where must evaluate to a boolean, not %s", ErrInvalidCriteria, out)
		}
		prg, err := c.env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("%w: where: %v", ErrInvalidCriteria, err)
		}
		return prg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(cel.Program), nil
}

// applyProgram keeps the books for which prg evaluates to true. Books whose
// evaluation fails or yields a non-boolean are excluded.
func applyProgram(prg cel.Program, books []*models.Book) []*models.Book {
	out := make([]*models.Book, 0, len(books))
	for _, b := range books {
		val, _, err := prg.Eval(map[string]any{"book": exprVars(b)})
		if err != nil {
			continue
		}
		if keep, ok := val.Value().(bool); ok && keep {
			out = append(out, b)
		}
	}
	return out
}

// exprVars exposes a book to expressions. Missing values are null.
func exprVars(b *models.Book) map[string]any {
	vars := map[string]any{
		"work_id":       b.WorkID,
		"title":         b.Title,
		"author":        b.Author,
		"genres":        b.Genres,
		"ratings_count": b.RatingsCount,
		"reviews_count": b.ReviewsCount,
		"year":          nil,
		"pages":         nil,
		"avg_rating":    nil,
		"popularity":    nil,
	}
	if b.PublicationYear != nil {
		vars["year"] = int64(*b.PublicationYear)
	}
	if b.NumPages != nil {
		vars["pages"] = int64(*b.NumPages)
	}
	if b.HasRating() {
		vars["avg_rating"] = b.AvgRating
	}
	if b.HasPopularity() {
		vars["popularity"] = b.PopularityScore
	}
	return vars
}

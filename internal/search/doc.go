// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package search provides full-text book search over an in-memory Bleve
index built once at startup.

Each book is indexed under its work ID with four text fields: title,
author, genres and description. A query is the disjunction of:

  - match queries on every field (title boosted 3x, author 2x);
  - fuzzy queries with edit distance 1 on title and author words;
  - prefix queries on title and author words of two or more characters.

So "hobit" finds The Hobbit and "prid" finds Pride and Prejudice.

Queries are throttled by a process-wide token bucket from
golang.org/x/time/rate when search.rate_limit is set.
*/
package search

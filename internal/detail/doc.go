// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

// Package detail assembles the book page: the book record, its rating
// histogram and sentiment split, up to five similar books and its reviews
// ordered newest first.
package detail

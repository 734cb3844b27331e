// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package models defines the data structures shared across Bookend.

Record types (Book, Review, User, TasteRecord) are populated once by the
dataset loader and never mutated afterwards. View types (BookCard,
BookDetail, ProfileDetail, CatalogOverview, ...) are what the API returns;
they replace NaN values with nil pointers so they always encode as JSON.

Key Components:

  - Book, Review, User, TasteRecord: typed dataset rows
  - FilterState, YearRange, Era: catalog filter criteria
  - APIResponse, APIError, Metadata: response envelope
  - ErrNotFound, ErrEmptyResult, ErrMalformedAuxiliaryData, ErrFatalStartup:
    the error taxonomy used by every resolver

Thread Safety:

Records are read-only after load and may be shared across goroutines.
Views are built per request and owned by the caller.
*/
package models

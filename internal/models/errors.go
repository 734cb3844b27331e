// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the loader, engines and resolvers.
var (
	// ErrNotFound means an identifier was empty, malformed or unknown.
	ErrNotFound = errors.New("not found")

	// ErrEmptyResult means a valid query matched zero rows.
	ErrEmptyResult = errors.New("no matching books")

	// ErrMalformedAuxiliaryData means a serialized list column could not be
	// decoded. It degrades one section and never fails a request.
	ErrMalformedAuxiliaryData = errors.New("malformed auxiliary data")

	// ErrFatalStartup means the dataset could not be loaded.
	ErrFatalStartup = errors.New("dataset failed to load")
)

// NotFoundError carries the user-facing message for a failed lookup.
type NotFoundError struct {
	Kind    string
	ID      string
	Message string
}

// NewNotFoundError builds a NotFoundError with message formatted from args.
func NewNotFoundError(kind, id, format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id, Message: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Kind, e.ID, e.Message)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

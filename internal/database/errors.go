// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package database

import (
	"errors"
	"fmt"
	"io"

	"github.com/tomtom215/bookend/internal/logging"
)

// ErrMissingColumn is returned when a required column is absent from a source.
var ErrMissingColumn = errors.New("required column missing")

// errNullList marks a serialized list whose stored value is NULL.
var errNullList = errors.New("list value is null")

// errMalformedList marks a serialized list that could not be decoded.
var errMalformedList = errors.New("list value is malformed")

// missingColumnError names the table and column that could not be found.
func missingColumnError(table, column string) error {
	return fmt.Errorf("%s.%s: %w", table, column, ErrMissingColumn)
}

// closeWithLog closes a resource and logs any error.
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource on an error path where Close errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

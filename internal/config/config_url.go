// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// remoteSchemes lists the URL schemes DuckDB's httpfs extension can read.
var remoteSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"s3":    true,
	"gcs":   true,
	"gs":    true,
}

// IsRemoteSource reports whether a dataset location needs the httpfs extension.
func IsRemoteSource(location string) bool {
	scheme, _, found := strings.Cut(location, "://")
	return found && remoteSchemes[strings.ToLower(scheme)]
}

// validateDatasetSource validates a parquet location.
// Remote sources need a supported scheme, a host and a path; local paths only
// need to be non-empty since existence is checked at load time.
func validateDatasetSource(location, fieldName string) error {
	if strings.TrimSpace(location) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if !strings.Contains(location, "://") {
		return nil
	}

	parsedURL, err := url.Parse(location)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if !remoteSchemes[strings.ToLower(parsedURL.Scheme)] {
		return fmt.Errorf("%s scheme must be http, https, s3, gs or gcs, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.Path == "" || parsedURL.Path == "/" {
		return fmt.Errorf("%s must point at a parquet file", fieldName)
	}

	return nil
}

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package config

import (
	"fmt"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateCatalog(); err != nil {
		return err
	}

	if err := c.validateFilterStore(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateDataset checks each table location and the load timeout.
func (c *Config) validateDataset() error {
	sources := []struct {
		value string
		env   string
	}{
		{c.Dataset.BooksURL, "BOOKS_URL"},
		{c.Dataset.ReviewsURL, "REVIEWS_URL"},
		{c.Dataset.UsersURL, "USERS_URL"},
		{c.Dataset.TasteURL, "TASTE_URL"},
	}
	for _, src := range sources {
		if err := validateDatasetSource(src.value, src.env); err != nil {
			return err
		}
	}
	if c.Dataset.LoadTimeout <= 0 {
		return fmt.Errorf("DATASET_LOAD_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.MaxPageSize < 1 {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be at least 1")
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be between 1 and API_MAX_PAGE_SIZE (%d)", c.API.MaxPageSize)
	}
	if c.API.DefaultTopN < 1 || c.API.DefaultTopN > c.API.MaxPageSize {
		return fmt.Errorf("API_DEFAULT_TOP_N must be between 1 and API_MAX_PAGE_SIZE (%d)", c.API.MaxPageSize)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if c.Catalog.ReaderCount < 0 {
		return fmt.Errorf("CATALOG_READER_COUNT must not be negative")
	}
	if c.Catalog.HiddenGemMinReviews < 0 {
		return fmt.Errorf("HIDDEN_GEM_MIN_REVIEWS must not be negative")
	}
	if c.Catalog.CacheTTL < 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must not be negative")
	}
	return nil
}

// validFilterStoreBackends defines the allowed filter store backends
var validFilterStoreBackends = map[string]bool{
	"memory": true,
	"badger": true,
	"redis":  true,
}

func (c *Config) validateFilterStore() error {
	if !validFilterStoreBackends[c.FilterStore.Backend] {
		return fmt.Errorf("FILTER_STORE_BACKEND must be one of: memory, badger, redis")
	}
	if c.FilterStore.TTL <= 0 {
		return fmt.Errorf("FILTER_STORE_TTL must be positive")
	}
	if c.FilterStore.SweepInterval <= 0 {
		return fmt.Errorf("FILTER_STORE_SWEEP must be positive")
	}
	switch c.FilterStore.Backend {
	case "badger":
		if c.FilterStore.Path == "" {
			return fmt.Errorf("FILTER_STORE_PATH is required when FILTER_STORE_BACKEND=badger")
		}
	case "redis":
		if c.FilterStore.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when FILTER_STORE_BACKEND=redis")
		}
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Search.RateLimit < 0 {
		return fmt.Errorf("SEARCH_RATE_LIMIT must not be negative")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

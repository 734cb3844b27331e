// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "empty books location",
			mutate:  func(c *Config) { c.Dataset.BooksURL = "" },
			wantErr: "BOOKS_URL is required",
		},
		{
			name:    "unsupported scheme",
			mutate:  func(c *Config) { c.Dataset.ReviewsURL = "ftp://host/reviews.parquet" },
			wantErr: "REVIEWS_URL scheme",
		},
		{
			name:    "remote url without file",
			mutate:  func(c *Config) { c.Dataset.UsersURL = "https://storage.example/" },
			wantErr: "USERS_URL must point at a parquet file",
		},
		{
			name:   "local path is accepted",
			mutate: func(c *Config) { c.Dataset.TasteURL = "./data/sunburst.parquet" },
		},
		{
			name:    "zero load timeout",
			mutate:  func(c *Config) { c.Dataset.LoadTimeout = 0 },
			wantErr: "DATASET_LOAD_TIMEOUT",
		},
		{
			name:    "default page size above max",
			mutate:  func(c *Config) { c.API.DefaultPageSize = c.API.MaxPageSize + 1 },
			wantErr: "API_DEFAULT_PAGE_SIZE",
		},
		{
			name:    "unknown filter store backend",
			mutate:  func(c *Config) { c.FilterStore.Backend = "etcd" },
			wantErr: "FILTER_STORE_BACKEND",
		},
		{
			name: "badger without path",
			mutate: func(c *Config) {
				c.FilterStore.Backend = "badger"
				c.FilterStore.Path = ""
			},
			wantErr: "FILTER_STORE_PATH",
		},
		{
			name: "redis without address",
			mutate: func(c *Config) {
				c.FilterStore.Backend = "redis"
				c.FilterStore.RedisAddr = ""
			},
			wantErr: "REDIS_ADDR",
		},
		{
			name:    "rate limit window too small",
			mutate:  func(c *Config) { c.Security.RateLimitWindow = time.Millisecond },
			wantErr: "RATE_LIMIT_WINDOW",
		},
		{
			name: "rate limit ignored when disabled",
			mutate: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIsRemoteSource(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{DefaultBooksURL, true},
		{"s3://bucket/books.parquet", true},
		{"HTTPS://host/x.parquet", true},
		{"/data/books.parquet", false},
		{"books.parquet", false},
		{"file:///data/books.parquet", false},
	}
	for _, tt := range tests {
		if got := IsRemoteSource(tt.location); got != tt.want {
			t.Errorf("IsRemoteSource(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}

// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Data Sources:
//     - Dataset: Locations of the four parquet tables loaded at startup
//     - Database: DuckDB engine settings used while loading
//
//  2. Serving:
//     - Server: HTTP server configuration (port, host, timeout)
//     - API: Pagination and ranking limits
//     - Catalog: Explorer constants and result cache
//     - Search: Full-text index settings
//     - FilterStore: Saved filter state backend
//
//  3. Security & Observability:
//     - Security: Rate limiting and CORS
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	db, err := database.New(&cfg.Database)
//	...
//	ds, err := database.NewLoader(db, &cfg.Dataset).Load(ctx)
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Dataset     DatasetConfig     `koanf:"dataset"`
	Database    DatabaseConfig    `koanf:"database"`
	Server      ServerConfig      `koanf:"server"`
	API         APIConfig         `koanf:"api"`
	Catalog     CatalogConfig     `koanf:"catalog"`
	Search      SearchConfig      `koanf:"search"`
	FilterStore FilterStoreConfig `koanf:"filter_store"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// DatasetConfig holds the locations of the source tables.
// Each location may be an http(s) URL, an s3/gcs URL or a local file path;
// anything DuckDB's read_parquet accepts.
type DatasetConfig struct {
	BooksURL   string `koanf:"books_url"`
	ReviewsURL string `koanf:"reviews_url"`
	UsersURL   string `koanf:"users_url"`
	TasteURL   string `koanf:"taste_url"`

	// LoadTimeout bounds the whole startup load. There is no retry.
	LoadTimeout time.Duration `koanf:"load_timeout"`
}

// DatabaseConfig holds DuckDB engine settings for the loader.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" keeps the loader ephemeral.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use runtime.NumCPU()

	// ExtensionsOffline skips INSTALL and only LOADs extensions that are
	// already present (air-gapped deployments with local datasets).
	ExtensionsOffline bool `koanf:"extensions_offline"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// APIConfig holds API pagination and response settings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`

	// DefaultTopN is the length of ranking tables when no limit is requested.
	DefaultTopN int `koanf:"default_top_n"`
}

// CatalogConfig holds explorer settings.
type CatalogConfig struct {
	// ReaderCount is the externally sourced reader total shown on the
	// summary card. It is not derived from the dataset.
	ReaderCount int `koanf:"reader_count"`

	// HiddenGemMinReviews is the lower review bound for hidden gems.
	HiddenGemMinReviews int64 `koanf:"hidden_gem_min_reviews"`

	// CacheTTL controls how long computed overviews are kept.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// SearchConfig holds full-text search settings.
type SearchConfig struct {
	Enabled bool `koanf:"enabled"`

	// RateLimit is the process-wide query budget per second (0 disables).
	RateLimit float64 `koanf:"rate_limit"`
	Burst     int     `koanf:"burst"`
}

// FilterStoreConfig selects where saved filter states live.
type FilterStoreConfig struct {
	// Backend is one of: memory, badger, redis.
	Backend string        `koanf:"backend"`
	TTL     time.Duration `koanf:"ttl"`

	// Path is the BadgerDB directory (badger backend only).
	Path string `koanf:"path"`

	// RedisAddr and RedisDB configure the redis backend.
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	// SweepInterval controls the maintenance sweep for expired entries.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// SecurityConfig holds request-limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration with Koanf and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

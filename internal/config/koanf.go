// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/bookend/config.yaml",
	"/etc/bookend/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default dataset locations.
const (
	DefaultBooksURL   = "https://storage.googleapis.com/goodread_data/books.parquet"
	DefaultReviewsURL = "https://storage.googleapis.com/goodread_data/selected_reviews.parquet"
	DefaultUsersURL   = "https://storage.googleapis.com/goodread_data/users.parquet"
	DefaultTasteURL   = "https://storage.googleapis.com/goodread_data/sunburst.parquet"
)

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			BooksURL:    DefaultBooksURL,
			ReviewsURL:  DefaultReviewsURL,
			UsersURL:    DefaultUsersURL,
			TasteURL:    DefaultTasteURL,
			LoadTimeout: 5 * time.Minute,
		},
		Database: DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "2GB",
			Threads:   0, // 0 = use runtime.NumCPU()
		},
		Server: ServerConfig{
			Port:    8050,
			Host:    "0.0.0.0",
			Timeout: 30 * time.Second,
		},
		API: APIConfig{
			DefaultPageSize: 24,
			MaxPageSize:     200,
			DefaultTopN:     5,
		},
		Catalog: CatalogConfig{
			ReaderCount:         18800,
			HiddenGemMinReviews: 50,
			CacheTTL:            10 * time.Minute,
		},
		Search: SearchConfig{
			Enabled:   true,
			RateLimit: 50,
			Burst:     100,
		},
		FilterStore: FilterStoreConfig{
			Backend:       "memory",
			TTL:           24 * time.Hour,
			Path:          "/data/filters",
			RedisAddr:     "localhost:6379",
			SweepInterval: 5 * time.Minute,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Dataset mappings
	"books_url":            "dataset.books_url",
	"reviews_url":          "dataset.reviews_url",
	"users_url":            "dataset.users_url",
	"taste_url":            "dataset.taste_url",
	"sunburst_url":         "dataset.taste_url",
	"dataset_load_timeout": "dataset.load_timeout",

	// Database mappings
	"duckdb_path":               "database.path",
	"duckdb_max_memory":         "database.max_memory",
	"duckdb_threads":            "database.threads",
	"duckdb_extensions_offline": "database.extensions_offline",

	// Server mappings
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",

	// API mappings
	"api_default_page_size": "api.default_page_size",
	"api_max_page_size":     "api.max_page_size",
	"api_default_top_n":     "api.default_top_n",

	// Catalog mappings
	"catalog_reader_count":   "catalog.reader_count",
	"hidden_gem_min_reviews": "catalog.hidden_gem_min_reviews",
	"catalog_cache_ttl":      "catalog.cache_ttl",

	// Search mappings
	"search_enabled":    "search.enabled",
	"search_rate_limit": "search.rate_limit",
	"search_burst":      "search.burst",

	// Filter store mappings
	"filter_store_backend": "filter_store.backend",
	"filter_store_ttl":     "filter_store.ttl",
	"filter_store_path":    "filter_store.path",
	"filter_store_sweep":   "filter_store.sweep_interval",
	"redis_addr":           "filter_store.redis_addr",
	"redis_password":       "filter_store.redis_password",
	"redis_db":             "filter_store.redis_db",

	// Security mappings
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unknown variables are dropped so unrelated environment does not leak into
// the configuration tree.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - BOOKS_URL -> dataset.books_url
//   - FILTER_STORE_BACKEND -> filter_store.backend
func envTransformFunc(key string) string {
	key = strings.ToLower(key)
	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

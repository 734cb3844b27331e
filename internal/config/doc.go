// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package config provides centralized configuration management for Bookend.

Configuration is layered with Koanf v2: struct defaults, then an optional
YAML file (CONFIG_PATH or config.yaml), then environment variables. The
result is validated before use and is immutable afterwards.

# Environment Variables

Dataset (DatasetConfig):
  - BOOKS_URL, REVIEWS_URL, USERS_URL, TASTE_URL: parquet locations
  - DATASET_LOAD_TIMEOUT: Bound on the startup load (default: 5m)

DuckDB (DatabaseConfig):
  - DUCKDB_PATH: Database file (default: :memory:)
  - DUCKDB_MAX_MEMORY: Memory limit (default: 2GB)
  - DUCKDB_THREADS: Worker threads (default: NumCPU)

HTTP Server (ServerConfig):
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8050)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)

Filter store (FilterStoreConfig):
  - FILTER_STORE_BACKEND: memory, badger or redis (default: memory)
  - FILTER_STORE_TTL: Expiry of saved filter states (default: 24h)
  - FILTER_STORE_PATH: BadgerDB directory
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB: Redis connection

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

# Usage Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Configuration error: %v", err)
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
*/
package config

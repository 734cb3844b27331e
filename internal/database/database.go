// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // DuckDB driver

	"github.com/tomtom215/bookend/internal/config"
	"github.com/tomtom215/bookend/internal/logging"
)

// extensionTimeout bounds a single INSTALL or LOAD statement.
const extensionTimeout = 30 * time.Second

// DB wraps the DuckDB connection used to read the parquet sources.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens a DuckDB database with the configured memory and thread limits.
// Auto-install and auto-load of extensions are disabled; EnsureExtension
// loads them explicitly so a missing network fails with a clear error.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	dsn := fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, numThreads, maxMemory)

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Debug().Str("path", path).Int("threads", numThreads).Str("max_memory", maxMemory).Msg("DuckDB opened")
	return &DB{conn: conn, cfg: cfg}, nil
}

// Conn returns the underlying *sql.DB.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping verifies the connection.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close releases the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// EnsureExtension installs (unless offline) and loads a DuckDB extension.
// There is no retry: a failed install falls back to LOAD in case the
// extension is already present, and a failed LOAD is returned.
func (db *DB) EnsureExtension(ctx context.Context, name string) error {
	if !db.cfg.ExtensionsOffline {
		if err := db.execWithHardTimeout(ctx, fmt.Sprintf("INSTALL %s;", name)); err != nil {
			logging.Warn().Err(err).Str("extension", name).Msg("Extension install failed, trying to load a local copy")
		}
	}
	if err := db.execWithHardTimeout(ctx, fmt.Sprintf("LOAD %s;", name)); err != nil {
		return fmt.Errorf("load %s extension: %w", name, err)
	}
	logging.Debug().Str("extension", name).Msg("Extension loaded")
	return nil
}

// execWithHardTimeout runs a statement with a goroutine-enforced deadline,
// since CGO calls into DuckDB do not observe context cancellation.
func (db *DB) execWithHardTimeout(ctx context.Context, query string) error {
	ctx, cancel := context.WithTimeout(ctx, extensionTimeout)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := db.conn.ExecContext(ctx, query)
		resultCh <- err
	}()

	select {
	case err := <-resultCh:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%q did not finish: %w", query, ctx.Err())
	}
}

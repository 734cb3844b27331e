// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/bookend/internal/api"
	"github.com/tomtom215/bookend/internal/catalog"
	"github.com/tomtom215/bookend/internal/config"
	"github.com/tomtom215/bookend/internal/database"
	"github.com/tomtom215/bookend/internal/dataset"
	"github.com/tomtom215/bookend/internal/detail"
	"github.com/tomtom215/bookend/internal/filterstore"
	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/metrics"
	"github.com/tomtom215/bookend/internal/profile"
	"github.com/tomtom215/bookend/internal/search"
	"github.com/tomtom215/bookend/internal/supervisor"
	"github.com/tomtom215/bookend/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logging.Info().Str("version", version).Msg("Starting Bookend")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

	engine, err := catalog.New(ds, cfg.Catalog, cfg.API.DefaultTopN)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build catalog")
	}

	var index *search.Index
	if cfg.Search.Enabled {
		index, err = search.Build(ds, cfg.Search)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to build search index")
		}
		defer func() {
			if err := index.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing search index")
			}
		}()
	} else {
		logging.Info().Msg("Full-text search disabled (SEARCH_ENABLED=false)")
	}

	store, err := filterstore.Open(ctx, cfg.FilterStore)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open filter store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing filter store")
		}
	}()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	handler := api.NewHandler(api.Dependencies{
		Config:   cfg,
		Dataset:  ds,
		Catalog:  engine,
		Books:    detail.NewResolver(ds),
		Profiles: profile.NewResolver(ds),
		Search:   index,
		Filters:  store,
		Version:  version,
	})
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	router := api.NewRouter(handler, mw, cfg.Server.Timeout)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddMaintenanceService(services.NewSweeperService(engine, store, cfg.FilterStore.SweepInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Str("filter_store", store.Backend()).Msg("Serving API")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	logging.Info().Msg("Bookend stopped")
}

// loadDataset reads the four source tables once. The DuckDB handle is only
// needed while loading and is closed before returning.
func loadDataset(ctx context.Context, cfg *config.Config) (*dataset.Dataset, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	logging.Info().
		Str("books", cfg.Dataset.BooksURL).
		Str("reviews", cfg.Dataset.ReviewsURL).
		Str("users", cfg.Dataset.UsersURL).
		Str("taste", cfg.Dataset.TasteURL).
		Dur("timeout", cfg.Dataset.LoadTimeout).
		Msg("Loading dataset")
	return database.NewLoader(db, &cfg.Dataset).Load(ctx)
}

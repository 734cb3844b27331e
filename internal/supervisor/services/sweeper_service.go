// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/bookend/internal/logging"
	"github.com/tomtom215/bookend/internal/metrics"
)

// DefaultSweepInterval is used when no interval is configured.
const DefaultSweepInterval = 5 * time.Minute

// CacheCleaner drops expired cache entries and reports how many went.
// Satisfied by *catalog.Engine.
type CacheCleaner interface {
	Cleanup() int
}

// StoreSweeper runs backend maintenance on a filter store.
// Satisfied by every filterstore.Store.
type StoreSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SweeperService periodically expires cached overviews and saved filter
// states, and refreshes the uptime gauge.
type SweeperService struct {
	cache    CacheCleaner
	store    StoreSweeper
	interval time.Duration
	started  time.Time
	logger   zerolog.Logger
	name     string
}

// NewSweeperService creates the sweeper. Either target may be nil.
func NewSweeperService(cache CacheCleaner, store StoreSweeper, interval time.Duration) *SweeperService {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &SweeperService{
		cache:    cache,
		store:    store,
		interval: interval,
		started:  time.Now(),
		logger:   logging.WithComponent("sweeper"),
		name:     "sweeper",
	}
}

// Serve implements suture.Service. A failed sweep is logged and retried on
// the next tick; it does not restart the service.
func (s *SweeperService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("Sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Sweeper stopping")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep runs one maintenance pass.
func (s *SweeperService) sweep(ctx context.Context) {
	metrics.AppUptime.Set(time.Since(s.started).Seconds())

	evicted := 0
	if s.cache != nil {
		evicted = s.cache.Cleanup()
	}

	removed := 0
	if s.store != nil {
		sweepCtx, cancel := context.WithTimeout(ctx, s.interval)
		n, err := s.store.Sweep(sweepCtx)
		cancel()
		if err != nil {
			s.logger.Warn().Err(err).Msg("Filter store sweep failed")
		}
		removed = n
	}

	if evicted > 0 || removed > 0 {
		s.logger.Debug().Int("cache_evicted", evicted).Int("filters_removed", removed).Msg("Sweep complete")
	}
}

// String names the service in supervisor events.
func (s *SweeperService) String() string {
	return s.name
}

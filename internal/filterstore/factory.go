// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package filterstore

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/bookend/internal/config"
	"github.com/tomtom215/bookend/internal/logging"
)

// Open creates the store selected by cfg.Backend. An empty backend means
// memory. A Redis server that does not answer at startup is logged, not
// fatal; the breaker keeps requests failing fast until it recovers.
func Open(ctx context.Context, cfg config.FilterStoreConfig) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		logging.Info().Str("backend", BackendMemory).Dur("ttl", cfg.TTL).Msg("Filter store ready")
		return NewMemoryStore(cfg.TTL), nil

	case BackendBadger:
		s, err := OpenBadgerStore(cfg.Path, cfg.TTL)
		if err != nil {
			return nil, err
		}
		logging.Info().Str("backend", BackendBadger).Str("path", cfg.Path).Dur("ttl", cfg.TTL).Msg("Filter store ready")
		return s, nil

	case BackendRedis:
		s := NewRedisStore(RedisOptions{
			Addr:        cfg.RedisAddr,
			Password:    cfg.RedisPassword,
			DB:          cfg.RedisDB,
			TTL:         cfg.TTL,
			DialTimeout: 5 * time.Second,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.Ping(pingCtx); err != nil {
			logging.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis filter store not reachable at startup")
		} else {
			logging.Info().Str("backend", BackendRedis).Str("addr", cfg.RedisAddr).Msg("Filter store ready")
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown filter store backend %q", cfg.Backend)
	}
}

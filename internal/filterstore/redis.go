// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package filterstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/bookend/internal/models"
)

// RedisStore keeps filter states in Redis with native key expiry. Every
// call goes through a circuit breaker so an unreachable server fails fast.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *breaker
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Breaker  BreakerSettings // zero value uses DefaultBreakerSettings

	// DialTimeout bounds connection attempts. Zero keeps the client default.
	DialTimeout time.Duration
}

// NewRedisStore creates a client for opts.Addr. It does not contact the
// server; use Ping to check connectivity.
func NewRedisStore(opts RedisOptions) *RedisStore {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if opts.Breaker == (BreakerSettings{}) {
		opts.Breaker = DefaultBreakerSettings()
	}
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})
	return &RedisStore{
		client:  client,
		ttl:     ttl,
		breaker: newBreaker("filter-store-redis", opts.Breaker, isRedisNil),
	}
}

func isRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Backend implements Store.
func (s *RedisStore) Backend() string { return BackendRedis }

// Ping checks connectivity through the breaker.
func (s *RedisStore) Ping(ctx context.Context) error {
	_, err := s.breaker.execute(func() ([]byte, error) {
		return nil, s.client.Ping(ctx).Err()
	})
	return s.wrap("ping", "", err)
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, id string, state models.FilterState) (err error) {
	defer func() { observe(BackendRedis, "save", err) }()
	if err := checkID(id); err != nil {
		return err
	}

	data, err := encode(state, time.Now())
	if err != nil {
		return err
	}
	_, err = s.breaker.execute(func() ([]byte, error) {
		return nil, s.client.Set(ctx, keyPrefix+id, data, s.ttl).Err()
	})
	return s.wrap("save", id, err)
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, id string) (state models.FilterState, err error) {
	defer func() { observe(BackendRedis, "load", err) }()

	data, err := s.breaker.execute(func() ([]byte, error) {
		return s.client.Get(ctx, keyPrefix+id).Bytes()
	})
	if isRedisNil(err) {
		return models.FilterState{}, notFound(id)
	}
	if err != nil {
		return models.FilterState{}, s.wrap("load", id, err)
	}

	state, err = decode(data)
	if err != nil {
		return models.FilterState{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return state, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, id string) (err error) {
	defer func() { observe(BackendRedis, "delete", err) }()

	_, err = s.breaker.execute(func() ([]byte, error) {
		return nil, s.client.Del(ctx, keyPrefix+id).Err()
	})
	return s.wrap("delete", id, err)
}

// Sweep is a no-op: Redis expires keys itself.
func (s *RedisStore) Sweep(context.Context) (int, error) { return 0, nil }

// BreakerState reports the circuit breaker state.
func (s *RedisStore) BreakerState() gobreaker.State {
	return s.breaker.State()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) wrap(op, id string, err error) error {
	if err == nil || errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: redis %s %s: %v", ErrUnavailable, op, id, err)
}

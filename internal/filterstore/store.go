// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package filterstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/bookend/internal/metrics"
	"github.com/tomtom215/bookend/internal/models"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// DefaultTTL applies when no TTL is configured.
const DefaultTTL = 24 * time.Hour

// keyPrefix namespaces filter sessions in shared key spaces.
const keyPrefix = "filters:"

var (
	// ErrUnavailable wraps backend failures. The API maps it to 503.
	ErrUnavailable = errors.New("filter store unavailable")

	// ErrInvalidSessionID is returned for IDs that fail ValidSessionID.
	ErrInvalidSessionID = errors.New("invalid session id")
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Store keeps filter states under session IDs. Writes are last-write-wins
// and entries expire after the store's TTL.
type Store interface {
	// Save stores state under id, replacing any previous value.
	Save(ctx context.Context, id string, state models.FilterState) error

	// Load returns the state saved under id. A missing or expired entry
	// returns an error matching models.ErrNotFound.
	Load(ctx context.Context, id string) (models.FilterState, error)

	// Delete removes id. Deleting a missing entry is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep runs backend maintenance and returns how many entries or
	// segments it reclaimed.
	Sweep(ctx context.Context) (int, error)

	// Backend names the implementation.
	Backend() string

	Close() error
}

// NewSessionID returns a fresh random session ID.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id is usable as a session key: 1 to 64
// characters from letters, digits, '-' and '_'. UUIDs qualify.
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

// record is the serialized form of a saved state.
type record struct {
	Filters models.FilterState `json:"filters"`
	SavedAt time.Time          `json:"saved_at"`
}

func encode(state models.FilterState, now time.Time) ([]byte, error) {
	data, err := json.Marshal(record{Filters: state, SavedAt: now.UTC()})
	if err != nil {
		return nil, fmt.Errorf("marshal filter state: %w", err)
	}
	return data, nil
}

func decode(data []byte) (models.FilterState, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.FilterState{}, fmt.Errorf("unmarshal filter state: %w", err)
	}
	return rec.Filters, nil
}

func notFound(id string) error {
	return models.NewNotFoundError("filter session", id, "No saved filters found for session %s.", id)
}

func checkID(id string) error {
	if !ValidSessionID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	return nil
}

// observe records the outcome of one store operation.
func observe(backend, op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, models.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.RecordFilterStoreOp(backend, op, result)
}

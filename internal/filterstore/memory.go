// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package filterstore

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/bookend/internal/metrics"
	"github.com/tomtom215/bookend/internal/models"
)

type memoryEntry struct {
	state     models.FilterState
	expiresAt time.Time
}

// MemoryStore keeps filter states in process memory. Expired entries are
// hidden on read and removed by Sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an empty store. A non-positive ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Backend implements Store.
func (s *MemoryStore) Backend() string { return BackendMemory }

// Save implements Store. The state is deep-copied.
func (s *MemoryStore) Save(_ context.Context, id string, state models.FilterState) (err error) {
	defer func() { observe(BackendMemory, "save", err) }()
	if err := checkID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{state: state.Clone(), expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, id string) (state models.FilterState, err error) {
	defer func() { observe(BackendMemory, "load", err) }()

	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || !s.now().Before(e.expiresAt) {
		return models.FilterState{}, notFound(id)
	}
	return e.state.Clone(), nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	observe(BackendMemory, "delete", nil)
	return nil
}

// Sweep removes expired entries.
func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.FilterStoreExpired.WithLabelValues(BackendMemory).Add(float64(removed))
	}
	return removed, nil
}

// Len returns the number of entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

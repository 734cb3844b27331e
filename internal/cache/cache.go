// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookend/internal/metrics"
)

// Entry represents a cached item with expiration
type Entry struct {
	Data      any
	ExpiresAt time.Time
}

// Cache is a thread-safe in-memory cache with TTL support.
//
// Expired entries are dropped lazily on Get and in bulk by Cleanup, which
// the maintenance sweeper calls on every tick. Hits, misses and evictions
// are exported as Prometheus counters labelled with the cache name.
type Cache struct {
	name    string
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a named cache whose entries live for ttl.
//
// Example:
//
//	overviews := cache.New("overview", 10*time.Minute)
//	key := cache.GenerateKey("overview", criteria)
//	if v, ok := overviews.Get(key); ok {
//	    return v.(*models.CatalogOverview), nil
//	}
func New(name string, ttl time.Duration) *Cache {
	return &Cache{
		name:    name,
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a value by key. An expired entry is removed and counted
// as both a miss and an eviction.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed it.
		if current, ok := c.entries[key]; ok && c.now().After(current.ExpiresAt) {
			delete(c.entries, key)
			c.recordEviction(1)
		}
		c.mu.Unlock()
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with the cache's TTL. Existing entries are overwritten.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: c.now().Add(c.ttl),
	}
}

// GetOrCompute returns the cached value for key or computes, stores and
// returns it. Errors are not cached. Concurrent misses for the same key may
// both compute; the last writer wins.
func (c *Cache) GetOrCompute(key string, compute func() (any, error)) (any, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}
	v, err := compute()
	if err != nil {
		return nil, false, err
	}
	c.Set(key, v)
	return v, false, nil
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cleanup removes every expired entry and returns how many were removed.
func (c *Cache) Cleanup() int {
	now := c.now()
	c.mu.Lock()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	c.mu.Unlock()

	c.recordEviction(removed)
	return removed
}

func (c *Cache) recordHit() {
	metrics.RecordCacheLookup(c.name, true)
}

func (c *Cache) recordMiss() {
	metrics.RecordCacheLookup(c.name, false)
}

func (c *Cache) recordEviction(n int) {
	if n == 0 {
		return
	}
	metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(n))
}

// GenerateKey creates a cache key from a method name and its parameters.
// Parameters are JSON encoded and hashed, so structurally equal values
// produce the same key.
func GenerateKey(method string, params any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}

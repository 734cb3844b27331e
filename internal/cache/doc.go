// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

/*
Package cache provides the in-memory data structures behind the catalog:
a TTL result cache, an Aho-Corasick multi-pattern matcher and a weighted
prefix trie.

# TTL Cache

Cache stores computed results (catalog overviews, compiled filter
expressions) for a fixed time-to-live. Expired entries are dropped lazily
on Get and in bulk by Cleanup, which the supervisor's maintenance sweeper
calls on every tick. Every cache has a name used as the cache_type label
on the cache_hits_total, cache_misses_total and cache_evictions_total
metrics.

	overviews := cache.New("overview", 10*time.Minute)
	key := cache.GenerateKey("overview", criteria)
	v, cached, err := overviews.GetOrCompute(key, func() (any, error) {
	    return engine.computeOverview(criteria)
	})

GenerateKey hashes the JSON encoding of its parameters, so two criteria
values that encode the same produce the same key.

# Aho-Corasick

AhoCorasick matches many literal patterns against a text in one pass. The
genre filter builds one automaton per request over the requested genre
values and tests each book's raw genre field with Contains. Matching is
case-insensitive unless requested otherwise, and patterns are never
interpreted as regular expressions.

# Trie

Trie backs the /api/v1/catalog/suggest endpoint. Values are inserted once
at startup with a weight (the number of books per author or genre tag),
and AutocompleteWithLimit returns the heaviest values sharing a prefix.

# Thread Safety

Cache and Trie guard their state with sync.RWMutex. An AhoCorasick is
immutable after construction and needs no locking.
*/
package cache

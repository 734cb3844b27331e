// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package cache

import (
	"sort"
	"strings"
	"sync"
)

// TrieNode represents a node in the Trie.
type TrieNode struct {
	children map[rune]*TrieNode
	isEnd    bool   // Marks end of a complete value
	value    string // Original spelling of the value stored here
	weight   int    // Accumulated weight, used for ranking
}

// Trie is a thread-safe prefix tree used for autocomplete.
//
// Lookups are O(m) in the prefix length. Each stored value carries a weight
// (for the catalog, the number of books having that author or genre) and
// suggestions are ranked by weight, then alphabetically.
type Trie struct {
	mu             sync.RWMutex
	root           *TrieNode
	caseSensitive  bool
	maxSuggestions int
}

// TrieResult is one autocomplete suggestion.
type TrieResult struct {
	Value  string
	Weight int
}

// NewTrieWithOptions creates a Trie with custom settings.
func NewTrieWithOptions(caseSensitive bool, maxSuggestions int) *Trie {
	if maxSuggestions <= 0 {
		maxSuggestions = 10
	}
	return &Trie{
		root:           newTrieNode(),
		caseSensitive:  caseSensitive,
		maxSuggestions: maxSuggestions,
	}
}

func newTrieNode() *TrieNode {
	return &TrieNode{
		children: make(map[rune]*TrieNode),
	}
}

func (t *Trie) normalizeKey(key string) string {
	if t.caseSensitive {
		return key
	}
	return strings.ToLower(key)
}

// Add adds weight to value, creating it if needed. The first spelling
// inserted is kept for display. Returns true if the value is new.
func (t *Trie) Add(value string, weight int) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range t.normalizeKey(value) {
		next := node.children[ch]
		if next == nil {
			next = newTrieNode()
			node.children[ch] = next
		}
		node = next
	}

	isNew := !node.isEnd
	if isNew {
		node.isEnd = true
		node.value = value
	}
	node.weight += weight
	return isNew
}

// AutocompleteWithLimit returns at most limit values starting with prefix,
// ordered by weight descending then value ascending. A non-positive limit
// uses the default.
func (t *Trie) AutocompleteWithLimit(prefix string, limit int) []TrieResult {
	if limit <= 0 {
		limit = t.maxSuggestions
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.find(t.normalizeKey(prefix))
	if node == nil {
		return nil
	}

	var results []TrieResult
	collect(node, &results)
	sortResults(results)

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func (t *Trie) find(key string) *TrieNode {
	node := t.root
	for _, ch := range key {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

func collect(node *TrieNode, results *[]TrieResult) {
	if node.isEnd {
		*results = append(*results, TrieResult{Value: node.value, Weight: node.weight})
	}
	for _, child := range node.children {
		collect(child, results)
	}
}

func sortResults(results []TrieResult) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Weight != results[j].Weight {
			return results[i].Weight > results[j].Weight
		}
		return results[i].Value < results[j].Value
	})
}

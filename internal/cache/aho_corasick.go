// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package cache

import (
	"strings"
)

// AhoCorasick is a multi-pattern substring matcher.
//
// It tests a text against a set of literal patterns in O(n + m) time (text
// length, total pattern length) instead of scanning the text once per
// pattern. The catalog uses it to test a book's raw genre field against
// every requested genre in a single pass.
//
// An automaton is immutable once built and safe for concurrent use.
//
// Example:
//
//	ac := NewAhoCorasick([]string{"fantasy", "sci"}, false)
//	ac.Contains("Science Fiction, Classics") // true
type AhoCorasick struct {
	root          *acNode
	caseSensitive bool
}

type acNode struct {
	children map[rune]*acNode
	failure  *acNode
	terminal bool // a pattern ends here, directly or via a failure link
}

// NewAhoCorasick builds an automaton over patterns. Empty patterns are ignored.
func NewAhoCorasick(patterns []string, caseSensitive bool) *AhoCorasick {
	ac := &AhoCorasick{
		root:          newACNode(),
		caseSensitive: caseSensitive,
	}
	for _, p := range patterns {
		if !caseSensitive {
			p = strings.ToLower(p)
		}
		if p != "" {
			ac.insert(p)
		}
	}
	ac.link()
	return ac
}

func newACNode() *acNode {
	return &acNode{children: make(map[rune]*acNode)}
}

func (ac *AhoCorasick) insert(pattern string) {
	node := ac.root
	for _, ch := range pattern {
		next := node.children[ch]
		if next == nil {
			next = newACNode()
			node.children[ch] = next
		}
		node = next
	}
	node.terminal = true
}

// link sets failure links breadth first and carries terminal flags along them.
func (ac *AhoCorasick) link() {
	queue := make([]*acNode, 0, len(ac.root.children))
	for _, child := range ac.root.children {
		child.failure = ac.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = ac.root
				continue
			}
			child.failure = fail.children[ch]
			child.terminal = child.terminal || child.failure.terminal
		}
	}
}

// Contains reports whether any pattern occurs in text.
func (ac *AhoCorasick) Contains(text string) bool {
	if !ac.caseSensitive {
		text = strings.ToLower(text)
	}
	node := ac.root
	for _, ch := range text {
		for node != ac.root && node.children[ch] == nil {
			node = node.failure
		}
		if next := node.children[ch]; next != nil {
			node = next
		}
		if node.terminal {
			return true
		}
	}
	return false
}

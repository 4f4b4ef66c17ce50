/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package prefixtrie indexes dot-separated reason prefixes for
// longest-prefix matching.
package prefixtrie

import (
	"errors"
	"strings"
)

// Wildcard matches exactly one segment.
const Wildcard = "*"

// ErrInvalidPrefix is returned for empty prefixes, empty or malformed
// segments, and prefixes made only of wildcards.
var ErrInvalidPrefix = errors.New("prefixtrie: invalid prefix")

// Trie maps reason prefixes to values. A node per segment; Wildcard
// children match any single segment. Build it once, then share it: Match
// never mutates the trie.
type Trie[T any] struct {
	children map[string]*Trie[T]
	set      bool
	val      T
	pattern  string
}

// New returns an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates prefix with val, replacing any previous value.
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	concrete := false
	for _, s := range segs {
		if s == Wildcard {
			continue
		}
		if !validSegment(s) {
			return ErrInvalidPrefix
		}
		concrete = true
	}
	if !concrete {
		return ErrInvalidPrefix
	}

	n := t
	for _, s := range segs {
		next, ok := n.children[s]
		if !ok {
			next = New[T]()
			n.children[s] = next
		}
		n = next
	}
	n.set, n.val, n.pattern = true, val, prefix
	return nil
}

// Match returns the value of the deepest prefix of key. At equal depth a
// concrete segment beats a wildcard. Malformed keys stop matching at the
// first bad segment.
func (t *Trie[T]) Match(key string) (T, bool) {
	v, _, ok := t.MatchPattern(key)
	return v, ok
}

// MatchPattern is Match that also returns the matched rule as inserted.
func (t *Trie[T]) MatchPattern(key string) (T, string, bool) {
	var zero T
	if t == nil {
		return zero, "", false
	}
	var segs []string
	if key != "" {
		segs = strings.Split(key, ".")
	}

	best := -1
	var hit *Trie[T]
	var walk func(n *Trie[T], depth int)
	walk = func(n *Trie[T], depth int) {
		if n.set && depth > best {
			best, hit = depth, n
		}
		if depth == len(segs) || !validSegment(segs[depth]) {
			return
		}
		if next, ok := n.children[segs[depth]]; ok {
			walk(next, depth+1)
		}
		if next, ok := n.children[Wildcard]; ok {
			walk(next, depth+1)
		}
	}
	walk(t, 0)

	if hit == nil {
		return zero, "", false
	}
	return hit.val, hit.pattern, true
}

// validSegment reports whether s matches [a-z][a-z0-9_]*.
func validSegment(s string) bool {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return false
		}
	}
	return true
}

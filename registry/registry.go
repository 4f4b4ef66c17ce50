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

package registry

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/reason"
	"dirpx.dev/apierrors/registry/internal/prefixtrie"
	"google.golang.org/grpc/codes"
)

var (
	// ErrInvalidStatus is returned for rule statuses outside [100,599].
	ErrInvalidStatus = errors.New("registry: status out of range")

	// ErrInvalidHeader is returned for headers with an empty name.
	ErrInvalidHeader = errors.New("registry: invalid header")
)

// New builds an immutable Registry snapshot.
//
// Build steps:
//
//  1. Apply options to a fresh builder.
//  2. Check every referenced kind is declared.
//  3. Normalize and validate reason prefixes, check statuses, and compile
//     per-kind prefix tries (HTTP and gRPC).
//  4. Canonicalize and deduplicate mandatory headers.
//
// The built-in kind table is copied into the snapshot unchanged.
func New(opts ...Option) (apis.Registry, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	r := &registry{
		desc:     make(map[kind.Kind]apis.Descriptor, len(defaults)),
		httpTrie: make(map[kind.Kind]*prefixtrie.Trie[int], len(b.httpPrefixes)),
		grpcTrie: make(map[kind.Kind]*prefixtrie.Trie[codes.Code], len(b.grpcPrefixes)),
	}
	for k, d := range defaults {
		r.desc[k] = d
	}

	for k, rules := range b.httpPrefixes {
		if err := kind.Validate(k); err != nil {
			return nil, fmt.Errorf("registry: HTTP rule for %q: %w", k, err)
		}
		t := prefixtrie.New[int]()
		for _, rule := range rules {
			if rule.val < 100 || rule.val > 599 {
				return nil, fmt.Errorf("registry: HTTP rule %q for %q: %w: %d", rule.prefix, k, ErrInvalidStatus, rule.val)
			}
			if err := insert(t, rule.prefix, rule.val); err != nil {
				return nil, fmt.Errorf("registry: HTTP rule for %q: %w", k, err)
			}
		}
		r.httpTrie[k] = t
	}

	for k, rules := range b.grpcPrefixes {
		if err := kind.Validate(k); err != nil {
			return nil, fmt.Errorf("registry: gRPC rule for %q: %w", k, err)
		}
		t := prefixtrie.New[codes.Code]()
		for _, rule := range rules {
			if rule.val < 0 || rule.val > int(codes.Unauthenticated) {
				return nil, fmt.Errorf("registry: gRPC rule %q for %q: %w: %d", rule.prefix, k, ErrInvalidStatus, rule.val)
			}
			if err := insert(t, rule.prefix, codes.Code(rule.val)); err != nil {
				return nil, fmt.Errorf("registry: gRPC rule for %q: %w", k, err)
			}
		}
		r.grpcTrie[k] = t
	}

	for k, hs := range b.headers {
		if err := kind.Validate(k); err != nil {
			return nil, fmt.Errorf("registry: header for %q: %w", k, err)
		}
		merged, err := mergeHeaders(hs)
		if err != nil {
			return nil, fmt.Errorf("registry: header for %q: %w", k, err)
		}
		d := r.desc[k]
		d.Headers = merged
		r.desc[k] = d
	}

	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) apis.Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() apis.Registry { return MustNew() })

// Default returns the process-wide registry built from the fixed kind table
// with no extra rules.
func Default() apis.Registry {
	return defaultRegistry()
}

// registry is the immutable apis.Registry implementation. Lookups are
// map reads plus an O(depth) trie walk and are safe for concurrent use.
type registry struct {
	desc     map[kind.Kind]apis.Descriptor
	httpTrie map[kind.Kind]*prefixtrie.Trie[int]
	grpcTrie map[kind.Kind]*prefixtrie.Trie[codes.Code]
}

// Descriptor returns a copy of the entry for k.
func (r *registry) Descriptor(k kind.Kind) (apis.Descriptor, bool) {
	d, ok := r.desc[k]
	if !ok {
		return apis.Descriptor{}, false
	}
	d.Headers = cloneHeaders(d.Headers)
	return d, true
}

// HTTPStatus resolves, in order: reason-prefix rule for k, default for k,
// then 500.
func (r *registry) HTTPStatus(k kind.Kind, rs reason.Reason) int {
	if t := r.httpTrie[k]; t != nil && rs != reason.Empty {
		if v, ok := t.Match(string(rs)); ok {
			return v
		}
	}
	if d, ok := r.desc[k]; ok {
		return d.HTTPStatus
	}
	return http.StatusInternalServerError
}

// GRPCStatus resolves like HTTPStatus, falling back to codes.Internal.
func (r *registry) GRPCStatus(k kind.Kind, rs reason.Reason) codes.Code {
	if t := r.grpcTrie[k]; t != nil && rs != reason.Empty {
		if v, ok := t.Match(string(rs)); ok {
			return v
		}
	}
	if d, ok := r.desc[k]; ok {
		return d.GRPCCode
	}
	return codes.Internal
}

// Status resolves both transports.
func (r *registry) Status(k kind.Kind, rs reason.Reason) apis.Status {
	return apis.Status{HTTP: r.HTTPStatus(k, rs), GRPC: r.GRPCStatus(k, rs)}
}

// Headers returns a copy of the mandatory headers for k.
func (r *registry) Headers(k kind.Kind) []apis.Header {
	return cloneHeaders(r.desc[k].Headers)
}

// Explain renders which rule produced the statuses for (k, rs):
//
//	kind="unauthorized" reason="auth.token.expired"
//	http: source=prefix pattern="auth.token" -> 419
//	grpc: source=default -> UNAUTHENTICATED(16)
//
// source is one of prefix, default, fallback.
func (r *registry) Explain(k kind.Kind, rs reason.Reason) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "kind=%q reason=%q\n", k, rs)
	_, _ = fmt.Fprintln(&b, r.explainHTTP(k, rs))
	_, _ = fmt.Fprint(&b, r.explainGRPC(k, rs))
	return b.String()
}

func (r *registry) explainHTTP(k kind.Kind, rs reason.Reason) string {
	if t := r.httpTrie[k]; t != nil && rs != reason.Empty {
		if v, pat, ok := t.MatchPattern(string(rs)); ok {
			return fmt.Sprintf("http: source=prefix pattern=%q -> %d", pat, v)
		}
	}
	if d, ok := r.desc[k]; ok {
		return fmt.Sprintf("http: source=default -> %d", d.HTTPStatus)
	}
	return fmt.Sprintf("http: source=fallback -> %d", http.StatusInternalServerError)
}

func (r *registry) explainGRPC(k kind.Kind, rs reason.Reason) string {
	if t := r.grpcTrie[k]; t != nil && rs != reason.Empty {
		if v, pat, ok := t.MatchPattern(string(rs)); ok {
			return fmt.Sprintf("grpc: source=prefix pattern=%q -> %s", pat, grpcName(v))
		}
	}
	if d, ok := r.desc[k]; ok {
		return fmt.Sprintf("grpc: source=default -> %s", grpcName(d.GRPCCode))
	}
	return fmt.Sprintf("grpc: source=fallback -> %s", grpcName(codes.Internal))
}

func grpcName(c codes.Code) string {
	return fmt.Sprintf("%s(%d)", strings.ToUpper(c.String()), int(c))
}

// insert normalizes prefix with the reason rules and adds it to t.
func insert[T any](t *prefixtrie.Trie[T], prefix string, val T) error {
	p := reason.Normalize(prefix)
	if err := t.Insert(p, val); err != nil {
		return fmt.Errorf("prefix %q: %w", prefix, err)
	}
	return nil
}

// mergeHeaders canonicalizes names and keeps the last value per name at
// the position where the name first appeared.
func mergeHeaders(hs []apis.Header) ([]apis.Header, error) {
	out := make([]apis.Header, 0, len(hs))
	idx := make(map[string]int, len(hs))
	for _, h := range hs {
		name := http.CanonicalHeaderKey(strings.TrimSpace(h.Name))
		if name == "" {
			return nil, ErrInvalidHeader
		}
		if i, ok := idx[name]; ok {
			out[i].Value = h.Value
			continue
		}
		idx[name] = len(out)
		out = append(out, apis.Header{Name: name, Value: h.Value})
	}
	return out, nil
}

func cloneHeaders(hs []apis.Header) []apis.Header {
	if len(hs) == 0 {
		return nil
	}
	out := make([]apis.Header, len(hs))
	copy(out, hs)
	return out
}

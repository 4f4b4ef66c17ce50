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

// Package negotiate decides whether an error response should be a
// structured (JSON) body or a rendered page.
package negotiate

import (
	"mime"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// Mode is the response shape chosen for a request.
type Mode int

const (
	// Structured is a machine-readable JSON body.
	Structured Mode = iota
	// Page is a rendered HTML page, or a redirect for validation failures.
	Page
)

func (m Mode) String() string {
	switch m {
	case Structured:
		return "structured"
	case Page:
		return "page"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Choose returns Structured when pages are unavailable or the request
// expects JSON, and Page otherwise.
func Choose(r *http.Request, pagesAvailable bool) Mode {
	if !pagesAvailable || ExpectsJSON(r) {
		return Structured
	}
	return Page
}

// ExpectsJSON reports whether the caller wants a JSON answer: either its
// preferred media type is JSON, or it is a non-PJAX XHR that accepts
// anything.
func ExpectsJSON(r *http.Request) bool {
	if r == nil {
		return false
	}
	if isXHR(r) && !isPJAX(r) && acceptsAny(r) {
		return true
	}
	return WantsJSON(r)
}

// WantsJSON reports whether the most preferred Accept entry is */json or
// */*+json.
func WantsJSON(r *http.Request) bool {
	types := Acceptable(r.Header.Values("Accept"))
	if len(types) == 0 {
		return false
	}
	first := types[0]
	return strings.HasSuffix(first, "/json") || strings.HasSuffix(first, "+json")
}

func isXHR(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

func isPJAX(r *http.Request) bool {
	return r.Header.Get("X-PJAX") != ""
}

func acceptsAny(r *http.Request) bool {
	types := Acceptable(r.Header.Values("Accept"))
	return len(types) == 0 || types[0] == "*/*" || types[0] == "*"
}

type entry struct {
	typ string
	q   float64
}

// Acceptable parses Accept header values into media types ordered by
// preference: highest q first, header order among equals. Entries with
// q=0 and unparsable entries are dropped. Parameters other than q are
// discarded and types are lower-cased.
func Acceptable(values []string) []string {
	var entries []entry
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if part == "*" {
				entries = append(entries, entry{typ: "*", q: 1})
				continue
			}
			typ, params, err := mime.ParseMediaType(part)
			if err != nil {
				continue
			}
			q := 1.0
			if s, ok := params["q"]; ok {
				f, err := strconv.ParseFloat(s, 64)
				if err != nil || f < 0 || f > 1 {
					continue
				}
				q = f
			}
			if q == 0 {
				continue
			}
			entries = append(entries, entry{typ: typ, q: q})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].q > entries[j].q })
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.typ
	}
	return out
}

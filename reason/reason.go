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

package reason

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Reason is an optional, dot-separated refinement of an error kind, e.g.
// "auth.token.expired" or "ratelimit.login". Each segment names a component
// or an operation, from general to specific.
type Reason string

const (
	// MinLength is the minimum length of a non-empty reason.
	MinLength = 3

	// MaxLength is the maximum length of a reason.
	MaxLength = 128

	// MaxSegments bounds the depth of a reason.
	MaxSegments = 4

	// Sep separates segments.
	Sep = "."
)

// segmentRe matches a single segment.
var segmentRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var (
	// ErrReasonInvalidFormat is returned for reasons with an empty or
	// malformed segment, or with more than MaxSegments segments.
	ErrReasonInvalidFormat = errors.New("apierrors: invalid reason format")
	// ErrReasonInvalidLength is returned for reasons outside MinLength..MaxLength.
	ErrReasonInvalidLength = errors.New("apierrors: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = (*Reason)(nil)
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty means "no reason provided" and is always valid.
var Empty Reason = ""

// Normalize maps the spellings found in rule files and CLI arguments onto
// the canonical form: surrounding space is dropped, letters are lowered,
// path separators become Sep and dashes become underscores. The result
// still has to be validated.
func Normalize(s string) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c == '/':
			return '.'
		case c == '-':
			return '_'
		case 'A' <= c && c <= 'Z':
			return c + ('a' - 'A')
		}
		return c
	}, strings.TrimSpace(s))
}

// Parse normalizes and validates s. The empty string yields Empty, nil.
func Parse(s string) (Reason, error) {
	r := Reason(Normalize(s))
	if err := Validate(r); err != nil {
		return Empty, err
	}
	return r, nil
}

// MustParse is like Parse but panics on error and on an empty input. It is
// meant for reasons spelled out in code.
func MustParse(s string) Reason {
	r, err := Parse(s)
	switch {
	case err != nil:
		panic(err)
	case r == Empty:
		panic(fmt.Sprintf("apierrors: empty reason in MustParse(%q)", s))
	}
	return r
}

// Validate checks r. Empty is valid.
func Validate(r Reason) error {
	if r == Empty {
		return nil
	}
	if n := len(r); n < MinLength || n > MaxLength {
		return fmt.Errorf("%w: %d bytes, want %d..%d", ErrReasonInvalidLength, n, MinLength, MaxLength)
	}
	segs := r.Segments()
	if len(segs) > MaxSegments {
		return fmt.Errorf("%w: %q has %d segments, max %d", ErrReasonInvalidFormat, r, len(segs), MaxSegments)
	}
	for i, seg := range segs {
		if !segmentRe.MatchString(seg) {
			return fmt.Errorf("%w: %q segment %d %q", ErrReasonInvalidFormat, r, i, seg)
		}
	}
	return nil
}

// Segments splits r on Sep. It returns nil for Empty.
func (r Reason) Segments() []string {
	if r == Empty {
		return nil
	}
	return strings.Split(string(r), Sep)
}

// String returns the canonical string form.
func (r Reason) String() string {
	return string(r)
}

// MarshalText implements encoding.TextMarshaler. Empty marshals to "".
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting the same
// spellings as Parse.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

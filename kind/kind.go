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

package kind

import (
	"bytes"
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Kind is the canonical, validated identifier of an API error category.
//
// It is a distinct type (not a bare string) so that callers cannot pass raw
// user input where a known category is expected. The set of kinds the
// library understands is closed and declared in kinds.go.
type Kind string

const (
	// MinLength is the minimum length for a valid kind identifier.
	MinLength = 3

	// MaxLength is the maximum length for a valid kind identifier.
	MaxLength = 64
)

// kindFmt mirrors MinLength/MaxLength: one leading letter followed by
// 2..63 lowercase letters, digits or underscores.
const kindFmt = `^[a-z][a-z0-9_]{2,63}$`

var kindRe = regexp.MustCompile(kindFmt)

var (
	// ErrKindInvalid is returned when a value is not a well-formed kind.
	ErrKindInvalid = errors.New("apierrors: invalid kind")

	// ErrKindUnknown is returned when a well-formed value does not name one
	// of the kinds declared by this package.
	ErrKindUnknown = errors.New("apierrors: unknown kind")
)

var (
	_ encoding.TextMarshaler   = (*Kind)(nil)
	_ encoding.TextUnmarshaler = (*Kind)(nil)
)

// Empty is the zero-value kind. It never identifies a real category.
var Empty Kind = ""

// Parse normalizes s and returns the matching known Kind.
//
// Unlike a free-form code, a Kind must be one of All(); well-formed but
// undeclared values yield ErrKindUnknown.
func Parse(s string) (Kind, error) {
	s = Normalize(s)
	if err := validate(s); err != nil {
		return Empty, err
	}
	k := Kind(s)
	if !k.Known() {
		return Empty, ErrKindUnknown
	}
	return k, nil
}

// MustParse is like Parse but panics on error. Use it for package-level vars.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// Normalize trims, lowercases and replaces '-' and ' ' with '_'.
// It does not guarantee the result is valid.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

// Validate checks that k is well-formed and declared.
func Validate(k Kind) error {
	if err := validate(string(k)); err != nil {
		return err
	}
	if !k.Known() {
		return ErrKindUnknown
	}
	return nil
}

// Known reports whether k is one of the declared kinds.
func (k Kind) Known() bool {
	_, ok := known[k]
	return ok
}

// String returns the canonical string form.
func (k Kind) String() string {
	return string(k)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if err := Validate(k); err != nil {
		return nil, err
	}
	return []byte(k), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(bytes.TrimSpace(text)))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func validate(s string) error {
	if !kindRe.MatchString(s) {
		return ErrKindInvalid
	}
	return nil
}

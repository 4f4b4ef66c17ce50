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

// Package fields holds the ordered field -> messages bag produced by
// validators and carried by validation API errors.
package fields

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Errors maps form-field names to their ordered validation messages.
//
// Field order is the order in which fields were first added and survives
// JSON round-trips, so a client sees fields in the order the validator
// produced them. The zero value is an empty, usable bag.
//
// Every field holds at least one message. A field offered with no messages
// is not recorded, so {"email": []} decodes to an empty bag, and a
// validator that only produced such fields yields no validation error at
// all (package classify then treats it as an internal error).
//
// Errors is a value type backed by shared slices; use Clone before handing
// a bag to code that may mutate it.
type Errors struct {
	order []string
	msgs  map[string][]string
}

// Field is one entry of the bag.
type Field struct {
	Name     string
	Messages []string
}

// ErrDuplicateField is returned by UnmarshalJSON when a field repeats.
var ErrDuplicateField = errors.New("fields: duplicate field")

// New builds a bag from entries, in order. Repeated names are merged and
// entries without messages are skipped.
func New(entries ...Field) Errors {
	var e Errors
	for _, f := range entries {
		e.Add(f.Name, f.Messages...)
	}
	return e
}

// Add appends msgs to name, registering name if it is new. Adding a field
// with no messages is a no-op.
func (e *Errors) Add(name string, msgs ...string) {
	if len(msgs) == 0 {
		return
	}
	if e.msgs == nil {
		e.msgs = make(map[string][]string)
	}
	cur, ok := e.msgs[name]
	if !ok {
		e.order = append(e.order, name)
	}
	e.msgs[name] = append(cur, msgs...)
}

// Len returns the number of fields.
func (e Errors) Len() int { return len(e.order) }

// Empty reports whether the bag has no fields.
func (e Errors) Empty() bool { return len(e.order) == 0 }

// Has reports whether name has at least one message.
func (e Errors) Has(name string) bool {
	_, ok := e.msgs[name]
	return ok
}

// Names returns field names in order. The slice is a copy.
func (e Errors) Names() []string {
	if len(e.order) == 0 {
		return nil
	}
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Get returns a copy of the messages for name.
func (e Errors) Get(name string) []string {
	m, ok := e.msgs[name]
	if !ok {
		return nil
	}
	out := make([]string, len(m))
	copy(out, m)
	return out
}

// First returns the first message for name, or "".
func (e Errors) First(name string) string {
	if m := e.msgs[name]; len(m) > 0 {
		return m[0]
	}
	return ""
}

// All returns every entry in order.
func (e Errors) All() []Field {
	out := make([]Field, 0, len(e.order))
	for _, n := range e.order {
		out = append(out, Field{Name: n, Messages: e.Get(n)})
	}
	return out
}

// Map returns an unordered copy, for collaborators that only accept a map.
func (e Errors) Map() map[string][]string {
	if len(e.order) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e.order))
	for _, n := range e.order {
		out[n] = e.Get(n)
	}
	return out
}

// Clone returns a deep copy.
func (e Errors) Clone() Errors {
	var out Errors
	for _, n := range e.order {
		out.Add(n, e.msgs[n]...)
	}
	return out
}

// Equal reports whether both bags have the same fields, in the same order,
// with the same messages.
func (e Errors) Equal(o Errors) bool {
	if len(e.order) != len(o.order) {
		return false
	}
	for i, n := range e.order {
		if o.order[i] != n {
			return false
		}
		a, b := e.msgs[n], o.msgs[n]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] {
				return false
			}
		}
	}
	return true
}

// MarshalJSON encodes the bag as a JSON object whose keys keep field order.
func (e Errors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range e.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.msgs[n])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string arrays, keeping key order.
// Keys holding an empty array or null are skipped.
func (e *Errors) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*e = Errors{}
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("fields: expected object, got %v", tok)
	}
	var out Errors
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("fields: expected field name, got %v", tok)
		}
		if out.Has(name) {
			return fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		var msgs []string
		if err := dec.Decode(&msgs); err != nil {
			return fmt.Errorf("fields: field %q: %w", name, err)
		}
		out.Add(name, msgs...)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*e = out
	return nil
}

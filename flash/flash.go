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

// Package flash keeps the old input and field errors of a failed form
// submission for the page the user is redirected to.
//
// Data is stored as a one-shot gorilla/sessions flash, so it survives
// exactly one redirect.
package flash

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/fields"
	"github.com/gorilla/sessions"
)

// DefaultName is the session name used when none is given.
const DefaultName = "apierrors"

const flashKey = "_old"

// Old is what a redirected page gets back.
type Old struct {
	Input  url.Values    `json:"input,omitempty"`
	Errors fields.Errors `json:"errors"`
}

// Value returns the first old value for key, or "".
func (o Old) Value(key string) string { return o.Input.Get(key) }

// Sessions implements apis.Flasher over a gorilla/sessions store.
type Sessions struct {
	store sessions.Store
	name  string
}

var _ apis.Flasher = (*Sessions)(nil)

// New returns a Flasher storing flashes in the named session of store.
func New(store sessions.Store, name string) *Sessions {
	if name == "" {
		name = DefaultName
	}
	return &Sessions{store: store, name: name}
}

// NewCookie is New over a cookie store keyed with keyPairs (see
// sessions.NewCookieStore). The cookie is HttpOnly and scoped to "/".
func NewCookie(name string, keyPairs ...[]byte) *Sessions {
	store := sessions.NewCookieStore(keyPairs...)
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return New(store, name)
}

// Flash implements apis.Flasher.
func (s *Sessions) Flash(w http.ResponseWriter, r *http.Request, input url.Values, errs fields.Errors) error {
	// A session that fails to decode (rotated keys, tampering) comes back
	// new and usable.
	sess, _ := s.store.Get(r, s.name)
	if sess == nil {
		return fmt.Errorf("flash: session %q unavailable", s.name)
	}
	b, err := json.Marshal(Old{Input: input, Errors: errs})
	if err != nil {
		return fmt.Errorf("flash: encode: %w", err)
	}
	sess.AddFlash(string(b), flashKey)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("flash: save session %q: %w", s.name, err)
	}
	return nil
}

// Take returns and clears the flashed data. ok is false when nothing was
// flashed.
func (s *Sessions) Take(w http.ResponseWriter, r *http.Request) (old Old, ok bool, err error) {
	sess, _ := s.store.Get(r, s.name)
	if sess == nil {
		return Old{}, false, nil
	}
	flashes := sess.Flashes(flashKey)
	if len(flashes) == 0 {
		return Old{}, false, nil
	}
	if err := sess.Save(r, w); err != nil {
		return Old{}, false, fmt.Errorf("flash: save session %q: %w", s.name, err)
	}
	raw, _ := flashes[len(flashes)-1].(string)
	if err := json.Unmarshal([]byte(raw), &old); err != nil {
		return Old{}, false, fmt.Errorf("flash: decode: %w", err)
	}
	return old, true, nil
}

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

// Package signal declares the error shapes a host application raises to
// ask for a specific API response.
//
// Handlers return these (possibly wrapped with %w); the classifier
// recognizes them with errors.As / errors.Is and turns them into
// *apierrors.Error values. Anything else is treated as an internal error.
package signal

import (
	"errors"
	"strings"

	"dirpx.dev/apierrors/fields"
)

var (
	// ErrRecordNotFound reports a failed lookup of a stored record.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRouteNotFound reports that no route matched the request.
	ErrRouteNotFound = errors.New("route not found")
)

// AuthorizationError reports that an authenticated caller may not perform
// an action.
type AuthorizationError struct {
	// Action and Resource describe what was denied, for logs.
	Action   string
	Resource string
	// Err is an optional underlying policy error.
	Err error
}

func (e *AuthorizationError) Error() string {
	var b strings.Builder
	b.WriteString("not authorized")
	if e.Action != "" {
		b.WriteString(" to ")
		b.WriteString(e.Action)
	}
	if e.Resource != "" {
		b.WriteString(" ")
		b.WriteString(e.Resource)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// AuthenticationError reports that the request carries no valid
// credentials.
type AuthenticationError struct {
	// Challenge, when set, is sent back as the WWW-Authenticate header,
	// e.g. `Bearer realm="api"`.
	Challenge string
	// Guards names the authentication schemes that were tried, for logs.
	Guards []string
	Err    error
}

func (e *AuthenticationError) Error() string {
	s := "unauthenticated"
	if len(e.Guards) > 0 {
		s += " (" + strings.Join(e.Guards, ", ") + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// ValidationError carries the message bag produced by a validator.
type ValidationError struct {
	Fields fields.Errors
}

// NewValidationError builds a ValidationError from ordered entries.
func NewValidationError(entries ...fields.Field) *ValidationError {
	return &ValidationError{Fields: fields.New(entries...)}
}

func (e *ValidationError) Error() string {
	names := e.Fields.Names()
	if len(names) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// MethodNotAllowedError reports that a route exists but not for the
// request method.
type MethodNotAllowedError struct {
	Method string
	// Allowed lists the methods the route accepts; it becomes the Allow
	// header when non-empty.
	Allowed []string
}

func (e *MethodNotAllowedError) Error() string {
	s := "method not allowed"
	if e.Method != "" {
		s = "method " + e.Method + " not allowed"
	}
	if len(e.Allowed) > 0 {
		s += " (allowed: " + strings.Join(e.Allowed, ", ") + ")"
	}
	return s
}

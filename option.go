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

package apierrors

import "dirpx.dev/apierrors/reason"

// Option is a functional option for New. It takes an *Error and returns a
// (possibly new) *Error.
type Option func(*Error) *Error

// WithReason sets the reason on construction.
func WithReason(r reason.Reason) Option {
	return func(e *Error) *Error { return e.WithReason(r) }
}

// WithStatus overrides the kind's default status on construction.
func WithStatus(status int) Option {
	return func(e *Error) *Error { return e.WithStatus(status) }
}

// WithHeader adds a response header on construction.
func WithHeader(name, value string) Option {
	return func(e *Error) *Error { return e.WithHeader(name, value) }
}

// WithCause attaches a cause on construction.
func WithCause(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}

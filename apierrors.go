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

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/fields"
	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/reason"
	"dirpx.dev/apierrors/registry"
)

// Error is a classified API error: the value the rendering pipeline turns
// into a response.
//
// It carries:
//   - kind: exactly one category from package kind, fixed at construction;
//   - status: HTTP status in [100,599], derived from the kind unless
//     overridden with WithStatus;
//   - headers: ordered response headers (Allow, WWW-Authenticate, ...);
//   - message: human-readable text, possibly empty;
//   - reason: optional sub-classification;
//   - cause: the error that triggered classification, if retained;
//   - fields: per-field messages, only for kind.ValidationFailed.
//
// All fields are unexported; WithX methods return shallow copies, so an
// Error can be shared across goroutines.
type Error struct {
	kind      kind.Kind
	status    int
	statusSet bool
	headers   []apis.Header
	message   string
	reason    reason.Reason
	cause     error
	fields    fields.Errors
}

var (
	_ apis.KindedError = (*Error)(nil)
	_ apis.StatusError = (*Error)(nil)
	_ apis.FieldError  = (*Error)(nil)
	_ apis.CausedError = (*Error)(nil)
)

// ErrEmptyFields is returned when building a validation error without any
// field messages.
var ErrEmptyFields = errors.New("apierrors: validation error needs at least one field")

// New builds an Error of kind k. An undeclared kind becomes
// kind.InternalServerError so that every Error stays renderable.
//
// Usage:
//
//	return apierrors.New(kind.Conflict, "order already shipped",
//	    apierrors.WithReason(reason.MustParse("orders.state.shipped")),
//	    apierrors.WithCause(err),
//	)
func New(k kind.Kind, msg string, opts ...Option) *Error {
	if !k.Known() {
		k = kind.InternalServerError
	}
	e := &Error{
		kind:    k,
		status:  registry.Default().HTTPStatus(k, reason.Empty),
		message: msg,
	}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Forbidden builds a 403 error wrapping cause.
func Forbidden(msg string, cause error) *Error {
	return New(kind.Forbidden, msg, WithCause(cause))
}

// Unauthorized builds a 401 error wrapping cause. A non-empty challenge
// becomes the WWW-Authenticate header.
func Unauthorized(msg string, cause error, challenge string) *Error {
	e := New(kind.Unauthorized, msg, WithCause(cause))
	if challenge != "" {
		e = e.WithHeader("WWW-Authenticate", challenge)
	}
	return e
}

// NewValidationFailed builds a 422 error carrying a copy of fe. It returns
// ErrEmptyFields when fe has no fields.
func NewValidationFailed(fe fields.Errors, msg string) (*Error, error) {
	if fe.Empty() {
		return nil, ErrEmptyFields
	}
	e := New(kind.ValidationFailed, msg)
	e.fields = fe.Clone()
	return e, nil
}

// MethodNotAllowed builds a 405 error wrapping cause. Non-empty allow
// becomes the Allow header.
func MethodNotAllowed(msg string, cause error, allow ...string) *Error {
	e := New(kind.MethodNotAllowed, msg, WithCause(cause))
	if len(allow) > 0 {
		e = e.WithHeader("Allow", strings.Join(allow, ", "))
	}
	return e
}

// NotFound builds a 404 error. It takes no cause: not-found responses stay
// generic whatever lookup failed.
func NotFound(msg string) *Error {
	return New(kind.NotFound, msg)
}

// InternalServerError builds a 500 error wrapping cause.
func InternalServerError(msg string, cause error) *Error {
	return New(kind.InternalServerError, msg, WithCause(cause))
}

// Error implements the error interface as
//
//	<kind> (<status>): <message>[: <cause>]
//
// The string may include the cause and is meant for logs, never for
// clients.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.message
	if msg == "" {
		msg = http.StatusText(e.status)
	}
	s := fmt.Sprintf("%s (%d): %s", e.kind, e.status, msg)
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

// Unwrap returns the cause, enabling errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.cause }

// Kind returns the error's category.
func (e *Error) Kind() kind.Kind { return e.kind }

// ErrorKind implements apis.KindedError.
func (e *Error) ErrorKind() kind.Kind { return e.kind }

// Status returns the HTTP status.
func (e *Error) Status() int { return e.status }

// HTTPStatus implements apis.StatusError.
func (e *Error) HTTPStatus() int { return e.status }

// StatusOverridden reports whether WithStatus replaced the kind default.
func (e *Error) StatusOverridden() bool { return e.statusSet }

// Headers returns a copy of the response headers, in order.
func (e *Error) Headers() []apis.Header {
	if len(e.headers) == 0 {
		return nil
	}
	out := make([]apis.Header, len(e.headers))
	copy(out, e.headers)
	return out
}

// Header returns the value of the named header, or "".
func (e *Error) Header(name string) string {
	name = http.CanonicalHeaderKey(name)
	for _, h := range e.headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// Message returns the message, which may be empty.
func (e *Error) Message() string { return e.message }

// Reason returns the sub-classification, which may be empty.
func (e *Error) Reason() reason.Reason { return e.reason }

// Cause returns the error that triggered classification, or nil.
func (e *Error) Cause() error { return e.cause }

// Fields returns a copy of the validation field errors.
func (e *Error) Fields() fields.Errors { return e.fields.Clone() }

// FieldErrors implements apis.FieldError.
func (e *Error) FieldErrors() fields.Errors { return e.Fields() }

// Report returns what should be handed to a logger: the cause when one was
// retained, the Error itself otherwise.
func (e *Error) Report() error {
	if e.cause != nil {
		return e.cause
	}
	return e
}

// WithMessage returns a copy of e with msg as its message.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.message = msg
	return &cp
}

// WithReason returns a copy of e with reason r.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.reason = r
	return &cp
}

// WithStatus returns a copy of e answering with status instead of the kind
// default. Values outside [100,599] are ignored.
func (e *Error) WithStatus(status int) *Error {
	if status < 100 || status > 599 {
		return e
	}
	cp := *e
	cp.status = status
	cp.statusSet = true
	return &cp
}

// WithHeader returns a copy of e with the header set, replacing any
// existing value for the same canonical name in place.
func (e *Error) WithHeader(name, value string) *Error {
	name = http.CanonicalHeaderKey(strings.TrimSpace(name))
	if name == "" {
		return e
	}
	cp := *e
	cp.headers = make([]apis.Header, 0, len(e.headers)+1)
	replaced := false
	for _, h := range e.headers {
		if h.Name == name {
			h.Value = value
			replaced = true
		}
		cp.headers = append(cp.headers, h)
	}
	if !replaced {
		cp.headers = append(cp.headers, apis.Header{Name: name, Value: value})
	}
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e
// unchanged; not-found errors never retain a cause.
func (e *Error) WithCause(err error) *Error {
	if err == nil || e.kind == kind.NotFound {
		return e
	}
	cp := *e
	cp.cause = err
	return &cp
}

// Resolve applies reg to e: the status follows reg's reason rules unless it
// was overridden, and reg's mandatory headers are added ahead of e's own
// headers (e's values win on conflicts).
func (e *Error) Resolve(reg apis.Registry) *Error {
	if reg == nil {
		return e
	}
	cp := *e
	if !e.statusSet {
		cp.status = reg.HTTPStatus(e.kind, e.reason)
	}
	if mandatory := reg.Headers(e.kind); len(mandatory) > 0 {
		out := &Error{headers: mandatory}
		for _, h := range e.headers {
			out = out.WithHeader(h.Name, h.Value)
		}
		cp.headers = out.headers
	}
	return &cp
}

// DisplayMessage returns the message, or the registry default for the kind
// when the message is empty.
func (e *Error) DisplayMessage(reg apis.Registry) string {
	if e.message != "" {
		return e.message
	}
	if reg == nil {
		reg = registry.Default()
	}
	if d, ok := reg.Descriptor(e.kind); ok && d.Message != "" {
		return d.Message
	}
	return http.StatusText(e.status)
}

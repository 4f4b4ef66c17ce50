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

// Package classify maps arbitrary errors onto *apierrors.Error.
//
// Classification is an ordered list of rules evaluated first-match-wins:
//
//  1. an *apierrors.Error anywhere in the chain is returned unchanged;
//  2. *signal.AuthorizationError -> forbidden, cause kept;
//  3. *signal.AuthenticationError -> unauthorized, cause kept,
//     WWW-Authenticate from the challenge;
//  4. *signal.ValidationError with fields -> validation_failed, fields
//     copied in order;
//  5. *signal.MethodNotAllowedError -> method_not_allowed, cause kept,
//     Allow from the allowed methods;
//  6. signal.ErrRecordNotFound, sql.ErrNoRows, pgx.ErrNoRows,
//     signal.ErrRouteNotFound -> not_found, no cause;
//  7. anything else -> internal_server_error, cause kept.
//
// Extra rules passed to New run after 6 and before 7.
package classify

import (
	"database/sql"
	"errors"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/signal"
	"github.com/jackc/pgx/v5"
)

// Rule is one step of the classification chain. Build is only called when
// Match returned true and must not return nil.
type Rule struct {
	Name  string
	Match func(err error) bool
	Build func(err error) *apierrors.Error
}

// Classifier is an immutable rule chain. The zero value is not usable; use
// New or Default.
type Classifier struct {
	rules []Rule
}

// New returns a Classifier running the built-in rules, then extra, then the
// catch-all.
func New(extra ...Rule) *Classifier {
	rules := make([]Rule, 0, len(builtin)+len(extra))
	rules = append(rules, builtin...)
	for _, r := range extra {
		if r.Match != nil && r.Build != nil {
			rules = append(rules, r)
		}
	}
	return &Classifier{rules: rules}
}

var std = New()

// Default returns the Classifier with only the built-in rules.
func Default() *Classifier { return std }

// Classify runs the default chain. See Classifier.Classify.
func Classify(err error) *apierrors.Error { return std.Classify(err) }

// Classify returns the *apierrors.Error for err, or nil for a nil err.
//
// It never panics: a rule that panics or builds nil is skipped, and
// anything left over becomes an internal server error wrapping err.
func (c *Classifier) Classify(err error) *apierrors.Error {
	if err == nil {
		return nil
	}
	for _, r := range c.rules {
		if e := apply(r, err); e != nil {
			return e
		}
	}
	return catchAll(err)
}

// Rules returns the rule names in evaluation order, for diagnostics.
func (c *Classifier) Rules() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.Name)
	}
	return append(out, "internal")
}

func apply(r Rule, err error) (e *apierrors.Error) {
	defer func() {
		if recover() != nil {
			e = nil
		}
	}()
	if !r.Match(err) {
		return nil
	}
	return r.Build(err)
}

func catchAll(err error) *apierrors.Error {
	return apierrors.InternalServerError("", err)
}

var builtin = []Rule{
	{
		Name: "passthrough",
		Match: func(err error) bool {
			var e *apierrors.Error
			return errors.As(err, &e) && e != nil
		},
		Build: func(err error) *apierrors.Error {
			var e *apierrors.Error
			errors.As(err, &e)
			return e
		},
	},
	{
		Name:  "forbidden",
		Match: is[*signal.AuthorizationError],
		Build: func(err error) *apierrors.Error {
			return apierrors.Forbidden("", err)
		},
	},
	{
		Name:  "unauthorized",
		Match: is[*signal.AuthenticationError],
		Build: func(err error) *apierrors.Error {
			ae, _ := as[*signal.AuthenticationError](err)
			return apierrors.Unauthorized("", err, ae.Challenge)
		},
	},
	{
		Name: "validation_failed",
		Match: func(err error) bool {
			ve, ok := as[*signal.ValidationError](err)
			return ok && !ve.Fields.Empty()
		},
		Build: func(err error) *apierrors.Error {
			ve, _ := as[*signal.ValidationError](err)
			e, verr := apierrors.NewValidationFailed(ve.Fields, "")
			if verr != nil {
				return nil
			}
			return e
		},
	},
	{
		Name:  "method_not_allowed",
		Match: is[*signal.MethodNotAllowedError],
		Build: func(err error) *apierrors.Error {
			me, _ := as[*signal.MethodNotAllowedError](err)
			return apierrors.MethodNotAllowed("", err, me.Allowed...)
		},
	},
	{
		Name: "not_found",
		Match: func(err error) bool {
			return errors.Is(err, signal.ErrRecordNotFound) ||
				errors.Is(err, sql.ErrNoRows) ||
				errors.Is(err, pgx.ErrNoRows) ||
				errors.Is(err, signal.ErrRouteNotFound)
		},
		Build: func(error) *apierrors.Error {
			return apierrors.NotFound("")
		},
	},
}

// is reports whether err's chain holds a T.
func is[T error](err error) bool {
	_, ok := as[T](err)
	return ok
}

func as[T error](err error) (T, bool) {
	var t T
	ok := errors.As(err, &t)
	return t, ok
}

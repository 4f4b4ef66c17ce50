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

package apis

import (
	"dirpx.dev/apierrors/fields"
	"dirpx.dev/apierrors/kind"
)

// KindedError is an error that belongs to exactly one API error kind.
//
// Adapters that only need the classification (loggers, metrics) should
// depend on this interface rather than on the concrete error type.
type KindedError interface {
	error

	// ErrorKind returns the error's category. Never empty.
	ErrorKind() kind.Kind
}

// StatusError is an error that knows its resolved HTTP status.
type StatusError interface {
	error

	// HTTPStatus returns a status in [100,599].
	HTTPStatus() int
}

// FieldError is an error that carries per-field validation messages.
type FieldError interface {
	error

	// FieldErrors returns the ordered field bag. It may be empty.
	FieldErrors() fields.Errors
}

// CausedError exposes the error that triggered classification.
//
// Cause returns nil when no cause was retained (for example, not-found
// errors deliberately drop theirs).
type CausedError interface {
	error

	Cause() error
}

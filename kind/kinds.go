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

// Required kinds.
//
// These six categories are what the classifier can produce from framework
// signals. Their default HTTP statuses are fixed in the registry and must
// not change.
const (
	// Forbidden: the caller is known but the action is not permitted.
	// Maps to HTTP 403.
	Forbidden Kind = "forbidden"

	// Unauthorized: the caller must authenticate first. The error may
	// carry a WWW-Authenticate challenge header.
	// Maps to HTTP 401.
	Unauthorized Kind = "unauthorized"

	// ValidationFailed: submitted input broke one or more field rules.
	// The only kind that carries field errors.
	// Maps to HTTP 422.
	ValidationFailed Kind = "validation_failed"

	// MethodNotAllowed: the route exists but not for this HTTP method.
	// The error may carry an Allow header.
	// Maps to HTTP 405.
	MethodNotAllowed Kind = "method_not_allowed"

	// NotFound: no record or route matched. Never carries a cause.
	// Maps to HTTP 404.
	NotFound Kind = "not_found"

	// InternalServerError is the catch-all for anything unrecognized.
	// Maps to HTTP 500.
	InternalServerError Kind = "internal_server_error"
)

// Additional kinds.
//
// Application code constructs these directly; the classifier never
// synthesizes them from foreign errors.
const (
	// BadRequest: the request is malformed beyond field validation.
	// Maps to HTTP 400.
	BadRequest Kind = "bad_request"

	// Conflict: the request clashes with the current resource state.
	// Maps to HTTP 409.
	Conflict Kind = "conflict"

	// TooManyRequests: the caller hit a rate limit.
	// Maps to HTTP 429.
	TooManyRequests Kind = "too_many_requests"

	// ServiceUnavailable: a dependency or the service itself is down.
	// Maps to HTTP 503.
	ServiceUnavailable Kind = "service_unavailable"
)

// all lists every declared kind in a stable order.
var all = []Kind{
	Forbidden,
	Unauthorized,
	ValidationFailed,
	MethodNotAllowed,
	NotFound,
	InternalServerError,
	BadRequest,
	Conflict,
	TooManyRequests,
	ServiceUnavailable,
}

var known = func() map[Kind]struct{} {
	m := make(map[Kind]struct{}, len(all))
	for _, k := range all {
		m[k] = struct{}{}
	}
	return m
}()

// All returns every declared kind. The returned slice is a copy.
func All() []Kind {
	out := make([]Kind, len(all))
	copy(out, all)
	return out
}

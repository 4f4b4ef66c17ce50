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

// Package registry maps API error kinds to transport statuses and
// mandatory headers.
//
// # Kind table
//
// Every declared kind has a fixed default HTTP status, gRPC code and
// message:
//
//	forbidden              403  PERMISSION_DENIED
//	unauthorized           401  UNAUTHENTICATED
//	validation_failed      422  INVALID_ARGUMENT
//	method_not_allowed     405  UNIMPLEMENTED
//	not_found              404  NOT_FOUND
//	internal_server_error  500  INTERNAL
//	bad_request            400  INVALID_ARGUMENT
//	conflict               409  ABORTED
//	too_many_requests      429  RESOURCE_EXHAUSTED
//	service_unavailable    503  UNAVAILABLE
//
// These defaults cannot be overridden.
//
// # Reason rules
//
// Options may refine the status of a kind by reason prefix:
//
//	registry.WithHTTPPrefix(kind.Unauthorized, "auth.token.expired", 419)
//	registry.WithHTTPPrefix(kind.TooManyRequests, "ratelimit.*.burst", 503)
//
// Prefixes are segment-aware and "*" matches one segment. The longest
// matching prefix wins; at equal depth a concrete segment beats "*".
//
// # Snapshots
//
// New returns an immutable snapshot that is safe for concurrent use.
// Default returns the process-wide snapshot with no extra rules, which is
// what apierrors constructors use.
package registry

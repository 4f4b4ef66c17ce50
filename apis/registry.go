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
	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/reason"
	"google.golang.org/grpc/codes"
)

// Registry is an immutable, concurrency-safe table that resolves an error
// kind (and optionally a reason) into transport statuses and headers.
type Registry interface {
	// Descriptor returns the built-in description of k.
	Descriptor(k kind.Kind) (Descriptor, bool)

	// HTTPStatus returns the HTTP status for k. A reason-prefix rule wins
	// over the kind default; unknown kinds resolve to 500.
	HTTPStatus(k kind.Kind, r reason.Reason) int

	// GRPCStatus is the gRPC counterpart of HTTPStatus.
	GRPCStatus(k kind.Kind, r reason.Reason) codes.Code

	// Status resolves both transports with the same rules.
	Status(k kind.Kind, r reason.Reason) Status

	// Headers returns the mandatory headers for k, in order.
	Headers(k kind.Kind) []Header

	// Explain describes which rule produced the statuses for (k, r).
	Explain(k kind.Kind, r reason.Reason) string
}

// Status is a resolved pair of transport statuses.
type Status struct {
	HTTP int        // net/http status code.
	GRPC codes.Code // gRPC status code.
}

// Header is a single response header. Headers travel as ordered slices so
// the response writes them in a deterministic order.
type Header struct {
	Name  string
	Value string
}

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

package registry

import (
	"net/http"

	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/kind"
	"google.golang.org/grpc/codes"
)

// defaults is the fixed kind table. Options can add reason rules and
// headers on top of it but never replace these statuses: clients rely on
// forbidden=403, unauthorized=401, validation_failed=422,
// method_not_allowed=405, not_found=404 and internal_server_error=500.
var defaults = map[kind.Kind]apis.Descriptor{
	// Required kinds.
	kind.Forbidden:           desc(kind.Forbidden, http.StatusForbidden, codes.PermissionDenied),
	kind.Unauthorized:        desc(kind.Unauthorized, http.StatusUnauthorized, codes.Unauthenticated),
	kind.ValidationFailed:    desc(kind.ValidationFailed, http.StatusUnprocessableEntity, codes.InvalidArgument),
	kind.MethodNotAllowed:    desc(kind.MethodNotAllowed, http.StatusMethodNotAllowed, codes.Unimplemented),
	kind.NotFound:            desc(kind.NotFound, http.StatusNotFound, codes.NotFound),
	kind.InternalServerError: desc(kind.InternalServerError, http.StatusInternalServerError, codes.Internal),

	// Additional kinds.
	kind.BadRequest:         desc(kind.BadRequest, http.StatusBadRequest, codes.InvalidArgument),
	kind.Conflict:           desc(kind.Conflict, http.StatusConflict, codes.Aborted),
	kind.TooManyRequests:    desc(kind.TooManyRequests, http.StatusTooManyRequests, codes.ResourceExhausted),
	kind.ServiceUnavailable: desc(kind.ServiceUnavailable, http.StatusServiceUnavailable, codes.Unavailable),
}

// ValidationMessage overrides the plain status text for 422, which reads
// oddly to end users.
const ValidationMessage = "The given data was invalid."

func desc(k kind.Kind, status int, grpc codes.Code) apis.Descriptor {
	msg := http.StatusText(status)
	if k == kind.ValidationFailed {
		msg = ValidationMessage
	}
	return apis.Descriptor{Kind: k, HTTPStatus: status, GRPCCode: grpc, Message: msg}
}

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

import "dirpx.dev/apierrors/fields"

// ErrorView is the client-facing body of a structured error response.
//
// It is the only shape that goes over the wire. It never carries the
// underlying cause of an error: whatever triggered the classification
// (driver errors, stack traces, file paths) stays server-side and only
// reaches the Reporter.
type ErrorView struct {
	// Kind is the error category, e.g. "not_found".
	Kind string `json:"kind"`

	// Status repeats the HTTP status for clients that only see the body.
	Status int `json:"status"`

	// Message is the human-readable description; never empty in a rendered
	// view because the registry supplies a default.
	Message string `json:"message"`

	// Reason is the optional sub-classification.
	Reason string `json:"reason,omitempty"`

	// Correlation ties the response to the reported log entry.
	Correlation string `json:"correlation,omitempty"`

	// Fields is set only for validation failures.
	Fields *fields.Errors `json:"fields,omitempty"`
}

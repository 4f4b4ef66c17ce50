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
	"google.golang.org/grpc/codes"
)

// Descriptor is the registry's entry for one kind.
type Descriptor struct {
	// Kind is the category this entry describes.
	Kind kind.Kind `json:"kind" yaml:"kind"`

	// HTTPStatus is the default HTTP status, in [100,599].
	HTTPStatus int `json:"http_status" yaml:"http_status"`

	// GRPCCode is the default gRPC status code.
	GRPCCode codes.Code `json:"grpc_code" yaml:"grpc_code"`

	// Message is used when an error of this kind has no message of its own.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Headers are attached to every error of this kind.
	Headers []Header `json:"headers,omitempty" yaml:"headers,omitempty"`
}

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

package adapter

import (
	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
)

// ToDescriptor converts a classified error together with its resolved
// transport status into an apis.Descriptor.
//
// The descriptor is intended for structured logging and transport details
// (gRPC ErrorInfo). It carries the kind, the concrete statuses, the display
// message and the response headers. The cause is not part of it.
func ToDescriptor(e *apierrors.Error, st apis.Status) apis.Descriptor {
	if e == nil {
		return apis.Descriptor{}
	}
	return apis.Descriptor{
		Kind:       e.Kind(),
		HTTPStatus: st.HTTP,
		GRPCCode:   st.GRPC,
		Message:    e.Message(),
		Headers:    e.Headers(),
	}
}

// ToView converts a classified error into the client-facing ErrorView.
//
// The message falls back to the registry default for the kind, so a
// rendered view always has one. Field errors are copied only for
// validation failures. The cause never reaches the view.
func ToView(e *apierrors.Error, reg apis.Registry, correlation string) apis.ErrorView {
	if e == nil {
		return apis.ErrorView{}
	}
	v := apis.ErrorView{
		Kind:        e.Kind().String(),
		Status:      e.Status(),
		Message:     e.DisplayMessage(reg),
		Reason:      e.Reason().String(),
		Correlation: correlation,
	}
	if fe := e.Fields(); !fe.Empty() {
		v.Fields = &fe
	}
	return v
}

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
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/kind"
)

type prefixRule struct {
	// prefix is the raw reason prefix; normalized and validated in New.
	prefix string
	// val is an HTTP status or a gRPC code stored as int.
	val int
}

type builder struct {
	httpPrefixes map[kind.Kind][]prefixRule
	grpcPrefixes map[kind.Kind][]prefixRule
	headers      map[kind.Kind][]apis.Header
}

func newBuilder() *builder {
	return &builder{
		httpPrefixes: make(map[kind.Kind][]prefixRule),
		grpcPrefixes: make(map[kind.Kind][]prefixRule),
		headers:      make(map[kind.Kind][]apis.Header),
	}
}

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
	"google.golang.org/grpc/codes"
)

// Option configures a Registry at build time.
type Option func(*builder)

// WithHTTPPrefix maps errors of kind k whose reason starts with prefix to
// the given HTTP status. Longer prefixes win; "*" matches one segment.
func WithHTTPPrefix(k kind.Kind, prefix string, status int) Option {
	return func(b *builder) {
		b.httpPrefixes[k] = append(b.httpPrefixes[k], prefixRule{prefix: prefix, val: status})
	}
}

// WithGRPCPrefix is the gRPC counterpart of WithHTTPPrefix.
func WithGRPCPrefix(k kind.Kind, prefix string, code codes.Code) Option {
	return func(b *builder) {
		b.grpcPrefixes[k] = append(b.grpcPrefixes[k], prefixRule{prefix: prefix, val: int(code)})
	}
}

// WithHeader adds a mandatory header to every error of kind k, e.g. a
// default "WWW-Authenticate: Bearer" challenge for kind.Unauthorized.
// Setting the same name twice keeps the last value.
func WithHeader(k kind.Kind, name, value string) Option {
	return func(b *builder) {
		b.headers[k] = append(b.headers[k], apis.Header{Name: name, Value: value})
	}
}

// WithOptions bundles several options, typically the result of LoadYAML.
func WithOptions(opts ...Option) Option {
	return func(b *builder) {
		for _, o := range opts {
			o(b)
		}
	}
}

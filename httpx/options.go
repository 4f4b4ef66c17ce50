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

package httpx

import (
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/classify"
	"github.com/rs/zerolog"
)

// Option configures a Handler.
type Option func(*Handler)

// WithViews enables pages rendered through v. Without it every response
// is structured JSON.
func WithViews(v apis.ViewResolver) Option {
	return func(h *Handler) { h.renderer.Views = v }
}

// WithNamespace sets the view namespace of the library default pages.
func WithNamespace(ns string) Option {
	return func(h *Handler) { h.renderer.Namespace = ns }
}

// WithRegistry replaces registry.Default() for statuses, headers and
// default messages.
func WithRegistry(reg apis.Registry) Option {
	return func(h *Handler) { h.renderer.Registry = reg }
}

// WithClassifier replaces classify.Default().
func WithClassifier(c *classify.Classifier) Option {
	return func(h *Handler) {
		if c != nil {
			h.classifier = c
		}
	}
}

// WithReporter sets the reporting sink. Reports go nowhere by default.
func WithReporter(r apis.Reporter) Option {
	return func(h *Handler) { h.reporter = r }
}

// WithFlasher sets where validation redirects keep old input and errors.
func WithFlasher(f apis.Flasher) Option {
	return func(h *Handler) { h.flasher = f }
}

// WithDontFlash overrides the input keys never flashed back.
func WithDontFlash(keys ...string) Option {
	return func(h *Handler) { h.renderer.DontFlash = keys }
}

// WithLogger sets the logger for pipeline failures (template errors,
// failed writes). The global zerolog logger is used otherwise.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = &l
		h.renderer.Logger = &l
	}
}

// WithCorrelationHeader sets the request/response header carrying the
// correlation id. DefaultCorrelationHeader otherwise; "" disables it.
func WithCorrelationHeader(name string) Option {
	return func(h *Handler) { h.correlationHeader = name }
}

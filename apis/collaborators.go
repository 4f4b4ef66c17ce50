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
	"context"
	"net/http"
	"net/url"

	"dirpx.dev/apierrors/fields"
)

// ViewResolver is the template engine as seen by the page renderer.
//
// Template ids are dotted paths, optionally namespaced: "errors.404" for an
// application template, "apierrors::errors.404" for a library default.
type ViewResolver interface {
	// Exists reports whether id can be rendered.
	Exists(id string) bool

	// Render renders id with data bound as its context.
	Render(id string, data any) ([]byte, error)
}

// Reporter is the logging/monitoring sink. Report is fire-and-forget: it
// must not block on slow I/O and has no way to influence the response.
type Reporter interface {
	Report(ctx context.Context, err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, err error)

// Report calls f(ctx, err).
func (f ReporterFunc) Report(ctx context.Context, err error) { f(ctx, err) }

// Flasher stores one-shot state for the next page view, so a redirected
// form can be re-rendered with the old input and its field errors.
type Flasher interface {
	Flash(w http.ResponseWriter, r *http.Request, input url.Values, errs fields.Errors) error
}

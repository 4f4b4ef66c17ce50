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

// Package render turns a classified *apierrors.Error into a Response.
//
// Structured renders the JSON error view. Page walks a fallback chain for
// browsers:
//
//  1. a validation failure redirects back with the old input and the field
//     errors;
//  2. the application template errors.<status>;
//  3. the library default <namespace>::errors.<status>;
//  4. the structured JSON response.
//
// A template that exists but fails to render is logged and skipped.
package render

import (
	"encoding/json"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/adapter"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/fields"
	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/negotiate"
	"dirpx.dev/apierrors/registry"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultNamespace is the view namespace holding the library's own pages.
const DefaultNamespace = "apierrors"

// DefaultDontFlash lists input keys never flashed back after a redirect.
var DefaultDontFlash = []string{"current_password", "password", "password_confirmation"}

// Meta is per-request data that is not part of the error.
type Meta struct {
	// Correlation ties the response to the reported log entry.
	Correlation string
}

// PageData is bound as the template context of error pages.
type PageData struct {
	Status      int
	Title       string
	Kind        string
	Message     string
	Reason      string
	Correlation string
	Fields      *fields.Errors
}

// Renderer renders error responses. The zero value renders JSON only, with
// the default registry.
type Renderer struct {
	// Views resolves page templates. Nil disables pages.
	Views apis.ViewResolver

	// Namespace of the library default pages; DefaultNamespace if empty.
	Namespace string

	// Registry resolves statuses, headers and default messages;
	// registry.Default() if nil.
	Registry apis.Registry

	// DontFlash overrides DefaultDontFlash when non-nil.
	DontFlash []string

	// Logger receives template failures; the global zerolog logger if nil.
	Logger *zerolog.Logger
}

// PagesAvailable reports whether the renderer can produce pages at all.
func (rr *Renderer) PagesAvailable() bool { return rr.Views != nil }

// Render renders e in the given mode.
func (rr *Renderer) Render(e *apierrors.Error, r *http.Request, mode negotiate.Mode, meta Meta) *Response {
	if mode == negotiate.Page {
		return rr.Page(e, r, meta)
	}
	return rr.Structured(e, meta)
}

// Structured renders the JSON error view. The cause is never included.
func (rr *Renderer) Structured(e *apierrors.Error, meta Meta) *Response {
	reg := rr.registry()
	e = rr.resolve(e)

	body, err := json.Marshal(adapter.ToView(e, reg, meta.Correlation))
	if err != nil {
		rr.logger().Error().Err(err).Str("kind", e.Kind().String()).Msg("encode error view")
		body = []byte(`{"kind":"` + kind.InternalServerError.String() + `","status":500,"message":"Internal Server Error"}`)
		e = apierrors.InternalServerError("", err)
	}

	h := headers(e)
	h.Set("Content-Type", "application/json")
	return &Response{Status: e.Status(), Header: h, Body: body, err: e}
}

// Page renders e for a browser, following the fallback chain.
func (rr *Renderer) Page(e *apierrors.Error, r *http.Request, meta Meta) *Response {
	e = rr.resolve(e)
	if e.Kind() == kind.ValidationFailed {
		return rr.Redirect(e, r)
	}
	if rr.Views == nil {
		return rr.Structured(e, meta)
	}

	data := rr.pageData(e, meta)
	for _, id := range rr.Candidates(e.Status()) {
		if !rr.Views.Exists(id) {
			continue
		}
		body, err := rr.Views.Render(id, data)
		if err != nil {
			rr.logger().Warn().Err(err).Str("template", id).Int("status", e.Status()).Msg("error page failed to render")
			continue
		}
		h := headers(e)
		h.Set("Content-Type", "text/html; charset=utf-8")
		return &Response{Status: e.Status(), Header: h, Body: body, err: e}
	}
	return rr.Structured(e, meta)
}

// Candidates returns the template ids tried for status, in order.
func (rr *Renderer) Candidates(status int) []string {
	ns := rr.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	s := strconv.Itoa(status)
	return []string{"errors." + s, ns + "::errors." + s}
}

// Redirect answers a failed form submission with a 302 back to the
// referring page (or "/" when the referrer is missing or foreign), carrying
// the submitted input and e's field errors.
func (rr *Renderer) Redirect(e *apierrors.Error, r *http.Request) *Response {
	loc := Back(r)
	h := make(http.Header)
	h.Set("Location", loc)
	return &Response{
		Status: http.StatusFound,
		Header: h,
		Redirect: &Redirect{
			Location: loc,
			Input:    rr.input(r),
			Fields:   e.Fields(),
		},
		err: e,
	}
}

// Back returns the same-origin Referer of r, or "/".
func Back(r *http.Request) string {
	if r == nil {
		return "/"
	}
	ref := r.Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "/"
	}
	switch {
	case u.Host == "" && u.Scheme == "":
		if len(u.Path) == 0 || u.Path[0] != '/' {
			return "/"
		}
		// browsers read "/\host" as "//host"
		if len(ref) > 1 && (ref[1] == '/' || ref[1] == '\\') {
			return "/"
		}
	case u.Scheme != "http" && u.Scheme != "https":
		return "/"
	case u.Host != r.Host:
		return "/"
	}
	return ref
}

func (rr *Renderer) input(r *http.Request) url.Values {
	if r == nil {
		return url.Values{}
	}
	if r.Form == nil {
		_ = r.ParseForm()
	}
	skip := rr.DontFlash
	if skip == nil {
		skip = DefaultDontFlash
	}
	out := make(url.Values, len(r.Form))
	for k, v := range r.Form {
		if slices.Contains(skip, k) {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (rr *Renderer) pageData(e *apierrors.Error, meta Meta) PageData {
	v := adapter.ToView(e, rr.registry(), meta.Correlation)
	return PageData{
		Status:      v.Status,
		Title:       http.StatusText(v.Status),
		Kind:        v.Kind,
		Message:     v.Message,
		Reason:      v.Reason,
		Correlation: v.Correlation,
		Fields:      v.Fields,
	}
}

func (rr *Renderer) resolve(e *apierrors.Error) *apierrors.Error {
	if e == nil {
		e = apierrors.InternalServerError("", nil)
	}
	return e.Resolve(rr.registry())
}

func (rr *Renderer) registry() apis.Registry {
	if rr.Registry != nil {
		return rr.Registry
	}
	return registry.Default()
}

func (rr *Renderer) logger() *zerolog.Logger {
	if rr.Logger != nil {
		return rr.Logger
	}
	return &log.Logger
}

func headers(e *apierrors.Error) http.Header {
	h := make(http.Header)
	for _, hd := range e.Headers() {
		h.Add(hd.Name, hd.Value)
	}
	return h
}

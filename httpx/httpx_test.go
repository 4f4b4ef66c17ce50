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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/classify"
	"dirpx.dev/apierrors/fields"
	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/signal"
	"dirpx.dev/apierrors/view"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sink struct{ errs []error }

func (s *sink) Report(_ context.Context, err error) { s.errs = append(s.errs, err) }

type flashRecorder struct {
	input url.Values
	errs  fields.Errors
}

func (f *flashRecorder) Flash(_ http.ResponseWriter, _ *http.Request, in url.Values, errs fields.Errors) error {
	f.input, f.errs = in, errs
	return nil
}

func jsonBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m), w.Body.String())
	return m
}

func TestServeError_StructuredAndReported(t *testing.T) {
	s := &sink{}
	h := New(WithReporter(s))
	root := errors.New("dial tcp: connection refused")

	r := httptest.NewRequest("GET", "/orders", nil)
	r.Header.Set("Accept", "application/json")
	r.Header.Set("X-Request-ID", "req-42")
	w := httptest.NewRecorder()

	resp := h.ServeError(w, r, fmt.Errorf("load orders: %w", root))
	require.NotNil(t, resp)
	assert.Equal(t, 500, w.Code)
	assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
	assert.NotContains(t, w.Body.String(), "connection refused")
	m := jsonBody(t, w)
	assert.Equal(t, "internal_server_error", m["kind"])
	assert.Equal(t, "req-42", m["correlation"])

	require.Len(t, s.errs, 1)
	assert.ErrorIs(t, s.errs[0], root)
}

func TestServeError_ReportsCauseOfAPIError(t *testing.T) {
	s := &sink{}
	root := errors.New("policy: owner only")
	New(WithReporter(s)).ServeError(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil), apierrors.Forbidden("", root))
	require.Len(t, s.errs, 1)
	assert.Same(t, root, s.errs[0])
}

func TestServeError_NilIsNoop(t *testing.T) {
	w := httptest.NewRecorder()
	assert.Nil(t, New().ServeError(w, httptest.NewRequest("GET", "/", nil), nil))
	assert.Equal(t, 200, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestServeError_GeneratesCorrelation(t *testing.T) {
	w := httptest.NewRecorder()
	New().ServeError(w, httptest.NewRequest("GET", "/", nil), signal.ErrRecordNotFound)
	id := w.Header().Get(DefaultCorrelationHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, jsonBody(t, w)["correlation"])

	w = httptest.NewRecorder()
	New(WithCorrelationHeader("")).ServeError(w, httptest.NewRequest("GET", "/", nil), signal.ErrRecordNotFound)
	assert.NotContains(t, jsonBody(t, w), "correlation")
}

func TestServeError_Pages(t *testing.T) {
	app := fstest.MapFS{"errors/404.html": {Data: []byte(`<h1>{{.Status}} {{.Message}}</h1>`)}}
	h := New(WithViews(view.New(app)))

	browser := func() *http.Request {
		r := httptest.NewRequest("GET", "/x", nil)
		r.Header.Set("Accept", "text/html")
		return r
	}

	w := httptest.NewRecorder()
	h.ServeError(w, browser(), signal.ErrRouteNotFound)
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "<h1>404 Not Found</h1>", w.Body.String())

	w = httptest.NewRecorder()
	h.ServeError(w, browser(), &signal.AuthorizationError{})
	assert.Equal(t, 403, w.Code)
	assert.Contains(t, w.Body.String(), "<span>403</span>Forbidden")

	w = httptest.NewRecorder()
	h.ServeError(w, browser(), apierrors.New(kind.Conflict, "already shipped"))
	assert.Equal(t, 409, w.Code)
	assert.Equal(t, "already shipped", jsonBody(t, w)["message"])

	w = httptest.NewRecorder()
	r := browser()
	r.Header.Set("Accept", "application/json")
	h.ServeError(w, r, signal.ErrRouteNotFound)
	assert.Equal(t, "not_found", jsonBody(t, w)["kind"])
}

func TestServeError_ValidationRedirect(t *testing.T) {
	f := &flashRecorder{}
	h := New(WithViews(view.New(nil)), WithFlasher(f))

	form := url.Values{"email": {"not-an-email"}, "password": {"s3cret"}}
	r := httptest.NewRequest("POST", "http://shop.test/signup", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("Accept", "text/html")
	r.Header.Set("Referer", "http://shop.test/signup")
	w := httptest.NewRecorder()

	h.ServeError(w, r, signal.NewValidationError(fields.Field{Name: "email", Messages: []string{"must be a valid email"}}))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://shop.test/signup", w.Header().Get("Location"))
	assert.Equal(t, url.Values{"email": {"not-an-email"}}, f.input)
	assert.Equal(t, "must be a valid email", f.errs.First("email"))
}

func TestServeError_ValidationJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/signup", nil)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	New(WithViews(view.New(nil))).ServeError(w, r, signal.NewValidationError(
		fields.Field{Name: "email", Messages: []string{"required"}},
		fields.Field{Name: "age", Messages: []string{"must be integer", "must be positive"}},
	))
	assert.Equal(t, 422, w.Code)
	assert.Contains(t, w.Body.String(), `"fields":{"email":["required"],"age":["must be integer","must be positive"]}`)
}

func TestWithClassifier(t *testing.T) {
	errGone := errors.New("gone")
	c := classify.New(classify.Rule{
		Name:  "gone",
		Match: func(err error) bool { return errors.Is(err, errGone) },
		Build: func(err error) *apierrors.Error { return apierrors.New(kind.NotFound, "").WithStatus(http.StatusGone) },
	})
	w := httptest.NewRecorder()
	New(WithClassifier(c)).ServeError(w, httptest.NewRequest("GET", "/", nil), errGone)
	assert.Equal(t, 410, w.Code)
}

func TestWrap(t *testing.T) {
	s := &sink{}
	h := New(WithReporter(s))

	ok := h.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		_, err := w.Write([]byte("fine"))
		return err
	})
	w := httptest.NewRecorder()
	ok.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, "fine", w.Body.String())
	assert.Empty(t, s.errs)

	failing := h.Wrap(func(http.ResponseWriter, *http.Request) error {
		return &signal.AuthenticationError{Challenge: `Bearer realm="api"`}
	})
	w = httptest.NewRecorder()
	failing.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, `Bearer realm="api"`, w.Header().Get("WWW-Authenticate"))

	late := h.Wrap(func(w http.ResponseWriter, r *http.Request) error {
		w.WriteHeader(http.StatusAccepted)
		return errors.New("after the fact")
	})
	w = httptest.NewRecorder()
	late.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Len(t, s.errs, 2)
}

func TestRecover(t *testing.T) {
	s := &sink{}
	h := New(WithReporter(s))
	w := httptest.NewRecorder()
	h.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map write")
	})).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, 500, w.Code)
	assert.Equal(t, "internal_server_error", jsonBody(t, w)["kind"])
	require.Len(t, s.errs, 1)
	assert.Contains(t, s.errs[0].Error(), "panic: nil map write")

	assert.Panics(t, func() {
		h.Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		})).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	})
}

func TestInstall(t *testing.T) {
	router := mux.NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	router.HandleFunc("/orders/{id}", noop).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", noop).Methods(http.MethodPut, http.MethodDelete)
	router.HandleFunc("/carts", noop).Methods(http.MethodPost)

	s := &sink{}
	Install(router, New(WithReporter(s)))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders/7", nil))
	assert.Equal(t, 405, w.Code)
	assert.Equal(t, "GET, PUT, DELETE, HEAD", w.Header().Get("Allow"))
	assert.Equal(t, "method_not_allowed", jsonBody(t, w)["kind"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "not_found", jsonBody(t, w)["kind"])

	require.Len(t, s.errs, 2)
	var mna *signal.MethodNotAllowedError
	assert.ErrorAs(t, s.errs[0], &mna)
	assert.ErrorIs(t, s.errs[1], signal.ErrRouteNotFound)
}

var _ apis.Flasher = (*flashRecorder)(nil)

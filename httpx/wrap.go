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
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// HandlerFunc is an http handler that reports failure by returning an
// error instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap adapts fn to http.Handler: a returned error or a panic goes through
// ServeError. If fn already started the response, the error is only
// reported and logged.
func (h *Handler) Wrap(fn HandlerFunc) http.Handler {
	return h.Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw := &trackingWriter{ResponseWriter: w}
		if err := fn(tw, r); err != nil {
			h.fail(tw, r, err)
		}
	}))
}

// Recover turns panics in next into internal server errors.
// http.ErrAbortHandler is re-panicked.
func (h *Handler) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tw, ok := w.(*trackingWriter)
		if !ok {
			tw = &trackingWriter{ResponseWriter: w}
		}
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			h.fail(tw, r, panicError(rec))
		}()
		next.ServeHTTP(tw, r)
	})
}

func (h *Handler) fail(tw *trackingWriter, r *http.Request, err error) {
	if !tw.wrote {
		h.ServeError(tw, r, err)
		return
	}
	e := h.Report(r, err)
	h.log().Error().Err(err).
		Str("kind", e.Kind().String()).
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Msg("error after response started")
}

// panicError converts a recovered value into an error with a stack.
func panicError(rec any) error {
	if err, ok := rec.(error); ok {
		return pkgerrors.WithStack(fmt.Errorf("panic: %w", err))
	}
	return pkgerrors.Errorf("panic: %v", rec)
}

// trackingWriter records whether the response has started.
type trackingWriter struct {
	http.ResponseWriter
	wrote bool
}

func (w *trackingWriter) WriteHeader(code int) {
	w.wrote = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *trackingWriter) Write(b []byte) (int, error) {
	w.wrote = true
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *trackingWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

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

// Package httpx wires the error pipeline into net/http.
//
// For every error the Handler:
//
//  1. classifies it into an *apierrors.Error;
//  2. reports the original error (unwrapped to its cause) to the sink;
//  3. negotiates structured JSON versus a page;
//  4. renders and writes the response.
//
// Wrap adapts error-returning handlers, Recover turns panics into 500s, and
// Install routes gorilla/mux 404/405 through the same pipeline.
package httpx

import (
	"net/http"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/classify"
	"dirpx.dev/apierrors/negotiate"
	"dirpx.dev/apierrors/render"
	"dirpx.dev/apierrors/report"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultCorrelationHeader carries the correlation id in and out.
const DefaultCorrelationHeader = "X-Request-ID"

// Handler turns errors into HTTP responses. It is safe for concurrent use
// once built.
type Handler struct {
	classifier        *classify.Classifier
	renderer          *render.Renderer
	reporter          apis.Reporter
	flasher           apis.Flasher
	logger            *zerolog.Logger
	correlationHeader string
}

// New builds a Handler. With no options it classifies with the built-in
// rules, answers JSON only and reports nothing.
func New(opts ...Option) *Handler {
	h := &Handler{
		classifier:        classify.Default(),
		renderer:          &render.Renderer{},
		correlationHeader: DefaultCorrelationHeader,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeError answers r with the response for err and returns it. A nil err
// writes nothing and returns nil.
func (h *Handler) ServeError(w http.ResponseWriter, r *http.Request, err error) *render.Response {
	if err == nil {
		return nil
	}
	id := h.correlation(r)
	e := h.report(r, id, err)

	mode := negotiate.Choose(r, h.renderer.PagesAvailable())
	resp := h.renderer.Render(e, r, mode, render.Meta{Correlation: id})

	if h.correlationHeader != "" && id != "" {
		w.Header().Set(h.correlationHeader, id)
	}
	if werr := resp.Write(w, r, h.flasher); werr != nil {
		h.log().Warn().Err(werr).
			Str("kind", resp.Error().Kind().String()).
			Int("status", resp.Status).
			Msg("error response not fully written")
	}
	return resp
}

// Report classifies err and reports it without writing anything.
func (h *Handler) Report(r *http.Request, err error) *apierrors.Error {
	if err == nil {
		return nil
	}
	return h.report(r, h.correlation(r), err)
}

func (h *Handler) report(r *http.Request, id string, err error) *apierrors.Error {
	e := h.classifier.Classify(err)
	ctx := report.WithCorrelation(r.Context(), id)
	report.Hook{Sink: h.reporter}.Report(report.WithError(ctx, e), err)
	return e
}

// correlation returns the caller's correlation id, or a fresh one.
func (h *Handler) correlation(r *http.Request) string {
	if h.correlationHeader == "" {
		return ""
	}
	if id := r.Header.Get(h.correlationHeader); id != "" && len(id) <= 128 {
		return id
	}
	return uuid.NewString()
}

func (h *Handler) log() *zerolog.Logger {
	if h.logger != nil {
		return h.logger
	}
	return &log.Logger
}

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

// Package report forwards errors to a logging or monitoring sink.
//
// Hook is the single reporting entry point of the pipeline: it unwraps a
// classified error to the cause that produced it, so sinks log the
// original failure (driver error, policy error, ...) rather than its HTTP
// projection. The classified error and the correlation id travel in the
// context for sinks that want them.
package report

import (
	"context"
	"errors"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
	"github.com/rs/zerolog/log"
)

type ctxKey int

const (
	errorKey ctxKey = iota
	correlationKey
)

// WithError returns ctx carrying the classified form of the reported error.
func WithError(ctx context.Context, e *apierrors.Error) context.Context {
	return context.WithValue(ctx, errorKey, e)
}

// ErrorFrom returns the classified error stored by WithError, or nil.
func ErrorFrom(ctx context.Context) *apierrors.Error {
	e, _ := ctx.Value(errorKey).(*apierrors.Error)
	return e
}

// WithCorrelation returns ctx carrying the request correlation id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey, id)
}

// CorrelationFrom returns the correlation id stored by WithCorrelation.
func CorrelationFrom(ctx context.Context) string {
	s, _ := ctx.Value(correlationKey).(string)
	return s
}

// Hook unwraps and forwards errors to Sink. A nil Sink discards them.
type Hook struct {
	Sink apis.Reporter
}

// Unwrap returns what gets reported for err: the cause of the first
// *apierrors.Error in the chain when it has one, err itself otherwise.
func Unwrap(err error) error {
	var e *apierrors.Error
	if errors.As(err, &e) && e != nil {
		return e.Report()
	}
	return err
}

// Report forwards err to the sink. It never fails and never panics; a
// panicking sink is logged and ignored.
func (h Hook) Report(ctx context.Context, err error) {
	if err == nil || h.Sink == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	var e *apierrors.Error
	if errors.As(err, &e) && e != nil && ErrorFrom(ctx) == nil {
		ctx = WithError(ctx, e)
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Msg("error reporter panicked")
		}
	}()
	h.Sink.Report(ctx, Unwrap(err))
}

// Multi fans a report out to every sink in order.
func Multi(sinks ...apis.Reporter) apis.Reporter {
	return apis.ReporterFunc(func(ctx context.Context, err error) {
		for _, s := range sinks {
			Hook{Sink: s}.Report(ctx, err)
		}
	})
}

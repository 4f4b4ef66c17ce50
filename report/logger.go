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

package report

import (
	"context"
	"io"
	"sync"

	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/reason"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

type stackTracer interface{ StackTrace() pkgerrors.StackTrace }

var configureOnce sync.Once

// configure makes zerolog render pkg/errors stacks, attaching one to plain
// errors when .Stack() is requested.
func configure() {
	configureOnce.Do(func() {
		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			if _, ok := err.(stackTracer); !ok {
				err = pkgerrors.WithStack(err)
			}
			return zpkgerrors.MarshalStack(err)
		}
	})
}

// NewZerolog returns a JSON logger writing to w, tagged with service.
func NewZerolog(w io.Writer, service string) zerolog.Logger {
	configure()
	return zerolog.New(w).With().
		Str("service", service).
		Timestamp().
		Logger()
}

// Logger is an apis.Reporter writing one zerolog event per reported error.
//
// Server errors (status >= 500, or errors reported without a classified
// form) are logged at error level with a stack trace; client errors at
// warn level without one.
type Logger struct {
	Log zerolog.Logger
}

// NewLogger wraps l as a reporting sink.
func NewLogger(l zerolog.Logger) *Logger {
	configure()
	return &Logger{Log: l}
}

// Report implements apis.Reporter.
func (l *Logger) Report(ctx context.Context, err error) {
	if err == nil {
		return
	}
	e := ErrorFrom(ctx)

	var ev *zerolog.Event
	if e != nil && e.Status() < 500 {
		ev = l.Log.Warn()
	} else {
		ev = l.Log.Error().Stack()
	}
	if e != nil {
		ev = ev.Str("kind", e.Kind().String()).Int("status", e.Status())
		if r := e.Reason(); r != reason.Empty {
			ev = ev.Str("reason", r.String())
		}
	} else {
		ev = ev.Str("kind", kind.InternalServerError.String())
	}
	if id := CorrelationFrom(ctx); id != "" {
		ev = ev.Str("correlation", id)
	}
	ev.Err(err).Msg("request failed")
}

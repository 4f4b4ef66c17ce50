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
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/reason"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	ctx  context.Context
	errs []error
}

func (c *captured) Report(ctx context.Context, err error) {
	c.ctx = ctx
	c.errs = append(c.errs, err)
}

func TestHook_UnwrapsCause(t *testing.T) {
	root := errors.New("pq: deadlock detected")
	bare := apierrors.NotFound("")
	plain := errors.New("plain")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"with cause", apierrors.InternalServerError("", root), root},
		{"wrapped with cause", fmt.Errorf("handler: %w", apierrors.Forbidden("", root)), root},
		{"no cause", bare, bare},
		{"not classified", plain, plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &captured{}
			Hook{Sink: sink}.Report(context.Background(), tt.in)
			require.Len(t, sink.errs, 1)
			assert.Same(t, tt.want, sink.errs[0])
		})
	}
}

func TestHook_ContextCarriesClassifiedError(t *testing.T) {
	sink := &captured{}
	e := apierrors.InternalServerError("", errors.New("x"))
	Hook{Sink: sink}.Report(WithCorrelation(context.Background(), "req-7"), e)
	assert.Same(t, e, ErrorFrom(sink.ctx))
	assert.Equal(t, "req-7", CorrelationFrom(sink.ctx))

	Hook{Sink: sink}.Report(context.Background(), errors.New("y"))
	assert.Nil(t, ErrorFrom(sink.ctx))
}

func TestHook_NilAndPanics(t *testing.T) {
	sink := &captured{}
	Hook{Sink: sink}.Report(context.Background(), nil)
	assert.Empty(t, sink.errs)

	assert.NotPanics(t, func() {
		Hook{}.Report(context.Background(), errors.New("no sink"))
		Hook{Sink: apis.ReporterFunc(func(context.Context, error) { panic("sink down") })}.
			Report(context.Background(), errors.New("x"))
	})
}

func TestMulti(t *testing.T) {
	a, b := &captured{}, &captured{}
	boom := apis.ReporterFunc(func(context.Context, error) { panic("boom") })
	root := errors.New("root")
	Multi(a, boom, b).Report(context.Background(), apierrors.InternalServerError("", root))
	assert.Equal(t, []error{root}, a.errs)
	assert.Equal(t, []error{root}, b.errs)
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m), buf.String())
	return m
}

func TestLogger_ServerErrorHasStack(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewZerolog(&buf, "orders"))
	e := apierrors.InternalServerError("", errors.New("disk full")).WithReason(reason.MustParse("storage.quota"))

	Hook{Sink: l}.Report(WithCorrelation(context.Background(), "c-9"), e)

	m := decode(t, &buf)
	assert.Equal(t, "error", m["level"])
	assert.Equal(t, "orders", m["service"])
	assert.Equal(t, "internal_server_error", m["kind"])
	assert.EqualValues(t, 500, m["status"])
	assert.Equal(t, "storage.quota", m["reason"])
	assert.Equal(t, "c-9", m["correlation"])
	assert.Equal(t, "disk full", m["error"])
	assert.Contains(t, m, "stack")
}

func TestLogger_ClientErrorIsWarn(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewZerolog(&buf, "orders"))
	Hook{Sink: l}.Report(context.Background(), apierrors.Forbidden("", errors.New("owner only")))

	m := decode(t, &buf)
	assert.Equal(t, "warn", m["level"])
	assert.Equal(t, string(kind.Forbidden), m["kind"])
	assert.NotContains(t, m, "stack")
	assert.NotContains(t, m, "correlation")
}

func TestLogger_Unclassified(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(NewZerolog(&buf, "orders")).Report(context.Background(), errors.New("raw"))
	m := decode(t, &buf)
	assert.Equal(t, "error", m["level"])
	assert.Equal(t, "internal_server_error", m["kind"])
}

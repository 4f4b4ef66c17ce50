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

package classify

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/fields"
	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/signal"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Nil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassify_BuiltinRules(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		kind      kind.Kind
		status    int
		keepCause bool
	}{
		{"authorization", &signal.AuthorizationError{Action: "delete"}, kind.Forbidden, 403, true},
		{"authentication", &signal.AuthenticationError{}, kind.Unauthorized, 401, true},
		{"method", &signal.MethodNotAllowedError{Method: "DELETE"}, kind.MethodNotAllowed, 405, true},
		{"record", signal.ErrRecordNotFound, kind.NotFound, 404, false},
		{"sql", sql.ErrNoRows, kind.NotFound, 404, false},
		{"pgx", pgx.ErrNoRows, kind.NotFound, 404, false},
		{"route", signal.ErrRouteNotFound, kind.NotFound, 404, false},
		{"wrapped record", fmt.Errorf("orders.find: %w", signal.ErrRecordNotFound), kind.NotFound, 404, false},
		{"other", errors.New("pq: connection refused"), kind.InternalServerError, 500, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Classify(tt.err)
			require.NotNil(t, e)
			assert.Equal(t, tt.kind, e.Kind())
			assert.Equal(t, tt.status, e.Status())
			if tt.keepCause {
				assert.Same(t, tt.err, e.Cause())
			} else {
				assert.Nil(t, e.Cause())
			}
		})
	}
}

func TestClassify_Validation(t *testing.T) {
	err := signal.NewValidationError(
		fields.Field{Name: "email", Messages: []string{"required"}},
		fields.Field{Name: "age", Messages: []string{"must be integer", "must be positive"}},
	)

	e := Classify(fmt.Errorf("signup: %w", err))
	require.NotNil(t, e)
	assert.Equal(t, kind.ValidationFailed, e.Kind())
	assert.Equal(t, 422, e.Status())
	assert.Nil(t, e.Cause())
	assert.Equal(t, []string{"email", "age"}, e.Fields().Names())
	assert.Equal(t, []string{"must be integer", "must be positive"}, e.Fields().Get("age"))

	b, jerr := e.Fields().MarshalJSON()
	require.NoError(t, jerr)
	assert.Equal(t, `{"email":["required"],"age":["must be integer","must be positive"]}`, string(b))
}

func TestClassify_EmptyValidationIsInternal(t *testing.T) {
	err := &signal.ValidationError{}
	e := Classify(err)
	assert.Equal(t, kind.InternalServerError, e.Kind())
	assert.Same(t, error(err), e.Cause())
}

func TestClassify_MessagelessFieldsAreInternal(t *testing.T) {
	err := signal.NewValidationError(fields.Field{Name: "email"})
	e := Classify(err)
	assert.Equal(t, kind.InternalServerError, e.Kind())
	assert.Equal(t, "validation failed", err.Error())
}

func TestClassify_Headers(t *testing.T) {
	u := Classify(&signal.AuthenticationError{Challenge: `Bearer realm="api"`})
	assert.Equal(t, `Bearer realm="api"`, u.Header("WWW-Authenticate"))

	m := Classify(&signal.MethodNotAllowedError{Method: "DELETE", Allowed: []string{"GET", "HEAD"}})
	assert.Equal(t, "GET, HEAD", m.Header("Allow"))
}

func TestClassify_Passthrough(t *testing.T) {
	orig := apierrors.New(kind.Conflict, "order already shipped")
	assert.Same(t, orig, Classify(orig))
	assert.Same(t, orig, Classify(fmt.Errorf("ship: %w", orig)))
}

func TestClassify_Idempotent(t *testing.T) {
	inputs := []error{
		&signal.AuthorizationError{},
		signal.ErrRecordNotFound,
		signal.NewValidationError(fields.Field{Name: "name", Messages: []string{"too long"}}),
		errors.New("boom"),
	}
	for _, in := range inputs {
		once := Classify(in)
		twice := Classify(once)
		assert.Same(t, once, twice, "input %v", in)
	}
}

var errQuota = errors.New("quota exceeded")

func TestNew_ExtraRulesRunBeforeCatchAll(t *testing.T) {
	c := New(
		Rule{
			Name:  "explodes",
			Match: func(error) bool { panic("bad rule") },
			Build: func(error) *apierrors.Error { return nil },
		},
		Rule{
			Name:  "nil build",
			Match: func(err error) bool { return errors.Is(err, errQuota) },
			Build: func(error) *apierrors.Error { return nil },
		},
		Rule{
			Name:  "quota",
			Match: func(err error) bool { return errors.Is(err, errQuota) },
			Build: func(err error) *apierrors.Error {
				return apierrors.New(kind.TooManyRequests, "", apierrors.WithCause(err))
			},
		},
		Rule{Name: "incomplete"},
	)

	assert.Equal(t,
		[]string{"passthrough", "forbidden", "unauthorized", "validation_failed", "method_not_allowed", "not_found", "explodes", "nil build", "quota", "internal"},
		c.Rules())

	e := c.Classify(fmt.Errorf("upload: %w", errQuota))
	assert.Equal(t, kind.TooManyRequests, e.Kind())
	assert.Equal(t, 429, e.Status())

	// built-ins still win
	assert.Equal(t, kind.NotFound, c.Classify(sql.ErrNoRows).Kind())
	// a panicking rule never escapes
	assert.Equal(t, kind.InternalServerError, c.Classify(errors.New("x")).Kind())
}

func TestClassify_Total(t *testing.T) {
	var nilAuth *signal.AuthenticationError
	for _, in := range []error{nilAuth, errors.New(""), fmt.Errorf("%w", errors.New("x"))} {
		assert.NotPanics(t, func() {
			assert.NotNil(t, Classify(in))
		})
	}
}

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

package fields

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_KeepsFirstSeenOrder(t *testing.T) {
	var e Errors
	e.Add("email", "required")
	e.Add("age", "must be integer")
	e.Add("email", "must be an email")
	e.Add("age", "must be positive")
	e.Add("ignored")

	assert.Equal(t, []string{"email", "age"}, e.Names())
	assert.Equal(t, []string{"required", "must be an email"}, e.Get("email"))
	assert.Equal(t, "must be integer", e.First("age"))
	assert.False(t, e.Has("ignored"))
	assert.Equal(t, 2, e.Len())
}

func TestZeroValue(t *testing.T) {
	var e Errors
	assert.True(t, e.Empty())
	assert.Nil(t, e.Names())
	assert.Nil(t, e.Get("x"))
	assert.Nil(t, e.Map())
	assert.Equal(t, "", e.First("x"))

	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(b))
}

func TestMarshalJSON_PreservesOrder(t *testing.T) {
	e := New(
		Field{Name: "zeta", Messages: []string{"z"}},
		Field{Name: "alpha", Messages: []string{"a1", "a2"}},
	)
	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":["z"],"alpha":["a1","a2"]}`, string(b))
}

func TestUnmarshalJSON_PreservesOrder(t *testing.T) {
	var e Errors
	require.NoError(t, json.Unmarshal([]byte(`{"zeta":["z"],"alpha":["a1","a2"]}`), &e))
	assert.Equal(t, []string{"zeta", "alpha"}, e.Names())
	assert.Equal(t, []string{"a1", "a2"}, e.Get("alpha"))
}

func TestEmptyMessagesAreSkipped(t *testing.T) {
	e := New(Field{Name: "email"}, Field{Name: "name", Messages: []string{}})
	assert.True(t, e.Empty())
	assert.False(t, e.Has("email"))

	var got Errors
	require.NoError(t, json.Unmarshal([]byte(`{"email":[],"nick":null,"age":["too young"]}`), &got))
	assert.Equal(t, []string{"age"}, got.Names())

	require.NoError(t, json.Unmarshal([]byte(`{"email":[]}`), &got))
	assert.True(t, got.Empty())
}

func TestUnmarshalJSON_Rejects(t *testing.T) {
	var e Errors
	err := json.Unmarshal([]byte(`{"a":["x"],"a":["y"]}`), &e)
	assert.True(t, errors.Is(err, ErrDuplicateField), "got %v", err)

	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &e))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &e))
}

func TestClone_IsDeep(t *testing.T) {
	e := New(Field{Name: "email", Messages: []string{"required"}})
	c := e.Clone()
	c.Add("email", "extra")
	c.Add("name", "required")

	assert.Equal(t, []string{"required"}, e.Get("email"))
	assert.Equal(t, 1, e.Len())
	assert.False(t, e.Equal(c))
}

func TestEqual_OrderMatters(t *testing.T) {
	a := New(Field{"x", []string{"1"}}, Field{"y", []string{"2"}})
	b := New(Field{"y", []string{"2"}}, Field{"x", []string{"1"}})
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a.Clone()))
}

func TestGet_ReturnsCopy(t *testing.T) {
	e := New(Field{"email", []string{"required"}})
	got := e.Get("email")
	got[0] = "mutated"
	assert.Equal(t, "required", e.First("email"))
}

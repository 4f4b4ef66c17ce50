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

package view

import (
	"html/template"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type page struct {
	Status      int
	Title       string
	Message     string
	Correlation string
}

func TestPath(t *testing.T) {
	tests := []struct {
		id, ns, file string
		ok           bool
	}{
		{"errors.404", "", "errors/404.html", true},
		{"apierrors::errors.500", "apierrors", "errors/500.html", true},
		{"shop::orders.errors.403", "shop", "orders/errors/403.html", true},
		{"", "", "", false},
		{"::errors.404", "", "", false},
		{"errors..404", "", "", false},
		{"errors/404", "", "", false},
		{"apierrors::", "", "", false},
	}
	for _, tt := range tests {
		ns, file, err := Path(tt.id)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrInvalidID, tt.id)
			continue
		}
		require.NoError(t, err, tt.id)
		assert.Equal(t, tt.ns, ns)
		assert.Equal(t, tt.file, file)
	}
}

func TestEngine_AppTemplates(t *testing.T) {
	app := fstest.MapFS{
		"errors/404.html":     {Data: []byte(`{{define "message"}}Nothing at {{.Message}}{{end}}{{template "layout" .}}`)},
		"errors/418.html":     {Data: []byte(`{{.Status}} {{upper .Title}}`)},
		"errors/broken.html":  {Data: []byte(`{{.Missing.Field}}`)},
		"layouts/app.html":    {Data: []byte(`{{define "layout"}}<main>{{block "message" .}}{{end}}</main>{{end}}`)},
		"errors/partial.html": {Data: []byte(`{{template "nope" .}}`)},
	}
	e := New(app, WithFuncs(template.FuncMap{"upper": strings.ToUpper}))

	assert.True(t, e.Exists("errors.404"))
	assert.False(t, e.Exists("errors.500"))
	assert.False(t, e.Exists("errors"))

	out, err := e.Render("errors.404", page{Status: 404, Message: "/orders/9"})
	require.NoError(t, err)
	assert.Equal(t, "<main>Nothing at /orders/9</main>", string(out))

	out, err = e.Render("errors.418", page{Status: 418, Title: "teapot"})
	require.NoError(t, err)
	assert.Equal(t, "418 TEAPOT", string(out))

	_, err = e.Render("errors.500", page{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.Render("errors.broken", page{})
	assert.Error(t, err)

	_, err = e.Render("errors.partial", page{})
	assert.Error(t, err)
}

func TestEngine_PageOverridesLayoutBlock(t *testing.T) {
	app := fstest.MapFS{
		"errors/404.html":  {Data: []byte(`{{define "message"}}custom message{{end}}{{template "layout" .}}`)},
		"errors/500.html":  {Data: []byte(`{{template "layout" .}}`)},
		"layouts/app.html": {Data: []byte(`{{define "layout"}}<main>{{block "message" .}}{{.Message}}{{end}}</main>{{end}}`)},
	}
	e := New(app)

	out, err := e.Render("errors.404", page{Message: "default"})
	require.NoError(t, err)
	assert.Equal(t, "<main>custom message</main>", string(out))

	out, err = e.Render("errors.500", page{Message: "default"})
	require.NoError(t, err)
	assert.Equal(t, "<main>default</main>", string(out))
}

func TestEngine_DefaultsMessageOverride(t *testing.T) {
	e := New(nil, WithNamespace(Namespace, fstest.MapFS{
		"layouts/minimal.html": {Data: mustRead(t, "templates/layouts/minimal.html")},
		"errors/404.html":      {Data: []byte(`{{define "message"}}Lost at sea{{end}}{{template "layout" .}}`)},
	}))
	out, err := e.Render("apierrors::errors.404", page{Status: 404, Title: "Not Found", Message: "Not Found"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<span>404</span>Lost at sea")
}

func mustRead(t *testing.T, name string) []byte {
	t.Helper()
	b, err := embedded.ReadFile(name)
	require.NoError(t, err)
	return b
}

func TestEngine_Defaults(t *testing.T) {
	e := New(nil)
	for _, s := range []string{"401", "403", "404", "405", "429", "500", "503"} {
		assert.True(t, e.Exists(Namespace+"::errors."+s), s)
	}
	assert.False(t, e.Exists("errors.404"), "nil root has no app templates")
	assert.False(t, e.Exists("other::errors.404"))

	out, err := e.Render("apierrors::errors.404", page{Status: 404, Title: "Not Found", Message: "<Not Found>", Correlation: "abc"})
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "<title>Not Found</title>")
	assert.Contains(t, s, "<span>404</span>&lt;Not Found&gt;")
	assert.Contains(t, s, "Reference: abc")
}

func TestEngine_NamespaceOverride(t *testing.T) {
	e := New(nil, WithNamespace(Namespace, fstest.MapFS{
		"errors/404.html": {Data: []byte(`custom {{.Status}}`)},
	}))
	out, err := e.Render("apierrors::errors.404", page{Status: 404})
	require.NoError(t, err)
	assert.Equal(t, "custom 404", string(out))
	assert.False(t, e.Exists("apierrors::errors.500"))
}

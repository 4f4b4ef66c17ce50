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

// Package view resolves dotted template ids to html/template files.
//
// An id is a dotted path with an optional namespace:
//
//	errors.404             -> errors/404.html in the application FS
//	apierrors::errors.404  -> errors/404.html in the "apierrors" namespace FS
//
// Files under layouts/ in the same FS are parsed ahead of every template,
// so pages can share a {{template "layout" .}} definition and override the
// layout's {{block}} defaults. Parsed templates are cached per id.
package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"
)

// Namespace is the namespace under which the embedded default pages are
// registered.
const Namespace = "apierrors"

const (
	sep       = "::"
	ext       = ".html"
	layoutDir = "layouts/*" + ext
)

var (
	// ErrInvalidID is returned for ids that do not map to a file path.
	ErrInvalidID = errors.New("view: invalid template id")

	// ErrNotFound is returned when the id's file or namespace is missing.
	ErrNotFound = errors.New("view: template not found")
)

//go:embed templates
var embedded embed.FS

// Defaults returns the embedded default error pages (errors/401.html,
// errors/403.html, ...).
func Defaults() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Engine implements apis.ViewResolver over fs.FS trees.
type Engine struct {
	root  fs.FS
	ns    map[string]fs.FS
	funcs template.FuncMap

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// Option configures an Engine.
type Option func(*Engine)

// WithNamespace registers fsys under name, replacing any previous tree.
func WithNamespace(name string, fsys fs.FS) Option {
	return func(e *Engine) { e.ns[name] = fsys }
}

// WithFuncs adds template functions.
func WithFuncs(fm template.FuncMap) Option {
	return func(e *Engine) {
		for k, v := range fm {
			e.funcs[k] = v
		}
	}
}

// New returns an Engine reading un-namespaced ids from root (which may be
// nil) and "apierrors::" ids from the embedded defaults.
func New(root fs.FS, opts ...Option) *Engine {
	e := &Engine{
		root:  root,
		ns:    map[string]fs.FS{Namespace: Defaults()},
		funcs: template.FuncMap{},
		cache: map[string]*template.Template{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Path splits id into its namespace and the file path it refers to.
func Path(id string) (namespace, file string, err error) {
	name := id
	if i := strings.Index(id, sep); i >= 0 {
		namespace, name = id[:i], id[i+len(sep):]
		if namespace == "" {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return "", "", fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	file = strings.ReplaceAll(name, ".", "/") + ext
	if !fs.ValidPath(file) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return namespace, file, nil
}

// Exists reports whether id names an existing template file.
func (e *Engine) Exists(id string) bool {
	fsys, file, err := e.lookup(id)
	if err != nil {
		return false
	}
	st, err := fs.Stat(fsys, file)
	return err == nil && !st.IsDir()
}

// Render executes id with data.
func (e *Engine) Render(id string, data any) ([]byte, error) {
	t, err := e.template(id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("view: render %q: %w", id, err)
	}
	return buf.Bytes(), nil
}

func (e *Engine) lookup(id string) (fs.FS, string, error) {
	ns, file, err := Path(id)
	if err != nil {
		return nil, "", err
	}
	fsys := e.root
	if ns != "" {
		fsys = e.ns[ns]
	}
	if fsys == nil {
		return nil, "", fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return fsys, file, nil
}

func (e *Engine) template(id string) (*template.Template, error) {
	e.mu.RLock()
	t, ok := e.cache[id]
	e.mu.RUnlock()
	if ok {
		return t, nil
	}

	fsys, file, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	if _, err := fs.Stat(fsys, file); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	// layouts go first so the page's own defines override their blocks
	var patterns []string
	if layouts, _ := fs.Glob(fsys, layoutDir); len(layouts) > 0 {
		patterns = append(patterns, layoutDir)
	}
	patterns = append(patterns, file)
	base := file[strings.LastIndex(file, "/")+1:]
	t, err = template.New(base).Funcs(e.funcs).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("view: parse %q: %w", id, err)
	}

	e.mu.Lock()
	e.cache[id] = t
	e.mu.Unlock()
	return t, nil
}

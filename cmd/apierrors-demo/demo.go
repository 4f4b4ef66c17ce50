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

package main

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/fields"
	"dirpx.dev/apierrors/flash"
	"dirpx.dev/apierrors/kind"
	"dirpx.dev/apierrors/reason"
	"dirpx.dev/apierrors/signal"
	"github.com/gorilla/mux"
)

type order struct {
	ID      string `json:"id"`
	Shipped bool   `json:"shipped"`
}

// demo holds the handlers of the demo routes.
type demo struct {
	flash *flash.Sessions

	mu     sync.Mutex
	orders map[string]*order
}

func (d *demo) find(id string) (*order, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.orders == nil {
		d.orders = map[string]*order{"42": {ID: "42"}, "7": {ID: "7", Shipped: true}}
	}
	o, ok := d.orders[id]
	if !ok {
		return nil, fmt.Errorf("orders: find %s: %w", id, signal.ErrRecordNotFound)
	}
	cp := *o
	return &cp, nil
}

func (d *demo) getOrder(w http.ResponseWriter, r *http.Request) error {
	o, err := d.find(mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, o)
}

func (d *demo) shipOrder(w http.ResponseWriter, r *http.Request) error {
	o, err := d.find(mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	if o.Shipped {
		return apierrors.New(kind.Conflict, "order already shipped",
			apierrors.WithReason(reason.MustParse("orders.state.shipped")))
	}
	d.mu.Lock()
	d.orders[o.ID].Shipped = true
	d.mu.Unlock()
	o.Shipped = true
	return writeJSON(w, http.StatusOK, o)
}

var signupPage = template.Must(template.New("signup").Parse(`<!DOCTYPE html>
<form method="post" action="/signup">
<input name="email" value="{{.Old.Value "email"}}">{{with .Old.Errors.First "email"}}<p>{{.}}</p>{{end}}
<input name="age" value="{{.Old.Value "age"}}">{{with .Old.Errors.First "age"}}<p>{{.}}</p>{{end}}
<button>Sign up</button>
</form>
`))

func (d *demo) signupForm(w http.ResponseWriter, r *http.Request) error {
	var data struct{ Old flash.Old }
	if d.flash != nil {
		old, _, err := d.flash.Take(w, r)
		if err != nil {
			return err
		}
		data.Old = old
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return signupPage.Execute(w, data)
}

func (d *demo) signup(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return apierrors.New(kind.BadRequest, "malformed form", apierrors.WithCause(err))
	}
	var fe fields.Errors
	email := strings.TrimSpace(r.PostForm.Get("email"))
	switch {
	case email == "":
		fe.Add("email", "The email field is required.")
	case !strings.Contains(email, "@"):
		fe.Add("email", "The email must be a valid email address.")
	}
	if age := r.PostForm.Get("age"); age != "" {
		n, err := strconv.Atoi(age)
		if err != nil {
			fe.Add("age", "The age must be an integer.")
		} else if n <= 0 {
			fe.Add("age", "The age must be positive.")
		}
	}
	if !fe.Empty() {
		return &signal.ValidationError{Fields: fe}
	}
	return writeJSON(w, http.StatusCreated, map[string]string{"email": email})
}

func (d *demo) admin(http.ResponseWriter, *http.Request) error {
	return &signal.AuthorizationError{Action: "view", Resource: "admin"}
}

func (d *demo) me(http.ResponseWriter, *http.Request) error {
	return &signal.AuthenticationError{Challenge: `Bearer realm="demo"`, Guards: []string{"token"}}
}

func (d *demo) boom(http.ResponseWriter, *http.Request) {
	var m map[string]int
	m["boom"]++
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

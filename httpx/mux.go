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
	"net/http"
	"slices"

	"dirpx.dev/apierrors/signal"
	"github.com/gorilla/mux"
)

// Install routes router's unmatched requests through h: no matching route
// becomes signal.ErrRouteNotFound, a path matched under another method
// becomes a signal.MethodNotAllowedError listing the allowed methods.
func Install(router *mux.Router, h *Handler) {
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeError(w, r, signal.ErrRouteNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeError(w, r, &signal.MethodNotAllowedError{
			Method:  r.Method,
			Allowed: AllowedMethods(router, r),
		})
	})
}

// AllowedMethods returns, in route order, the methods under which some
// route of router would match r. GET implies HEAD.
func AllowedMethods(router *mux.Router, r *http.Request) []string {
	var allowed []string
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		methods, err := route.GetMethods()
		if err != nil {
			return nil
		}
		for _, m := range methods {
			if slices.Contains(allowed, m) {
				continue
			}
			probe := r.Clone(r.Context())
			probe.Method = m
			var match mux.RouteMatch
			if route.Match(probe, &match) {
				allowed = append(allowed, m)
			}
		}
		return nil
	})
	if slices.Contains(allowed, http.MethodGet) && !slices.Contains(allowed, http.MethodHead) {
		allowed = append(allowed, http.MethodHead)
	}
	return allowed
}

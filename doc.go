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

// Package apierrors translates errors raised while serving a request into
// responses suited to the caller.
//
// The root package defines Error, the classified, immutable value that the
// rest of the module passes around. The pipeline around it is split into
// small packages:
//
//   - kind, registry: the closed set of categories and their statuses;
//   - classify: any error -> *Error;
//   - negotiate: JSON or page output for a request;
//   - render: structured body, template fallback chain, validation redirect;
//   - report: the logging hook;
//   - httpx, grpcx: transport glue.
//
// A typical HTTP setup:
//
//	h := httpx.New(httpx.WithViews(views), httpx.WithReporter(report.NewLogger(log)))
//	router.Handle("/orders", h.Wrap(createOrder)).Methods(http.MethodPost)
//	httpx.Install(router, h)
package apierrors

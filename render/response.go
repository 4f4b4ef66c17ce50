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

package render

import (
	"net/http"
	"net/url"

	"dirpx.dev/apierrors"
	"dirpx.dev/apierrors/apis"
	"dirpx.dev/apierrors/fields"
)

// Redirect describes a redirect-with-errors answer to a failed form
// submission.
type Redirect struct {
	// Location is the redirect target.
	Location string
	// Input is the submitted form data to flash back.
	Input url.Values
	// Fields are the validation messages to flash back.
	Fields fields.Errors
}

// Response is a fully rendered error response, ready to be written.
type Response struct {
	Status   int
	Header   http.Header
	Body     []byte
	Redirect *Redirect

	err *apierrors.Error
}

// Error returns the resolved error the response was rendered from.
func (r *Response) Error() *apierrors.Error { return r.err }

// IsRedirect reports whether the response is a redirect-with-errors.
func (r *Response) IsRedirect() bool { return r.Redirect != nil }

// Write sends the response. For redirects, the old input and field errors
// are handed to f first (when f is non-nil); a flash failure is returned
// after the redirect has still been written.
func (r *Response) Write(w http.ResponseWriter, req *http.Request, f apis.Flasher) error {
	var ferr error
	if r.Redirect != nil && f != nil {
		ferr = f.Flash(w, req, r.Redirect.Input, r.Redirect.Fields)
	}

	h := w.Header()
	for name, values := range r.Header {
		h[name] = append([]string(nil), values...)
	}
	w.WriteHeader(r.Status)
	if len(r.Body) > 0 && (req == nil || req.Method != http.MethodHead) {
		if _, err := w.Write(r.Body); err != nil && ferr == nil {
			return err
		}
	}
	return ferr
}

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

// Package kind declares the closed set of API error categories.
//
// A kind is the top-level, machine-readable classification of an API error,
// such as "not_found" or "validation_failed". Kinds are:
//
//   - short and stable;
//   - lowercased and underscore-separated;
//   - a closed set: Parse rejects anything not declared in kinds.go.
//
// The mapping from a kind to its HTTP status, gRPC code and default headers
// lives in package registry, not here.
package kind

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

// Package reason defines an optional refinement of an API error kind.
//
// A kind answers "what category is this?" (forbidden, not_found, ...). A
// reason answers "which subcase?", for example:
//
//   - "auth.token.expired"
//   - "auth.policy.owner_only"
//   - "ratelimit.login"
//
// Registries can key status rules on reason prefixes, so a reason should be
// stable and hierarchical. The zero value means "no refinement".
package reason

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

// Package apis defines the contracts shared by the apierrors packages and
// the collaborators they talk to.
//
// It holds interfaces and small view types only: the registry contract,
// transport statuses, the client-facing error view, and the three external
// collaborators the rendering pipeline depends on (view resolver, reporter,
// flasher). Concrete implementations live in registry, view, report and
// flash; callers and tests can substitute their own.
//
// This package must stay dependency-light so that any of the others can
// import it.
package apis

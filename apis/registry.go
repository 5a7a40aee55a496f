/*
   Copyright 2025 The DIRPX Authors.

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

package apis

// Registry is the closed handler table of a visitor or factory.
// Keep it minimal so implementations can be lock-free on the read path.
type Registry interface {
	// Register adds h under h.Key.
	// Registering the same key twice, or registering after Seal, is an error.
	Register(h Handler) error
	// Lookup returns the handler registered for exactly k.
	Lookup(k Key) (Handler, bool)
	// Entries returns a snapshot of the handlers in registration order.
	Entries() []Handler
	// Count returns the number of registered handlers.
	Count() int
	// Seal closes the table. Later calls to Register fail.
	Seal()
	// Sealed reports whether Seal has been called.
	Sealed() bool
}

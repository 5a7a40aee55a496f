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

// Config carries read-only dispatch knobs that influence resolution and result
// conversion. It is passed by value and should be treated as immutable by
// implementations.
type Config struct {
	// Rethrow controls what happens when dispatch resolution fails.
	// If true, the failure is returned to the caller as an error; otherwise
	// the visitor's fallback chain is invoked and the call returns normally.
	Rethrow bool

	// UnwrapPointers lets a non-nil *T be dispatched to a handler registered
	// for T when no exact handler exists.
	UnwrapPointers bool

	// MaxUnwrap limits pointer unwrapping depth.
	// Acts as a safety guard against pathological nesting.
	MaxUnwrap int

	// MatchAssignable lets a handler match when the runtime types are merely
	// assignable to its declared types (e.g. a concrete type to an interface
	// it implements), and lets a nil argument match any nillable declared type.
	MatchAssignable bool

	// ConvertNumeric allows a factory result of one numeric kind to be
	// converted to a requested result of another numeric kind (e.g. int -> int64).
	// Without it, results must be assignable to the requested type.
	ConvertNumeric bool
}

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

// Package vfx attaches "visit" behavior to values without modifying their
// types, choosing the behavior at call time from the runtime type of the
// value (and of any extra arguments).
//
// vfx is the Go rendition of the polymorphic extension visitor: a caller
// wraps a value as Visitable, hands it to a Visitor (side effects) or a
// Factory (produces a result), and the dispatch engine finds the handler
// registered for the exact runtime types involved. When nothing matches the
// caller decides, per dispatcher, whether that is a hard failure or a soft,
// overridable degradation.
//
// # Design
//
// A dispatcher (Visitor or Factory) is assembled once and never changes.
// It holds:
//
//   - Registry: a closed table mapping apis.Key, the tuple
//     (visited type, parameter types...), to a handler. The table is built
//     from the handler options given to NewVisitor/NewFactory and sealed
//     before the dispatcher is returned.
//
//   - Resolver: an ordered chain of strategies answering "which handler
//     applies to this call?":
//     1. Exact: the runtime types equal a registered key.
//     2. Unwrap (opt-in, Config.UnwrapPointers): a non-nil *T is handed to a
//     handler for T.
//     3. Assignable (opt-in, Config.MatchAssignable): runtime types that are
//     assignable to a handler's declared types (interfaces, nil arguments).
//     The most specific candidate wins; ties do not resolve.
//
//   - Config: the rethrow policy plus the knobs above (apis.Config).
//
//   - Fallback hooks: one optional slot per arity. An unset slot drops its
//     last parameter and delegates to the slot below; the zero-arity slot
//     does nothing by default (Visitor) or produces the zero value
//     (Factory).
//
// Registry and Resolver are produced by an apis.Builder, so alternative
// resolution policies can be plugged in with WithBuilder or SetBuilder.
//
// # Dispatch
//
//	v := vfx.MustVisitor(
//	    vfx.On(func(n int) error { fmt.Println("int", n); return nil }),
//	    vfx.On1(func(n int, prefix string) error { fmt.Println(prefix, n); return nil }),
//	    vfx.Fallback(func(v any, err error) { log.Printf("skipped %v: %v", v, err) }),
//	)
//
//	_ = vfx.Accept(vfx.AsVisitable[any](3), v)        // "int 3"
//	_ = vfx.Accept1(vfx.AsVisitable[any](3), v, "n=") // "n= 3"
//	_ = vfx.Accept(vfx.AsVisitable[any](3.14), v)     // fallback, returns nil
//
// Factories work the same way but produce values. The result type is chosen
// by the caller and the handler's result is converted to it:
//
//	f := vfx.MustFactory(
//	    vfx.Make(func(n int) (string, error) { return strconv.Itoa(n), nil }),
//	)
//	s, err := vfx.Produce[string](vfx.AsVisitable(5), f) // "5", nil
//
// # Failure policy
//
// Two failures are subject to the policy: NoMatchingHandler (no handler for
// the runtime types) and, for factories, ResultTypeMismatch (the handler's
// result cannot be converted to the requested type). With Rethrow(true) they
// are returned as *DispatchError; otherwise the fallback chain runs and the
// call succeeds. Errors returned by handlers are never intercepted.
//
// # Concurrency model
//
// Dispatchers hold no mutable state of their own and may be shared between
// goroutines; handler and fallback bodies are responsible for their own
// synchronization. The process-wide defaults (SetConfig, SetBuilder,
// SetLogger) live in an atomically published snapshot: reads are lock-free and
// writers are serialized. Changing the defaults affects dispatchers built
// afterwards only.
package vfx

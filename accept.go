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

package vfx

// Accept dispatches v to the visitor handler registered for its runtime type.
//
// If no handler matches, a visitor built with Rethrow(true) returns a
// *DispatchError (errors.Is ErrNoMatchingHandler); otherwise the visitor's
// Fallback runs once and Accept returns nil. Errors returned by the handler
// itself are passed through unchanged whatever the rethrow policy.
func Accept[T any](v Visitable[T], vis *Visitor) error {
	return vis.dispatch(erase(v), nil)
}

// Accept1 is Accept with one extra parameter. The handler must be registered
// for the runtime types of the value and of p1; on failure Fallback1 runs.
func Accept1[T any](v Visitable[T], vis *Visitor, p1 any) error {
	return vis.dispatch(erase(v), []any{p1})
}

// Accept2 is Accept with two extra parameters; on failure Fallback2 runs.
func Accept2[T any](v Visitable[T], vis *Visitor, p1, p2 any) error {
	return vis.dispatch(erase(v), []any{p1, p2})
}

// Produce dispatches v to the factory handler registered for its runtime type
// and returns the handler's result as R.
//
// Failure to find a handler (NoMatchingHandler) and a result that cannot be
// converted to R (ResultTypeMismatch) follow the factory's rethrow policy:
// with Rethrow(true) Produce returns the zero R and a *DispatchError;
// otherwise it returns the CreateFallback value converted to R and a nil
// error. Handler errors are returned unchanged with the zero R.
func Produce[R, T any](v Visitable[T], f *Factory) (R, error) {
	return produce[R](f, erase(v), nil)
}

// Produce1 is Produce with one extra parameter.
func Produce1[R, T any](v Visitable[T], f *Factory, p1 any) (R, error) {
	return produce[R](f, erase(v), []any{p1})
}

// Produce2 is Produce with two extra parameters.
func Produce2[R, T any](v Visitable[T], f *Factory, p1, p2 any) (R, error) {
	return produce[R](f, erase(v), []any{p1, p2})
}

// Produce3 is Produce with three extra parameters.
func Produce3[R, T any](v Visitable[T], f *Factory, p1, p2, p3 any) (R, error) {
	return produce[R](f, erase(v), []any{p1, p2, p3})
}

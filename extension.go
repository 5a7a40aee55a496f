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

import "reflect"

// ExtensionPoint pairs a value with its runtime type so behavior can be
// attached to the value without touching its own type. It is immutable.
type ExtensionPoint[T any] struct {
	value T
	typ   reflect.Type
}

// Wrap creates an ExtensionPoint for v. The runtime type is taken from the
// dynamic value, so wrapping through an interface type still records the
// concrete type. A nil interface value has a nil runtime type.
func Wrap[T any](v T) ExtensionPoint[T] {
	return ExtensionPoint[T]{value: v, typ: reflect.TypeOf(any(v))}
}

// Value returns the wrapped value.
func (e ExtensionPoint[T]) Value() T {
	return e.value
}

// Type returns the runtime type of the wrapped value.
func (e ExtensionPoint[T]) Type() reflect.Type {
	if e.typ == nil {
		// Zero ExtensionPoint of a non-interface T.
		return reflect.TypeOf(any(e.value))
	}
	return e.typ
}

// StaticType returns T, the type the value was wrapped as.
func (e ExtensionPoint[T]) StaticType() reflect.Type {
	return reflect.TypeFor[T]()
}

// AsVisitable marks the extension point as eligible for dispatch.
func (e ExtensionPoint[T]) AsVisitable() Visitable[T] {
	return Visitable[T]{ExtensionPoint: e}
}

// Visitable is an ExtensionPoint the caller has declared eligible for
// dispatch. It carries no extra data; Accept and Produce only take Visitable
// values, so dispatching something never marked is a compile error.
type Visitable[T any] struct {
	ExtensionPoint[T]
}

// AsVisitable wraps v and marks it eligible for dispatch.
func AsVisitable[T any](v T) Visitable[T] {
	return Wrap(v).AsVisitable()
}

// extension is the type-erased view of a Visitable used by the engine.
type extension struct {
	value any
	typ   reflect.Type
}

// erase drops the static type of v.
func erase[T any](v Visitable[T]) extension {
	return extension{value: v.Value(), typ: v.Type()}
}

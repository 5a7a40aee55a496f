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

package reflect

import (
	"errors"
	"path"
	"reflect"
	"strings"

	"dirpx.dev/vfx/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectNotPointer indicates that the provided type is not a pointer.
	ErrReflectNotPointer = errors.New("reflect: type is not a pointer")
)

// TypeName returns a short, stable name for t suitable for errors and logs:
// "pkg.Type" for named types, the Go spelling for builtin and composite types
// (with named element types shortened the same way), "nil" for a nil type.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	switch t.Kind() {
	case reflect.Ptr:
		if t.Name() == "" {
			return "*" + TypeName(t.Elem())
		}
	case reflect.Slice:
		if t.Name() == "" {
			return "[]" + TypeName(t.Elem())
		}
	case reflect.Map:
		if t.Name() == "" {
			return "map[" + TypeName(t.Key()) + "]" + TypeName(t.Elem())
		}
	}
	name := t.Name()
	if name == "" {
		return t.String()
	}
	if p := t.PkgPath(); p != "" {
		return path.Base(p) + "." + stripTypeParams(name)
	}
	return name
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

// Deref unwraps pointer types of t, at most maxUnwrap levels, and returns
// every intermediate element type in order. t itself is not included.
//
// If maxUnwrap <= 0, config.DefaultMaxUnwrap is used.
func Deref(t reflect.Type, maxUnwrap int) ([]reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	if t.Kind() != reflect.Ptr {
		return nil, ErrReflectNotPointer
	}
	if maxUnwrap <= 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}
	var out []reflect.Type
	for i := 0; t.Kind() == reflect.Ptr && i < maxUnwrap; i++ {
		t = t.Elem()
		out = append(out, t)
	}
	return out, nil
}

// Nillable reports whether nil is a valid value of t.
func Nillable(t reflect.Type) bool {
	if t == nil {
		return true
	}
	switch t.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// Numeric reports whether t is an integer, float or complex kind.
func Numeric(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// Accepts reports whether a runtime argument of type got can be passed where
// want is declared. A nil got stands for a nil argument and is accepted by
// nillable types only.
func Accepts(want, got reflect.Type) bool {
	if want == nil {
		return got == nil
	}
	if got == nil {
		return Nillable(want)
	}
	return got.AssignableTo(want)
}

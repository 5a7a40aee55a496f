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

import (
	"reflect"
	"strings"
)

// MaxParams is the largest number of extra parameters a handler can take.
const MaxParams = 3

// Key identifies a handler by the runtime type of the visited value and the
// types of the extra parameters, in order. Key is comparable and is used
// directly as a map key.
type Key struct {
	// Visited is the type of the visited value. Nil stands for a nil interface.
	Visited reflect.Type
	// Arity is the number of extra parameters.
	Arity int
	// Params holds the extra parameter types; only the first Arity are meaningful.
	Params [MaxParams]reflect.Type
}

// NewKey builds a Key from a visited type and parameter types.
// It panics if more than MaxParams parameter types are given.
func NewKey(visited reflect.Type, params ...reflect.Type) Key {
	if len(params) > MaxParams {
		panic("vfx(apis): too many handler parameters")
	}
	k := Key{Visited: visited, Arity: len(params)}
	copy(k.Params[:], params)
	return k
}

// KeyOf builds the Key matching the runtime types of v and params.
func KeyOf(v any, params ...any) Key {
	if len(params) > MaxParams {
		panic("vfx(apis): too many handler parameters")
	}
	k := Key{Visited: reflect.TypeOf(v), Arity: len(params)}
	for i, p := range params {
		k.Params[i] = reflect.TypeOf(p)
	}
	return k
}

// ParamTypes returns the parameter types as a fresh slice.
func (k Key) ParamTypes() []reflect.Type {
	out := make([]reflect.Type, k.Arity)
	copy(out, k.Params[:k.Arity])
	return out
}

// String renders the key as "Visited(P1, P2)".
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(typeString(k.Visited))
	b.WriteByte('(')
	for i := 0; i < k.Arity; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(typeString(k.Params[i]))
	}
	b.WriteByte(')')
	return b.String()
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}

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

import "reflect"

// Kind tells visitor handlers from factory handlers.
type Kind uint8

const (
	// KindVisit is a handler that performs an action and produces no result.
	KindVisit Kind = iota + 1
	// KindProduce is a handler that produces a result.
	KindProduce
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindVisit:
		return "visit"
	case KindProduce:
		return "produce"
	default:
		return "unknown"
	}
}

// Invoke calls a handler with the visited value and the extra parameters.
// Visitor handlers return a nil result.
type Invoke func(v any, params []any) (any, error)

// Handler is a registered function bound to a Key.
type Handler struct {
	// Key is the (visited, params) tuple the handler accepts.
	Key Key
	// Kind is the handler kind.
	Kind Kind
	// Result is the declared result type of a KindProduce handler, nil otherwise.
	Result reflect.Type
	// Invoke runs the handler.
	Invoke Invoke
}

// Valid reports whether h can be registered.
func (h Handler) Valid() bool {
	return h.Invoke != nil && h.Key.Arity >= 0 && h.Key.Arity <= MaxParams
}

// Call is a single dispatch attempt.
type Call struct {
	// Key holds the runtime types of Value and Params.
	Key Key
	// Value is the visited value.
	Value any
	// Params are the extra parameters.
	Params []any
}

// NewCall builds a Call from the visited value and parameters.
func NewCall(v any, params ...any) Call {
	return Call{Key: KeyOf(v, params...), Value: v, Params: params}
}

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

package strategy

import (
	"reflect"

	"dirpx.dev/vfx/apis"
	uref "dirpx.dev/vfx/utils/reflect"
)

// NewUnwrapStrategy creates an apis.Strategy that dispatches a non-nil pointer
// to a handler registered for its element type.
func NewUnwrapStrategy(reg apis.Registry) apis.Strategy {
	return &unwrapStrategy{reg: reg}
}

// unwrapStrategy dereferences the visited value one level at a time, up to
// cfg.MaxUnwrap, and stops at the first element type with a handler.
// Parameter types must still match exactly.
type unwrapStrategy struct {
	reg apis.Registry
}

// Ensure unwrapStrategy implements apis.Strategy.
var _ apis.Strategy = (*unwrapStrategy)(nil)

// TryResolve returns a handler bound to the dereferenced value.
func (s *unwrapStrategy) TryResolve(c apis.Call, cfg apis.Config) (apis.Handler, bool) {
	if !cfg.UnwrapPointers || s.reg == nil {
		return apis.Handler{}, false
	}
	elems, err := uref.Deref(c.Key.Visited, cfg.MaxUnwrap)
	if err != nil {
		return apis.Handler{}, false
	}

	rv := reflect.ValueOf(c.Value)
	k := c.Key
	for _, et := range elems {
		// A nil pointer has nothing to hand to an element handler.
		if rv.IsNil() {
			return apis.Handler{}, false
		}
		rv = rv.Elem()
		k.Visited = et
		if h, ok := s.reg.Lookup(k); ok {
			return bind(h, rv.Interface()), true
		}
		if rv.Kind() != reflect.Ptr {
			break
		}
	}
	return apis.Handler{}, false
}

// bind returns a copy of h that always receives v as the visited value.
func bind(h apis.Handler, v any) apis.Handler {
	inner := h.Invoke
	h.Invoke = func(_ any, params []any) (any, error) {
		return inner(v, params)
	}
	return h
}

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

package strategy_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/vfx/apis"
	"dirpx.dev/vfx/config"
	"dirpx.dev/vfx/registry"
)

// Named types for stable keys.
type Foo struct{ N int }
type Label string

func (l Label) String() string { return string(l) }

// echo returns a produce handler for k that reports tag and the visited value.
func echo(k apis.Key, tag string) apis.Handler {
	return apis.Handler{
		Key:  k,
		Kind: apis.KindProduce,
		Invoke: func(v any, params []any) (any, error) {
			return fmt.Sprintf("%s:%v:%v", tag, v, params), nil
		},
	}
}

// sealed builds a sealed registry holding hs.
func sealed(t *testing.T, hs ...apis.Handler) apis.Registry {
	t.Helper()
	reg := registry.New(config.DefaultConfig())
	for _, h := range hs {
		require.NoError(t, reg.Register(h))
	}
	reg.Seal()
	return reg
}

func invoke(t *testing.T, h apis.Handler, c apis.Call) any {
	t.Helper()
	out, err := h.Invoke(c.Value, c.Params)
	require.NoError(t, err)
	return out
}

var (
	fooType      = reflect.TypeOf(Foo{})
	intType      = reflect.TypeOf(0)
	stringType   = reflect.TypeOf("")
	stringerType = reflect.TypeFor[fmt.Stringer]()
	anyType      = reflect.TypeFor[any]()
)

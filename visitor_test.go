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

package vfx_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/vfx"
	"dirpx.dev/vfx/apis"
	"dirpx.dev/vfx/config"
	"dirpx.dev/vfx/registry"
)

// recorder collects handler and fallback invocations.
type recorder struct {
	calls     []string
	fallbacks []string
	lastErr   error
}

func (r *recorder) hit(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) options() []vfx.Option {
	return []vfx.Option{
		vfx.On(func(n int) error { r.hit("int:%d", n); return nil }),
		vfx.On(func(s string) error { r.hit("string:%s", s); return nil }),
		vfx.On1(func(n int, p string) error { r.hit("int,string:%d,%s", n, p); return nil }),
		vfx.On2(func(n int, p1 string, p2 bool) error { r.hit("int,string,bool:%d,%s,%v", n, p1, p2); return nil }),
	}
}

func (r *recorder) fallback0() vfx.Option {
	return vfx.Fallback(func(v any, err error) {
		r.fallbacks = append(r.fallbacks, fmt.Sprintf("0:%v", v))
		r.lastErr = err
	})
}

func newRecorder(t *testing.T, extra ...vfx.Option) (*recorder, *vfx.Visitor) {
	t.Helper()
	r := &recorder{}
	v, err := vfx.NewVisitor(append(r.options(), extra...)...)
	require.NoError(t, err)
	return r, v
}

func TestAccept_InvokesMatchingHandlerOnce(t *testing.T) {
	r, v := newRecorder(t, (&recorder{}).fallback0())

	require.NoError(t, vfx.Accept(vfx.AsVisitable[any](3), v))
	assert.Equal(t, []string{"int:3"}, r.calls)

	require.NoError(t, vfx.Accept(vfx.AsVisitable("go"), v))
	assert.Equal(t, []string{"int:3", "string:go"}, r.calls)
}

func TestAccept_Arities(t *testing.T) {
	r, v := newRecorder(t)

	require.NoError(t, vfx.Accept1(vfx.AsVisitable(1), v, "a"))
	require.NoError(t, vfx.Accept2(vfx.AsVisitable(2), v, "b", true))
	assert.Equal(t, []string{"int,string:1,a", "int,string,bool:2,b,true"}, r.calls)
}

func TestAccept_ParameterTypesMustMatch(t *testing.T) {
	r := &recorder{}
	v := vfx.MustVisitor(append(r.options(), r.fallback0())...)

	// No (int, int) handler, and no (int, string, string) handler.
	require.NoError(t, vfx.Accept1(vfx.AsVisitable(1), v, 2))
	require.NoError(t, vfx.Accept2(vfx.AsVisitable(1), v, "a", "b"))
	assert.Empty(t, r.calls)
	assert.Equal(t, []string{"0:1", "0:1"}, r.fallbacks)
}

// A Visitor without rethrow that has a handler for int only sends a float to
// the zero-arity fallback and returns normally.
func TestAccept_FloatGoesToFallback(t *testing.T) {
	var handled int
	var gotValue any
	var gotErr error
	fallbacks := 0

	v := vfx.MustVisitor(
		vfx.On(func(n int) error { handled++; return nil }),
		vfx.Fallback(func(value any, err error) {
			fallbacks++
			gotValue, gotErr = value, err
		}),
	)

	require.NoError(t, vfx.Accept(vfx.AsVisitable[any](3.14), v))
	assert.Zero(t, handled)
	assert.Equal(t, 1, fallbacks)
	assert.Equal(t, 3.14, gotValue)
	assert.ErrorIs(t, gotErr, vfx.ErrNoMatchingHandler)

	var derr *vfx.DispatchError
	require.ErrorAs(t, gotErr, &derr)
	assert.Equal(t, vfx.NoMatchingHandler, derr.Reason)
	assert.Equal(t, reflect.TypeOf(0.0), derr.Key.Visited)
}

// The same handler set with rethrow returns the failure and skips the fallback.
func TestAccept_RethrowReturnsError(t *testing.T) {
	fallbacks := 0
	v := vfx.MustVisitor(
		vfx.On(func(n int) error { return nil }),
		vfx.Rethrow(true),
		vfx.Fallback(func(any, error) { fallbacks++ }),
		vfx.Fallback1(func(any, error, any) { fallbacks++ }),
	)
	assert.True(t, v.Rethrow())

	err := vfx.Accept(vfx.AsVisitable[any](3.14), v)
	require.Error(t, err)
	assert.ErrorIs(t, err, vfx.ErrNoMatchingHandler)
	assert.Equal(t, "vfx: no matching handler for float64()", err.Error())

	err = vfx.Accept1(vfx.AsVisitable(1), v, "x")
	assert.ErrorIs(t, err, vfx.ErrNoMatchingHandler)
	assert.Zero(t, fallbacks)
}

func TestAccept_HandlerErrorsAreNeverIntercepted(t *testing.T) {
	boom := errors.New("boom")
	for _, rethrow := range []bool{false, true} {
		fallbacks := 0
		v := vfx.MustVisitor(
			vfx.On(func(n int) error { return boom }),
			vfx.Rethrow(rethrow),
			vfx.Fallback(func(any, error) { fallbacks++ }),
		)

		err := vfx.Accept(vfx.AsVisitable(1), v)
		assert.Same(t, boom, err, "rethrow=%v", rethrow)
		assert.Zero(t, fallbacks, "rethrow=%v", rethrow)
	}
}

func TestAccept_HandlerReturningDispatchErrorIsPassedThrough(t *testing.T) {
	// A nested dispatch failure surfaces through the outer handler untouched.
	inner := vfx.MustVisitor(vfx.Rethrow(true))
	fallbacks := 0
	outer := vfx.MustVisitor(
		vfx.On(func(n int) error { return vfx.Accept(vfx.AsVisitable(n), inner) }),
		vfx.Fallback(func(any, error) { fallbacks++ }),
	)

	err := vfx.Accept(vfx.AsVisitable(1), outer)
	assert.ErrorIs(t, err, vfx.ErrNoMatchingHandler)
	assert.Zero(t, fallbacks)
}

func TestAccept_RuntimeTypeNotStaticType(t *testing.T) {
	var got []string
	v := vfx.MustVisitor(
		vfx.On(func(c celsius) error { got = append(got, "celsius:"+c.String()); return nil }),
		vfx.On(func(s fmt.Stringer) error { got = append(got, "stringer"); return nil }),
	)

	var s fmt.Stringer = celsius(20)
	require.NoError(t, vfx.Accept(vfx.AsVisitable(s), v))
	assert.Equal(t, []string{"celsius:20.0C"}, got)
}

func TestAccept_NilVisitor(t *testing.T) {
	assert.ErrorIs(t, vfx.Accept(vfx.AsVisitable(1), nil), vfx.ErrNilVisitor)
	assert.ErrorIs(t, vfx.Accept2(vfx.AsVisitable(1), nil, 1, 2), vfx.ErrNilVisitor)
}

func TestAccept_NilValue(t *testing.T) {
	var got error
	v := vfx.MustVisitor(
		vfx.On(func(n int) error { return nil }),
		vfx.Fallback(func(_ any, err error) { got = err }),
	)

	var s fmt.Stringer
	require.NoError(t, vfx.Accept(vfx.AsVisitable(s), v))
	assert.EqualError(t, got, "vfx: no matching handler for nil()")
}

// Unset fallback slots drop their trailing parameters and delegate down.
func TestFallback_ArityReduction(t *testing.T) {
	var log []string
	zero := vfx.Fallback(func(v any, err error) { log = append(log, fmt.Sprintf("0:%v", v)) })
	one := vfx.Fallback1(func(v any, err error, p1 any) { log = append(log, fmt.Sprintf("1:%v,%v", v, p1)) })

	// Only slot 0 set: every arity ends there.
	v := vfx.MustVisitor(zero)
	require.NoError(t, vfx.Accept2(vfx.AsVisitable("a"), v, 1, 2))
	require.NoError(t, vfx.Accept1(vfx.AsVisitable("b"), v, 1))
	require.NoError(t, vfx.Accept(vfx.AsVisitable("c"), v))
	assert.Equal(t, []string{"0:a", "0:b", "0:c"}, log)

	// Slot 1 set: arity 2 stops at 1, arity 0 still uses 0.
	log = nil
	v = vfx.MustVisitor(zero, one)
	require.NoError(t, vfx.Accept2(vfx.AsVisitable("a"), v, 1, 2))
	require.NoError(t, vfx.Accept(vfx.AsVisitable("c"), v))
	assert.Equal(t, []string{"1:a,1", "0:c"}, log)

	// Calling the hooks directly follows the same chain.
	log = nil
	v.Fallback2("x", nil, 7, 8)
	v.Fallback1("y", nil, 9)
	v.Fallback("z", nil)
	assert.Equal(t, []string{"1:x,7", "1:y,9", "0:z"}, log)
}

func TestFallback_DefaultIsNoop(t *testing.T) {
	v := vfx.MustVisitor()
	assert.NotPanics(t, func() {
		v.Fallback(1, nil)
		v.Fallback1(1, nil, 2)
		v.Fallback2(1, nil, 2, 3)
	})
	assert.NoError(t, vfx.Accept2(vfx.AsVisitable(1), v, 2, 3))
}

func TestFallback_OverriddenTwoParameterSlot(t *testing.T) {
	var got []any
	v := vfx.MustVisitor(
		vfx.Fallback(func(any, error) { t.Fatal("slot 0 must not run") }),
		vfx.Fallback2(func(v any, err error, p1, p2 any) { got = append(got, v, p1, p2) }),
	)
	require.NoError(t, vfx.Accept2(vfx.AsVisitable(1), v, "a", 'b'))
	assert.Equal(t, []any{1, "a", 'b'}, got)
}

func TestNewVisitor_Errors(t *testing.T) {
	_, err := vfx.NewVisitor(
		vfx.On(func(int) error { return nil }),
		vfx.On(func(int) error { return nil }),
	)
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration)
	var rerr *vfx.RegistrationError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, apis.NewKey(reflect.TypeOf(0)), rerr.Key)

	_, err = vfx.NewVisitor(vfx.On[int](nil))
	assert.ErrorIs(t, err, registry.ErrNilHandler)

	_, err = vfx.NewVisitor(vfx.Make(func(int) (int, error) { return 0, nil }))
	assert.ErrorIs(t, err, vfx.ErrWrongKind)

	_, err = vfx.NewVisitor(vfx.CreateFallback(func(any, error, reflect.Type) any { return nil }))
	assert.ErrorIs(t, err, vfx.ErrWrongKind)

	assert.Panics(t, func() { vfx.MustVisitor(vfx.On[int](nil)) })
}

func TestVisitor_Introspection(t *testing.T) {
	_, v := newRecorder(t)

	entries := v.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, apis.NewKey(reflect.TypeOf(0)), entries[0].Key)
	for _, e := range entries {
		assert.Equal(t, apis.KindVisit, e.Kind)
	}

	assert.True(t, v.Handles(apis.KeyOf(1, "x")))
	assert.False(t, v.Handles(apis.KeyOf(1.5)))
	assert.Equal(t, config.DefaultConfig(), v.Config())
}

func TestVisitor_Derive(t *testing.T) {
	r, base := newRecorder(t, vfx.Rethrow(true))

	var floats []float64
	derived, err := base.Derive(
		vfx.On(func(f float64) error { floats = append(floats, f); return nil }),
		vfx.Rethrow(false),
	)
	require.NoError(t, err)

	require.NoError(t, vfx.Accept(vfx.AsVisitable(1), derived))
	require.NoError(t, vfx.Accept(vfx.AsVisitable(2.5), derived))
	require.NoError(t, vfx.Accept(vfx.AsVisitable(true), derived), "derived visitor no longer rethrows")
	assert.Equal(t, []string{"int:1"}, r.calls)
	assert.Equal(t, []float64{2.5}, floats)

	// The parent is unchanged.
	assert.ErrorIs(t, vfx.Accept(vfx.AsVisitable(2.5), base), vfx.ErrNoMatchingHandler)
	assert.Len(t, base.Entries(), 4)
	assert.Len(t, derived.Entries(), 5)

	// Re-registering an inherited key conflicts.
	_, err = base.Derive(vfx.On(func(int) error { return nil }))
	assert.ErrorIs(t, err, registry.ErrConflictingRegistration)

	var nilVisitor *vfx.Visitor
	_, err = nilVisitor.Derive()
	assert.ErrorIs(t, err, vfx.ErrNilVisitor)
}

func TestVisitor_UnwrapPointers(t *testing.T) {
	var got []int
	v := vfx.MustVisitor(
		vfx.On(func(n int) error { got = append(got, n); return nil }),
		vfx.WithConfig(config.WithUnwrapPointers(true)),
		vfx.Rethrow(true),
	)
	n := 9
	require.NoError(t, vfx.Accept(vfx.AsVisitable(&n), v))
	assert.Equal(t, []int{9}, got)

	var nilPtr *int
	assert.ErrorIs(t, vfx.Accept(vfx.AsVisitable(nilPtr), v), vfx.ErrNoMatchingHandler)
}

func TestVisitor_MatchAssignable(t *testing.T) {
	var got []string
	v := vfx.MustVisitor(
		vfx.On1(func(s fmt.Stringer, w error) error {
			got = append(got, fmt.Sprintf("%s/%v", s, w))
			return nil
		}),
		vfx.WithConfig(config.WithMatchAssignable(true)),
		vfx.Rethrow(true),
	)

	require.NoError(t, vfx.Accept1(vfx.AsVisitable(celsius(1)), v, errors.New("e")))
	require.NoError(t, vfx.Accept1(vfx.AsVisitable(celsius(2)), v, nil))
	assert.Equal(t, []string{"1.0C/e", "2.0C/<nil>"}, got)

	assert.ErrorIs(t, vfx.Accept1(vfx.AsVisitable(3), v, nil), vfx.ErrNoMatchingHandler)
}

func TestZeroVisitor(t *testing.T) {
	// A Visitor not built by NewVisitor has no handlers and no hooks.
	var v vfx.Visitor
	assert.NoError(t, vfx.Accept(vfx.AsVisitable(1), &v))
	assert.Empty(t, v.Entries())
	assert.False(t, v.Handles(apis.KeyOf(1)))
}

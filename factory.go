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

import (
	"reflect"

	"dirpx.dev/vfx/apis"
	uref "dirpx.dev/vfx/utils/reflect"
)

// Factory is the result-producing counterpart of Visitor: a closed set of
// factory handlers, a rethrow policy and a create-fallback chain. The result
// type is chosen per call by Produce. Factory is immutable after construction.
type Factory struct {
	core
	creates [apis.MaxParams + 1]createFunc
}

// NewFactory builds a Factory from opts on top of the process-wide defaults.
// Visitor options (On*, Fallback*) make it fail with ErrWrongKind.
func NewFactory(opts ...Option) (*Factory, error) {
	return buildFactory(defaults(), nil, [apis.MaxParams + 1]createFunc{}, opts)
}

// MustFactory is like NewFactory but panics on error.
func MustFactory(opts ...Option) *Factory {
	f, err := NewFactory(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Derive builds a new Factory that keeps f's handlers, configuration and
// create fallbacks, with opts applied on top. f is not modified.
func (f *Factory) Derive(opts ...Option) (*Factory, error) {
	if f == nil {
		return nil, ErrNilFactory
	}
	return buildFactory(f.core, f.reg, f.creates, opts)
}

func buildFactory(base core, prev apis.Registry, creates [apis.MaxParams + 1]createFunc, opts []Option) (*Factory, error) {
	s := &settings{creates: creates}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	for _, fb := range s.fallbacks {
		if fb != nil {
			return nil, ErrWrongKind
		}
	}

	c, err := assemble(apis.KindProduce, base, prev, s)
	if err != nil {
		return nil, err
	}
	return &Factory{core: c, creates: s.creates}, nil
}

// CreateFallback is the hook that produces a value when a dispatch without
// extra parameters fails and the factory does not rethrow. Without a hook set
// by the CreateFallback option it returns nil, which Produce turns into the
// zero value of the requested type.
func (f *Factory) CreateFallback(value any, err error, want reflect.Type) any {
	return f.create(value, err, want, nil)
}

// CreateFallback1 is the one-parameter hook. Unless set by CreateFallback1 it
// drops p1 and calls CreateFallback.
func (f *Factory) CreateFallback1(value any, err error, want reflect.Type, p1 any) any {
	return f.create(value, err, want, []any{p1})
}

// CreateFallback2 is the two-parameter hook. Unless set by CreateFallback2 it
// drops p2 and calls CreateFallback1.
func (f *Factory) CreateFallback2(value any, err error, want reflect.Type, p1, p2 any) any {
	return f.create(value, err, want, []any{p1, p2})
}

// CreateFallback3 is the three-parameter hook. Unless set by CreateFallback3
// it drops p3 and calls CreateFallback2.
func (f *Factory) CreateFallback3(value any, err error, want reflect.Type, p1, p2, p3 any) any {
	return f.create(value, err, want, []any{p1, p2, p3})
}

// create walks the arity chain down from len(params) and runs the first hook
// that is set.
func (f *Factory) create(value any, err error, want reflect.Type, params []any) any {
	for n := len(params); n >= 0; n-- {
		if fn := f.creates[n]; fn != nil {
			return fn(value, err, want, params[:n])
		}
	}
	return nil
}

// produce resolves and runs the handler for value and converts its result to R,
// or applies the failure policy.
func produce[R any](f *Factory, ep extension, params []any) (R, error) {
	var zero R
	if f == nil {
		return zero, ErrNilFactory
	}
	want := reflect.TypeFor[R]()
	call := newCall(ep.value, ep.typ, params)

	var derr *DispatchError
	if h, ok := f.resolve(call); ok {
		out, err := h.Invoke(call.Value, call.Params)
		if err != nil {
			return zero, err
		}
		if r, ok := convert[R](out, want, f.cfg); ok {
			return r, nil
		}
		derr = &DispatchError{Reason: ResultTypeMismatch, Key: call.Key, Want: want, Got: reflect.TypeOf(out)}
	} else {
		derr = &DispatchError{Reason: NoMatchingHandler, Key: call.Key, Want: want}
	}

	if f.cfg.Rethrow {
		f.entry(derr).Debug("vfx: produce failed")
		return zero, derr
	}
	f.entry(derr).Debug("vfx: produce failed, running create fallback")
	out := f.create(ep.value, derr, want, params)
	r, ok := convert[R](out, want, f.cfg)
	if !ok && out != nil {
		f.entry(derr).WithField("fallback", uref.TypeName(reflect.TypeOf(out))).
			Warn("vfx: create fallback result not convertible, using zero value")
	}
	return r, nil
}

// convert turns a handler result into R.
// Nil converts to the zero value of nillable types. Other values must be
// assignable to R, or, with ConvertNumeric, numeric and convertible.
func convert[R any](out any, want reflect.Type, cfg apis.Config) (R, bool) {
	if r, ok := out.(R); ok {
		return r, true
	}
	var zero R
	if out == nil {
		return zero, uref.Nillable(want)
	}

	rv := reflect.ValueOf(out)
	got := rv.Type()
	switch {
	case got.AssignableTo(want):
		dst := reflect.New(want).Elem()
		dst.Set(rv)
		return dst.Interface().(R), true
	case cfg.ConvertNumeric && uref.Numeric(got) && uref.Numeric(want) && got.ConvertibleTo(want):
		return rv.Convert(want).Interface().(R), true
	default:
		return zero, false
	}
}

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

	"github.com/sirupsen/logrus"

	"dirpx.dev/vfx/apis"
	"dirpx.dev/vfx/config"
)

// Option configures a Visitor or a Factory at construction.
type Option func(*settings)

// fallbackFunc is a visitor fallback slot; params has exactly the slot's arity.
type fallbackFunc func(v any, err error, params []any)

// createFunc is a factory fallback slot; params has exactly the slot's arity.
type createFunc func(v any, err error, want reflect.Type, params []any) any

// settings collects options before a dispatcher is assembled.
type settings struct {
	cfgOpts   []config.Option
	bld       apis.Builder
	log       logrus.FieldLogger
	handlers  []apis.Handler
	fallbacks [apis.MaxParams + 1]fallbackFunc
	creates   [apis.MaxParams + 1]createFunc
}

// Rethrow sets whether resolution failures are returned as errors (true) or
// routed to the fallback chain (false, the default).
func Rethrow(rethrow bool) Option {
	return WithConfig(config.WithRethrow(rethrow))
}

// WithConfig applies config options on top of the process-wide defaults
// (or, for Derive, on top of the parent's configuration).
func WithConfig(opts ...config.Option) Option {
	return func(s *settings) {
		s.cfgOpts = append(s.cfgOpts, opts...)
	}
}

// WithBuilder overrides the builder used to assemble the handler table.
func WithBuilder(b apis.Builder) Option {
	return func(s *settings) {
		if b != nil {
			s.bld = b
		}
	}
}

// WithLogger overrides the logger used for dispatch diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// handle appends a handler. A nil function yields a handler the registry rejects.
func handle(h apis.Handler, isNil bool) Option {
	if isNil {
		h.Invoke = nil
	}
	return func(s *settings) {
		s.handlers = append(s.handlers, h)
	}
}

// as asserts x to T, returning the zero T for nil or mismatched values.
func as[T any](x any) T {
	t, _ := x.(T)
	return t
}

// On registers a visitor handler for values of type T.
func On[T any](fn func(v T) error) Option {
	return handle(apis.Handler{
		Key:  apis.NewKey(reflect.TypeFor[T]()),
		Kind: apis.KindVisit,
		Invoke: func(v any, _ []any) (any, error) {
			return nil, fn(as[T](v))
		},
	}, fn == nil)
}

// On1 registers a visitor handler for values of type T with one extra parameter.
func On1[T, P1 any](fn func(v T, p1 P1) error) Option {
	return handle(apis.Handler{
		Key:  apis.NewKey(reflect.TypeFor[T](), reflect.TypeFor[P1]()),
		Kind: apis.KindVisit,
		Invoke: func(v any, ps []any) (any, error) {
			return nil, fn(as[T](v), as[P1](ps[0]))
		},
	}, fn == nil)
}

// On2 registers a visitor handler for values of type T with two extra parameters.
func On2[T, P1, P2 any](fn func(v T, p1 P1, p2 P2) error) Option {
	return handle(apis.Handler{
		Key:  apis.NewKey(reflect.TypeFor[T](), reflect.TypeFor[P1](), reflect.TypeFor[P2]()),
		Kind: apis.KindVisit,
		Invoke: func(v any, ps []any) (any, error) {
			return nil, fn(as[T](v), as[P1](ps[0]), as[P2](ps[1]))
		},
	}, fn == nil)
}

// Make registers a factory handler for values of type T producing X.
// X need not match the result type requested by Produce; the result is
// converted at dispatch time.
func Make[T, X any](fn func(v T) (X, error)) Option {
	return handle(apis.Handler{
		Key:    apis.NewKey(reflect.TypeFor[T]()),
		Kind:   apis.KindProduce,
		Result: reflect.TypeFor[X](),
		Invoke: func(v any, _ []any) (any, error) {
			return fn(as[T](v))
		},
	}, fn == nil)
}

// Make1 registers a factory handler with one extra parameter.
func Make1[T, P1, X any](fn func(v T, p1 P1) (X, error)) Option {
	return handle(apis.Handler{
		Key:    apis.NewKey(reflect.TypeFor[T](), reflect.TypeFor[P1]()),
		Kind:   apis.KindProduce,
		Result: reflect.TypeFor[X](),
		Invoke: func(v any, ps []any) (any, error) {
			return fn(as[T](v), as[P1](ps[0]))
		},
	}, fn == nil)
}

// Make2 registers a factory handler with two extra parameters.
func Make2[T, P1, P2, X any](fn func(v T, p1 P1, p2 P2) (X, error)) Option {
	return handle(apis.Handler{
		Key:    apis.NewKey(reflect.TypeFor[T](), reflect.TypeFor[P1](), reflect.TypeFor[P2]()),
		Kind:   apis.KindProduce,
		Result: reflect.TypeFor[X](),
		Invoke: func(v any, ps []any) (any, error) {
			return fn(as[T](v), as[P1](ps[0]), as[P2](ps[1]))
		},
	}, fn == nil)
}

// Make3 registers a factory handler with three extra parameters.
func Make3[T, P1, P2, P3, X any](fn func(v T, p1 P1, p2 P2, p3 P3) (X, error)) Option {
	return handle(apis.Handler{
		Key:    apis.NewKey(reflect.TypeFor[T](), reflect.TypeFor[P1](), reflect.TypeFor[P2](), reflect.TypeFor[P3]()),
		Kind:   apis.KindProduce,
		Result: reflect.TypeFor[X](),
		Invoke: func(v any, ps []any) (any, error) {
			return fn(as[T](v), as[P1](ps[0]), as[P2](ps[1]), as[P3](ps[2]))
		},
	}, fn == nil)
}

// Fallback sets the visitor hook for failed dispatches without extra parameters.
// It is also where the higher arities end up when they are not set.
func Fallback(fn func(v any, err error)) Option {
	return func(s *settings) {
		if fn == nil {
			s.fallbacks[0] = nil
			return
		}
		s.fallbacks[0] = func(v any, err error, _ []any) { fn(v, err) }
	}
}

// Fallback1 sets the visitor hook for failed one-parameter dispatches.
func Fallback1(fn func(v any, err error, p1 any)) Option {
	return func(s *settings) {
		if fn == nil {
			s.fallbacks[1] = nil
			return
		}
		s.fallbacks[1] = func(v any, err error, ps []any) { fn(v, err, ps[0]) }
	}
}

// Fallback2 sets the visitor hook for failed two-parameter dispatches.
func Fallback2(fn func(v any, err error, p1, p2 any)) Option {
	return func(s *settings) {
		if fn == nil {
			s.fallbacks[2] = nil
			return
		}
		s.fallbacks[2] = func(v any, err error, ps []any) { fn(v, err, ps[0], ps[1]) }
	}
}

// CreateFallback sets the factory hook that produces a value for failed
// dispatches without extra parameters. want is the result type requested by
// the caller; a returned value not convertible to it yields the zero value.
func CreateFallback(fn func(v any, err error, want reflect.Type) any) Option {
	return func(s *settings) {
		if fn == nil {
			s.creates[0] = nil
			return
		}
		s.creates[0] = func(v any, err error, want reflect.Type, _ []any) any { return fn(v, err, want) }
	}
}

// CreateFallback1 sets the factory hook for failed one-parameter dispatches.
func CreateFallback1(fn func(v any, err error, want reflect.Type, p1 any) any) Option {
	return func(s *settings) {
		if fn == nil {
			s.creates[1] = nil
			return
		}
		s.creates[1] = func(v any, err error, want reflect.Type, ps []any) any { return fn(v, err, want, ps[0]) }
	}
}

// CreateFallback2 sets the factory hook for failed two-parameter dispatches.
func CreateFallback2(fn func(v any, err error, want reflect.Type, p1, p2 any) any) Option {
	return func(s *settings) {
		if fn == nil {
			s.creates[2] = nil
			return
		}
		s.creates[2] = func(v any, err error, want reflect.Type, ps []any) any { return fn(v, err, want, ps[0], ps[1]) }
	}
}

// CreateFallback3 sets the factory hook for failed three-parameter dispatches.
func CreateFallback3(fn func(v any, err error, want reflect.Type, p1, p2, p3 any) any) Option {
	return func(s *settings) {
		if fn == nil {
			s.creates[3] = nil
			return
		}
		s.creates[3] = func(v any, err error, want reflect.Type, ps []any) any { return fn(v, err, want, ps[0], ps[1], ps[2]) }
	}
}

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
	"dirpx.dev/vfx/apis"
)

// Visitor is a closed set of visitor handlers plus a rethrow policy and a
// fallback chain. It is immutable after construction and safe for concurrent
// use as long as the handlers and fallbacks it was given are.
type Visitor struct {
	core
	fallbacks [3]fallbackFunc
}

// NewVisitor builds a Visitor from opts on top of the process-wide defaults.
// Factory options (Make*, CreateFallback*) make it fail with ErrWrongKind.
func NewVisitor(opts ...Option) (*Visitor, error) {
	return buildVisitor(defaults(), nil, [3]fallbackFunc{}, opts)
}

// MustVisitor is like NewVisitor but panics on error.
func MustVisitor(opts ...Option) *Visitor {
	v, err := NewVisitor(opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Derive builds a new Visitor that keeps v's handlers, configuration and
// fallbacks, with opts applied on top. v is not modified.
func (v *Visitor) Derive(opts ...Option) (*Visitor, error) {
	if v == nil {
		return nil, ErrNilVisitor
	}
	return buildVisitor(v.core, v.reg, v.fallbacks, opts)
}

func buildVisitor(base core, prev apis.Registry, fallbacks [3]fallbackFunc, opts []Option) (*Visitor, error) {
	s := &settings{}
	copy(s.fallbacks[:], fallbacks[:])
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	for _, c := range s.creates {
		if c != nil {
			return nil, ErrWrongKind
		}
	}
	if s.fallbacks[3] != nil {
		return nil, ErrWrongKind
	}

	c, err := assemble(apis.KindVisit, base, prev, s)
	if err != nil {
		return nil, err
	}
	v := &Visitor{core: c}
	copy(v.fallbacks[:], s.fallbacks[:3])
	return v, nil
}

// Fallback is the hook run when a dispatch without extra parameters fails and
// the visitor does not rethrow. Without a hook set by the Fallback option it
// does nothing.
func (v *Visitor) Fallback(value any, err error) {
	v.fallback(value, err, nil)
}

// Fallback1 is the one-parameter hook. Unless set by Fallback1 it drops p1
// and calls Fallback.
func (v *Visitor) Fallback1(value any, err error, p1 any) {
	v.fallback(value, err, []any{p1})
}

// Fallback2 is the two-parameter hook. Unless set by Fallback2 it drops p2
// and calls Fallback1.
func (v *Visitor) Fallback2(value any, err error, p1, p2 any) {
	v.fallback(value, err, []any{p1, p2})
}

// fallback walks the arity chain down from len(params) and runs the first
// hook that is set.
func (v *Visitor) fallback(value any, err error, params []any) {
	for n := len(params); n >= 0; n-- {
		if fn := v.fallbacks[n]; fn != nil {
			fn(value, err, params[:n])
			return
		}
	}
}

// dispatch resolves and runs the handler for value, or applies the failure policy.
func (v *Visitor) dispatch(ep extension, params []any) error {
	if v == nil {
		return ErrNilVisitor
	}
	call := newCall(ep.value, ep.typ, params)
	if h, ok := v.resolve(call); ok {
		// Handler errors are the caller's, never the fallback's.
		_, err := h.Invoke(call.Value, call.Params)
		return err
	}

	derr := &DispatchError{Reason: NoMatchingHandler, Key: call.Key}
	if v.cfg.Rethrow {
		v.entry(derr).Debug("vfx: dispatch failed")
		return derr
	}
	v.entry(derr).Debug("vfx: dispatch failed, running fallback")
	v.fallback(ep.value, derr, params)
	return nil
}

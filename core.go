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
	uref "dirpx.dev/vfx/utils/reflect"
)

// core is the part shared by Visitor and Factory: a sealed handler table,
// the resolver over it and the configuration it was built for.
// It is never mutated after assemble returns.
type core struct {
	cfg apis.Config
	bld apis.Builder
	log logrus.FieldLogger
	reg apis.Registry
	res apis.Resolver
}

// assemble builds a core of the given kind from base and opts.
// prev, when non-nil, contributes its handlers first (Derive).
func assemble(kind apis.Kind, base core, prev apis.Registry, s *settings) (core, error) {
	c := core{
		cfg: config.Apply(base.cfg, s.cfgOpts...),
		bld: base.bld,
		log: base.log,
	}
	if s.bld != nil {
		c.bld = s.bld
	}
	if s.log != nil {
		c.log = s.log
	}

	for _, h := range s.handlers {
		if h.Kind != kind {
			return core{}, ErrWrongKind
		}
	}

	reg := c.bld.BuildRegistry(c.cfg, prev)
	if reg == nil {
		return core{}, ErrNilRegistry
	}
	for _, h := range s.handlers {
		if err := reg.Register(h); err != nil {
			return core{}, &RegistrationError{Key: h.Key, Err: err}
		}
	}
	reg.Seal()

	res := c.bld.BuildResolver(c.cfg, reg)
	if res == nil {
		return core{}, ErrNilResolver
	}
	c.reg, c.res = reg, res
	return c, nil
}

// defaults returns a core seeded from the process-wide snapshot.
func defaults() core {
	s := st.Load()
	return core{cfg: s.cfg, bld: s.bld, log: s.log}
}

// resolve finds the handler for a call, if any.
func (c *core) resolve(call apis.Call) (apis.Handler, bool) {
	if c.res == nil {
		return apis.Handler{}, false
	}
	return c.res.Resolve(call, c.cfg)
}

// Config returns the configuration the dispatcher was built with.
func (c *core) Config() apis.Config {
	return c.cfg
}

// Rethrow reports whether resolution failures are returned as errors.
func (c *core) Rethrow() bool {
	return c.cfg.Rethrow
}

// Entries returns the registered handlers in registration order.
func (c *core) Entries() []apis.Handler {
	if c.reg == nil {
		return nil
	}
	return c.reg.Entries()
}

// Handles reports whether a call with runtime types k would resolve to a
// handler without going through the fallback chain. Only exact keys are
// checked; the optional strategies need the argument values.
func (c *core) Handles(k apis.Key) bool {
	if c.reg == nil {
		return false
	}
	_, ok := c.reg.Lookup(k)
	return ok
}

// entry returns a log entry describing a failed dispatch.
func (c *core) entry(derr *DispatchError) *logrus.Entry {
	log := c.log
	if log == nil {
		log = discardLogger()
	}
	fields := logrus.Fields{
		"visited": uref.TypeName(derr.Key.Visited),
		"arity":   derr.Key.Arity,
		"reason":  derr.Reason.String(),
	}
	if derr.Want != nil {
		fields["want"] = uref.TypeName(derr.Want)
	}
	if derr.Got != nil {
		fields["got"] = uref.TypeName(derr.Got)
	}
	return log.WithFields(fields)
}

// newCall builds a call using the runtime type recorded by the extension point.
func newCall(value any, vt reflect.Type, params []any) apis.Call {
	k := apis.Key{Visited: vt, Arity: len(params)}
	for i, p := range params {
		k.Params[i] = reflect.TypeOf(p)
	}
	return apis.Call{Key: k, Value: value, Params: params}
}

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

package builder

import (
	"dirpx.dev/vfx/apis"
	"dirpx.dev/vfx/registry"
	"dirpx.dev/vfx/resolver"
	"dirpx.dev/vfx/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new, unsealed apis.Registry. If a previous
// registry is provided, its handlers are copied into the new one in their
// original order.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg)
	if prev != nil {
		for _, h := range prev.Entries() {
			_ = nreg.Register(h)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver over reg. Every strategy
// is part of the chain; the optional ones consult the config on each call.
func (b *builder) BuildResolver(_ apis.Config, reg apis.Registry) apis.Resolver {
	return resolver.New(
		strategy.NewExactStrategy(reg),
		strategy.NewUnwrapStrategy(reg),
		strategy.NewAssignableStrategy(reg),
	)
}

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
	"dirpx.dev/vfx/apis"
)

// NewExactStrategy creates an apis.Strategy that looks up the call's exact
// (visited, params) key in reg.
func NewExactStrategy(reg apis.Registry) apis.Strategy {
	return &exactStrategy{reg: reg}
}

// exactStrategy is the primary path: the runtime types of the visited value
// and of every parameter must equal the registered key.
type exactStrategy struct {
	reg apis.Registry
}

// Ensure exactStrategy implements apis.Strategy.
var _ apis.Strategy = (*exactStrategy)(nil)

// TryResolve looks up c.Key in the registry.
func (s *exactStrategy) TryResolve(c apis.Call, _ apis.Config) (apis.Handler, bool) {
	if s.reg == nil {
		return apis.Handler{}, false
	}
	return s.reg.Lookup(c.Key)
}

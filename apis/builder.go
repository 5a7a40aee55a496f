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

// Builder composes Registry and Resolver from a Config.
// Implementations may migrate handlers from a previous registry, or ignore it.
type Builder interface {
	// BuildRegistry constructs an unsealed Registry for Config.
	// If prev is non-nil its handlers are carried over.
	BuildRegistry(cfg Config, prev Registry) Registry
	// BuildResolver constructs a Resolver over reg.
	// The registry is expected to be sealed before the resolver is used.
	BuildResolver(cfg Config, reg Registry) Resolver
}

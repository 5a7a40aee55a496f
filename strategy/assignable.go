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
	"sync"

	"dirpx.dev/vfx/apis"
	uref "dirpx.dev/vfx/utils/reflect"
)

// NewAssignableStrategy creates an apis.Strategy that accepts handlers whose
// declared types the call's runtime types are assignable to.
// The registry must be sealed before the strategy is used; results are
// memoized per key.
func NewAssignableStrategy(reg apis.Registry) apis.Strategy {
	return &assignableStrategy{reg: reg}
}

// assignableStrategy scores every handler of the call's arity whose declared
// types accept the runtime types. The score is the number of exactly matching
// positions; the unique best score wins and a tie resolves to nothing.
type assignableStrategy struct {
	reg apis.Registry
	// memo maps apis.Key to the chosen handler, or to miss.
	memo sync.Map
}

// miss marks a memoized key with no unique candidate.
type miss struct{}

// Ensure assignableStrategy implements apis.Strategy.
var _ apis.Strategy = (*assignableStrategy)(nil)

// TryResolve picks the most specific assignable handler for c.
func (s *assignableStrategy) TryResolve(c apis.Call, cfg apis.Config) (apis.Handler, bool) {
	if !cfg.MatchAssignable || s.reg == nil {
		return apis.Handler{}, false
	}
	if v, ok := s.memo.Load(c.Key); ok {
		h, hit := v.(apis.Handler)
		return h, hit
	}

	h, ok := s.pick(c.Key)
	if ok {
		s.memo.Store(c.Key, h)
	} else {
		s.memo.Store(c.Key, miss{})
	}
	return h, ok
}

// pick scans the registry for the best candidate.
func (s *assignableStrategy) pick(k apis.Key) (apis.Handler, bool) {
	best, bestScore, tie := apis.Handler{}, -1, false
	for _, h := range s.reg.Entries() {
		score, ok := match(h.Key, k)
		if !ok {
			continue
		}
		switch {
		case score > bestScore:
			best, bestScore, tie = h, score, false
		case score == bestScore:
			tie = true
		}
	}
	if bestScore < 0 || tie {
		return apis.Handler{}, false
	}
	return best, true
}

// match reports whether got fits the declared key and how many positions are exact.
func match(declared, got apis.Key) (int, bool) {
	if declared.Arity != got.Arity {
		return 0, false
	}
	score := 0
	if !uref.Accepts(declared.Visited, got.Visited) {
		return 0, false
	}
	if declared.Visited == got.Visited {
		score++
	}
	for i := 0; i < declared.Arity; i++ {
		if !uref.Accepts(declared.Params[i], got.Params[i]) {
			return 0, false
		}
		if declared.Params[i] == got.Params[i] {
			score++
		}
	}
	return score, true
}

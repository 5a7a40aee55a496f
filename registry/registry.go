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

package registry

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/vfx/apis"
)

var (
	// ErrNilHandler is returned when a handler without an Invoke func is provided.
	ErrNilHandler = errors.New("vfx(registry): nil handler provided")
	// ErrInvalidKey is returned when a handler key has an out-of-range arity.
	ErrInvalidKey = errors.New("vfx(registry): invalid handler key")
	// ErrConflictingRegistration indicates an attempt to register a second
	// handler for the same key.
	ErrConflictingRegistration = errors.New("vfx(registry): conflicting handler registration")
	// ErrSealed is returned when registering into a sealed registry.
	ErrSealed = errors.New("vfx(registry): registry is sealed")
)

// New constructs an empty, unsealed Registry.
// The configuration is accepted for symmetry with the builder; lookups are
// always by exact key.
func New(_ apis.Config) apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and the ordered entry list.
	mu sync.Mutex
	// m maps apis.Key to apis.Handler.
	m sync.Map // map[apis.Key]apis.Handler
	// order keeps registration order for Entries.
	order []apis.Handler
	// sealed is set once by Seal.
	sealed atomic.Bool
}

// Register adds h under h.Key.
func (r *registry) Register(h apis.Handler) error {
	// Validate inputs early.
	if h.Invoke == nil {
		return ErrNilHandler
	}
	if !h.Valid() {
		return ErrInvalidKey
	}
	if r.sealed.Load() {
		return ErrSealed
	}

	// Fast read path: conflict check without locking.
	if _, ok := r.m.Load(h.Key); ok {
		return ErrConflictingRegistration
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored or sealed meanwhile.
	if r.sealed.Load() {
		return ErrSealed
	}
	if _, ok := r.m.Load(h.Key); ok {
		return ErrConflictingRegistration
	}

	r.m.Store(h.Key, h)
	r.order = append(r.order, h)
	return nil
}

// Lookup returns the handler registered for exactly k.
func (r *registry) Lookup(k apis.Key) (apis.Handler, bool) {
	if v, ok := r.m.Load(k); ok {
		return v.(apis.Handler), true
	}
	return apis.Handler{}, false
}

// Entries returns a snapshot in registration order.
func (r *registry) Entries() []apis.Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]apis.Handler, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of registered handlers.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Seal closes the registry.
func (r *registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed.Store(true)
}

// Sealed reports whether the registry is closed.
func (r *registry) Sealed() bool {
	return r.sealed.Load()
}

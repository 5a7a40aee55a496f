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
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"dirpx.dev/vfx/apis"
	"dirpx.dev/vfx/builder"
	"dirpx.dev/vfx/config"
)

// init publishes the default snapshot.
func init() {
	st.Store(defaultState())
}

// defaultState returns the snapshot used at startup and by Reset.
func defaultState() *state {
	return &state{
		cfg: config.DefaultConfig(),
		bld: builder.New(),
		log: discardLogger(),
	}
}

// discardLogger returns a logger that drops every entry.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Config returns the process-wide default configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the process-wide default configuration.
// Visitors and factories built afterwards start from cfg; existing ones are
// not affected.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: cfg, bld: old.bld, log: old.log})
}

// Builder returns the process-wide default builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the process-wide default builder. A nil b is ignored.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, bld: b, log: old.log})
}

// Logger returns the process-wide default logger.
func Logger() logrus.FieldLogger {
	return st.Load().log
}

// SetLogger sets the process-wide default logger.
// A nil l restores the discarding logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discardLogger()
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, bld: old.bld, log: l})
}

// SetAll replaces the defaults in one step.
// Nil arguments leave the corresponding component unchanged.
func SetAll(cfg *apis.Config, bld apis.Builder, log logrus.FieldLogger) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	if log != nil {
		next.log = log
	}
	st.Store(&next)
}

// Reset restores the startup defaults. Mainly used by tests.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(defaultState())
}

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the global vfx state.
var st atomic.Pointer[state]

// state is the process-wide defaults snapshot.
// Immutable once published via st.Store; writers create a new state and swap it.
type state struct {
	// cfg is the default configuration.
	cfg apis.Config
	// bld builds registries and resolvers for new dispatchers.
	bld apis.Builder
	// log receives dispatch diagnostics.
	log logrus.FieldLogger
}

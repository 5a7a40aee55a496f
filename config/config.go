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

package config

import (
	"dirpx.dev/vfx/apis"
)

const (
	// DefaultRethrow represents the default for Rethrow.
	// Resolution failures are routed to the fallback chain.
	DefaultRethrow = false
	// DefaultUnwrapPointers represents the default for UnwrapPointers.
	// Only exact runtime types match.
	DefaultUnwrapPointers = false
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMatchAssignable represents the default for MatchAssignable.
	DefaultMatchAssignable = false
	// DefaultConvertNumeric represents the default for ConvertNumeric.
	DefaultConvertNumeric = false
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Rethrow:         DefaultRethrow,
		UnwrapPointers:  DefaultUnwrapPointers,
		MaxUnwrap:       DefaultMaxUnwrap,
		MatchAssignable: DefaultMatchAssignable,
		ConvertNumeric:  DefaultConvertNumeric,
	}
}

// Apply returns a copy of base with opts applied.
func Apply(base apis.Config, opts ...Option) apis.Config {
	for _, opt := range opts {
		opt(&base)
	}
	if base.MaxUnwrap < 0 {
		base.MaxUnwrap = DefaultMaxUnwrap
	}
	return base
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithRethrow sets the Rethrow option.
func WithRethrow(rethrow bool) Option {
	return func(c *apis.Config) {
		c.Rethrow = rethrow
	}
}

// WithUnwrapPointers sets the UnwrapPointers option.
func WithUnwrapPointers(unwrap bool) Option {
	return func(c *apis.Config) {
		c.UnwrapPointers = unwrap
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMatchAssignable sets the MatchAssignable option.
func WithMatchAssignable(match bool) Option {
	return func(c *apis.Config) {
		c.MatchAssignable = match
	}
}

// WithConvertNumeric sets the ConvertNumeric option.
func WithConvertNumeric(convert bool) Option {
	return func(c *apis.Config) {
		c.ConvertNumeric = convert
	}
}

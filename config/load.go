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
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/vfx/apis"
)

// file is the YAML shape of a dispatch configuration.
// Absent fields keep their default values.
type file struct {
	Rethrow         *bool `yaml:"rethrow"`
	UnwrapPointers  *bool `yaml:"unwrapPointers"`
	MaxUnwrap       *int  `yaml:"maxUnwrap"`
	MatchAssignable *bool `yaml:"matchAssignable"`
	ConvertNumeric  *bool `yaml:"convertNumeric"`
}

// options turns the set fields of f into options, in declaration order.
func (f *file) options() []Option {
	var opts []Option
	if f.Rethrow != nil {
		opts = append(opts, WithRethrow(*f.Rethrow))
	}
	if f.UnwrapPointers != nil {
		opts = append(opts, WithUnwrapPointers(*f.UnwrapPointers))
	}
	if f.MaxUnwrap != nil {
		opts = append(opts, WithMaxUnwrap(*f.MaxUnwrap))
	}
	if f.MatchAssignable != nil {
		opts = append(opts, WithMatchAssignable(*f.MatchAssignable))
	}
	if f.ConvertNumeric != nil {
		opts = append(opts, WithConvertNumeric(*f.ConvertNumeric))
	}
	return opts
}

// LoadFile reads a YAML configuration from path.
func LoadFile(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a YAML configuration overlaid on DefaultConfig.
// The path argument is used only for error messages. Unknown fields are rejected
// and an empty document yields the defaults.
func Parse(data []byte, path string) (apis.Config, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return apis.Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if f.MaxUnwrap != nil && *f.MaxUnwrap < 0 {
		return apis.Config{}, fmt.Errorf("parsing %s: maxUnwrap must not be negative, got %d", path, *f.MaxUnwrap)
	}
	return NewConfig(f.options()...), nil
}

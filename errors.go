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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/vfx/apis"
	uref "dirpx.dev/vfx/utils/reflect"
)

var (
	// ErrNoMatchingHandler is the sentinel behind NoMatchingHandler dispatch errors.
	ErrNoMatchingHandler = errors.New("vfx: no matching handler")
	// ErrResultTypeMismatch is the sentinel behind ResultTypeMismatch dispatch errors.
	ErrResultTypeMismatch = errors.New("vfx: result type mismatch")
	// ErrNilVisitor is returned when dispatching to a nil *Visitor.
	ErrNilVisitor = errors.New("vfx: nil visitor")
	// ErrNilFactory is returned when dispatching to a nil *Factory.
	ErrNilFactory = errors.New("vfx: nil factory")
	// ErrWrongKind is returned when a factory option is given to a visitor or
	// the other way round.
	ErrWrongKind = errors.New("vfx: option does not apply to this kind of dispatcher")
)

// Reason classifies a dispatch failure.
type Reason uint8

const (
	// NoMatchingHandler means no registered handler accepts the runtime
	// types of the visited value and parameters.
	NoMatchingHandler Reason = iota + 1
	// ResultTypeMismatch means a factory handler ran but its result cannot be
	// converted to the requested result type.
	ResultTypeMismatch
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case NoMatchingHandler:
		return "NoMatchingHandler"
	case ResultTypeMismatch:
		return "ResultTypeMismatch"
	default:
		return fmt.Sprintf("Reason(%d)", uint8(r))
	}
}

// Err returns the sentinel error for r.
func (r Reason) Err() error {
	switch r {
	case NoMatchingHandler:
		return ErrNoMatchingHandler
	case ResultTypeMismatch:
		return ErrResultTypeMismatch
	default:
		return nil
	}
}

// DispatchError reports a resolution failure. It is the error returned by a
// rethrowing visitor or factory and the error handed to fallbacks.
// errors.Is matches it against ErrNoMatchingHandler or ErrResultTypeMismatch.
type DispatchError struct {
	// Reason is the failure kind.
	Reason Reason
	// Key holds the runtime types of the visited value and parameters.
	Key apis.Key
	// Want is the requested result type. Nil for visitors.
	Want reflect.Type
	// Got is the type of the value the handler produced (ResultTypeMismatch only).
	Got reflect.Type
}

// Error implements error.
func (e *DispatchError) Error() string {
	switch e.Reason {
	case ResultTypeMismatch:
		return fmt.Sprintf("vfx: result type mismatch: handler for %s produced %s, want %s",
			keyName(e.Key), uref.TypeName(e.Got), uref.TypeName(e.Want))
	case NoMatchingHandler:
		if e.Want != nil {
			return fmt.Sprintf("vfx: no matching handler for %s producing %s", keyName(e.Key), uref.TypeName(e.Want))
		}
		return fmt.Sprintf("vfx: no matching handler for %s", keyName(e.Key))
	default:
		return fmt.Sprintf("vfx: dispatch failed for %s: %s", keyName(e.Key), e.Reason)
	}
}

// Unwrap returns the reason sentinel.
func (e *DispatchError) Unwrap() error {
	return e.Reason.Err()
}

// keyName renders k with short type names: "pkg.Type(int, string)".
func keyName(k apis.Key) string {
	var b strings.Builder
	b.WriteString(uref.TypeName(k.Visited))
	b.WriteByte('(')
	for i, p := range k.ParamTypes() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(uref.TypeName(p))
	}
	b.WriteByte(')')
	return b.String()
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("vfx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("vfx: builder returned nil resolver")
)

// RegistrationError reports a handler the registry refused while a visitor or
// factory was being built.
type RegistrationError struct {
	// Key is the key of the refused handler.
	Key apis.Key
	// Err is the registry error.
	Err error
}

// Error implements error.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("vfx: cannot register handler for %s: %v", keyName(e.Key), e.Err)
}

// Unwrap returns the registry error.
func (e *RegistrationError) Unwrap() error {
	return e.Err
}

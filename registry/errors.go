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
	"fmt"

	"dirpx.dev/macroable/apis"
)

var (
	// ErrInvalidParameter is returned when a registration receives an
	// unusable name or value.
	ErrInvalidParameter = errors.New("macroable(registry): invalid parameter")
	// ErrMisconfiguredClass is returned when a class is used before its own
	// macro and getter mappings were initialized.
	ErrMisconfiguredClass = errors.New(`macroable(registry): class must initialize its own "macros" and "getters" mappings before use`)
	// ErrNameCollision is returned when a registration would shadow a
	// native exported method of the host type.
	ErrNameCollision = errors.New("macroable(registry): name collides with a native method")
	// ErrReadOnly is returned when writing an instance member that cannot be
	// assigned: a materialized singleton or a getter without a setter.
	ErrReadOnly = errors.New("macroable(registry): member is read-only")
)

// ParameterError describes a rejected registration argument.
type ParameterError struct {
	// Class is the name of the class the registration targeted.
	Class string
	// Op is the registration kind.
	Op apis.Kind
	// Member is the requested member name.
	Member string
	// Got is the runtime type of the rejected value ("" for name errors).
	Got string
}

// Error implements error.
func (e *ParameterError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("macroable(registry): %s.%s expects a non-empty name", e.Class, e.Op)
	}
	return fmt.Sprintf("macroable(registry): %s.%s(%q) expects callback to be a function instead received {%s}",
		e.Class, e.Op, e.Member, e.Got)
}

// Unwrap lets errors.Is match ErrInvalidParameter.
func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

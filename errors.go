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

package macroable

import (
	"errors"

	"dirpx.dev/macroable/registry"
)

// Registration and construction errors, shared with the registry package so
// errors.Is works against either name.
var (
	ErrInvalidParameter   = registry.ErrInvalidParameter
	ErrMisconfiguredClass = registry.ErrMisconfiguredClass
	ErrNameCollision      = registry.ErrNameCollision
	ErrReadOnly           = registry.ErrReadOnly
)

var (
	// ErrUnknownMember is returned by Call when nothing resolves under the name.
	ErrUnknownMember = errors.New("macroable: unknown member")
	// ErrNotCallable is returned by Call when the member is not a function.
	ErrNotCallable = errors.New("macroable: member is not callable")
	// ErrBadArguments is returned by Call when the arguments do not match
	// the function signature.
	ErrBadArguments = errors.New("macroable: arguments do not match signature")
	// ErrUnnamedClass is returned when tracking a class without a name.
	ErrUnnamedClass = errors.New("macroable: class has no name")
	// ErrConflictingClass is returned when tracking a different class under
	// a name that is already taken.
	ErrConflictingClass = errors.New("macroable: conflicting class name")
)

// ParameterError describes a rejected registration argument.
type ParameterError = registry.ParameterError

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

// Config carries the knobs that shape a class's registry and its naming.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// StrictLookup makes HasMacro/HasGetter also verify that the class
	// surface still carries the member, so a member removed out-of-band
	// is reported absent even if the mapping holds a stale entry.
	StrictLookup bool

	// RequireCallable rejects macro values that are not functions.
	// Getters are always functions by signature.
	RequireCallable bool

	// GuardNative rejects registrations whose name matches an exported
	// method of the host Go type. Off by default: such names are not members
	// of the class surface, so registering them shadows nothing.
	GuardNative bool

	// IncludeBuiltins controls whether builtin/no-package host types
	// (e.g., "int", "string") produce a derived class name. If false, such
	// hosts derive "" and must be named explicitly.
	IncludeBuiltins bool

	// MaxUnwrap limits container unwrapping depth (ptr/slice/array/chan/map)
	// when looking for the host's nearest named type.
	MaxUnwrap int

	// MapPreferElem controls which side of map[K]V is considered “primary”
	// when searching for a nearest named inner type. If true, prefer V; otherwise K.
	MapPreferElem bool
}

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

// Kind tells which mapping a registry entry belongs to.
type Kind uint8

const (
	// KindMacro marks a value or function attached as-is to the class surface.
	KindMacro Kind = iota + 1
	// KindGetter marks a computed member evaluated on read.
	KindGetter
)

// String returns the lower-case operation name used in errors and logs.
func (k Kind) String() string {
	switch k {
	case KindMacro:
		return "macro"
	case KindGetter:
		return "getter"
	default:
		return "unknown"
	}
}

// GetterFunc computes a member value with the accessing instance as receiver.
type GetterFunc[R any] func(self R) any

// Registry is the class-owned pair of mappings (macros and getters) together
// with the operations that apply them to the class surface.
//
// Every operation acts only on the owning class; parents and siblings are
// never touched. Implementations must keep the mappings and the surface
// consistent: no caller may observe a mapping key without its member.
type Registry[R any] interface {
	// Macro stores value under name and installs it on the surface,
	// replacing any member of that name.
	Macro(name string, value any) error
	// Getter stores fn under name and installs it as a computed member.
	// When singleton is true the value is materialized on the instance
	// after its first read.
	Getter(name string, fn GetterFunc[R], singleton bool) error
	// GetMacro returns the stored macro value, if any.
	GetMacro(name string) (any, bool)
	// GetGetter returns the stored getter, if any. For singleton
	// registrations this is the caching wrapper, not the raw function.
	GetGetter(name string) (GetterFunc[R], bool)
	// HasMacro reports whether name is a registered macro.
	HasMacro(name string) bool
	// HasGetter reports whether name is a registered getter.
	HasGetter(name string) bool
	// Hydrate removes every registered member from the surface and
	// resets both mappings to empty.
	Hydrate()
	// Entries returns a snapshot of both mappings sorted by name.
	Entries() []Entry
	// Count returns the number of registered entries across both mappings.
	Count() int
}

// Entry is a single registered member in a Registry snapshot.
type Entry struct {
	// Name is the member name.
	Name string
	// Kind is the mapping the member lives in.
	Kind Kind
	// Singleton is set for getters cached per instance.
	Singleton bool
}

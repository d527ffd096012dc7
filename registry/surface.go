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
	"sort"
	"sync"

	"dirpx.dev/macroable/apis"
)

// Member is a single installed entry of a Surface.
type Member[R any] struct {
	// Kind is KindMacro for plain values and KindGetter for computed members.
	Kind apis.Kind
	// Value holds the macro value. Unused for getters.
	Value any
	// Get computes the member for a receiver. Unused for macros.
	Get apis.GetterFunc[R]
}

// Resolve returns the member value as seen from self.
func (m Member[R]) Resolve(self R) any {
	if m.Kind == apis.KindGetter {
		return m.Get(self)
	}
	return m.Value
}

// Surface is the shared behavior table of a class. Instances of the class
// and of every subclass resolve members through it, so an installed member
// is visible to existing and future instances without per-instance storage.
type Surface[R any] struct {
	parent *Surface[R]

	mu      sync.RWMutex
	members map[string]Member[R]
}

// NewSurface creates an empty surface chained to parent (which may be nil).
func NewSurface[R any](parent *Surface[R]) *Surface[R] {
	return &Surface[R]{parent: parent, members: make(map[string]Member[R])}
}

// Parent returns the surface this one falls back to.
func (s *Surface[R]) Parent() *Surface[R] {
	return s.parent
}

// Lookup walks this surface and then its parents.
func (s *Surface[R]) Lookup(name string) (Member[R], bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if m, ok := cur.own(name); ok {
			return m, true
		}
	}
	return Member[R]{}, false
}

// Has reports whether name resolves anywhere along the chain.
func (s *Surface[R]) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// HasOwn reports whether name is installed on this surface itself.
func (s *Surface[R]) HasOwn(name string) bool {
	_, ok := s.own(name)
	return ok
}

// Names returns the names installed on this surface, sorted.
func (s *Surface[R]) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.members))
	for n := range s.members {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Delete removes name from this surface only. It does not touch the
// registry mappings; a registry with StrictLookup reports the member absent
// afterwards.
func (s *Surface[R]) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[name]
	delete(s.members, name)
	return ok
}

func (s *Surface[R]) own(name string) (Member[R], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[name]
	return m, ok
}

func (s *Surface[R]) install(name string, m Member[R]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members[name] = m
}

// strip removes every name in one critical section.
func (s *Surface[R]) strip(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		delete(s.members, n)
	}
}

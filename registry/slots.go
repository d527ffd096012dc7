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

	"golang.org/x/sync/singleflight"

	"dirpx.dev/macroable/apis"
)

// NewSlots returns empty per-instance storage.
func NewSlots() *Slots {
	return &Slots{m: make(map[string]slot)}
}

// Slots implements apis.Slots. Concurrent first reads of the same singleton
// name are collapsed into a single computation; the first stored value wins.
type Slots struct {
	mu sync.RWMutex
	m  map[string]slot
	sf singleflight.Group
}

// slot is one own value; fixed slots came from a singleton getter.
type slot struct {
	value any
	fixed bool
}

// Ensure Slots implements apis.Slots.
var _ apis.Slots = (*Slots)(nil)

// Load returns the own value stored under name.
func (s *Slots) Load(name string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.m[name]
	return sl.value, ok
}

// Fixed reports whether name holds a materialized singleton value.
func (s *Slots) Fixed(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[name].fixed
}

// Materialize returns the value under name, computing it at most once.
func (s *Slots) Materialize(name string, compute func() any) any {
	if v, ok := s.Load(name); ok {
		return v
	}
	v, _, _ := s.sf.Do(name, func() (any, error) {
		if v, ok := s.Load(name); ok {
			return v, nil
		}
		v := compute()

		s.mu.Lock()
		defer s.mu.Unlock()
		// A concurrent Store may have landed while computing.
		if cur, ok := s.m[name]; ok {
			return cur.value, nil
		}
		s.m[name] = slot{value: v, fixed: true}
		return v, nil
	})
	return v
}

// Store writes a writable own value. Materialized singleton slots are
// read-only and yield ErrReadOnly.
func (s *Slots) Store(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.m[name].fixed {
		return ErrReadOnly
	}
	s.m[name] = slot{value: v}
	return nil
}

// Names returns the own slot names, sorted.
func (s *Slots) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.m))
	for n := range s.m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

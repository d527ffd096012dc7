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
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"

	"dirpx.dev/macroable/config"
)

// init publishes the initial snapshot: default config, empty catalog.
func init() {
	st.Store(&state{cfg: config.DefaultConfig(), classes: map[string]Tracked{}})
}

// Tracked is what the process catalog needs from a class. *Class[T]
// implements it for every T.
type Tracked interface {
	// Name returns the class name the catalog is keyed by.
	Name() string
	// Check reports whether the class initialized its own registry.
	Check() error
	// Count returns the number of registered members.
	Count() int
	// Hydrate clears the class registry and its surface.
	Hydrate()
}

// Ensure Class implements Tracked.
var _ Tracked = (*Class[struct{}])(nil)

// Config returns the process default configuration used by Define.
func Config() config.Config {
	return st.Load().cfg
}

// SetConfig replaces the process default configuration. Classes that were
// already defined keep the config they were built with.
func SetConfig(cfg config.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: cfg, classes: old.classes})
}

// Track adds c to the process catalog. Tracking the same class again is a
// no-op; tracking a different class under a taken name fails with
// ErrConflictingClass.
func Track(c Tracked) error {
	if c == nil {
		return ErrUnnamedClass
	}
	name := c.Name()
	if name == "" {
		return ErrUnnamedClass
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	if cur, ok := old.classes[name]; ok {
		if cur == c {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrConflictingClass, name)
	}

	next := make(map[string]Tracked, len(old.classes)+1)
	for k, v := range old.classes {
		next[k] = v
	}
	next[name] = c
	st.Store(&state{cfg: old.cfg, classes: next})
	return nil
}

// Untrack removes the class tracked under name. It reports whether a class
// was removed.
func Untrack(name string) bool {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	if _, ok := old.classes[name]; !ok {
		return false
	}
	next := make(map[string]Tracked, len(old.classes))
	for k, v := range old.classes {
		if k != name {
			next[k] = v
		}
	}
	st.Store(&state{cfg: old.cfg, classes: next})
	return true
}

// Lookup returns the class tracked under name.
func Lookup(name string) (Tracked, bool) {
	c, ok := st.Load().classes[name]
	return c, ok
}

// LookupClass returns the tracked class under name if it describes T.
func LookupClass[T any](name string) (*Class[T], bool) {
	c, ok := Lookup(name)
	if !ok {
		return nil, false
	}
	cls, ok := c.(*Class[T])
	return cls, ok
}

// Names returns the tracked class names, sorted.
func Names() []string {
	classes := st.Load().classes
	out := make([]string, 0, len(classes))
	for n := range classes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// HydrateAll hydrates every tracked class. Classes that fail Check are
// skipped and their errors are combined in the result.
func HydrateAll() error {
	var err error
	for _, name := range Names() {
		c, ok := Lookup(name)
		if !ok {
			continue
		}
		if cerr := c.Check(); cerr != nil {
			err = multierr.Append(err, cerr)
			continue
		}
		c.Hydrate()
	}
	return err
}

// Reset restores the default config and empties the catalog. Tracked
// classes are not hydrated.
func Reset() {
	buildMu.Lock()
	defer buildMu.Unlock()
	st.Store(&state{cfg: config.DefaultConfig(), classes: map[string]Tracked{}})
}

// buildMu serializes writers so we never publish partially-built snapshots.
var buildMu sync.Mutex

// st is the current process snapshot.
var st atomic.Pointer[state]

// state is an immutable snapshot published atomically via st.Store; never
// mutate fields of a published state.
type state struct {
	// cfg is the default config for Define.
	cfg config.Config
	// classes maps class names to tracked classes.
	classes map[string]Tracked
}

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
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/macroable/apis"
	"dirpx.dev/macroable/config"
)

// New constructs the extension registry of one class. Registered members are
// installed on surface; reserved lists names that GuardNative protects.
// A nil surface gets a fresh root surface.
func New[R apis.Owner](class string, cfg config.Config, surface *Surface[R], reserved []string) *Registry[R] {
	if surface == nil {
		surface = NewSurface[R](nil)
	}
	res := make(map[string]struct{}, len(reserved))
	for _, n := range reserved {
		res[n] = struct{}{}
	}
	return &Registry[R]{
		class:    class,
		cfg:      cfg,
		log:      cfg.Log().With(zap.String("class", class)),
		surface:  surface,
		reserved: res,
		macros:   make(map[string]any),
		getters:  make(map[string]getter[R]),
	}
}

// Registry implements apis.Registry for a single class.
//
// Re-registering a getter replaces the mapping entry and the surface member
// only. Values a singleton getter already materialized on existing instances
// are kept; only instances that have not read the member yet observe the new
// function.
type Registry[R apis.Owner] struct {
	class    string
	cfg      config.Config
	log      *zap.Logger
	surface  *Surface[R]
	reserved map[string]struct{}

	// mu guards both mappings and orders every surface mutation made
	// through the registry.
	mu      sync.RWMutex
	macros  map[string]any
	getters map[string]getter[R]
}

// getter is a stored getter registration.
type getter[R any] struct {
	fn        apis.GetterFunc[R]
	singleton bool
}

// Ensure Registry implements apis.Registry.
var _ apis.Registry[apis.Owner] = (*Registry[apis.Owner])(nil)

// Class returns the owning class name.
func (r *Registry[R]) Class() string {
	return r.class
}

// Config returns the configuration the registry was built with.
func (r *Registry[R]) Config() config.Config {
	return r.cfg
}

// Surface returns the surface the registry installs members on.
func (r *Registry[R]) Surface() *Surface[R] {
	return r.surface
}

// Macro stores value under name and installs it on the surface.
func (r *Registry[R]) Macro(name string, value any) error {
	if err := r.check(apis.KindMacro, name, value); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, replaced := r.macros[name]
	if _, ok := r.getters[name]; ok {
		delete(r.getters, name)
		replaced = true
	}
	r.macros[name] = value
	r.surface.install(name, Member[R]{Kind: apis.KindMacro, Value: value})

	r.log.Debug("macro registered",
		zap.String("member", name),
		zap.String("type", fmt.Sprintf("%T", value)),
		zap.Bool("replaced", replaced),
	)
	return nil
}

// Getter stores fn under name and installs it as a computed member.
func (r *Registry[R]) Getter(name string, fn apis.GetterFunc[R], singleton bool) error {
	var v any
	if fn != nil {
		v = fn
	}
	if err := r.check(apis.KindGetter, name, v); err != nil {
		return err
	}

	get := fn
	if singleton {
		get = func(self R) any {
			return self.Slots().Materialize(name, func() any { return fn(self) })
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, replaced := r.getters[name]
	if _, ok := r.macros[name]; ok {
		delete(r.macros, name)
		replaced = true
	}
	r.getters[name] = getter[R]{fn: get, singleton: singleton}
	r.surface.install(name, Member[R]{Kind: apis.KindGetter, Get: get})

	r.log.Debug("getter registered",
		zap.String("member", name),
		zap.Bool("singleton", singleton),
		zap.Bool("replaced", replaced),
	)
	return nil
}

// GetMacro returns the stored macro value.
func (r *Registry[R]) GetMacro(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.macros[name]
	return v, ok
}

// GetGetter returns the stored getter.
func (r *Registry[R]) GetGetter(name string) (apis.GetterFunc[R], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.getters[name]
	return g.fn, ok
}

// HasMacro reports whether name is a registered macro.
func (r *Registry[R]) HasMacro(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.macros[name]; !ok {
		return false
	}
	return r.installed(name, apis.KindMacro)
}

// HasGetter reports whether name is a registered getter.
func (r *Registry[R]) HasGetter(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.getters[name]; !ok {
		return false
	}
	return r.installed(name, apis.KindGetter)
}

// Hydrate strips every registered member from the surface and resets both
// mappings. Calling it on an empty registry is a no-op.
func (r *Registry[R]) Hydrate() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.macros) == 0 && len(r.getters) == 0 {
		return
	}

	names := make([]string, 0, len(r.macros)+len(r.getters))
	for n := range r.macros {
		names = append(names, n)
	}
	for n := range r.getters {
		names = append(names, n)
	}
	r.surface.strip(names)

	r.log.Debug("registry hydrated",
		zap.Int("macros", len(r.macros)),
		zap.Int("getters", len(r.getters)),
	)
	r.macros = make(map[string]any)
	r.getters = make(map[string]getter[R])
}

// Entries returns a snapshot of both mappings sorted by name.
func (r *Registry[R]) Entries() []apis.Entry {
	r.mu.RLock()
	out := make([]apis.Entry, 0, len(r.macros)+len(r.getters))
	for n := range r.macros {
		out = append(out, apis.Entry{Name: n, Kind: apis.KindMacro})
	}
	for n, g := range r.getters {
		out = append(out, apis.Entry{Name: n, Kind: apis.KindGetter, Singleton: g.singleton})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count returns the number of registered entries.
func (r *Registry[R]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.macros) + len(r.getters)
}

// installed applies the StrictLookup check. Caller holds r.mu.
func (r *Registry[R]) installed(name string, kind apis.Kind) bool {
	if !r.cfg.StrictLookup {
		return true
	}
	m, ok := r.surface.own(name)
	return ok && m.Kind == kind
}

// check validates a registration before any state is touched.
func (r *Registry[R]) check(kind apis.Kind, name string, value any) error {
	if name == "" {
		return &ParameterError{Class: r.class, Op: kind}
	}
	if value == nil {
		return &ParameterError{Class: r.class, Op: kind, Member: name, Got: "nil"}
	}
	rv := reflect.ValueOf(value)
	isFunc := rv.Kind() == reflect.Func
	if isFunc && rv.IsNil() {
		return &ParameterError{Class: r.class, Op: kind, Member: name, Got: fmt.Sprintf("%T", value)}
	}
	if kind == apis.KindMacro && r.cfg.RequireCallable && !isFunc {
		return &ParameterError{Class: r.class, Op: kind, Member: name, Got: fmt.Sprintf("%T", value)}
	}
	if r.cfg.GuardNative {
		if _, ok := r.reserved[name]; ok {
			return fmt.Errorf("%w: %s.%s", ErrNameCollision, r.class, name)
		}
	}
	return nil
}

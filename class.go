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
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/macroable/apis"
	"dirpx.dev/macroable/config"
	"dirpx.dev/macroable/naming"
	"dirpx.dev/macroable/registry"
)

// Class describes a host type T whose instances accept registered macros
// and getters. Its registry is owned by the class alone: subclasses created
// with Extend see the parent's members through the surface chain but keep
// separate mappings, and siblings never share registrations.
//
// The zero value, and a nil *Class, is a class that never initialized its
// mappings. Creating instances of it, or registering on it, fails with
// ErrMisconfiguredClass; lookups on it report nothing registered.
type Class[T any] struct {
	name   string
	parent *Class[T]
	reg    *registry.Registry[*Instance[T]]
}

// Define creates a root class for T with the process default config
// (see SetConfig) overridden by opts. An empty name is derived from T, and
// falls back to the Go type string when T has no nearest named type.
func Define[T any](name string, opts ...config.Option) *Class[T] {
	return newClass[T](name, config.Apply(Config(), opts...), nil)
}

// Extend creates a subclass with its own empty registry. Members registered
// on c stay visible to the subclass's instances until c hydrates them.
// The subclass starts from c's config, overridden by opts.
func (c *Class[T]) Extend(name string, opts ...config.Option) *Class[T] {
	base := Config()
	if c.ready() {
		base = c.reg.Config()
	}
	return newClass(name, config.Apply(base, opts...), c)
}

func newClass[T any](name string, cfg config.Config, parent *Class[T]) *Class[T] {
	host := reflect.TypeOf((*T)(nil)).Elem()
	if name == "" {
		name = naming.ClassName(host, cfg.Config)
	}
	if name == "" {
		name = host.String()
	}
	var reserved []string
	if cfg.GuardNative {
		reserved = naming.Methods(host, cfg.Config)
	}
	var up *registry.Surface[*Instance[T]]
	if parent.ready() {
		up = parent.reg.Surface()
	}
	c := &Class[T]{name: name, parent: parent}
	c.reg = registry.New(name, cfg, registry.NewSurface(up), reserved)
	return c
}

// ready reports whether c is non-nil and owns a registry.
func (c *Class[T]) ready() bool {
	return c != nil && c.reg != nil
}

// Name returns the class name. A zero-value class reports the Go type of
// its host.
func (c *Class[T]) Name() string {
	if c == nil || c.name == "" {
		return reflect.TypeOf((*T)(nil)).Elem().String()
	}
	return c.name
}

// Parent returns the class c was extended from, or nil.
func (c *Class[T]) Parent() *Class[T] {
	if c == nil {
		return nil
	}
	return c.parent
}

// Config returns the class configuration.
func (c *Class[T]) Config() config.Config {
	if !c.ready() {
		return config.Config{}
	}
	return c.reg.Config()
}

// Surface returns the shared member table of the class, or nil when the
// class was never initialized.
func (c *Class[T]) Surface() *registry.Surface[*Instance[T]] {
	if !c.ready() {
		return nil
	}
	return c.reg.Surface()
}

// Check reports ErrMisconfiguredClass when the class never initialized its
// mappings.
func (c *Class[T]) Check() error {
	if !c.ready() {
		return fmt.Errorf("%w: %s", ErrMisconfiguredClass, reflect.TypeOf((*T)(nil)).Elem())
	}
	return nil
}

// New constructs an instance wrapping host.
func (c *Class[T]) New(host T) (*Instance[T], error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	inst := newInstance(c, host)
	c.reg.Config().Log().Debug("instance constructed",
		zap.String("class", c.name),
		zap.Stringer("instance", inst.id),
	)
	return inst, nil
}

// MustNew is like New but panics on a misconfigured class.
func (c *Class[T]) MustNew(host T) *Instance[T] {
	inst, err := c.New(host)
	if err != nil {
		panic(err)
	}
	return inst
}

// Macro attaches value under name to every instance of the class,
// replacing any member of that name.
//
//	Request.Macro("id", func(self *macroable.Instance[Request]) string {
//		return self.Host().UUID
//	})
func (c *Class[T]) Macro(name string, value any) error {
	if err := c.Check(); err != nil {
		return err
	}
	return c.reg.Macro(name, value)
}

// Getter defines a computed member evaluated with the reading instance as
// receiver. With singleton set, the value is computed once per instance and
// then fixed on that instance.
//
// Re-registering a getter does not invalidate values already fixed on
// existing instances.
func (c *Class[T]) Getter(name string, fn apis.GetterFunc[*Instance[T]], singleton bool) error {
	if err := c.Check(); err != nil {
		return err
	}
	return c.reg.Getter(name, fn, singleton)
}

// GetMacro returns the registered macro value.
func (c *Class[T]) GetMacro(name string) (any, bool) {
	if !c.ready() {
		return nil, false
	}
	return c.reg.GetMacro(name)
}

// GetGetter returns the registered getter.
func (c *Class[T]) GetGetter(name string) (apis.GetterFunc[*Instance[T]], bool) {
	if !c.ready() {
		return nil, false
	}
	return c.reg.GetGetter(name)
}

// HasMacro reports whether name is a registered macro of this class.
func (c *Class[T]) HasMacro(name string) bool {
	return c.ready() && c.reg.HasMacro(name)
}

// HasGetter reports whether name is a registered getter of this class.
func (c *Class[T]) HasGetter(name string) bool {
	return c.ready() && c.reg.HasGetter(name)
}

// Hydrate removes every macro and getter registered on this class and
// clears its registry. Values singleton getters already fixed on instances
// stay readable on those instances.
func (c *Class[T]) Hydrate() {
	if c.ready() {
		c.reg.Hydrate()
	}
}

// Entries returns the registered members sorted by name.
func (c *Class[T]) Entries() []apis.Entry {
	if !c.ready() {
		return nil
	}
	return c.reg.Entries()
}

// Count returns the number of registered members.
func (c *Class[T]) Count() int {
	if !c.ready() {
		return 0
	}
	return c.reg.Count()
}

// Ensure Class implements apis.Registry.
var _ apis.Registry[*Instance[struct{}]] = (*Class[struct{}])(nil)

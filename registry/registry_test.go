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

package registry_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/macroable/apis"
	"dirpx.dev/macroable/config"
	"dirpx.dev/macroable/registry"
)

// obj is a minimal receiver carrying its own slots.
type obj struct {
	slots *registry.Slots
	label string
}

func newObj(label string) *obj { return &obj{slots: registry.NewSlots(), label: label} }

func (o *obj) Slots() apis.Slots { return o.slots }

// read resolves name the way an instance does: own slots, then the surface.
func read(s *registry.Surface[*obj], o *obj, name string) (any, bool) {
	if v, ok := o.slots.Load(name); ok {
		return v, true
	}
	m, ok := s.Lookup(name)
	if !ok {
		return nil, false
	}
	return m.Resolve(o), true
}

func newRegistry(opts ...config.Option) *registry.Registry[*obj] {
	return registry.New[*obj]("Parent", config.NewConfig(opts...), nil, []string{"Native"})
}

func TestMacro_RegisterAndLookup(t *testing.T) {
	reg := newRegistry()
	assert.False(t, reg.HasMacro("foo"))

	fn := func() string { return "bar" }
	require.NoError(t, reg.Macro("foo", fn))

	assert.True(t, reg.HasMacro("foo"))
	got, ok := reg.GetMacro("foo")
	require.True(t, ok)
	assert.Equal(t, "bar", got.(func() string)())

	v, ok := read(reg.Surface(), newObj("a"), "foo")
	require.True(t, ok)
	assert.Equal(t, "bar", v.(func() string)())
}

func TestMacro_PlainValue(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Macro("foo", "bar"))

	o := newObj("a")
	v, ok := read(reg.Surface(), o, "foo")
	require.True(t, ok)
	assert.Equal(t, "bar", v)
	_, own := o.slots.Load("foo")
	assert.False(t, own, "macro must live on the surface, not the instance")
}

func TestMacro_RequireCallable(t *testing.T) {
	reg := newRegistry(config.WithRequireCallable(true))

	err := reg.Macro("foo", "foo")
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrInvalidParameter)

	var pe *registry.ParameterError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Parent", pe.Class)
	assert.Equal(t, apis.KindMacro, pe.Op)
	assert.Equal(t, "foo", pe.Member)
	assert.Equal(t, "string", pe.Got)
	assert.Contains(t, err.Error(), `Parent.macro("foo") expects callback to be a function instead received {string}`)

	assert.False(t, reg.HasMacro("foo"))
	assert.False(t, reg.Surface().HasOwn("foo"))
	assert.Zero(t, reg.Count())
}

func TestRegister_RejectsEmptyNameAndNil(t *testing.T) {
	reg := newRegistry()

	assert.ErrorIs(t, reg.Macro("", "x"), registry.ErrInvalidParameter)
	assert.ErrorIs(t, reg.Macro("foo", nil), registry.ErrInvalidParameter)

	var nilFn func()
	assert.ErrorIs(t, reg.Macro("foo", nilFn), registry.ErrInvalidParameter)

	err := reg.Getter("foo", nil, false)
	require.Error(t, err)
	var pe *registry.ParameterError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, apis.KindGetter, pe.Op)
	assert.Equal(t, "nil", pe.Got)

	assert.Zero(t, reg.Count())
	assert.Empty(t, reg.Surface().Names())
}

func TestRegister_GuardNative(t *testing.T) {
	reg := newRegistry(config.WithGuardNative(true))
	err := reg.Macro("Native", func() {})
	assert.ErrorIs(t, err, registry.ErrNameCollision)
	assert.ErrorIs(t, reg.Getter("Native", func(*obj) any { return 1 }, false), registry.ErrNameCollision)
	assert.Zero(t, reg.Count())

	open := newRegistry()
	assert.NoError(t, open.Macro("Native", func() {}))
	assert.True(t, open.HasMacro("Native"))
}

func TestGetter_NonSingletonInvokesEveryRead(t *testing.T) {
	reg := newRegistry()
	counter := 0
	require.NoError(t, reg.Getter("getCount", func(*obj) any {
		counter++
		return counter
	}, false))

	o := newObj("a")
	for want := 1; want <= 3; want++ {
		v, ok := read(reg.Surface(), o, "getCount")
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
	assert.Equal(t, 3, counter)
	assert.Empty(t, o.slots.Names())
}

func TestGetter_ReceivesInstance(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Getter("self", func(o *obj) any { return o }, false))

	o := newObj("a")
	v, _ := read(reg.Surface(), o, "self")
	assert.Same(t, o, v)
}

func TestGetter_SingletonCachesPerInstance(t *testing.T) {
	reg := newRegistry()
	counter := 0
	require.NoError(t, reg.Getter("getCount", func(*obj) any {
		counter++
		return counter
	}, true))

	first := newObj("a")
	for i := 0; i < 3; i++ {
		v, _ := read(reg.Surface(), first, "getCount")
		assert.Equal(t, 1, v)
	}
	assert.Equal(t, 1, counter)
	assert.True(t, first.slots.Fixed("getCount"))

	second := newObj("b")
	v, _ := read(reg.Surface(), second, "getCount")
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, counter)
}

func TestGetter_ReRegisterKeepsMaterializedValues(t *testing.T) {
	reg := newRegistry()
	counter := 0
	require.NoError(t, reg.Getter("getCount", func(*obj) any { counter++; return counter }, true))

	early := newObj("early")
	v, _ := read(reg.Surface(), early, "getCount")
	require.Equal(t, 1, v)

	require.NoError(t, reg.Getter("getCount", func(*obj) any { counter += 2; return counter }, true))

	v, _ = read(reg.Surface(), early, "getCount")
	assert.Equal(t, 1, v, "materialized value must survive re-registration")

	late := newObj("late")
	v, _ = read(reg.Surface(), late, "getCount")
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, reg.Count())
}

func TestGetter_ReassignBeforeRead(t *testing.T) {
	reg := newRegistry()
	counter := 0
	require.NoError(t, reg.Getter("getCount", func(*obj) any { counter++; return counter }, true))
	require.NoError(t, reg.Getter("getCount", func(*obj) any { counter += 2; return counter }, true))

	o := newObj("a")
	for i := 0; i < 3; i++ {
		v, _ := read(reg.Surface(), o, "getCount")
		assert.Equal(t, 2, v)
	}
	assert.Equal(t, 2, counter)
}

func TestLastWriteWinsAcrossKinds(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Getter("foo", func(*obj) any { return "getter" }, false))
	require.NoError(t, reg.Macro("foo", "macro"))

	assert.True(t, reg.HasMacro("foo"))
	assert.False(t, reg.HasGetter("foo"))
	_, ok := reg.GetGetter("foo")
	assert.False(t, ok)

	v, _ := read(reg.Surface(), newObj("a"), "foo")
	assert.Equal(t, "macro", v)

	require.NoError(t, reg.Getter("foo", func(*obj) any { return "getter" }, false))
	assert.False(t, reg.HasMacro("foo"))
	assert.True(t, reg.HasGetter("foo"))
	assert.Equal(t, 1, reg.Count())
}

func TestStrictLookup_OutOfBandDelete(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Macro("foo", func() {}))
	require.NoError(t, reg.Getter("bar", func(*obj) any { return nil }, false))

	assert.True(t, reg.Surface().Delete("foo"))
	assert.True(t, reg.Surface().Delete("bar"))

	assert.False(t, reg.HasMacro("foo"))
	assert.False(t, reg.HasGetter("bar"))
	_, ok := reg.GetMacro("foo")
	assert.True(t, ok, "mapping keeps the stale entry")

	loose := newRegistry(config.WithStrictLookup(false))
	require.NoError(t, loose.Macro("foo", func() {}))
	loose.Surface().Delete("foo")
	assert.True(t, loose.HasMacro("foo"))
}

func TestHydrate(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Macro("bar", func() {}))
	require.NoError(t, reg.Getter("foo", func(*obj) any { return "foo" }, true))

	cached := newObj("cached")
	v, _ := read(reg.Surface(), cached, "foo")
	require.Equal(t, "foo", v)

	reg.Hydrate()

	assert.Zero(t, reg.Count())
	assert.Empty(t, reg.Entries())
	assert.False(t, reg.HasMacro("bar"))
	assert.False(t, reg.HasGetter("foo"))
	assert.Empty(t, reg.Surface().Names())

	_, ok := read(reg.Surface(), newObj("fresh"), "foo")
	assert.False(t, ok)
	_, ok = read(reg.Surface(), newObj("fresh"), "bar")
	assert.False(t, ok)

	v, ok = read(reg.Surface(), cached, "foo")
	assert.True(t, ok)
	assert.Equal(t, "foo", v)

	reg.Hydrate()
	assert.Zero(t, reg.Count())
}

func TestSiblingRegistriesDoNotShare(t *testing.T) {
	base := registry.NewSurface[*obj](nil)
	foo := registry.New[*obj]("Foo", config.DefaultConfig(), registry.NewSurface(base), nil)
	bar := registry.New[*obj]("Bar", config.DefaultConfig(), registry.NewSurface(base), nil)

	require.NoError(t, foo.Macro("foo", func() {}))

	assert.True(t, foo.HasMacro("foo"))
	assert.False(t, bar.HasMacro("foo"))
	assert.False(t, bar.Surface().Has("foo"))
	assert.False(t, base.Has("foo"))
}

func TestSurface_ParentChain(t *testing.T) {
	parent := registry.New[*obj]("Parent", config.DefaultConfig(), nil, nil)
	child := registry.New[*obj]("Child", config.DefaultConfig(), registry.NewSurface(parent.Surface()), nil)

	require.NoError(t, parent.Macro("greet", "hi"))
	v, ok := read(child.Surface(), newObj("c"), "greet")
	require.True(t, ok)
	assert.Equal(t, "hi", v)
	assert.False(t, child.HasMacro("greet"))

	require.NoError(t, child.Macro("greet", "hello"))
	v, _ = read(child.Surface(), newObj("c"), "greet")
	assert.Equal(t, "hello", v)

	child.Hydrate()
	v, _ = read(child.Surface(), newObj("c"), "greet")
	assert.Equal(t, "hi", v)
	assert.Same(t, parent.Surface(), child.Surface().Parent())
}

func TestEntries_Sorted(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Macro("b", 1))
	require.NoError(t, reg.Getter("a", func(*obj) any { return nil }, true))
	require.NoError(t, reg.Getter("c", func(*obj) any { return nil }, false))

	assert.Equal(t, []apis.Entry{
		{Name: "a", Kind: apis.KindGetter, Singleton: true},
		{Name: "b", Kind: apis.KindMacro},
		{Name: "c", Kind: apis.KindGetter},
	}, reg.Entries())
	assert.Equal(t, 3, reg.Count())
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	reg := newRegistry(config.WithLogger(zap.New(core)))

	require.NoError(t, reg.Macro("foo", "x"))
	require.NoError(t, reg.Getter("bar", func(*obj) any { return nil }, true))
	reg.Hydrate()

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "macro registered", entries[0].Message)
	assert.Equal(t, "Parent", entries[0].ContextMap()["class"])
	assert.Equal(t, "foo", entries[0].ContextMap()["member"])
	assert.Equal(t, "getter registered", entries[1].Message)
	assert.Equal(t, true, entries[1].ContextMap()["singleton"])
	assert.Equal(t, "registry hydrated", entries[2].Message)
}

func TestSlots_StoreAndReadOnly(t *testing.T) {
	s := registry.NewSlots()
	require.NoError(t, s.Store("x", 1))
	require.NoError(t, s.Store("x", 2))
	v, ok := s.Load("x")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.False(t, s.Fixed("x"))

	assert.Equal(t, "v", s.Materialize("y", func() any { return "v" }))
	assert.ErrorIs(t, s.Store("y", "other"), registry.ErrReadOnly)
	assert.Equal(t, []string{"x", "y"}, s.Names())

	// An existing writable slot wins over a later materialization.
	assert.Equal(t, 2, s.Materialize("x", func() any { return 99 }))
}

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

	"github.com/google/uuid"

	"dirpx.dev/macroable/apis"
	"dirpx.dev/macroable/registry"
)

// Instance is one object of a Class. It wraps a host value and resolves
// members by checking its own slots first and then the class surface chain.
type Instance[T any] struct {
	id    uuid.UUID
	class *Class[T]
	host  T
	slots *registry.Slots
}

func newInstance[T any](c *Class[T], host T) *Instance[T] {
	return &Instance[T]{
		id:    uuid.New(),
		class: c,
		host:  host,
		slots: registry.NewSlots(),
	}
}

// Ensure Instance implements apis.Owner.
var _ apis.Owner = (*Instance[struct{}])(nil)

// ID returns the instance identifier.
func (i *Instance[T]) ID() uuid.UUID { return i.id }

// Class returns the class the instance was constructed from.
func (i *Instance[T]) Class() *Class[T] { return i.class }

// Host returns the wrapped host value.
func (i *Instance[T]) Host() T { return i.host }

// Slots returns the instance's own storage.
func (i *Instance[T]) Slots() apis.Slots { return i.slots }

// Get resolves name on the instance. Getters run with i as receiver.
func (i *Instance[T]) Get(name string) (any, bool) {
	if v, ok := i.slots.Load(name); ok {
		return v, true
	}
	m, ok := i.class.Surface().Lookup(name)
	if !ok {
		return nil, false
	}
	return m.Resolve(i), true
}

// Has reports whether name resolves on the instance, without evaluating it.
func (i *Instance[T]) Has(name string) bool {
	if _, ok := i.slots.Load(name); ok {
		return true
	}
	return i.class.Surface().Has(name)
}

// HasOwn reports whether name is stored on the instance itself, either by
// Set or by a singleton getter that already ran.
func (i *Instance[T]) HasOwn(name string) bool {
	_, ok := i.slots.Load(name)
	return ok
}

// Set stores v on the instance under name, shadowing the class surface.
// Names held by a getter, or by a value a singleton getter already fixed on
// this instance, are read-only.
func (i *Instance[T]) Set(name string, v any) error {
	if !i.HasOwn(name) {
		if m, ok := i.class.Surface().Lookup(name); ok && m.Kind == apis.KindGetter {
			return fmt.Errorf("%w: cannot set property %q of %s which has only a getter",
				ErrReadOnly, name, i.class.Name())
		}
	}
	if err := i.slots.Store(name, v); err != nil {
		return fmt.Errorf("%w: cannot assign to read only property %q of %s",
			err, name, i.class.Name())
	}
	return nil
}

// Call invokes the function member name with args. When the function's
// first parameter accepts the instance, either *Instance[T] or a non-empty
// interface it implements such as apis.Owner, i is passed as the receiver. A trailing
// error result is returned as the error; other results are returned in order.
func (i *Instance[T]) Call(name string, args ...any) ([]any, error) {
	v, ok := i.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMember, i.class.Name(), name)
	}
	fn := reflect.ValueOf(v)
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return nil, fmt.Errorf("%w: %s.%s is %T", ErrNotCallable, i.class.Name(), name, v)
	}

	in, err := i.bind(fn.Type(), args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %v", ErrBadArguments, i.class.Name(), name, err)
	}
	return results(fn.Type(), fn.Call(in))
}

// bind builds the argument list for ft, prepending i when ft expects it.
func (i *Instance[T]) bind(ft reflect.Type, args []any) ([]reflect.Value, error) {
	in := make([]reflect.Value, 0, len(args)+1)
	self := reflect.ValueOf(i)
	if ft.NumIn() > 0 && receives(ft.In(0), self.Type()) {
		in = append(in, self)
	}

	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}
	total := len(in) + len(args)
	if total < fixed || (!ft.IsVariadic() && total > fixed) {
		return nil, fmt.Errorf("want %d arguments, got %d", fixed-len(in), len(args))
	}

	for _, a := range args {
		var pt reflect.Type
		if pos := len(in); ft.IsVariadic() && pos >= fixed {
			pt = ft.In(ft.NumIn() - 1).Elem()
		} else {
			pt = ft.In(pos)
		}
		if a == nil {
			if !nillable(pt) {
				return nil, fmt.Errorf("argument %d: nil for %s", len(in), pt)
			}
			in = append(in, reflect.Zero(pt))
			continue
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("argument %d: %s is not assignable to %s", len(in), av.Type(), pt)
		}
		in = append(in, av)
	}
	return in, nil
}

// receives reports whether a first parameter of type pt takes the instance.
// The empty interface does not: func(any) macros keep their first argument.
func receives(pt, self reflect.Type) bool {
	if pt == self {
		return true
	}
	return pt.Kind() == reflect.Interface && pt.NumMethod() > 0 && self.Implements(pt)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func results(ft reflect.Type, out []reflect.Value) ([]any, error) {
	res := make([]any, 0, len(out))
	for k, o := range out {
		if k == len(out)-1 && ft.Out(k) == errorType {
			if !o.IsNil() {
				return res, o.Interface().(error)
			}
			break
		}
		res = append(res, o.Interface())
	}
	return res, nil
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return true
	default:
		return false
	}
}

// GetAs resolves name on i and asserts the result to V.
func GetAs[V, T any](i *Instance[T], name string) (V, bool) {
	var zero V
	v, ok := i.Get(name)
	if !ok {
		return zero, false
	}
	out, ok := v.(V)
	if !ok {
		return zero, false
	}
	return out, true
}

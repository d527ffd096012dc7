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

package naming

import (
	"errors"
	"reflect"

	"dirpx.dev/macroable/apis"
	"dirpx.dev/macroable/config"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("macroable(naming): nil reflect.Type provided")
	// ErrNotNamed indicates that the type, after unwrapping containers, has
	// no named type (e.g., anonymous struct, func, interface{}).
	ErrNotNamed = errors.New("macroable(naming): type has no nearest named type")
)

// Normalize unwraps containers according to cfg and returns the nearest
// named inner type. If cfg.MaxUnwrap <= 0, config.DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	depth := cfg.MaxUnwrap
	if depth <= 0 {
		depth = config.DefaultMaxUnwrap
	}

	for i := 0; t != nil && i < depth; i++ {
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			first, second := t.Elem(), t.Key()
			if !cfg.MapPreferElem {
				first, second = second, first
			}
			if named(first) {
				return first, nil
			}
			if named(second) {
				return second, nil
			}
			t = t.Elem()
		default:
			if named(t) {
				return t, nil
			}
			return nil, ErrNotNamed
		}
	}

	if named(t) {
		return t, nil
	}
	return nil, ErrNotNamed
}

func named(t reflect.Type) bool {
	return t != nil && t.Name() != ""
}

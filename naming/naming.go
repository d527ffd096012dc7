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
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"

	"dirpx.dev/macroable/apis"
)

// cacheKey ensures memoization respects all config knobs that affect naming.
type cacheKey struct {
	t              reflect.Type
	includeBuiltin bool
	maxUnwrap      int16
	mapPreferElem  bool
}

// classNameCache caches derived class names by (type, config knobs).
var classNameCache sync.Map // key: cacheKey, val: string

var namerType = reflect.TypeOf((*apis.Namer)(nil)).Elem()

// ClassName derives the class name of a host type. It returns "" when no
// name can be derived (anonymous types, or builtins with IncludeBuiltins off).
func ClassName(t reflect.Type, cfg apis.Config) string {
	if t == nil {
		return ""
	}
	key := cacheKey{
		t:              t,
		includeBuiltin: cfg.IncludeBuiltins,
		maxUnwrap:      int16(cfg.MaxUnwrap),
		mapPreferElem:  cfg.MapPreferElem,
	}
	if v, ok := classNameCache.Load(key); ok {
		return v.(string)
	}
	name := derive(t, cfg)
	classNameCache.Store(key, name)
	return name
}

func derive(t reflect.Type, cfg apis.Config) string {
	if n, ok := namerOf(t); ok {
		return n
	}

	base, err := Normalize(t, cfg)
	if err != nil {
		return ""
	}
	if n, ok := namerOf(base); ok {
		return n
	}

	name := stripTypeParams(base.Name())
	if p := base.PkgPath(); p != "" {
		return path.Base(p) + "." + name
	}
	if !cfg.IncludeBuiltins {
		return ""
	}
	return name
}

// namerOf calls ClassName on the zero value of t when t implements Namer.
// Pointer types get a freshly allocated element so pointer receivers work.
func namerOf(t reflect.Type) (string, bool) {
	// A nil interface value has no method to call.
	if t.Kind() == reflect.Interface || !t.Implements(namerType) {
		return "", false
	}
	v := reflect.Zero(t)
	if t.Kind() == reflect.Ptr {
		v = reflect.New(t.Elem())
	}
	return v.Interface().(apis.Namer).ClassName(), true
}

// Methods returns the sorted exported method names declared on the nearest
// named type of t and on its pointer. Unnamed types have none.
func Methods(t reflect.Type, cfg apis.Config) []string {
	base, err := Normalize(t, cfg)
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{})
	collect := func(mt reflect.Type) {
		for i := 0; i < mt.NumMethod(); i++ {
			seen[mt.Method(i).Name] = struct{}{}
		}
	}
	collect(base)
	if base.Kind() != reflect.Interface {
		collect(reflect.PointerTo(base))
	}

	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// stripTypeParams removes generic type instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}

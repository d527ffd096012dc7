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

// Package macroable lets a Go type accept externally registered members
// after it has been defined, and revert to its initial shape later.
//
// A Class describes a host type T. Library authors define one class per
// extensible type; downstream code then attaches:
//
//   - Macros: values or functions installed on the class surface. Every
//     existing and future instance sees them, without per-instance storage.
//
//   - Getters: computed members evaluated on each read with the reading
//     instance as receiver. A singleton getter is evaluated once per
//     instance and the value is then fixed on that instance.
//
// Hydrate removes everything a class registered and empties its registry.
//
// # Usage
//
//	type Request struct{ Path string }
//
//	var Requests = macroable.Define[*Request]("http.request")
//
//	_ = Requests.Macro("describe", func(self *macroable.Instance[*Request]) string {
//		return "GET " + self.Host().Path
//	})
//	_ = Requests.Getter("started", func(*macroable.Instance[*Request]) any {
//		return time.Now()
//	}, true)
//
//	req := Requests.MustNew(&Request{Path: "/"})
//	out, _ := req.Call("describe")        // []any{"GET /"}
//	at, _ := macroable.GetAs[time.Time](req, "started")
//
// # Resolution
//
// Instance.Get looks at the instance's own slots first (values stored with
// Set and values fixed by singleton getters), then the class surface, then
// the surfaces of the classes it was extended from. Own slots are never
// touched by Hydrate or by re-registering a getter: a value a singleton
// getter already fixed on an instance stays readable and read-only there.
//
// # Class scope
//
// Each class owns its registry. Extend creates a subclass with a fresh
// registry whose surface falls back to the parent's, so siblings extended
// from the same class never see each other's registrations. A zero-value
// Class has no registry; New and registration on it fail with
// ErrMisconfiguredClass.
//
// # Errors
//
//   - ErrInvalidParameter (as *ParameterError): empty name, nil value, or a
//     non-function macro on a class configured with RequireCallable.
//   - ErrNameCollision: the name matches an exported method of T on a class
//     that opted in with config.WithGuardNative(true). By default such names
//     register like any other.
//   - ErrMisconfiguredClass: the class never initialized its registry.
//   - ErrReadOnly: Set on a getter name or on a fixed singleton value.
//
// # Concurrency
//
// Registration, lookup and hydration are safe for concurrent use; each
// mutation happens under the class registry lock, so callers never observe
// a mapping without its surface member. Concurrent first reads of a
// singleton getter on one instance share a single evaluation.
//
// # Process catalog
//
// Track records classes in a process-wide catalog so tests and tooling can
// reach them by name (Lookup, LookupClass, Names) and reset all of them at
// once with HydrateAll. SetConfig changes the default config used by Define.
package macroable

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

package apis

// Slots is per-instance own storage. It holds values written directly on an
// instance and singleton getter values materialized on first read. Own slots
// shadow the class surface for that instance only.
type Slots interface {
	// Load returns the own value stored under name.
	Load(name string) (any, bool)
	// Materialize returns the fixed value under name, computing and storing
	// it on first use. Once materialized the slot is read-only.
	Materialize(name string, compute func() any) any
}

// Owner is implemented by receivers that carry their own Slots. The
// registry requires it to cache singleton getters per instance.
type Owner interface {
	Slots() Slots
}

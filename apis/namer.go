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

// Namer lets a host type choose its class name explicitly.
//
// When the zero value of a host type implements Namer, Define uses
// ClassName() instead of deriving "pkg.Type" through reflection. The name
// describes the type, not a particular value, so implementations must not
// depend on instance state.
type Namer interface {
	ClassName() string
}

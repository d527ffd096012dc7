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

// Package naming derives class names and native method sets from host Go
// types.
//
// A host type is first normalized to its nearest named type: pointers,
// slices, arrays and channels are unwrapped through Elem, and maps are
// searched on the preferred side first (see apis.Config.MapPreferElem).
// The class name is then either the value returned by apis.Namer on the
// zero value of that type, or "pkg.Type" with generic parameters stripped.
package naming

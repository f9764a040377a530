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

// Namer lets a tag type choose the label of its benchmark definition.
//
// When an Entry's tag type (or a pointer to it) implements Namer and returns
// a non-empty name, the default resolver uses it and consults no other
// strategy. BenchName is called on a zero value, so it MUST NOT depend on
// instance state.
//
//	type parseTag struct{}
//
//	func (parseTag) BenchName() string { return "parse/json" }
type Namer interface {
	// BenchName returns the label for the tag type's definition.
	BenchName() string
}

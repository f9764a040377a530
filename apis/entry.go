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

// Entry is the metadata record for one benchmark definition.
//
// Entries are produced once per definition by registration code (generated,
// or written by hand in an init function) and handed to a Registry. They are
// plain values: registries store copies and return copies, and nothing
// modifies an Entry after it has been registered.
type Entry struct {
	// Name is the reported name. It is not unique: distinct generic
	// instantiations of one definition share it.
	Name string

	// Path is the fully-qualified path of the definition. It is more
	// specific than Name but still not guaranteed to be unique.
	Path string

	// File is the source file of the definition, for diagnostics only.
	File string

	// Line is the source line of the definition, for diagnostics only.
	Line uint32

	// Ignore excludes the entry from default selection.
	Ignore bool

	// GetID returns the identity of the definition. It MUST return the same
	// ID on every call and an ID no other definition returns.
	GetID func() ID

	// Loop is the benchmarking loop.
	Loop Loop
}

// ID returns e.GetID(), or the zero ID when no accessor is set.
func (e Entry) ID() ID {
	if e.GetID == nil {
		return ID{}
	}
	return e.GetID()
}

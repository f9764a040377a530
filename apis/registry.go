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

// Registry is an append-only collection of Entries that freezes on first read.
//
// # Lifecycle
//
//  1. Population: Register is called from package init functions, one call
//     per benchmark definition, on the single goroutine that runs init.
//  2. Freeze: the first call to All (or an explicit Freeze) ends population.
//  3. Reading: All returns the same set of Entries for the rest of the
//     process, and may be called from many goroutines.
//
// A Registry does not check identities for uniqueness; that is the driver's
// job.
type Registry interface {
	// Register appends e. It panics if the registry is frozen or e is
	// incomplete (no identity accessor, zero loop).
	Register(e Entry)
	// All freezes the registry and returns a copy of every Entry in
	// registration order. The order is reproducible for a given build but
	// carries no meaning.
	All() []Entry
	// Freeze ends the population phase without reading.
	Freeze()
	// Frozen reports whether the population phase has ended.
	Frozen() bool
	// Count returns the number of registered entries.
	Count() int
}

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

// Package bench is a process-wide catalog of benchmark definitions and the
// driver that runs them.
//
// A benchmark definition is collected while the program loads: a package
// declares a tag type for each definition and registers an Entry for it
// from an init function or a package-level variable declaration. Once
// loading has finished the catalog is frozen and handed to the harness.
//
//	type sortTag struct{}
//
//	var _ = bench.Static[sortTag](func(c bench.Context) {
//		c.Bench(func() { sort.Ints(data()) })
//	}, bench.Named("sort.ints"))
//
// # Identity
//
// Every Entry carries an accessor returning an apis.ID derived from its tag
// type. Two definitions never share a tag type, so their IDs differ even
// when their bodies, names and source locations are textually identical. A
// generic definition uses a generic tag type, giving each instantiation its
// own ID:
//
//	type sumTag[T any] struct{}
//
//	func registerSum[T int | float64]() {
//		bench.Static[sumTag[T]](func(c bench.Context) { ... }, bench.Named("sum"))
//	}
//
// # Loops
//
// An Entry's Loop is either static or runtime. A static body receives a
// Context whose sample plan is already fixed and calls Context.Bench. A
// runtime body receives a Bencher, configures sample count, sample size and
// setup/teardown hooks, and triggers measurement itself. A runtime body
// that never calls Bencher.Bench is valid and simply reports no samples.
//
// # Catalog lifecycle
//
// The catalog only grows during initialization. The first call to Entries
// or Run freezes it; any Register after that panics with
// registry.ErrFrozen. Reads of a frozen catalog are safe from any goroutine.
//
// # Global state
//
// Besides the catalog the package holds a read-mostly snapshot of the
// replaceable parts: Config, Resolver, Timer, Builder and Logger. Readers
// load the snapshot atomically and never lock. Writers (SetConfig,
// SetBuilder, SetResolver, SetTimer, SetLogger, SetAll) build a new
// snapshot and swap it in. A resolver or timer set explicitly is pinned
// and survives later SetConfig/SetBuilder calls until unpinned. None of the
// writers touch registered entries.
//
// # Running
//
// Run validates that no two entries share an identity, drops ignored
// entries unless Config.IncludeIgnored is set, resolves labels and
// dispatches every remaining entry in catalog order, one at a time.
// See package harness for the result model.
package bench

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

package bench

import (
	"context"
	"reflect"
	"runtime"

	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/harness"
	"dirpx.dev/bench/identity"
	"dirpx.dev/bench/registry"
)

// Context is the collaborator handed to static loop bodies.
type Context = apis.Context

// Bencher is the collaborator handed to runtime loop bodies.
type Bencher = apis.Bencher

// reg is the process-wide catalog. It is created during package variable
// initialization, before any importing package's init runs, and is never
// replaced.
var reg = registry.New()

// EntryOption adjusts an Entry built by NewEntry.
type EntryOption func(*apis.Entry)

// Named sets the entry's display name.
func Named(name string) EntryOption {
	return func(e *apis.Entry) { e.Name = name }
}

// AtPath overrides the module path, which defaults to the tag type's package.
func AtPath(path string) EntryOption {
	return func(e *apis.Entry) { e.Path = path }
}

// At overrides the source location, which defaults to the caller's.
func At(file string, line uint32) EntryOption {
	return func(e *apis.Entry) {
		e.File = file
		e.Line = line
	}
}

// Ignored marks the entry as excluded from default runs.
func Ignored() EntryOption {
	return func(e *apis.Entry) { e.Ignore = true }
}

// NewEntry builds an Entry whose identity is the tag type T.
//
// T must be a named, package-scoped type declared for this definition only;
// NewEntry panics otherwise. T is normalized with the global Config current
// at the call, so MaxUnwrap bounds how many pointer levels are stripped.
// Path defaults to T's package path and File/Line to the caller.
func NewEntry[T any](loop apis.Loop, opts ...EntryOption) apis.Entry {
	return newEntry[T](loop, 2, opts)
}

// Static builds an Entry for T with a static loop and registers it.
// Call it from an init function or a package-level variable declaration.
func Static[T any](fn apis.StaticFunc, opts ...EntryOption) apis.Entry {
	e := newEntry[T](apis.StaticLoop(fn), 2, opts)
	Register(e)
	return e
}

// Runtime builds an Entry for T with a runtime loop and registers it.
// Call it from an init function or a package-level variable declaration.
func Runtime[T any](fn apis.RuntimeFunc, opts ...EntryOption) apis.Entry {
	e := newEntry[T](apis.RuntimeLoop(fn), 2, opts)
	Register(e)
	return e
}

func newEntry[T any](loop apis.Loop, skip int, opts []EntryOption) apis.Entry {
	id, err := identity.ForType(reflect.TypeFor[T](), st.Load().cfg)
	if err != nil {
		panic(err)
	}
	e := apis.Entry{
		Path:  id.Type().PkgPath(),
		GetID: func() apis.ID { return id },
		Loop:  loop,
	}
	if _, file, line, ok := runtime.Caller(skip); ok {
		e.File, e.Line = file, uint32(line)
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&e)
		}
	}
	return e
}

// Register adds e to the process-wide catalog.
//
// Register is meant for package initialization. It panics with
// registry.ErrFrozen once the catalog has been read, and on entries without
// an identity accessor or loop.
func Register(e apis.Entry) {
	reg.Register(e)
}

// Entries freezes the catalog and returns every registered entry in
// registration order, ignored ones included.
func Entries() []apis.Entry {
	return reg.All()
}

// Count returns the number of registered entries.
func Count() int {
	return reg.Count()
}

// Frozen reports whether the catalog has been read.
func Frozen() bool {
	return reg.Frozen()
}

// Runner returns a harness runner built from the current global snapshot.
func Runner(opts ...harness.Option) *harness.Runner {
	s := st.Load()
	o := append([]harness.Option{harness.WithLogger(s.log)}, opts...)
	return harness.New(s.cfg, s.res, s.tmr, o...)
}

// Run freezes the catalog and runs it with the current global snapshot.
func Run(ctx context.Context, opts ...harness.Option) (*harness.Report, error) {
	return Runner(opts...).Run(ctx, reg.All())
}

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

package registry

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/bench/apis"
)

var (
	// ErrFrozen is raised when Register is called after the registry has frozen.
	ErrFrozen = errors.New("bench(registry): registration after freeze")
	// ErrNilIdentity is raised when an entry has no identity accessor.
	ErrNilIdentity = errors.New("bench(registry): entry has no identity accessor")
	// ErrZeroLoop is raised when an entry has no loop strategy.
	ErrZeroLoop = apis.ErrZeroLoop
)

// New constructs an empty, unfrozen Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is an append-only slice guarded by a mutex during population.
// Once frozen is set, entries is never written again, and readers copy it
// without locking.
type registry struct {
	// mu serializes Register and Freeze.
	mu sync.Mutex
	// entries holds registered entries in registration order.
	entries []apis.Entry
	// frozen is set once, under mu, and never cleared.
	frozen atomic.Bool
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Register appends e. Registration errors are programming errors in the
// registration code, so they panic instead of returning.
func (r *registry) Register(e apis.Entry) {
	// Validate inputs early.
	if e.GetID == nil {
		panic(ErrNilIdentity)
	}
	if e.Loop.IsZero() {
		panic(ErrZeroLoop)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		panic(ErrFrozen)
	}
	r.entries = append(r.entries, e)
}

// All freezes the registry and returns a copy of its entries.
func (r *registry) All() []apis.Entry {
	// Fast path: already frozen, entries is immutable.
	if !r.frozen.Load() {
		r.Freeze()
	}
	out := make([]apis.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Freeze ends the population phase. It is idempotent.
func (r *registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen.Store(true)
}

// Frozen reports whether the registry has frozen.
func (r *registry) Frozen() bool {
	return r.frozen.Load()
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	if r.frozen.Load() {
		return len(r.entries)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

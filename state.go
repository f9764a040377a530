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
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/builder"
	"dirpx.dev/bench/config"
)

// init initializes the global bench state.
func init() {
	// Initialize state with default cfg, res and tmr.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.res = b.BuildResolver(s.cfg, nil)
	s.tmr = b.BuildTimer(s.cfg, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilResolver is raised when a builder returns a nil resolver.
	ErrNilResolver = errors.New("bench: builder returned nil resolver")
	// ErrNilTimer is raised when a builder returns a nil timer.
	ErrNilTimer = errors.New("bench: builder returned nil timer")
)

// SetAll explicitly sets all replaceable global components.
//
// Nil arguments leave the corresponding component unchanged, except that a
// nil res or tmr is rebuilt by the (possibly new) builder and unpinned.
// Non-nil res and tmr are pinned. The registry is never touched.
func SetAll(cfg *apis.Config, res apis.Resolver, tmr apis.Timer, bld apis.Builder, log *slog.Logger) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Logger
	nlog := old.log
	if log != nil {
		nlog = log
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, old.res)
	} else {
		npres = true
	}

	// Timer
	ntmr := tmr
	nptmr := false
	if ntmr == nil {
		ntmr = nbld.BuildTimer(ncfg, old.tmr)
	} else {
		nptmr = true
	}

	st.Store(mustState(&state{
		cfg:  ncfg,
		res:  nres,
		tmr:  ntmr,
		bld:  nbld,
		log:  nlog,
		pres: npres,
		ptmr: nptmr,
	}))
}

// Config returns the global bench configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg and rebuilds the
// non-pinned resolver and timer with it.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.with()
	next.cfg = cfg
	next.rebuild(old)
	st.Store(mustState(next))
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds the non-pinned
// resolver and timer with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := old.with()
	next.bld = b
	next.rebuild(old)
	st.Store(mustState(next))
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver replaces the global resolver and pins it.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().with()
	next.res = res
	next.pres = true
	st.Store(next)
}

// IsResolverPinned reports whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// UnpinResolver lets the next SetConfig or SetBuilder rebuild the resolver.
func UnpinResolver() {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().with()
	next.pres = false
	st.Store(next)
}

// Timer returns the global timer.
func Timer() apis.Timer {
	return st.Load().tmr
}

// SetTimer replaces the global timer and pins it.
func SetTimer(tmr apis.Timer) {
	if tmr == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().with()
	next.tmr = tmr
	next.ptmr = true
	st.Store(next)
}

// IsTimerPinned reports whether the global timer is pinned.
func IsTimerPinned() bool {
	return st.Load().ptmr
}

// UnpinTimer lets the next SetConfig or SetBuilder rebuild the timer.
func UnpinTimer() {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().with()
	next.ptmr = false
	st.Store(next)
}

// Logger returns the logger used by Run. Nil means slog.Default().
func Logger() *slog.Logger {
	if l := st.Load().log; l != nil {
		return l
	}
	return slog.Default()
}

// SetLogger sets the logger used by Run. Nil restores slog.Default().
func SetLogger(l *slog.Logger) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := st.Load().with()
	next.log = l
	st.Store(next)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global bench state.
var st atomic.Pointer[state]

// state is the global bench state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// res is the global label resolver.
	res apis.Resolver
	// tmr is the global timer.
	tmr apis.Timer
	// bld is the global builder.
	bld apis.Builder
	// log is the run logger; nil means slog.Default().
	log *slog.Logger
	// pres indicates whether res is pinned.
	pres bool
	// ptmr indicates whether tmr is pinned.
	ptmr bool
}

// with returns an unpublished copy of s.
func (s *state) with() *state {
	c := *s
	return &c
}

// rebuild rebuilds the non-pinned layers of s from old using s.bld and s.cfg.
func (s *state) rebuild(old *state) {
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, old.res)
	}
	if !s.ptmr {
		s.tmr = s.bld.BuildTimer(s.cfg, old.tmr)
	}
}

// mustState panics if a builder produced an incomplete snapshot.
func mustState(s *state) *state {
	if s.res == nil {
		panic(ErrNilResolver)
	}
	if s.tmr == nil {
		panic(ErrNilTimer)
	}
	return s
}

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

import (
	"errors"
	"fmt"
	"strings"
)

// ErrZeroLoop is raised when a Loop without a variant is registered or matched.
var ErrZeroLoop = errors.New("bench: loop has no strategy")

// LoopKind names the variant held by a Loop.
//
// # Values
//
//   - LoopStatic: the body receives a ready-made Context.
//   - LoopRuntime: the body receives a Bencher, configures it and triggers
//     measurement itself.
//
// LoopKind is a plain integer and safe to share across goroutines. It exists
// for logging, span attributes and metric labels; dispatch itself goes
// through Loop.Match, never through a switch on LoopKind.
type LoopKind int

const (
	// loopZero is the kind of an unset Loop. It is not a valid variant.
	loopZero LoopKind = iota

	// LoopStatic is the context-driven variant.
	LoopStatic

	// LoopRuntime is the builder-driven variant.
	LoopRuntime
)

// String returns "static", "runtime", or "Unknown(<n>)" for anything else.
// It MUST NOT panic, so that corrupted values can still be logged.
func (k LoopKind) String() string {
	switch k {
	case LoopStatic:
		return "static"
	case LoopRuntime:
		return "runtime"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseLoopKind parses "static" or "runtime", case-insensitively and with
// surrounding whitespace trimmed. On failure it returns the zero kind and a
// non-nil error.
func ParseLoopKind(s string) (LoopKind, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return loopZero, fmt.Errorf("bench: empty loop kind")
	}

	switch strings.ToLower(trimmed) {
	case "static":
		return LoopStatic, nil
	case "runtime":
		return LoopRuntime, nil
	default:
		return loopZero, fmt.Errorf("bench: unknown loop kind %q", s)
	}
}

// MustParseLoopKind is like ParseLoopKind but panics on invalid input.
// Intended for hard-coded values and tests.
func MustParseLoopKind(s string) LoopKind {
	k, err := ParseLoopKind(s)
	if err != nil {
		panic(err)
	}
	return k
}

// MarshalText implements encoding.TextMarshaler. Unknown kinds fail instead
// of serializing an "Unknown(...)" form.
func (k LoopKind) MarshalText() ([]byte, error) {
	switch k {
	case LoopStatic, LoopRuntime:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("bench: cannot marshal unknown loop kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure *k is left
// unchanged.
func (k *LoopKind) UnmarshalText(text []byte) error {
	v, err := ParseLoopKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// StaticFunc is a benchmark body that drives timed iterations through the
// Context it is given.
type StaticFunc func(Context)

// RuntimeFunc is a benchmark body that configures the Bencher it is given and
// triggers measurement from inside the call.
type RuntimeFunc func(Bencher)

// Loop is the benchmarking loop of an Entry: a closed sum type holding
// exactly one of a StaticFunc or a RuntimeFunc.
//
// The zero Loop holds nothing and is rejected by registries. Construct loops
// with StaticLoop or RuntimeLoop.
type Loop struct {
	kind    LoopKind
	static  StaticFunc
	runtime RuntimeFunc
}

// StaticLoop returns a Loop holding the context-driven variant.
// A nil fn yields the zero Loop.
func StaticLoop(fn StaticFunc) Loop {
	if fn == nil {
		return Loop{}
	}
	return Loop{kind: LoopStatic, static: fn}
}

// RuntimeLoop returns a Loop holding the builder-driven variant.
// A nil fn yields the zero Loop.
func RuntimeLoop(fn RuntimeFunc) Loop {
	if fn == nil {
		return Loop{}
	}
	return Loop{kind: LoopRuntime, runtime: fn}
}

// Kind returns the held variant. The zero Loop reports an unknown kind.
func (l Loop) Kind() LoopKind {
	return l.kind
}

// IsZero reports whether the Loop holds no variant.
func (l Loop) IsZero() bool {
	return l.kind == loopZero
}

// Match calls exactly one of its arms with the held callable.
//
// Every dispatch site supplies one arm per variant. Adding a variant adds a
// parameter here, so every caller that does not handle it stops compiling.
// Match panics with ErrZeroLoop for the zero Loop.
func (l Loop) Match(static func(StaticFunc), runtime func(RuntimeFunc)) {
	switch l.kind {
	case LoopStatic:
		static(l.static)
	case LoopRuntime:
		runtime(l.runtime)
	default:
		panic(ErrZeroLoop)
	}
}

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

package reflect

import (
	"errors"
	"reflect"
	"strings"

	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/config"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTypeNotNamed indicates that the provided type (after unwrapping
	// pointers) is not a named type (e.g., anonymous struct, func, slice).
	ErrReflectTypeNotNamed = errors.New("reflect: tag type is not named")
	// ErrReflectTypeBuiltin indicates that the provided type is a predeclared
	// type (e.g., int, string) with no package to scope it.
	ErrReflectTypeBuiltin = errors.New("reflect: tag type is predeclared")
)

// Normalize unwraps pointers according to cfg.MaxUnwrap and returns the named,
// package-scoped tag type underneath, or an error if there is none.
//
// Unwrapping policy:
//   - ptr -> Elem(), at most MaxUnwrap times (0 disables unwrapping);
//   - every other kind is terminal: slices, maps, channels and arrays are NOT
//     unwrapped, because []T and T are different definitions to the caller;
//   - the terminal type must be named and carry a package path.
//
// If MaxUnwrap < 0, DefaultMaxUnwrap is used.
func Normalize(t reflect.Type, cfg apis.Config) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	maxUnwrap := cfg.MaxUnwrap
	if maxUnwrap < 0 {
		maxUnwrap = config.DefaultMaxUnwrap
	}

	for i := 0; t.Kind() == reflect.Pointer && t.Name() == "" && i < maxUnwrap; i++ {
		t = t.Elem()
	}

	if t.Name() == "" {
		return nil, ErrReflectTypeNotNamed
	}
	if t.PkgPath() == "" {
		return nil, ErrReflectTypeBuiltin
	}
	return t, nil
}

// SplitTypeParams splits a generic instantiation name into its base name and
// its argument list: "T[int,string]" -> ("T", "int,string").
// Non-generic names return an empty argument list.
func SplitTypeParams(name string) (base, args string) {
	i := strings.IndexByte(name, '[')
	if i < 0 || !strings.HasSuffix(name, "]") {
		return name, ""
	}
	return name[:i], name[i+1 : len(name)-1]
}

// ShortTypeArgs rewrites every package-qualified identifier inside a type
// argument list to its last path element:
// "example.com/x/y.Foo,int" -> "y.Foo,int".
func ShortTypeArgs(args string) string {
	if args == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(args))
	start := 0
	flush := func(end int) {
		tok := args[start:end]
		if j := strings.LastIndexByte(tok, '/'); j >= 0 {
			tok = tok[j+1:]
		}
		b.WriteString(tok)
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case ',', '[', ']', '(', ')', '*', ' ':
			flush(i)
			b.WriteByte(args[i])
			start = i + 1
		}
	}
	flush(len(args))
	return b.String()
}

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

import "reflect"

// ID is the process-stable identity of one benchmark definition.
//
// # Overview
//
// An ID wraps the reflect.Type of a per-definition tag type: a named,
// package-scoped type declared once for each benchmark definition. Two
// definitions never share a tag type, and a generic definition uses a
// generic tag type, so each instantiation (tag[int], tag[float64]) has its
// own type and therefore its own ID.
//
// IDs are never derived from function values or addresses. A linker or an
// optimizer may fold structurally identical function bodies into a single
// symbol; reflect.Type identity is preserved regardless.
//
// # Contract
//
//   - IDs are comparable with == and MAY be used as map keys.
//   - The zero ID (no type) is reported by IsZero and never equals a valid ID.
//   - IDs are stable for the lifetime of the process. They are NOT stable
//     across builds or toolchain versions and MUST NOT be persisted.
//   - IDs are safe to copy and to read from multiple goroutines.
type ID struct {
	t reflect.Type
}

// NewID wraps t as an ID without validating it.
// Use identity.ForType to obtain a validated, normalized ID.
func NewID(t reflect.Type) ID {
	return ID{t: t}
}

// Type returns the tag type behind the ID, or nil for the zero ID.
func (id ID) Type() reflect.Type {
	return id.t
}

// IsZero reports whether the ID carries no tag type.
func (id ID) IsZero() bool {
	return id.t == nil
}

// String returns the fully-qualified tag type, e.g.
// "example.com/pkg.sumTag[int]". The zero ID renders as "<none>".
func (id ID) String() string {
	if id.t == nil {
		return "<none>"
	}
	if p := id.t.PkgPath(); p != "" {
		return p + "." + id.t.Name()
	}
	return id.t.String()
}

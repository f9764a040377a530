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

package harness

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/bench/apis"
)

var (
	// ErrDuplicateIdentity is reported when two entries share one identity.
	// The catalog is inconsistent and nothing is run.
	ErrDuplicateIdentity = errors.New("bench(harness): duplicate identity")

	// ErrNilIdentity is reported for entries whose accessor yields no identity.
	ErrNilIdentity = errors.New("bench(harness): entry has no identity")

	// ErrCallablePanicked is the sentinel behind every *PanicError.
	ErrCallablePanicked = errors.New("bench(harness): callable panicked")
)

// DuplicateIdentityError lists every entry that shares ID.
type DuplicateIdentityError struct {
	ID      apis.ID
	Entries []apis.Entry
}

func (e *DuplicateIdentityError) Error() string {
	where := make([]string, 0, len(e.Entries))
	for _, en := range e.Entries {
		where = append(where, describe(en))
	}
	return fmt.Sprintf("%s: %s shared by %d entries (%s)",
		ErrDuplicateIdentity, e.ID, len(e.Entries), strings.Join(where, ", "))
}

func (e *DuplicateIdentityError) Unwrap() error { return ErrDuplicateIdentity }

// PanicError carries a value recovered from a benchmark callable.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: %v", ErrCallablePanicked, e.Value)
}

// Unwrap exposes ErrCallablePanicked and, when the panic value is an error,
// that error too.
func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrCallablePanicked, err}
	}
	return []error{ErrCallablePanicked}
}

// describe renders the most specific location known for an entry.
func describe(e apis.Entry) string {
	var b strings.Builder
	switch {
	case e.Path != "" && e.Name != "":
		b.WriteString(e.Path + "::" + e.Name)
	case e.Name != "":
		b.WriteString(e.Name)
	case e.Path != "":
		b.WriteString(e.Path)
	default:
		b.WriteString("<unnamed>")
	}
	if e.File != "" {
		fmt.Fprintf(&b, " at %s:%d", e.File, e.Line)
	}
	return b.String()
}

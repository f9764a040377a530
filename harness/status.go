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
	"fmt"
	"strings"
)

// Status is the outcome of one entry in a run.
type Status int

const (
	// StatusOK means the callable returned and recorded at least one sample.
	StatusOK Status = iota

	// StatusNoSamples means the callable returned without triggering
	// measurement. This is not an error.
	StatusNoSamples

	// StatusFailed means the callable panicked.
	StatusFailed

	// StatusSkipped means the run stopped before reaching the entry.
	StatusSkipped
)

// String returns the lower-case name, or "Unknown(<n>)" for invalid values.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoSamples:
		return "no-samples"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// ParseStatus parses the String form, case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ok":
		return StatusOK, nil
	case "no-samples":
		return StatusNoSamples, nil
	case "failed":
		return StatusFailed, nil
	case "skipped":
		return StatusSkipped, nil
	default:
		return StatusOK, fmt.Errorf("bench(harness): unknown status %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	switch s {
	case StatusOK, StatusNoSamples, StatusFailed, StatusSkipped:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("bench(harness): cannot marshal unknown status %d", int(s))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure *s is left
// unchanged.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

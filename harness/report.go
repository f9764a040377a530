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
	"time"

	"github.com/google/uuid"

	"dirpx.dev/bench/apis"
)

// Result is the outcome of dispatching one entry.
type Result struct {
	ID      apis.ID
	Label   string
	Entry   apis.Entry
	Kind    apis.LoopKind
	Status  Status
	Samples []time.Duration
	Err     error
	Elapsed time.Duration
}

// Report is the outcome of one Run. Results follow catalog order.
type Report struct {
	RunID    uuid.UUID
	Started  time.Time
	Finished time.Time
	Results  []Result
}

// Count returns how many results have status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Lookup returns the result for id.
func (r *Report) Lookup(id apis.ID) (Result, bool) {
	for _, res := range r.Results {
		if res.ID == id {
			return res, true
		}
	}
	return Result{}, false
}

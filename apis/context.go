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

import "time"

// Context is handed to StaticFunc bodies. The body calls Bench with the code
// to measure; the Context owns the sample plan.
type Context interface {
	// Bench times fn according to the Context's sample plan.
	Bench(fn func())
}

// Bencher is handed to RuntimeFunc bodies. The body configures it and then
// calls Bench, which starts and stops measurement.
//
// Configuration methods return the Bencher so calls can be chained:
//
//	b.SampleCount(50).SampleSize(1000).Setup(reset).Bench(work)
//
// A body that never calls Bench is valid; it simply collects no samples.
type Bencher interface {
	// SampleCount sets how many samples Bench collects. Non-positive values
	// keep the current setting.
	SampleCount(n int) Bencher
	// SampleSize sets how many iterations are timed together as one sample.
	// Non-positive values keep the current setting.
	SampleSize(n int) Bencher
	// Setup registers a hook run before each sample, outside the timed region.
	Setup(fn func()) Bencher
	// Teardown registers a hook run after each sample, outside the timed region.
	Teardown(fn func()) Bencher
	// Bench triggers measurement of fn.
	Bench(fn func())
}

// Sampled exposes what a Context or Bencher collected.
type Sampled interface {
	// Samples returns the per-iteration duration of every collected sample,
	// in collection order. It returns an empty slice when nothing ran.
	Samples() []time.Duration
}

// SampledContext is a Context whose samples the driver can read back.
type SampledContext interface {
	Context
	Sampled
}

// SampledBencher is a Bencher whose samples the driver can read back.
type SampledBencher interface {
	Bencher
	Sampled
}

// Timer constructs the collaborators handed to loop strategies.
// Every call MUST return a fresh value; collaborators are never reused
// across dispatches.
type Timer interface {
	// NewContext returns a fresh Context for one Static dispatch.
	NewContext() SampledContext
	// NewBencher returns a fresh Bencher for one Runtime dispatch.
	NewBencher() SampledBencher
}

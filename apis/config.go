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

// Config carries read-only harness knobs that influence selection, labeling,
// identity normalization and the default sample plan.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// IncludeIgnored overrides Entry.Ignore: when true, ignored entries are
	// selected like any other entry.
	IncludeIgnored bool

	// Disambiguate controls whether entries that resolve to the same label
	// but carry different identities get their labels qualified with type
	// arguments (or, as a last resort, the identity string).
	Disambiguate bool

	// SampleCount is the number of samples a Context or Bencher collects
	// when the benchmark body does not choose one itself.
	SampleCount int

	// SampleSize is the number of iterations timed together as one sample.
	SampleSize int

	// MaxUnwrap limits pointer unwrapping when a tag type is normalized
	// into an identity. Acts as a safety guard against pathological nesting.
	MaxUnwrap int
}

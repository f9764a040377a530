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

package builder

import (
	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/resolver"
	"dirpx.dev/bench/timer"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// Ensure builder implements apis.Builder.
var _ apis.Builder = (*builder)(nil)

// BuildResolver returns the default label chain: Namer, then Entry.Name,
// then the reflected tag type. The chain is stateless, so prev is ignored.
func (b *builder) BuildResolver(_ apis.Config, _ apis.Resolver) apis.Resolver {
	return resolver.Default()
}

// BuildTimer returns a wall-clock timer using cfg's sample plan. Timers hold
// no state across dispatches, so prev is ignored.
func (b *builder) BuildTimer(cfg apis.Config, _ apis.Timer) apis.Timer {
	return timer.New(cfg)
}

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

// Package timer provides the default wall-clock apis.Timer.
//
// A sample is SampleSize consecutive calls of the measured body. The recorded
// value is the mean duration of one call within that sample. Setup and
// teardown hooks run around every sample and are never timed.
package timer

import (
	"sync"
	"time"

	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/config"
)

// New returns a Timer whose collaborators start from cfg's sample plan.
// Non-positive values in cfg fall back to the config package defaults.
func New(cfg apis.Config) apis.Timer {
	def := config.DefaultConfig()
	p := plan{count: cfg.SampleCount, size: cfg.SampleSize}
	if p.count <= 0 {
		p.count = def.SampleCount
	}
	if p.size <= 0 {
		p.size = def.SampleSize
	}
	return &wallTimer{plan: p, now: time.Now}
}

// plan is the number and size of samples to collect.
type plan struct {
	count int
	size  int
}

type wallTimer struct {
	plan plan
	now  func() time.Time
}

// Ensure wallTimer implements apis.Timer.
var _ apis.Timer = (*wallTimer)(nil)

func (t *wallTimer) NewContext() apis.SampledContext {
	return &staticContext{rec: recorder{plan: t.plan, now: t.now}}
}

func (t *wallTimer) NewBencher() apis.SampledBencher {
	return &bencher{rec: recorder{plan: t.plan, now: t.now}}
}

// recorder collects samples for one collaborator.
type recorder struct {
	mu      sync.Mutex
	plan    plan
	now     func() time.Time
	samples []time.Duration
}

// measure runs the plan for fn and appends the resulting samples.
func (r *recorder) measure(fn, setup, teardown func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.plan
	r.mu.Unlock()

	out := make([]time.Duration, 0, p.count)
	for i := 0; i < p.count; i++ {
		if setup != nil {
			setup()
		}
		start := r.now()
		for j := 0; j < p.size; j++ {
			fn()
		}
		elapsed := r.now().Sub(start)
		if teardown != nil {
			teardown()
		}
		out = append(out, elapsed/time.Duration(p.size))
	}

	r.mu.Lock()
	r.samples = append(r.samples, out...)
	r.mu.Unlock()
}

func (r *recorder) Samples() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]time.Duration, len(r.samples))
	copy(out, r.samples)
	return out
}

// staticContext is the apis.Context handed to static loops.
type staticContext struct {
	rec recorder
}

// Ensure staticContext implements apis.SampledContext.
var _ apis.SampledContext = (*staticContext)(nil)

func (c *staticContext) Bench(fn func()) { c.rec.measure(fn, nil, nil) }

func (c *staticContext) Samples() []time.Duration { return c.rec.Samples() }

// bencher is the apis.Bencher handed to runtime loops.
type bencher struct {
	rec      recorder
	setup    func()
	teardown func()
}

// Ensure bencher implements apis.SampledBencher.
var _ apis.SampledBencher = (*bencher)(nil)

func (b *bencher) SampleCount(n int) apis.Bencher {
	if n > 0 {
		b.rec.mu.Lock()
		b.rec.plan.count = n
		b.rec.mu.Unlock()
	}
	return b
}

func (b *bencher) SampleSize(n int) apis.Bencher {
	if n > 0 {
		b.rec.mu.Lock()
		b.rec.plan.size = n
		b.rec.mu.Unlock()
	}
	return b
}

func (b *bencher) Setup(fn func()) apis.Bencher {
	b.setup = fn
	return b
}

func (b *bencher) Teardown(fn func()) apis.Bencher {
	b.teardown = fn
	return b
}

// Bench measures fn. Calling it more than once appends further samples.
func (b *bencher) Bench(fn func()) { b.rec.measure(fn, b.setup, b.teardown) }

func (b *bencher) Samples() []time.Duration { return b.rec.Samples() }

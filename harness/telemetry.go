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
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"dirpx.dev/bench/apis"
)

const instrumentationName = "dirpx.dev/bench/harness"

// Attribute keys shared by spans and metrics.
const (
	attrRunID    = attribute.Key("bench.run_id")
	attrName     = attribute.Key("bench.name")
	attrPath     = attribute.Key("bench.path")
	attrKind     = attribute.Key("bench.kind")
	attrStatus   = attribute.Key("bench.status")
	attrSamples  = attribute.Key("bench.samples")
	attrEntries  = attribute.Key("bench.entries")
	attrSelected = attribute.Key("bench.selected")
)

// instruments holds the runner's metric instruments.
type instruments struct {
	dispatches metric.Int64Counter
	samples    metric.Float64Histogram
}

// newInstruments creates the instruments on m. An instrument that cannot be
// created is replaced by a no-op one and the error is returned.
func newInstruments(m metric.Meter) (instruments, error) {
	var (
		ins      instruments
		err, rer error
	)

	ins.dispatches, err = m.Int64Counter(
		"bench.dispatch.count",
		metric.WithDescription("Number of benchmark dispatches by status and loop kind"),
	)
	if err != nil {
		rer = err
		ins.dispatches, _ = noop.Meter{}.Int64Counter("bench.dispatch.count")
	}

	ins.samples, err = m.Float64Histogram(
		"bench.sample.duration",
		metric.WithDescription("Per-iteration duration of collected samples"),
		metric.WithUnit("s"),
	)
	if err != nil {
		rer = err
		ins.samples, _ = noop.Meter{}.Float64Histogram("bench.sample.duration")
	}

	return ins, rer
}

func (ins instruments) record(ctx context.Context, res Result) {
	ins.dispatches.Add(ctx, 1, metric.WithAttributes(
		attrStatus.String(res.Status.String()),
		kindAttr(res.Kind),
	))
	if len(res.Samples) == 0 {
		return
	}
	attrs := metric.WithAttributes(attrName.String(res.Label))
	for _, d := range res.Samples {
		ins.samples.Record(ctx, d.Seconds(), attrs)
	}
}

// kindAttr renders the loop kind in its text form. Kinds without one, such
// as that of a zero Loop, are reported as "invalid".
func kindAttr(k apis.LoopKind) attribute.KeyValue {
	text, err := k.MarshalText()
	if err != nil {
		return attrKind.String("invalid")
	}
	return attrKind.String(string(text))
}

// seconds is used for span attributes.
func seconds(d time.Duration) attribute.KeyValue {
	return attribute.Float64("bench.elapsed_seconds", d.Seconds())
}

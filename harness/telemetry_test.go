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

package harness_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/config"
	"dirpx.dev/bench/harness"
)

func spanAttr(s sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range s.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestRun_Telemetry(t *testing.T) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer tp.Shutdown(context.Background())
	defer mp.Shutdown(context.Background())

	var logs bytes.Buffer
	r := harness.New(
		config.NewConfig(config.WithSampleCount(4)),
		nil, nil,
		harness.WithLogger(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))),
		harness.WithTracerProvider(tp),
		harness.WithMeterProvider(mp),
	)

	entries := []apis.Entry{
		entryOf[aTag]("a", static(measure)),
		entryOf[bTag]("b", static(func(apis.Context) { panic("bad") })),
	}
	report, err := r.Run(context.Background(), entries)
	require.NoError(t, err)

	spans := spanRecorder.Ended()
	require.Len(t, spans, 3)

	// Dispatch spans end before the run span.
	assert.Equal(t, "bench.Dispatch", spans[0].Name())
	assert.Equal(t, "bench.Dispatch", spans[1].Name())
	assert.Equal(t, "bench.Run", spans[2].Name())

	v, ok := spanAttr(spans[0], "bench.name")
	require.True(t, ok)
	assert.Equal(t, "a", v.AsString())
	v, ok = spanAttr(spans[0], "bench.kind")
	require.True(t, ok)
	assert.Equal(t, "static", v.AsString())
	v, ok = spanAttr(spans[0], "bench.samples")
	require.True(t, ok)
	assert.EqualValues(t, 4, v.AsInt64())

	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.NotEmpty(t, spans[1].Events(), "failure is recorded as a span event")
	assert.Equal(t, codes.Error, spans[2].Status().Code)
	assert.Equal(t, spans[2].SpanContext().SpanID(), spans[0].Parent().SpanID())

	v, ok = spanAttr(spans[2], "bench.run_id")
	require.True(t, ok)
	assert.Equal(t, report.RunID.String(), v.AsString())

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var dispatches int64
	var samples uint64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				if m.Name == "bench.dispatch.count" {
					for _, dp := range data.DataPoints {
						dispatches += dp.Value
					}
				}
			case metricdata.Histogram[float64]:
				if m.Name == "bench.sample.duration" {
					assert.Equal(t, "s", m.Unit)
					for _, dp := range data.DataPoints {
						samples += dp.Count
					}
				}
			}
		}
	}
	assert.EqualValues(t, 2, dispatches)
	assert.EqualValues(t, 4, samples)

	assert.Contains(t, logs.String(), "bench run started")
	assert.Contains(t, logs.String(), "bench dispatch failed")
	assert.Contains(t, logs.String(), report.RunID.String())
}

func TestDispatch_ZeroLoopKindAttribute(t *testing.T) {
	spanRecorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))
	defer tp.Shutdown(context.Background())

	r := harness.New(config.DefaultConfig(), nil, nil,
		harness.WithLogger(quietLogger()),
		harness.WithTracerProvider(tp),
	)

	res := r.Dispatch(context.Background(), entryOf[aTag]("a", apis.Loop{}))
	require.Equal(t, harness.StatusFailed, res.Status)
	require.ErrorIs(t, res.Err, apis.ErrZeroLoop)

	spans := spanRecorder.Ended()
	require.Len(t, spans, 1)
	v, ok := spanAttr(spans[0], "bench.kind")
	require.True(t, ok)
	assert.Equal(t, "invalid", v.AsString())
}

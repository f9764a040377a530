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
	"errors"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/config"
	"dirpx.dev/bench/harness"
	"dirpx.dev/bench/timer"
)

type (
	aTag          struct{}
	bTag          struct{}
	cTag          struct{}
	sumTag[T any] struct{}
)

func entryOf[T any](name string, loop apis.Loop) apis.Entry {
	id := apis.NewID(reflect.TypeFor[T]())
	return apis.Entry{
		Name:  name,
		Path:  "harness_test",
		File:  "harness_test.go",
		Line:  1,
		GetID: func() apis.ID { return id },
		Loop:  loop,
	}
}

func static(fn func(apis.Context)) apis.Loop { return apis.StaticLoop(fn) }

func runtime(fn func(apis.Bencher)) apis.Loop { return apis.RuntimeLoop(fn) }

func measure(c apis.Context) { c.Bench(func() {}) }

// countingTimer records every collaborator it hands out.
type countingTimer struct {
	inner    apis.Timer
	contexts []apis.SampledContext
	benchers []apis.SampledBencher
}

func (t *countingTimer) NewContext() apis.SampledContext {
	c := t.inner.NewContext()
	t.contexts = append(t.contexts, c)
	return c
}

func (t *countingTimer) NewBencher() apis.SampledBencher {
	b := t.inner.NewBencher()
	t.benchers = append(t.benchers, b)
	return b
}

func newCountingTimer() *countingTimer {
	return &countingTimer{inner: timer.New(config.NewConfig(config.WithSampleCount(2)))}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func newRunner(tm apis.Timer, opts ...config.Option) *harness.Runner {
	return harness.New(config.NewConfig(opts...), nil, tm, harness.WithLogger(quietLogger()))
}

func TestDispatch_StaticInvokesOnceWithFreshContext(t *testing.T) {
	tm := newCountingTimer()
	r := newRunner(tm)

	var seen []apis.Context
	e := entryOf[aTag]("a", static(func(c apis.Context) {
		seen = append(seen, c)
		c.Bench(func() {})
	}))

	first := r.Dispatch(context.Background(), e)
	second := r.Dispatch(context.Background(), e)

	require.Len(t, seen, 2)
	require.Len(t, tm.contexts, 2)
	assert.NotSame(t, seen[0], seen[1], "each dispatch gets a fresh context")
	assert.Empty(t, tm.benchers)
	assert.Equal(t, harness.StatusOK, first.Status)
	assert.Equal(t, harness.StatusOK, second.Status)
	assert.Len(t, first.Samples, 2)
	assert.Equal(t, apis.LoopStatic, first.Kind)
}

func TestDispatch_RuntimeInvokesOnceWithFreshBencher(t *testing.T) {
	tm := newCountingTimer()
	r := newRunner(tm)

	calls := 0
	e := entryOf[bTag]("b", runtime(func(b apis.Bencher) {
		calls++
		b.SampleCount(3).Bench(func() {})
	}))

	res := r.Dispatch(context.Background(), e)

	assert.Equal(t, 1, calls)
	require.Len(t, tm.benchers, 1)
	assert.Empty(t, tm.contexts)
	assert.Equal(t, harness.StatusOK, res.Status)
	assert.Len(t, res.Samples, 3)
	assert.Equal(t, apis.LoopRuntime, res.Kind)
}

func TestDispatch_RuntimeWithoutTriggerHasNoSamples(t *testing.T) {
	r := newRunner(nil)

	res := r.Dispatch(context.Background(), entryOf[bTag]("b", runtime(func(b apis.Bencher) {
		b.SampleCount(5)
	})))

	assert.Equal(t, harness.StatusNoSamples, res.Status)
	assert.NoError(t, res.Err)
	assert.Empty(t, res.Samples)
}

func TestDispatch_PanicIsReported(t *testing.T) {
	r := newRunner(nil)
	boom := errors.New("boom")

	res := r.Dispatch(context.Background(), entryOf[aTag]("a", static(func(apis.Context) {
		panic(boom)
	})))

	assert.Equal(t, harness.StatusFailed, res.Status)
	var pe *harness.PanicError
	require.ErrorAs(t, res.Err, &pe)
	assert.Equal(t, boom, pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.ErrorIs(t, res.Err, boom)
	assert.ErrorIs(t, res.Err, harness.ErrCallablePanicked)
}

func TestRun_SelectionScenario(t *testing.T) {
	entries := []apis.Entry{
		entryOf[aTag]("a", static(measure)),
		entryOf[bTag]("b", static(measure)),
		entryOf[cTag]("c", static(measure)),
	}
	entries[1].Ignore = true

	t.Run("default excludes ignored", func(t *testing.T) {
		report, err := newRunner(nil).Run(context.Background(), entries)
		require.NoError(t, err)
		require.Len(t, report.Results, 2)
		assert.Equal(t, "a", report.Results[0].Label)
		assert.Equal(t, "c", report.Results[1].Label)
		assert.NotEqual(t, uuid.Nil, report.RunID)
		assert.False(t, report.Finished.Before(report.Started))
	})

	t.Run("override includes ignored", func(t *testing.T) {
		report, err := newRunner(nil, config.WithIncludeIgnored(true)).Run(context.Background(), entries)
		require.NoError(t, err)
		require.Len(t, report.Results, 3)
		assert.Equal(t, "b", report.Results[1].Label)
	})
}

func TestRun_DuplicateIdentityRunsNothing(t *testing.T) {
	calls := 0
	body := static(func(c apis.Context) { calls++ })
	entries := []apis.Entry{
		entryOf[aTag]("first", body),
		entryOf[bTag]("other", body),
		entryOf[aTag]("second", body),
	}

	report, err := newRunner(nil).Run(context.Background(), entries)

	assert.Nil(t, report)
	require.ErrorIs(t, err, harness.ErrDuplicateIdentity)
	var de *harness.DuplicateIdentityError
	require.ErrorAs(t, err, &de)
	assert.Len(t, de.Entries, 2)
	assert.Contains(t, err.Error(), "first")
	assert.Contains(t, err.Error(), "second")
	assert.Zero(t, calls)
}

func TestCheckIdentities(t *testing.T) {
	r := newRunner(nil)

	assert.NoError(t, r.CheckIdentities(nil))
	assert.NoError(t, r.CheckIdentities([]apis.Entry{
		entryOf[sumTag[int]]("sum", static(measure)),
		entryOf[sumTag[float64]]("sum", static(measure)),
	}), "instantiations of one generic definition are distinct")

	err := r.CheckIdentities([]apis.Entry{
		{Name: "orphan", Loop: static(measure)},
		{Name: "panicky", GetID: func() apis.ID { panic("no") }, Loop: static(measure)},
	})
	assert.ErrorIs(t, err, harness.ErrNilIdentity)
	assert.Contains(t, err.Error(), "orphan")
	assert.Contains(t, err.Error(), "panicky")
}

func TestRun_PanicDoesNotStopRun(t *testing.T) {
	entries := []apis.Entry{
		entryOf[aTag]("a", static(func(apis.Context) { panic("bad") })),
		entryOf[bTag]("b", static(measure)),
	}

	report, err := newRunner(nil).Run(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, harness.StatusFailed, report.Results[0].Status)
	assert.Equal(t, harness.StatusOK, report.Results[1].Status)
	assert.Equal(t, 1, report.Count(harness.StatusFailed))
}

func TestRun_CancellationSkipsRemaining(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entries := []apis.Entry{
		entryOf[aTag]("a", static(func(c apis.Context) {
			c.Bench(func() {})
			cancel()
		})),
		entryOf[bTag]("b", static(measure)),
		entryOf[cTag]("c", static(measure)),
	}

	report, err := newRunner(nil).Run(ctx, entries)
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	require.Len(t, report.Results, 3)
	assert.Equal(t, harness.StatusOK, report.Results[0].Status)
	assert.Equal(t, harness.StatusSkipped, report.Results[1].Status)
	assert.Equal(t, harness.StatusSkipped, report.Results[2].Status)
	assert.ErrorIs(t, report.Results[2].Err, context.Canceled)
}

func TestRun_SequentialOrder(t *testing.T) {
	var order []string
	mk := func(name string) apis.Loop {
		return static(func(apis.Context) {
			order = append(order, name)
			time.Sleep(time.Millisecond)
		})
	}
	entries := []apis.Entry{
		entryOf[aTag]("a", mk("a")),
		entryOf[bTag]("b", mk("b")),
		entryOf[cTag]("c", mk("c")),
	}

	_, err := newRunner(nil).Run(context.Background(), entries)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/config"
	"dirpx.dev/bench/harness"
)

type pairTag[K comparable, V any] struct{}

func TestLabels_GenericInstantiationsAreQualified(t *testing.T) {
	r := newRunner(nil)
	ints := entryOf[sumTag[int]]("sum", static(measure))
	floats := entryOf[sumTag[float64]]("sum", static(measure))

	labels := r.Labels([]apis.Entry{ints, floats})

	assert.Equal(t, "sum[int]", labels[ints.ID()])
	assert.Equal(t, "sum[float64]", labels[floats.ID()])
}

func TestLabels_UniqueLabelsUnchanged(t *testing.T) {
	r := newRunner(nil)
	a := entryOf[aTag]("a", static(measure))
	s := entryOf[sumTag[int]]("sum", static(measure))

	labels := r.Labels([]apis.Entry{a, s})

	assert.Equal(t, "a", labels[a.ID()])
	assert.Equal(t, "sum", labels[s.ID()])
}

func TestLabels_FallsBackToIdentity(t *testing.T) {
	r := newRunner(nil)
	a := entryOf[aTag]("same", static(measure))
	b := entryOf[bTag]("same", static(measure))

	labels := r.Labels([]apis.Entry{a, b})

	assert.Equal(t, a.ID().String(), labels[a.ID()])
	assert.Equal(t, b.ID().String(), labels[b.ID()])
	assert.NotEqual(t, labels[a.ID()], labels[b.ID()])
}

func TestLabels_DisambiguateOff(t *testing.T) {
	r := newRunner(nil, config.WithDisambiguate(false))
	ints := entryOf[sumTag[int]]("sum", static(measure))
	floats := entryOf[sumTag[float64]]("sum", static(measure))

	labels := r.Labels([]apis.Entry{ints, floats})

	assert.Equal(t, "sum", labels[ints.ID()])
	assert.Equal(t, "sum", labels[floats.ID()])
}

func TestLabels_ReflectedGenericLabels(t *testing.T) {
	r := newRunner(nil)
	a := entryOf[pairTag[string, aTag]]("", static(measure))
	b := entryOf[pairTag[string, bTag]]("", static(measure))

	labels := r.Labels([]apis.Entry{a, b})

	assert.Equal(t, "harness_test.pairTag[string,harness_test.aTag]", labels[a.ID()])
	assert.Equal(t, "harness_test.pairTag[string,harness_test.bTag]", labels[b.ID()])
}

func TestRun_UsesDisambiguatedLabels(t *testing.T) {
	entries := []apis.Entry{
		entryOf[sumTag[int]]("sum", static(measure)),
		entryOf[sumTag[float64]]("sum", static(measure)),
	}

	report, err := newRunner(nil).Run(context.Background(), entries)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "sum[int]", report.Results[0].Label)
	assert.Equal(t, "sum[float64]", report.Results[1].Label)
	assert.Equal(t, 2, report.Count(harness.StatusOK))
}

type explicitTag struct{}

func TestLabels_QualifiedLabelMatchesAnotherEntry(t *testing.T) {
	r := newRunner(nil)
	ints := entryOf[sumTag[int]]("sum", static(measure))
	floats := entryOf[sumTag[float64]]("sum", static(measure))
	other := entryOf[explicitTag]("sum[int]", static(measure))

	labels := r.Labels([]apis.Entry{ints, floats, other})

	assert.Equal(t, "sum[int]", labels[other.ID()], "an entry keeps the label it chose")
	assert.Equal(t, "sum[float64]", labels[floats.ID()])
	assert.Equal(t, ints.ID().String(), labels[ints.ID()])

	seen := make(map[string]apis.ID, len(labels))
	for id, l := range labels {
		if prev, dup := seen[l]; dup {
			t.Fatalf("label %q shared by %s and %s", l, prev, id)
		}
		seen[l] = id
	}
}

type panickyNameTag struct{}

func (panickyNameTag) BenchName() string { panic("no name") }

func TestLabels_PanickingNamerFallsBackToIdentity(t *testing.T) {
	r := newRunner(nil)
	e := entryOf[panickyNameTag]("", static(measure))

	labels := r.Labels([]apis.Entry{e})
	assert.Equal(t, e.ID().String(), labels[e.ID()])

	report, err := r.Run(context.Background(), []apis.Entry{e, entryOf[aTag]("a", static(measure))})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, e.ID().String(), report.Results[0].Label)
	assert.Equal(t, harness.StatusOK, report.Results[1].Status)
}

func TestDispatch_PanickingAccessor(t *testing.T) {
	r := newRunner(nil)
	e := apis.Entry{
		Name:  "broken",
		GetID: func() apis.ID { panic("no id") },
		Loop:  static(measure),
	}

	var res harness.Result
	require.NotPanics(t, func() { res = r.Dispatch(context.Background(), e) })
	assert.True(t, res.ID.IsZero())
	assert.Equal(t, "<none>", res.Label)
	assert.Equal(t, harness.StatusOK, res.Status)
}

func TestLabels_ChosenLabelMatchesIdentityString(t *testing.T) {
	r := newRunner(nil)
	a := entryOf[aTag]("same", static(measure))
	b := entryOf[bTag]("same", static(measure))
	c := entryOf[cTag](a.ID().String(), static(measure))

	labels := r.Labels([]apis.Entry{a, b, c})

	assert.Equal(t, a.ID().String(), labels[a.ID()])
	assert.Equal(t, b.ID().String(), labels[b.ID()])
	assert.Equal(t, c.ID().String(), labels[c.ID()])
}

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

// Package harness drives a catalog of benchmark entries: it validates
// identities, selects entries, resolves their labels and dispatches each one
// to its loop strategy, strictly one after another.
package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/bench/apis"
	"dirpx.dev/bench/resolver"
	"dirpx.dev/bench/strategy"
	"dirpx.dev/bench/timer"
)

// Option configures a Runner.
type Option func(*options)

type options struct {
	logger *slog.Logger
	tp     trace.TracerProvider
	mp     metric.MeterProvider
}

// WithLogger sets the structured logger. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithTracerProvider sets the tracer provider. Nil keeps the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tp = tp
		}
	}
}

// WithMeterProvider sets the meter provider. Nil keeps the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.mp = mp
		}
	}
}

// Runner executes entries. It is safe to share, but its methods never run
// callables concurrently with each other within one Run.
type Runner struct {
	cfg    apis.Config
	res    apis.Resolver
	timer  apis.Timer
	log    *slog.Logger
	tracer trace.Tracer
	ins    instruments
}

// New creates a Runner. A nil resolver uses resolver.Default(); a nil timer
// uses timer.New(cfg).
func New(cfg apis.Config, res apis.Resolver, tm apis.Timer, opts ...Option) *Runner {
	o := options{
		logger: slog.Default(),
		tp:     otel.GetTracerProvider(),
		mp:     otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if res == nil {
		res = resolver.Default()
	}
	if tm == nil {
		tm = timer.New(cfg)
	}

	ins, err := newInstruments(o.mp.Meter(instrumentationName))
	if err != nil {
		o.logger.Warn("bench metrics disabled", "error", err)
	}

	return &Runner{
		cfg:    cfg,
		res:    res,
		timer:  tm,
		log:    o.logger,
		tracer: o.tp.Tracer(instrumentationName),
		ins:    ins,
	}
}

// Config returns the configuration the Runner was built with.
func (r *Runner) Config() apis.Config { return r.cfg }

// Select drops ignored entries unless the configuration includes them.
// Order is preserved.
func (r *Runner) Select(entries []apis.Entry) []apis.Entry {
	out := make([]apis.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Ignore && !r.cfg.IncludeIgnored {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CheckIdentities reports every identity shared by two or more entries and
// every entry without an identity. The result joins one error per problem,
// in catalog order, or is nil.
func (r *Runner) CheckIdentities(entries []apis.Entry) error {
	var (
		order []apis.ID
		seen  = make(map[apis.ID][]apis.Entry, len(entries))
		errs  []error
	)
	for _, e := range entries {
		id := entryID(e)
		if id.IsZero() {
			errs = append(errs, fmt.Errorf("%w: %s", ErrNilIdentity, describe(e)))
			continue
		}
		if _, ok := seen[id]; !ok {
			order = append(order, id)
		}
		seen[id] = append(seen[id], e)
	}
	for _, id := range order {
		if group := seen[id]; len(group) > 1 {
			errs = append(errs, &DuplicateIdentityError{ID: id, Entries: group})
		}
	}
	return errors.Join(errs...)
}

// Labels resolves a display label for every entry.
//
// With Disambiguate on, a label shared by entries with different identities
// is qualified with the identity's type arguments. Any label still shared
// afterwards, including one that now matches another entry's own label, is
// replaced by the identity string of every entry that did not choose it.
func (r *Runner) Labels(entries []apis.Entry) map[apis.ID]string {
	raw := make(map[apis.ID]string, len(entries))
	var order []apis.ID
	for _, e := range entries {
		id := entryID(e)
		if _, ok := raw[id]; ok {
			continue
		}
		raw[id] = r.label(e)
		order = append(order, id)
	}

	labels := make(map[apis.ID]string, len(raw))
	for id, l := range raw {
		labels[id] = l
	}
	if !r.cfg.Disambiguate {
		return labels
	}

	for label, ids := range owners(order, raw) {
		if len(ids) < 2 {
			continue
		}
		for _, id := range ids {
			labels[id] = strategy.Qualify(label, id)
		}
	}

	// Each pass moves at least one entry to its identity string, and
	// identity strings are unique, so this terminates.
	for changed := true; changed; {
		changed = false
		for _, ids := range owners(order, labels) {
			if len(ids) < 2 {
				continue
			}
			var kept []apis.ID
			for _, id := range ids {
				if labels[id] == raw[id] {
					kept = append(kept, id)
				}
			}
			// A single entry that chose this label keeps it, unless another
			// member already sits on its identity string and cannot move.
			keep := len(kept) == 1
			for _, id := range ids {
				if keep && id != kept[0] && labels[id] == id.String() {
					keep = false
				}
			}
			for _, id := range ids {
				if keep && kept[0] == id {
					continue
				}
				if s := id.String(); labels[id] != s {
					labels[id] = s
					changed = true
				}
			}
		}
	}
	return labels
}

// owners groups ids by their label in labels, preserving order.
func owners(order []apis.ID, labels map[apis.ID]string) map[string][]apis.ID {
	out := make(map[string][]apis.ID, len(order))
	for _, id := range order {
		out[labels[id]] = append(out[labels[id]], id)
	}
	return out
}

// label resolves e's label. A resolver that panics, for example through a
// tag's BenchName, yields the identity string instead.
func (r *Runner) label(e apis.Entry) (label string) {
	defer func() {
		if v := recover(); v != nil {
			label = entryID(e).String()
			r.log.Warn("bench label resolution panicked", "id", label, "panic", v)
		}
	}()
	return r.res.Resolve(e, r.cfg)
}

// Dispatch resolves e's label and runs it once.
func (r *Runner) Dispatch(ctx context.Context, e apis.Entry) Result {
	return r.dispatch(ctx, e, r.label(e))
}

// Run checks, selects, labels and dispatches entries in order.
//
// Shared identities are a configuration error: Run returns it and runs
// nothing. When ctx is cancelled between entries, the remaining ones are
// reported as StatusSkipped and Run returns the report with ctx.Err().
func (r *Runner) Run(ctx context.Context, entries []apis.Entry) (*Report, error) {
	if err := r.CheckIdentities(entries); err != nil {
		r.log.Error("bench catalog rejected", "error", err)
		return nil, err
	}

	selected := r.Select(entries)
	labels := r.Labels(selected)
	report := &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
		Results: make([]Result, 0, len(selected)),
	}

	ctx, span := r.tracer.Start(ctx, "bench.Run", trace.WithAttributes(
		attrRunID.String(report.RunID.String()),
		attrEntries.Int(len(entries)),
		attrSelected.Int(len(selected)),
	))
	defer span.End()

	log := r.log.With("run_id", report.RunID.String())
	log.Info("bench run started", "entries", len(entries), "selected", len(selected))

	for _, e := range selected {
		label := labels[entryID(e)]
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, Result{
				ID:     entryID(e),
				Label:  label,
				Entry:  e,
				Kind:   e.Loop.Kind(),
				Status: StatusSkipped,
				Err:    err,
			})
			continue
		}
		report.Results = append(report.Results, r.dispatch(ctx, e, label))
	}
	report.Finished = time.Now()

	failed := report.Count(StatusFailed)
	skipped := report.Count(StatusSkipped)
	if failed > 0 {
		span.SetStatus(codes.Error, "benchmark callables failed")
	}
	log.Info("bench run finished",
		"ok", report.Count(StatusOK),
		"no_samples", report.Count(StatusNoSamples),
		"failed", failed,
		"skipped", skipped,
		"elapsed", report.Finished.Sub(report.Started),
	)

	if skipped > 0 {
		return report, ctx.Err()
	}
	return report, nil
}

func (r *Runner) dispatch(ctx context.Context, e apis.Entry, label string) Result {
	res := Result{
		ID:    entryID(e),
		Label: label,
		Entry: e,
		Kind:  e.Loop.Kind(),
	}

	ctx, span := r.tracer.Start(ctx, "bench.Dispatch", trace.WithAttributes(
		attrName.String(label),
		attrPath.String(e.Path),
		kindAttr(res.Kind),
	))
	defer span.End()

	start := time.Now()
	res.Samples, res.Err = r.invoke(e.Loop)
	res.Elapsed = time.Since(start)

	switch {
	case res.Err != nil:
		res.Status = StatusFailed
	case len(res.Samples) == 0:
		res.Status = StatusNoSamples
	default:
		res.Status = StatusOK
	}

	span.SetAttributes(
		attrStatus.String(res.Status.String()),
		attrSamples.Int(len(res.Samples)),
		seconds(res.Elapsed),
	)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
		r.log.Error("bench dispatch failed", "name", label, "kind", res.Kind.String(), "error", res.Err)
	} else {
		r.log.Debug("bench dispatched",
			"name", label,
			"kind", res.Kind.String(),
			"status", res.Status.String(),
			"samples", len(res.Samples),
		)
	}
	r.ins.record(ctx, res)
	return res
}

// invoke calls the loop's callable exactly once with a fresh collaborator.
// Samples recorded before a panic are kept.
func (r *Runner) invoke(l apis.Loop) (samples []time.Duration, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
		}
	}()

	l.Match(
		func(fn apis.StaticFunc) {
			c := r.timer.NewContext()
			defer func() { samples = c.Samples() }()
			fn(c)
		},
		func(fn apis.RuntimeFunc) {
			b := r.timer.NewBencher()
			defer func() { samples = b.Samples() }()
			fn(b)
		},
	)
	return samples, nil
}

// entryID reads e's identity, treating a panicking accessor as no identity.
func entryID(e apis.Entry) (id apis.ID) {
	defer func() {
		if recover() != nil {
			id = apis.ID{}
		}
	}()
	return e.ID()
}

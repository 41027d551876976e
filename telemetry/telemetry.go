// Package telemetry collects hierarchical timings for a simulation run.
//
// Collectors travel through context so that the loader, parser and
// simulation can be instrumented without changing their signatures. When no
// collector is present every call is a no-op.
//
//	collector := telemetry.NewTimingCollector()
//	ctx = telemetry.WithCollector(ctx, collector)
//
//	root := collector.Start("banksim run")
//	ctx = telemetry.WithRootTimer(ctx, root)
//
//	timer := telemetry.StartTimer(ctx, "parser.lexing")
//	// ... work ...
//	timer.End()
//
//	root.End()
//	collector.Report(os.Stderr, nil)
package telemetry

import (
	"context"
	"io"

	"github.com/robinvdvleuten/banksim/output"
)

type contextKey int

const (
	collectorKey contextKey = iota
	rootTimerKey
)

// Collector gathers timings and reports them.
type Collector interface {
	// Start begins timing an operation. The timer must be ended with End.
	Start(name string) Timer

	// Report writes the collected timings to w. styles may be nil.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation's timing.
type Timer interface {
	// End stops the timer.
	End()

	// Child creates a timer nested under this one.
	Child(name string) Timer
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the collector in ctx, or one that does nothing.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

// WithRootTimer makes timer the parent of every timer started with
// StartTimer on the returned context.
func WithRootTimer(ctx context.Context, timer Timer) context.Context {
	return context.WithValue(ctx, rootTimerKey, timer)
}

// StartTimer starts a timer nested under the context's root timer, falling
// back to the collector in ctx.
func StartTimer(ctx context.Context, name string) Timer {
	if root, ok := ctx.Value(rootTimerKey).(Timer); ok {
		return root.Child(name)
	}
	return FromContext(ctx).Start(name)
}

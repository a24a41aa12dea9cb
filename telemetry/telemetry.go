// Package telemetry records dispatch passes with OpenTelemetry.
//
// Recorder implements [dispatch.Observer]. Each pass becomes one span and
// feeds a pass counter and a duration histogram; every route match feeds a
// match counter labeled by the route's pattern text, so metric cardinality
// is bounded by the size of the dispatch table rather than by request paths.
//
//	rec, err := telemetry.New(telemetry.Config{})
//	if err != nil {
//		return err
//	}
//
//	d := dispatch.NewDispatcher(table).Observe(rec)
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/vitalvas/cascade/dispatch"
)

// scopeName is the instrumentation scope for all instruments and spans.
const scopeName = "github.com/vitalvas/cascade/telemetry"

// Config holds the telemetry options.
type Config struct {
	// MeterProvider supplies the meter for the dispatch instruments.
	// Defaults to the global otel.GetMeterProvider().
	MeterProvider metric.MeterProvider

	// TracerProvider supplies the tracer for dispatch spans.
	// Defaults to the global otel.GetTracerProvider().
	TracerProvider trace.TracerProvider
}

// Recorder is an OpenTelemetry-backed [dispatch.Observer]. All methods
// are safe for concurrent use; the per-pass state lives in the opaque
// slot the observer contract provides, not in the Recorder.
type Recorder struct {
	tracer   trace.Tracer
	passes   metric.Int64Counter
	duration metric.Float64Histogram
	matches  metric.Int64Counter
}

// New creates a Recorder with the following instruments:
//
//	cascade.dispatch.count     counter     dispatch.method, dispatch.outcome
//	cascade.dispatch.duration  histogram   dispatch.method, dispatch.outcome (ms)
//	cascade.route.matched      counter     dispatch.pattern
func New(cfg Config) (*Recorder, error) {
	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	meter := mp.Meter(scopeName)
	rec := &Recorder{tracer: tp.Tracer(scopeName)}

	var err error

	rec.passes, err = meter.Int64Counter(
		"cascade.dispatch.count",
		metric.WithDescription("Completed dispatch passes"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: pass counter: %w", err)
	}

	rec.duration, err = meter.Float64Histogram(
		"cascade.dispatch.duration",
		metric.WithDescription("Duration of a dispatch pass"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: duration histogram: %w", err)
	}

	rec.matches, err = meter.Int64Counter(
		"cascade.route.matched",
		metric.WithDescription("Route matches by pattern"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: match counter: %w", err)
	}

	return rec, nil
}

// DispatchStart opens the pass span. The span is carried in the opaque
// observer state and travels to the handlers through the derived context.
func (rec *Recorder) DispatchStart(ctx context.Context, method, path string) (context.Context, any) {
	ctx, span := rec.tracer.Start(ctx, "cascade.dispatch",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("dispatch.method", method),
			attribute.String("dispatch.path", path),
		),
	)

	return ctx, span
}

// RouteMatched counts the match and marks it on the pass span.
func (rec *Recorder) RouteMatched(ctx context.Context, state any, r *dispatch.Route) {
	pattern := attribute.String("dispatch.pattern", r.GetPattern())
	rec.matches.Add(ctx, 1, metric.WithAttributes(pattern))

	if span, ok := state.(trace.Span); ok {
		span.AddEvent("route.matched", trace.WithAttributes(pattern))
	}
}

// DispatchEnd records the pass metrics and closes the span.
func (rec *Recorder) DispatchEnd(ctx context.Context, state any, dc *dispatch.Context, out dispatch.Outcome) {
	attrs := metric.WithAttributes(
		attribute.String("dispatch.method", dc.Method()),
		attribute.String("dispatch.outcome", out.Kind.String()),
	)

	rec.passes.Add(ctx, 1, attrs)
	rec.duration.Record(ctx, float64(dc.Elapsed())/float64(time.Millisecond), attrs)

	span, ok := state.(trace.Span)
	if !ok {
		return
	}

	span.SetAttributes(
		attribute.String("dispatch.outcome", out.Kind.String()),
		attribute.Int("dispatch.matched", out.Matched),
	)

	if out.Kind == dispatch.Failed && out.Err != nil {
		span.RecordError(out.Err)
		span.SetStatus(codes.Error, out.Err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}

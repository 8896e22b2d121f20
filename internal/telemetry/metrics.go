package telemetry

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "biomelink"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)
)

var (
	connectTotal    metric.Int64Counter
	connectDuration metric.Float64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the instruments. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		connectTotal, err = meter.Int64Counter(
			"biomelink_connect_total",
			metric.WithDescription("Total number of connect attempts by outcome kind"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		connectDuration, err = meter.Float64Histogram(
			"biomelink_connect_duration_seconds",
			metric.WithDescription("Duration of connect attempts"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// StartSpan starts a span for one pipeline stage.
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan records the outcome kind on span and ends it.
func EndSpan(span trace.Span, kind string, err error) {
	span.SetAttributes(attribute.String("biomelink.outcome", kind))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
	}
	span.End()
}

// RecordConnect records the outcome and duration of one connect attempt.
func RecordConnect(ctx context.Context, kind string, duration time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind))
	connectTotal.Add(ctx, 1, attrs)
	connectDuration.Record(ctx, duration.Seconds(), attrs)
}

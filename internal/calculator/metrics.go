package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments, replaced by InitMetrics. They start as no-ops so the
// handlers work before (or without) metrics initialisation.
var (
	opsCounter   metric.Int64Counter     = noop.Int64Counter{}
	opsHistogram metric.Float64Histogram = noop.Float64Histogram{}
	errorCounter metric.Int64Counter     = noop.Int64Counter{}
	resultDegree metric.Int64Gauge       = noop.Int64Gauge{}
)

// InitMetrics registers the polynomial calculator's OTel metric instruments.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("polynomial")

	var err error

	opsCounter, err = meter.Int64Counter("polynomial.operations.total",
		metric.WithDescription("Total number of polynomial operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("polynomial.operation.duration",
		metric.WithDescription("Duration of polynomial operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("polynomial.errors.total",
		metric.WithDescription("Total number of polynomial operation errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultDegree, err = meter.Int64Gauge("polynomial.result.degree",
		metric.WithDescription("Degree of the last polynomial result"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result degree gauge: %w", err)
	}

	return nil
}

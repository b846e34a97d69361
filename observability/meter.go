package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/tripcost/logger"
)

// Outcomes recorded for each operation.
const (
	OutcomeFound  = "found"
	OutcomeAbsent = "absent"
	OutcomeError  = "error"
)

// InitMeter creates an OTLP/HTTP meter provider and installs it globally.
// The caller must shut it down on exit.
func InitMeter(ctx context.Context, cfg Config, log *logger.Logger) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(newResource(cfg)),
	)

	otel.SetMeterProvider(mp)

	log.Info("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns the client meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// Metrics holds the client's metric instruments.
type Metrics struct {
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	operationActive   metric.Int64UpDownCounter
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operationTotal, err := meter.Int64Counter("budget.operation.total",
		metric.WithDescription("Client operations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating budget.operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("budget.operation.duration",
		metric.WithDescription("Duration of client operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating budget.operation.duration histogram: %w", err)
	}

	operationActive, err := meter.Int64UpDownCounter("budget.operation.active",
		metric.WithDescription("Number of in-flight client operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating budget.operation.active counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("budget.error.total",
		metric.WithDescription("Failed client operations by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating budget.error.total counter: %w", err)
	}

	return &Metrics{
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		operationActive:   operationActive,
		errorTotal:        errorTotal,
	}, nil
}

// RecordStart increments the in-flight operation count.
func (m *Metrics) RecordStart(ctx context.Context, operation string) {
	m.operationActive.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordEnd decrements in-flight operations and records the completed one.
func (m *Metrics) RecordEnd(ctx context.Context, operation, outcome string, duration time.Duration) {
	op := attribute.String("operation", operation)
	m.operationActive.Add(ctx, -1, metric.WithAttributes(op))
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(op, attribute.String("outcome", outcome)))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(op))
}

// RecordError records a failed operation by error code.
func (m *Metrics) RecordError(ctx context.Context, operation, code string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("code", code),
	))
}

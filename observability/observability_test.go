package observability

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/tripcost/logger"
)

func newRecorder(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter, tp
}

func newMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	assert.Equal(t, "tripcost", cfg.ServiceName)
	assert.Equal(t, "localhost:4318", cfg.Endpoint)
	assert.Equal(t, 1.0, cfg.SampleRate)
	assert.Equal(t, 15*time.Second, cfg.Interval)
	assert.NoError(t, cfg.Validate())

	cfg.SampleRate = 2
	assert.Error(t, cfg.Validate())
}

func TestStartOperation_Found(t *testing.T) {
	exporter, tp := newRecorder(t)
	metrics, reader := newMetrics(t)
	ctx := context.Background()

	ctx, op := StartOperation(ctx, tp.Tracer("test"), metrics, "currency",
		attribute.String(AttrResourceID, "usd"))
	op.End(ctx, OutcomeFound, nil, "")
	op.End(ctx, OutcomeAbsent, nil, "")

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "budget.currency", spans[0].Name)
	assert.Contains(t, spans[0].Attributes, attribute.String(AttrResourceID, "usd"))
	assert.Contains(t, spans[0].Attributes, attribute.String(AttrOutcome, OutcomeFound))

	got := collect(t, reader)
	total, ok := got["budget.operation.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, total.DataPoints, 1)
	assert.Equal(t, int64(1), total.DataPoints[0].Value)
	outcome, _ := total.DataPoints[0].Attributes.Value("outcome")
	assert.Equal(t, OutcomeFound, outcome.AsString())

	_, ok = got["budget.operation.duration"]
	assert.True(t, ok)
}

func TestStartOperation_Error(t *testing.T) {
	exporter, tp := newRecorder(t)
	metrics, reader := newMetrics(t)
	ctx := context.Background()

	ctx, op := StartOperation(ctx, tp.Tracer("test"), metrics, "categories")
	op.End(ctx, OutcomeFound, fmt.Errorf("boom"), "UNAUTHORIZED")

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.String(AttrOutcome, OutcomeError))

	got := collect(t, reader)
	errs, ok := got["budget.error.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, errs.DataPoints, 1)
	code, _ := errs.DataPoints[0].Attributes.Value("code")
	assert.Equal(t, "UNAUTHORIZED", code.AsString())
}

func TestStartOperation_NilMetrics(t *testing.T) {
	_, tp := newRecorder(t)
	ctx, op := StartOperation(context.Background(), tp.Tracer("test"), nil, "raw")
	assert.True(t, op.Span().IsRecording())
	op.End(ctx, OutcomeAbsent, nil, "")
	assert.GreaterOrEqual(t, op.Duration(), time.Duration(0))
}

func TestNewMetrics_Noop(t *testing.T) {
	m, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	ctx := context.Background()
	m.RecordStart(ctx, "x")
	m.RecordEnd(ctx, "x", OutcomeFound, time.Millisecond)
	m.RecordError(ctx, "x", "TIMEOUT")
}

func TestNewSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), newSampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), newSampler(0).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.5).Description(), newSampler(0.5).Description())
}

func TestNewResource(t *testing.T) {
	res := newResource(Config{ServiceName: "svc", Environment: "test", ServiceVersion: "1.2.3"})
	assert.Empty(t, res.SchemaURL())
	v, ok := res.Set().Value(AttrServiceName)
	require.True(t, ok)
	assert.Equal(t, "svc", v.AsString())
	v, ok = res.Set().Value(AttrServiceVersion)
	require.True(t, ok)
	assert.Equal(t, "1.2.3", v.AsString())
}

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{}, nil)
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInitTracer(t *testing.T) {
	cfg := Config{Endpoint: "localhost:4318", Insecure: true}
	cfg.ApplyDefaults()

	tp, err := InitTracer(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tp)
	assert.NotNil(t, Tracer())
	assert.NoError(t, tp.Shutdown(context.Background()))
}

package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one traced and metered client call.
type Operation struct {
	Name      string
	StartTime time.Time

	span    trace.Span
	metrics *Metrics
	ended   bool
}

// StartOperation starts a span named "budget.<name>" and records the start.
// metrics may be nil.
func StartOperation(ctx context.Context, tracer trace.Tracer, metrics *Metrics, name string, attrs ...attribute.KeyValue) (context.Context, *Operation) {
	attrs = append(attrs, attribute.String(AttrOperation, name))
	ctx, span := tracer.Start(ctx, "budget."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	if metrics != nil {
		metrics.RecordStart(ctx, name)
	}
	return ctx, &Operation{Name: name, StartTime: time.Now(), span: span, metrics: metrics}
}

// Span returns the operation's span.
func (o *Operation) Span() trace.Span {
	return o.span
}

// End finishes the operation with an outcome. errCode labels the error
// counter when err is non-nil. Calling End twice is a no-op.
func (o *Operation) End(ctx context.Context, outcome string, err error, errCode string) {
	if o.ended {
		return
	}
	o.ended = true
	duration := time.Since(o.StartTime)

	if err != nil {
		outcome = OutcomeError
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
		o.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
	}
	o.span.SetAttributes(attribute.String(AttrOutcome, outcome))
	o.span.End()

	if o.metrics != nil {
		o.metrics.RecordEnd(ctx, o.Name, outcome, duration)
		if err != nil {
			o.metrics.RecordError(ctx, o.Name, errCode)
		}
	}
}

// Duration returns the elapsed time since the operation started.
func (o *Operation) Duration() time.Duration {
	return time.Since(o.StartTime)
}

package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jrjohn/docstore-users/internal/observability"
)

const tracerName = "github.com/jrjohn/docstore-users/internal/domain/dao/mongo"

// OperationRecorder receives one sample per database call.
// *observability.MetricsProvider satisfies it.
type OperationRecorder interface {
	RecordDBOperation(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Instrumenter wraps database calls in a client span and a metric sample.
// A nil *Instrumenter runs calls without instrumentation.
type Instrumenter struct {
	variant    string
	collection string
	recorder   OperationRecorder
	tracer     trace.Tracer
}

// NewInstrumenter creates an Instrumenter labelling operations as "<variant>.<op>".
// recorder may be nil.
func NewInstrumenter(variant, collection string, recorder OperationRecorder) *Instrumenter {
	return &Instrumenter{
		variant:    variant,
		collection: collection,
		recorder:   recorder,
		tracer:     otel.Tracer(tracerName),
	}
}

// Observe runs fn inside a span named after the operation.
// mongo.ErrNoDocuments counts as success: a miss is an answer, not a fault.
func (in *Instrumenter) Observe(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	if in == nil {
		return fn(ctx)
	}

	name := in.variant + "." + op
	ctx, span := in.tracer.Start(ctx, "mongo."+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			observability.AttrDBSystem.String("mongodb"),
			observability.AttrDBOperation.String(op),
			observability.AttrDBCollection.String(in.collection),
			observability.AttrVariant.String(in.variant),
		),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	success := err == nil || errors.Is(err, mongo.ErrNoDocuments)

	if !success {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if in.recorder != nil {
		in.recorder.RecordDBOperation(ctx, name, success, time.Since(start))
	}
	return err
}

package mongo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type recordedOp struct {
	name    string
	success bool
}

type fakeRecorder struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (r *fakeRecorder) RecordDBOperation(_ context.Context, op string, success bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, recordedOp{op, success})
}

func TestInstrumenter_Observe(t *testing.T) {
	rec := &fakeRecorder{}
	sr := tracetest.NewSpanRecorder()
	inst := NewInstrumenter("native", "users", rec)
	inst.tracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)).Tracer("test")

	ctx := context.Background()
	require.NoError(t, inst.Observe(ctx, "insert", func(context.Context) error { return nil }))
	assert.ErrorIs(t, inst.Observe(ctx, "findOne", func(context.Context) error { return mongo.ErrNoDocuments }), mongo.ErrNoDocuments)
	boom := errors.New("boom")
	assert.ErrorIs(t, inst.Observe(ctx, "update", func(context.Context) error { return boom }), boom)

	assert.Equal(t, []recordedOp{
		{"native.insert", true},
		{"native.findOne", true},
		{"native.update", false},
	}, rec.ops)

	spans := sr.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "mongo.native.insert", spans[0].Name())
	assert.NotEqual(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, codes.Error, spans[2].Status().Code)
}

func TestInstrumenter_NilIsPassThrough(t *testing.T) {
	var inst *Instrumenter
	called := false
	err := inst.Observe(context.Background(), "count", func(context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestInstrumenter_NilRecorder(t *testing.T) {
	inst := NewInstrumenter("mapped", "users", nil)
	assert.NotPanics(t, func() {
		_ = inst.Observe(context.Background(), "delete", func(context.Context) error { return nil })
	})
}

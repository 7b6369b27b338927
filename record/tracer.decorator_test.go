package record_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-stubs/recordstore/record"
)

func TestTracedStore(t *testing.T) {
	t.Parallel()

	t.Run("behaves like the plain store", func(t *testing.T) {
		t.Parallel()

		record.TestSuite(t, func(opts ...record.Option) record.Store {
			return record.NewTracedStore(noop.NewTracerProvider(), record.NewMemoryStore(nil, opts...))
		})
	})

	t.Run("successful operation", func(t *testing.T) {
		t.Parallel()

		store := record.NewTracedStore(newFakeTracer(t), record.NewMemoryStore(nil))

		_, err := store.Create(ctx, testRecord())
		assert.NoError(t, err)
	})

	t.Run("failed operation", func(t *testing.T) {
		t.Parallel()

		store := record.NewTracedStore(newFakeTracer(t), record.NewMemoryStore(nil))

		_, err := store.Find(ctx, 999)
		assert.Error(t, err)
	})
}

func newFakeTracer(t *testing.T) trace.TracerProvider { //nolint:ireturn
	t.Helper()

	return &fakeTracerProvider{t: t}
}

type (
	fakeTracerProvider struct {
		embedded.TracerProvider
		t *testing.T
	}
	fakeTracer struct {
		embedded.Tracer
		t *testing.T
	}
	fakeSpan struct {
		embedded.Span
		t *testing.T
	}
)

var _ trace.TracerProvider = (*fakeTracerProvider)(nil)

func (f fakeTracerProvider) Tracer(name string, _ ...trace.TracerOption) trace.Tracer { //nolint:ireturn
	f.t.Helper()

	assert.Equal(f.t, "recordstore", name)

	return &fakeTracer{t: f.t}
}

var _ trace.Tracer = (*fakeTracer)(nil)

func (f fakeTracer) Start( //nolint:ireturn
	ctx context.Context,
	spanName string,
	opts ...trace.SpanStartOption,
) (context.Context, trace.Span) {
	f.t.Helper()

	assert.Equal(f.t, "store", spanName)
	assert.Len(f.t, opts, 1)

	return ctx, &fakeSpan{t: f.t}
}

var _ trace.Span = (*fakeSpan)(nil)

func (f fakeSpan) End(_ ...trace.SpanEndOption) {}

func (f fakeSpan) AddEvent(_ string, _ ...trace.EventOption) {
	panic("implement me")
}

func (f fakeSpan) AddLink(_ trace.Link) {
	panic("implement me")
}

func (f fakeSpan) IsRecording() bool {
	panic("implement me")
}

func (f fakeSpan) RecordError(_ error, _ ...trace.EventOption) {
	panic("implement me")
}

func (f fakeSpan) SpanContext() trace.SpanContext {
	panic("implement me")
}

func (f fakeSpan) SetStatus(code codes.Code, _ string) {
	f.t.Helper()

	// Only reached when the store operation fails.
	assert.Equal(f.t, codes.Error, code)
}

func (f fakeSpan) SetName(_ string) {
	panic("implement me")
}

func (f fakeSpan) SetAttributes(_ ...attribute.KeyValue) {
	panic("implement me")
}

func (f fakeSpan) TracerProvider() trace.TracerProvider { //nolint:ireturn
	panic("implement me")
}

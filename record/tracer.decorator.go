package record

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// NewTracedStore returns a Store starting one span per operation of next,
// recording an error status when the operation fails.
func NewTracedStore(traceProvider trace.TracerProvider, next Store) Store {
	return &tracedStore{
		tracer: traceProvider.Tracer("recordstore"),
		next:   next,
	}
}

type tracedStore struct {
	tracer trace.Tracer
	next   Store
}

var _ Store = (*tracedStore)(nil)

func (s *tracedStore) All(ctx context.Context) ([]Record, error) {
	ctx, span := s.start(ctx, "all")
	defer span.End()

	all, err := s.next.All(ctx)
	s.finish(span, err)

	return all, err
}

func (s *tracedStore) Find(ctx context.Context, id int) (Record, error) {
	ctx, span := s.start(ctx, "find")
	defer span.End()

	rec, err := s.next.Find(ctx, id)
	s.finish(span, err)

	return rec, err
}

func (s *tracedStore) Create(ctx context.Context, data Record) (int, error) {
	ctx, span := s.start(ctx, "create")
	defer span.End()

	id, err := s.next.Create(ctx, data)
	s.finish(span, err)

	return id, err
}

func (s *tracedStore) Update(ctx context.Context, id int, data Record) (Record, error) {
	ctx, span := s.start(ctx, "update")
	defer span.End()

	prev, err := s.next.Update(ctx, id, data)
	s.finish(span, err)

	return prev, err
}

func (s *tracedStore) Replace(ctx context.Context, id int, data Record) (Record, error) {
	ctx, span := s.start(ctx, "replace")
	defer span.End()

	prev, err := s.next.Replace(ctx, id, data)
	s.finish(span, err)

	return prev, err
}

func (s *tracedStore) Delete(ctx context.Context, id int) (Record, error) {
	ctx, span := s.start(ctx, "delete")
	defer span.End()

	prev, err := s.next.Delete(ctx, id)
	s.finish(span, err)

	return prev, err
}

func (s *tracedStore) Validate(ctx context.Context, data Record) error {
	ctx, span := s.start(ctx, "validate")
	defer span.End()

	err := s.next.Validate(ctx, data)
	s.finish(span, err)

	return err
}

func (s *tracedStore) Count(ctx context.Context) (int, error) {
	ctx, span := s.start(ctx, "count")
	defer span.End()

	count, err := s.next.Count(ctx)
	s.finish(span, err)

	return count, err
}

func (s *tracedStore) IsEmpty(ctx context.Context) (bool, error) {
	ctx, span := s.start(ctx, "is-empty")
	defer span.End()

	empty, err := s.next.IsEmpty(ctx)
	s.finish(span, err)

	return empty, err
}

func (s *tracedStore) Exists(ctx context.Context, id int) (bool, error) {
	ctx, span := s.start(ctx, "exists")
	defer span.End()

	exists, err := s.next.Exists(ctx, id)
	s.finish(span, err)

	return exists, err
}

func (s *tracedStore) Clear(ctx context.Context) error {
	ctx, span := s.start(ctx, "clear")
	defer span.End()

	err := s.next.Clear(ctx)
	s.finish(span, err)

	return err
}

func (s *tracedStore) start(ctx context.Context, op string) (context.Context, trace.Span) { //nolint:ireturn // span is an interface by design of the otel api
	return s.tracer.Start(ctx, "store",
		trace.WithAttributes(attribute.String("operation", op)),
	)
}

func (s *tracedStore) finish(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
}

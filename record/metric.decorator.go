package record

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// NewMeteredStore returns a Store recording an operation counter and a
// duration histogram for every call to next, labelled with the operation
// name and whether it succeeded.
func NewMeteredStore(meterProvider metric.MeterProvider, next Store) Store {
	meter := meterProvider.Meter("recordstore")

	counter, _ := meter.Int64Counter("recordstore_operations_total",
		metric.WithDescription("number of store operations"))
	duration, _ := meter.Float64Histogram("recordstore_operation_duration_seconds",
		metric.WithDescription("duration of store operations"))

	return &meteredStore{
		counter:  counter,
		duration: duration,
		next:     next,
	}
}

type meteredStore struct {
	counter  metric.Int64Counter
	duration metric.Float64Histogram
	next     Store
}

var _ Store = (*meteredStore)(nil)

func (s *meteredStore) All(ctx context.Context) ([]Record, error) {
	start := time.Now()

	all, err := s.next.All(ctx)
	s.measure(ctx, "all", start, err)

	return all, err
}

func (s *meteredStore) Find(ctx context.Context, id int) (Record, error) {
	start := time.Now()

	rec, err := s.next.Find(ctx, id)
	s.measure(ctx, "find", start, err)

	return rec, err
}

func (s *meteredStore) Create(ctx context.Context, data Record) (int, error) {
	start := time.Now()

	id, err := s.next.Create(ctx, data)
	s.measure(ctx, "create", start, err)

	return id, err
}

func (s *meteredStore) Update(ctx context.Context, id int, data Record) (Record, error) {
	start := time.Now()

	prev, err := s.next.Update(ctx, id, data)
	s.measure(ctx, "update", start, err)

	return prev, err
}

func (s *meteredStore) Replace(ctx context.Context, id int, data Record) (Record, error) {
	start := time.Now()

	prev, err := s.next.Replace(ctx, id, data)
	s.measure(ctx, "replace", start, err)

	return prev, err
}

func (s *meteredStore) Delete(ctx context.Context, id int) (Record, error) {
	start := time.Now()

	prev, err := s.next.Delete(ctx, id)
	s.measure(ctx, "delete", start, err)

	return prev, err
}

func (s *meteredStore) Validate(ctx context.Context, data Record) error {
	start := time.Now()

	err := s.next.Validate(ctx, data)
	s.measure(ctx, "validate", start, err)

	return err
}

func (s *meteredStore) Count(ctx context.Context) (int, error) {
	start := time.Now()

	count, err := s.next.Count(ctx)
	s.measure(ctx, "count", start, err)

	return count, err
}

func (s *meteredStore) IsEmpty(ctx context.Context) (bool, error) {
	start := time.Now()

	empty, err := s.next.IsEmpty(ctx)
	s.measure(ctx, "is-empty", start, err)

	return empty, err
}

func (s *meteredStore) Exists(ctx context.Context, id int) (bool, error) {
	start := time.Now()

	exists, err := s.next.Exists(ctx, id)
	s.measure(ctx, "exists", start, err)

	return exists, err
}

func (s *meteredStore) Clear(ctx context.Context) error {
	start := time.Now()

	err := s.next.Clear(ctx)
	s.measure(ctx, "clear", start, err)

	return err
}

func (s *meteredStore) measure(ctx context.Context, op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	opt := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("status", status),
	)

	s.counter.Add(ctx, 1, opt)
	s.duration.Record(ctx, time.Since(start).Seconds(), opt)
}

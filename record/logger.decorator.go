package record

import (
	"context"
	"log/slog"
)

// NewLoggedStore returns a Store logging every operation of next at debug
// level. Inject it in place of the bare store when a test run should show
// what the code under test does to the collection.
func NewLoggedStore(logger *slog.Logger, next Store) Store {
	return &loggedStore{
		logger: logger,
		next:   next,
	}
}

type loggedStore struct {
	logger *slog.Logger
	next   Store
}

var _ Store = (*loggedStore)(nil)

func (s *loggedStore) All(ctx context.Context) ([]Record, error) {
	all, err := s.next.All(ctx)
	s.log(ctx, "all", err, slog.Int("records", len(all)))

	return all, err
}

func (s *loggedStore) Find(ctx context.Context, id int) (Record, error) {
	rec, err := s.next.Find(ctx, id)
	s.log(ctx, "find", err, slog.Int("id", id))

	return rec, err
}

func (s *loggedStore) Create(ctx context.Context, data Record) (int, error) {
	id, err := s.next.Create(ctx, data)
	s.log(ctx, "create", err, slog.Int("id", id))

	return id, err
}

func (s *loggedStore) Update(ctx context.Context, id int, data Record) (Record, error) {
	prev, err := s.next.Update(ctx, id, data)
	s.log(ctx, "update", err, slog.Int("id", id))

	return prev, err
}

func (s *loggedStore) Replace(ctx context.Context, id int, data Record) (Record, error) {
	prev, err := s.next.Replace(ctx, id, data)
	s.log(ctx, "replace", err, slog.Int("id", id))

	return prev, err
}

func (s *loggedStore) Delete(ctx context.Context, id int) (Record, error) {
	prev, err := s.next.Delete(ctx, id)
	s.log(ctx, "delete", err, slog.Int("id", id))

	return prev, err
}

func (s *loggedStore) Validate(ctx context.Context, data Record) error {
	err := s.next.Validate(ctx, data)
	s.log(ctx, "validate", err)

	return err
}

func (s *loggedStore) Count(ctx context.Context) (int, error) {
	count, err := s.next.Count(ctx)
	s.log(ctx, "count", err, slog.Int("records", count))

	return count, err
}

func (s *loggedStore) IsEmpty(ctx context.Context) (bool, error) {
	empty, err := s.next.IsEmpty(ctx)
	s.log(ctx, "is-empty", err, slog.Bool("empty", empty))

	return empty, err
}

func (s *loggedStore) Exists(ctx context.Context, id int) (bool, error) {
	exists, err := s.next.Exists(ctx, id)
	s.log(ctx, "exists", err, slog.Int("id", id), slog.Bool("exists", exists))

	return exists, err
}

func (s *loggedStore) Clear(ctx context.Context) error {
	err := s.next.Clear(ctx)
	s.log(ctx, "clear", err)

	return err
}

func (s *loggedStore) log(ctx context.Context, op string, err error, attrs ...slog.Attr) {
	attrs = append([]slog.Attr{slog.String("operation", op)}, attrs...)

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelDebug, "store operation failed", attrs...)

		return
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "store operation succeeded", attrs...)
}

// NewNoopLogger returns a logger that performs no operations.
// Ideal as dependency in tests.
func NewNoopLogger() *slog.Logger {
	return slog.New(noopHandler{})
}

type noopHandler struct{}

var _ slog.Handler = (*noopHandler)(nil)

func (n noopHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (n noopHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (n noopHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return n
}

func (n noopHandler) WithGroup(_ string) slog.Handler {
	return n
}

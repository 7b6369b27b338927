package record

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-stubs/recordstore/record/testdata"
)

// TestSuite runs the behavioral contract of a Store against any
// implementation. Use it to verify that a decorated store or your own
// extension still behaves like the plain MemoryStore.
func TestSuite( //nolint:tparallel,maintidx // t.Parallel can only be called once, the caller decides
	t *testing.T,
	newStore func(opts ...Option) Store,
) {
	t.Helper()

	if newStore == nil {
		t.Fatal("store constructor is nil")
	}

	ctx := context.Background()

	t.Run("new store is empty", func(t *testing.T) {
		t.Parallel()

		store := newStore()
		require.NotNil(t, store)

		all, err := store.All(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		empty, err := store.IsEmpty(ctx)
		assert.NoError(t, err)
		assert.True(t, empty)
	})

	t.Run("Create", func(t *testing.T) {
		t.Parallel()

		t.Run("valid record", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			rec := testdata.TestRecord()

			id, err := store.Create(ctx, rec)
			assert.NoError(t, err)
			assert.Equal(t, 0, id, "first record occupies the first position")

			got, err := store.Find(ctx, id)
			assert.NoError(t, err)
			assert.Equal(t, Record(rec), got)
		})

		t.Run("ids are the positions at insertion time", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			store.Create(ctx, testdata.TestRecord())

			id, err := store.Create(ctx, testdata.TestRecord())
			assert.NoError(t, err)
			assert.Equal(t, 1, id)

			count, _ := store.Count(ctx)
			assert.Equal(t, 2, count)
		})

		t.Run("invalid record", func(t *testing.T) {
			t.Parallel()

			store := newStore()

			_, err := store.Create(ctx, testdata.InvalidRecord())
			assert.ErrorIs(t, err, ErrInvalidData)

			var serr *Error
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, http.StatusBadRequest, serr.Status)
			assert.Equal(t, map[string]any{"valid": "should be true"}, serr.Details)

			count, _ := store.Count(ctx)
			assert.Equal(t, 0, count, "failed validation must not mutate the collection")
		})

		t.Run("missing valid field", func(t *testing.T) {
			t.Parallel()

			store := newStore()

			_, err := store.Create(ctx, Record{"name": "x"})
			assert.ErrorIs(t, err, ErrInvalidData)
		})
	})

	t.Run("Find", func(t *testing.T) {
		t.Parallel()

		t.Run("position zero is reachable", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			rec := testdata.TestRecord()
			store.Create(ctx, rec)

			got, err := store.Find(ctx, 0)
			assert.NoError(t, err)
			assert.Equal(t, Record(rec), got)
		})

		t.Run("not found", func(t *testing.T) {
			t.Parallel()

			store := newStore()

			_, err := store.Find(ctx, 999)
			assert.ErrorIs(t, err, ErrNotFound)

			var serr *Error
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, http.StatusNotFound, serr.Status)
			assert.Equal(t, map[string]any{}, serr.Details)
		})

		t.Run("negative id", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			store.Create(ctx, testdata.TestRecord())

			_, err := store.Find(ctx, -1)
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("reads are idempotent", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			store.Create(ctx, testdata.TestRecord())

			first, err := store.Find(ctx, 0)
			assert.NoError(t, err)

			second, err := store.Find(ctx, 0)
			assert.NoError(t, err)
			assert.Equal(t, first, second)
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Parallel()

		t.Run("merges and returns the previous record", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			store.Create(ctx, Record{"a": 1, "valid": true})

			prev, err := store.Update(ctx, 0, Record{"b": 2, "valid": true})
			assert.NoError(t, err)
			assert.Equal(t, Record{"a": 1, "valid": true}, prev)

			got, err := store.Find(ctx, 0)
			assert.NoError(t, err)
			assert.Equal(t, Record{"a": 1, "b": 2, "valid": true}, got, "fields not present in data are preserved")
		})

		t.Run("not found", func(t *testing.T) {
			t.Parallel()

			store := newStore()

			_, err := store.Update(ctx, 999, testdata.TestRecord())
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("invalid merge result leaves the record untouched", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			rec := testdata.TestRecord()
			store.Create(ctx, rec)

			_, err := store.Update(ctx, 0, Record{"valid": false})
			assert.ErrorIs(t, err, ErrInvalidData)

			got, _ := store.Find(ctx, 0)
			assert.Equal(t, Record(rec), got)
		})
	})

	t.Run("Replace", func(t *testing.T) {
		t.Parallel()

		t.Run("discards prior fields and returns the previous record", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			store.Create(ctx, Record{"a": 1, "valid": true})

			prev, err := store.Replace(ctx, 0, Record{"b": 2, "valid": true})
			assert.NoError(t, err)
			assert.Equal(t, Record{"a": 1, "valid": true}, prev)

			got, err := store.Find(ctx, 0)
			assert.NoError(t, err)
			assert.Equal(t, Record{"b": 2, "valid": true}, got, "no merge with the prior record")
		})

		t.Run("not found", func(t *testing.T) {
			t.Parallel()

			store := newStore()

			_, err := store.Replace(ctx, 0, testdata.TestRecord())
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("invalid data leaves the record untouched", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			rec := testdata.TestRecord()
			store.Create(ctx, rec)

			_, err := store.Replace(ctx, 0, Record{"a": 1})
			assert.ErrorIs(t, err, ErrInvalidData)

			got, _ := store.Find(ctx, 0)
			assert.Equal(t, Record(rec), got)
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Parallel()

		t.Run("shifts subsequent records down", func(t *testing.T) {
			t.Parallel()

			store := newStore()
			first := testdata.TestRecord()
			second := testdata.TestRecord()
			third := testdata.TestRecord()
			store.Create(ctx, first)
			store.Create(ctx, second)
			store.Create(ctx, third)

			prev, err := store.Delete(ctx, 1)
			assert.NoError(t, err)
			assert.Equal(t, Record(second), prev)

			got, err := store.Find(ctx, 1)
			assert.NoError(t, err)
			assert.Equal(t, Record(third), got, "record formerly at id+1 is reachable at id")

			_, err = store.Find(ctx, 2)
			assert.ErrorIs(t, err, ErrNotFound, "the old highest index is out of range")
		})

		t.Run("not found", func(t *testing.T) {
			t.Parallel()

			store := newStore()

			_, err := store.Delete(ctx, 0)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	})

	t.Run("Validate", func(t *testing.T) {
		t.Parallel()

		store := newStore()

		err := store.Validate(ctx, testdata.TestRecord())
		assert.NoError(t, err)

		err = store.Validate(ctx, testdata.InvalidRecord())
		assert.ErrorIs(t, err, ErrInvalidData)

		count, _ := store.Count(ctx)
		assert.Equal(t, 0, count, "validate never touches the collection")
	})

	t.Run("Exists", func(t *testing.T) {
		t.Parallel()

		store := newStore()

		exists, err := store.Exists(ctx, 0)
		assert.NoError(t, err)
		assert.False(t, exists)

		store.Create(ctx, testdata.TestRecord())

		exists, err = store.Exists(ctx, 0)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Clear", func(t *testing.T) {
		t.Parallel()

		store := newStore()
		store.Create(ctx, testdata.TestRecord())
		store.Create(ctx, testdata.TestRecord())

		err := store.Clear(ctx)
		assert.NoError(t, err)

		count, _ := store.Count(ctx)
		assert.Equal(t, 0, count)
	})

	t.Run("end to end", func(t *testing.T) {
		t.Parallel()

		store := newStore()

		id, err := store.Create(ctx, Record{"valid": true, "name": "x"})
		assert.NoError(t, err)
		assert.Equal(t, 0, id)

		all, err := store.All(ctx)
		assert.NoError(t, err)
		assert.Equal(t, []Record{{"valid": true, "name": "x"}}, all)

		prev, err := store.Update(ctx, 0, Record{"name": "y"})
		assert.NoError(t, err)
		assert.Equal(t, Record{"valid": true, "name": "x"}, prev)

		got, err := store.Find(ctx, 0)
		assert.NoError(t, err)
		assert.Equal(t, Record{"valid": true, "name": "y"}, got)

		removed, err := store.Delete(ctx, 0)
		assert.NoError(t, err)
		assert.Equal(t, Record{"valid": true, "name": "y"}, removed)

		all, err = store.All(ctx)
		assert.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("concurrently", func(t *testing.T) {
		t.Parallel()

		const workers = 1000

		wg := sync.WaitGroup{}
		store := newStore()

		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				store.Create(ctx, testdata.TestRecord())
				wg.Done()
			}()
		}

		wg.Add(workers)
		for i := 0; i < workers; i++ {
			i := i
			go func() {
				_, err := store.Find(ctx, i)
				if err != nil {
					var serr *Error
					assert.True(t, errors.As(err, &serr))
				}
				wg.Done()
			}()
		}

		wg.Wait()
	})
}

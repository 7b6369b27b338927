package record_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-stubs/recordstore/record"
)

func TestValidField(t *testing.T) {
	t.Parallel()

	validate := record.ValidField("valid")

	t.Run("truthy values pass", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validate.Validate(ctx, record.Record{"valid": true}))
		assert.NoError(t, validate.Validate(ctx, record.Record{"valid": 1}))
		assert.NoError(t, validate.Validate(ctx, record.Record{"valid": "yes"}))
		assert.NoError(t, validate.Validate(ctx, record.Record{"valid": record.Record{}}),
			"an empty map is truthy, like an empty object")
	})

	t.Run("falsy values fail", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, validate.Validate(ctx, record.Record{"valid": false}), record.ErrInvalidData)
		assert.ErrorIs(t, validate.Validate(ctx, record.Record{"valid": 0}), record.ErrInvalidData)
		assert.ErrorIs(t, validate.Validate(ctx, record.Record{"valid": ""}), record.ErrInvalidData)
		assert.ErrorIs(t, validate.Validate(ctx, record.Record{"valid": nil}), record.ErrInvalidData)
		assert.ErrorIs(t, validate.Validate(ctx, record.Record{}), record.ErrInvalidData, "absent counts as falsy")
	})

	t.Run("failure payload", func(t *testing.T) {
		t.Parallel()

		err := validate.Validate(ctx, record.Record{"valid": false})

		var serr *record.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, http.StatusBadRequest, serr.Status)
		assert.Equal(t, map[string]any{"valid": "should be true"}, serr.Details)
	})
}

func TestValidatorFunc(t *testing.T) {
	t.Parallel()

	called := false
	validate := record.ValidatorFunc(func(_ context.Context, _ record.Record) error {
		called = true

		return nil
	})

	err := validate.Validate(ctx, record.Record{})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestNewRulesValidator(t *testing.T) {
	t.Parallel()

	t.Run("valid record passes", func(t *testing.T) {
		t.Parallel()

		validate := record.NewRulesValidator(nil, map[string]any{
			"name":  "required",
			"email": "required,email",
		})

		err := validate.Validate(ctx, record.Record{
			"name":  "arrow",
			"email": "hello@example.com",
		})
		assert.NoError(t, err)
	})

	t.Run("failing fields are reported", func(t *testing.T) {
		t.Parallel()

		validate := record.NewRulesValidator(validator.New(), map[string]any{
			"email": "required,email",
		})

		err := validate.Validate(ctx, record.Record{"email": "not-an-email"})
		assert.ErrorIs(t, err, record.ErrInvalidData)

		var serr *record.Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, http.StatusBadRequest, serr.Status)
		assert.Contains(t, serr.Details, "email")
	})

	t.Run("replaces the reference policy on a store", func(t *testing.T) {
		t.Parallel()

		store := record.NewMemoryStore(nil, record.WithValidator(
			record.NewRulesValidator(nil, map[string]any{"name": "required"}),
		))

		_, err := store.Create(ctx, record.Record{"name": "x"})
		assert.NoError(t, err, "no valid field needed under the custom rules")

		_, err = store.Create(ctx, record.Record{})
		assert.ErrorIs(t, err, record.ErrInvalidData)
	})
}

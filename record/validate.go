package record

import (
	"context"
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Validator is the seam where real schema or business-rule validation is
// injected into a store. Every mutating operation calls it before touching
// the collection; a returned error is surfaced to the caller unchanged.
type Validator interface {
	Validate(ctx context.Context, data Record) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(ctx context.Context, data Record) error

func (f ValidatorFunc) Validate(ctx context.Context, data Record) error {
	return f(ctx, data)
}

// ValidField returns the reference validation policy: data must carry the
// given field and its value must be truthy. It is a placeholder standing in
// for real validation, not a general mechanism; replace it via WithValidator.
func ValidField(field string) Validator {
	return ValidatorFunc(func(_ context.Context, data Record) error {
		if truthy(data[field]) {
			return nil
		}

		return invalidData(map[string]any{field: "should be true"})
	})
}

// truthy mirrors the loose truthiness of dynamic languages: false, zero
// numbers, NaN, the empty string, and nil are falsy; everything else,
// including empty maps and slices, is truthy.
func truthy(v any) bool {
	if v == nil {
		return false
	}

	val := reflect.ValueOf(v)

	switch val.Kind() {
	case reflect.Bool:
		return val.Bool()
	case reflect.String:
		return val.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return val.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return val.Float() != 0 && !math.IsNaN(val.Float())
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return !val.IsNil()
	default:
		return true
	}
}

// NewRulesValidator returns a Validator applying the given per-field rules
// to candidate records, e.g. {"email": "required,email"}. If validate is
// nil a default one is used. Possible drawback: validator.Validate caches
// information about the validated values.
//
// Failing fields are reported as ErrInvalidData with one details entry per
// field, matching the payload shape of the reference policy.
func NewRulesValidator(validate *validator.Validate, rules map[string]any) Validator {
	if validate == nil {
		validate = validator.New()
	}

	return &rulesValidator{
		validate: validate,
		rules:    rules,
	}
}

type rulesValidator struct {
	validate *validator.Validate
	rules    map[string]any
}

func (v *rulesValidator) Validate(_ context.Context, data Record) error {
	failed := v.validate.ValidateMap(data, v.rules)
	if len(failed) == 0 {
		return nil
	}

	details := make(map[string]any, len(failed))

	for field, res := range failed {
		if errs, ok := res.(validator.ValidationErrors); ok && len(errs) > 0 {
			details[field] = "failed on: " + errs[0].Tag()
			continue
		}

		details[field] = "is invalid"
	}

	return invalidData(details)
}

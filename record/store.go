package record

import (
	"context"
	"errors"
	"net/http"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidData = errors.New("invalid data")
)

// Error is the failure value of a store operation. Besides the
// human-readable message it carries the status code and detail payload a
// real persistence adapter would report, so a REST layer in front of the
// store can map failures without parsing messages.
//
// Branch on the kind with errors.Is and the sentinels above; get to the
// status and details with errors.As.
type Error struct {
	kind error

	// Status is 404 for a missing record and 400 for rejected data.
	Status int

	// Details names the fields a candidate record failed on. It is an
	// empty, non-nil map for missing records.
	Details map[string]any
}

func (e *Error) Error() string {
	return e.kind.Error()
}

func (e *Error) Unwrap() error {
	return e.kind
}

func notFound() *Error {
	return &Error{kind: ErrNotFound, Status: http.StatusNotFound, Details: map[string]any{}}
}

func invalidData(details map[string]any) *Error {
	return &Error{kind: ErrInvalidData, Status: http.StatusBadRequest, Details: details}
}

// Store is the contract of the record store. It mirrors the surface of a
// real persistence adapter, so calling code can be pointed at an in-memory
// implementation in tests and at a real backend in production without
// modification.
//
// The reference overloaded a single list call for both "everything" and
// "one record", which made the record at position zero unreachable. That
// is split into All and Find here, so identifier presence is explicit.
type Store interface {
	// All returns the entire collection in insertion order. It always
	// succeeds and returns an empty, non-nil slice for an empty collection.
	All(ctx context.Context) ([]Record, error)

	// Find returns the record identified by id, or ErrNotFound.
	Find(ctx context.Context, id int) (Record, error)

	// Create validates data and appends it to the collection, returning the
	// new record's ID. A failed validation leaves the collection unchanged.
	Create(ctx context.Context, data Record) (int, error)

	// Update overlays data onto the existing record, validates the merged
	// candidate, and stores it. It returns the previous record value.
	// Fields of the existing record not present in data are preserved.
	Update(ctx context.Context, id int, data Record) (Record, error)

	// Replace validates data as is and stores it verbatim, discarding all
	// prior fields. It returns the previous record value.
	Replace(ctx context.Context, id int, data Record) (Record, error)

	// Delete removes the record identified by id and returns its value.
	Delete(ctx context.Context, id int) (Record, error)

	// Validate reports the configured Validator's verdict on data without
	// touching the collection.
	Validate(ctx context.Context, data Record) error

	Count(ctx context.Context) (int, error)
	IsEmpty(ctx context.Context) (bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	Clear(ctx context.Context) error
}

// Option takes in a store configuration to set different optional properties.
type Option func(*storeConfig)

type storeConfig struct {
	validate Validator
	snapshot Snapshot
	filename string
}

// WithValidator replaces the reference validation policy, see ValidField.
// Every mutating operation consults the validator before it touches the
// collection, so real schema or business-rule validation can be injected
// without changing store logic.
func WithValidator(v Validator) Option {
	return func(config *storeConfig) {
		config.validate = v
	}
}

// WithSnapshot sets a Snapshot used to persist the store's collection.
//
// There are no transactions or any consistency guarantees at all! If a
// snapshot write fails, the operation is rolled back in memory, but a file
// written by an earlier operation stays behind.
func WithSnapshot(snapshot Snapshot) Option {
	return func(config *storeConfig) {
		config.snapshot = snapshot
	}
}

// WithSnapshotFilename overwrites the file name a Snapshot should use to
// persist this store's collection.
func WithSnapshotFilename(name string) Option {
	return func(config *storeConfig) {
		config.filename = name
	}
}

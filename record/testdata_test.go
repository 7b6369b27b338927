package record_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-stubs/recordstore/record"
	"github.com/go-stubs/recordstore/record/testdata"
)

var errSnapshotFailed = errors.New("snapshot failed")

var ctx = context.Background()

func testRecord() record.Record {
	return record.Record(testdata.TestRecord())
}

func invalidRecord() record.Record {
	return record.Record(testdata.InvalidRecord())
}

type testSnapshot struct {
	load  func(fileName string, data any) error
	store func(fileName string, data any) error
}

func (s testSnapshot) Load(fileName string, data any) error {
	return s.load(fileName, data)
}

func (s testSnapshot) Store(fileName string, data any) error {
	return s.store(fileName, data)
}

func testSnapshotLoadFails() testSnapshot {
	return testSnapshot{
		load: func(_ string, _ any) error {
			return errSnapshotFailed
		},
		store: func(_ string, _ any) error {
			return nil
		},
	}
}

func testSnapshotStoreFails() testSnapshot {
	return testSnapshot{
		load: func(_ string, _ any) error {
			return nil
		},
		store: func(_ string, _ any) error {
			return errSnapshotFailed
		},
	}
}

func testSnapshotSuccess(t *testing.T, expectedFileName string) testSnapshot {
	t.Helper()

	return testSnapshot{
		load: func(fileName string, data any) error {
			assert.Equal(t, expectedFileName, fileName)
			assert.NotNil(t, data)

			return nil
		},
		store: func(fileName string, data any) error {
			assert.Equal(t, expectedFileName, fileName)
			assert.NotNil(t, data)

			return nil
		},
	}
}

// Package testdata holds fixtures shared by the record tests and the
// exported TestSuite.
package testdata

import "github.com/brianvoe/gofakeit/v6"

// TestRecord returns a record that passes the reference validation policy.
func TestRecord() map[string]any {
	return map[string]any{
		"valid": true,
		"name":  gofakeit.Name(),
	}
}

// InvalidRecord returns a record the reference validation policy rejects.
func InvalidRecord() map[string]any {
	return map[string]any{
		"valid": false,
		"name":  gofakeit.Name(),
	}
}

var DefaultRecord = TestRecord()

// Package testutil provides testing utilities for rcli.
//
// This package contains mock errors and fixture helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
var (
	// ErrMockRead is returned by FailingReader.
	ErrMockRead = errors.New("read failed")

	// ErrMockRandom simulates an exhausted entropy source.
	ErrMockRandom = errors.New("entropy source failed")
)

// FailingReader is an io.Reader that always fails with Err.
type FailingReader struct {
	Err error
}

// Read implements io.Reader.
func (r FailingReader) Read([]byte) (int, error) {
	if r.Err == nil {
		return 0, ErrMockRead
	}
	return 0, r.Err
}

// Package source resolves input references to readable byte streams.
//
// A reference is either the literal "-" (standard input) or a filesystem path.
// Both are exposed as an io.ReadCloser so callers treat them uniformly.
package source

import (
	"io"
	"os"
	"strings"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/errors"
)

// Stdin is the reader returned for the "-" reference.
// Tests replace it to feed standard input.
var Stdin io.Reader = os.Stdin //nolint:gochecknoglobals // Overridable for tests

// IsStdin reports whether ref denotes standard input.
func IsStdin(ref string) bool {
	return ref == constants.StdinMarker
}

// Open resolves ref to a readable stream. The caller must close it.
// Closing the stdin stream is a no-op.
func Open(ref string) (io.ReadCloser, error) {
	if IsStdin(ref) {
		return io.NopCloser(Stdin), nil
	}

	f, err := os.Open(ref) //nolint:gosec // Reading user-supplied paths is the point
	if err != nil {
		return nil, errors.Tag(errors.ErrIO, err, "opening input")
	}
	return f, nil
}

// ReadAll reads the entire stream behind ref into memory.
func ReadAll(ref string) ([]byte, error) {
	r, err := Open(ref)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Tag(errors.ErrIO, err, "reading input")
	}
	return data, nil
}

// ReadText reads ref as text with leading and trailing whitespace removed.
func ReadText(ref string) (string, error) {
	data, err := ReadAll(ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Exists reports whether ref is usable as an input: stdin or an existing file.
func Exists(ref string) bool {
	if IsStdin(ref) {
		return true
	}
	info, err := os.Stat(ref)
	return err == nil && !info.IsDir()
}

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Known fixture values shared by the crypto tests.
const (
	// Blake3Key is a 32-byte keyed-hash key.
	Blake3Key = "01234567890123456789012345678901"

	// CipherKey is a 32-character cipher key.
	CipherKey = "Wa4fY3nwH%frPnF8_G*JBK54a_*mwW&g"
)

// WriteFile writes data to name inside dir with 0600 permissions and
// returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing fixture %s: %v", path, err)
	}
	return path
}

// WriteInput writes content to a fresh temp file and returns its path.
func WriteInput(t testing.TB, content string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "input.txt", []byte(content))
}

// ReadFile reads path or fails the test.
func ReadFile(t testing.TB, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // Test fixture path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

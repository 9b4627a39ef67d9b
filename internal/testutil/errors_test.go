package testutil

import (
	"errors"
	"io"
	"testing"
)

var errCustom = errors.New("custom")

func TestFailingReader(t *testing.T) {
	t.Run("default error", func(t *testing.T) {
		_, err := io.ReadAll(FailingReader{})
		if !errors.Is(err, ErrMockRead) {
			t.Errorf("expected ErrMockRead, got %v", err)
		}
	})

	t.Run("custom error", func(t *testing.T) {
		_, err := FailingReader{Err: errCustom}.Read(make([]byte, 4))
		if !errors.Is(err, errCustom) {
			t.Errorf("expected custom error, got %v", err)
		}
	})
}

func TestFixtures(t *testing.T) {
	if len(Blake3Key) != 32 || len(CipherKey) != 32 {
		t.Fatal("fixture keys must be 32 bytes")
	}

	path := WriteInput(t, "hello world")
	if got := string(ReadFile(t, path)); got != "hello world" {
		t.Errorf("ReadFile() = %q, want %q", got, "hello world")
	}
}

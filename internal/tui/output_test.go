package tui

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rclierrors "github.com/mrz1836/rcli/internal/errors"
)

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer
	assert.IsType(t, &JSONOutput{}, NewOutput(&buf, "json"))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, "text"))
	assert.IsType(t, &TTYOutput{}, NewOutput(&buf, ""))
}

func newPlainTTY(t *testing.T) (*TTYOutput, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	return NewTTYOutput(&buf), &buf
}

func TestTTYOutput_Messages(t *testing.T) {
	out, buf := newPlainTTY(t)

	out.Success("keys written")
	out.Warning("legacy nonce")
	out.Info("serving")
	out.Error(rclierrors.ErrCryptoFailure)

	got := buf.String()
	assert.Contains(t, got, "✓ keys written")
	assert.Contains(t, got, "⚠ legacy nonce")
	assert.Contains(t, got, "ℹ serving")
	assert.Contains(t, got, "✗ authenticated decryption failed")
}

func TestTTYOutput_ActionableError(t *testing.T) {
	out, buf := newPlainTTY(t)

	out.Error(NewActionableError("key file not found", "Run: rcli text generate"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "✗ key file not found")
	assert.Contains(t, lines[1], "▸ Try: Run: rcli text generate")
}

func TestTTYOutput_Value(t *testing.T) {
	out, buf := newPlainTTY(t)
	out.Value("aGVsbG8")
	assert.Equal(t, "aGVsbG8\n", buf.String())
}

func TestTTYOutput_Table(t *testing.T) {
	out, buf := newPlainTTY(t)

	out.Table([]string{"CLAIM", "VALUE"}, [][]string{
		{"sub", "alice"},
		{"aud"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "CLAIM")
	assert.Contains(t, lines[1], "sub    alice")
	assert.Contains(t, lines[2], "aud")
}

func TestTTYOutput_TableNoHeaders(t *testing.T) {
	out, buf := newPlainTTY(t)
	out.Table(nil, [][]string{{"x"}})
	assert.Empty(t, buf.String())
}

func TestTTYOutput_JSON(t *testing.T) {
	out, buf := newPlainTTY(t)
	require.NoError(t, out.JSON(map[string]int{"strength": 4}))
	assert.JSONEq(t, `{"strength":4}`, buf.String())
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var docs []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		docs = append(docs, m)
	}
	return docs
}

func TestJSONOutput_Messages(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Success("done")
	out.Warning("careful")
	out.Info("note")
	out.Value("sig")

	docs := decodeLines(t, &buf)
	require.Len(t, docs, 4)
	assert.Equal(t, map[string]any{"type": "success", "message": "done"}, docs[0])
	assert.Equal(t, map[string]any{"type": "warning", "message": "careful"}, docs[1])
	assert.Equal(t, map[string]any{"type": "info", "message": "note"}, docs[2])
	assert.Equal(t, map[string]any{"type": "value", "value": "sig"}, docs[3])
}

func TestJSONOutput_BinaryValue(t *testing.T) {
	var buf bytes.Buffer
	raw := []byte{0xff, 0x00, 0xfe, 'a'}

	NewJSONOutput(&buf).Value(string(raw))

	docs := decodeLines(t, &buf)
	require.Len(t, docs, 1)
	assert.Equal(t, "base64", docs[0]["encoding"])
	got, err := base64.StdEncoding.DecodeString(docs[0]["value"].(string))
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestJSONOutput_Error(t *testing.T) {
	t.Run("plain wrapped error", func(t *testing.T) {
		var buf bytes.Buffer
		NewJSONOutput(&buf).Error(fmt.Errorf("decrypting: %w", rclierrors.ErrCryptoFailure))

		docs := decodeLines(t, &buf)
		require.Len(t, docs, 1)
		assert.Equal(t, "error", docs[0]["type"])
		assert.Equal(t, "decrypting: authenticated decryption failed", docs[0]["message"])
		assert.Equal(t, "authenticated decryption failed", docs[0]["details"])
		assert.NotContains(t, docs[0], "suggestion")
	})

	t.Run("actionable error", func(t *testing.T) {
		var buf bytes.Buffer
		NewJSONOutput(&buf).Error(NewActionableError("bad key", "Generate a key").WithContext("k.txt"))

		docs := decodeLines(t, &buf)
		require.Len(t, docs, 1)
		assert.Equal(t, "bad key", docs[0]["message"])
		assert.Equal(t, "Generate a key", docs[0]["suggestion"])
		assert.Equal(t, "k.txt", docs[0]["context"])
	})
}

func TestJSONOutput_Table(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)

	out.Table([]string{"name", "age"}, [][]string{{"ann", "30"}, {"bob"}})

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, []map[string]string{
		{"name": "ann", "age": "30"},
		{"name": "bob", "age": ""},
	}, rows)
}

func TestJSONOutput_TableNoHeaders(t *testing.T) {
	var buf bytes.Buffer
	NewJSONOutput(&buf).Table(nil, nil)
	assert.JSONEq(t, `[]`, buf.String())
}

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rclierrors "github.com/mrz1836/rcli/internal/errors"
)

// testError is a custom error type used to test default branches
// in UserMessage and Actionable without matching any sentinel.
type testError struct {
	msg string
}

func (e testError) Error() string {
	return e.msg
}

func coreSentinels() []struct {
	name string
	err  error
	msg  string
} {
	return []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrIO", rclierrors.ErrIO, "i/o failure"},
		{"ErrKeyFormat", rclierrors.ErrKeyFormat, "invalid key format"},
		{"ErrEncoding", rclierrors.ErrEncoding, "invalid encoding"},
		{"ErrCryptoFailure", rclierrors.ErrCryptoFailure, "authenticated decryption failed"},
		{"ErrUnsupportedFormat", rclierrors.ErrUnsupportedFormat, "unsupported format"},
	}
}

func TestSentinelErrors_Messages(t *testing.T) {
	for _, tc := range coreSentinels() {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, tc.err)
			assert.Equal(t, tc.msg, tc.err.Error())
		})
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := coreSentinels()
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a.err, b.err, "%s should not match %s", a.name, b.name)
		}
	}
}

func TestWrap(t *testing.T) {
	t.Run("preserves error chain", func(t *testing.T) {
		err := rclierrors.Wrap(rclierrors.ErrKeyFormat, "loading signing key")
		require.ErrorIs(t, err, rclierrors.ErrKeyFormat)
		assert.Equal(t, "loading signing key: invalid key format", err.Error())
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.NoError(t, rclierrors.Wrap(nil, "context"))
	})

	t.Run("multiple wraps", func(t *testing.T) {
		err := rclierrors.Wrap(rclierrors.Wrap(rclierrors.ErrIO, "inner"), "outer")
		require.ErrorIs(t, err, rclierrors.ErrIO)
		assert.Equal(t, "outer: inner: i/o failure", err.Error())
	})
}

func TestWrapf(t *testing.T) {
	err := rclierrors.Wrapf(rclierrors.ErrIO, "reading %s", "key.txt")
	require.ErrorIs(t, err, rclierrors.ErrIO)
	assert.Equal(t, "reading key.txt: i/o failure", err.Error())

	assert.NoError(t, rclierrors.Wrapf(nil, "reading %s", "x"))
}

func TestTag(t *testing.T) {
	cause := testError{msg: "permission denied"}

	t.Run("keeps sentinel and cause", func(t *testing.T) {
		err := rclierrors.Tag(rclierrors.ErrIO, cause, "opening input")
		require.ErrorIs(t, err, rclierrors.ErrIO)

		var te testError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "opening input: i/o failure: permission denied", err.Error())
	})

	t.Run("nil cause", func(t *testing.T) {
		err := rclierrors.Tag(rclierrors.ErrKeyFormat, nil, "key too short")
		require.ErrorIs(t, err, rclierrors.ErrKeyFormat)
		assert.Equal(t, "key too short: invalid key format", err.Error())
	})
}

func TestUserMessage(t *testing.T) {
	t.Run("all core sentinels have messages", func(t *testing.T) {
		for _, tc := range coreSentinels() {
			msg := rclierrors.UserMessage(tc.err)
			assert.NotEmpty(t, msg, tc.name)
			assert.NotEqual(t, tc.err.Error(), msg, "%s should map to a friendly message", tc.name)
		}
	})

	t.Run("wrapped errors", func(t *testing.T) {
		err := fmt.Errorf("decrypting: %w", rclierrors.ErrCryptoFailure)
		assert.Contains(t, rclierrors.UserMessage(err), "Decryption failed")
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, rclierrors.UserMessage(nil))
	})

	t.Run("unknown error", func(t *testing.T) {
		err := testError{msg: "something odd"}
		assert.Equal(t, "something odd", rclierrors.UserMessage(err))
	})
}

func TestActionable(t *testing.T) {
	t.Run("key format has an action", func(t *testing.T) {
		msg, action := rclierrors.Actionable(rclierrors.ErrKeyFormat)
		assert.NotEmpty(t, msg)
		assert.Contains(t, action, "rcli text generate")
	})

	t.Run("nil error", func(t *testing.T) {
		msg, action := rclierrors.Actionable(nil)
		assert.Empty(t, msg)
		assert.Empty(t, action)
	})

	t.Run("unknown error has no action", func(t *testing.T) {
		msg, action := rclierrors.Actionable(testError{msg: "boom"})
		assert.Equal(t, "boom", msg)
		assert.Empty(t, action)
	})
}

func TestExitCode2Error(t *testing.T) {
	inner := rclierrors.ErrUnsupportedFormat
	err := rclierrors.NewExitCode2Error(inner)

	assert.Equal(t, inner.Error(), err.Error())
	assert.Equal(t, inner, err.Unwrap())
	require.ErrorIs(t, err, rclierrors.ErrUnsupportedFormat)

	assert.True(t, rclierrors.IsExitCode2Error(err))
	assert.True(t, rclierrors.IsExitCode2Error(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, rclierrors.IsExitCode2Error(inner))
	assert.False(t, rclierrors.IsExitCode2Error(nil))
	assert.False(t, rclierrors.IsExitCode2Error(stderrors.New("plain")))
}

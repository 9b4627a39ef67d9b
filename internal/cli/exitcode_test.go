package cli

import (
	stderrors "errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/rcli/internal/errors"
)

func TestExitCodes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitError)
	assert.Equal(t, 2, ExitInvalidInput)
}

func TestExitCodeForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit code 2 wrapper", errors.NewExitCode2Error(stderrors.New("x")), ExitInvalidInput},
		{"invalid output format", fmt.Errorf("bad: %w", errors.ErrInvalidOutputFormat), ExitInvalidInput},
		{"unsupported format", fmt.Errorf("format: %w", errors.ErrUnsupportedFormat), ExitInvalidInput},
		{"path not found", fmt.Errorf("input: %w", errors.ErrPathNotFound), ExitInvalidInput},
		{"no character set", errors.ErrNoCharacterSet, ExitInvalidInput},
		{"value out of range", errors.ErrValueOutOfRange, ExitInvalidInput},
		{"invalid duration", errors.ErrInvalidDuration, ExitInvalidInput},
		{"invalid argument", errors.ErrInvalidArgument, ExitInvalidInput},
		{"cobra unknown flag", stderrors.New("unknown flag: --nope"), ExitInvalidInput},
		{"cobra required flag", stderrors.New(`required flag(s) "sig" not set`), ExitInvalidInput},
		{"cobra unknown command", stderrors.New(`unknown command "nope" for "rcli"`), ExitInvalidInput},
		{"verification failed", errors.ErrVerificationFailed, ExitError},
		{"crypto failure", errors.ErrCryptoFailure, ExitError},
		{"key format", errors.ErrKeyFormat, ExitError},
		{"io", errors.ErrIO, ExitError},
		{"token invalid", errors.ErrTokenInvalid, ExitError},
		{"generic", stderrors.New("something broke"), ExitError},
		{"io wrapping EINVAL", fmt.Errorf("%w: read /dev/x: %w", errors.ErrIO, syscall.EINVAL), ExitError},
		{"plain invalid argument text", stderrors.New("write: invalid argument"), ExitError},
		{"pflag invalid argument", stderrors.New(`invalid argument "abc" for "-l, --length" flag: strconv.ParseInt: parsing "abc": invalid syntax`), ExitInvalidInput},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, ExitCodeForError(tc.err))
		})
	}
}

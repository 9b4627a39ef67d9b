package cli

import (
	stderrors "errors"
	"strings"

	"github.com/mrz1836/rcli/internal/errors"
)

// Process exit codes.
const (
	ExitSuccess      = 0
	ExitError        = 1 // the operation ran and failed
	ExitInvalidInput = 2 // the command line itself was wrong
)

// usageSentinels mark errors caused by what the user typed rather than by
// the data or the environment.
//
//nolint:gochecknoglobals // Fixed lookup table
var usageSentinels = []error{
	errors.ErrInvalidOutputFormat,
	errors.ErrUnsupportedFormat,
	errors.ErrInvalidArgument,
	errors.ErrPathNotFound,
	errors.ErrNoCharacterSet,
	errors.ErrValueOutOfRange,
	errors.ErrInvalidDuration,
}

// failureSentinels mark errors raised while the operation ran. They win over
// the phrase scan below, whose wording can also occur in OS error text.
//
//nolint:gochecknoglobals // Fixed lookup table
var failureSentinels = []error{
	errors.ErrIO,
	errors.ErrKeyFormat,
	errors.ErrEncoding,
	errors.ErrCryptoFailure,
	errors.ErrCSVInvalid,
	errors.ErrTokenInvalid,
	errors.ErrVerificationFailed,
	errors.ErrLockTimeout,
}

// cobraUsagePhrases appear in the plain errors cobra and pflag return for
// bad flags, arguments and subcommands.
//
//nolint:gochecknoglobals // Fixed lookup table
var cobraUsagePhrases = []string{
	"unknown flag",
	"unknown shorthand flag",
	"flag needs an argument",
	`invalid argument "`,
	"if any flags in the group",
	"required flag",
	"unknown command",
	"accepts ",
}

// ExitCodeForError maps err to the process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case isUsageError(err):
		return ExitInvalidInput
	default:
		return ExitError
	}
}

func isUsageError(err error) bool {
	if errors.IsExitCode2Error(err) {
		return true
	}
	for _, sentinel := range usageSentinels {
		if stderrors.Is(err, sentinel) {
			return true
		}
	}
	for _, sentinel := range failureSentinels {
		if stderrors.Is(err, sentinel) {
			return false
		}
	}
	msg := err.Error()
	for _, phrase := range cobraUsagePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

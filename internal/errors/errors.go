// Package errors provides centralized error handling for rcli.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for the cryptographic core.
// Every failure surfaced by a sign, verify, encrypt, decrypt or key generation
// call wraps exactly one of these.
var (
	// ErrIO indicates that a byte source, key file or output directory
	// could not be read or written.
	ErrIO = errors.New("i/o failure")

	// ErrKeyFormat indicates key material that is shorter than the algorithm
	// requires or is otherwise structurally invalid.
	ErrKeyFormat = errors.New("invalid key format")

	// ErrEncoding indicates a text boundary value that is not valid base64.
	ErrEncoding = errors.New("invalid encoding")

	// ErrCryptoFailure indicates an authenticated decryption failure: the tag
	// did not match, which means tampering or the wrong key.
	ErrCryptoFailure = errors.New("authenticated decryption failed")

	// ErrUnsupportedFormat indicates an algorithm tag outside the recognized vocabulary.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// Sentinel errors for the surrounding command-line tooling.
var (
	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates an invalid configuration value.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrInvalidDuration indicates that a duration format is invalid.
	ErrInvalidDuration = errors.New("invalid duration format")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrNoCharacterSet indicates a password was requested with every character class disabled.
	ErrNoCharacterSet = errors.New("no character set selected")

	// ErrJWTSecretMissing indicates that no JWT signing secret was configured.
	ErrJWTSecretMissing = errors.New("jwt secret not configured")

	// ErrTokenInvalid indicates a JWT that failed parsing, signature or expiry checks.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrPathNotFound indicates an input file or directory does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrCSVInvalid indicates a CSV document that could not be converted.
	ErrCSVInvalid = errors.New("invalid csv")

	// ErrLockTimeout indicates a file lock could not be acquired.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrVerificationFailed indicates a well-formed signature or token that did not verify.
	ErrVerificationFailed = errors.New("verification failed")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}

// Package constants provides centralized constant values used throughout rcli.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Key material sizes. Every algorithm family uses 32-byte keys.
const (
	// KeySize is the required length of keyed-hash keys, cipher keys,
	// Ed25519 signing seeds and Ed25519 verifying keys.
	KeySize = 32

	// NonceSize is the ChaCha20-Poly1305 nonce length.
	NonceSize = 12

	// GeneratedKeyLength is the number of password characters drawn for a keyed-hash key.
	GeneratedKeyLength = 32
)

// Key file names written by `rcli text generate`.
const (
	// Blake3KeyFileName holds the raw keyed-hash key.
	Blake3KeyFileName = "blake3.txt"

	// Ed25519SigningKeyFileName holds the raw 32-byte Ed25519 seed.
	Ed25519SigningKeyFileName = "ed25519.sk"

	// Ed25519VerifyingKeyFileName holds the raw 32-byte Ed25519 public key.
	Ed25519VerifyingKeyFileName = "ed25519.pk"

	// KeygenLockFileName serializes concurrent key generation into one directory.
	KeygenLockFileName = ".rcli-keygen.lock"

	// KeygenLockTimeout bounds how long key generation waits for the lock.
	KeygenLockTimeout = 5 * time.Second
)

// File permissions.
const (
	// KeyFileMode is used for every generated key file.
	KeyFileMode = 0o600

	// DirMode is used for directories rcli creates.
	DirMode = 0o750
)

// StdinMarker is the input reference that denotes standard input.
const StdinMarker = "-"

// Password generation bounds.
const (
	// DefaultPasswordLength is the length used by `rcli genpass` when none is given.
	DefaultPasswordLength = 16

	// MaxPasswordLength caps generated passwords.
	MaxPasswordLength = 1024
)

// HTTP server defaults.
const (
	// DefaultHTTPPort is the port `rcli http serve` listens on.
	DefaultHTTPPort = 8080

	// DefaultReadHeaderTimeout bounds how long a client may take to send headers.
	DefaultReadHeaderTimeout = 5 * time.Second

	// DefaultShutdownTimeout bounds graceful shutdown of the HTTP server.
	DefaultShutdownTimeout = 10 * time.Second
)

// JWT defaults.
const (
	// DefaultJWTTTL is the default token lifetime (14 days).
	DefaultJWTTTL = 14 * 24 * time.Hour
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the size at which the log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files kept.
	LogMaxBackups = 3

	// LogMaxAgeDays is how long rotated files are kept.
	LogMaxAgeDays = 28

	// LogCompress enables gzip compression of rotated files.
	LogCompress = true
)

// Package crypto defines the capability contracts shared by rcli's algorithm
// families and the closed set of signing formats that select between them.
//
// Implementations live in subpackages: keyed (BLAKE3 keyed hash), native
// (Ed25519) and aead (ChaCha20-Poly1305).
package crypto

import (
	"context"
	"io"
)

// Signer produces a signature over the entire stream.
// Implementations must be deterministic: signing the same input twice with
// the same key produces the same signature.
type Signer interface {
	// Sign consumes r to EOF and returns the signature.
	// Returns an error only if r cannot be read.
	Sign(ctx context.Context, r io.Reader) ([]byte, error)
}

// Verifier checks a signature over the entire stream.
type Verifier interface {
	// Verify consumes r to EOF and reports whether signature matches.
	// A wrong signature and a malformed one both yield false with a nil error;
	// the error is reserved for failures reading r.
	Verify(ctx context.Context, r io.Reader, signature []byte) (bool, error)
}

// KeyGenerator produces fresh key material.
type KeyGenerator interface {
	// GenerateKey returns one element for symmetric algorithms and two,
	// private then public, for asymmetric ones.
	GenerateKey() ([][]byte, error)
}

// KeyGeneratorFunc adapts a plain function to KeyGenerator.
type KeyGeneratorFunc func() ([][]byte, error)

// GenerateKey calls f.
func (f KeyGeneratorFunc) GenerateKey() ([][]byte, error) {
	return f()
}

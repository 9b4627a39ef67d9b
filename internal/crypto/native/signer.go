// Package native provides Ed25519 signing using standard crypto libraries.
package native

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/rs/zerolog"

	"github.com/mrz1836/rcli/internal/crypto"
	"github.com/mrz1836/rcli/internal/errors"
)

var (
	_ crypto.Signer       = (*Signer)(nil)
	_ crypto.Verifier     = (*Verifier)(nil)
	_ crypto.KeyGenerator = Generator
)

// Generator produces Ed25519 key pairs.
var Generator = crypto.KeyGeneratorFunc(GenerateKey) //nolint:gochecknoglobals // Stateless adapter

// GenerateKey creates a key pair from crypto/rand and returns the raw
// 32-byte seed and 32-byte public key, in that order.
func GenerateKey() ([][]byte, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generating ed25519 key: %w", err)
	}
	return [][]byte{priv.Seed(), []byte(pub)}, nil
}

// Signer implements crypto.Signer with an Ed25519 private key.
type Signer struct {
	privKey ed25519.PrivateKey
}

// NewSigner builds a Signer from a 32-byte seed.
func NewSigner(seed []byte) (*Signer, error) {
	s, err := crypto.NormalizeKey(seed, ed25519.SeedSize, true)
	if err != nil {
		return nil, errors.Wrap(err, "ed25519 signing key")
	}
	defer crypto.Zero(s)
	return &Signer{privKey: ed25519.NewKeyFromSeed(s)}, nil
}

// LoadSigner reads a 32-byte seed from path.
func LoadSigner(path string) (*Signer, error) {
	seed, err := crypto.ReadKeyFile(path, ed25519.SeedSize, true)
	if err != nil {
		return nil, errors.Wrap(err, "loading ed25519 signing key")
	}
	defer crypto.Zero(seed)
	return &Signer{privKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// Sign reads r to EOF and signs it. Ed25519 signatures are deterministic.
func (s *Signer) Sign(ctx context.Context, r io.Reader) ([]byte, error) {
	message, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Tag(errors.ErrIO, err, "reading input")
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", crypto.FormatEd25519.String()).
		Int("bytes", len(message)).
		Msg("signing input")

	return ed25519.Sign(s.privKey, message), nil
}

// Public returns the verifying key matching the signer.
func (s *Signer) Public() *Verifier {
	return &Verifier{pubKey: s.privKey.Public().(ed25519.PublicKey)} //nolint:errcheck,forcetypeassert // ed25519 always returns ed25519.PublicKey
}

// Verifier implements crypto.Verifier with an Ed25519 public key.
type Verifier struct {
	pubKey ed25519.PublicKey
}

// NewVerifier builds a Verifier from a 32-byte public key. The key must
// decode to a valid curve point.
func NewVerifier(pub []byte) (*Verifier, error) {
	k, err := crypto.NormalizeKey(pub, ed25519.PublicKeySize, true)
	if err != nil {
		return nil, errors.Wrap(err, "ed25519 verifying key")
	}
	if _, err := new(edwards25519.Point).SetBytes(k); err != nil {
		return nil, errors.Tag(errors.ErrKeyFormat, err, "ed25519 verifying key is not a curve point")
	}
	return &Verifier{pubKey: ed25519.PublicKey(k)}, nil
}

// LoadVerifier reads a 32-byte public key from path.
func LoadVerifier(path string) (*Verifier, error) {
	data, err := crypto.ReadKeyFile(path, ed25519.PublicKeySize, true)
	if err != nil {
		return nil, errors.Wrap(err, "loading ed25519 verifying key")
	}
	v, err := NewVerifier(data)
	if err != nil {
		return nil, errors.Wrapf(err, "key file %s", path)
	}
	return v, nil
}

// Bytes returns a copy of the raw public key.
func (v *Verifier) Bytes() []byte {
	return append([]byte(nil), v.pubKey...)
}

// Verify reads r to EOF and checks signature. A signature of the wrong
// length is reported as false.
func (v *Verifier) Verify(ctx context.Context, r io.Reader, signature []byte) (bool, error) {
	message, err := io.ReadAll(r)
	if err != nil {
		return false, errors.Tag(errors.ErrIO, err, "reading input")
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", crypto.FormatEd25519.String()).
		Int("bytes", len(message)).
		Int("signature_len", len(signature)).
		Msg("verifying input")

	if len(signature) != ed25519.SignatureSize {
		return false, nil
	}
	return ed25519.Verify(v.pubKey, message, signature), nil
}

// Package keyed provides message authentication with the BLAKE3 keyed hash.
package keyed

import (
	"context"
	"crypto/subtle"
	"io"

	"github.com/rs/zerolog"
	"lukechampine.com/blake3"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/crypto"
	"github.com/mrz1836/rcli/internal/errors"
	"github.com/mrz1836/rcli/internal/genpass"
)

// DigestSize is the length of a keyed-hash signature.
const DigestSize = 32

// Hasher signs and verifies with a 32-byte BLAKE3 key.
type Hasher struct {
	key []byte
}

var (
	_ crypto.Signer       = (*Hasher)(nil)
	_ crypto.Verifier     = (*Hasher)(nil)
	_ crypto.KeyGenerator = Generator
)

// Generator produces keyed-hash key material.
var Generator = crypto.KeyGeneratorFunc(GenerateKey) //nolint:gochecknoglobals // Stateless adapter

// New builds a Hasher. The key must be at least 32 bytes; only the first
// 32 are used.
func New(key []byte) (*Hasher, error) {
	k, err := crypto.NormalizeKey(key, crypto.KeySize, false)
	if err != nil {
		return nil, err
	}
	return &Hasher{key: k}, nil
}

// LoadKey reads a keyed-hash key from path.
func LoadKey(path string) (*Hasher, error) {
	k, err := crypto.ReadKeyFile(path, crypto.KeySize, false)
	if err != nil {
		return nil, err
	}
	return &Hasher{key: k}, nil
}

// GenerateKey draws a 32-character password with every character class
// enabled and returns its bytes as the single key element. The key is
// printable but contains symbols; treat it as raw bytes.
func GenerateKey() ([][]byte, error) {
	opts := genpass.DefaultOptions()
	opts.Length = constants.GeneratedKeyLength

	pw, err := genpass.Generate(opts)
	if err != nil {
		return nil, errors.Wrap(err, "generating blake3 key")
	}
	return [][]byte{[]byte(pw)}, nil
}

// Sum returns the keyed digest of data.
func (h *Hasher) Sum(data []byte) []byte {
	hh := blake3.New(DigestSize, h.key)
	_, _ = hh.Write(data)
	return hh.Sum(nil)
}

// Sign reads r to EOF and returns the 32-byte keyed digest.
func (h *Hasher) Sign(ctx context.Context, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Tag(errors.ErrIO, err, "reading input")
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", crypto.FormatBlake3.String()).
		Int("bytes", len(data)).
		Msg("signing input")

	return h.Sum(data), nil
}

// Verify reads r to EOF and compares its digest with signature in constant time.
func (h *Hasher) Verify(ctx context.Context, r io.Reader, signature []byte) (bool, error) {
	expected, err := h.Sign(ctx, r)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(expected, signature) == 1, nil
}

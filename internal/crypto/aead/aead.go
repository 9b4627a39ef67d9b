// Package aead implements authenticated symmetric encryption with
// ChaCha20-Poly1305.
//
// Two nonce modes are supported. NonceRandom draws a fresh 12-byte nonce
// per Seal and prefixes it to the payload. NonceKeyDerived reuses the first
// 12 bytes of the key for every message; it exists only to read and write
// payloads produced by older rcli releases and must not be used for new
// data, since any two messages sealed under the same key then share a nonce.
package aead

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/crypto"
	"github.com/mrz1836/rcli/internal/errors"
)

// NonceMode selects how Seal obtains a nonce and where Open finds it.
type NonceMode int

const (
	// NonceRandom prefixes a random nonce to every payload.
	NonceRandom NonceMode = iota
	// NonceKeyDerived uses key[:12] as the nonce. Unsafe; kept for compatibility.
	NonceKeyDerived
)

// String returns the configuration name of m.
func (m NonceMode) String() string {
	switch m {
	case NonceRandom:
		return "random"
	case NonceKeyDerived:
		return "key-derived"
	}
	return "unknown"
}

// ParseNonceMode maps a configuration name to a NonceMode.
func ParseNonceMode(s string) (NonceMode, error) {
	switch s {
	case "", "random":
		return NonceRandom, nil
	case "key-derived":
		return NonceKeyDerived, nil
	}
	return NonceRandom, fmt.Errorf("%w: nonce mode %q (valid: random, key-derived)", errors.ErrConfigInvalid, s)
}

// Cipher seals and opens payloads under a single 32-byte key.
type Cipher struct {
	key  []byte
	mode NonceMode
	rand io.Reader
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithRand overrides the nonce source. Tests use it to pin nonces.
func WithRand(r io.Reader) Option {
	return func(c *Cipher) {
		c.rand = r
	}
}

// New builds a Cipher. Keys longer than 32 bytes are truncated; shorter
// keys are rejected with ErrKeyFormat.
func New(key []byte, mode NonceMode, opts ...Option) (*Cipher, error) {
	k, err := crypto.NormalizeKey(key, chacha20poly1305.KeySize, false)
	if err != nil {
		return nil, errors.Wrap(err, "cipher key")
	}
	if mode != NonceRandom && mode != NonceKeyDerived {
		return nil, fmt.Errorf("%w: nonce mode %d", errors.ErrConfigInvalid, mode)
	}

	c := &Cipher{key: k, mode: mode, rand: rand.Reader}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Mode returns the nonce mode of c.
func (c *Cipher) Mode() NonceMode {
	return c.mode
}

// Seal encrypts plaintext. In NonceRandom mode the result is
// nonce || ciphertext || tag; otherwise ciphertext || tag.
func (c *Cipher) Seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(c.key)
	if err != nil {
		return nil, errors.Tag(errors.ErrKeyFormat, err, "initializing cipher")
	}

	switch c.mode {
	case NonceKeyDerived:
		return aead.Seal(nil, c.key[:constants.NonceSize], plaintext, nil), nil
	case NonceRandom:
		out := make([]byte, constants.NonceSize, constants.NonceSize+len(plaintext)+aead.Overhead())
		if _, err := io.ReadFull(c.rand, out); err != nil {
			return nil, errors.Tag(errors.ErrIO, err, "reading nonce")
		}
		return aead.Seal(out, out, plaintext, nil), nil
	}
	return nil, fmt.Errorf("%w: nonce mode %d", errors.ErrConfigInvalid, c.mode)
}

// Open authenticates and decrypts a payload produced by Seal under the same
// key and mode. Any modification, truncation or key mismatch is ErrCryptoFailure.
func (c *Cipher) Open(payload []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(c.key)
	if err != nil {
		return nil, errors.Tag(errors.ErrKeyFormat, err, "initializing cipher")
	}

	nonce := c.key[:constants.NonceSize]
	if c.mode == NonceRandom {
		if len(payload) < constants.NonceSize+aead.Overhead() {
			return nil, fmt.Errorf("%w: payload too short (%d bytes)", errors.ErrCryptoFailure, len(payload))
		}
		nonce, payload = payload[:constants.NonceSize], payload[constants.NonceSize:]
	}

	plaintext, err := aead.Open(nil, nonce, payload, nil)
	if err != nil {
		return nil, errors.Tag(errors.ErrCryptoFailure, err, "opening payload")
	}
	return plaintext, nil
}

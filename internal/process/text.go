// Package process exposes the operations behind rcli's commands.
//
// Each function takes input references and key locations as the user gave
// them, resolves the algorithm family with an explicit switch over
// crypto.Format, and returns text ready to print. Nothing is cached between
// calls: key material is loaded, used, and zeroed within a single call.
package process

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mrz1836/rcli/internal/codec"
	"github.com/mrz1836/rcli/internal/crypto"
	"github.com/mrz1836/rcli/internal/crypto/aead"
	"github.com/mrz1836/rcli/internal/crypto/keyed"
	"github.com/mrz1836/rcli/internal/crypto/native"
	"github.com/mrz1836/rcli/internal/ctxutil"
	"github.com/mrz1836/rcli/internal/errors"
	"github.com/mrz1836/rcli/internal/source"
)

// Sign reads input fully and signs it with the key stored at keyPath.
// The signature is returned as base64url without padding.
func Sign(ctx context.Context, input, keyPath string, format crypto.Format) (string, error) {
	if err := ctxutil.Canceled(ctx, "sign"); err != nil {
		return "", err
	}

	signer, err := loadSigner(keyPath, format)
	if err != nil {
		return "", err
	}

	data, err := source.ReadAll(input)
	if err != nil {
		return "", err
	}

	sig, err := signer.Sign(ctx, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "signing")
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", format.String()).
		Str("input", input).
		Str("key_path", keyPath).
		Int("signature_len", len(sig)).
		Msg("signed input")

	return codec.EncodeURL(sig), nil
}

// Verify reads input fully and checks sigText, a base64url signature,
// against it. A mismatching signature is (false, nil).
func Verify(ctx context.Context, input, keyPath string, format crypto.Format, sigText string) (bool, error) {
	if err := ctxutil.Canceled(ctx, "verify"); err != nil {
		return false, err
	}

	verifier, err := loadVerifier(keyPath, format)
	if err != nil {
		return false, err
	}

	sig, err := codec.DecodeURL(sigText)
	if err != nil {
		return false, errors.Wrap(err, "decoding signature")
	}

	data, err := source.ReadAll(input)
	if err != nil {
		return false, err
	}

	ok, err := verifier.Verify(ctx, bytes.NewReader(data), sig)
	if err != nil {
		return false, errors.Wrap(err, "verifying")
	}

	zerolog.Ctx(ctx).Debug().
		Str("format", format.String()).
		Str("input", input).
		Bool("valid", ok).
		Msg("verified input")

	return ok, nil
}

func loadSigner(keyPath string, format crypto.Format) (crypto.Signer, error) {
	switch format {
	case crypto.FormatBlake3:
		return keyed.LoadKey(keyPath)
	case crypto.FormatEd25519:
		return native.LoadSigner(keyPath)
	case crypto.FormatUnknown:
	}
	return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, format)
}

func loadVerifier(keyPath string, format crypto.Format) (crypto.Verifier, error) {
	switch format {
	case crypto.FormatBlake3:
		return keyed.LoadKey(keyPath)
	case crypto.FormatEd25519:
		return native.LoadVerifier(keyPath)
	case crypto.FormatUnknown:
	}
	return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, format)
}

// CipherOption configures Encrypt and Decrypt.
type CipherOption func(*cipherOptions)

type cipherOptions struct {
	mode     aead.NonceMode
	aeadOpts []aead.Option
}

// WithNonceMode selects the nonce mode. NonceRandom is the default.
func WithNonceMode(mode aead.NonceMode) CipherOption {
	return func(o *cipherOptions) {
		o.mode = mode
	}
}

// WithCipherOptions passes options through to the underlying cipher.
func WithCipherOptions(opts ...aead.Option) CipherOption {
	return func(o *cipherOptions) {
		o.aeadOpts = append(o.aeadOpts, opts...)
	}
}

func newCipher(keyText string, opts []CipherOption) (*aead.Cipher, error) {
	o := cipherOptions{mode: aead.NonceRandom}
	for _, opt := range opts {
		opt(&o)
	}
	return aead.New([]byte(keyText), o.mode, o.aeadOpts...)
}

// Encrypt reads input fully and seals it under keyText. The payload is
// returned as base64url without padding.
func Encrypt(ctx context.Context, input, keyText string, opts ...CipherOption) (string, error) {
	if err := ctxutil.Canceled(ctx, "encrypt"); err != nil {
		return "", err
	}

	c, err := newCipher(keyText, opts)
	if err != nil {
		return "", err
	}

	plaintext, err := source.ReadAll(input)
	if err != nil {
		return "", err
	}

	sealed, err := c.Seal(plaintext)
	if err != nil {
		return "", errors.Wrap(err, "encrypting")
	}

	zerolog.Ctx(ctx).Debug().
		Str("nonce_mode", c.Mode().String()).
		Int("plaintext_len", len(plaintext)).
		Int("payload_len", len(sealed)).
		Msg("encrypted input")

	return codec.EncodeURL(sealed), nil
}

// Decrypt reads input as base64url text, trims it, and opens it under keyText.
func Decrypt(ctx context.Context, input, keyText string, opts ...CipherOption) (string, error) {
	if err := ctxutil.Canceled(ctx, "decrypt"); err != nil {
		return "", err
	}

	c, err := newCipher(keyText, opts)
	if err != nil {
		return "", err
	}

	text, err := source.ReadText(input)
	if err != nil {
		return "", err
	}

	payload, err := codec.DecodeURL(text)
	if err != nil {
		return "", errors.Wrap(err, "decoding payload")
	}

	plaintext, err := c.Open(payload)
	if err != nil {
		return "", errors.Wrap(err, "decrypting")
	}

	zerolog.Ctx(ctx).Debug().
		Str("nonce_mode", c.Mode().String()).
		Int("payload_len", len(payload)).
		Msg("decrypted input")

	return string(plaintext), nil
}

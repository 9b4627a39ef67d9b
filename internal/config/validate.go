package config

import (
	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - text.format must be blake3 or ed25519
//   - cipher.nonce_mode must be random or key-derived
//   - jwt.ttl must be positive
//   - http.port must be between 1 and 65535 and http timeouts positive
//   - genpass.length must be between 1 and 1024
//
// An empty jwt.secret is valid here; the jwt commands reject it when used.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	switch cfg.Text.Format {
	case "blake3", "ed25519":
	default:
		return errors.Wrapf(errors.ErrConfigInvalid,
			"text.format must be blake3 or ed25519, got %q", cfg.Text.Format)
	}

	switch cfg.Cipher.NonceMode {
	case NonceModeRandom, NonceModeKeyDerived:
	default:
		return errors.Wrapf(errors.ErrConfigInvalid,
			"cipher.nonce_mode must be %s or %s, got %q", NonceModeRandom, NonceModeKeyDerived, cfg.Cipher.NonceMode)
	}

	if cfg.JWT.TTL <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"jwt.ttl must be positive, got %s", cfg.JWT.TTL)
	}

	if err := validateHTTPConfig(&cfg.HTTP); err != nil {
		return err
	}

	if cfg.GenPass.Length < 1 || cfg.GenPass.Length > constants.MaxPasswordLength {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"genpass.length must be between 1 and %d, got %d", constants.MaxPasswordLength, cfg.GenPass.Length)
	}

	return nil
}

// validateHTTPConfig checks http server settings.
func validateHTTPConfig(cfg *HTTPConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"http.port must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.ReadHeaderTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"http.read_header_timeout must be positive, got %s", cfg.ReadHeaderTimeout)
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"http.shutdown_timeout must be positive, got %s", cfg.ShutdownTimeout)
	}
	return nil
}

package config

import (
	"github.com/mrz1836/rcli/internal/constants"
)

// Nonce mode names accepted in cipher.nonce_mode.
const (
	NonceModeRandom     = "random"
	NonceModeKeyDerived = "key-derived"
)

// DefaultConfig returns a new Config with the built-in defaults.
// These match the values registered on viper by setDefaults.
func DefaultConfig() *Config {
	return &Config{
		Text: TextConfig{
			Format: "blake3",
			KeyDir: ".",
		},
		Cipher: CipherConfig{
			NonceMode: NonceModeRandom,
		},
		JWT: JWTConfig{
			TTL: constants.DefaultJWTTTL,
		},
		HTTP: HTTPConfig{
			Dir:               ".",
			Port:              constants.DefaultHTTPPort,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			ShutdownTimeout:   constants.DefaultShutdownTimeout,
		},
		GenPass: GenPassConfig{
			Length:    constants.DefaultPasswordLength,
			Uppercase: true,
			Lowercase: true,
			Number:    true,
			Symbol:    true,
		},
	}
}

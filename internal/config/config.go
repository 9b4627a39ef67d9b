// Package config provides configuration management for rcli with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. Environment variables (RCLI_* prefix)
//  2. Project config (.rcli/config.yaml)
//  3. Global config (~/.rcli/config.yaml, or $RCLI_HOME/config.yaml)
//  4. Built-in defaults
//
// Command-line flags are applied by the cli package on top of the loaded Config.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for rcli.
type Config struct {
	// Text contains defaults for the text sign, verify and generate commands.
	Text TextConfig `yaml:"text" mapstructure:"text"`

	// Cipher contains settings for text encrypt and decrypt.
	Cipher CipherConfig `yaml:"cipher" mapstructure:"cipher"`

	// JWT contains settings for jwt sign and verify.
	JWT JWTConfig `yaml:"jwt" mapstructure:"jwt"`

	// HTTP contains settings for http serve.
	HTTP HTTPConfig `yaml:"http" mapstructure:"http"`

	// GenPass contains defaults for genpass.
	GenPass GenPassConfig `yaml:"genpass" mapstructure:"genpass"`
}

// TextConfig holds text command defaults.
type TextConfig struct {
	// Format is the signing format used when --format is not given.
	// One of "blake3" or "ed25519". Default: "blake3"
	Format string `yaml:"format" mapstructure:"format"`

	// KeyDir is where text generate writes keys when --output-dir is not given.
	// Default: "."
	KeyDir string `yaml:"key_dir" mapstructure:"key_dir"`
}

// CipherConfig holds text encrypt/decrypt settings.
type CipherConfig struct {
	// NonceMode is "random" (default) or "key-derived".
	// key-derived reuses key[:12] as the nonce for every message and is only
	// for reading payloads written by older releases.
	NonceMode string `yaml:"nonce_mode" mapstructure:"nonce_mode"`
}

// JWTConfig holds token settings.
type JWTConfig struct {
	// Secret is the HS256 signing secret. There is no default; set it in a
	// config file or with RCLI_JWT_SECRET.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Issuer is written to the iss claim when non-empty.
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// Audience is the default aud claim.
	Audience string `yaml:"audience" mapstructure:"audience"`

	// TTL is the default token lifetime. Default: 336h (14 days)
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// HTTPConfig holds static file server settings.
type HTTPConfig struct {
	// Dir is the directory to serve. Default: "."
	Dir string `yaml:"dir" mapstructure:"dir"`

	// Port is the listen port. Default: 8080
	Port int `yaml:"port" mapstructure:"port"`

	// ReadHeaderTimeout bounds header reads. Default: 5s
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" mapstructure:"read_header_timeout"`

	// ShutdownTimeout bounds graceful shutdown. Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// GenPassConfig holds password generator defaults.
type GenPassConfig struct {
	Length    int  `yaml:"length" mapstructure:"length"`
	Uppercase bool `yaml:"uppercase" mapstructure:"uppercase"`
	Lowercase bool `yaml:"lowercase" mapstructure:"lowercase"`
	Number    bool `yaml:"number" mapstructure:"number"`
	Symbol    bool `yaml:"symbol" mapstructure:"symbol"`
}

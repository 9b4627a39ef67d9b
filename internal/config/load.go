package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/errors"
)

// newViperInstance creates a new Viper instance with the RCLI_ env prefix,
// dotted-key replacer and defaults.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// unmarshalAndValidate unmarshals viper config into Config struct and validates it.
func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Tag(errors.ErrConfigInvalid, err, "failed to unmarshal config")
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("text.format", cfg.Text.Format).
		Str("cipher.nonce_mode", cfg.Cipher.NonceMode).
		Bool("jwt.secret_set", cfg.JWT.Secret != "").
		Dur("jwt.ttl", cfg.JWT.TTL).
		Int("http.port", cfg.HTTP.Port).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper precedence.
// Missing config files are not an error.
func Load(ctx context.Context) (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(ctx, v)
}

// loadGlobalConfig reads the global config file if it exists.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil || !fileExists(path) {
		return nil //nolint:nilerr // No home directory means no global config
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Tag(errors.ErrConfigInvalid, err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig merges the project config file over the global one if it exists.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Tag(errors.ErrConfigInvalid, err, "failed to read project config file")
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFromPaths loads configuration from specific file paths.
// Either path can be empty to skip that level; a path that does not exist
// is skipped too.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Tag(errors.ErrConfigInvalid, err, "failed to read global config "+globalConfigPath)
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, errors.Tag(errors.ErrConfigInvalid, err, "failed to read project config "+projectConfigPath)
		}
	}

	return unmarshalAndValidate(ctx, v)
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the mapstructure tags, and every key must be registered
// here for RCLI_* environment overrides to reach Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("text.format", d.Text.Format)
	v.SetDefault("text.key_dir", d.Text.KeyDir)

	v.SetDefault("cipher.nonce_mode", d.Cipher.NonceMode)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "")
	v.SetDefault("jwt.audience", "")
	v.SetDefault("jwt.ttl", d.JWT.TTL.String())

	v.SetDefault("http.dir", d.HTTP.Dir)
	v.SetDefault("http.port", d.HTTP.Port)
	v.SetDefault("http.read_header_timeout", d.HTTP.ReadHeaderTimeout.String())
	v.SetDefault("http.shutdown_timeout", d.HTTP.ShutdownTimeout.String())

	v.SetDefault("genpass.length", d.GenPass.Length)
	v.SetDefault("genpass.uppercase", d.GenPass.Uppercase)
	v.SetDefault("genpass.lowercase", d.GenPass.Lowercase)
	v.SetDefault("genpass.number", d.GenPass.Number)
	v.SetDefault("genpass.symbol", d.GenPass.Symbol)
}

// viperDecoderOption configures mapstructure to decode durations from strings.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

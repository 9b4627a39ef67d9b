package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/rcli/internal/errors"
)

// isolate points RCLI_HOME at an empty directory and moves into another so
// neither the user's global nor a project config leaks into a test.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("RCLI_HOME", home)
	t.Chdir(project)
	return home, project
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Precedence(t *testing.T) {
	home, project := isolate(t)

	writeConfig(t, filepath.Join(home, "config.yaml"), `
text:
  format: ed25519
jwt:
  issuer: global-issuer
  ttl: 24h
http:
  port: 9000
`)
	writeConfig(t, filepath.Join(project, ".rcli", "config.yaml"), `
jwt:
  issuer: project-issuer
`)
	t.Setenv("RCLI_HTTP_PORT", "9100")
	t.Setenv("RCLI_JWT_SECRET", "from-env")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ed25519", cfg.Text.Format, "global overrides default")
	assert.Equal(t, "project-issuer", cfg.JWT.Issuer, "project overrides global")
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL, "global value survives project merge")
	assert.Equal(t, 9100, cfg.HTTP.Port, "env overrides files")
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestLoad_InvalidValues(t *testing.T) {
	home, _ := isolate(t)
	writeConfig(t, filepath.Join(home, "config.yaml"), "cipher:\n  nonce_mode: counter\n")

	_, err := Load(context.Background())
	require.ErrorIs(t, err, errors.ErrConfigInvalid)
}

func TestLoad_MalformedYAML(t *testing.T) {
	home, _ := isolate(t)
	writeConfig(t, filepath.Join(home, "config.yaml"), "text: [unterminated\n")

	_, err := Load(context.Background())
	require.ErrorIs(t, err, errors.ErrConfigInvalid)
}

func TestLoadFromPaths(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	global := filepath.Join(dir, "global.yaml")
	project := filepath.Join(dir, "project.yaml")

	writeConfig(t, global, `
genpass:
  length: 24
  symbol: false
http:
  shutdown_timeout: 3s
`)
	writeConfig(t, project, `
genpass:
  length: 32
`)

	t.Run("project over global", func(t *testing.T) {
		cfg, err := LoadFromPaths(context.Background(), project, global)
		require.NoError(t, err)
		assert.Equal(t, 32, cfg.GenPass.Length)
		assert.False(t, cfg.GenPass.Symbol)
		assert.True(t, cfg.GenPass.Uppercase)
		assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	})

	t.Run("missing paths are skipped", func(t *testing.T) {
		cfg, err := LoadFromPaths(context.Background(), filepath.Join(dir, "nope.yaml"), "")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("invalid duration", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		writeConfig(t, bad, "jwt:\n  ttl: fortnight\n")
		_, err := LoadFromPaths(context.Background(), bad, "")
		require.ErrorIs(t, err, errors.ErrConfigInvalid)
	})
}

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/rcli/internal/constants"
)

func TestHome(t *testing.T) {
	t.Run("RCLI_HOME overrides", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("RCLI_HOME", home)

		dir, err := Home()
		require.NoError(t, err)
		assert.Equal(t, home, dir)

		cfg, err := GlobalConfigPath()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "config.yaml"), cfg)

		logs, err := LogDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "logs"), logs)
	})

	t.Run("falls back to ~/.rcli", func(t *testing.T) {
		t.Setenv("RCLI_HOME", "")
		dir, err := Home()
		if err != nil {
			assert.Contains(t, err.Error(), "resolving home directory")
			return
		}
		assert.Equal(t, constants.RcliHome, filepath.Base(dir))
		assert.True(t, filepath.IsAbs(dir))
	})
}

func TestProjectConfigPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".rcli", "config.yaml"), ProjectConfigPath())
}

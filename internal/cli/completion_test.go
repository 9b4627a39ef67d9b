package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCompletionRoot() *cobra.Command {
	root := &cobra.Command{Use: "rcli"}
	root.PersistentFlags().BoolP("quiet", "q", false, "")
	AddCompletionCommand(root)
	return root
}

func TestAddCompletionCommand(t *testing.T) {
	t.Parallel()

	root := newCompletionRoot()
	assert.True(t, root.CompletionOptions.DisableDefaultCmd)

	for _, sub := range []string{"bash", "zsh", "fish", "powershell", "install"} {
		cmd, _, err := root.Find([]string{"completion", sub})
		require.NoError(t, err, sub)
		assert.Equal(t, sub, cmd.Use)
	}
}

func TestShellCompletionCmds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "bash completion"},
		{"zsh", "#compdef rcli"},
		{"fish", "complete -c rcli"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tc := range tests {
		t.Run(tc.shell, func(t *testing.T) {
			t.Parallel()

			root := newCompletionRoot()
			buf := new(bytes.Buffer)
			root.SetOut(buf)
			root.SetArgs([]string{"completion", tc.shell})

			require.NoError(t, root.Execute())
			assert.Contains(t, buf.String(), tc.want)
		})
	}
}

func TestDetectShell(t *testing.T) {
	tests := []struct {
		env  string
		want shellType
	}{
		{"/bin/zsh", shellZsh},
		{"/usr/local/bin/bash", shellBash},
		{"/usr/bin/fish", shellFish},
		{"/usr/bin/pwsh", shellUnknown},
		{"", shellUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.env, func(t *testing.T) {
			t.Setenv("SHELL", tc.env)
			assert.Equal(t, tc.want, detectShell())
		})
	}
}

func TestShellRCFile(t *testing.T) {
	t.Parallel()

	home := "/home/u"
	assert.Equal(t, filepath.Join(home, ".zshrc"), shellRCFile(home, shellZsh))
	assert.Equal(t, filepath.Join(home, ".bashrc"), shellRCFile(home, shellBash))
	assert.Equal(t, filepath.Join(home, ".config", "fish", "config.fish"), shellRCFile(home, shellFish))
	assert.Empty(t, shellRCFile(home, shellPowershell))
	assert.Empty(t, shellRCFile(home, shellUnknown))
}

func TestRunCompletionInstall_Errors(t *testing.T) {
	t.Run("unsupported shell flag", func(t *testing.T) {
		root := newCompletionRoot()
		root.SetArgs([]string{"completion", "install", "--shell", "tcsh"})
		root.SetOut(new(bytes.Buffer))
		require.ErrorIs(t, root.Execute(), errUnsupportedShell)
	})

	t.Run("powershell has no installer", func(t *testing.T) {
		root := newCompletionRoot()
		root.SetArgs([]string{"completion", "install", "--shell", "powershell"})
		root.SetOut(new(bytes.Buffer))
		require.ErrorIs(t, root.Execute(), errUnsupportedShell)
	})

	t.Run("no shell detected", func(t *testing.T) {
		t.Setenv("SHELL", "")
		root := newCompletionRoot()
		root.SetArgs([]string{"completion", "install"})
		root.SetOut(new(bytes.Buffer))
		require.ErrorIs(t, root.Execute(), errNoShellDetected)
	})
}

func TestInstallCompletions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shell    shellType
		path     []string
		rcFile   string
		rcUpdate bool
	}{
		{shellZsh, []string{".zsh", "completions", "_rcli"}, ".zshrc", true},
		{shellBash, []string{".bash_completion.d", "rcli"}, ".bashrc", true},
		{shellFish, []string{".config", "fish", "completions", "rcli.fish"}, "", false},
	}

	for _, tc := range tests {
		t.Run(string(tc.shell), func(t *testing.T) {
			t.Parallel()

			home := t.TempDir()
			spec, ok := lookupShellSpec(tc.shell)
			require.True(t, ok)

			path, updated, err := installCompletions(newCompletionRoot(), spec, home)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(append([]string{home}, tc.path...)...), path)
			assert.Equal(t, tc.rcUpdate, updated)

			script, err := os.ReadFile(path) //nolint:gosec // Test path
			require.NoError(t, err)
			assert.Contains(t, string(script), "rcli")

			if tc.rcFile != "" {
				rc, err := os.ReadFile(filepath.Join(home, tc.rcFile)) //nolint:gosec // Test path
				require.NoError(t, err)
				assert.Contains(t, string(rc), "# rcli shell completions")
			}
		})
	}
}

func TestUpdateZshRC(t *testing.T) {
	t.Parallel()

	t.Run("adds fpath and compinit once", func(t *testing.T) {
		t.Parallel()
		home := t.TempDir()
		dir := filepath.Join(home, ".zsh", "completions")

		updated, err := updateZshRC(home, dir)
		require.NoError(t, err)
		assert.True(t, updated)

		updated, err = updateZshRC(home, dir)
		require.NoError(t, err)
		assert.False(t, updated)

		rc, err := os.ReadFile(filepath.Join(home, ".zshrc")) //nolint:gosec // Test path
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(rc), "compinit &&"))
		assert.Contains(t, string(rc), "fpath=("+dir+" $fpath)")
	})

	t.Run("existing compinit only adds fpath", func(t *testing.T) {
		t.Parallel()
		home := t.TempDir()
		rcPath := filepath.Join(home, ".zshrc")
		require.NoError(t, os.WriteFile(rcPath, []byte("autoload -U compinit && compinit\n"), 0o600))

		updated, err := updateZshRC(home, "/c")
		require.NoError(t, err)
		assert.True(t, updated)

		rc, err := os.ReadFile(rcPath) //nolint:gosec // Test path
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(string(rc), "compinit &&"))
		assert.Contains(t, string(rc), "fpath=(/c $fpath)")
	})
}

func TestUpdateBashRC(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	dir := filepath.Join(home, ".bash_completion.d")

	updated, err := updateBashRC(home, dir)
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = updateBashRC(home, dir)
	require.NoError(t, err)
	assert.False(t, updated)

	rc, err := os.ReadFile(filepath.Join(home, ".bashrc")) //nolint:gosec // Test path
	require.NoError(t, err)
	assert.Contains(t, string(rc), "for f in "+dir+"/*; do")
}

func TestRunCompletionInstall_WithShellFlag(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root := newCompletionRoot()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"completion", "install", "--shell", "fish"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Detected shell: fish")
	assert.FileExists(t, filepath.Join(home, ".config", "fish", "completions", "rcli.fish"))
}

func TestRunCompletionInstall_Quiet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	root := newCompletionRoot()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"-q", "completion", "install", "--shell", "bash"})

	require.NoError(t, root.Execute())
	assert.Empty(t, buf.String())
	assert.FileExists(t, filepath.Join(home, ".bash_completion.d", "rcli"))
}

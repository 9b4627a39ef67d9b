package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rcli/internal/constants"
)

// shellType represents supported shell types.
type shellType string

// Sentinel errors for completion commands.
var (
	errUnsupportedShell = errors.New("unsupported shell (supported: zsh, bash, fish)")
	errNoShellDetected  = errors.New("could not detect shell from $SHELL environment variable; use --shell flag")
)

const (
	shellZsh        shellType = "zsh"
	shellBash       shellType = "bash"
	shellFish       shellType = "fish"
	shellPowershell shellType = "powershell"
	shellUnknown    shellType = "unknown"
)

// shellSpec describes how to generate and install completions for one shell.
type shellSpec struct {
	shell shellType
	// load is the one-liner that loads completions into the current session.
	load string
	gen  func(root *cobra.Command, w io.Writer) error
	// dir and file locate the installed script under the home directory.
	// An empty dir means the shell has no install support.
	dir  []string
	file string
	// rc updates the shell's startup file; nil when the shell autoloads.
	rc func(home, completionsDir string) (bool, error)
}

func shellSpecs() []shellSpec {
	return []shellSpec{
		{
			shell: shellBash,
			load:  "source <(rcli completion bash)",
			gen:   func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
			dir:   []string{".bash_completion.d"},
			file:  "rcli",
			rc:    updateBashRC,
		},
		{
			shell: shellZsh,
			load:  "source <(rcli completion zsh)",
			gen:   func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
			dir:   []string{".zsh", "completions"},
			file:  "_rcli",
			rc:    updateZshRC,
		},
		{
			shell: shellFish,
			load:  "rcli completion fish | source",
			gen:   func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
			dir:   []string{".config", "fish", "completions"},
			file:  "rcli.fish",
		},
		{
			shell: shellPowershell,
			load:  "rcli completion powershell | Out-String | Invoke-Expression",
			gen:   func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
		},
	}
}

func lookupShellSpec(shell shellType) (shellSpec, bool) {
	for _, s := range shellSpecs() {
		if s.shell == shell {
			return s, true
		}
	}
	return shellSpec{}, false
}

// AddCompletionCommand replaces Cobra's default completion command with one
// that also offers an "install" subcommand.
func AddCompletionCommand(rootCmd *cobra.Command) {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for rcli.

To install completions automatically:
  rcli completion install

To generate completion scripts manually:
  rcli completion bash
  rcli completion zsh
  rcli completion fish
  rcli completion powershell`,
	}

	for _, spec := range shellSpecs() {
		completionCmd.AddCommand(newShellCompletionCmd(spec))
	}
	completionCmd.AddCommand(newInstallCompletionCmd())

	rootCmd.AddCommand(completionCmd)
}

func newShellCompletionCmd(spec shellSpec) *cobra.Command {
	return &cobra.Command{
		Use:   string(spec.shell),
		Short: fmt.Sprintf("Generate %s completion script", spec.shell),
		Long: fmt.Sprintf(`Generate %s completion script for rcli.

To load completions in current session:
  %s`, spec.shell, spec.load),
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return spec.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

func newInstallCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install shell completions automatically",
		Long: `Install shell completions for rcli.

Detects your shell from $SHELL; override it with --shell.

Supported shells: zsh, bash, fish

Examples:
  rcli completion install
  rcli completion install --shell zsh`,
		RunE: runCompletionInstall,
	}

	cmd.Flags().String("shell", "", "Shell to install completions for (zsh, bash, fish)")
	return cmd
}

func runCompletionInstall(cmd *cobra.Command, _ []string) error {
	shellFlag, _ := cmd.Flags().GetString("shell")
	quiet, _ := cmd.Flags().GetBool("quiet")

	shell := shellType(shellFlag)
	if shellFlag == "" {
		if shell = detectShell(); shell == shellUnknown {
			return errNoShellDetected
		}
	}
	spec, ok := lookupShellSpec(shell)
	if !ok || len(spec.dir) == 0 {
		return fmt.Errorf("%s: %w", shell, errUnsupportedShell)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not determine home directory: %w", err)
	}

	path, rcUpdated, err := installCompletions(cmd.Root(), spec, home)
	if err != nil {
		return err
	}

	if !quiet {
		cmd.Printf("Detected shell: %s\n", shell)
		cmd.Printf("  Created %s\n", path)
		if rcUpdated {
			cmd.Printf("  Updated %s\n", shellRCFile(home, shell))
		}
		if rc := shellRCFile(home, shell); rc != "" {
			cmd.Printf("Done! Restart your shell or run: source %s\n", rc)
		}
	}
	return nil
}

// detectShell detects the user's shell from the $SHELL environment variable.
func detectShell() shellType {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return shellUnknown
	}

	switch shell := shellType(filepath.Base(shellPath)); shell {
	case shellZsh, shellBash, shellFish:
		return shell
	case shellPowershell, shellUnknown:
	}
	return shellUnknown
}

// shellRCFile returns the startup file for shell under home.
func shellRCFile(home string, shell shellType) string {
	switch shell {
	case shellZsh:
		return filepath.Join(home, ".zshrc")
	case shellBash:
		return filepath.Join(home, ".bashrc")
	case shellFish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	case shellPowershell, shellUnknown:
	}
	return ""
}

// installCompletions writes the completion script for spec under home and
// updates the shell's startup file when needed.
func installCompletions(root *cobra.Command, spec shellSpec, home string) (string, bool, error) {
	completionsDir := filepath.Join(append([]string{home}, spec.dir...)...)
	if err := os.MkdirAll(completionsDir, constants.DirMode); err != nil {
		return "", false, fmt.Errorf("could not create %s: %w", completionsDir, err)
	}

	var buf bytes.Buffer
	if err := spec.gen(root, &buf); err != nil {
		return "", false, fmt.Errorf("could not generate %s completions: %w", spec.shell, err)
	}

	path := filepath.Join(completionsDir, spec.file)
	if err := os.WriteFile(path, buf.Bytes(), constants.KeyFileMode); err != nil {
		return "", false, fmt.Errorf("could not write %s: %w", path, err)
	}

	if spec.rc == nil {
		return path, false, nil
	}
	updated, err := spec.rc(home, completionsDir)
	if err != nil {
		return path, false, fmt.Errorf("could not update startup file: %w", err)
	}
	return path, updated, nil
}

// appendRC appends lines to the startup file at rcPath under an rcli header.
func appendRC(rcPath string, lines []string) error {
	f, err := os.OpenFile(filepath.Clean(rcPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, constants.KeyFileMode)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = f.WriteString("\n# rcli shell completions\n" + strings.Join(lines, "\n") + "\n")
	return err
}

func readRC(rcPath string) (string, error) {
	content, err := os.ReadFile(filepath.Clean(rcPath))
	if err != nil && !os.IsNotExist(err) {
		return "", err
	}
	return string(content), nil
}

// updateZshRC ensures fpath and compinit are configured in .zshrc.
func updateZshRC(home, completionsDir string) (bool, error) {
	rcPath := filepath.Join(home, ".zshrc")
	content, err := readRC(rcPath)
	if err != nil {
		return false, err
	}

	var additions []string
	if !strings.Contains(content, completionsDir) {
		additions = append(additions, fmt.Sprintf("fpath=(%s $fpath)", completionsDir))
	}
	if !strings.Contains(content, "compinit") {
		additions = append(additions, "autoload -U compinit && compinit")
	}
	if len(additions) == 0 {
		return false, nil
	}
	return true, appendRC(rcPath, additions)
}

// updateBashRC ensures the completions directory is sourced from .bashrc.
func updateBashRC(home, completionsDir string) (bool, error) {
	rcPath := filepath.Join(home, ".bashrc")
	content, err := readRC(rcPath)
	if err != nil {
		return false, err
	}
	if strings.Contains(content, completionsDir) {
		return false, nil
	}
	return true, appendRC(rcPath, []string{
		fmt.Sprintf("for f in %s/*; do", completionsDir),
		`  [ -f "$f" ] && source "$f"`,
		"done",
	})
}

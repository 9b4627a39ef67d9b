package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mrz1836/rcli/internal/source"
)

// isolateCLI points RCLI_HOME and the working directory at fresh temp
// dirs so config, logs and default outputs never touch the real home.
// It returns the working directory.
func isolateCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("RCLI_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	work := t.TempDir()
	t.Chdir(work)
	t.Cleanup(CloseLogFile)
	return work
}

// cliResult captures one command execution.
type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command with args. A non-empty stdin replaces
// standard input for the run.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	if stdin != "" {
		orig := source.Stdin
		source.Stdin = strings.NewReader(stdin)
		t.Cleanup(func() { source.Stdin = orig })
	}

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{Version: "test"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

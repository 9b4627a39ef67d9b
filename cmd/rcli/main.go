// Package main provides the entry point for the rcli CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/rcli/internal/cli"
)

// Set via ldflags at build time.
//
//nolint:gochecknoglobals // Build-time variables
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer cli.CloseLogFile()

	err := cli.Execute(context.Background(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	return cli.ExitCodeForError(err)
}

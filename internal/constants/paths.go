package constants

// Directory names used by rcli.
const (
	// RcliHome is the hidden directory name where rcli stores its data.
	// This directory is created in the user's home directory.
	RcliHome = ".rcli"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// Log and configuration file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.rcli/logs/rcli.log
	CLILogFileName = "rcli.log"

	// GlobalConfigName is the name of the global and project configuration file.
	GlobalConfigName = "config.yaml"

	// EnvPrefix is the prefix for environment variable overrides (RCLI_*).
	EnvPrefix = "RCLI"

	// HomeEnvVar overrides the rcli home directory.
	HomeEnvVar = "RCLI_HOME"
)

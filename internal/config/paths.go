package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/errors"
)

// Home returns the rcli home directory: $RCLI_HOME when set, otherwise ~/.rcli.
func Home() (string, error) {
	if dir := os.Getenv(constants.HomeEnvVar); dir != "" {
		return dir, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving home directory")
	}
	return filepath.Join(userHome, constants.RcliHome), nil
}

func inHome(elem ...string) (string, error) {
	home, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, elem...)...), nil
}

// GlobalConfigPath returns <home>/config.yaml.
func GlobalConfigPath() (string, error) {
	return inHome(constants.GlobalConfigName)
}

// LogDir returns the directory holding the rotating CLI log.
func LogDir() (string, error) {
	return inHome(constants.LogsDir)
}

// ProjectConfigPath returns .rcli/config.yaml relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.RcliHome, constants.GlobalConfigName)
}

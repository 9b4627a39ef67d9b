package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/rcli/internal/config"
	"github.com/mrz1836/rcli/internal/constants"
	"github.com/mrz1836/rcli/internal/logging"
)

// logState owns the rotating log file opened by InitLogger and guards the
// zerolog/log package logger, which tests replace concurrently.
//
//nolint:gochecknoglobals // One log file per process
var logState struct {
	mu   sync.Mutex
	file io.WriteCloser
}

// InitLogger builds the CLI logger.
//
// The level is Debug with verbose, Warn with quiet and Info otherwise.
// Console output is a ConsoleWriter on a color TTY and JSON on stderr
// otherwise. Entries are also appended to the rotating rcli.log under the
// rcli home, with secrets redacted; if that file cannot be opened logging
// continues on the console only.
func InitLogger(verbose, quiet bool) zerolog.Logger {
	CloseLogFile()

	writer := selectOutput()
	if fw, err := createLogFileWriter(); err == nil {
		logState.mu.Lock()
		logState.file = fw
		logState.mu.Unlock()
		writer = zerolog.MultiLevelWriter(writer, fw)
	}

	logger := newLogger(writer, selectLevel(verbose, quiet))
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter builds the CLI logger on w with no log file.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	logger := newLogger(w, selectLevel(verbose, quiet))
	setGlobalLogger(logger)
	return logger
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		Hook(logging.NewSensitiveDataHook()).
		With().Timestamp().
		Logger()
}

func setGlobalLogger(l zerolog.Logger) {
	logState.mu.Lock()
	defer logState.mu.Unlock()
	log.Logger = l
}

// CloseLogFile closes the log file opened by InitLogger, if any.
func CloseLogFile() {
	logState.mu.Lock()
	defer logState.mu.Unlock()
	if logState.file != nil {
		_ = logState.file.Close()
		logState.file = nil
	}
}

func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput picks a console writer for a color TTY and plain JSON otherwise.
func selectOutput() io.Writer {
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" { //nolint:gosec // fd fits in int
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return os.Stderr
}

// createLogFileWriter opens the rotating CLI log, filtered so key material
// and secrets never reach disk.
func createLogFileWriter() (io.WriteCloser, error) {
	path, err := LogFilePath()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.DirMode); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	return logging.NewFilteringWriteCloser(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}), nil
}

// LogFilePath returns the path to the CLI log file.
func LogFilePath() (string, error) {
	dir, err := config.LogDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.CLILogFileName), nil
}

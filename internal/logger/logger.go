package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"mclauncher/internal/config"
)

var (
	defaultLogger hclog.Logger
)

// GetLogLevelFromString maps a level name to an hclog level
func GetLogLevelFromString(level string) hclog.Level {
	l := hclog.LevelFromString(strings.ToLower(level))
	if l == hclog.NoLevel {
		return hclog.Warn
	}
	return l
}

/**
 * Initialize the logging system
 * @param {*config.LogConfig} cfg - Level and output path
 * @param {bool} isServerMode - Also tee output to stdout when running the HTTP server
 * @description
 * - "console" or empty path writes to stderr
 * - A file path is created (with its directory) and appended to
 * - If the file cannot be opened, falls back to stderr
 */
func InitLogger(cfg *config.LogConfig, isServerMode bool) {
	var output io.Writer = os.Stderr
	if cfg.Path != "console" && cfg.Path != "" {
		output = setupLogFileOutput(cfg.Path)
		if isServerMode {
			output = io.MultiWriter(os.Stdout, output)
		}
	}
	defaultLogger = NewLogger("mclauncher", cfg.Level, output)
}

// NewLogger builds a named hclog logger writing to output.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      GetLogLevelFromString(level),
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05.000Z0700",
		TimeFn:     time.Now,
	})
}

// SetLogger replaces the process-wide logger; nil disables logging.
func SetLogger(l hclog.Logger) {
	defaultLogger = l
}

// Named returns a sub-logger for a component, or a null logger before init.
func Named(name string) hclog.Logger {
	if defaultLogger == nil {
		return hclog.NewNullLogger()
	}
	return defaultLogger.Named(name)
}

// setupLogFileOutput opens the log file, creating its directory
func setupLogFileOutput(logPath string) io.Writer {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "create log directory failed: %v\n", err)
		return os.Stderr
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log file failed: %v\n", err)
		return os.Stderr
	}
	return file
}

// Debugf logs at debug level
func Debugf(format string, v ...interface{}) {
	if defaultLogger != nil && defaultLogger.IsDebug() {
		defaultLogger.Debug(fmt.Sprintf(format, v...))
	}
}

// Infof logs at info level
func Infof(format string, v ...interface{}) {
	if defaultLogger != nil && defaultLogger.IsInfo() {
		defaultLogger.Info(fmt.Sprintf(format, v...))
	}
}

// Warnf logs at warn level
func Warnf(format string, v ...interface{}) {
	if defaultLogger != nil && defaultLogger.IsWarn() {
		defaultLogger.Warn(fmt.Sprintf(format, v...))
	}
}

// Errorf logs at error level
func Errorf(format string, v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.Error(fmt.Sprintf(format, v...))
	}
}

// Info logs at info level; args are hclog key/value pairs
func Info(msg string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.Info(msg, args...)
	}
}

// Warn logs at warn level; args are hclog key/value pairs
func Warn(msg string, args ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.Warn(msg, args...)
	}
}

// Fatal logs at error level and exits
func Fatal(v ...interface{}) {
	if defaultLogger != nil {
		defaultLogger.Error(fmt.Sprint(v...))
	} else {
		fmt.Fprintf(os.Stderr, "FATAL: %s\n", fmt.Sprint(v...))
	}
	os.Exit(1)
}

// Fatalf logs at error level and exits
func Fatalf(format string, v ...interface{}) {
	Fatal(fmt.Sprintf(format, v...))
}

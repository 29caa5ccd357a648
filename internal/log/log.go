// Package log provides structured, colored logging for the seedphrase tools.
//
// Callers must never log mnemonics, passphrases, seeds or keys. Attempts are
// identified by their keyed fingerprint instead.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers for different parts of the system.
var (
	Daemon  zerolog.Logger
	RPC     zerolog.Logger
	History zerolog.Logger
	Metrics zerolog.Logger
	CLI     zerolog.Logger
)

func init() {
	// Default to colored console output on stderr so CLI stdout stays clean.
	Logger = NewConsoleLogger(os.Stderr, "info")
	initComponentLoggers()
}

// Init initializes the logger with the given configuration.
// When file is non-empty, logs are written to both the console (colored or
// JSON depending on jsonOutput) and the file (always JSON for machine parsing).
// The returned closer releases the log file; it is a no-op otherwise.
func Init(level string, jsonOutput bool, file string) (io.Closer, error) {
	if file == "" {
		SetOutput(os.Stderr, level, jsonOutput)
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}

	var consoleWriter io.Writer = os.Stderr
	if !jsonOutput {
		consoleWriter = consoleOutput(os.Stderr)
	}

	// File writer: always JSON (no ANSI codes, structured for parsing).
	Logger = zerolog.New(zerolog.MultiLevelWriter(consoleWriter, f)).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
	initComponentLoggers()
	return f, nil
}

// SetOutput points the global and component loggers at w.
func SetOutput(w io.Writer, level string, jsonOutput bool) {
	if jsonOutput {
		Logger = NewJSONLogger(w, level)
	} else {
		Logger = NewConsoleLogger(w, level)
	}
	initComponentLoggers()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func consoleOutput(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    false,
	}
}

// NewConsoleLogger creates a colored console logger.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(consoleOutput(w)).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewJSONLogger creates a structured JSON logger.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// ValidLevel reports whether level is a name ParseLevel understands.
func ValidLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ParseLevel converts a string level to zerolog.Level. Unknown names map
// to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func initComponentLoggers() {
	Daemon = WithComponent("daemon")
	RPC = WithComponent("rpc")
	History = WithComponent("history")
	Metrics = WithComponent("metrics")
	CLI = WithComponent("cli")
}

// WithComponent returns a logger with a component field.
func WithComponent(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

// Debug logs a debug message.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info logs an info message.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn logs a warning message.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error logs an error message.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Benchmark helper for timing operations.
func Benchmark(name string) func() {
	start := time.Now()
	return func() {
		Logger.Debug().
			Str("operation", name).
			Dur("duration", time.Since(start)).
			Msg("benchmark")
	}
}

// Package logging provides structured diagnostics logging for sermon
// using zerolog. The TUI owns the terminal, so diagnostics go to a file;
// with no file configured the logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger = zerolog.Nop()

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// File is the diagnostics log path. Empty disables logging.
	File string
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{Level: "info"}
}

// Init initializes the global logger with the given configuration.
func Init(cfg Config) error {
	if cfg.File == "" {
		Logger = zerolog.Nop()
		return nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	Logger = zerolog.New(f).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	return nil
}

// parseLevel converts a string level to zerolog.Level.
func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Package config handles sermon configuration loading and validation.
package config

import (
	"fmt"

	"github.com/tOgg1/sermon/internal/serialport"
)

// Config is the root configuration structure for sermon.
type Config struct {
	// Port is the serial device path (e.g. /dev/ttyUSB0 or COM1).
	Port string `yaml:"port" mapstructure:"port"`

	// Baud is the serial line speed.
	Baud int `yaml:"baud" mapstructure:"baud"`

	// LogFile is where the session transcript is appended.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`

	// NoLog disables the transcript log file.
	NoLog bool `yaml:"no_log" mapstructure:"no_log"`

	// MaxLines caps the in-memory transcript buffer.
	MaxLines int `yaml:"max_lines" mapstructure:"max_lines"`

	// Logging configures the diagnostics logger.
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// LoggingConfig contains diagnostics logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// File is the diagnostics log path. Empty disables diagnostics.
	File string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:     "/dev/ttyUSB0",
		Baud:     57600,
		LogFile:  "serial_monitor.log",
		MaxLines: 1000,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for startup errors.
func (c *Config) Validate() error {
	if err := serialport.ValidatePort(c.Port); err != nil {
		return err
	}
	if err := serialport.ValidateBaud(c.Baud); err != nil {
		return err
	}
	if c.MaxLines <= 0 {
		return fmt.Errorf("max_lines must be positive, got %d", c.MaxLines)
	}
	if !c.NoLog && c.LogFile == "" {
		return fmt.Errorf("log_file must be set unless no_log is enabled")
	}
	return nil
}

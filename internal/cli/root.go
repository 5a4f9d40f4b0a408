// Package cli wires the sermon command line: flag parsing, configuration
// loading, startup validation, and handing the session to the TUI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tOgg1/sermon/internal/config"
	"github.com/tOgg1/sermon/internal/logging"
	"github.com/tOgg1/sermon/internal/serialport"
	"github.com/tOgg1/sermon/internal/transcript"
	"github.com/tOgg1/sermon/internal/tui"
)

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

// baudFlag validates the baud rate at flag-parse time, so a bad value is
// a usage error before any startup work happens.
type baudFlag int

func (b *baudFlag) String() string {
	return strconv.Itoa(int(*b))
}

func (b *baudFlag) Set(s string) error {
	baud, err := serialport.ParseBaud(s)
	if err != nil {
		return err
	}
	*b = baudFlag(baud)
	return nil
}

func (b *baudFlag) Type() string {
	return "int"
}

func newRootCmd(version string) *cobra.Command {
	var (
		configFile string
		port       string
		baud       baudFlag = 57600
		logFile    string
		noLog      bool
		debugLog   string
		debugLevel string
	)

	cmd := &cobra.Command{
		Use:           "sermon",
		Short:         "Serial monitor for microcontroller communication",
		Long:          "sermon is an interactive terminal client for a device on a serial port:\nit shows device output, sends typed commands, and keeps a timestamped log.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader()
			if configFile != "" {
				loader.SetConfigFile(configFile)
			}
			cfg, err := loader.Load()
			if err != nil {
				return err
			}

			// Flags take precedence over config file and env values.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("baud") {
				cfg.Baud = int(baud)
			}
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}
			if cmd.Flags().Changed("no-log") {
				cfg.NoLog = noLog
			}
			if cmd.Flags().Changed("debug-log") {
				cfg.Logging.File = debugLog
			}
			if cmd.Flags().Changed("debug-level") {
				cfg.Logging.Level = debugLevel
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/sermon/config.yaml)")
	cmd.Flags().StringVar(&port, "port", "/dev/ttyUSB0", "serial port name (e.g. /dev/ttyUSB0 or COM1)")
	cmd.Flags().Var(&baud, "baud", "baud rate for serial communication")
	cmd.Flags().StringVar(&logFile, "log-file", "serial_monitor.log", "transcript log file path")
	cmd.Flags().BoolVar(&noLog, "no-log", false, "disable logging to file")
	cmd.Flags().StringVar(&debugLog, "debug-log", "", "diagnostics log file (disabled when empty)")
	cmd.Flags().StringVar(&debugLevel, "debug-level", "info", "diagnostics log level")
	return cmd
}

// run performs startup: diagnostics, transport, log sink, then the
// interactive loop. Every failure here is fatal and reported before any
// UI is drawn.
func run(cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("sermon needs an interactive terminal: stdout is not a TTY")
	}

	if err := logging.Init(logging.Config{Level: cfg.Logging.Level, File: cfg.Logging.File}); err != nil {
		return err
	}
	sessionID := uuid.NewString()
	log := logging.Logger.With().Str("session_id", sessionID).Logger()

	if !serialport.Exists(cfg.Port) {
		// Ports appear dynamically and may need permissions, so warn only.
		fmt.Fprintf(os.Stderr, "Warning: Port '%s' may not exist or is inaccessible\n", cfg.Port)
	}

	conn, err := serialport.Open(cfg.Port, cfg.Baud)
	if err != nil {
		return fmt.Errorf("open serial port: %w", err)
	}

	var sink *transcript.Sink
	if !cfg.NoLog {
		sink, err = transcript.OpenSink(cfg.LogFile)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.Append(fmt.Sprintf("--- session %s: %s @ %d baud ---", sessionID, cfg.Port, cfg.Baud)); err != nil {
			log.Error().Err(err).Msg("log sink header write failed")
		}
	}

	log.Info().Str("port", cfg.Port).Int("baud", cfg.Baud).Bool("logging", !cfg.NoLog).Msg("session starting")

	err = tui.Run(tui.Config{
		Port:     cfg.Port,
		Conn:     conn,
		Sink:     sink,
		MaxLines: cfg.MaxLines,
		Logger:   log,
	})
	if err != nil {
		log.Error().Err(err).Msg("session ended with error")
		return err
	}
	log.Info().Msg("session ended")
	return nil
}

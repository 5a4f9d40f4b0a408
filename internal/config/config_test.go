package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "/dev/ttyUSB0", cfg.Port)
	require.Equal(t, 57600, cfg.Baud)
	require.Equal(t, "serial_monitor.log", cfg.LogFile)
	require.Equal(t, 1000, cfg.MaxLines)
	require.False(t, cfg.NoLog)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Baud = 9601
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Port = "not-a-port"
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.MaxLines = 0
	require.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.LogFile = ""
	require.Error(t, cfg.Validate())
	cfg.NoLog = true
	require.NoError(t, cfg.Validate(), "empty log file is fine when logging is off")
}

func TestLoaderReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "port: /dev/ttyACM0\nbaud: 9600\nno_log: true\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	loader := NewLoader()
	loader.SetConfigFile(path)
	cfg, err := loader.Load()
	require.NoError(t, err)

	require.Equal(t, "/dev/ttyACM0", cfg.Port)
	require.Equal(t, 9600, cfg.Baud)
	require.True(t, cfg.NoLog)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, 1000, cfg.MaxLines, "unset keys keep defaults")
}

func TestLoaderMissingExplicitFileFails(t *testing.T) {
	loader := NewLoader()
	loader.SetConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := loader.Load()
	require.Error(t, err)
}

func TestLoaderWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	loader := NewLoader()
	cfg, err := loader.Load()
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

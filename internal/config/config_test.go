package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ghgcalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":50051", cfg.Server.Address)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Empty(t, cfg.Factors.File)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
factors:
  file: /etc/ghgcalc/factors.yaml
logging:
  level: debug
  format: json
server:
  address: 127.0.0.1:6000
  shutdown_timeout: 3s
output:
  default_format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/ghgcalc/factors.yaml", cfg.Factors.File)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, LogFormatJSON, cfg.Logging.Format)
	assert.Equal(t, "127.0.0.1:6000", cfg.Server.Address)
	assert.Equal(t, ":9090", cfg.Server.MetricsAddress, "unset keys keep defaults")
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, FormatJSON, cfg.Output.DefaultFormat)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
factors:
  file: from-file.json
logging:
  level: warn
`)
	t.Setenv("GHGCALC_FACTORS_FILE", "from-env.yaml")
	t.Setenv("GHGCALC_LOGGING_LEVEL", "error")
	t.Setenv("GHGCALC_SERVER_METRICS_ADDRESS", ":9191")
	t.Setenv("GHGCALC_SERVER_SHUTDOWN_TIMEOUT", "250ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", cfg.Factors.File)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, ":9191", cfg.Server.MetricsAddress)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.ShutdownTimeout)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown key",
			content: "factors:\n  fiel: x.json\n",
			wantErr: "parsing config file",
		},
		{
			name:    "bad log level",
			content: "logging:\n  level: loud\n",
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			content: "logging:\n  format: xml\n",
			wantErr: "logging.format",
		},
		{
			name:    "bad output format",
			content: "output:\n  default_format: csv\n",
			wantErr: "output.default_format",
		},
		{
			name:    "empty server address",
			content: "server:\n  address: \"\"\n",
			wantErr: "server.address",
		},
		{
			name:    "bad env duration",
			content: "",
			env:     map[string]string{"GHGCALC_SERVER_SHUTDOWN_TIMEOUT": "soon"},
			wantErr: "parse env",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggingConfig{Level: "warn", Format: LogFormatJSON}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("component", "test").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"message":"shown"`)
	assert.Contains(t, out, `"component":"test"`)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

	buf.Reset()
	console := NewLogger(LoggingConfig{Level: "bogus", Format: LogFormatConsole}, &buf)
	assert.Equal(t, zerolog.InfoLevel, console.GetLevel())
	console.Info().Msg("readable")
	assert.Contains(t, buf.String(), "readable")
	assert.NotContains(t, buf.String(), `"message"`)
}

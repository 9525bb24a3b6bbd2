// Package config loads ghgcalc settings from a YAML file and GHGCALC_*
// environment variables. Command-line flags are applied by the callers.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "GHGCALC_"

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config is the complete ghgcalc configuration.
type Config struct {
	Factors FactorsConfig `yaml:"factors" envPrefix:"FACTORS_"`
	Logging LoggingConfig `yaml:"logging" envPrefix:"LOGGING_"`
	Server  ServerConfig  `yaml:"server" envPrefix:"SERVER_"`
	Output  OutputConfig  `yaml:"output" envPrefix:"OUTPUT_"`
}

// FactorsConfig selects the emission factor data set.
type FactorsConfig struct {
	// File replaces the embedded data set when set (JSON or YAML).
	File string `yaml:"file" env:"FILE"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// ServerConfig configures the gRPC calculation service.
type ServerConfig struct {
	Address         string        `yaml:"address" env:"ADDRESS"`
	MetricsAddress  string        `yaml:"metrics_address" env:"METRICS_ADDRESS"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// OutputConfig configures CLI output.
type OutputConfig struct {
	// DefaultFormat is "table" or "json". Empty means table on a terminal
	// and json otherwise.
	DefaultFormat string `yaml:"default_format" env:"DEFAULT_FORMAT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  zerolog.InfoLevel.String(),
			Format: LogFormatConsole,
		},
		Server: ServerConfig{
			Address:         ":50051",
			MetricsAddress:  ":9090",
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then GHGCALC_* environment overrides. The result is
// validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// decodeYAML rejects unknown keys so typos in the file surface early.
func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("logging.format: must be %q or %q, got %q", LogFormatConsole, LogFormatJSON, c.Logging.Format)
	}
	switch c.Output.DefaultFormat {
	case "", FormatTable, FormatJSON:
	default:
		return fmt.Errorf("output.default_format: must be %q or %q, got %q", FormatTable, FormatJSON, c.Output.DefaultFormat)
	}
	if c.Server.Address == "" {
		return errors.New("server.address: must not be empty")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout: must not be negative, got %s", c.Server.ShutdownTimeout)
	}
	return nil
}

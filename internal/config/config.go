// Package config provides configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"netdiag/core/defuzzify"
	"netdiag/core/engine"
	"netdiag/core/output"
	"netdiag/internal/errors"
	"netdiag/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Engine contains diagnosis engine configuration
	Engine engine.Config `json:"engine"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr"`

	// BatchLimit bounds concurrent diagnoses of one batch request
	BatchLimit int `json:"batch_limit"`

	// MaxBatch is the largest accepted batch
	MaxBatch int `json:"max_batch"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowRules lists the activated rules in reports
	ShowRules bool `json:"show_rules"`

	// NoColor disables ANSI colors
	NoColor bool `json:"no_color"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Engine: engine.Config{
			Defuzzifier:     defuzzify.NameDiscrete,
			Samples:         defuzzify.DefaultSamples,
			SecondaryAdvice: false,
		},
		Server: ServerConfig{
			Addr:                   ":8080",
			BatchLimit:             engine.DefaultBatchLimit,
			MaxBatch:               1000,
			ShutdownTimeoutSeconds: 10,
		},
		Output: OutputConfig{
			DefaultFormat: string(output.FormatCLI),
			ShowRules:     true,
			NoColor:       false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns $HOME/.netdiag.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".netdiag.json"
	}
	return filepath.Join(homeDir, ".netdiag.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.TypeConfig, "failed to read config", err).WithContext("path", path)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.Parsing("invalid config file", err).WithContext("path", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if _, err := defuzzify.ByName(c.Engine.Defuzzifier, c.Engine.Samples); err != nil {
		return err
	}
	if c.Engine.Samples < 0 {
		return errors.Config(fmt.Sprintf("engine.samples must not be negative, got %d", c.Engine.Samples))
	}
	if c.Server.BatchLimit < 1 {
		return errors.Config(fmt.Sprintf("server.batch_limit must be at least 1, got %d", c.Server.BatchLimit))
	}
	if c.Server.MaxBatch < 1 {
		return errors.Config(fmt.Sprintf("server.max_batch must be at least 1, got %d", c.Server.MaxBatch))
	}
	if !output.Valid(c.Output.DefaultFormat) {
		return errors.Config(fmt.Sprintf("output.default_format %q is not one of %v", c.Output.DefaultFormat, output.Formats()))
	}
	return nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

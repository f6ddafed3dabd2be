// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration of the a2a-tasks command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Database dialects.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Defaults applied to fields left empty.
const (
	DefaultLogLevel    = "info"
	DefaultDialect     = DialectSQLite
	DefaultSQLiteDSN   = "a2a-tasks.db"
	DefaultPushTimeout = 30 * time.Second
)

// Config is the root of the configuration file.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Push     PushConfig     `yaml:"push"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig selects the task and push config storage.
type DatabaseConfig struct {
	Dialect   string `yaml:"dialect"`
	DSN       string `yaml:"dsn"`
	Table     string `yaml:"table"`
	PushTable string `yaml:"push_table"`
}

// PushConfig configures webhook delivery.
type PushConfig struct {
	Timeout time.Duration `yaml:"timeout"`

	// SigningKeyFile holds a JWK or PEM key used to sign notifications.
	SigningKeyFile string `yaml:"signing_key_file"`
	SigningAlg     string `yaml:"signing_alg"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	c := &Config{}
	c.defaults()
	return c
}

// Load reads the configuration file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	c.defaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &c, nil
}

func (c *Config) defaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = LogFormatText
	}
	if c.Database.Dialect == "" {
		c.Database.Dialect = DefaultDialect
	}
	if c.Database.DSN == "" && c.Database.Dialect == DialectSQLite {
		c.Database.DSN = DefaultSQLiteDSN
	}
	if c.Push.Timeout == 0 {
		c.Push.Timeout = DefaultPushTimeout
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("log: unknown format %q (must be: text, json)", c.Log.Format)
	}

	switch c.Database.Dialect {
	case DialectSQLite, DialectPostgres:
	default:
		return fmt.Errorf("database: unknown dialect %q (must be: sqlite, postgres)", c.Database.Dialect)
	}
	if c.Database.DSN == "" {
		return errors.New("database: dsn is required")
	}

	if c.Push.Timeout < 0 {
		return fmt.Errorf("push: timeout must be positive, got: %s", c.Push.Timeout)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLevel(c.Log.Level)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
	}
	return level, nil
}

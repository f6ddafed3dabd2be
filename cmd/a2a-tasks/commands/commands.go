// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands implements the subcommands of a2a-tasks.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"gorm.io/gorm"

	"github.com/go-a2a/a2a-task/internal/config"
	"github.com/go-a2a/a2a-task/internal/database"
	"github.com/go-a2a/a2a-task/server/task"
)

// Command represents an application command. Every command is set up in main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand holds the global flags and the instances shared by every command.
type RootCommand struct {
	// Global flags.
	ConfigPath string
	Debug      bool
	LoggerType string
	DBDialect  string
	DBDSN      string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config
}

// NewRootCommand registers the global flags on app.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("config", "Path to the YAML configuration file.").Envar("A2A_TASKS_CONFIG").StringVar(&c.ConfigPath)
	app.Flag("debug", "Enable debug logging.").BoolVar(&c.Debug)
	app.Flag("logger", "Log format, overrides log.format.").EnumVar(&c.LoggerType, config.LogFormatText, config.LogFormatJSON)
	app.Flag("db-dialect", "Database dialect, overrides database.dialect.").EnumVar(&c.DBDialect, config.DialectSQLite, config.DialectPostgres)
	app.Flag("db-dsn", "Database DSN, overrides database.dsn.").Envar("A2A_TASKS_DB_DSN").StringVar(&c.DBDSN)

	return c
}

// LoadConfig loads the configuration file and applies the flag overrides.
func (c *RootCommand) LoadConfig() error {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return err
	}

	if c.Debug {
		cfg.Log.Level = "debug"
	}
	if c.LoggerType != "" {
		cfg.Log.Format = c.LoggerType
	}
	if c.DBDialect != "" {
		cfg.Database.Dialect = c.DBDialect
	}
	if c.DBDSN != "" {
		cfg.Database.DSN = c.DBDSN
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	c.Config = cfg
	return nil
}

// NewLogger builds the application logger from the loaded configuration.
// Logs go to stderr so stdout only carries command output.
func (c *RootCommand) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Config.SlogLevel()}

	var h slog.Handler
	switch c.Config.Log.Format {
	case config.LogFormatJSON:
		h = slog.NewJSONHandler(c.Stderr, opts)
	default:
		h = slog.NewTextHandler(c.Stderr, opts)
	}
	return slog.New(h).With("app", "a2a-tasks")
}

// stores bundles the database stores opened for one command.
type stores struct {
	db      *gorm.DB
	tasks   *task.DatabaseTaskStore
	configs *task.DatabasePushNotificationConfigStore
}

func (s *stores) Close() error { return database.Close(s.db) }

func (c *RootCommand) openStores(ctx context.Context) (*stores, error) {
	db, err := database.Open(database.Config{
		Dialect: c.Config.Database.Dialect,
		DSN:     c.Config.Database.DSN,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, err
	}

	tasks, err := task.NewDatabaseTaskStore(task.DatabaseTaskStoreConfig{
		DB:          db,
		TableName:   c.Config.Database.Table,
		CreateTable: true,
	})
	if err != nil {
		return nil, err
	}
	if err := tasks.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("could not initialize task store: %w", err)
	}

	configs, err := task.NewDatabasePushNotificationConfigStore(task.DatabasePushNotificationConfigStoreConfig{
		DB:          db,
		TableName:   c.Config.Database.PushTable,
		CreateTable: true,
	})
	if err != nil {
		return nil, err
	}
	if err := configs.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("could not initialize push notification config store: %w", err)
	}

	c.Logger.DebugContext(ctx, "database stores ready",
		"dialect", c.Config.Database.Dialect)

	return &stores{db: db, tasks: tasks, configs: configs}, nil
}

// newPushSender returns a webhook sender reading configs from configStore.
func (c *RootCommand) newPushSender(configStore task.PushNotificationConfigStore) (*task.HTTPPushNotificationSender, error) {
	var key jwk.Key
	if path := c.Config.Push.SigningKeyFile; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read signing key: %w", err)
		}
		key, err = jwk.ParseKey(data)
		if err != nil {
			key, err = jwk.ParseKey(data, jwk.WithPEM(true))
			if err != nil {
				return nil, fmt.Errorf("could not parse signing key %s: %w", path, err)
			}
		}
	}

	return task.NewHTTPPushNotificationSender(task.HTTPPushNotificationSenderConfig{
		Timeout:          c.Config.Push.Timeout,
		ConfigStore:      configStore,
		Logger:           c.Logger,
		SigningKey:       key,
		SigningAlgorithm: c.Config.Push.SigningAlg,
	})
}

// printJSON writes v to w as indented JSON.
func printJSON(w io.Writer, v any) error {
	if err := json.MarshalWrite(w, v, jsontext.WithIndent("  ")); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

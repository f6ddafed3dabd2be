// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package database opens the gorm connection backing the database stores.
package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/go-a2a/a2a-task/internal/config"
)

// Config selects and configures the database.
type Config struct {
	Dialect string
	DSN     string
	Logger  *slog.Logger
}

// Open connects to the database described by cfg.
//
// GORM's own log lines are forwarded to cfg.Logger at warn level; missing
// records are not logged.
func Open(cfg Config) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database dsn is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	var dialector gorm.Dialector
	switch cfg.Dialect {
	case config.DialectSQLite, "":
		dialector = sqlite.Open(cfg.DSN)
	case config.DialectPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", cfg.Dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(
			slog.NewLogLogger(cfg.Logger.Handler(), slog.LevelWarn),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("could not open %s database: %w", cfg.Dialect, err)
	}
	return db, nil
}

// Close closes the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

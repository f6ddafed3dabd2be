// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server"
)

// PushNotificationConfigStore stores the push notification configs of tasks.
//
// A task may have several configs, keyed by config ID. A config stored without
// an ID gets the task ID as its ID.
type PushNotificationConfigStore interface {
	// SetInfo stores config for taskID, replacing the config with the same ID
	// or appending it.
	SetInfo(ctx context.Context, taskID string, config *a2a.PushNotificationConfig) error

	// GetInfo returns the configs of taskID in insertion order. It returns an
	// empty slice if there are none.
	GetInfo(ctx context.Context, taskID string) ([]*a2a.PushNotificationConfig, error)

	// DeleteInfo removes the config configID of taskID, or all of its configs
	// if configID is empty. Deleting an unknown config is not an error.
	DeleteInfo(ctx context.Context, taskID, configID string) error
}

func prepareConfig(taskID string, config *a2a.PushNotificationConfig) (*a2a.PushNotificationConfig, error) {
	if taskID == "" {
		return nil, errors.New("task ID cannot be empty")
	}
	if config == nil {
		return nil, errors.New("push notification config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid push notification config: %w", err)
	}

	config = config.Clone()
	if config.ID == "" {
		config.ID = taskID
	}
	return config, nil
}

// InMemoryPushNotificationConfigStore is an in-memory implementation of
// PushNotificationConfigStore. All operations are safe for concurrent use.
type InMemoryPushNotificationConfigStore struct {
	mu      sync.RWMutex
	configs map[string][]*a2a.PushNotificationConfig
}

var _ PushNotificationConfigStore = (*InMemoryPushNotificationConfigStore)(nil)

// NewInMemoryPushNotificationConfigStore creates a new in-memory push notification config store.
func NewInMemoryPushNotificationConfigStore() *InMemoryPushNotificationConfigStore {
	return &InMemoryPushNotificationConfigStore{
		configs: make(map[string][]*a2a.PushNotificationConfig),
	}
}

// SetInfo stores config for taskID.
func (s *InMemoryPushNotificationConfigStore) SetInfo(ctx context.Context, taskID string, config *a2a.PushNotificationConfig) error {
	config, err := prepareConfig(taskID, config)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	configs := s.configs[taskID]
	idx := slices.IndexFunc(configs, func(c *a2a.PushNotificationConfig) bool {
		return c.ID == config.ID
	})
	if idx >= 0 {
		configs[idx] = config
	} else {
		s.configs[taskID] = append(configs, config)
	}
	return nil
}

// GetInfo returns copies of the configs of taskID.
func (s *InMemoryPushNotificationConfigStore) GetInfo(ctx context.Context, taskID string) ([]*a2a.PushNotificationConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configs := s.configs[taskID]
	out := make([]*a2a.PushNotificationConfig, len(configs))
	for i, c := range configs {
		out[i] = c.Clone()
	}
	return out, nil
}

// DeleteInfo removes the config configID of taskID, or all of them.
func (s *InMemoryPushNotificationConfigStore) DeleteInfo(ctx context.Context, taskID, configID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if configID == "" {
		delete(s.configs, taskID)
		return nil
	}

	configs := slices.DeleteFunc(s.configs[taskID], func(c *a2a.PushNotificationConfig) bool {
		return c.ID == configID
	})
	if len(configs) == 0 {
		delete(s.configs, taskID)
		return nil
	}
	s.configs[taskID] = configs
	return nil
}

// DatabasePushNotificationConfigStore is a database implementation of
// PushNotificationConfigStore using GORM. Rows are
// [server.PushNotificationConfigModel] values.
type DatabasePushNotificationConfigStore struct {
	db          *gorm.DB
	tableName   string
	createTable bool
}

var _ PushNotificationConfigStore = (*DatabasePushNotificationConfigStore)(nil)

// DatabasePushNotificationConfigStoreConfig holds configuration for DatabasePushNotificationConfigStore.
type DatabasePushNotificationConfigStoreConfig struct {
	DB          *gorm.DB
	TableName   string // Optional, defaults to "push_notification_configs"
	CreateTable bool   // Whether Initialize migrates the table
}

// NewDatabasePushNotificationConfigStore creates a new DatabasePushNotificationConfigStore.
func NewDatabasePushNotificationConfigStore(config DatabasePushNotificationConfigStoreConfig) (*DatabasePushNotificationConfigStore, error) {
	if config.DB == nil {
		return nil, errors.New("database connection cannot be nil")
	}

	tableName := config.TableName
	if tableName == "" {
		tableName = server.DefaultPushNotificationConfigTableName
	}

	return &DatabasePushNotificationConfigStore{
		db:          config.DB,
		tableName:   tableName,
		createTable: config.CreateTable,
	}, nil
}

// Initialize creates or migrates the config table when the store was
// configured with CreateTable.
func (s *DatabasePushNotificationConfigStore) Initialize(ctx context.Context) error {
	if !s.createTable {
		return nil
	}
	if err := s.db.WithContext(ctx).Table(s.tableName).AutoMigrate(&server.PushNotificationConfigModel{}); err != nil {
		return NewTaskStoreError("initialize", "", err)
	}
	return nil
}

// SetInfo stores config for taskID. A replaced config keeps its position.
func (s *DatabasePushNotificationConfigStore) SetInfo(ctx context.Context, taskID string, config *a2a.PushNotificationConfig) error {
	config, err := prepareConfig(taskID, config)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		err := tx.Table(s.tableName).
			Where("task_id = ?", taskID).
			Select("COALESCE(MAX(position), -1)").
			Scan(&last).Error
		if err != nil {
			return err
		}

		model := server.NewPushNotificationConfigModel(taskID, last+1, config)
		return tx.Table(s.tableName).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "task_id"}, {Name: "config_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"url", "token", "authentication"}),
			}).
			Create(model).Error
	})
	if err != nil {
		return NewTaskStoreError("set_info", taskID, err)
	}
	return nil
}

// GetInfo returns the configs of taskID in insertion order.
func (s *DatabasePushNotificationConfigStore) GetInfo(ctx context.Context, taskID string) ([]*a2a.PushNotificationConfig, error) {
	var models []server.PushNotificationConfigModel
	err := s.db.WithContext(ctx).Table(s.tableName).
		Where("task_id = ?", taskID).
		Order("position").
		Find(&models).Error
	if err != nil {
		return nil, NewTaskStoreError("get_info", taskID, err)
	}

	configs := make([]*a2a.PushNotificationConfig, len(models))
	for i := range models {
		configs[i] = models[i].ToConfig()
	}
	return configs, nil
}

// DeleteInfo removes the config configID of taskID, or all of them.
func (s *DatabasePushNotificationConfigStore) DeleteInfo(ctx context.Context, taskID, configID string) error {
	db := s.db.WithContext(ctx).Table(s.tableName).Where("task_id = ?", taskID)
	if configID != "" {
		db = db.Where("config_id = ?", configID)
	}
	if err := db.Delete(&server.PushNotificationConfigModel{}).Error; err != nil {
		return NewTaskStoreError("delete_info", taskID, err)
	}
	return nil
}

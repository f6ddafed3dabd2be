// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server"
)

// DatabaseTaskStore is a database implementation of TaskStore using GORM.
// Rows are [server.TaskModel] values.
type DatabaseTaskStore struct {
	db          *gorm.DB
	tableName   string
	createTable bool
}

var (
	_ TaskStore  = (*DatabaseTaskStore)(nil)
	_ TaskLister = (*DatabaseTaskStore)(nil)
)

// DatabaseTaskStoreConfig holds configuration for DatabaseTaskStore.
type DatabaseTaskStoreConfig struct {
	DB          *gorm.DB
	TableName   string // Optional, defaults to "tasks"
	CreateTable bool   // Whether Initialize migrates the table
}

// NewDatabaseTaskStore creates a new DatabaseTaskStore.
func NewDatabaseTaskStore(config DatabaseTaskStoreConfig) (*DatabaseTaskStore, error) {
	if config.DB == nil {
		return nil, errors.New("database connection cannot be nil")
	}

	tableName := config.TableName
	if tableName == "" {
		tableName = server.DefaultTaskTableName
	}

	return &DatabaseTaskStore{
		db:          config.DB,
		tableName:   tableName,
		createTable: config.CreateTable,
	}, nil
}

func (s *DatabaseTaskStore) table(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.tableName)
}

// Initialize creates or migrates the task table when the store was configured
// with CreateTable.
func (s *DatabaseTaskStore) Initialize(ctx context.Context) error {
	if !s.createTable {
		return nil
	}
	if err := s.table(ctx).AutoMigrate(&server.TaskModel{}); err != nil {
		return NewTaskStoreError("initialize", "", err)
	}
	return nil
}

// Save inserts task, or overwrites the row with the same ID.
func (s *DatabaseTaskStore) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}

	model, err := server.NewTaskModelFromTask(task)
	if err != nil {
		return NewTaskStoreError("save", task.ID, fmt.Errorf("failed to convert task to model: %w", err))
	}

	err = s.table(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		return NewTaskStoreError("save", task.ID, err)
	}
	return nil
}

// Get retrieves a task by its ID, or nil if there is none.
func (s *DatabaseTaskStore) Get(ctx context.Context, taskID string) (*a2a.Task, error) {
	var model server.TaskModel
	if err := s.table(ctx).Where("id = ?", taskID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, NewTaskStoreError("get", taskID, err)
	}

	task, err := model.ToTask()
	if err != nil {
		return nil, NewTaskStoreError("get", taskID, fmt.Errorf("failed to convert model to task: %w", err))
	}
	return task, nil
}

// Delete removes the task with taskID. Deleting an unknown task is a no-op.
func (s *DatabaseTaskStore) Delete(ctx context.Context, taskID string) error {
	if err := s.table(ctx).Where("id = ?", taskID).Delete(&server.TaskModel{}).Error; err != nil {
		return NewTaskStoreError("delete", taskID, err)
	}
	return nil
}

// List retrieves tasks ordered by ID.
func (s *DatabaseTaskStore) List(ctx context.Context, contextID string, limit, offset int) ([]*a2a.Task, error) {
	db := s.table(ctx)
	if contextID != "" {
		db = db.Where("context_id = ?", contextID)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	if offset > 0 {
		db = db.Offset(offset)
	}

	var models []server.TaskModel
	if err := db.Order("id").Find(&models).Error; err != nil {
		return nil, NewTaskStoreError("list", "", err)
	}

	tasks := make([]*a2a.Task, len(models))
	for i := range models {
		task, err := models[i].ToTask()
		if err != nil {
			return nil, NewTaskStoreError("list", models[i].ID, fmt.Errorf("failed to convert model to task: %w", err))
		}
		tasks[i] = task
	}
	return tasks, nil
}

// Count returns the number of tasks, restricted to contextID if it is non-empty.
func (s *DatabaseTaskStore) Count(ctx context.Context, contextID string) (int64, error) {
	db := s.table(ctx).Model(&server.TaskModel{})
	if contextID != "" {
		db = db.Where("context_id = ?", contextID)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, NewTaskStoreError("count", "", err)
	}
	return count, nil
}

// Transaction runs fn with a store bound to a database transaction. The
// transaction commits if fn returns nil and rolls back otherwise.
func (s *DatabaseTaskStore) Transaction(ctx context.Context, fn func(store *DatabaseTaskStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DatabaseTaskStore{
			db:          tx,
			tableName:   s.tableName,
			createTable: s.createTable,
		})
	})
}

// Close releases the store. The underlying connection is owned by the caller.
func (s *DatabaseTaskStore) Close(ctx context.Context) error {
	return nil
}

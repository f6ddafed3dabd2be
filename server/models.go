// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package server provides the database models backing the persistent task and
// push notification stores.
//
// Structured values are stored in JSON columns. A nil slice or map is written
// as NULL so that an absent collection survives a round trip distinct from an
// empty one.
package server

import (
	"database/sql/driver"
	"fmt"

	"github.com/go-json-experiment/json"
	"gorm.io/gorm"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/internal/pool"
)

// DefaultTaskTableName is the table used by [TaskModel] unless overridden.
const DefaultTaskTableName = "tasks"

// DefaultPushNotificationConfigTableName is the table used by [PushNotificationConfigModel].
const DefaultPushNotificationConfigTableName = "push_notification_configs"

// marshalColumn encodes v as a JSON column value.
func marshalColumn(v any) (driver.Value, error) {
	buf := pool.Bytes.Get()
	defer pool.Bytes.Put(buf)

	if err := json.MarshalWrite(buf, v); err != nil {
		return nil, err
	}
	return buf.String(), nil
}

// columnBytes extracts the raw JSON from a scanned column value.
func columnBytes(value any, target string) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("cannot scan %T into %s", value, target)
	}
}

// TaskStatusJSON provides JSON serialization for TaskStatus in database columns.
type TaskStatusJSON struct {
	a2a.TaskStatus
}

// Value implements the driver.Valuer interface for database storage.
func (ts TaskStatusJSON) Value() (driver.Value, error) {
	if ts.TaskStatus == (a2a.TaskStatus{}) {
		return nil, nil
	}
	return marshalColumn(ts.TaskStatus)
}

// Scan implements the sql.Scanner interface for database retrieval.
func (ts *TaskStatusJSON) Scan(value any) error {
	if value == nil {
		*ts = TaskStatusJSON{}
		return nil
	}

	b, err := columnBytes(value, "TaskStatusJSON")
	if err != nil {
		return err
	}

	var status a2a.TaskStatus
	if err := json.Unmarshal(b, &status); err != nil {
		return fmt.Errorf("cannot unmarshal TaskStatusJSON: %w", err)
	}
	ts.TaskStatus = status
	return nil
}

// ArtifactSliceJSON provides JSON serialization for []*Artifact in database columns.
type ArtifactSliceJSON struct {
	Artifacts []*a2a.Artifact
}

// Value implements the driver.Valuer interface for database storage.
func (as ArtifactSliceJSON) Value() (driver.Value, error) {
	if as.Artifacts == nil {
		return nil, nil
	}
	return marshalColumn(as.Artifacts)
}

// Scan implements the sql.Scanner interface for database retrieval.
func (as *ArtifactSliceJSON) Scan(value any) error {
	if value == nil {
		*as = ArtifactSliceJSON{}
		return nil
	}

	b, err := columnBytes(value, "ArtifactSliceJSON")
	if err != nil {
		return err
	}

	artifacts := []*a2a.Artifact{}
	if err := json.Unmarshal(b, &artifacts); err != nil {
		return fmt.Errorf("cannot unmarshal ArtifactSliceJSON: %w", err)
	}
	as.Artifacts = artifacts
	return nil
}

// MessageSliceJSON provides JSON serialization for []*Message in database columns.
type MessageSliceJSON struct {
	Messages []*a2a.Message
}

// Value implements the driver.Valuer interface for database storage.
func (ms MessageSliceJSON) Value() (driver.Value, error) {
	if ms.Messages == nil {
		return nil, nil
	}
	return marshalColumn(ms.Messages)
}

// Scan implements the sql.Scanner interface for database retrieval.
func (ms *MessageSliceJSON) Scan(value any) error {
	if value == nil {
		*ms = MessageSliceJSON{}
		return nil
	}

	b, err := columnBytes(value, "MessageSliceJSON")
	if err != nil {
		return err
	}

	messages := []*a2a.Message{}
	if err := json.Unmarshal(b, &messages); err != nil {
		return fmt.Errorf("cannot unmarshal MessageSliceJSON: %w", err)
	}
	ms.Messages = messages
	return nil
}

// MetadataJSON provides JSON serialization for free-form metadata in database columns.
type MetadataJSON map[string]any

// Value implements the driver.Valuer interface for database storage.
func (m MetadataJSON) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return marshalColumn(map[string]any(m))
}

// Scan implements the sql.Scanner interface for database retrieval.
func (m *MetadataJSON) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	b, err := columnBytes(value, "MetadataJSON")
	if err != nil {
		return err
	}

	md := map[string]any{}
	if err := json.Unmarshal(b, &md); err != nil {
		return fmt.Errorf("cannot unmarshal MetadataJSON: %w", err)
	}
	*m = md
	return nil
}

// AuthenticationJSON provides JSON serialization for push notification
// authentication info in database columns.
type AuthenticationJSON struct {
	*a2a.PushNotificationAuthenticationInfo
}

// Value implements the driver.Valuer interface for database storage.
func (a AuthenticationJSON) Value() (driver.Value, error) {
	if a.PushNotificationAuthenticationInfo == nil {
		return nil, nil
	}
	return marshalColumn(a.PushNotificationAuthenticationInfo)
}

// Scan implements the sql.Scanner interface for database retrieval.
func (a *AuthenticationJSON) Scan(value any) error {
	if value == nil {
		*a = AuthenticationJSON{}
		return nil
	}

	b, err := columnBytes(value, "AuthenticationJSON")
	if err != nil {
		return err
	}

	var info a2a.PushNotificationAuthenticationInfo
	if err := json.Unmarshal(b, &info); err != nil {
		return fmt.Errorf("cannot unmarshal AuthenticationJSON: %w", err)
	}
	a.PushNotificationAuthenticationInfo = &info
	return nil
}

// TaskMixin provides standard task columns with proper type handling.
type TaskMixin struct {
	ID        string            `gorm:"primaryKey;size:64"`
	ContextID string            `gorm:"size:64;not null;index"`
	Kind      string            `gorm:"size:16;default:task;not null"`
	Status    TaskStatusJSON    `gorm:"type:json"`
	Artifacts ArtifactSliceJSON `gorm:"type:json"`
	History   MessageSliceJSON  `gorm:"type:json"`
	Metadata  MetadataJSON      `gorm:"type:json"`
}

// Validate ensures the TaskMixin is in a valid state.
func (tm *TaskMixin) Validate() error {
	if tm.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if tm.ContextID == "" {
		return fmt.Errorf("task context ID cannot be empty")
	}
	if tm.Kind == "" {
		return fmt.Errorf("task kind cannot be empty")
	}
	if err := tm.Status.TaskStatus.Validate(); err != nil {
		return fmt.Errorf("task status is invalid: %w", err)
	}
	return nil
}

// String returns a string representation of the TaskMixin for debugging.
func (tm *TaskMixin) String() string {
	return fmt.Sprintf("TaskMixin{ID: %s, ContextID: %s, Status: %s}",
		tm.ID, tm.ContextID, tm.Status.TaskStatus.State)
}

// TaskModel is the database row of a task.
//
// Stores with a custom table name select it with [gorm.DB.Table]; the schema is
// the same.
type TaskModel struct {
	TaskMixin
}

// TableName returns the default table name for the TaskModel.
func (TaskModel) TableName() string {
	return DefaultTaskTableName
}

// NewTaskModelFromTask converts an A2A task to its database row.
func NewTaskModelFromTask(task *a2a.Task) (*TaskModel, error) {
	if task == nil {
		return nil, fmt.Errorf("task cannot be nil")
	}
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("task is invalid: %w", err)
	}

	kind := string(task.Kind)
	if kind == "" {
		kind = string(a2a.EventKindTask)
	}

	// The row shares nothing with the caller's task.
	task = task.Clone()
	return &TaskModel{
		TaskMixin: TaskMixin{
			ID:        task.ID,
			ContextID: task.ContextID,
			Kind:      kind,
			Status:    TaskStatusJSON{task.Status},
			Artifacts: ArtifactSliceJSON{Artifacts: task.Artifacts},
			History:   MessageSliceJSON{Messages: task.History},
			Metadata:  MetadataJSON(task.Metadata),
		},
	}, nil
}

// ToTask converts a TaskModel back to an A2A task.
func (tm *TaskModel) ToTask() (*a2a.Task, error) {
	if err := tm.Validate(); err != nil {
		return nil, fmt.Errorf("task model is invalid: %w", err)
	}

	return &a2a.Task{
		ID:        tm.ID,
		ContextID: tm.ContextID,
		Kind:      a2a.EventKind(tm.Kind),
		Status:    tm.Status.TaskStatus,
		Artifacts: tm.Artifacts.Artifacts,
		History:   tm.History.Messages,
		Metadata:  map[string]any(tm.Metadata),
	}, nil
}

// BeforeSave is a GORM hook called before creating or updating a record.
func (tm *TaskModel) BeforeSave(tx *gorm.DB) error {
	return tm.Validate()
}

// PushNotificationConfigModel is the database row of one push notification
// config registered for a task.
type PushNotificationConfigModel struct {
	TaskID         string             `gorm:"primaryKey;size:64"`
	ConfigID       string             `gorm:"primaryKey;size:64"`
	Position       int                `gorm:"not null"`
	URL            string             `gorm:"not null"`
	Token          string             `gorm:"size:255"`
	Authentication AuthenticationJSON `gorm:"type:json"`
}

// TableName returns the table name for the PushNotificationConfigModel.
func (PushNotificationConfigModel) TableName() string {
	return DefaultPushNotificationConfigTableName
}

// NewPushNotificationConfigModel converts config registered for taskID to its database row.
func NewPushNotificationConfigModel(taskID string, position int, config *a2a.PushNotificationConfig) *PushNotificationConfigModel {
	config = config.Clone()
	return &PushNotificationConfigModel{
		TaskID:         taskID,
		ConfigID:       config.ID,
		Position:       position,
		URL:            config.URL,
		Token:          config.Token,
		Authentication: AuthenticationJSON{config.Authentication},
	}
}

// ToConfig converts the row back to an A2A push notification config.
func (m *PushNotificationConfigModel) ToConfig() *a2a.PushNotificationConfig {
	return &a2a.PushNotificationConfig{
		Authentication: m.Authentication.PushNotificationAuthenticationInfo,
		ID:             m.ConfigID,
		Token:          m.Token,
		URL:            m.URL,
	}
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTaskID is returned when a TaskManager is configured with an empty task ID.
	ErrInvalidTaskID = errors.New("task ID must be a non-empty string")

	// ErrTaskTerminal is returned by a TaskUpdater once it published a terminal update.
	ErrTaskTerminal = errors.New("task is in a terminal state")
)

// TaskStoreError represents an error from a task or push notification config store.
type TaskStoreError struct {
	Operation string
	TaskID    string
	Err       error
}

// Error returns the error message.
func (e *TaskStoreError) Error() string {
	return fmt.Sprintf("task store %s operation failed for task %q: %v", e.Operation, e.TaskID, e.Err)
}

// Unwrap returns the underlying error.
func (e *TaskStoreError) Unwrap() error {
	return e.Err
}

// NewTaskStoreError creates a new TaskStoreError.
func NewTaskStoreError(operation, taskID string, err error) *TaskStoreError {
	return &TaskStoreError{
		Operation: operation,
		TaskID:    taskID,
		Err:       err,
	}
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"

	a2a "github.com/go-a2a/a2a-task"
)

// TaskStore defines the interface for task persistence operations.
//
// Implementations must be safe for concurrent use.
type TaskStore interface {
	// Save persists a task, overwriting any task with the same ID.
	Save(ctx context.Context, task *a2a.Task) error

	// Get retrieves a task by its ID. It returns nil and no error if the task
	// doesn't exist.
	Get(ctx context.Context, taskID string) (*a2a.Task, error)

	// Delete removes a task. Deleting an unknown task is not an error.
	Delete(ctx context.Context, taskID string) error
}

// TaskLister is implemented by stores that can enumerate their tasks.
type TaskLister interface {
	// List retrieves tasks ordered by ID. If contextID is non-empty only the
	// tasks of that context are returned. A non-positive limit means no limit.
	List(ctx context.Context, contextID string, limit, offset int) ([]*a2a.Task, error)

	// Count returns the number of tasks, restricted to contextID if it is non-empty.
	Count(ctx context.Context, contextID string) (int64, error)
}

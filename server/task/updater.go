// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server/event"
)

// TaskUpdater publishes the status and artifact updates of one task.
//
// Once a final or terminal status was published, every further update fails
// with [ErrTaskTerminal].
type TaskUpdater struct {
	taskID    string
	contextID string
	publisher event.Publisher

	mu       sync.Mutex
	terminal bool
}

// TaskUpdaterConfig holds configuration for creating a TaskUpdater.
type TaskUpdaterConfig struct {
	TaskID    string
	ContextID string
	Publisher event.Publisher
}

// NewTaskUpdater creates a new TaskUpdater with the given configuration.
func NewTaskUpdater(config TaskUpdaterConfig) (*TaskUpdater, error) {
	if config.TaskID == "" {
		return nil, ErrInvalidTaskID
	}
	if config.ContextID == "" {
		return nil, errors.New("context ID cannot be empty")
	}
	if config.Publisher == nil {
		return nil, errors.New("event publisher cannot be nil")
	}

	return &TaskUpdater{
		taskID:    config.TaskID,
		contextID: config.ContextID,
		publisher: config.Publisher,
	}, nil
}

// TaskID returns the task ID of the updater.
func (u *TaskUpdater) TaskID() string { return u.taskID }

// ContextID returns the context ID of the updater.
func (u *TaskUpdater) ContextID() string { return u.contextID }

// IsTerminal reports whether a final status was published.
func (u *TaskUpdater) IsTerminal() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.terminal
}

// UpdateStatus publishes a status update. A terminal state always makes the
// update final.
func (u *TaskUpdater) UpdateStatus(ctx context.Context, state a2a.TaskState, msg *a2a.Message, final bool) error {
	if !state.Valid() {
		return fmt.Errorf("invalid task state: %q", state)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.terminal {
		return ErrTaskTerminal
	}

	final = final || state.IsTerminal()
	status := a2a.TaskStatus{
		Message:   msg,
		State:     state,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	ev := a2a.NewTaskStatusUpdateEvent(u.taskID, u.contextID, status, final)
	if err := u.publisher.Publish(ctx, ev); err != nil {
		return fmt.Errorf("failed to publish status update: %w", err)
	}

	if final {
		u.terminal = true
	}
	return nil
}

// AddArtifact publishes an artifact update. An artifact without an ID gets a
// random one.
func (u *TaskUpdater) AddArtifact(ctx context.Context, artifact *a2a.Artifact, append, lastChunk bool) error {
	if artifact == nil {
		return errors.New("artifact cannot be nil")
	}

	artifact = artifact.Clone()
	if artifact.ArtifactID == "" {
		artifact.ArtifactID = uuid.NewString()
	}
	if err := artifact.Validate(); err != nil {
		return fmt.Errorf("artifact validation failed: %w", err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.terminal {
		return ErrTaskTerminal
	}

	ev := a2a.NewTaskArtifactUpdateEvent(u.taskID, u.contextID, artifact, append, lastChunk)
	if err := u.publisher.Publish(ctx, ev); err != nil {
		return fmt.Errorf("failed to publish artifact update: %w", err)
	}
	return nil
}

// NewAgentMessage returns an agent message bound to the task and context of the updater.
func (u *TaskUpdater) NewAgentMessage(parts a2a.Parts) *a2a.Message {
	return a2a.NewAgentPartsMessage(parts, u.contextID, u.taskID)
}

// Submit marks the task as submitted.
func (u *TaskUpdater) Submit(ctx context.Context, msg *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateSubmitted, msg, false)
}

// StartWork marks the task as working.
func (u *TaskUpdater) StartWork(ctx context.Context, msg *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateWorking, msg, false)
}

// Complete marks the task as completed.
func (u *TaskUpdater) Complete(ctx context.Context, msg *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateCompleted, msg, true)
}

// Failed marks the task as failed.
func (u *TaskUpdater) Failed(ctx context.Context, msg *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateFailed, msg, true)
}

// Reject marks the task as rejected.
func (u *TaskUpdater) Reject(ctx context.Context, msg *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateRejected, msg, true)
}

// Cancel marks the task as canceled.
func (u *TaskUpdater) Cancel(ctx context.Context, msg *a2a.Message) error {
	return u.UpdateStatus(ctx, a2a.TaskStateCanceled, msg, true)
}

// RequiresInput marks the task as waiting for user input.
func (u *TaskUpdater) RequiresInput(ctx context.Context, msg *a2a.Message, final bool) error {
	return u.UpdateStatus(ctx, a2a.TaskStateInputRequired, msg, final)
}

// RequiresAuth marks the task as waiting for authentication.
func (u *TaskUpdater) RequiresAuth(ctx context.Context, msg *a2a.Message, final bool) error {
	return u.UpdateStatus(ctx, a2a.TaskStateAuthRequired, msg, final)
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is a TaskState and its accompanying message.
type TaskStatus struct {
	// Additional status updates for client.
	Message *Message `json:"message,omitzero"`

	// State of the task.
	State TaskState `json:"state"`

	// RFC 3339 datetime string when the status was recorded.
	Timestamp string `json:"timestamp,omitzero"`
}

// Validate ensures the TaskStatus is valid.
func (s TaskStatus) Validate() error {
	if !s.State.Valid() {
		return fmt.Errorf("invalid task state: %q", s.State)
	}
	if s.Timestamp != "" {
		if _, err := time.Parse(time.RFC3339, s.Timestamp); err != nil {
			return fmt.Errorf("invalid task status timestamp: %w", err)
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s TaskStatus) Clone() TaskStatus {
	s.Message = s.Message.Clone()
	return s
}

// Task is the aggregate root representing one unit of agent work.
//
// Artifacts, History and Metadata distinguish absent (nil) from empty.
type Task struct {
	// Collection of artifacts created by the agent.
	Artifacts []*Artifact `json:"artifacts,omitzero"`

	// Server-generated id for contextual alignment across interactions.
	ContextID string `json:"contextId"`

	// Past messages of the task.
	History []*Message `json:"history,omitzero"`

	// Unique identifier for the task.
	ID string `json:"id"`

	// Event type, always "task".
	Kind EventKind `json:"kind"`

	// Extension metadata.
	Metadata map[string]any `json:"metadata,omitzero"`

	// Current status of the task.
	Status TaskStatus `json:"status"`
}

var _ Event = (*Task)(nil)

// GetEventKind returns [EventKindTask].
func (t *Task) GetEventKind() EventKind { return EventKindTask }

// GetTaskID returns the task ID.
func (t *Task) GetTaskID() string { return t.ID }

// GetContextID returns the context ID.
func (t *Task) GetContextID() string { return t.ContextID }

// Validate ensures the Task is valid.
func (t *Task) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("task ID cannot be empty")
	}
	if t.ContextID == "" {
		return fmt.Errorf("task context ID cannot be empty")
	}
	if err := t.Status.Validate(); err != nil {
		return fmt.Errorf("task status is invalid: %w", err)
	}
	for i, artifact := range t.Artifacts {
		if artifact == nil {
			return fmt.Errorf("artifact at index %d cannot be nil", i)
		}
		if artifact.ArtifactID == "" {
			return fmt.Errorf("artifact at index %d has an empty ID", i)
		}
	}
	for i, message := range t.History {
		if message == nil {
			return fmt.Errorf("history message at index %d cannot be nil", i)
		}
	}
	return nil
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}

	out := &Task{
		ContextID: t.ContextID,
		ID:        t.ID,
		Kind:      t.Kind,
		Metadata:  CloneMetadata(t.Metadata),
		Status:    t.Status.Clone(),
	}
	if t.Artifacts != nil {
		out.Artifacts = make([]*Artifact, len(t.Artifacts))
		for i, a := range t.Artifacts {
			out.Artifacts[i] = a.Clone()
		}
	}
	if t.History != nil {
		out.History = make([]*Message, len(t.History))
		for i, m := range t.History {
			out.History[i] = m.Clone()
		}
	}
	return out
}

// NewTask creates a new Task in the submitted state from an initial user message.
//
// If the message carries no task or context ID, random UUIDs are generated.
// The message is recorded as the only entry in the history.
func NewTask(request *Message) (*Task, error) {
	if request == nil {
		return nil, fmt.Errorf("request message cannot be nil")
	}
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request message: %w", err)
	}

	taskID := request.TaskID
	if taskID == "" {
		taskID = uuid.NewString()
	}
	contextID := request.ContextID
	if contextID == "" {
		contextID = uuid.NewString()
	}

	return &Task{
		ID:        taskID,
		ContextID: contextID,
		Kind:      EventKindTask,
		Status: TaskStatus{
			State:     TaskStateSubmitted,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		History: []*Message{request},
	}, nil
}

// CompletedTask creates a Task in the completed state with the given artifacts and history.
func CompletedTask(taskID, contextID string, artifacts []*Artifact, history []*Message) (*Task, error) {
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("artifacts must be a non-empty list")
	}

	return &Task{
		ID:        taskID,
		ContextID: contextID,
		Kind:      EventKindTask,
		Status:    TaskStatus{State: TaskStateCompleted},
		Artifacts: artifacts,
		History:   history,
	}, nil
}

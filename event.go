// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
)

// Event is a value consumed by a task manager or carried by an event queue.
//
// The concrete types are [*Task], [*Message], [*TaskStatusUpdateEvent] and
// [*TaskArtifactUpdateEvent].
type Event interface {
	// GetEventKind returns the wire discriminator of the event.
	GetEventKind() EventKind

	// GetTaskID returns the task the event targets.
	GetTaskID() string

	// GetContextID returns the context the event belongs to.
	GetContextID() string
}

// TaskStatusUpdateEvent is sent by the server during sendStream or subscribe requests
// to replace the status of a task.
type TaskStatusUpdateEvent struct {
	// The context the task is associated with.
	ContextID string `json:"contextId"`

	// Indicates the end of the event stream.
	Final bool `json:"final"`

	// Event type, always "status-update".
	Kind EventKind `json:"kind"`

	// Extension metadata merged into the task metadata.
	Metadata map[string]any `json:"metadata,omitzero"`

	// Current status of the task.
	Status TaskStatus `json:"status"`

	// Task id.
	TaskID string `json:"taskId"`
}

var _ Event = (*TaskStatusUpdateEvent)(nil)

// NewTaskStatusUpdateEvent returns a status-update event for taskID.
func NewTaskStatusUpdateEvent(taskID, contextID string, status TaskStatus, final bool) *TaskStatusUpdateEvent {
	return &TaskStatusUpdateEvent{
		TaskID:    taskID,
		ContextID: contextID,
		Kind:      EventKindStatusUpdate,
		Status:    status,
		Final:     final,
	}
}

// GetEventKind returns [EventKindStatusUpdate].
func (e *TaskStatusUpdateEvent) GetEventKind() EventKind { return EventKindStatusUpdate }

// GetTaskID returns the task id.
func (e *TaskStatusUpdateEvent) GetTaskID() string { return e.TaskID }

// GetContextID returns the context id.
func (e *TaskStatusUpdateEvent) GetContextID() string { return e.ContextID }

// TaskArtifactUpdateEvent is sent by the server during sendStream or subscribe requests
// to add, replace or extend one artifact of a task.
type TaskArtifactUpdateEvent struct {
	// Indicates if this artifact appends to a previous one.
	Append bool `json:"append,omitzero"`

	// Generated artifact.
	Artifact *Artifact `json:"artifact"`

	// The context the task is associated with.
	ContextID string `json:"contextId"`

	// Event type, always "artifact-update".
	Kind EventKind `json:"kind"`

	// Indicates if this is the last chunk of the artifact.
	LastChunk bool `json:"lastChunk,omitzero"`

	// Extension metadata.
	Metadata map[string]any `json:"metadata,omitzero"`

	// Task id.
	TaskID string `json:"taskId"`
}

var _ Event = (*TaskArtifactUpdateEvent)(nil)

// NewTaskArtifactUpdateEvent returns an artifact-update event for taskID.
func NewTaskArtifactUpdateEvent(taskID, contextID string, artifact *Artifact, append, lastChunk bool) *TaskArtifactUpdateEvent {
	return &TaskArtifactUpdateEvent{
		TaskID:    taskID,
		ContextID: contextID,
		Kind:      EventKindArtifactUpdate,
		Artifact:  artifact,
		Append:    append,
		LastChunk: lastChunk,
	}
}

// GetEventKind returns [EventKindArtifactUpdate].
func (e *TaskArtifactUpdateEvent) GetEventKind() EventKind { return EventKindArtifactUpdate }

// GetTaskID returns the task id.
func (e *TaskArtifactUpdateEvent) GetTaskID() string { return e.TaskID }

// GetContextID returns the context id.
func (e *TaskArtifactUpdateEvent) GetContextID() string { return e.ContextID }

// UnmarshalEvent decodes a wire event, dispatching on its "kind" member.
//
// An unknown or missing kind is reported as an [ErrInvalidRequest] error.
func UnmarshalEvent(data []byte) (Event, error) {
	var head struct {
		Kind EventKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, NewError(CodeParseError, fmt.Sprintf("failed to unmarshal event kind: %v", err))
	}

	var ev Event
	switch head.Kind {
	case EventKindTask:
		ev = new(Task)
	case EventKindStatusUpdate:
		ev = new(TaskStatusUpdateEvent)
	case EventKindArtifactUpdate:
		ev = new(TaskArtifactUpdateEvent)
	case EventKindMessage:
		ev = new(Message)
	default:
		return nil, NewError(CodeInvalidRequest, fmt.Sprintf("unknown event kind: %q", head.Kind))
	}

	if err := json.Unmarshal(data, ev); err != nil {
		return nil, NewError(CodeParseError, fmt.Sprintf("failed to unmarshal %s event: %v", head.Kind, err))
	}
	return ev, nil
}

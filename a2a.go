// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Package a2a provides the protocol types for the task lifecycle of the Agent-to-Agent (A2A) protocol.
//
// A task is the aggregate root exchanged between agents. Its state changes arrive as
// events: full [Task] snapshots, partial [TaskStatusUpdateEvent] and
// [TaskArtifactUpdateEvent] values, and plain [Message] values.
package a2a

// Version is the current version of the A2A protocol.
const Version = "0.2.5"

// TaskState represents the state of a Task.
type TaskState string

const (
	// TaskStateSubmitted indicates the task has been submitted.
	TaskStateSubmitted TaskState = "submitted"

	// TaskStateWorking indicates the task is being worked on.
	TaskStateWorking TaskState = "working"

	// TaskStateInputRequired indicates the agent waits for more input from the client.
	TaskStateInputRequired TaskState = "input-required"

	// TaskStateCompleted indicates the task has been completed.
	TaskStateCompleted TaskState = "completed"

	// TaskStateCanceled indicates the task has been canceled.
	TaskStateCanceled TaskState = "canceled"

	// TaskStateFailed indicates the task has failed.
	TaskStateFailed TaskState = "failed"

	// TaskStateRejected indicates the agent refused to perform the task.
	TaskStateRejected TaskState = "rejected"

	// TaskStateAuthRequired indicates the agent waits for the client to authenticate.
	TaskStateAuthRequired TaskState = "auth-required"

	// TaskStateUnknown indicates the state cannot be determined.
	TaskStateUnknown TaskState = "unknown"
)

// IsTerminal reports whether no further transitions are expected from s.
func (s TaskState) IsTerminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateCanceled, TaskStateFailed, TaskStateRejected:
		return true
	default:
		return false
	}
}

// IsInterrupted reports whether s pauses the task until the client acts.
func (s TaskState) IsInterrupted() bool {
	return s == TaskStateInputRequired || s == TaskStateAuthRequired
}

// Valid reports whether s is one of the known task states.
func (s TaskState) Valid() bool {
	switch s {
	case TaskStateSubmitted, TaskStateWorking, TaskStateInputRequired, TaskStateCompleted,
		TaskStateCanceled, TaskStateFailed, TaskStateRejected, TaskStateAuthRequired, TaskStateUnknown:
		return true
	default:
		return false
	}
}

// Role identifies the sender of a Message.
type Role string

const (
	// RoleUser marks messages sent by the client.
	RoleUser Role = "user"

	// RoleAgent marks messages sent by the agent.
	RoleAgent Role = "agent"
)

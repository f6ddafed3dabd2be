// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tasktest

import (
	a2a "github.com/go-a2a/a2a-task"
)

// Fixed timestamp used by the factories.
const Timestamp = "2025-01-01T00:00:00Z"

// NewTask returns a task in state with no artifacts, history or metadata.
func NewTask(taskID, contextID string, state a2a.TaskState) *a2a.Task {
	return &a2a.Task{
		ID:        taskID,
		ContextID: contextID,
		Kind:      a2a.EventKindTask,
		Status: a2a.TaskStatus{
			State:     state,
			Timestamp: Timestamp,
		},
	}
}

// NewAgentMessage returns an agent text message with a fixed ID.
func NewAgentMessage(messageID, text string) *a2a.Message {
	return &a2a.Message{
		Kind:      a2a.EventKindMessage,
		MessageID: messageID,
		Role:      a2a.RoleAgent,
		Parts:     a2a.Parts{a2a.NewTextPart(text)},
	}
}

// NewUserMessage returns a user text message with a fixed ID.
func NewUserMessage(messageID, text string) *a2a.Message {
	return &a2a.Message{
		Kind:      a2a.EventKindMessage,
		MessageID: messageID,
		Role:      a2a.RoleUser,
		Parts:     a2a.Parts{a2a.NewTextPart(text)},
	}
}

// NewArtifact returns an artifact with a single text part.
func NewArtifact(artifactID, name, text string) *a2a.Artifact {
	return &a2a.Artifact{
		ArtifactID: artifactID,
		Name:       name,
		Parts:      a2a.Parts{a2a.NewTextPart(text)},
	}
}

// NewStatusUpdateEvent returns a status update to state carrying msg.
func NewStatusUpdateEvent(taskID, contextID string, state a2a.TaskState, msg *a2a.Message, final bool) *a2a.TaskStatusUpdateEvent {
	return a2a.NewTaskStatusUpdateEvent(taskID, contextID, a2a.TaskStatus{
		Message:   msg,
		State:     state,
		Timestamp: Timestamp,
	}, final)
}

// NewArtifactUpdateEvent returns an artifact update for artifact.
func NewArtifactUpdateEvent(taskID, contextID string, artifact *a2a.Artifact, append bool) *a2a.TaskArtifactUpdateEvent {
	return a2a.NewTaskArtifactUpdateEvent(taskID, contextID, artifact, append, false)
}

// NewPushNotificationConfig returns a config posting to url.
func NewPushNotificationConfig(id, url, token string) *a2a.PushNotificationConfig {
	return &a2a.PushNotificationConfig{
		ID:    id,
		URL:   url,
		Token: token,
	}
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Message represents a single message exchanged between user and agent.
type Message struct {
	// The context the message is associated with.
	ContextID string `json:"contextId,omitzero"`

	// The URIs of extensions that are present or contributed to this Message.
	Extensions []string `json:"extensions,omitzero"`

	// Event type, always "message".
	Kind EventKind `json:"kind"`

	// Identifier created by the message creator.
	MessageID string `json:"messageId"`

	// Extension metadata.
	Metadata map[string]any `json:"metadata,omitzero"`

	// Message content.
	Parts Parts `json:"parts"`

	// List of tasks referenced as context by this message.
	ReferenceTaskIDs []string `json:"referenceTaskIds,omitzero"`

	// Message sender's role.
	Role Role `json:"role"`

	// Identifier of task the message is related to.
	TaskID string `json:"taskId,omitzero"`
}

var _ Event = (*Message)(nil)

// GetEventKind returns [EventKindMessage].
func (m *Message) GetEventKind() EventKind { return EventKindMessage }

// GetTaskID returns the task the message is related to, if any.
func (m *Message) GetTaskID() string { return m.TaskID }

// GetContextID returns the context the message is associated with, if any.
func (m *Message) GetContextID() string { return m.ContextID }

// Validate ensures the Message is valid.
func (m *Message) Validate() error {
	if m.Role != RoleAgent && m.Role != RoleUser {
		return fmt.Errorf("invalid message role: %q", m.Role)
	}
	if m.MessageID == "" {
		return fmt.Errorf("message ID cannot be empty")
	}
	if len(m.Parts) == 0 {
		return fmt.Errorf("message must contain at least one part")
	}
	for i, part := range m.Parts {
		if part == nil {
			return fmt.Errorf("message part at index %d cannot be nil", i)
		}
		if err := part.Validate(); err != nil {
			return fmt.Errorf("message part at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of m.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}

	return &Message{
		ContextID:        m.ContextID,
		Extensions:       cloneStrings(m.Extensions),
		Kind:             m.Kind,
		MessageID:        m.MessageID,
		Metadata:         CloneMetadata(m.Metadata),
		Parts:            m.Parts.Clone(),
		ReferenceTaskIDs: cloneStrings(m.ReferenceTaskIDs),
		Role:             m.Role,
		TaskID:           m.TaskID,
	}
}

// NewAgentTextMessage creates a new agent message containing a single TextPart.
// contextID and taskID may be empty.
func NewAgentTextMessage(text, contextID, taskID string) *Message {
	return NewAgentPartsMessage(Parts{NewTextPart(text)}, contextID, taskID)
}

// NewAgentPartsMessage creates a new agent message containing parts.
// contextID and taskID may be empty.
func NewAgentPartsMessage(parts Parts, contextID, taskID string) *Message {
	return &Message{
		Kind:      EventKindMessage,
		MessageID: uuid.NewString(),
		Role:      RoleAgent,
		Parts:     parts,
		ContextID: contextID,
		TaskID:    taskID,
	}
}

// NewUserTextMessage creates a new user message containing a single TextPart.
func NewUserTextMessage(text string) *Message {
	return &Message{
		Kind:      EventKindMessage,
		MessageID: uuid.NewString(),
		Role:      RoleUser,
		Parts:     Parts{NewTextPart(text)},
	}
}

// GetTextParts extracts the text content of all text parts.
func GetTextParts(parts Parts) []string {
	var texts []string
	for _, part := range parts {
		if tp, ok := part.(*TextPart); ok {
			texts = append(texts, tp.Text)
		}
	}
	return texts
}

// GetMessageText joins the text parts of message with delimiter.
func GetMessageText(message *Message, delimiter string) string {
	if message == nil {
		return ""
	}
	return strings.Join(GetTextParts(message.Parts), delimiter)
}

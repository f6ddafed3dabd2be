// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"context"

	a2a "github.com/go-a2a/a2a-task"
)

// Event is any value that travels through an EventQueue.
type Event = a2a.Event

// Publisher is the producer side of an event queue.
type Publisher interface {
	// Publish appends event to the queue. It fails once the queue is closed.
	Publish(ctx context.Context, event Event) error

	// Close closes the queue. Closing is idempotent.
	Close() error

	// IsClosed reports whether Close has been called.
	IsClosed() bool
}

// IsFinalEvent reports whether event ends an event stream.
func IsFinalEvent(event Event) bool {
	switch e := event.(type) {
	case *a2a.TaskStatusUpdateEvent:
		return e.Final
	case *a2a.Message:
		return true
	case *a2a.Task:
		state := e.Status.State
		return state.IsTerminal() ||
			state == a2a.TaskStateInputRequired ||
			state == a2a.TaskStateUnknown
	default:
		return false
	}
}

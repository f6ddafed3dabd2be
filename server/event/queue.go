// Copyright 2025 The Go A2A Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"context"
	"sync"
)

// DefaultMaxQueueSize is the default maximum queue size.
const DefaultMaxQueueSize = 1024

// EventQueue manages a bounded queue of events with support for creating child queues
// that receive copies of all published events (tap mechanism).
type EventQueue struct {
	events     chan Event
	maxSize    int
	mu         sync.RWMutex
	closed     bool
	closeOnce  sync.Once
	children   []*EventQueue
	doneSignal chan struct{}
}

var _ Publisher = (*EventQueue)(nil)

// NewEventQueue creates a new event queue with the specified maximum size.
// If maxSize is 0, DefaultMaxQueueSize is used.
func NewEventQueue(maxSize int) (*EventQueue, error) {
	if maxSize < 0 {
		return nil, ErrInvalidQueueSize
	}
	if maxSize == 0 {
		maxSize = DefaultMaxQueueSize
	}

	return &EventQueue{
		events:     make(chan Event, maxSize),
		maxSize:    maxSize,
		doneSignal: make(chan struct{}),
	}, nil
}

// Publish adds an event to the queue and propagates it to all child queues.
//
// It returns ErrQueueClosed if the queue is closed and ErrQueueFull if the queue
// reached its capacity. A full or closed child does not fail the publish.
func (q *EventQueue) Publish(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.events <- event:
	default:
		return ErrQueueFull
	}

	for _, child := range q.children {
		_ = child.Publish(ctx, event)
	}
	return nil
}

// EnqueueEvent is an alias of [EventQueue.Publish].
func (q *EventQueue) EnqueueEvent(ctx context.Context, event Event) error {
	return q.Publish(ctx, event)
}

// DequeueEvent retrieves an event from the queue.
// If noWait is true, returns immediately with ErrQueueEmpty if queue is empty.
// If noWait is false, blocks until an event is available or context is canceled.
// Once the queue is closed and drained, ErrQueueClosed is returned.
func (q *EventQueue) DequeueEvent(ctx context.Context, noWait bool) (Event, error) {
	if noWait {
		select {
		case event := <-q.events:
			return event, nil
		default:
			if q.IsClosed() {
				return nil, ErrQueueClosed
			}
			return nil, ErrQueueEmpty
		}
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case event := <-q.events:
		return event, nil
	case <-q.doneSignal:
		select {
		case event := <-q.events:
			return event, nil
		default:
			return nil, ErrQueueClosed
		}
	}
}

// Tap creates and returns a new EventQueue that will receive all future events
// published to this queue.
func (q *EventQueue) Tap() (*EventQueue, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil, ErrQueueClosed
	}

	child, err := NewEventQueue(q.maxSize)
	if err != nil {
		return nil, err
	}

	q.children = append(q.children, child)
	return child, nil
}

// Close closes the queue and all of its children. Pending events can still be
// dequeued; further publishes fail with ErrQueueClosed. Close is idempotent.
func (q *EventQueue) Close() error {
	q.closeOnce.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.doneSignal)
		children := q.children
		q.mu.Unlock()

		for _, child := range children {
			_ = child.Close()
		}
	})

	return nil
}

// IsClosed returns true if the queue is closed.
func (q *EventQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// Size returns the current number of events in the queue.
func (q *EventQueue) Size() int {
	return len(q.events)
}

// Capacity returns the maximum capacity of the queue.
func (q *EventQueue) Capacity() int {
	return q.maxSize
}

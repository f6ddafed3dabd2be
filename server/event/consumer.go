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
	"errors"
	"sync"
	"time"
)

// DefaultEventTimeout is the default timeout for polling events.
const DefaultEventTimeout = 2 * time.Second

// EventConsumer consumes events from an EventQueue, handling final event detection
// and error propagation from the producing agent.
type EventConsumer struct {
	queue   *EventQueue
	timeout time.Duration

	mu  sync.RWMutex
	err error
}

// NewEventConsumer creates a new event consumer for the given queue.
func NewEventConsumer(queue *EventQueue) *EventConsumer {
	return &EventConsumer{
		queue:   queue,
		timeout: DefaultEventTimeout,
	}
}

// ConsumeOne attempts to consume a single event from the queue in non-blocking mode.
// Returns ErrQueueEmpty if the queue is empty.
func (c *EventConsumer) ConsumeOne(ctx context.Context) (Event, error) {
	return c.queue.DequeueEvent(ctx, true)
}

// ConsumeAll returns a channel that yields events as they become available.
// The channel is closed after a final event is delivered, when the queue is closed
// and drained, when the context is done, or when SetAgentError was called.
func (c *EventConsumer) ConsumeAll(ctx context.Context) <-chan Event {
	events := make(chan Event)

	go func() {
		defer close(events)

		for {
			if c.Err() != nil {
				return
			}

			c.mu.RLock()
			timeout := c.timeout
			c.mu.RUnlock()

			pollCtx, cancel := context.WithTimeout(ctx, timeout)
			event, err := c.queue.DequeueEvent(pollCtx, false)
			cancel()

			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
					continue
				}
				return
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}

			if IsFinalEvent(event) {
				_ = c.queue.Close()
				return
			}
		}
	}()

	return events
}

// SetAgentError records a failure of the producing agent; ConsumeAll stops at its next poll.
func (c *EventConsumer) SetAgentError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Err returns the error recorded by SetAgentError.
func (c *EventConsumer) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// SetTimeout sets the timeout for event polling.
func (c *EventConsumer) SetTimeout(timeout time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = timeout
}

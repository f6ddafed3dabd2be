// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tasktest

import (
	"context"
	"errors"
	"sync"
	"testing"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server/event"
)

// ErrQueueClosed is returned by SpyEventQueue.Publish after Close.
var ErrQueueClosed = errors.New("queue is closed")

// SpyEventQueue is an unbounded event publisher that records every event.
type SpyEventQueue struct {
	mu     sync.Mutex
	events []a2a.Event
	closed bool
}

var _ event.Publisher = (*SpyEventQueue)(nil)

// NewSpyEventQueue returns an open SpyEventQueue.
func NewSpyEventQueue() *SpyEventQueue {
	return &SpyEventQueue{}
}

// Publish records ev. It fails with ErrQueueClosed after Close.
func (q *SpyEventQueue) Publish(ctx context.Context, ev a2a.Event) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}
	q.events = append(q.events, ev)
	return nil
}

// Close closes the queue.
func (q *SpyEventQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (q *SpyEventQueue) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Events returns the published events in order.
func (q *SpyEventQueue) Events() []a2a.Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]a2a.Event, len(q.events))
	copy(out, q.events)
	return out
}

// LastEvent returns the last published event. It fails the test if there is none.
func (q *SpyEventQueue) LastEvent(tb testing.TB) a2a.Event {
	tb.Helper()

	events := q.Events()
	if len(events) == 0 {
		tb.Fatal("no event was published")
	}
	return events[len(events)-1]
}

// AssertEventCount fails the test unless n events were published.
func (q *SpyEventQueue) AssertEventCount(tb testing.TB, n int) {
	tb.Helper()
	if got := len(q.Events()); got != n {
		tb.Errorf("published %d events, want %d", got, n)
	}
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package event

import (
	"sync"
)

// QueueManager manages the event queues of running tasks.
type QueueManager interface {
	// Add registers queue for taskID. It fails with ErrTaskQueueExists if taskID already has one.
	Add(taskID string, queue *EventQueue) error

	// Get returns the queue of taskID, if any.
	Get(taskID string) (*EventQueue, bool)

	// Tap returns a child of the queue of taskID. It fails with ErrNoTaskQueue if there is none.
	Tap(taskID string) (*EventQueue, error)

	// Close closes and removes the queue of taskID. It fails with ErrNoTaskQueue if there is none.
	Close(taskID string) error

	// CreateOrTap creates a queue for taskID, or taps the existing one.
	CreateOrTap(taskID string) (*EventQueue, error)
}

// InMemoryQueueManager provides in-memory event queue management.
// All operations are safe for concurrent use.
type InMemoryQueueManager struct {
	mu      sync.Mutex
	queues  map[string]*EventQueue
	maxSize int
}

var _ QueueManager = (*InMemoryQueueManager)(nil)

// NewInMemoryQueueManager creates a new in-memory queue manager whose queues hold
// up to maxQueueSize events. A non-positive size selects DefaultMaxQueueSize.
func NewInMemoryQueueManager(maxQueueSize int) *InMemoryQueueManager {
	if maxQueueSize <= 0 {
		maxQueueSize = DefaultMaxQueueSize
	}
	return &InMemoryQueueManager{
		queues:  make(map[string]*EventQueue),
		maxSize: maxQueueSize,
	}
}

// Add registers queue for taskID.
func (m *InMemoryQueueManager) Add(taskID string, queue *EventQueue) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.queues[taskID]; exists {
		return ErrTaskQueueExists
	}
	m.queues[taskID] = queue
	return nil
}

// Get returns the queue of taskID, if any.
func (m *InMemoryQueueManager) Get(taskID string) (*EventQueue, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	queue, ok := m.queues[taskID]
	return queue, ok
}

// Tap returns a child of the queue of taskID.
func (m *InMemoryQueueManager) Tap(taskID string) (*EventQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	queue, ok := m.queues[taskID]
	if !ok {
		return nil, ErrNoTaskQueue
	}
	return queue.Tap()
}

// Close closes and removes the queue of taskID.
func (m *InMemoryQueueManager) Close(taskID string) error {
	m.mu.Lock()
	queue, ok := m.queues[taskID]
	delete(m.queues, taskID)
	m.mu.Unlock()

	if !ok {
		return ErrNoTaskQueue
	}
	return queue.Close()
}

// CreateOrTap creates a queue for taskID, or taps the existing one.
func (m *InMemoryQueueManager) CreateOrTap(taskID string) (*EventQueue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if queue, ok := m.queues[taskID]; ok {
		return queue.Tap()
	}

	queue, err := NewEventQueue(m.maxSize)
	if err != nil {
		return nil, err
	}
	m.queues[taskID] = queue
	return queue, nil
}

// Size returns the number of managed queues.
func (m *InMemoryQueueManager) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues)
}

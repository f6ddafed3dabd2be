// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	a2a "github.com/go-a2a/a2a-task"
)

// InMemoryTaskStore is an in-memory implementation of TaskStore.
// Task data is lost when the process stops.
//
// Tasks are deep-copied on the way in and out, so callers never share state
// with the store.
type InMemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*a2a.Task
}

var (
	_ TaskStore  = (*InMemoryTaskStore)(nil)
	_ TaskLister = (*InMemoryTaskStore)(nil)
)

// NewInMemoryTaskStore creates a new InMemoryTaskStore.
func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		tasks: make(map[string]*a2a.Task),
	}
}

// Save persists a copy of task.
func (s *InMemoryTaskStore) Save(ctx context.Context, task *a2a.Task) error {
	if task == nil {
		return errors.New("task cannot be nil")
	}
	if task.ID == "" {
		return NewTaskStoreError("save", "", errors.New("task ID cannot be empty"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = task.Clone()
	return nil
}

// Get retrieves a copy of the task with taskID, or nil if there is none.
func (s *InMemoryTaskStore) Get(ctx context.Context, taskID string) (*a2a.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tasks[taskID].Clone(), nil
}

// Delete removes the task with taskID.
func (s *InMemoryTaskStore) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, taskID)
	return nil
}

// List retrieves tasks ordered by ID.
func (s *InMemoryTaskStore) List(ctx context.Context, contextID string, limit, offset int) ([]*a2a.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*a2a.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if contextID != "" && task.ContextID != contextID {
			continue
		}
		matched = append(matched, task)
	}
	slices.SortFunc(matched, func(a, b *a2a.Task) int {
		return cmp.Compare(a.ID, b.ID)
	})

	if offset > 0 {
		matched = matched[min(offset, len(matched)):]
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	tasks := make([]*a2a.Task, len(matched))
	for i, task := range matched {
		tasks[i] = task.Clone()
	}
	return tasks, nil
}

// Count returns the number of tasks, restricted to contextID if it is non-empty.
func (s *InMemoryTaskStore) Count(ctx context.Context, contextID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if contextID == "" {
		return int64(len(s.tasks)), nil
	}

	var count int64
	for _, task := range s.tasks {
		if task.ContextID == contextID {
			count++
		}
	}
	return count, nil
}

// Clear removes all tasks.
func (s *InMemoryTaskStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make(map[string]*a2a.Task)
}

// Size returns the current number of tasks.
func (s *InMemoryTaskStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

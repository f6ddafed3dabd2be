// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tasktest

import (
	"context"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	a2a "github.com/go-a2a/a2a-task"
)

// SpyTaskStore is an in-memory task store that records every call.
//
// Err fields, when set, are returned by the matching method instead of
// touching the stored tasks. The call is still counted.
type SpyTaskStore struct {
	mu sync.Mutex

	tasks map[string]*a2a.Task
	saved []*a2a.Task

	saveCalls   int
	getCalls    int
	deleteCalls int

	SaveErr   error
	GetErr    error
	DeleteErr error
}

// NewSpyTaskStore returns an empty SpyTaskStore.
func NewSpyTaskStore() *SpyTaskStore {
	return &SpyTaskStore{tasks: make(map[string]*a2a.Task)}
}

// Save records a copy of task.
func (s *SpyTaskStore) Save(ctx context.Context, task *a2a.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.saveCalls++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.tasks[task.ID] = task.Clone()
	s.saved = append(s.saved, task.Clone())
	return nil
}

// Get returns a copy of the stored task, or nil.
func (s *SpyTaskStore) Get(ctx context.Context, taskID string) (*a2a.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.getCalls++
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	return s.tasks[taskID].Clone(), nil
}

// Delete removes the stored task.
func (s *SpyTaskStore) Delete(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteCalls++
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.tasks, taskID)
	return nil
}

// SetTask stores task without recording a call.
func (s *SpyTaskStore) SetTask(task *a2a.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[task.ID] = task.Clone()
}

// SavedTask returns the last saved task. It fails the test if nothing was saved.
func (s *SpyTaskStore) SavedTask(tb testing.TB) *a2a.Task {
	tb.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.saved) == 0 {
		tb.Fatal("no task was saved")
	}
	return s.saved[len(s.saved)-1].Clone()
}

// SaveCount returns the number of Save calls.
func (s *SpyTaskStore) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCalls
}

// GetCount returns the number of Get calls.
func (s *SpyTaskStore) GetCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCalls
}

// AssertSaved fails the test unless the last saved task equals want.
func (s *SpyTaskStore) AssertSaved(tb testing.TB, want *a2a.Task) {
	tb.Helper()

	if diff := cmp.Diff(want, s.SavedTask(tb)); diff != "" {
		tb.Errorf("saved task mismatch (-want +got):\n%s", diff)
	}
}

// AssertNotSaved fails the test if Save was called.
func (s *SpyTaskStore) AssertNotSaved(tb testing.TB) {
	tb.Helper()
	s.AssertSaveCalled(tb, 0)
}

// AssertSaveCalled fails the test unless Save was called n times.
func (s *SpyTaskStore) AssertSaveCalled(tb testing.TB, n int) {
	tb.Helper()
	if got := s.SaveCount(); got != n {
		tb.Errorf("Save called %d times, want %d", got, n)
	}
}

// AssertGetCalled fails the test unless Get was called n times.
func (s *SpyTaskStore) AssertGetCalled(tb testing.TB, n int) {
	tb.Helper()
	if got := s.GetCount(); got != n {
		tb.Errorf("Get called %d times, want %d", got, n)
	}
}

// AssertDeleteCalled fails the test unless Delete was called n times.
func (s *SpyTaskStore) AssertDeleteCalled(tb testing.TB, n int) {
	tb.Helper()

	s.mu.Lock()
	got := s.deleteCalls
	s.mu.Unlock()

	if got != n {
		tb.Errorf("Delete called %d times, want %d", got, n)
	}
}

// Clear forgets all tasks and recorded calls.
func (s *SpyTaskStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = make(map[string]*a2a.Task)
	s.saved = nil
	s.saveCalls, s.getCalls, s.deleteCalls = 0, 0, 0
}

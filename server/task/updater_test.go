// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server/task/tasktest"
)

func newTestUpdater(t *testing.T) (*TaskUpdater, *tasktest.SpyEventQueue) {
	t.Helper()

	queue := tasktest.NewSpyEventQueue()
	u, err := NewTaskUpdater(TaskUpdaterConfig{
		TaskID:    "task-1",
		ContextID: "ctx-1",
		Publisher: queue,
	})
	if err != nil {
		t.Fatalf("NewTaskUpdater() error = %v", err)
	}
	return u, queue
}

func TestNewTaskUpdater(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		config  TaskUpdaterConfig
		wantErr bool
	}{
		"success": {
			config: TaskUpdaterConfig{TaskID: "task-1", ContextID: "ctx-1", Publisher: tasktest.NewSpyEventQueue()},
		},
		"error: empty task ID": {
			config:  TaskUpdaterConfig{ContextID: "ctx-1", Publisher: tasktest.NewSpyEventQueue()},
			wantErr: true,
		},
		"error: empty context ID": {
			config:  TaskUpdaterConfig{TaskID: "task-1", Publisher: tasktest.NewSpyEventQueue()},
			wantErr: true,
		},
		"error: nil publisher": {
			config:  TaskUpdaterConfig{TaskID: "task-1", ContextID: "ctx-1"},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTaskUpdater(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewTaskUpdater() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskUpdater_UpdateStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := map[string]struct {
		update       func(u *TaskUpdater) error
		wantState    a2a.TaskState
		wantFinal    bool
		wantTerminal bool
	}{
		"submit": {
			update:    func(u *TaskUpdater) error { return u.Submit(ctx, nil) },
			wantState: a2a.TaskStateSubmitted,
		},
		"start work": {
			update:    func(u *TaskUpdater) error { return u.StartWork(ctx, nil) },
			wantState: a2a.TaskStateWorking,
		},
		"complete": {
			update:       func(u *TaskUpdater) error { return u.Complete(ctx, nil) },
			wantState:    a2a.TaskStateCompleted,
			wantFinal:    true,
			wantTerminal: true,
		},
		"failed": {
			update:       func(u *TaskUpdater) error { return u.Failed(ctx, nil) },
			wantState:    a2a.TaskStateFailed,
			wantFinal:    true,
			wantTerminal: true,
		},
		"reject": {
			update:       func(u *TaskUpdater) error { return u.Reject(ctx, nil) },
			wantState:    a2a.TaskStateRejected,
			wantFinal:    true,
			wantTerminal: true,
		},
		"cancel": {
			update:       func(u *TaskUpdater) error { return u.Cancel(ctx, nil) },
			wantState:    a2a.TaskStateCanceled,
			wantFinal:    true,
			wantTerminal: true,
		},
		"requires input": {
			update:    func(u *TaskUpdater) error { return u.RequiresInput(ctx, nil, false) },
			wantState: a2a.TaskStateInputRequired,
		},
		"requires input, final": {
			update:       func(u *TaskUpdater) error { return u.RequiresInput(ctx, nil, true) },
			wantState:    a2a.TaskStateInputRequired,
			wantFinal:    true,
			wantTerminal: true,
		},
		"requires auth": {
			update:    func(u *TaskUpdater) error { return u.RequiresAuth(ctx, nil, false) },
			wantState: a2a.TaskStateAuthRequired,
		},
		"terminal state forces final": {
			update:       func(u *TaskUpdater) error { return u.UpdateStatus(ctx, a2a.TaskStateCompleted, nil, false) },
			wantState:    a2a.TaskStateCompleted,
			wantFinal:    true,
			wantTerminal: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			u, queue := newTestUpdater(t)
			if err := tt.update(u); err != nil {
				t.Fatalf("update error = %v", err)
			}

			queue.AssertEventCount(t, 1)
			ev, ok := queue.LastEvent(t).(*a2a.TaskStatusUpdateEvent)
			if !ok {
				t.Fatalf("published %T, want *a2a.TaskStatusUpdateEvent", queue.LastEvent(t))
			}
			if ev.TaskID != "task-1" || ev.ContextID != "ctx-1" {
				t.Errorf("event IDs = (%q, %q), want (task-1, ctx-1)", ev.TaskID, ev.ContextID)
			}
			if ev.Status.State != tt.wantState {
				t.Errorf("State = %q, want %q", ev.Status.State, tt.wantState)
			}
			if ev.Final != tt.wantFinal {
				t.Errorf("Final = %v, want %v", ev.Final, tt.wantFinal)
			}
			if ev.Status.Timestamp == "" {
				t.Error("status has no timestamp")
			}
			if u.IsTerminal() != tt.wantTerminal {
				t.Errorf("IsTerminal() = %v, want %v", u.IsTerminal(), tt.wantTerminal)
			}
		})
	}
}

func TestTaskUpdater_Terminal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	u, queue := newTestUpdater(t)

	msg := u.NewAgentMessage(a2a.Parts{a2a.NewTextPart("done")})
	if err := u.Complete(ctx, msg); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	ev := queue.LastEvent(t).(*a2a.TaskStatusUpdateEvent)
	if diff := cmp.Diff(msg, ev.Status.Message); diff != "" {
		t.Errorf("status message mismatch (-want +got):\n%s", diff)
	}

	if err := u.StartWork(ctx, nil); !errors.Is(err, ErrTaskTerminal) {
		t.Errorf("StartWork() after Complete() error = %v, want %v", err, ErrTaskTerminal)
	}
	if err := u.AddArtifact(ctx, tasktest.NewArtifact("a-1", "late", "x"), false, false); !errors.Is(err, ErrTaskTerminal) {
		t.Errorf("AddArtifact() after Complete() error = %v, want %v", err, ErrTaskTerminal)
	}
	queue.AssertEventCount(t, 1)
}

func TestTaskUpdater_UpdateStatusErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("invalid state", func(t *testing.T) {
		t.Parallel()

		u, queue := newTestUpdater(t)
		if err := u.UpdateStatus(ctx, a2a.TaskState("bogus"), nil, false); err == nil {
			t.Error("UpdateStatus() with an invalid state should fail")
		}
		queue.AssertEventCount(t, 0)
	})

	t.Run("publish failure does not mark the task terminal", func(t *testing.T) {
		t.Parallel()

		u, queue := newTestUpdater(t)
		queue.Close()

		err := u.Complete(ctx, nil)
		if !errors.Is(err, tasktest.ErrQueueClosed) {
			t.Fatalf("Complete() error = %v, want %v", err, tasktest.ErrQueueClosed)
		}
		if u.IsTerminal() {
			t.Error("IsTerminal() = true after a failed publish")
		}
	})
}

func TestTaskUpdater_AddArtifact(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("publishes a copy", func(t *testing.T) {
		t.Parallel()

		u, queue := newTestUpdater(t)
		artifact := tasktest.NewArtifact("artifact-1", "result", "hello")
		if err := u.AddArtifact(ctx, artifact, true, true); err != nil {
			t.Fatalf("AddArtifact() error = %v", err)
		}

		ev, ok := queue.LastEvent(t).(*a2a.TaskArtifactUpdateEvent)
		if !ok {
			t.Fatalf("published %T, want *a2a.TaskArtifactUpdateEvent", queue.LastEvent(t))
		}
		want := a2a.NewTaskArtifactUpdateEvent("task-1", "ctx-1", artifact, true, true)
		if diff := cmp.Diff(want, ev); diff != "" {
			t.Errorf("event mismatch (-want +got):\n%s", diff)
		}
		if ev.Artifact == artifact {
			t.Error("published the caller's artifact, want a copy")
		}
	})

	t.Run("assigns an ID", func(t *testing.T) {
		t.Parallel()

		u, queue := newTestUpdater(t)
		if err := u.AddArtifact(ctx, tasktest.NewArtifact("", "result", "hello"), false, false); err != nil {
			t.Fatalf("AddArtifact() error = %v", err)
		}
		ev := queue.LastEvent(t).(*a2a.TaskArtifactUpdateEvent)
		if ev.Artifact.ArtifactID == "" {
			t.Error("artifact ID was not assigned")
		}
	})

	t.Run("rejects invalid artifacts", func(t *testing.T) {
		t.Parallel()

		u, queue := newTestUpdater(t)
		if err := u.AddArtifact(ctx, nil, false, false); err == nil {
			t.Error("AddArtifact(nil) should fail")
		}
		if err := u.AddArtifact(ctx, &a2a.Artifact{ArtifactID: "empty"}, false, false); err == nil {
			t.Error("AddArtifact() without parts should fail")
		}
		queue.AssertEventCount(t, 0)
	})
}

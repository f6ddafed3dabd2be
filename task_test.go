// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
)

func TestTask_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *Task {
		return &Task{
			ID:        "task-1",
			ContextID: "ctx-1",
			Kind:      EventKindTask,
			Status:    TaskStatus{State: TaskStateWorking, Timestamp: "2025-01-01T00:00:00Z"},
		}
	}

	tests := map[string]struct {
		modify  func(*Task)
		wantErr bool
	}{
		"success: minimal": {
			modify: func(*Task) {},
		},
		"success: with artifacts and history": {
			modify: func(task *Task) {
				task.Artifacts = []*Artifact{{ArtifactID: "a-1", Parts: Parts{NewTextPart("x")}}}
				task.History = []*Message{NewUserTextMessage("hi")}
			},
		},
		"error: empty ID": {
			modify:  func(task *Task) { task.ID = "" },
			wantErr: true,
		},
		"error: empty context ID": {
			modify:  func(task *Task) { task.ContextID = "" },
			wantErr: true,
		},
		"error: invalid state": {
			modify:  func(task *Task) { task.Status.State = "paused" },
			wantErr: true,
		},
		"error: invalid timestamp": {
			modify:  func(task *Task) { task.Status.Timestamp = "yesterday" },
			wantErr: true,
		},
		"error: nil artifact": {
			modify:  func(task *Task) { task.Artifacts = []*Artifact{nil} },
			wantErr: true,
		},
		"error: artifact without ID": {
			modify:  func(task *Task) { task.Artifacts = []*Artifact{{Parts: Parts{NewTextPart("x")}}} },
			wantErr: true,
		},
		"error: nil history message": {
			modify:  func(task *Task) { task.History = []*Message{nil} },
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			task := valid()
			tt.modify(task)
			if err := task.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTask_Clone(t *testing.T) {
	t.Parallel()

	orig := &Task{
		ID:        "task-1",
		ContextID: "ctx-1",
		Kind:      EventKindTask,
		Status: TaskStatus{
			State:   TaskStateInputRequired,
			Message: NewAgentTextMessage("need more", "ctx-1", "task-1"),
		},
		Artifacts: []*Artifact{{ArtifactID: "a-1", Parts: Parts{NewTextPart("x")}}},
		History:   []*Message{},
		Metadata:  map[string]any{"nested": map[string]any{"k": "v"}},
	}

	got := orig.Clone()
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}

	got.Status.Message.Parts[0].(*TextPart).Text = "changed"
	got.Artifacts[0].ArtifactID = "changed"
	got.Metadata["nested"].(map[string]any)["k"] = "changed"

	if orig.Status.Message.Parts[0].(*TextPart).Text != "need more" {
		t.Error("Clone() shares the status message")
	}
	if orig.Artifacts[0].ArtifactID != "a-1" {
		t.Error("Clone() shares artifacts")
	}
	if orig.Metadata["nested"].(map[string]any)["k"] != "v" {
		t.Error("Clone() shares nested metadata")
	}

	if got.History == nil {
		t.Error("Clone() turned empty history into nil")
	}
	if (&Task{ID: "t"}).Clone().History != nil {
		t.Error("Clone() turned nil history into empty")
	}
	if (*Task)(nil).Clone() != nil {
		t.Error("Clone() of nil task should be nil")
	}
}

func TestTask_JSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		task *Task
		want string
	}{
		"absent collections are omitted": {
			task: &Task{ID: "t", ContextID: "c", Kind: EventKindTask, Status: TaskStatus{State: TaskStateSubmitted}},
			want: `{"contextId":"c","id":"t","kind":"task","status":{"state":"submitted"}}`,
		},
		"empty collections are kept": {
			task: &Task{
				ID:        "t",
				ContextID: "c",
				Kind:      EventKindTask,
				Status:    TaskStatus{State: TaskStateSubmitted},
				Artifacts: []*Artifact{},
				History:   []*Message{},
				Metadata:  map[string]any{},
			},
			want: `{"artifacts":[],"contextId":"c","history":[],"id":"t","kind":"task","metadata":{},"status":{"state":"submitted"}}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.task)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if got := string(data); got != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}

			var got Task
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if diff := cmp.Diff(tt.task, &got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	t.Run("success: generates IDs", func(t *testing.T) {
		t.Parallel()

		request := NewUserTextMessage("hello")
		task, err := NewTask(request)
		if err != nil {
			t.Fatalf("NewTask() error = %v", err)
		}
		if task.ID == "" || task.ContextID == "" {
			t.Errorf("NewTask() IDs = %q, %q, want generated", task.ID, task.ContextID)
		}
		if task.Status.State != TaskStateSubmitted {
			t.Errorf("NewTask() state = %q, want %q", task.Status.State, TaskStateSubmitted)
		}
		if err := task.Validate(); err != nil {
			t.Errorf("NewTask() produced an invalid task: %v", err)
		}
		if diff := cmp.Diff([]*Message{request}, task.History); diff != "" {
			t.Errorf("NewTask() history mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("success: keeps message IDs", func(t *testing.T) {
		t.Parallel()

		request := NewUserTextMessage("hello")
		request.TaskID = "task-1"
		request.ContextID = "ctx-1"
		task, err := NewTask(request)
		if err != nil {
			t.Fatalf("NewTask() error = %v", err)
		}
		if task.ID != "task-1" || task.ContextID != "ctx-1" {
			t.Errorf("NewTask() IDs = %q, %q, want task-1, ctx-1", task.ID, task.ContextID)
		}
	})

	t.Run("error: invalid request", func(t *testing.T) {
		t.Parallel()

		if _, err := NewTask(nil); err == nil {
			t.Error("NewTask(nil) should fail")
		}
		if _, err := NewTask(&Message{Role: RoleUser}); err == nil {
			t.Error("NewTask() with an invalid message should fail")
		}
	})
}

func TestCompletedTask(t *testing.T) {
	t.Parallel()

	artifacts := []*Artifact{{ArtifactID: "a-1", Parts: Parts{NewTextPart("done")}}}
	task, err := CompletedTask("task-1", "ctx-1", artifacts, nil)
	if err != nil {
		t.Fatalf("CompletedTask() error = %v", err)
	}
	want := &Task{
		ID:        "task-1",
		ContextID: "ctx-1",
		Kind:      EventKindTask,
		Status:    TaskStatus{State: TaskStateCompleted},
		Artifacts: artifacts,
	}
	if diff := cmp.Diff(want, task); diff != "" {
		t.Errorf("CompletedTask() mismatch (-want +got):\n%s", diff)
	}

	if _, err := CompletedTask("task-1", "ctx-1", nil, nil); err == nil {
		t.Error("CompletedTask() without artifacts should fail")
	}
}

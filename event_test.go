// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUnmarshalEvent(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data string
		want Event
	}{
		"task": {
			data: `{"kind":"task","id":"t","contextId":"c","status":{"state":"working"},"history":[]}`,
			want: &Task{ID: "t", ContextID: "c", Kind: EventKindTask, Status: TaskStatus{State: TaskStateWorking}, History: []*Message{}},
		},
		"status update": {
			data: `{"kind":"status-update","taskId":"t","contextId":"c","status":{"state":"completed"},"final":true,"metadata":{"k":"v"}}`,
			want: &TaskStatusUpdateEvent{
				TaskID:    "t",
				ContextID: "c",
				Kind:      EventKindStatusUpdate,
				Status:    TaskStatus{State: TaskStateCompleted},
				Final:     true,
				Metadata:  map[string]any{"k": "v"},
			},
		},
		"artifact update": {
			data: `{"kind":"artifact-update","taskId":"t","contextId":"c","artifact":{"artifactId":"a","parts":[{"kind":"text","text":"x"}]},"append":true,"lastChunk":true}`,
			want: NewTaskArtifactUpdateEvent("t", "c", &Artifact{ArtifactID: "a", Parts: Parts{NewTextPart("x")}}, true, true),
		},
		"message": {
			data: `{"kind":"message","messageId":"m","role":"agent","parts":[{"kind":"text","text":"hi"}],"taskId":"t"}`,
			want: &Message{Kind: EventKindMessage, MessageID: "m", Role: RoleAgent, Parts: Parts{NewTextPart("hi")}, TaskID: "t"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := UnmarshalEvent([]byte(tt.data))
			if err != nil {
				t.Fatalf("UnmarshalEvent() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("UnmarshalEvent() mismatch (-want +got):\n%s", diff)
			}
			if got.GetEventKind() != tt.want.GetEventKind() || got.GetTaskID() != tt.want.GetTaskID() {
				t.Errorf("event = (%q, %q), want (%q, %q)",
					got.GetEventKind(), got.GetTaskID(), tt.want.GetEventKind(), tt.want.GetTaskID())
			}
		})
	}
}

func TestUnmarshalEvent_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		data    string
		wantErr error
	}{
		"not JSON": {
			data:    `{`,
			wantErr: ErrParse,
		},
		"unknown kind": {
			data:    `{"kind":"bogus"}`,
			wantErr: ErrInvalidRequest,
		},
		"missing kind": {
			data:    `{"id":"t"}`,
			wantErr: ErrInvalidRequest,
		},
		"bad member": {
			data:    `{"kind":"status-update","final":"yes"}`,
			wantErr: ErrParse,
		},
		"bad part": {
			data:    `{"kind":"message","parts":[{"kind":"video"}]}`,
			wantErr: ErrParse,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if _, err := UnmarshalEvent([]byte(tt.data)); !errors.Is(err, tt.wantErr) {
				t.Errorf("UnmarshalEvent() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

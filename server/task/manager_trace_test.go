// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server/task/tasktest"
)

func TestTaskManager_Tracing(t *testing.T) {
	t.Parallel()

	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanRecorder(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	store := tasktest.NewSpyTaskStore()
	m, err := NewTaskManager(store, WithTaskID(testTaskID), WithTracer(tp.Tracer("test")))
	if err != nil {
		t.Fatalf("NewTaskManager() error = %v", err)
	}

	ctx := context.Background()
	if _, err := m.GetTask(ctx); err != nil {
		t.Fatalf("GetTask() error = %v", err)
	}
	update := tasktest.NewStatusUpdateEvent(testTaskID, testContextID, a2a.TaskStateWorking, nil, false)
	if _, err := m.SaveTaskEvent(ctx, update); err != nil {
		t.Fatalf("SaveTaskEvent() error = %v", err)
	}
	other := tasktest.NewStatusUpdateEvent("other-task", testContextID, a2a.TaskStateWorking, nil, false)
	if _, err := m.SaveTaskEvent(ctx, other); err == nil {
		t.Fatal("SaveTaskEvent() with another task should fail")
	}

	spans := rec.Ended()
	var names []string
	for _, span := range spans {
		names = append(names, span.Name())
	}
	want := []string{
		"a2a.task_manager.GetTask",
		"a2a.task_manager.SaveTaskEvent",
		"a2a.task_manager.SaveTaskEvent",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("span names mismatch (-want +got):\n%s", diff)
	}

	if got := spans[1].Status().Code; got != codes.Unset {
		t.Errorf("successful save span status = %v, want %v", got, codes.Unset)
	}
	if got := spans[2].Status().Code; got != codes.Error {
		t.Errorf("rejected save span status = %v, want %v", got, codes.Error)
	}
	if len(spans[2].Events()) == 0 {
		t.Error("rejected save span should record the error")
	}
}

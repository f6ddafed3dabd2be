// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	a2a "github.com/go-a2a/a2a-task"
)

const tracerName = "github.com/go-a2a/a2a-task/server/task"

// TaskManager is the aggregate manager of a single task.
//
// A manager is either unbound, with no task ID yet, or bound to one task ID.
// Binding happens at most once: from [WithTaskID], or from the first task it
// successfully saves. After that, events for any other task are rejected with
// an invalid-params error.
//
// The manager keeps no cached copy of the task. Every read goes to the store.
type TaskManager struct {
	taskID         string
	contextID      string
	store          TaskStore
	initialMessage *a2a.Message

	logger *slog.Logger
	tracer trace.Tracer
}

// ManagerOption configures a [TaskManager].
type ManagerOption func(*TaskManager) error

// WithTaskID binds the manager to taskID. An empty taskID is rejected with [ErrInvalidTaskID].
func WithTaskID(taskID string) ManagerOption {
	return func(m *TaskManager) error {
		if taskID == "" {
			return ErrInvalidTaskID
		}
		m.taskID = taskID
		return nil
	}
}

// WithContextID sets the context ID used when the manager creates a task.
func WithContextID(contextID string) ManagerOption {
	return func(m *TaskManager) error {
		m.contextID = contextID
		return nil
	}
}

// WithInitialMessage sets the message recorded as the first history entry of a
// task created by the manager.
func WithInitialMessage(msg *a2a.Message) ManagerOption {
	return func(m *TaskManager) error {
		m.initialMessage = msg
		return nil
	}
}

// WithLogger sets the [slog.Logger] for the manager.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *TaskManager) error {
		m.logger = logger
		return nil
	}
}

// WithTracer sets the [trace.Tracer] for the manager.
func WithTracer(tracer trace.Tracer) ManagerOption {
	return func(m *TaskManager) error {
		m.tracer = tracer
		return nil
	}
}

// NewTaskManager creates a new TaskManager persisting through store.
func NewTaskManager(store TaskStore, opts ...ManagerOption) (*TaskManager, error) {
	if store == nil {
		return nil, errors.New("task store cannot be nil")
	}

	m := &TaskManager{
		store:  store,
		logger: slog.Default(),
		tracer: otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// TaskID returns the bound task ID, or "" while unbound.
func (m *TaskManager) TaskID() string { return m.taskID }

// ContextID returns the context ID, or "" if none is known yet.
func (m *TaskManager) ContextID() string { return m.contextID }

// GetTask returns the bound task from the store.
//
// An unbound manager returns nil without touching the store. A bound manager
// reads the store exactly once and returns nil if the task doesn't exist.
func (m *TaskManager) GetTask(ctx context.Context) (*a2a.Task, error) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.GetTask",
		trace.WithAttributes(attribute.String("a2a.task_id", m.taskID)))
	defer span.End()

	if m.taskID == "" {
		m.logger.DebugContext(ctx, "no task ID bound, skipping task lookup")
		return nil, nil
	}

	m.logger.DebugContext(ctx, "fetching task", "task_id", m.taskID)
	return m.store.Get(ctx, m.taskID)
}

// EnsureTask returns the bound task, creating and persisting a new one if the
// manager is unbound or the task doesn't exist yet.
//
// An unbound manager creates the task with the IDs of event and binds to them
// once the task is saved. A bound manager keeps its task ID. A created task
// starts in the submitted state with the initial message, if any, as its only
// history entry. An event for another task fails with an [a2a.ErrInvalidParams]
// error before any store access.
func (m *TaskManager) EnsureTask(ctx context.Context, event a2a.Event) (*a2a.Task, error) {
	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.EnsureTask",
		trace.WithAttributes(attribute.String("a2a.task_id", m.taskID)))
	defer span.End()

	task, err := m.ensureAndSave(ctx, event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return task, err
}

func (m *TaskManager) ensureAndSave(ctx context.Context, event a2a.Event) (*a2a.Task, error) {
	if err := m.checkEvent(ctx, event); err != nil {
		return nil, err
	}
	task, created, err := m.ensureTask(ctx, event)
	if err != nil {
		return nil, err
	}
	if created {
		return m.save(ctx, task)
	}
	return task, nil
}

// checkEvent rejects an event that cannot belong to the manager's task.
// A nil event is accepted only by a bound manager.
func (m *TaskManager) checkEvent(ctx context.Context, event a2a.Event) error {
	if event == nil {
		if m.taskID == "" {
			return a2a.NewInvalidParamsError("task ID cannot be empty")
		}
		return nil
	}

	switch id := event.GetTaskID(); {
	case m.taskID != "" && id != m.taskID:
		m.logger.WarnContext(ctx, "task ID mismatch",
			"task_id", m.taskID,
			"event_task_id", id)
		return a2a.NewInvalidParamsError("task in event doesn't match TaskManager %s : %s", m.taskID, id)
	case id == "":
		return a2a.NewInvalidParamsError("task ID cannot be empty")
	}
	return nil
}

// ensureTask fetches the bound task or builds a new one. It neither saves the
// new task nor binds the manager; created reports whether the task is new.
func (m *TaskManager) ensureTask(ctx context.Context, event a2a.Event) (task *a2a.Task, created bool, err error) {
	if m.taskID != "" {
		task, err = m.store.Get(ctx, m.taskID)
		if err != nil {
			return nil, false, err
		}
		if task != nil {
			return task, false, nil
		}
	}

	task = m.newTask(event)
	m.logger.DebugContext(ctx, "creating task", "task_id", task.ID, "context_id", task.ContextID)
	return task, true, nil
}

func (m *TaskManager) newTask(event a2a.Event) *a2a.Task {
	taskID, contextID := m.taskID, m.contextID
	if event != nil {
		switch {
		case taskID == "":
			// An unbound manager adopts both IDs of the first event.
			taskID = event.GetTaskID()
			if id := event.GetContextID(); id != "" {
				contextID = id
			}
		case contextID == "":
			contextID = event.GetContextID()
		}
	}

	history := []*a2a.Message{}
	if m.initialMessage != nil {
		history = append(history, m.initialMessage.Clone())
	}

	return &a2a.Task{
		ID:        taskID,
		ContextID: contextID,
		Kind:      a2a.EventKindTask,
		Status: a2a.TaskStatus{
			State:     a2a.TaskStateSubmitted,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		History: history,
	}
}

// SaveTaskEvent folds event into the task and persists the result.
//
// A [*a2a.Task] snapshot is saved verbatim and binds an unbound manager. A
// [*a2a.TaskStatusUpdateEvent] replaces the task status and merges the event
// metadata into the task metadata. A [*a2a.TaskArtifactUpdateEvent] inserts,
// replaces or extends an artifact. Either partial event creates the task first
// if needed, and the task is written exactly once.
//
// Events for a task other than the bound one fail with an
// [a2a.ErrInvalidParams] error before any store access. Store errors are
// returned unchanged.
func (m *TaskManager) SaveTaskEvent(ctx context.Context, event a2a.Event) (*a2a.Task, error) {
	if event == nil {
		return nil, a2a.NewInvalidParamsError("event cannot be nil")
	}

	ctx, span := m.tracer.Start(ctx, "a2a.task_manager.SaveTaskEvent",
		trace.WithAttributes(
			attribute.String("a2a.task_id", event.GetTaskID()),
			attribute.String("a2a.event_kind", string(event.GetEventKind())),
		))
	defer span.End()

	task, err := m.saveTaskEvent(ctx, event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return task, err
}

func (m *TaskManager) saveTaskEvent(ctx context.Context, event a2a.Event) (*a2a.Task, error) {
	if err := m.checkEvent(ctx, event); err != nil {
		return nil, err
	}

	switch ev := event.(type) {
	case *a2a.Task:
		return m.save(ctx, ev)
	case *a2a.TaskStatusUpdateEvent:
		task, _, err := m.ensureTask(ctx, ev)
		if err != nil {
			return nil, err
		}
		m.logger.DebugContext(ctx, "updating task status",
			"task_id", task.ID,
			"state", ev.Status.State)
		a2a.ApplyStatusUpdate(task, ev)
		return m.save(ctx, task)
	case *a2a.TaskArtifactUpdateEvent:
		task, _, err := m.ensureTask(ctx, ev)
		if err != nil {
			return nil, err
		}
		if ev.Artifact != nil {
			m.logger.DebugContext(ctx, "updating task artifact",
				"task_id", task.ID,
				"artifact_id", ev.Artifact.ArtifactID,
				"append", ev.Append)
		}
		a2a.AppendArtifactToTask(task, ev)
		return m.save(ctx, task)
	default:
		return nil, a2a.NewInvalidParamsError("unsupported task event kind %q", event.GetEventKind())
	}
}

// save persists task and, once the write succeeds, binds an unbound manager to it.
func (m *TaskManager) save(ctx context.Context, task *a2a.Task) (*a2a.Task, error) {
	if err := m.store.Save(ctx, task); err != nil {
		m.logger.ErrorContext(ctx, "failed to save task", "task_id", task.ID, "error", err)
		return nil, err
	}
	if m.taskID == "" {
		m.taskID = task.ID
		m.contextID = task.ContextID
		m.logger.InfoContext(ctx, "task bound", "task_id", task.ID, "context_id", task.ContextID)
	} else if m.contextID == "" {
		m.contextID = task.ContextID
	}
	m.logger.DebugContext(ctx, "task saved", "task_id", task.ID, "state", task.Status.State)
	return task, nil
}

// Process saves task events and passes any other event through unchanged.
// It returns event itself.
func (m *TaskManager) Process(ctx context.Context, event a2a.Event) (a2a.Event, error) {
	if _, err := m.process(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// process saves event if it is a task event and returns the saved task. Any
// other event returns nil without touching the store.
func (m *TaskManager) process(ctx context.Context, event a2a.Event) (*a2a.Task, error) {
	switch event.(type) {
	case *a2a.Task, *a2a.TaskStatusUpdateEvent, *a2a.TaskArtifactUpdateEvent:
		return m.SaveTaskEvent(ctx, event)
	}
	return nil, nil
}

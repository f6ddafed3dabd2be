// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"context"
	"errors"
	"log/slog"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server/event"
)

// DefaultAggregatorBufferSize is the default buffer size of the channel returned by
// [ResultAggregator.ConsumeAndEmit].
const DefaultAggregatorBufferSize = 100

// ResultAggregator drives a [TaskManager] from an event stream, such as the one
// returned by [event.EventConsumer.ConsumeAll].
//
// Every event goes through the same path as [TaskManager.Process]. When a push
// sender is configured it is notified with each saved task.
type ResultAggregator struct {
	manager    *TaskManager
	sender     PushNotificationSender
	logger     *slog.Logger
	bufferSize int
}

// ResultAggregatorConfig holds configuration for creating a ResultAggregator.
type ResultAggregatorConfig struct {
	TaskManager *TaskManager
	PushSender  PushNotificationSender // Optional
	Logger      *slog.Logger
	BufferSize  int
}

// NewResultAggregator creates a new ResultAggregator with the given configuration.
func NewResultAggregator(config ResultAggregatorConfig) (*ResultAggregator, error) {
	if config.TaskManager == nil {
		return nil, errors.New("task manager cannot be nil")
	}

	bufferSize := config.BufferSize
	if bufferSize <= 0 {
		bufferSize = DefaultAggregatorBufferSize
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ResultAggregator{
		manager:    config.TaskManager,
		sender:     config.PushSender,
		logger:     logger,
		bufferSize: bufferSize,
	}, nil
}

// TaskManager returns the underlying task manager.
func (r *ResultAggregator) TaskManager() *TaskManager { return r.manager }

// process hands ev to the manager and notifies the push sender with the saved task.
func (r *ResultAggregator) process(ctx context.Context, ev event.Event) error {
	task, err := r.manager.process(ctx, ev)
	if err != nil || task == nil {
		return err
	}

	if r.sender != nil {
		if err := r.sender.SendNotification(ctx, task); err != nil {
			r.logger.ErrorContext(ctx, "failed to send push notification",
				"task_id", task.ID,
				"error", err)
		}
	}
	return nil
}

// current returns the current task, or nil if none exists.
func (r *ResultAggregator) current(ctx context.Context) (a2a.Event, error) {
	task, err := r.manager.GetTask(ctx)
	if err != nil || task == nil {
		return nil, err
	}
	return task, nil
}

// ConsumeAll processes events until input is closed or a final event arrives.
//
// It returns the first [*a2a.Message] seen, or else the current task.
func (r *ResultAggregator) ConsumeAll(ctx context.Context, input <-chan event.Event) (a2a.Event, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev, ok := <-input:
			if !ok {
				return r.current(ctx)
			}
			if msg, isMsg := ev.(*a2a.Message); isMsg {
				return msg, nil
			}
			if err := r.process(ctx, ev); err != nil {
				return nil, err
			}
			if event.IsFinalEvent(ev) {
				return r.current(ctx)
			}
		}
	}
}

// ConsumeAndBreakOnInterrupt processes events like ConsumeAll, but returns as
// soon as the task reaches an interrupted state. The remaining events are then
// consumed in the background, and interrupted is true.
func (r *ResultAggregator) ConsumeAndBreakOnInterrupt(ctx context.Context, input <-chan event.Event) (result a2a.Event, interrupted bool, err error) {
	for {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case ev, ok := <-input:
			if !ok {
				result, err = r.current(ctx)
				return result, false, err
			}
			if msg, isMsg := ev.(*a2a.Message); isMsg {
				return msg, false, nil
			}
			if err := r.process(ctx, ev); err != nil {
				return nil, false, err
			}

			if isInterrupted(ev) {
				r.logger.DebugContext(ctx, "task interrupted, consuming remaining events in background",
					"task_id", ev.GetTaskID())
				result, err = r.current(ctx)
				go r.ContinueConsuming(context.WithoutCancel(ctx), input)
				return result, true, err
			}
			if event.IsFinalEvent(ev) {
				result, err = r.current(ctx)
				return result, false, err
			}
		}
	}
}

// ContinueConsuming processes events until input is closed, a final event
// arrives, or ctx is done. Processing errors are logged.
func (r *ResultAggregator) ContinueConsuming(ctx context.Context, input <-chan event.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-input:
			if !ok {
				return
			}
			if err := r.process(ctx, ev); err != nil {
				r.logger.ErrorContext(ctx, "failed to process event",
					"task_id", ev.GetTaskID(),
					"error", err)
			}
			if event.IsFinalEvent(ev) {
				return
			}
		}
	}
}

// ConsumeAndEmit processes events and forwards each of them on the returned
// channel, which is closed after a final event, when input is closed, or when
// ctx is done. Processing errors are logged and do not stop the stream.
func (r *ResultAggregator) ConsumeAndEmit(ctx context.Context, input <-chan event.Event) <-chan event.Event {
	output := make(chan event.Event, r.bufferSize)

	go func() {
		defer close(output)

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-input:
				if !ok {
					return
				}
				if err := r.process(ctx, ev); err != nil {
					r.logger.ErrorContext(ctx, "failed to process event",
						"task_id", ev.GetTaskID(),
						"error", err)
				}

				select {
				case output <- ev:
				case <-ctx.Done():
					return
				}

				if event.IsFinalEvent(ev) {
					return
				}
			}
		}
	}()

	return output
}

func isInterrupted(ev event.Event) bool {
	switch e := ev.(type) {
	case *a2a.TaskStatusUpdateEvent:
		return e.Status.State.IsInterrupted()
	case *a2a.Task:
		return e.Status.State.IsInterrupted()
	}
	return false
}

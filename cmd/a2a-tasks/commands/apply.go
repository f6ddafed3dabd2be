// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server/event"
	"github.com/go-a2a/a2a-task/server/task"
)

type ApplyCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	eventsFile string
	taskID     string
	contextID  string
	notify     bool
}

// NewApplyCommand returns the apply command.
func NewApplyCommand(rootCmd *RootCommand, app *kingpin.Application) *ApplyCommand {
	c := &ApplyCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("apply", "Replay JSON-lines task events into the store.")
	c.Cmd.Arg("events-file", "File with one wire event per line, - for stdin.").Required().StringVar(&c.eventsFile)
	c.Cmd.Flag("task-id", "Bind the manager to this task before replaying.").StringVar(&c.taskID)
	c.Cmd.Flag("context-id", "Context ID of a task created by the replay.").StringVar(&c.contextID)
	c.Cmd.Flag("notify", "Send push notifications after each saved event.").BoolVar(&c.notify)

	return c
}

func (c ApplyCommand) Name() string { return c.Cmd.FullCommand() }

func (c ApplyCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	events, err := c.readEvents()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return errors.New("no events to apply")
	}

	s, err := c.rootCmd.openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := []task.ManagerOption{
		task.WithContextID(c.contextID),
		task.WithLogger(logger),
	}
	if c.taskID != "" {
		opts = append(opts, task.WithTaskID(c.taskID))
	}
	manager, err := task.NewTaskManager(s.tasks, opts...)
	if err != nil {
		return fmt.Errorf("could not create task manager: %w", err)
	}

	aggCfg := task.ResultAggregatorConfig{
		TaskManager: manager,
		Logger:      logger,
	}
	if c.notify {
		sender, err := c.rootCmd.newPushSender(s.configs)
		if err != nil {
			return fmt.Errorf("could not create push sender: %w", err)
		}
		aggCfg.PushSender = sender
	}
	aggregator, err := task.NewResultAggregator(aggCfg)
	if err != nil {
		return fmt.Errorf("could not create result aggregator: %w", err)
	}

	queue, err := event.NewEventQueue(len(events))
	if err != nil {
		return err
	}
	for _, ev := range events {
		if err := queue.Publish(ctx, ev); err != nil {
			return fmt.Errorf("could not enqueue event: %w", err)
		}
	}
	_ = queue.Close()

	consumer := event.NewEventConsumer(queue)
	result, err := aggregator.ConsumeAll(ctx, consumer.ConsumeAll(ctx))
	if err != nil {
		return fmt.Errorf("could not apply events: %w", err)
	}
	if n := queue.Size(); n > 0 {
		logger.WarnContext(ctx, "events after the final event were not applied", "count", n)
	}
	if result == nil {
		return errors.New("events produced no task")
	}

	logger.InfoContext(ctx, "events applied",
		"task_id", manager.TaskID(),
		"count", len(events)-queue.Size())

	return printJSON(c.rootCmd.Stdout, result)
}

func (c ApplyCommand) readEvents() ([]a2a.Event, error) {
	var r io.Reader = c.rootCmd.Stdin
	if c.eventsFile != "-" {
		f, err := os.Open(c.eventsFile)
		if err != nil {
			return nil, fmt.Errorf("could not open events file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var events []a2a.Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		ev, err := a2a.UnmarshalEvent(data)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		events = append(events, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read events: %w", err)
	}
	return events, nil
}

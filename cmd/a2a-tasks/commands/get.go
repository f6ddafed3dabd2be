// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	a2a "github.com/go-a2a/a2a-task"
)

type GetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
}

// NewGetCommand returns the get command.
func NewGetCommand(rootCmd *RootCommand, app *kingpin.Application) *GetCommand {
	c := &GetCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("get", "Print a stored task.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)

	return c
}

func (c GetCommand) Name() string { return c.Cmd.FullCommand() }

func (c GetCommand) Run(ctx context.Context) error {
	s, err := c.rootCmd.openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.tasks.Get(ctx, c.taskID)
	if err != nil {
		return fmt.Errorf("could not get task: %w", err)
	}
	if t == nil {
		return fmt.Errorf("%w: %s", a2a.ErrTaskNotFound, c.taskID)
	}

	return printJSON(c.rootCmd.Stdout, t)
}

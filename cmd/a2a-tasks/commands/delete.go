// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"
)

type DeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
}

// NewDeleteCommand returns the delete command.
func NewDeleteCommand(rootCmd *RootCommand, app *kingpin.Application) *DeleteCommand {
	c := &DeleteCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("delete", "Delete a stored task and its push notification configs.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)

	return c
}

func (c DeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c DeleteCommand) Run(ctx context.Context) error {
	s, err := c.rootCmd.openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.tasks.Delete(ctx, c.taskID); err != nil {
		return fmt.Errorf("could not delete task: %w", err)
	}
	if err := s.configs.DeleteInfo(ctx, c.taskID, ""); err != nil {
		return fmt.Errorf("could not delete push notification configs: %w", err)
	}
	c.rootCmd.Logger.InfoContext(ctx, "task deleted", "task_id", c.taskID)

	return printJSON(c.rootCmd.Stdout, map[string]string{"deleted": c.taskID})
}

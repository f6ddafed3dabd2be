// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	a2a "github.com/go-a2a/a2a-task"
)

type ListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	contextID string
	limit     int
	offset    int
}

// NewListCommand returns the list command.
func NewListCommand(rootCmd *RootCommand, app *kingpin.Application) *ListCommand {
	c := &ListCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("list", "List stored tasks ordered by ID.")
	c.Cmd.Flag("context-id", "Only list tasks of this context.").StringVar(&c.contextID)
	c.Cmd.Flag("limit", "Maximum number of tasks, 0 for all.").Default("50").IntVar(&c.limit)
	c.Cmd.Flag("offset", "Number of tasks to skip.").Default("0").IntVar(&c.offset)

	return c
}

func (c ListCommand) Name() string { return c.Cmd.FullCommand() }

type listOutput struct {
	Tasks []*a2a.Task `json:"tasks"`
	Total int64       `json:"total"`
}

func (c ListCommand) Run(ctx context.Context) error {
	if c.limit < 0 || c.offset < 0 {
		return fmt.Errorf("limit and offset must not be negative")
	}

	s, err := c.rootCmd.openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	tasks, err := s.tasks.List(ctx, c.contextID, c.limit, c.offset)
	if err != nil {
		return fmt.Errorf("could not list tasks: %w", err)
	}
	total, err := s.tasks.Count(ctx, c.contextID)
	if err != nil {
		return fmt.Errorf("could not count tasks: %w", err)
	}

	return printJSON(c.rootCmd.Stdout, listOutput{Tasks: tasks, Total: total})
}

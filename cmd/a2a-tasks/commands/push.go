// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-json-experiment/json"

	a2a "github.com/go-a2a/a2a-task"
	"github.com/go-a2a/a2a-task/server/task"
)

// NewPushCommand returns the parent of the push notification config commands.
func NewPushCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("push", "Manage push notification configs.")
}

type PushSetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
	url    string
	id     string
	token  string
}

// NewPushSetCommand returns the push set command.
func NewPushSetCommand(rootCmd *RootCommand, pushCmd *kingpin.CmdClause) *PushSetCommand {
	c := &PushSetCommand{rootCmd: rootCmd}

	c.Cmd = pushCmd.Command("set", "Register or replace a webhook for a task.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Arg("url", "Webhook URL.").Required().StringVar(&c.url)
	c.Cmd.Flag("id", "Config ID, defaults to the task ID.").StringVar(&c.id)
	c.Cmd.Flag("token", "Token sent with every notification.").StringVar(&c.token)

	return c
}

func (c PushSetCommand) Name() string { return c.Cmd.FullCommand() }

func (c PushSetCommand) Run(ctx context.Context) error {
	s, err := c.rootCmd.openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	config := &a2a.PushNotificationConfig{
		ID:    c.id,
		URL:   c.url,
		Token: c.token,
	}
	if err := s.configs.SetInfo(ctx, c.taskID, config); err != nil {
		return fmt.Errorf("could not set push notification config: %w", err)
	}

	configs, err := s.configs.GetInfo(ctx, c.taskID)
	if err != nil {
		return fmt.Errorf("could not get push notification configs: %w", err)
	}
	return printJSON(c.rootCmd.Stdout, configs)
}

type PushListCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
}

// NewPushListCommand returns the push list command.
func NewPushListCommand(rootCmd *RootCommand, pushCmd *kingpin.CmdClause) *PushListCommand {
	c := &PushListCommand{rootCmd: rootCmd}

	c.Cmd = pushCmd.Command("list", "List the webhooks of a task.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)

	return c
}

func (c PushListCommand) Name() string { return c.Cmd.FullCommand() }

func (c PushListCommand) Run(ctx context.Context) error {
	s, err := c.rootCmd.openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	configs, err := s.configs.GetInfo(ctx, c.taskID)
	if err != nil {
		return fmt.Errorf("could not get push notification configs: %w", err)
	}
	return printJSON(c.rootCmd.Stdout, configs)
}

type PushDeleteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskID string
	id     string
}

// NewPushDeleteCommand returns the push delete command.
func NewPushDeleteCommand(rootCmd *RootCommand, pushCmd *kingpin.CmdClause) *PushDeleteCommand {
	c := &PushDeleteCommand{rootCmd: rootCmd}

	c.Cmd = pushCmd.Command("delete", "Remove one or all webhooks of a task.")
	c.Cmd.Arg("task-id", "ID of the task.").Required().StringVar(&c.taskID)
	c.Cmd.Flag("id", "Config ID; all configs of the task when empty.").StringVar(&c.id)

	return c
}

func (c PushDeleteCommand) Name() string { return c.Cmd.FullCommand() }

func (c PushDeleteCommand) Run(ctx context.Context) error {
	s, err := c.rootCmd.openStores(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.configs.DeleteInfo(ctx, c.taskID, c.id); err != nil {
		return fmt.Errorf("could not delete push notification config: %w", err)
	}

	configs, err := s.configs.GetInfo(ctx, c.taskID)
	if err != nil {
		return fmt.Errorf("could not get push notification configs: %w", err)
	}
	return printJSON(c.rootCmd.Stdout, configs)
}

type PushKeygenCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	keyFile string
	kid     string
}

// NewPushKeygenCommand returns the push keygen command.
func NewPushKeygenCommand(rootCmd *RootCommand, pushCmd *kingpin.CmdClause) *PushKeygenCommand {
	c := &PushKeygenCommand{rootCmd: rootCmd}

	c.Cmd = pushCmd.Command("keygen", "Generate a notification signing key and print its public key set.")
	c.Cmd.Arg("key-file", "Where to write the private JWK.").Required().StringVar(&c.keyFile)
	c.Cmd.Flag("kid", "Key ID.").Default("a2a-push").StringVar(&c.kid)

	return c
}

func (c PushKeygenCommand) Name() string { return c.Cmd.FullCommand() }

func (c PushKeygenCommand) Run(ctx context.Context) error {
	key, err := task.GenerateSigningKey(c.kid)
	if err != nil {
		return err
	}

	data, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("could not encode signing key: %w", err)
	}
	if err := os.WriteFile(c.keyFile, data, 0o600); err != nil {
		return fmt.Errorf("could not write signing key: %w", err)
	}
	c.rootCmd.Logger.InfoContext(ctx, "signing key written", "path", c.keyFile, "kid", c.kid)

	set, err := task.PublicKeySet(key)
	if err != nil {
		return err
	}
	return printJSON(c.rootCmd.Stdout, set)
}

// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

// Command a2a-tasks inspects and edits the task and push notification stores
// used by A2A agents.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/run"

	"github.com/go-a2a/a2a-task/cmd/a2a-tasks/commands"
)

// Version is the application version (set via ldflags).
var Version = "dev"

// Run runs the main application.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	app := kingpin.New("a2a-tasks", "A2A task store tool.")
	app.Version(Version)
	app.Writers(stdout, stderr)
	app.Terminate(nil)
	rootCmd := commands.NewRootCommand(app)

	getCmd := commands.NewGetCommand(rootCmd, app)
	listCmd := commands.NewListCommand(rootCmd, app)
	deleteCmd := commands.NewDeleteCommand(rootCmd, app)
	applyCmd := commands.NewApplyCommand(rootCmd, app)

	// Push notification config subcommands share a parent command.
	pushCmd := commands.NewPushCommand(app)
	pushSetCmd := commands.NewPushSetCommand(rootCmd, pushCmd)
	pushListCmd := commands.NewPushListCommand(rootCmd, pushCmd)
	pushDeleteCmd := commands.NewPushDeleteCommand(rootCmd, pushCmd)
	pushKeygenCmd := commands.NewPushKeygenCommand(rootCmd, pushCmd)

	cmds := map[string]commands.Command{
		getCmd.Name():        getCmd,
		listCmd.Name():       listCmd,
		deleteCmd.Name():     deleteCmd,
		applyCmd.Name():      applyCmd,
		pushSetCmd.Name():    pushSetCmd,
		pushListCmd.Name():   pushListCmd,
		pushDeleteCmd.Name(): pushDeleteCmd,
		pushKeygenCmd.Name(): pushKeygenCmd,
	}

	cmdName, err := app.Parse(args[1:])
	if err != nil {
		return fmt.Errorf("invalid command configuration: %w", err)
	}
	cmd, ok := cmds[cmdName]
	if !ok {
		return fmt.Errorf("unknown command %q", cmdName)
	}

	rootCmd.Stdin = stdin
	rootCmd.Stdout = stdout
	rootCmd.Stderr = stderr

	if err := rootCmd.LoadConfig(); err != nil {
		return err
	}
	rootCmd.Logger = rootCmd.NewLogger()
	rootCmd.Logger.Debug("debug level is enabled", "version", Version)

	var g run.Group

	// OS signals.
	{
		signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer signalCancel()

		g.Add(
			func() error {
				<-signalCtx.Done()
				rootCmd.Logger.Debug("termination signal received")
				return nil
			},
			func(_ error) {
				signalCancel()
			},
		)
	}

	// Execute command.
	{
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g.Add(
			func() error {
				if err := cmd.Run(ctx); err != nil {
					return fmt.Errorf("%q command failed: %w", cmdName, err)
				}
				return nil
			},
			func(_ error) {
				cancel()
			},
		)
	}

	return g.Run()
}

func main() {
	ctx := context.Background()
	if err := Run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

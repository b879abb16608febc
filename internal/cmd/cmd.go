// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the fromusage command line: one-shot synthesis
// at a position, and an MCP server exposing the same operation as a tool.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fromusage/fromusage/internal/cache"
	"github.com/fromusage/fromusage/internal/oracle"
	"github.com/fromusage/fromusage/internal/oracle/lsp"
	"github.com/fromusage/fromusage/internal/settings"
	"github.com/fromusage/fromusage/internal/synth"
)

// Version is the fromusage version reported by the version command and
// the MCP server. Builds from a module report the module version.
var Version = "(devel)"

// Application is the main application as passed to Run. It holds the
// global flags and the state set up before a subcommand runs.
type Application struct {
	// Config is the settings file named by -config.
	Config string

	// Verbose enables debug logging and extra output.
	Verbose bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Dial connects the oracle used by a session. New sets it to start
	// the configured language server.
	Dial func(ctx context.Context, session *cache.Session, opts *settings.Options, logger *slog.Logger) (oracle.Oracle, error)

	opts   *settings.Options
	logger *slog.Logger
}

// New returns a new Application reading and writing the given streams.
func New(stdin io.Reader, stdout, stderr io.Writer) *Application {
	return &Application{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Dial:   dialServer,
	}
}

func dialServer(ctx context.Context, session *cache.Session, opts *settings.Options, logger *slog.Logger) (oracle.Oracle, error) {
	c, err := lsp.Dial(ctx, session, opts, logger)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Command returns the root command and its subcommands.
func (app *Application) Command() *cobra.Command {
	root := &cobra.Command{
		Use:   "fromusage",
		Short: "Synthesize TypeScript values from how they are used",
		Long: `fromusage creates a value for an identifier passed to a call, from the
type of the parameter it is passed as. Parameter types come from a
TypeScript language server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}
	root.SetIn(app.Stdin)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&app.Config, "config", "", "settings file (default "+settings.DefaultFile+" if present)")
	flags.BoolVarP(&app.Verbose, "verbose", "v", false, "log at debug level and print signatures")

	root.AddCommand(
		app.synthCommand(),
		app.mcpCommand(),
		app.versionCommand(),
	)
	return root
}

// Run executes the command line args and returns the process exit
// code: 1 when no value could be synthesized, 2 for any other error.
func (app *Application) Run(ctx context.Context, args []string) int {
	root := app.Command()
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var failure *synth.Failure
	switch {
	case errors.As(err, &failure):
		color.New(color.FgRed).Fprintln(app.Stderr, failure.Error())
		if app.Verbose {
			fmt.Fprintf(app.Stderr, "reason: %s\n", failure.Detail())
		}
		return 1
	case errors.Is(err, errNotTypeScript):
		color.New(color.FgRed).Fprintln(app.Stderr, err)
		return 1
	default:
		fmt.Fprintf(app.Stderr, "fromusage: %v\n", err)
		return 2
	}
}

// setup loads the settings and creates the logger.
func (app *Application) setup() error {
	opts, err := settings.Load(app.Config)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	level := opts.Level()
	if app.Verbose {
		level = slog.LevelDebug
	}
	app.opts = opts
	app.logger = slog.New(slog.NewTextHandler(app.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// newCreator creates a session and connects its oracle.
func (app *Application) newCreator(ctx context.Context) (*synth.Creator, error) {
	session, err := cache.NewSession(app.opts, app.logger)
	if err != nil {
		return nil, err
	}
	o, err := app.Dial(ctx, session, app.opts, app.logger)
	if err != nil {
		session.Close()
		return nil, fmt.Errorf("connecting to language server: %w", err)
	}
	return synth.New(session, o, app.opts, app.logger), nil
}

func (app *Application) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the fromusage version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fromusage %s\n", version())
			return nil
		},
	}
}

func version() string {
	if Version != "(devel)" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return Version
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/cellery-io/cellery-dev/internal/config"
	"github.com/cellery-io/cellery-dev/internal/dispatch"
	"github.com/cellery-io/cellery-dev/internal/host"
	"github.com/cellery-io/cellery-dev/internal/logging"
	"github.com/cellery-io/cellery-dev/internal/notify"
	"github.com/cellery-io/cellery-dev/internal/prompt"
	"github.com/cellery-io/cellery-dev/internal/tmux"
	"github.com/cellery-io/cellery-dev/internal/workspace"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// app is everything an action command needs, wired from configuration.
type app struct {
	cfg        *config.Config
	logger     *logging.Logger
	notifier   *notify.Notifier
	factory    *tmux.Factory
	dispatcher *dispatch.Dispatcher
}

// newApp loads the configuration, resolves the workspace for file and wires
// the dispatcher to the terminal-backed host.
func newApp(cmd *cobra.Command, file string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	root, _ := cmd.Flags().GetString("workspace")
	ws, err := workspace.Resolve(cmd.Context(), workspace.Options{File: file, Root: root})
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	notifier := notify.New(cmd.ErrOrStderr())
	factory := tmux.NewFactory(cfg.Terminal, logger)
	h := host.Host{
		Prompter:  prompt.New(os.Stdin, os.Stderr),
		Workspace: ws,
		Terminals: factory,
		Notifier:  notifier,
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		notifier:   notifier,
		factory:    factory,
		dispatcher: dispatch.New(h, cfg.Tool, logger),
	}, nil
}

func newLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.ResolveDir(), cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// Close releases the log file.
func (a *app) Close() {
	_ = a.logger.Close()
}

// actionFlags are the flags shared by build and run.
type actionFlags struct {
	attach bool
	copy   bool
}

func addActionFlags(cmd *cobra.Command, flags *actionFlags) {
	cmd.Flags().BoolVar(&flags.attach, "attach", false, "Attach to the tmux session after sending the command (default from terminal.attach)")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Copy the command line to the clipboard")
}

// shouldAttach resolves --attach against terminal.attach.
func (a *app) shouldAttach(cmd *cobra.Command, flags *actionFlags) bool {
	if cmd.Flags().Changed("attach") {
		return flags.attach
	}
	return a.cfg.Terminal.Attach
}

// report tells the user where the command went.
func (a *app) report(result *dispatch.Result) {
	a.notifier.ShowCommand(result.Terminal.Name(), result.CommandLine)
	if s, ok := result.Terminal.(*tmux.Session); ok {
		a.notifier.ShowInfo("attach with: " + s.AttachCommand())
	}
}

// finish runs the optional steps after a successful dispatch.
func (a *app) finish(ctx context.Context, cmd *cobra.Command, flags *actionFlags, result *dispatch.Result) error {
	if flags.copy {
		a.copyCommandLine(result.CommandLine)
	}

	if !a.shouldAttach(cmd, flags) {
		a.report(result)
		return nil
	}

	s, ok := result.Terminal.(*tmux.Session)
	if !ok {
		return nil
	}
	return s.Attach(ctx)
}

// copyCommandLine puts commandLine on the clipboard. Failure only warns.
func (a *app) copyCommandLine(commandLine string) {
	if err := writeClipboard(commandLine); err != nil {
		a.logger.Warn("failed to copy command line", "error", err.Error())
		a.notifier.ShowWarning("could not copy the command line to the clipboard")
	}
}

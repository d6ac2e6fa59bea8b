// Package dispatch implements the build and run actions: it collects the
// cell and instance names, formats the cellery command line and sends it to
// a terminal owned by the action.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/cellery-io/cellery-dev/internal/config"
	"github.com/cellery-io/cellery-dev/internal/errors"
	"github.com/cellery-io/cellery-dev/internal/host"
	"github.com/cellery-io/cellery-dev/internal/logging"
)

// Request is a fully resolved action invocation.
type Request struct {
	Action       Action
	FilePath     string
	CellName     string
	InstanceName string // run only
	Cwd          string
}

// CommandLine formats the shell command the request sends.
func (r Request) CommandLine(tool config.ToolConfig) string {
	if r.Action == ActionRun {
		return RunCommandLine(tool, r.FilePath, r.CellName, r.InstanceName)
	}
	return BuildCommandLine(tool, r.FilePath, r.CellName)
}

// Result describes a dispatched command.
type Result struct {
	Request     Request
	CommandLine string
	Terminal    host.Terminal
}

// Dispatcher runs actions against a host.
type Dispatcher struct {
	host     host.Host
	tool     config.ToolConfig
	registry *Registry
	logger   *logging.Logger
}

// New creates a Dispatcher with its own terminal registry.
func New(h host.Host, tool config.ToolConfig, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Dispatcher{
		host:     h,
		tool:     tool,
		registry: NewRegistry(logger),
		logger:   logger,
	}
}

// Registry returns the registry holding the action terminals.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Build prompts for a cell name and sends the build command for the active
// file to the build terminal.
func (d *Dispatcher) Build(ctx context.Context) (*Result, error) {
	cellName := d.prompt(ctx, ActionBuild, host.PromptOptions{
		Prompt:      CellNamePrompt,
		Placeholder: d.tool.CellNamePlaceholder(),
	})

	file, hasFile := d.host.Workspace.ActiveFilePath()
	root, hasRoot := d.host.Workspace.WorkspaceRoot()

	var missing []string
	if cellName == "" {
		missing = append(missing, "cell name")
	}
	missing = append(missing, missingContext(file, hasFile, root, hasRoot)...)
	if len(missing) > 0 {
		return nil, d.fail(ActionBuild, missing)
	}

	return d.Dispatch(ctx, Request{
		Action:   ActionBuild,
		FilePath: file,
		CellName: cellName,
		Cwd:      root,
	})
}

// Run prompts for a cell name and an instance name, then sends the chained
// build, run and logs commands to the run terminal.
func (d *Dispatcher) Run(ctx context.Context) (*Result, error) {
	cellName := d.prompt(ctx, ActionRun, host.PromptOptions{
		Prompt:      CellNamePrompt,
		Placeholder: d.tool.CellNamePlaceholder(),
	})

	file, hasFile := d.host.Workspace.ActiveFilePath()
	instanceName := d.prompt(ctx, ActionRun, host.PromptOptions{
		Prompt: InstanceNamePrompt,
		Value:  DefaultInstanceName(file, hasFile, d.tool.DefaultInstance),
	})

	root, hasRoot := d.host.Workspace.WorkspaceRoot()

	var missing []string
	if cellName == "" {
		missing = append(missing, "cell name")
	}
	if instanceName == "" {
		missing = append(missing, "instance name")
	}
	missing = append(missing, missingContext(file, hasFile, root, hasRoot)...)
	if len(missing) > 0 {
		return nil, d.fail(ActionRun, missing)
	}

	return d.Dispatch(ctx, Request{
		Action:       ActionRun,
		FilePath:     file,
		CellName:     cellName,
		InstanceName: instanceName,
		Cwd:          root,
	})
}

// Dispatch sends an already resolved request: it retires the action's
// previous terminal, creates a fresh one, shows it and sends the command.
// Build and Run call it after prompting; watch mode calls it directly.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Result, error) {
	log := d.logger.WithAction(req.Action.String())
	title := req.Action.TerminalTitle()
	commandLine := req.CommandLine(d.tool)

	term, err := d.registry.Replace(req.Action, func() (host.Terminal, error) {
		return d.host.Terminals.CreateTerminal(ctx, host.TerminalOptions{Name: title, Cwd: req.Cwd})
	})
	if err != nil {
		log.Error("failed to create terminal", "terminal", title, "error", err.Error())
		return nil, fmt.Errorf("failed to create %s terminal: %w", req.Action, err)
	}

	if err := term.Show(); err != nil {
		log.Warn("failed to show terminal", "terminal", title, "error", err.Error())
	}

	if err := term.SendText(commandLine); err != nil {
		log.Error("failed to send command", "terminal", title, "error", err.Error())
		return nil, fmt.Errorf("failed to send %s command: %w", req.Action, err)
	}

	log.Info("command dispatched",
		"terminal", title,
		"file", req.FilePath,
		"cell", req.CellName,
		"instance", req.InstanceName,
		"cwd", req.Cwd)

	return &Result{Request: req, CommandLine: commandLine, Terminal: term}, nil
}

// prompt returns the trimmed text entered by the user. A dismissed or
// failed prompt yields an empty string.
func (d *Dispatcher) prompt(ctx context.Context, action Action, opts host.PromptOptions) string {
	text, ok, err := d.host.Prompter.PromptText(ctx, opts)
	if err != nil {
		d.logger.WithAction(action.String()).Warn("prompt failed", "prompt", opts.Prompt, "error", err.Error())
		return ""
	}
	if !ok {
		return ""
	}
	return strings.TrimSpace(text)
}

// fail shows the action's generic error message. Which precondition failed
// is only carried in the returned error.
func (d *Dispatcher) fail(action Action, missing []string) error {
	d.host.Notifier.ShowError(action.FailureMessage())
	return errors.NewPreconditionError(action.String(), missing...)
}

func missingContext(file string, hasFile bool, root string, hasRoot bool) []string {
	var missing []string
	if !hasFile || file == "" {
		missing = append(missing, "active file")
	}
	if !hasRoot || root == "" {
		missing = append(missing, "workspace root")
	}
	return missing
}

// Package host defines the capabilities the dispatcher needs from its
// environment: prompting, workspace introspection, terminal lifecycle and
// error display. The CLI wires concrete implementations from the prompt,
// workspace, tmux and notify packages; tests wire fakes.
package host

import "context"

// PromptOptions configures a single free-text prompt.
type PromptOptions struct {
	// Prompt is the question shown to the user.
	Prompt string
	// Placeholder is shown greyed-out while the input is empty.
	Placeholder string
	// Value pre-fills the input with an editable default.
	Value string
}

// Prompter collects free text from the user.
type Prompter interface {
	// PromptText shows a prompt and blocks until the user submits or
	// dismisses it. ok is false when the prompt was dismissed.
	PromptText(ctx context.Context, opts PromptOptions) (text string, ok bool, err error)
}

// Workspace exposes the active file and the workspace root.
type Workspace interface {
	// ActiveFilePath returns the file currently being worked on.
	ActiveFilePath() (string, bool)
	// WorkspaceRoot returns the directory terminals are rooted at.
	WorkspaceRoot() (string, bool)
}

// TerminalOptions describes a terminal to create.
type TerminalOptions struct {
	// Name is the human readable title of the terminal.
	Name string
	// Cwd is the directory the shell starts in.
	Cwd string
}

// Terminal is an interactive shell surface.
type Terminal interface {
	// Name returns the terminal title.
	Name() string
	// Show reveals the terminal to the user without waiting on it.
	Show() error
	// SendText writes text followed by a newline to the shell.
	SendText(text string) error
	// Dispose terminates the terminal. Disposing twice is a no-op.
	Dispose() error
}

// TerminalFactory creates terminals.
type TerminalFactory interface {
	CreateTerminal(ctx context.Context, opts TerminalOptions) (Terminal, error)
}

// Notifier displays messages to the user.
type Notifier interface {
	ShowError(message string)
}

// Host bundles every capability the dispatcher consumes.
type Host struct {
	Prompter  Prompter
	Workspace Workspace
	Terminals TerminalFactory
	Notifier  Notifier
}

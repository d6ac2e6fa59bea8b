// Package hosttest provides in-memory implementations of the host
// capabilities for tests. Every fake appends to a shared event log so tests
// can assert the order of prompts, terminal operations and error displays.
package hosttest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cellery-io/cellery-dev/internal/host"
)

// Events records operations in the order they happen.
type Events struct {
	mu     sync.Mutex
	events []string
}

// Add appends a formatted event.
func (e *Events) Add(format string, args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, fmt.Sprintf(format, args...))
}

// All returns a copy of the recorded events.
func (e *Events) All() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.events...)
}

// Reset clears the recorded events.
func (e *Events) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = nil
}

// Answer is a scripted prompt response.
type Answer struct {
	Text string
	OK   bool
	Err  error
}

// Submit returns an answer for a submitted prompt.
func Submit(text string) Answer { return Answer{Text: text, OK: true} }

// Dismiss returns an answer for a dismissed prompt.
func Dismiss() Answer { return Answer{} }

// Prompter answers prompts from a script, in order. Running out of answers
// behaves like dismissal.
type Prompter struct {
	events  *Events
	mu      sync.Mutex
	answers []Answer
	Asked   []host.PromptOptions
}

// PromptText implements host.Prompter.
func (p *Prompter) PromptText(_ context.Context, opts host.PromptOptions) (string, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Asked = append(p.Asked, opts)
	p.events.Add("prompt %q", opts.Prompt)
	if len(p.answers) == 0 {
		return "", false, nil
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a.Text, a.OK, a.Err
}

// Script replaces the remaining answers.
func (p *Prompter) Script(answers ...Answer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.answers = answers
}

// Workspace returns fixed values.
type Workspace struct {
	File    string
	HasFile bool
	Root    string
	HasRoot bool
}

// ActiveFilePath implements host.Workspace.
func (w *Workspace) ActiveFilePath() (string, bool) { return w.File, w.HasFile }

// WorkspaceRoot implements host.Workspace.
func (w *Workspace) WorkspaceRoot() (string, bool) { return w.Root, w.HasRoot }

// Terminal records what is done to it.
type Terminal struct {
	ID       int
	Title    string
	Cwd      string
	events   *Events
	mu       sync.Mutex
	Sent     []string
	Shown    int
	Disposed bool

	ShowErr    error
	SendErr    error
	DisposeErr error
}

// Name implements host.Terminal.
func (t *Terminal) Name() string { return t.Title }

// Show implements host.Terminal.
func (t *Terminal) Show() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Shown++
	t.events.Add("show #%d", t.ID)
	return t.ShowErr
}

// SendText implements host.Terminal.
func (t *Terminal) SendText(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events.Add("send #%d %s", t.ID, text)
	if t.SendErr != nil {
		return t.SendErr
	}
	t.Sent = append(t.Sent, text)
	return nil
}

// Dispose implements host.Terminal.
func (t *Terminal) Dispose() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Disposed = true
	t.events.Add("dispose #%d", t.ID)
	return t.DisposeErr
}

// Factory creates recording terminals.
type Factory struct {
	events    *Events
	mu        sync.Mutex
	Created   []*Terminal
	CreateErr error
	// Configure, when set, is applied to every new terminal before it is returned.
	Configure func(*Terminal)
}

// CreateTerminal implements host.TerminalFactory.
func (f *Factory) CreateTerminal(_ context.Context, opts host.TerminalOptions) (host.Terminal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateErr != nil {
		f.events.Add("create-failed %q", opts.Name)
		return nil, f.CreateErr
	}
	t := &Terminal{ID: len(f.Created) + 1, Title: opts.Name, Cwd: opts.Cwd, events: f.events}
	if f.Configure != nil {
		f.Configure(t)
	}
	f.Created = append(f.Created, t)
	f.events.Add("create #%d %q cwd=%s", t.ID, opts.Name, opts.Cwd)
	return t, nil
}

// Notifier records error messages.
type Notifier struct {
	events *Events
	mu     sync.Mutex
	Errors []string
}

// ShowError implements host.Notifier.
func (n *Notifier) ShowError(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Errors = append(n.Errors, message)
	n.events.Add("error %q", message)
}

// Fakes bundles one of each fake sharing an event log.
type Fakes struct {
	Events    *Events
	Prompter  *Prompter
	Workspace *Workspace
	Factory   *Factory
	Notifier  *Notifier
}

// New creates a set of fakes with a workspace containing file and root.
func New(file, root string) *Fakes {
	events := &Events{}
	return &Fakes{
		Events:    events,
		Prompter:  &Prompter{events: events},
		Workspace: &Workspace{File: file, HasFile: file != "", Root: root, HasRoot: root != ""},
		Factory:   &Factory{events: events},
		Notifier:  &Notifier{events: events},
	}
}

// Host returns a host.Host wired to the fakes.
func (f *Fakes) Host() host.Host {
	return host.Host{
		Prompter:  f.Prompter,
		Workspace: f.Workspace,
		Terminals: f.Factory,
		Notifier:  f.Notifier,
	}
}

// TerminalEvents returns the recorded events that touched a terminal.
func (f *Fakes) TerminalEvents() []string {
	var out []string
	for _, e := range f.Events.All() {
		for _, prefix := range []string{"create", "show", "send", "dispose"} {
			if strings.HasPrefix(e, prefix) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}


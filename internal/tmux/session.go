package tmux

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/cellery-io/cellery-dev/internal/config"
	"github.com/cellery-io/cellery-dev/internal/errors"
	"github.com/cellery-io/cellery-dev/internal/host"
	"github.com/cellery-io/cellery-dev/internal/logging"
)

// Session is a detached tmux session holding an interactive shell.
// It implements host.Terminal.
type Session struct {
	title       string // human readable terminal title
	sessionName string // tmux session name
	socketName  string // tmux socket for isolation
	cwd         string
	run         Runner

	mu      sync.Mutex
	running bool
}

// Name returns the terminal title.
func (s *Session) Name() string {
	return s.title
}

// SessionName returns the tmux session name.
func (s *Session) SessionName() string {
	return s.sessionName
}

// SocketName returns the tmux socket used for this session.
func (s *Session) SocketName() string {
	return s.socketName
}

// Cwd returns the directory the shell was started in.
func (s *Session) Cwd() string {
	return s.cwd
}

// IsRunning returns whether the session has not been disposed.
func (s *Session) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Show labels the session's window with the terminal title so it is
// recognisable once attached. It never blocks on the user.
func (s *Session) Show() error {
	if !s.IsRunning() {
		return errors.NewTerminalError("rename-window", s.sessionName, errors.ErrTerminalNotRunning)
	}
	if _, err := s.run(context.Background(), "rename-window", "-t", windowTarget(s.sessionName), s.title); err != nil {
		return errors.NewTerminalError("rename-window", s.sessionName, err)
	}
	return nil
}

// SendText types text into the shell literally and presses Enter.
func (s *Session) SendText(text string) error {
	if !s.IsRunning() {
		return errors.NewTerminalError("send-keys", s.sessionName, errors.ErrTerminalNotRunning)
	}

	ctx := context.Background()
	if _, err := s.run(ctx, "send-keys", "-t", windowTarget(s.sessionName), "-l", text); err != nil {
		return errors.NewTerminalError("send-keys", s.sessionName, err)
	}
	if _, err := s.run(ctx, "send-keys", "-t", windowTarget(s.sessionName), "Enter"); err != nil {
		return errors.NewTerminalError("send-keys", s.sessionName, err)
	}
	return nil
}

// Dispose kills the tmux session. A session that is already gone is not an error.
func (s *Session) Dispose() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.run(context.Background(), "kill-session", "-t", exactTarget(s.sessionName)); err != nil && !isSessionNotFoundError(err) {
		return errors.NewTerminalError("kill-session", s.sessionName, err)
	}
	return nil
}

// AttachCommand returns the command to attach to this session.
func (s *Session) AttachCommand() string {
	return fmt.Sprintf("tmux -L %s attach -t %s", s.socketName, s.sessionName)
}

// Attach connects the calling terminal to the session and blocks until the
// user detaches. TMUX is removed from the environment so attaching from
// inside another tmux client works.
func (s *Session) Attach(ctx context.Context) error {
	if !s.IsRunning() {
		return errors.NewTerminalError("attach", s.sessionName, errors.ErrTerminalNotRunning)
	}

	cmd := CommandContext(ctx, s.socketName, "attach-session", "-t", exactTarget(s.sessionName))
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = withoutEnv(os.Environ(), "TMUX")
	if err := cmd.Run(); err != nil {
		return errors.NewTerminalError("attach", s.sessionName, err)
	}
	return nil
}

// exactTarget prevents tmux from resolving a session target by prefix.
func exactTarget(name string) string {
	return "=" + name
}

// windowTarget addresses the current window of the exactly named session.
func windowTarget(name string) string {
	return exactTarget(name) + ":"
}

func withoutEnv(env []string, key string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		if strings.HasPrefix(kv, key+"=") {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// Factory creates tmux sessions on a single socket.
// It implements host.TerminalFactory.
type Factory struct {
	socketName   string
	width        int
	height       int
	historyLimit int
	run          Runner
	logger       *logging.Logger
}

// NewFactory creates a Factory from the terminal configuration.
func NewFactory(cfg config.TerminalConfig, logger *logging.Logger) *Factory {
	return NewFactoryWithRunner(cfg, SocketRunner(cfg.Socket), logger)
}

// NewFactoryWithRunner creates a Factory that executes tmux through run.
func NewFactoryWithRunner(cfg config.TerminalConfig, run Runner, logger *logging.Logger) *Factory {
	if logger == nil {
		logger = logging.NopLogger()
	}
	socket := cfg.Socket
	if socket == "" {
		socket = DefaultSocket
	}
	return &Factory{
		socketName:   socket,
		width:        cfg.Width,
		height:       cfg.Height,
		historyLimit: cfg.HistoryLimit,
		run:          run,
		logger:       logger,
	}
}

// SocketName returns the tmux socket sessions are created on.
func (f *Factory) SocketName() string {
	return f.socketName
}

// CreateTerminal starts a detached tmux session rooted at opts.Cwd.
// A leftover session with the same name, for example from an earlier
// cellery-dev process, is killed first.
func (f *Factory) CreateTerminal(ctx context.Context, opts host.TerminalOptions) (host.Terminal, error) {
	name := SessionName(opts.Name)
	if name == "" {
		return nil, fmt.Errorf("invalid terminal name %q", opts.Name)
	}

	if err := f.KillSession(ctx, name); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, errors.ErrTmuxUnavailable
		}
		f.logger.Warn("failed to cleanup existing tmux session", "session", name, "error", err.Error())
	}

	width := f.width
	if width == 0 {
		width = 200
	}
	height := f.height
	if height == 0 {
		height = 50
	}

	// history-limit only applies to panes created after it is set, so it has
	// to be global and set before new-session. With no server running yet
	// the option cannot be set and the tmux default applies.
	if f.historyLimit > 0 {
		if _, err := f.run(ctx, "set-option", "-g", "history-limit", strconv.Itoa(f.historyLimit)); err != nil {
			f.logger.Debug("failed to set global history-limit", "error", err.Error())
		}
	}

	args := []string{
		"new-session",
		"-d",
		"-s", name,
		"-x", strconv.Itoa(width),
		"-y", strconv.Itoa(height),
	}
	if opts.Cwd != "" {
		args = append(args, "-c", opts.Cwd)
	}
	if _, err := f.run(ctx, args...); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, errors.ErrTmuxUnavailable
		}
		return nil, errors.NewTerminalError("new-session", name, err)
	}

	if _, err := f.run(ctx, "set-option", "-t", exactTarget(name), "default-terminal", "xterm-256color"); err != nil {
		f.logger.Warn("failed to set default-terminal", "session", name, "error", err.Error())
	}

	f.logger.Debug("tmux session created", "session", name, "socket", f.socketName, "cwd", opts.Cwd)

	return &Session{
		title:       opts.Name,
		sessionName: name,
		socketName:  f.socketName,
		cwd:         opts.Cwd,
		run:         f.run,
		running:     true,
	}, nil
}

// ListSessions returns the names of all sessions on the factory's socket.
// A socket with no server running has no sessions.
func (f *Factory) ListSessions(ctx context.Context) ([]string, error) {
	out, err := f.run(ctx, "list-sessions", "-F", "#{session_name}")
	if err != nil {
		if isSessionNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list tmux sessions: %w", err)
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// KillSession kills the named session. A missing session is not an error.
func (f *Factory) KillSession(ctx context.Context, name string) error {
	if _, err := f.run(ctx, "kill-session", "-t", exactTarget(name)); err != nil && !isSessionNotFoundError(err) {
		return err
	}
	return nil
}

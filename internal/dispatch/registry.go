package dispatch

import (
	"sync"

	"github.com/cellery-io/cellery-dev/internal/host"
	"github.com/cellery-io/cellery-dev/internal/logging"
)

// Registry holds at most one live terminal per action.
// It is safe for concurrent use; Replace is serialised so two invocations
// of the same action cannot leak a terminal.
type Registry struct {
	mu        sync.Mutex
	terminals map[Action]host.Terminal
	logger    *logging.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Registry{
		terminals: make(map[Action]host.Terminal),
		logger:    logger,
	}
}

// Get returns the live terminal for action, if any.
func (r *Registry) Get(action Action) (host.Terminal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.terminals[action]
	return t, ok
}

// Len returns the number of live terminals.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.terminals)
}

// Replace retires the terminal held for action, then creates and stores a
// new one. The old terminal is removed before it is disposed, and a dispose
// failure does not prevent the replacement. If create fails, action is left
// without a terminal.
func (r *Registry) Replace(action Action, create func() (host.Terminal, error)) (host.Terminal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.terminals[action]; ok {
		delete(r.terminals, action)
		if err := old.Dispose(); err != nil {
			r.logger.Warn("failed to dispose previous terminal",
				"action", action.String(),
				"terminal", old.Name(),
				"error", err.Error())
		}
	}

	t, err := create()
	if err != nil {
		return nil, err
	}
	r.terminals[action] = t
	return t, nil
}

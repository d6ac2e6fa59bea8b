// Package watch triggers a callback when a file is saved.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cellery-io/cellery-dev/internal/logging"
)

// DefaultDebounce is used when a non-positive debounce is configured.
const DefaultDebounce = 300 * time.Millisecond

// Watcher reports saves of a single file.
//
// The parent directory is watched rather than the file itself, since many
// editors save by writing a temp file and renaming it over the original.
type Watcher struct {
	watcher  *fsnotify.Watcher
	file     string
	debounce time.Duration
	logger   *logging.Logger

	closeOnce sync.Once
}

// New creates a Watcher for file. Saves within debounce of each other are
// reported once.
func New(file string, debounce time.Duration, logger *logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", file, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher:  w,
		file:     filepath.Clean(abs),
		debounce: debounce,
		logger:   logger.With("file", abs),
	}, nil
}

// Run calls onChange after each debounced save until ctx is done or the
// watcher is closed. onChange runs on the watcher goroutine, so saves made
// while it runs are coalesced into the next call.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.Close()

	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			pending = true
			debounceTimer.Reset(w.debounce)

		case <-debounceTimer.C:
			if !pending {
				continue
			}
			pending = false
			w.logger.Debug("file changed")
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err.Error())
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.file {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create) != 0
}

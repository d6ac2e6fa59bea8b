//go:build integration

package tmux

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/cellery-io/cellery-dev/internal/config"
	"github.com/cellery-io/cellery-dev/internal/host"
	"github.com/cellery-io/cellery-dev/internal/testutil"
)

func TestSession_RealTmux(t *testing.T) {
	testutil.SkipIfNoTmux(t)

	socket := fmt.Sprintf("cellery-it-%d", os.Getpid())
	factory := NewFactory(config.TerminalConfig{Socket: socket, Width: 100, Height: 30}, nil)
	ctx := context.Background()
	dir := t.TempDir()

	term, err := factory.CreateTerminal(ctx, host.TerminalOptions{Name: "Cellery Build", Cwd: dir})
	if err != nil {
		t.Fatalf("CreateTerminal() error = %v", err)
	}
	t.Cleanup(func() {
		_ = term.Dispose()
		_ = Command(socket, "kill-server").Run()
	})

	if err := term.Show(); err != nil {
		t.Fatalf("Show() error = %v", err)
	}

	marker := filepath.Join(dir, "marker")
	if err := term.SendText("touch " + marker); err != nil {
		t.Fatalf("SendText() error = %v", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		if _, err := os.Stat(marker); err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("command sent to the session never ran")
		}
		time.Sleep(50 * time.Millisecond)
	}

	names, err := factory.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if !slices.Contains(names, "cellery-build") {
		t.Errorf("ListSessions() = %v, want cellery-build", names)
	}

	// Creating the same terminal again replaces the running session.
	again, err := factory.CreateTerminal(ctx, host.TerminalOptions{Name: "Cellery Build", Cwd: dir})
	if err != nil {
		t.Fatalf("second CreateTerminal() error = %v", err)
	}
	names, _ = factory.ListSessions(ctx)
	if len(names) != 1 {
		t.Errorf("expected exactly one session after replacement, got %v", names)
	}

	if err := again.Dispose(); err != nil {
		t.Fatalf("Dispose() error = %v", err)
	}
	names, _ = factory.ListSessions(ctx)
	if len(names) != 0 {
		t.Errorf("expected no sessions after Dispose, got %v", names)
	}
}

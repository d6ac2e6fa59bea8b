// Package tmux provides the tmux-backed terminals that commands are sent to.
//
// All cellery-dev sessions live on a dedicated tmux socket (default
// "cellery") so they never collide with the user's own tmux server. Each
// dispatcher action owns one session, named after the terminal title
// ("Cellery Build" becomes "cellery-build").
package tmux

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"unicode"
)

// DefaultSocket is the tmux socket used when none is configured.
const DefaultSocket = "cellery"

// Command creates an exec.Cmd for tmux with a custom socket name.
func Command(socket string, args ...string) *exec.Cmd {
	return exec.Command("tmux", CommandArgs(socket, args...)...)
}

// CommandContext creates a context-aware exec.Cmd for tmux with a custom socket.
func CommandContext(ctx context.Context, socket string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, "tmux", CommandArgs(socket, args...)...)
}

// CommandArgs returns tmux arguments with the socket selection prepended.
func CommandArgs(socket string, args ...string) []string {
	return append([]string{"-L", socket}, args...)
}

// Available reports whether tmux can be found in PATH.
func Available() bool {
	_, err := exec.LookPath("tmux")
	return err == nil
}

// Runner executes a tmux subcommand and returns its combined output.
// It exists so tests can observe the commands without a tmux server.
type Runner func(ctx context.Context, args ...string) ([]byte, error)

// SocketRunner returns a Runner that executes tmux against socket.
// A failing command's error includes tmux's own message.
func SocketRunner(socket string) Runner {
	return func(ctx context.Context, args ...string) ([]byte, error) {
		cmd := CommandContext(ctx, socket, args...)
		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out
		if err := cmd.Run(); err != nil {
			if msg := strings.TrimSpace(out.String()); msg != "" {
				return out.Bytes(), fmt.Errorf("%w: %s", err, msg)
			}
			return out.Bytes(), err
		}
		return out.Bytes(), nil
	}
}

// SessionName derives a tmux session name from a terminal title.
// tmux rejects '.' and ':' in session names, so anything outside
// [a-z0-9_-] collapses into a single hyphen.
func SessionName(title string) string {
	var sb strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			sb.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen && sb.Len() > 0 {
			sb.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

// isSessionNotFoundError checks if the error indicates a tmux session was not found.
func isSessionNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "session not found") ||
		strings.Contains(errStr, "no server running") ||
		strings.Contains(errStr, "can't find session") ||
		strings.Contains(errStr, "error connecting to")
}

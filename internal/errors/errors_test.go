package errors

import (
	"fmt"
	"testing"
)

func TestPreconditionError(t *testing.T) {
	tests := []struct {
		name    string
		err     *PreconditionError
		wantMsg string
	}{
		{
			name:    "no missing fields",
			err:     NewPreconditionError("build"),
			wantMsg: "build: missing precondition",
		},
		{
			name:    "single missing field",
			err:     NewPreconditionError("build", "cell name"),
			wantMsg: "build: missing precondition (cell name)",
		},
		{
			name:    "several missing fields",
			err:     NewPreconditionError("run", "instance name", "active file"),
			wantMsg: "run: missing precondition (instance name, active file)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !Is(tt.err, ErrMissingPrecondition) {
				t.Error("expected errors.Is to match ErrMissingPrecondition")
			}
			if !IsUserFacing(tt.err) {
				t.Error("expected precondition error to be user facing")
			}
		})
	}
}

func TestPreconditionError_Wrapped(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", NewPreconditionError("run", "workspace root"))

	var pe *PreconditionError
	if !As(err, &pe) {
		t.Fatal("expected errors.As to find PreconditionError")
	}
	if pe.Action != "run" {
		t.Errorf("Action = %q, want %q", pe.Action, "run")
	}
	if len(pe.Missing) != 1 || pe.Missing[0] != "workspace root" {
		t.Errorf("Missing = %v, want [workspace root]", pe.Missing)
	}
}

func TestTerminalError(t *testing.T) {
	cause := New("exit status 1")

	tests := []struct {
		name    string
		err     *TerminalError
		wantMsg string
	}{
		{
			name:    "with session and op",
			err:     NewTerminalError("send-keys", "cellery-build", cause),
			wantMsg: "terminal error [session=cellery-build, op=send-keys]: exit status 1",
		},
		{
			name:    "without context",
			err:     NewTerminalError("", "", cause),
			wantMsg: "terminal error: exit status 1",
		},
		{
			name:    "without cause",
			err:     NewTerminalError("kill-session", "cellery-run", nil),
			wantMsg: "terminal error [session=cellery-run, op=kill-session]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestTerminalError_Unwrap(t *testing.T) {
	err := NewTerminalError("send-keys", "cellery-run", ErrTerminalNotRunning)

	if !Is(err, ErrTerminalNotRunning) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}
	if IsUserFacing(err) {
		t.Error("terminal errors should not be user facing")
	}
}

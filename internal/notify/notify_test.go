package notify

import (
	"bytes"
	"strings"
	"testing"
)

func TestNotifier(t *testing.T) {
	tests := []struct {
		name  string
		show  func(n *Notifier)
		label string
		text  string
	}{
		{
			name:  "error",
			show:  func(n *Notifier) { n.ShowError("Something went wrong while running cellery build") },
			label: "Error:",
			text:  "Something went wrong while running cellery build",
		},
		{
			name:  "warning",
			show:  func(n *Notifier) { n.ShowWarning("clipboard unavailable") },
			label: "Warning:",
			text:  "clipboard unavailable",
		},
		{
			name:  "info",
			show:  func(n *Notifier) { n.ShowInfo("attach with tmux -L cellery attach -t cellery-build") },
			label: "›",
			text:  "attach with tmux -L cellery attach -t cellery-build",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.show(New(&buf))

			out := buf.String()
			if !strings.Contains(out, tt.label) {
				t.Errorf("output %q missing label %q", out, tt.label)
			}
			if !strings.Contains(out, tt.text) {
				t.Errorf("output %q missing text %q", out, tt.text)
			}
			if strings.Count(out, "\n") != 1 {
				t.Errorf("expected a single line, got %q", out)
			}
		})
	}
}

func TestNotifier_NoColorOnPlainWriter(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).ShowError("boom")

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected escape sequences in %q", buf.String())
	}
}

func TestNotifier_ShowCommand(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).ShowCommand("Cellery Build", "cellery build /ws/hello.bal myorg/hello:1.0.0")

	out := buf.String()
	if !strings.Contains(out, "Cellery Build") {
		t.Errorf("output %q missing heading", out)
	}
	if !strings.Contains(out, "cellery build /ws/hello.bal myorg/hello:1.0.0") {
		t.Errorf("output %q missing command line", out)
	}
}

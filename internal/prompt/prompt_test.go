package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cellery-io/cellery-dev/internal/host"
	"github.com/cellery-io/cellery-dev/internal/styles"
)

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Submit(t *testing.T) {
	m := NewModel(host.PromptOptions{Prompt: "Enter the cell name", Placeholder: "myorg/hello:1.0.0"}, styles.New(nil))

	m = update(t, m, runes("wso2/pet:1.0"), tea.KeyMsg{Type: tea.KeyEnter})

	text, ok := m.Result()
	if !ok {
		t.Fatal("expected prompt to be submitted")
	}
	if text != "wso2/pet:1.0" {
		t.Errorf("Result() = %q, want %q", text, "wso2/pet:1.0")
	}
}

func TestModel_LongInput(t *testing.T) {
	tests := []struct {
		name string
		opts host.PromptOptions
		typ  string
		want string
	}{
		{
			name: "typed",
			opts: host.PromptOptions{Prompt: "Enter the cell name"},
			typ:  "myorg/" + strings.Repeat("a", 300) + ":1.0.0",
			want: "myorg/" + strings.Repeat("a", 300) + ":1.0.0",
		},
		{
			name: "prefilled",
			opts: host.PromptOptions{Prompt: "Enter the cell instance name", Value: strings.Repeat("i", 400)},
			want: strings.Repeat("i", 400),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewModel(tt.opts, styles.New(nil))
			if tt.typ != "" {
				m = update(t, m, runes(tt.typ))
			}
			m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

			text, ok := m.Result()
			if !ok {
				t.Fatal("expected prompt to be submitted")
			}
			if text != tt.want {
				t.Errorf("Result() has %d chars, want %d (suffix %q)", len(text), len(tt.want), text[max(0, len(text)-8):])
			}
		})
	}
}

func TestModel_SubmitReturnsQuit(t *testing.T) {
	m := NewModel(host.PromptOptions{Prompt: "q"}, styles.New(nil))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter should quit the program")
	}
}

func TestModel_PrefilledValue(t *testing.T) {
	m := NewModel(host.PromptOptions{Prompt: "Enter the cell instance name", Value: "hello"}, styles.New(nil))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if text, ok := m.Result(); !ok || text != "hello" {
		t.Errorf("Result() = %q, %v, want %q, true", text, ok, "hello")
	}
}

func TestModel_EditPrefilledValue(t *testing.T) {
	m := NewModel(host.PromptOptions{Prompt: "Enter the cell instance name", Value: "hello"}, styles.New(nil))

	m = update(t, m, runes("-2"), tea.KeyMsg{Type: tea.KeyEnter})
	if text, _ := m.Result(); text != "hello-2" {
		t.Errorf("Result() = %q, want %q", text, "hello-2")
	}
}

func TestModel_Dismiss(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		t.Run(tea.Key{Type: key}.String(), func(t *testing.T) {
			m := NewModel(host.PromptOptions{Prompt: "q", Value: "typed"}, styles.New(nil))
			m = update(t, m, tea.KeyMsg{Type: key})

			if text, ok := m.Result(); ok || text != "" {
				t.Errorf("Result() = %q, %v, want dismissed", text, ok)
			}
			if m.View() != "" {
				t.Error("view should be cleared after dismissal")
			}
		})
	}
}

func TestModel_View(t *testing.T) {
	m := NewModel(host.PromptOptions{Prompt: "Enter the cell name", Placeholder: "myorg/hello:1.0.0"}, styles.New(nil))

	view := m.View()
	if !strings.Contains(view, "Enter the cell name") {
		t.Errorf("view %q missing prompt", view)
	}
	if !strings.Contains(view, "esc to cancel") {
		t.Errorf("view %q missing help", view)
	}
}

func TestPrompter_Line(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		opts   host.PromptOptions
		want   string
		wantOK bool
	}{
		{
			name:   "submitted",
			input:  "myorg/hello:1.0.0\n",
			opts:   host.PromptOptions{Prompt: "Enter the cell name"},
			want:   "myorg/hello:1.0.0",
			wantOK: true,
		},
		{
			name:   "crlf",
			input:  "myorg/hello:1.0.0\r\n",
			opts:   host.PromptOptions{Prompt: "Enter the cell name"},
			want:   "myorg/hello:1.0.0",
			wantOK: true,
		},
		{
			name:   "empty line keeps default",
			input:  "\n",
			opts:   host.PromptOptions{Prompt: "Enter the cell instance name", Value: "hello"},
			want:   "hello",
			wantOK: true,
		},
		{
			name:   "empty line without default",
			input:  "\n",
			opts:   host.PromptOptions{Prompt: "Enter the cell name", Placeholder: "myorg/hello:1.0.0"},
			want:   "",
			wantOK: true,
		},
		{
			name:   "last line without newline",
			input:  "inst",
			opts:   host.PromptOptions{Prompt: "Enter the cell instance name"},
			want:   "inst",
			wantOK: true,
		},
		{
			name:   "end of input",
			input:  "",
			opts:   host.PromptOptions{Prompt: "Enter the cell name"},
			want:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewLine(strings.NewReader(tt.input), &out)

			got, ok, err := p.PromptText(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("PromptText() error = %v", err)
			}
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("PromptText() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
			if !strings.Contains(out.String(), tt.opts.Prompt) {
				t.Errorf("output %q missing prompt", out.String())
			}
		})
	}
}

func TestPrompter_LineSequential(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("myorg/hello:1.0.0\nhello-1\n"), &out)

	cell, ok, err := p.PromptText(context.Background(), host.PromptOptions{Prompt: "Enter the cell name"})
	if err != nil || !ok || cell != "myorg/hello:1.0.0" {
		t.Fatalf("first prompt = %q, %v, %v", cell, ok, err)
	}
	inst, ok, err := p.PromptText(context.Background(), host.PromptOptions{Prompt: "Enter the cell instance name", Value: "hello"})
	if err != nil || !ok || inst != "hello-1" {
		t.Fatalf("second prompt = %q, %v, %v", inst, ok, err)
	}
}

func TestPrompter_LineShowsHints(t *testing.T) {
	var out bytes.Buffer
	p := NewLine(strings.NewReader("\n\n"), &out)

	_, _, _ = p.PromptText(context.Background(), host.PromptOptions{Prompt: "cell", Placeholder: "myorg/hello:1.0.0"})
	_, _, _ = p.PromptText(context.Background(), host.PromptOptions{Prompt: "instance", Value: "hello"})

	if !strings.Contains(out.String(), "(myorg/hello:1.0.0)") {
		t.Errorf("output %q missing placeholder hint", out.String())
	}
	if !strings.Contains(out.String(), "[hello]") {
		t.Errorf("output %q missing default hint", out.String())
	}
}

func TestPrompter_CanceledContext(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	p := NewLine(pr, io.Discard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	text, ok, err := p.PromptText(ctx, host.PromptOptions{Prompt: "q"})
	if err != nil || ok || text != "" {
		t.Errorf("PromptText() = %q, %v, %v, want dismissed", text, ok, err)
	}
}

func TestPrompter_CancelWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	p := NewLine(pr, io.Discard)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool, 1)
	go func() {
		_, ok, _ := p.PromptText(ctx, host.PromptOptions{Prompt: "q"})
		done <- ok
	}()
	cancel()

	if ok := <-done; ok {
		t.Error("canceled prompt should be dismissed")
	}
}

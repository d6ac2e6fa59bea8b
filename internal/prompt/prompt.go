// Package prompt implements host.Prompter for the command line.
//
// On a terminal the prompt is an inline bubbletea text input. When stdin is
// not a terminal (pipes, CI) it falls back to reading a single line.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/cellery-io/cellery-dev/internal/host"
	"github.com/cellery-io/cellery-dev/internal/styles"
)

// Prompter asks questions on a terminal.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	interactive bool
	styles      styles.Set

	mu     sync.Mutex
	reader *bufio.Reader
}

// New creates a Prompter reading from in and drawing on out. The
// interactive text input is used only when in is a terminal.
func New(in *os.File, out *os.File) *Prompter {
	return &Prompter{
		in:          in,
		out:         out,
		interactive: term.IsTerminal(int(in.Fd())),
		styles:      styles.New(lipgloss.NewRenderer(out)),
	}
}

// NewLine creates a Prompter that always reads plain lines from in.
func NewLine(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:     in,
		out:    out,
		styles: styles.New(lipgloss.NewRenderer(out)),
	}
}

// Interactive reports whether prompts use the text input.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// PromptText implements host.Prompter.
func (p *Prompter) PromptText(ctx context.Context, opts host.PromptOptions) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, nil
	}
	if p.interactive {
		return p.promptInteractive(ctx, opts)
	}
	return p.promptLine(ctx, opts)
}

func (p *Prompter) promptInteractive(ctx context.Context, opts host.PromptOptions) (string, bool, error) {
	program := tea.NewProgram(
		NewModel(opts, p.styles),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if ctx.Err() != nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prompt %q: %w", opts.Prompt, err)
	}

	m, ok := final.(Model)
	if !ok {
		return "", false, nil
	}
	text, submitted := m.Result()
	return text, submitted, nil
}

type lineResult struct {
	line string
	err  error
}

// promptLine prints the question and reads one line. An empty line submits
// the pre-filled value; end of input dismisses the prompt.
func (p *Prompter) promptLine(ctx context.Context, opts host.PromptOptions) (string, bool, error) {
	_, _ = fmt.Fprint(p.out, p.lineQuestion(opts))

	p.mu.Lock()
	if p.reader == nil {
		p.reader = bufio.NewReader(p.in)
	}
	reader := p.reader
	p.mu.Unlock()

	done := make(chan lineResult, 1)
	go func() {
		line, err := reader.ReadString('\n')
		done <- lineResult{line: line, err: err}
	}()

	var res lineResult
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(p.out)
		return "", false, nil
	case res = <-done:
	}

	if res.err != nil && res.err != io.EOF {
		return "", false, fmt.Errorf("prompt %q: %w", opts.Prompt, res.err)
	}
	if res.err == io.EOF && res.line == "" {
		_, _ = fmt.Fprintln(p.out)
		return "", false, nil
	}

	text := strings.TrimRight(res.line, "\r\n")
	if strings.TrimSpace(text) == "" && opts.Value != "" {
		text = opts.Value
	}
	return text, true, nil
}

func (p *Prompter) lineQuestion(opts host.PromptOptions) string {
	var sb strings.Builder
	sb.WriteString(p.styles.Prompt.Render(opts.Prompt))
	switch {
	case opts.Value != "":
		sb.WriteString(" ")
		sb.WriteString(p.styles.Placeholder.Render("[" + opts.Value + "]"))
	case opts.Placeholder != "":
		sb.WriteString(" ")
		sb.WriteString(p.styles.Placeholder.Render("(" + opts.Placeholder + ")"))
	}
	sb.WriteString(": ")
	return sb.String()
}

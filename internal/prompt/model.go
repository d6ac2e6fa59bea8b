package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cellery-io/cellery-dev/internal/host"
	"github.com/cellery-io/cellery-dev/internal/styles"
)

const inputWidth = 48

// Model is a single-line bubbletea prompt. Enter submits the current value;
// Esc or Ctrl+C dismisses the prompt.
type Model struct {
	input     textinput.Model
	prompt    string
	styles    styles.Set
	submitted bool
	dismissed bool
}

// NewModel creates a prompt model for opts.
func NewModel(opts host.PromptOptions, st styles.Set) Model {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 0 // unlimited, cell names are sent verbatim
	ti.Width = inputWidth
	ti.Placeholder = opts.Placeholder
	ti.PlaceholderStyle = st.Placeholder
	ti.Prompt = "> "
	ti.PromptStyle = st.Prompt
	if opts.Value != "" {
		ti.SetValue(opts.Value)
		ti.CursorEnd()
	}

	return Model{
		input:  ti,
		prompt: opts.Prompt,
		styles: st,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.dismissed = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.submitted || m.dismissed {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Prompt.Render(m.prompt))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("(enter to confirm, esc to cancel)"))
	sb.WriteString("\n")
	return sb.String()
}

// Result returns the entered text and whether it was submitted.
func (m Model) Result() (string, bool) {
	if !m.submitted {
		return "", false
	}
	return m.input.Value(), true
}

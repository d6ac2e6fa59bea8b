// Package notify writes user-facing messages to the terminal.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/cellery-io/cellery-dev/internal/styles"
)

// Notifier prints styled messages to a writer, usually stderr.
// It implements host.Notifier.
type Notifier struct {
	mu     sync.Mutex
	w      io.Writer
	styles styles.Set
}

// New creates a Notifier writing to w. Colors are used only when w is a
// terminal that supports them.
func New(w io.Writer) *Notifier {
	return &Notifier{
		w:      w,
		styles: styles.New(lipgloss.NewRenderer(w)),
	}
}

// ShowError displays message as an error.
func (n *Notifier) ShowError(message string) {
	n.print(n.styles.ErrorLabel.Render("Error:"), n.styles.ErrorText.Render(message))
}

// ShowWarning displays message as a warning.
func (n *Notifier) ShowWarning(message string) {
	n.print(n.styles.WarnLabel.Render("Warning:"), message)
}

// ShowInfo displays an informational message.
func (n *Notifier) ShowInfo(message string) {
	n.print(n.styles.InfoLabel.Render("›"), message)
}

// ShowCommand displays a dispatched command line under a heading.
func (n *Notifier) ShowCommand(heading, commandLine string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "%s %s\n%s\n",
		n.styles.InfoLabel.Render("›"), heading, n.styles.Command.Render(commandLine))
}

func (n *Notifier) print(label, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "%s %s\n", label, message)
}

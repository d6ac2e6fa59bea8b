// Package styles holds the colors and lipgloss styles shared by the prompt
// and notification output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - all meet WCAG AA contrast (4.5:1) on dark backgrounds
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
)

// Set is a group of styles bound to one renderer, so colors are only
// emitted when the destination supports them.
type Set struct {
	Prompt      lipgloss.Style
	Placeholder lipgloss.Style
	Help        lipgloss.Style
	ErrorLabel  lipgloss.Style
	ErrorText   lipgloss.Style
	WarnLabel   lipgloss.Style
	InfoLabel   lipgloss.Style
	Command     lipgloss.Style
}

// New builds a Set for r. A nil renderer uses lipgloss's default.
func New(r *lipgloss.Renderer) Set {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Set{
		Prompt: r.NewStyle().
			Bold(true).
			Foreground(PrimaryColor),
		Placeholder: r.NewStyle().
			Foreground(MutedColor),
		Help: r.NewStyle().
			Foreground(MutedColor).
			Italic(true),
		ErrorLabel: r.NewStyle().
			Bold(true).
			Foreground(ErrorColor),
		ErrorText: r.NewStyle().
			Foreground(TextColor),
		WarnLabel: r.NewStyle().
			Bold(true).
			Foreground(WarningColor),
		InfoLabel: r.NewStyle().
			Bold(true).
			Foreground(SecondaryColor),
		Command: r.NewStyle().
			Foreground(MutedColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(BorderColor).
			PaddingLeft(1),
	}
}

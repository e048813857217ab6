package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the renderers.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style
	Path    lipgloss.Style
	Code    lipgloss.Style
	Caret   lipgloss.Style
	Hint    lipgloss.Style
}

// NewStyles builds the styles for a lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: r.NewStyle().Bold(true).Underline(true),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("14")),
		Path:    r.NewStyle().Foreground(lipgloss.Color("14")).Underline(true),
		Code:    r.NewStyle().Foreground(lipgloss.Color("9")),
		Caret:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Hint:    r.NewStyle().Foreground(lipgloss.Color("14")),
	}
}

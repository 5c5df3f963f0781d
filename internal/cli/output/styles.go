package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Keyword    lipgloss.Style
	Identifier lipgloss.Style
	String     lipgloss.Style
	Numeric    lipgloss.Style
	Symbol     lipgloss.Style
	Position   lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusFailed  lipgloss.Style
}

// NewStyles builds styles bound to r. With color disabled every style
// renders its input unchanged.
func NewStyles(r *lipgloss.Renderer, color bool) *Styles {
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: r.NewStyle().Bold(true).Underline(true),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Keyword:    r.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		Identifier: r.NewStyle().Foreground(lipgloss.Color("14")),
		String:     r.NewStyle().Foreground(lipgloss.Color("10")),
		Numeric:    r.NewStyle().Foreground(lipgloss.Color("11")),
		Symbol:     r.NewStyle().Foreground(lipgloss.Color("7")),
		Position:   r.NewStyle().Foreground(lipgloss.Color("8")),

		StatusSuccess: r.NewStyle().Foreground(lipgloss.Color("10")).SetString("✓"),
		StatusFailed:  r.NewStyle().Foreground(lipgloss.Color("9")).SetString("✗"),
	}
}

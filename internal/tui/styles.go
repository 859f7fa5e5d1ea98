// Package tui: Lipgloss style constants for the watch screen.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all theme-aware Lipgloss styles.
type Styles struct {
	Header       lipgloss.Style
	HeaderStatus lipgloss.Style
	TableHeader  lipgloss.Style
	TableRow     lipgloss.Style
	Footer       lipgloss.Style
	Spinner      lipgloss.Style
	StatusOK     lipgloss.Style
	StatusErr    lipgloss.Style
	Muted        lipgloss.Style
}

// newStyles returns the default watch theme.
func newStyles() Styles {
	bg := lipgloss.Color("#0D0F18")
	primary := lipgloss.Color("#5EA8FF")
	accent := lipgloss.Color("#B583F0")
	danger := lipgloss.Color("#F56565")
	success := lipgloss.Color("#68D391")
	muted := lipgloss.Color("#4A5568")
	text := lipgloss.Color("#E2E8F0")

	return Styles{
		Header: lipgloss.NewStyle().
			Background(primary).Foreground(bg).
			Bold(true).Padding(0, 1),

		HeaderStatus: lipgloss.NewStyle().
			Foreground(accent),

		TableHeader: lipgloss.NewStyle().
			Foreground(muted).Bold(true),

		TableRow: lipgloss.NewStyle().
			Foreground(text),

		Footer: lipgloss.NewStyle().
			Foreground(muted).Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(accent),

		StatusOK:  lipgloss.NewStyle().Foreground(success),
		StatusErr: lipgloss.NewStyle().Foreground(danger),
		Muted:     lipgloss.NewStyle().Foreground(muted),
	}
}

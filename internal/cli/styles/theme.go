// Package styles provides reusable lipgloss-based TUI components.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss colors and styles used by the playground.
type Theme struct {
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color

	PanelBorder       lipgloss.Style
	ActivePanelBorder lipgloss.Style
	DropTarget        lipgloss.Style

	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style

	PanelID   lipgloss.Style
	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
}

// DefaultTheme returns the stock dark theme.
func DefaultTheme() *Theme {
	accent := lipgloss.Color("77")
	muted := lipgloss.Color("243")
	errClr := lipgloss.Color("203")
	drop := lipgloss.Color("215")

	return &Theme{
		Accent: accent,
		Muted:  muted,
		Error:  errClr,

		PanelBorder: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted),
		ActivePanelBorder: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent),
		DropTarget: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(drop),

		ActiveTab: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		InactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),

		PanelID: lipgloss.NewStyle().Foreground(muted).Italic(true),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		HelpKey:  lipgloss.NewStyle().Foreground(accent),
		HelpDesc: lipgloss.NewStyle().Foreground(muted),
	}
}

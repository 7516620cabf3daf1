package ui

import "github.com/charmbracelet/lipgloss"

// Palette: charcoal grill, broth, basil and chili.
var (
	ColorBase    = lipgloss.Color("#1F1B18")
	ColorSurface = lipgloss.Color("#2E2824")
	ColorMuted   = lipgloss.Color("#8C7F73")
	ColorText    = lipgloss.Color("#E8DFD3")
	ColorAccent  = lipgloss.Color("#D9A05B")
	ColorGreen   = lipgloss.Color("#9CC08A")
	ColorRed     = lipgloss.Color("#E06C5A")
	ColorYellow  = lipgloss.Color("#F2C96B")
)

// Chrome
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	TabBarStyle = lipgloss.NewStyle().
			Padding(0, 2).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted)

	TabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorMuted)

	ActiveTabStyle = TabStyle.
			Foreground(ColorText).
			Bold(true).
			Underline(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BreadcrumbActiveStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Padding(0, 1)
)

// Tables
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Padding(0, 1).
				Background(ColorSurface)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(2, 4)
)

// Detail screens and forms
var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	RatingStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	FavoriteStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	BarStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BorderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	ActiveBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorAccent).
				Padding(1, 2)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)
)

// shortcutsHeader right-aligns a line of key hints above a detail panel.
func shortcutsHeader(hints string, width int) string {
	return lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(HelpDescStyle.Render(hints))
}

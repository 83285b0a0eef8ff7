// Package themes holds the lipgloss styles used by the ledger view.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Bold         lipgloss.Style
	Selected     lipgloss.Style
	Highlighted  lipgloss.Style
	Editing      lipgloss.Style
	Cell         lipgloss.Style
	ColumnHeader lipgloss.Style
	Footer       lipgloss.Style
	Info         lipgloss.Style
	Box          lipgloss.Style
	FocusedBox   lipgloss.Style
	Primary      lipgloss.Color
	Secondary    lipgloss.Color
	Muted        lipgloss.Color
	Border       lipgloss.Color
	Foreground   lipgloss.Color
	Error        lipgloss.Color
}

// CellWidth is the width of an amount cell in the entry list.
const CellWidth = 14

// Default is the default theme.
var Default = newTheme(palette{
	primary:    "#7c3aed",
	secondary:  "#a78bfa",
	muted:      "#737373",
	border:     "#404040",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	error:      "#ef4444",
	onPrimary:  "#fafafa",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    "#cba6f7",
	secondary:  "#f5c2e7",
	muted:      "#6c7086",
	border:     "#45475a",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	error:      "#f38ba8",
	onPrimary:  "#1e1e2e",
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

type palette struct {
	primary    string
	secondary  string
	muted      string
	border     string
	foreground string
	subtle     string
	error      string
	onPrimary  string
}

func newTheme(p palette) Theme {
	return Theme{
		Primary:    lipgloss.Color(p.primary),
		Secondary:  lipgloss.Color(p.secondary),
		Muted:      lipgloss.Color(p.muted),
		Border:     lipgloss.Color(p.border),
		Foreground: lipgloss.Color(p.foreground),
		Error:      lipgloss.Color(p.error),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.onPrimary)).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color(p.border)).
			Foreground(lipgloss.Color(p.foreground)),
		Editing: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.secondary)).
			Underline(true),
		Cell: lipgloss.NewStyle().
			Width(CellWidth).
			Align(lipgloss.Right),
		ColumnHeader: lipgloss.NewStyle().
			Width(CellWidth).
			Align(lipgloss.Right).
			Bold(true).
			Foreground(lipgloss.Color(p.secondary)),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)).
			MarginTop(1),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
		FocusedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.primary)).
			Padding(0, 1),
	}
}

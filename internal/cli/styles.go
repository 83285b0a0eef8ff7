// Package cli holds the terminal helpers shared by the dualcount commands:
// message styles, prompts, progress and interrupt handling.
package cli

import (
	"github.com/Veraticus/dual-count/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// Status colors. The accent follows the default ledger theme so command
// output matches the interactive view.
var (
	AccentColor  = themes.Default.Primary
	SuccessColor = lipgloss.Color("#4ECDC4")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = themes.Default.Error
	InfoColor    = lipgloss.Color("#95E1D3")
)

var (
	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().Foreground(ErrorColor)
	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().Foreground(InfoColor)
	// TableHeaderStyle is used for column headers in listings.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(themes.Default.Secondary)
	// PromptStyle is used for questions to the user.
	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
)

func withIcon(style lipgloss.Style, icon, message string) string {
	return style.Render(icon + " " + message)
}

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string { return withIcon(SuccessStyle, SuccessIcon, message) }

// FormatError formats an error message with icon.
func FormatError(message string) string { return withIcon(ErrorStyle, ErrorIcon, message) }

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string { return withIcon(WarningStyle, WarningIcon, message) }

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string { return withIcon(InfoStyle, InfoIcon, message) }

// FormatPrompt formats a question awaiting input.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt + " → ")
}

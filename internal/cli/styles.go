// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#E8590C")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#2F9E44")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F08C00")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#E03131")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#1971C2")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#868E96")
	// HighColor marks HIGH severity conflicts.
	HighColor = lipgloss.Color("#E03131")
	// MediumColor marks MEDIUM severity conflicts.
	MediumColor = lipgloss.Color("#F08C00")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// HeaderStyle formats table headers.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(InfoColor)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats errors or failure messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)

// SeverityStyle picks the style for a conflict severity label.
func SeverityStyle(severity string) lipgloss.Style {
	switch severity {
	case "HIGH":
		return lipgloss.NewStyle().Bold(true).Foreground(HighColor)
	case "MEDIUM":
		return lipgloss.NewStyle().Foreground(MediumColor)
	default:
		return SubtleStyle
	}
}

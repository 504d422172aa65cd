package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dimColor     = lipgloss.Color("7")
	accentColor  = lipgloss.Color("12")
	successColor = lipgloss.Color("10")
	warningColor = lipgloss.Color("11")
	dangerColor  = lipgloss.Color("9")

	// Timestamps, paths, secondary detail
	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	// Section titles in command output
	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	// Matched history entries, model names
	AccentStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	// Non-fatal problems reported on stderr
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)
)

// FormatKeyValues formats alternating label/value pairs for command output.
// Labels stay default color, values are rendered in accent blue.
// Usage: FormatKeyValues("provider", "ollama", "model", "llama3.1:latest")
func FormatKeyValues(parts ...string) string {
	var result []string
	for i := 0; i < len(parts); i += 2 {
		if i+1 < len(parts) {
			result = append(result, parts[i]+" "+AccentStyle.Render(parts[i+1]))
		}
	}
	return strings.Join(result, "  ")
}

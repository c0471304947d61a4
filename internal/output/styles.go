package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals outside this block.
var (
	// ColorCyan is used for identifiable nouns: project names, paths, template names.
	ColorCyan = lipgloss.Color("14")

	// ColorYellow is used for prompt questions.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for rejected prompt input.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for defaults, hints, and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (project names, paths, templates).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleQuestion styles prompt questions.
	StyleQuestion = lipgloss.NewStyle().Bold(true).Foreground(ColorYellow)

	// StyleAction styles action verbs (creating, fetching).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles defaults and hints.
	StyleDim = lipgloss.NewStyle().Foreground(ColorDimGray)

	// StyleReject styles rejected input messages.
	StyleReject = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// vetLabelWidth is the column at which FormatVetCheck details start.
const vetLabelWidth = 34

// FormatVetCheck renders a passed check line with an optional aligned detail.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}
	padding := vetLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}

// Package ui renders navigator results as terminal cards.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	Sky     = lipgloss.Color("#0284c7")
	Indigo  = lipgloss.Color("#4f46e5")
	Emerald = lipgloss.Color("#059669")
	Amber   = lipgloss.Color("#d97706")
	Rose    = lipgloss.Color("#e11d48")
	Slate   = lipgloss.Color("#64748b")
)

// Styles holds the styled components used by the renderers.
type Styles struct {
	Section  lipgloss.Style
	Heading  lipgloss.Style
	Card     lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Badge    lipgloss.Style
	Error    lipgloss.Style
	Prompt   lipgloss.Style
	Success  lipgloss.Style
	ErrorBox lipgloss.Style
}

// NewStyles builds the styles. accent colors the card borders.
func NewStyles(accent lipgloss.Color) Styles {
	return Styles{
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginTop(1),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true),
		Body: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().
			Foreground(Slate).
			Italic(true),
		Badge: lipgloss.NewStyle().
			Foreground(Indigo).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(Rose).
			Bold(true),
		Prompt: lipgloss.NewStyle().
			Foreground(Sky).
			Bold(true),
		Success: lipgloss.NewStyle().
			Foreground(Emerald).
			Bold(true),
		ErrorBox: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Rose).
			Padding(0, 1),
	}
}

// DefaultStyles uses the sky accent, or indigo when NAVIGATOR_ACCENT=indigo.
func DefaultStyles() Styles {
	if os.Getenv("NAVIGATOR_ACCENT") == "indigo" {
		return NewStyles(Indigo)
	}
	return NewStyles(Sky)
}

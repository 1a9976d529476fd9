package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	mutedColor   = lipgloss.Color("#6B7280") // Gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 1)

	inputLineStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#2D2D2D")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	// Transcript styles
	userNameStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	botNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	systemStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// Card styles
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true)

	cardFieldNameStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	cardFooterStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// Markdown inline styles
	emphasisStyle = lipgloss.NewStyle().Italic(true)
	strongStyle   = lipgloss.NewStyle().Bold(true)
	codeStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))
)

// cardColor converts a 0xRRGGBB card color to a lipgloss color.
func cardColor(c int) lipgloss.Color {
	if c == 0 {
		return mutedColor
	}
	return lipgloss.Color(fmt.Sprintf("#%06X", c&0xFFFFFF))
}

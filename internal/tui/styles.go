package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/deck"
)

// Static styles for content elements
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	TableStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	RedCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	BlackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true)

	HiddenCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// formatCards formats cards with colors. hidden cards after the first are
// drawn face down.
func formatCards(cards []deck.Card, hidden bool) string {
	formatted := make([]string, 0, len(cards))
	for i, card := range cards {
		switch {
		case hidden && i > 0:
			formatted = append(formatted, HiddenCardStyle.Render("??"))
		case card.IsRed():
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		default:
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

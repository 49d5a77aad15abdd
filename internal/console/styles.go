package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/deck"
)

// styles are bound to the game's renderer so colour follows the output
// writer rather than os.Stdout.
type styles struct {
	title     lipgloss.Style
	rule      lipgloss.Style
	redCard   lipgloss.Style
	blackCard lipgloss.Style
	prompt    lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	info      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		rule: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		redCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		blackCard: r.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FAFAFA"}).
			Bold(true),
		prompt: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		failure: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}

func (s styles) card(c deck.Card) string {
	if c.IsRed() {
		return s.redCard.Render(c.String())
	}
	return s.blackCard.Render(c.String())
}

// cards formats cards like deck.Deck.String, with suit colours
func (s styles) cards(cards []deck.Card) string {
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = s.card(c)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

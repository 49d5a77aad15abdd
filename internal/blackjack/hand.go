package blackjack

import "github.com/lox/blackjack/internal/deck"

// Hand is the ordered set of cards held by the player or the dealer. It grows
// only by cards removed from the shoe deck.
type Hand struct {
	cards *deck.Deck
}

// NewHand returns an empty hand
func NewHand() *Hand {
	return &Hand{cards: deck.Empty()}
}

// Add appends a card to the hand
func (h *Hand) Add(c deck.Card) {
	h.cards.Append(c)
}

// Cards returns a copy of the cards in the order they were dealt
func (h *Hand) Cards() []deck.Card {
	return h.cards.Cards()
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return h.cards.Size()
}

// Value evaluates the hand. It does not modify the hand, so repeated calls
// agree.
func (h *Hand) Value() Score {
	return Evaluate(h.cards.Cards())
}

// IsBlackjack reports a two-card 21.
func (h *Hand) IsBlackjack() bool {
	if h.Len() != 2 {
		return false
	}
	total, ok := h.Value().Total()
	return ok && total == Target
}

// IsSoft reports whether an ace is currently counted as 11.
func (h *Hand) IsSoft() bool {
	total, ok := h.Value().Total()
	if !ok {
		return false
	}
	hard := 0
	for _, c := range h.cards.Cards() {
		hard += c.Value()
	}
	return total != hard
}

// String renders the cards, e.g. "[♠A ♥10]"
func (h *Hand) String() string {
	return h.cards.String()
}

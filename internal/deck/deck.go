package deck

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDeck is returned when a card is requested from a deck with no
	// cards left.
	ErrEmptyDeck = errors.New("deck: empty deck")

	// ErrIndexOutOfRange is returned by RemoveAt for positions outside the
	// deck.
	ErrIndexOutOfRange = errors.New("deck: index out of range")
)

const (
	// StandardRanks builds a 52 card deck.
	StandardRanks = 13
	// LegacyRanks builds the 48 card deck (no kings) dealt by the first
	// version of the game.
	LegacyRanks = 12
)

// Drawer picks a removal index in [0, bound). rng.Source satisfies it.
type Drawer interface {
	Draw(bound uint32) uint32
}

// Deck is an ordered collection of cards. A hand is just another deck that
// starts empty.
type Deck struct {
	cards []Card
}

// Empty returns a deck with no cards
func Empty() *Deck {
	return &Deck{}
}

// Full returns a standard 52-card deck ordered by suit then rank
func Full() *Deck {
	d, _ := FullWithRanks(StandardRanks)
	return d
}

// FullWithRanks returns a deck holding one card per suit for every rank from
// Ace up to ranks.
func FullWithRanks(ranks int) (*Deck, error) {
	if ranks < int(Ace) || ranks > int(King) {
		return nil, fmt.Errorf("%w: rank count %d outside 1..13", ErrInvalidCard, ranks)
	}

	d := &Deck{cards: make([]Card, 0, len(Suits)*ranks)}
	for _, suit := range Suits {
		for rank := Ace; rank <= Rank(ranks); rank++ {
			d.cards = append(d.cards, Card{Suit: suit, Rank: rank})
		}
	}
	return d, nil
}

// FromCards returns a deck holding a copy of cards in the given order.
func FromCards(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Size returns the number of cards left in the deck
func (d *Deck) Size() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the cards in order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Append adds a card to the end of the deck
func (d *Deck) Append(c Card) {
	d.cards = append(d.cards, c)
}

// RemoveAt removes and returns the card at index, preserving the order of the
// remaining cards.
func (d *Deck) RemoveAt(index int) (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	if index < 0 || index >= len(d.cards) {
		return Card{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(d.cards))
	}

	c := d.cards[index]
	d.cards = append(d.cards[:index], d.cards[index+1:]...)
	return c, nil
}

// RemoveRandom removes the card at the index chosen by src. The same src must
// be reused for every draw of a round so that it advances its sequence.
func (d *Deck) RemoveRandom(src Drawer) (Card, error) {
	// Draw must never see a zero bound.
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	return d.RemoveAt(int(src.Draw(uint32(len(d.cards)))))
}

// String renders the cards as a bracketed list, e.g. "[♠A ♥10]"
func (d *Deck) String() string {
	parts := make([]string, len(d.cards))
	for i, c := range d.cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

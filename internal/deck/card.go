package deck

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a card is built from an unknown suit or a
// rank outside Ace..King.
var ErrInvalidCard = errors.New("deck: invalid card")

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists the four suits in deck construction order.
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the symbol for the suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single-letter code used by ParseCard.
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// Rank represents a card rank. Aces are low.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// String returns the display label for the rank
func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	default:
		return "?"
	}
}

// Valid reports whether r lies in Ace..King.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Card represents a playing card. Cards are values and never change after
// construction.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a card, rejecting unknown suits and out of range ranks.
func NewCard(suit Suit, rank Rank) (Card, error) {
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: unknown suit %d", ErrInvalidCard, int(suit))
	}
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: rank %d outside %d..%d", ErrInvalidCard, int(rank), int(Ace), int(King))
	}
	return Card{Suit: suit, Rank: rank}, nil
}

// String returns the suit symbol followed by the rank label (e.g. "♠A")
func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// Code returns the compact parseable form of the card (e.g. "Ah", "10d").
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Value returns the blackjack points of the card. Aces count 1 here;
// promoting an ace to 11 is decided when the whole hand is valued.
func (c Card) Value() int {
	if c.Rank >= Ten {
		return 10
	}
	return int(c.Rank)
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// ParseCard parses a card code such as "Ah", "Td", "10c" or "ks".
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rankPart, suitPart := strings.ToUpper(s[:len(s)-1]), strings.ToLower(s[len(s)-1:])

	var suit Suit
	switch suitPart {
	case "s":
		suit = Spades
	case "h":
		suit = Hearts
	case "d":
		suit = Diamonds
	case "c":
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrInvalidCard, s)
	}

	var rank Rank
	switch rankPart {
	case "A":
		rank = Ace
	case "T", "10":
		rank = Ten
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		if len(rankPart) != 1 || rankPart[0] < '2' || rankPart[0] > '9' {
			return Card{}, fmt.Errorf("%w: unknown rank in %q", ErrInvalidCard, s)
		}
		rank = Rank(rankPart[0] - '0')
	}

	return NewCard(suit, rank)
}

// ParseCards parses whitespace or comma separated card codes.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

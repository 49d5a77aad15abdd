package blackjack

import (
	"strconv"

	"github.com/lox/blackjack/internal/deck"
)

// Target is the best possible hand total.
const Target = 21

// Score is the value of a hand: either a point total of at most 21 or Bust.
// Bust is its own variant so it can never be mistaken for a total.
type Score struct {
	points int
	bust   bool
}

// Bust is the score of a hand over 21 under every ace valuation.
var Bust = Score{bust: true}

// Points returns a standing score of n.
func Points(n int) Score {
	return Score{points: n}
}

// Total returns the point total. ok is false for Bust.
func (s Score) Total() (total int, ok bool) {
	if s.bust {
		return 0, false
	}
	return s.points, true
}

// IsBust reports whether the hand is bust
func (s Score) IsBust() bool {
	return s.bust
}

// Compare orders scores: Bust ranks below every total and two busts are equal.
// It returns -1, 0 or +1.
func (s Score) Compare(o Score) int {
	switch {
	case s.bust && o.bust:
		return 0
	case s.bust:
		return -1
	case o.bust:
		return 1
	case s.points < o.points:
		return -1
	case s.points > o.points:
		return 1
	default:
		return 0
	}
}

func (s Score) String() string {
	if s.bust {
		return "bust"
	}
	return strconv.Itoa(s.points)
}

// Evaluate returns the highest total of cards that does not exceed 21.
//
// Every ace is first counted as 1, then as many aces as fit are promoted to
// 11. Promotion never exceeds the number of aces held.
func Evaluate(cards []deck.Card) Score {
	base, aces := 0, 0
	for _, c := range cards {
		base += c.Value()
		if c.IsAce() {
			aces++
		}
	}

	promote := 0
	if base < Target {
		promote = (Target - base) / 10
	}
	promote = min(promote, aces)

	total := base + 10*promote
	if total > Target {
		return Bust
	}
	return Points(total)
}

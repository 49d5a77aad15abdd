package blackjack

import (
	"fmt"

	"github.com/lox/blackjack/internal/deck"
)

// Action is a player decision.
type Action int

const (
	Stand Action = iota
	Hit
)

func (a Action) String() string {
	if a == Hit {
		return "hit"
	}
	return "stand"
}

// Strategy decides the player's moves in automated rounds.
type Strategy interface {
	Decide(player *Hand, dealerUp deck.Card) Action
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(player *Hand, dealerUp deck.Card) Action

// Decide calls f.
func (f StrategyFunc) Decide(player *Hand, dealerUp deck.Card) Action {
	return f(player, dealerUp)
}

// StandOn hits while the player's total is below the threshold, mirroring
// the dealer when set to 17.
type StandOn int

// Decide implements Strategy
func (s StandOn) Decide(player *Hand, _ deck.Card) Action {
	total, ok := player.Value().Total()
	if ok && total < int(s) {
		return Hit
	}
	return Stand
}

// NeverBust hits only while no card can bust the hand.
var NeverBust = StrategyFunc(func(player *Hand, _ deck.Card) Action {
	total, ok := player.Value().Total()
	if !ok || total == Target {
		return Stand
	}
	if player.IsSoft() || total <= 11 {
		return Hit
	}
	return Stand
})

// AlwaysStand never draws past the deal.
var AlwaysStand = StrategyFunc(func(*Hand, deck.Card) Action { return Stand })

// Strategies lists the names accepted by ParseStrategy.
var Strategies = []string{"stand-on", "never-bust", "always-stand"}

// ParseStrategy maps a strategy name to a Strategy. standOn is used by the
// "stand-on" strategy only.
func ParseStrategy(name string, standOn int) (Strategy, error) {
	switch name {
	case "stand-on", "":
		if standOn <= 0 || standOn > Target+1 {
			return nil, fmt.Errorf("stand-on threshold %d outside 1..%d", standOn, Target+1)
		}
		return StandOn(standOn), nil
	case "never-bust":
		return NeverBust, nil
	case "always-stand":
		return AlwaysStand, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (choose from %v)", name, Strategies)
	}
}

// Play runs a whole round: deal, player decisions from s, dealer policy.
func Play(r *Round, s Strategy) (Outcome, error) {
	if err := r.Deal(); err != nil {
		return Push, err
	}
	up, _ := r.DealerUpCard()
	for r.Phase() == PhasePlayer {
		if s.Decide(r.Player(), up) == Stand {
			if err := r.Stand(); err != nil {
				return Push, err
			}
			break
		}
		if _, err := r.Hit(); err != nil {
			return Push, err
		}
	}
	if _, err := r.PlayDealer(); err != nil {
		return Push, err
	}
	return r.Outcome()
}

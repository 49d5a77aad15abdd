package blackjack

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rng"
)

// ErrInvalidMove is returned when an action does not fit the round's phase,
// for example hitting after the player has stood.
var ErrInvalidMove = errors.New("blackjack: move not allowed now")

// Phase tracks where a round is.
type Phase int

const (
	PhaseDeal Phase = iota
	PhasePlayer
	PhaseDealer
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseDeal:
		return "deal"
	case PhasePlayer:
		return "player"
	case PhaseDealer:
		return "dealer"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome is the result of a finished round from the player's side.
type Outcome int

const (
	Push Outcome = iota
	PlayerWins
	DealerWins
)

func (o Outcome) String() string {
	switch o {
	case PlayerWins:
		return "player"
	case DealerWins:
		return "dealer"
	default:
		return "push"
	}
}

// Net returns +1 for a player win, -1 for a loss and 0 for a push.
func (o Outcome) Net() int {
	switch o {
	case PlayerWins:
		return 1
	case DealerWins:
		return -1
	default:
		return 0
	}
}

// Decide compares final hands. A bust player loses even if the dealer busts
// too; otherwise a bust dealer loses and standing totals are compared.
func Decide(player, dealer Score) Outcome {
	if player.IsBust() {
		return DealerWins
	}
	switch player.Compare(dealer) {
	case 1:
		return PlayerWins
	case -1:
		return DealerWins
	default:
		return Push
	}
}

// Round is one game of blackjack: a shoe deck, the generator that picks every
// card drawn from it, and the two hands. A round is not safe for concurrent
// use; parallel simulations give each round its own deck and generator.
type Round struct {
	shoe   *deck.Deck
	src    rng.Source
	player *Hand
	dealer *Hand
	policy DealerPolicy
	phase  Phase
	logger *log.Logger
}

type roundOptions struct {
	ranks  int
	shoe   *deck.Deck
	policy DealerPolicy
}

// RoundOption configures NewRound.
type RoundOption func(*roundOptions)

// WithRanks builds the shoe from ranks Ace..ranks (see deck.LegacyRanks).
func WithRanks(ranks int) RoundOption {
	return func(o *roundOptions) {
		o.ranks = ranks
	}
}

// WithShoe uses a prepared deck instead of a fresh full one.
func WithShoe(d *deck.Deck) RoundOption {
	return func(o *roundOptions) {
		o.shoe = d
	}
}

// WithDealerPolicy overrides the dealer's stand total.
func WithDealerPolicy(p DealerPolicy) RoundOption {
	return func(o *roundOptions) {
		o.policy = p
	}
}

// NewRound creates a round that draws every card from src.
func NewRound(src rng.Source, logger *log.Logger, opts ...RoundOption) (*Round, error) {
	if src == nil {
		return nil, rng.ErrInvalidGenerator
	}
	o := roundOptions{
		ranks:  deck.StandardRanks,
		policy: DefaultDealerPolicy(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	shoe := o.shoe
	if shoe == nil {
		var err error
		shoe, err = deck.FullWithRanks(o.ranks)
		if err != nil {
			return nil, fmt.Errorf("building shoe: %w", err)
		}
	}

	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Round{
		shoe:   shoe,
		src:    src,
		player: NewHand(),
		dealer: NewHand(),
		policy: o.policy,
		phase:  PhaseDeal,
		logger: logger.WithPrefix("round"),
	}, nil
}

// Phase returns the current phase
func (r *Round) Phase() Phase { return r.phase }

// Player returns the player's hand
func (r *Round) Player() *Hand { return r.player }

// Dealer returns the dealer's hand
func (r *Round) Dealer() *Hand { return r.dealer }

// Policy returns the dealer policy in force
func (r *Round) Policy() DealerPolicy { return r.policy }

// ShoeSize returns the number of cards left to draw
func (r *Round) ShoeSize() int { return r.shoe.Size() }

// DealerUpCard returns the dealer's first card. ok is false before the deal.
func (r *Round) DealerUpCard() (deck.Card, bool) {
	cards := r.dealer.Cards()
	if len(cards) == 0 {
		return deck.Card{}, false
	}
	return cards[0], true
}

func (r *Round) draw(h *Hand) (deck.Card, error) {
	c, err := r.shoe.RemoveRandom(r.src)
	if err != nil {
		return deck.Card{}, err
	}
	h.Add(c)
	return c, nil
}

// Deal gives two cards each, alternating player then dealer.
func (r *Round) Deal() error {
	if r.phase != PhaseDeal {
		return fmt.Errorf("%w: deal in %s phase", ErrInvalidMove, r.phase)
	}
	for i := 0; i < 2; i++ {
		if _, err := r.draw(r.player); err != nil {
			return fmt.Errorf("dealing to player: %w", err)
		}
		if _, err := r.draw(r.dealer); err != nil {
			return fmt.Errorf("dealing to dealer: %w", err)
		}
	}
	r.phase = PhasePlayer
	r.logger.Debug("Dealt", "player", r.player, "dealer_up", r.dealer.Cards()[0], "shoe", r.shoe.Size())
	return nil
}

// Hit draws a card for the player. A bust ends the player's turn.
func (r *Round) Hit() (deck.Card, error) {
	if r.phase != PhasePlayer {
		return deck.Card{}, fmt.Errorf("%w: hit in %s phase", ErrInvalidMove, r.phase)
	}
	c, err := r.draw(r.player)
	if err != nil {
		return deck.Card{}, fmt.Errorf("player hit: %w", err)
	}
	value := r.player.Value()
	r.logger.Debug("Player hits", "card", c, "value", value)
	if value.IsBust() {
		r.phase = PhaseDealer
	}
	return c, nil
}

// Stand ends the player's turn.
func (r *Round) Stand() error {
	if r.phase != PhasePlayer {
		return fmt.Errorf("%w: stand in %s phase", ErrInvalidMove, r.phase)
	}
	r.logger.Debug("Player stands", "value", r.player.Value())
	r.phase = PhaseDealer
	return nil
}

// DealerHit draws one card for the dealer if the policy allows it. drew is
// false once the dealer stands or busts, which also finishes the round.
func (r *Round) DealerHit() (c deck.Card, drew bool, err error) {
	if r.phase != PhaseDealer {
		return deck.Card{}, false, fmt.Errorf("%w: dealer draw in %s phase", ErrInvalidMove, r.phase)
	}
	if !r.policy.ShouldHit(r.dealer.Value()) {
		r.phase = PhaseDone
		r.logger.Debug("Dealer finished", "value", r.dealer.Value())
		return deck.Card{}, false, nil
	}
	c, err = r.draw(r.dealer)
	if err != nil {
		return deck.Card{}, false, fmt.Errorf("dealer hit: %w", err)
	}
	r.logger.Debug("Dealer hits", "card", c, "value", r.dealer.Value())
	return c, true, nil
}

// PlayDealer runs the dealer policy to completion and returns the cards drawn.
func (r *Round) PlayDealer() ([]deck.Card, error) {
	var drawn []deck.Card
	for {
		c, drew, err := r.DealerHit()
		if err != nil {
			return drawn, err
		}
		if !drew {
			return drawn, nil
		}
		drawn = append(drawn, c)
	}
}

// Outcome returns the result of a finished round.
func (r *Round) Outcome() (Outcome, error) {
	if r.phase != PhaseDone {
		return Push, fmt.Errorf("%w: outcome in %s phase", ErrInvalidMove, r.phase)
	}
	return Decide(r.player.Value(), r.dealer.Value()), nil
}

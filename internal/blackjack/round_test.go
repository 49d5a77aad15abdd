package blackjack

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestRoundScriptedDealerScenario(t *testing.T) {
	// Full deck order: spades A..K, hearts, diamonds, clubs.
	// 100%52 = 48 -> ♣10, 51%51 -> ♠A, 7%50 -> ♠9, 26%49 -> ♦3,
	// then the dealer takes the top two cards ♠2, ♠3.
	src := rng.NewScripted(100, 51, 7, 26, 0, 0)
	r, err := NewRound(src, quietLogger())
	require.NoError(t, err)

	outcome, err := Play(r, StandOn(17))
	require.NoError(t, err)

	assert.Equal(t, deck.MustParseCards("10c 9s"), r.Player().Cards())
	assert.Equal(t, deck.MustParseCards("As 3d 2s 3s"), r.Dealer().Cards())
	assert.Equal(t, Points(19), r.Player().Value())
	assert.Equal(t, Points(19), r.Dealer().Value())
	assert.Equal(t, Push, outcome)
	assert.Equal(t, 46, r.ShoeSize())
	assert.Equal(t, 0, src.Remaining(), "dealer must stop as soon as it reaches 17 or more")
}

func TestDealerStopsOneDrawPastSeventeen(t *testing.T) {
	// Always draw the top card: player ♠A ♠3, dealer ♠2 ♠4 ♠5 ♠6.
	src := rng.NewScripted(0, 0, 0, 0, 0, 0)
	r, err := NewRound(src, quietLogger())
	require.NoError(t, err)

	outcome, err := Play(r, AlwaysStand)
	require.NoError(t, err)

	assert.Equal(t, deck.MustParseCards("2s 4s 5s 6s"), r.Dealer().Cards())
	assert.Equal(t, Points(17), r.Dealer().Value())
	assert.Equal(t, Points(14), r.Player().Value())
	assert.Equal(t, DealerWins, outcome)
}

func TestDealerBusts(t *testing.T) {
	shoe := deck.FromCards(deck.MustParseCards("10h 10d 9c 6s 8h"))
	src := rng.NewScripted(0, 0, 0, 0, 0)
	r, err := NewRound(src, quietLogger(), WithShoe(shoe))
	require.NoError(t, err)

	outcome, err := Play(r, StandOn(17))
	require.NoError(t, err)

	assert.True(t, r.Dealer().Value().IsBust())
	assert.Equal(t, PlayerWins, outcome)
	assert.Equal(t, 0, r.ShoeSize())
}

func TestPlayerBustEndsTurn(t *testing.T) {
	shoe := deck.FromCards(deck.MustParseCards("10h 9d 6c 8s Kd 2c"))
	r, err := NewRound(rng.NewScripted(0, 0, 0, 0, 0, 0), quietLogger(), WithShoe(shoe))
	require.NoError(t, err)
	require.NoError(t, r.Deal())

	assert.Equal(t, Points(16), r.Player().Value())
	assert.Equal(t, PhasePlayer, r.Phase())

	c, err := r.Hit()
	require.NoError(t, err)
	assert.Equal(t, deck.Card{Suit: deck.Diamonds, Rank: deck.King}, c)
	assert.True(t, r.Player().Value().IsBust())
	assert.Equal(t, PhaseDealer, r.Phase())

	_, err = r.Hit()
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.ErrorIs(t, r.Stand(), ErrInvalidMove)

	// Dealer holds 17 and draws nothing.
	drawn, err := r.PlayDealer()
	require.NoError(t, err)
	assert.Empty(t, drawn)

	outcome, err := r.Outcome()
	require.NoError(t, err)
	assert.Equal(t, DealerWins, outcome)
}

func TestRoundPhaseErrors(t *testing.T) {
	r, err := NewRound(rng.NewLCG(1), quietLogger())
	require.NoError(t, err)

	_, err = r.Hit()
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = r.Outcome()
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, _, err = r.DealerHit()
	assert.ErrorIs(t, err, ErrInvalidMove)

	require.NoError(t, r.Deal())
	assert.ErrorIs(t, r.Deal(), ErrInvalidMove)
}

func TestRoundEmptyShoe(t *testing.T) {
	shoe := deck.FromCards(deck.MustParseCards("Ah Kd 5c"))
	r, err := NewRound(rng.NewLCG(3), quietLogger(), WithShoe(shoe))
	require.NoError(t, err)

	err = r.Deal()
	assert.ErrorIs(t, err, deck.ErrEmptyDeck)
}

func TestNewRoundOptions(t *testing.T) {
	r, err := NewRound(rng.NewMersenneTwister(1), quietLogger(), WithRanks(deck.LegacyRanks))
	require.NoError(t, err)
	assert.Equal(t, 48, r.ShoeSize())

	_, err = NewRound(rng.NewMersenneTwister(1), quietLogger(), WithRanks(20))
	assert.ErrorIs(t, err, deck.ErrInvalidCard)

	_, err = NewRound(nil, quietLogger())
	assert.ErrorIs(t, err, rng.ErrInvalidGenerator)

	r, err = NewRound(rng.NewLCG(1), nil, WithDealerPolicy(DealerPolicy{StandOn: 18}))
	require.NoError(t, err)
	assert.Equal(t, 18, r.Policy().StandOn)
}

func TestRoundIsDeterministic(t *testing.T) {
	for _, method := range []rng.Method{rng.RandU, rng.Mersenne} {
		t.Run(method.String(), func(t *testing.T) {
			play := func() (*Round, Outcome) {
				src, err := rng.New(method, rng.WithSeed(20180116))
				require.NoError(t, err)
				r, err := NewRound(src, quietLogger())
				require.NoError(t, err)
				o, err := Play(r, StandOn(17))
				require.NoError(t, err)
				return r, o
			}

			r1, o1 := play()
			r2, o2 := play()
			assert.Equal(t, o1, o2)
			assert.Equal(t, r1.Player().Cards(), r2.Player().Cards())
			assert.Equal(t, r1.Dealer().Cards(), r2.Dealer().Cards())
		})
	}
}

func TestRoundNeverDealsDuplicates(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		r, err := NewRound(rng.NewMersenneTwister(uint32(seed)), quietLogger())
		require.NoError(t, err)
		_, err = Play(r, NeverBust)
		require.NoError(t, err)

		seen := make(map[deck.Card]bool)
		for _, c := range append(r.Player().Cards(), r.Dealer().Cards()...) {
			assert.False(t, seen[c], "seed %d dealt %v twice", seed, c)
			seen[c] = true
		}
		assert.Equal(t, 52-len(seen), r.ShoeSize())
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name           string
		player, dealer Score
		want           Outcome
	}{
		{"higher total wins", Points(20), Points(18), PlayerWins},
		{"lower total loses", Points(17), Points(19), DealerWins},
		{"equal totals push", Points(18), Points(18), Push},
		{"dealer bust", Points(12), Bust, PlayerWins},
		{"player bust", Bust, Points(17), DealerWins},
		{"both bust", Bust, Bust, DealerWins},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.player, tt.dealer))
		})
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("stand-on", 15)
	require.NoError(t, err)
	assert.Equal(t, StandOn(15), s)

	_, err = ParseStrategy("stand-on", 0)
	assert.Error(t, err)

	s, err = ParseStrategy("never-bust", 0)
	require.NoError(t, err)
	assert.NotNil(t, s)

	_, err = ParseStrategy("martingale", 17)
	assert.Error(t, err)
}

func TestStrategies(t *testing.T) {
	up := deck.Card{Suit: deck.Spades, Rank: deck.Ten}
	hand := func(cards string) *Hand {
		h := NewHand()
		for _, c := range deck.MustParseCards(cards) {
			h.Add(c)
		}
		return h
	}

	assert.Equal(t, Hit, StandOn(17).Decide(hand("10h 6d"), up))
	assert.Equal(t, Stand, StandOn(17).Decide(hand("10h 7d"), up))

	assert.Equal(t, Hit, NeverBust.Decide(hand("5h 6d"), up))
	assert.Equal(t, Stand, NeverBust.Decide(hand("10h 2d"), up))
	assert.Equal(t, Hit, NeverBust.Decide(hand("Ah 7d"), up))
	assert.Equal(t, Stand, NeverBust.Decide(hand("Ah Kd"), up))

	assert.Equal(t, Stand, AlwaysStand.Decide(hand("2h 3d"), up))
}

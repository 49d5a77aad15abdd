package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rng"
)

func win(player, dealer blackjack.Score) RoundResult {
	return RoundResult{Outcome: blackjack.PlayerWins, Player: player, Dealer: dealer}
}

func loss(player, dealer blackjack.Score) RoundResult {
	return RoundResult{Outcome: blackjack.DealerWins, Player: player, Dealer: dealer}
}

func TestStatisticsAdd(t *testing.T) {
	var s Statistics
	s.Add(win(blackjack.Points(20), blackjack.Points(18)))
	s.Add(win(blackjack.Points(15), blackjack.Bust))
	s.Add(loss(blackjack.Bust, blackjack.Points(17)))
	s.Add(RoundResult{
		Outcome:         blackjack.Push,
		Player:          blackjack.Points(21),
		Dealer:          blackjack.Points(21),
		PlayerBlackjack: true,
		DealerBlackjack: true,
	})

	require.NoError(t, s.Validate())
	assert.Equal(t, 4, s.Rounds)
	assert.Equal(t, 2, s.PlayerWins)
	assert.Equal(t, 1, s.DealerWins)
	assert.Equal(t, 1, s.Pushes)
	assert.Equal(t, 1, s.PlayerBusts)
	assert.Equal(t, 1, s.DealerBusts)
	assert.Equal(t, 1, s.PlayerBlackjacks)
	assert.Equal(t, 1, s.DealerBlackjacks)

	assert.Equal(t, 1, s.DealerFinal(blackjack.Points(18)))
	assert.Equal(t, 1, s.DealerFinal(blackjack.Points(21)))
	assert.Equal(t, 1, s.DealerFinal(blackjack.Bust))
	assert.Equal(t, 0, s.DealerFinal(blackjack.Points(19)))

	assert.InDelta(t, 0.25, s.Mean(), 1e-9)
	assert.InDelta(t, 0.5, s.Rate(s.PlayerWins), 1e-9)
}

func TestStatisticsVariance(t *testing.T) {
	var s Statistics
	assert.Equal(t, 0.0, s.Mean())
	assert.Equal(t, 0.0, s.StdError())

	s.Add(win(blackjack.Points(20), blackjack.Points(18)))
	assert.Equal(t, 0.0, s.Variance(), "one sample has no variance")

	s.Add(loss(blackjack.Points(12), blackjack.Points(20)))
	// Samples +1 and -1: mean 0, sample variance 2.
	assert.InDelta(t, 2.0, s.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt2, s.StdDev(), 1e-9)
	assert.InDelta(t, 1.0, s.StdError(), 1e-9)

	low, high := s.ConfidenceInterval95()
	assert.InDelta(t, -1.96, low, 1e-9)
	assert.InDelta(t, 1.96, high, 1e-9)
}

func TestStatisticsMerge(t *testing.T) {
	var a, b, all Statistics
	results := []RoundResult{
		win(blackjack.Points(19), blackjack.Points(17)),
		loss(blackjack.Bust, blackjack.Points(20)),
		win(blackjack.Points(18), blackjack.Bust),
		{Outcome: blackjack.Push, Player: blackjack.Points(17), Dealer: blackjack.Points(17)},
		loss(blackjack.Points(16), blackjack.Points(19)),
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(&b)
	assert.Equal(t, all, a)
	require.NoError(t, a.Validate())
}

func TestStatisticsValidate(t *testing.T) {
	var s Statistics
	assert.Error(t, s.Validate(), "empty statistics are invalid")

	s.Add(win(blackjack.Points(20), blackjack.Points(18)))
	require.NoError(t, s.Validate())

	s.PlayerWins++
	assert.Error(t, s.Validate())
}

func TestNewRoundResult(t *testing.T) {
	// Zero draws deal the shoe in order: player, dealer, player, dealer.
	shoe := deck.FromCards(deck.MustParseCards("As 10s Kh Ah 5c"))
	r, err := blackjack.NewRound(rng.NewScripted(0, 0, 0, 0, 0), nil, blackjack.WithShoe(shoe))
	require.NoError(t, err)

	outcome, err := blackjack.Play(r, blackjack.AlwaysStand)
	require.NoError(t, err)

	res := NewRoundResult(3, 99, r, outcome)
	assert.Equal(t, 3, res.Round)
	assert.Equal(t, uint64(99), res.Seed)
	assert.Equal(t, blackjack.Push, res.Outcome)
	assert.Equal(t, blackjack.Points(21), res.Player)
	assert.Equal(t, blackjack.Points(21), res.Dealer)
	assert.Equal(t, 2, res.PlayerCards)
	assert.Equal(t, 2, res.DealerCards)
	assert.True(t, res.PlayerBlackjack)
	assert.True(t, res.DealerBlackjack)
}

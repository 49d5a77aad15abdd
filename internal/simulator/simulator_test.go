package simulator

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rng"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNewDefaults(t *testing.T) {
	sim := New(Config{Rounds: 10})
	assert.Equal(t, 1, sim.config.Workers)
	assert.Equal(t, deck.StandardRanks, sim.config.Ranks)
	assert.Equal(t, blackjack.DefaultDealerPolicy(), sim.config.Policy)
	assert.NotNil(t, sim.config.Strategy)
}

func TestRun(t *testing.T) {
	for _, method := range []rng.Method{rng.RandU, rng.Mersenne} {
		t.Run(method.String(), func(t *testing.T) {
			sim := New(Config{
				Rounds:   200,
				Workers:  4,
				Method:   method,
				Seed:     12345,
				Strategy: blackjack.StandOn(17),
				Logger:   testLogger(),
			})

			stats, err := sim.Run(context.Background())
			require.NoError(t, err)
			require.NoError(t, stats.Validate())
			assert.Equal(t, 200, stats.Rounds)
			assert.Positive(t, stats.PlayerWins)
			assert.Positive(t, stats.DealerWins)
		})
	}
}

func TestRunIndependentOfWorkerCount(t *testing.T) {
	run := func(workers int) any {
		sim := New(Config{
			Rounds:  150,
			Workers: workers,
			Method:  rng.Mersenne,
			Seed:    99,
			Logger:  testLogger(),
		})
		stats, err := sim.Run(context.Background())
		require.NoError(t, err)
		return *stats
	}

	assert.Equal(t, run(1), run(3))
	assert.Equal(t, run(1), run(16))
}

func TestRunDifferentSeedsDiffer(t *testing.T) {
	run := func(seed uint64) any {
		stats, err := New(Config{Rounds: 300, Seed: seed, Logger: testLogger()}).Run(context.Background())
		require.NoError(t, err)
		return *stats
	}
	assert.NotEqual(t, run(1), run(2))
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Rounds: 1000, Workers: 2, Logger: testLogger()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsZeroRounds(t *testing.T) {
	_, err := New(Config{Logger: testLogger()}).Run(context.Background())
	assert.Error(t, err)
}

func TestPlayRoundReplays(t *testing.T) {
	sim := New(Config{Rounds: 10, Method: rng.RandU, Seed: 7, Ranks: deck.LegacyRanks, Logger: testLogger()})

	r1, res1, err := sim.PlayRound(4)
	require.NoError(t, err)
	r2, res2, err := sim.PlayRound(4)
	require.NoError(t, err)

	assert.Equal(t, res1, res2)
	assert.Equal(t, r1.Player().Cards(), r2.Player().Cards())
	assert.Equal(t, r1.Dealer().Cards(), r2.Dealer().Cards())
	assert.Equal(t, rng.DeriveSeed(7, 4), res1.Seed)
	assert.Equal(t, 4, res1.Round)

	for _, c := range append(r1.Player().Cards(), r1.Dealer().Cards()...) {
		assert.NotEqual(t, deck.King, c.Rank, "legacy deck has no kings")
	}
}

func TestWriteSummary(t *testing.T) {
	stats, err := New(Config{Rounds: 50, Seed: 3, Logger: testLogger()}).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteSummary(&buf, stats, "randU vs stand-on 17")
	out := buf.String()
	assert.Contains(t, out, "=== RESULTS (randU vs stand-on 17) ===")
	assert.Contains(t, out, "Rounds played: 50")
	assert.Contains(t, out, "95% CI")
	assert.Contains(t, out, "bust:")
}

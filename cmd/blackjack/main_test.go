package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rng"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("blackjack"),
		kong.Vars{"version": "test"},
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	return &cli, ctx, err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultCommandIsPlay(t *testing.T) {
	_, ctx, err := parse(t)
	require.NoError(t, err)
	assert.Equal(t, "play", ctx.Command())
}

func TestRandMethodFlag(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{name: "default", args: nil, want: "randU"},
		{name: "randU", args: []string{"--rand-method", "randU"}, want: "randU"},
		{name: "Mersenne", args: []string{"--rand-method=Mersenne"}, want: "Mersenne"},
		{name: "unknown", args: []string{"--rand-method", "xorshift"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli, _, err := parse(t, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cli.RandMethod)
		})
	}
}

func TestResolveFlags(t *testing.T) {
	cli, ctx, err := parse(t, "--rand-method", "Mersenne", "--seed", "5489", "--legacy-deck", "--no-color")
	require.NoError(t, err)

	s, err := cli.resolve(ctx, quartz.NewMock(t))
	require.NoError(t, err)
	assert.Equal(t, rng.Mersenne, s.cfg.Method())
	assert.Equal(t, uint64(5489), s.seed)
	assert.Equal(t, deck.LegacyRanks, s.cfg.Game.DeckRanks)
	assert.Equal(t, 48, s.deckSize())
	assert.False(t, s.color)
}

func TestResolveSeedFromClock(t *testing.T) {
	clock := quartz.NewMock(t)
	now := time.Date(2025, time.June, 1, 9, 30, 0, 0, time.UTC)
	clock.Set(now)

	cli, ctx, err := parse(t)
	require.NoError(t, err)

	s, err := cli.resolve(ctx, clock)
	require.NoError(t, err)
	assert.Equal(t, uint64(now.Unix()), s.seed)
	assert.Equal(t, rng.RandU, s.cfg.Method())
	assert.Equal(t, 52, s.deckSize())
}

func TestResolveConfigFile(t *testing.T) {
	path := writeConfig(t, `
game {
  rand_method = "Mersenne"
  seed        = 9
}

log {
  level = "warn"
}
`)

	t.Run("file values apply", func(t *testing.T) {
		cli, ctx, err := parse(t, "--config", path)
		require.NoError(t, err)

		s, err := cli.resolve(ctx, quartz.NewMock(t))
		require.NoError(t, err)
		assert.Equal(t, "Mersenne", s.cfg.Game.RandMethod)
		assert.Equal(t, uint64(9), s.seed)
		assert.Equal(t, "warn", s.cfg.Log.Level)
	})

	t.Run("flags override file", func(t *testing.T) {
		cli, ctx, err := parse(t, "--config", path, "--rand-method", "randU", "--seed", "0", "--debug")
		require.NoError(t, err)

		s, err := cli.resolve(ctx, quartz.NewMock(t))
		require.NoError(t, err)
		assert.Equal(t, "randU", s.cfg.Game.RandMethod)
		assert.Equal(t, uint64(0), s.seed)
		assert.Equal(t, "debug", s.cfg.Log.Level)
	})
}

func TestResolveInvalidConfig(t *testing.T) {
	path := writeConfig(t, `game { deck_ranks = 20 }`)
	cli, ctx, err := parse(t, "--config", path)
	require.NoError(t, err)

	_, err = cli.resolve(ctx, quartz.NewMock(t))
	assert.Error(t, err)
}

func TestSimulateFlags(t *testing.T) {
	path := writeConfig(t, `
simulation {
  rounds   = 500
  strategy = "never-bust"
}
`)
	cli, ctx, err := parse(t, "--config", path, "--seed", "1", "simulate", "--workers", "3", "--stand-on", "15")
	require.NoError(t, err)
	assert.Equal(t, "simulate", ctx.Command())

	s, err := cli.resolve(ctx, quartz.NewMock(t))
	require.NoError(t, err)
	require.NoError(t, cli.Simulate.apply(ctx, s))

	assert.Equal(t, 500, s.cfg.Simulation.Rounds, "unset flag keeps file value")
	assert.Equal(t, "never-bust", s.cfg.Simulation.Strategy)
	assert.Equal(t, 3, s.cfg.Simulation.Workers)
	assert.Equal(t, 15, s.cfg.Simulation.StandOn)

	sim, err := newSimulator(s)
	require.NoError(t, err)
	_, result, err := sim.PlayRound(7)
	require.NoError(t, err)
	assert.Equal(t, rng.DeriveSeed(1, 7), result.Seed)
}

func TestRoundFactoryMatchesSimulator(t *testing.T) {
	cli, ctx, err := parse(t, "--seed", "42", "replay", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, cli.Replay.Round)

	s, err := cli.resolve(ctx, quartz.NewMock(t))
	require.NoError(t, err)

	newRound := s.roundFactory()
	r1, seed, err := newRound(3)
	require.NoError(t, err)
	assert.Equal(t, rng.DeriveSeed(42, 3), seed)
	require.NoError(t, r1.Deal())

	r2, _, err := newRound(3)
	require.NoError(t, err)
	require.NoError(t, r2.Deal())
	assert.Equal(t, r1.Player().Cards(), r2.Player().Cards())
	assert.Equal(t, r1.Dealer().Cards(), r2.Dealer().Cards())
}

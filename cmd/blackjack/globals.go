package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rng"
)

// Globals are flags shared by every command. Flags given on the command line
// take precedence over the config file.
type Globals struct {
	RandMethod string `name:"rand-method" enum:"randU,Mersenne" default:"randU" help:"Random number generator: randU or Mersenne"`
	Seed       uint64 `help:"Generator seed (default: current time in seconds)"`
	Config     string `type:"path" help:"Path to an HCL settings file"`
	Debug      bool   `help:"Enable debug logging"`
	NoColor    bool   `name:"no-color" help:"Disable coloured output"`
	LegacyDeck bool   `name:"legacy-deck" help:"Deal from the 48-card deck without kings"`
}

// settings is the resolved configuration for one invocation
type settings struct {
	cfg    *config.Config
	seed   uint64
	color  bool
	logger *log.Logger
}

// flagSet reports whether the named flag was given on the command line
func flagSet(ctx *kong.Context, name string) bool {
	for _, p := range ctx.Path {
		if p.Flag != nil && p.Flag.Name == name {
			return true
		}
	}
	return false
}

// resolve loads the config file, applies command-line overrides and picks a
// seed from clock when none was configured.
func (g *Globals) resolve(ctx *kong.Context, clock quartz.Clock) (*settings, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if flagSet(ctx, "rand-method") {
		cfg.Game.RandMethod = g.RandMethod
	}
	if flagSet(ctx, "seed") {
		seed := g.Seed
		cfg.Game.Seed = &seed
	}
	if g.LegacyDeck {
		cfg.Game.DeckRanks = deck.LegacyRanks
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var seed uint64
	if cfg.Game.Seed != nil {
		seed = *cfg.Game.Seed
	} else if seed, err = rng.Seed(rng.WithClockSeed(clock)); err != nil {
		return nil, err
	}

	return &settings{
		cfg:   cfg,
		seed:  seed,
		color: !g.NoColor && term.IsTerminal(int(os.Stdout.Fd())),
	}, nil
}

// setupLogger configures charmbracelet/log on w at the configured level
func setupLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           lvl,
	}), nil
}

// applyColor turns off styling for the package-level lipgloss renderer
func (s *settings) applyColor() {
	if !s.color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// roundFactory deals round n from a generator seeded with
// rng.DeriveSeed(seed, n), the same seeds the simulator uses.
func (s *settings) roundFactory() func(n int) (*blackjack.Round, uint64, error) {
	return func(n int) (*blackjack.Round, uint64, error) {
		seed := rng.DeriveSeed(s.seed, n)
		src, err := rng.New(s.cfg.Method(), rng.WithSeed(seed), rng.WithTwisterInit(s.cfg.TwisterInit()))
		if err != nil {
			return nil, seed, err
		}
		round, err := blackjack.NewRound(src, s.logger,
			blackjack.WithRanks(s.cfg.Game.DeckRanks),
			blackjack.WithDealerPolicy(s.cfg.DealerPolicy()))
		return round, seed, err
	}
}

func (s *settings) deckSize() int {
	return s.cfg.Game.DeckRanks * len(deck.Suits)
}

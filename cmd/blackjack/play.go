package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/console"
)

// PlayCmd plays rounds on stdin/stdout until the player stops
type PlayCmd struct{}

func (cmd *PlayCmd) Run(ctx *kong.Context, g *Globals) error {
	s, err := g.resolve(ctx, quartz.NewReal())
	if err != nil {
		return err
	}
	if s.logger, err = setupLogger(os.Stderr, s.cfg.Log.Level); err != nil {
		return err
	}
	s.applyColor()

	game := console.New(os.Stdin, os.Stdout,
		console.WithColor(s.color),
		console.WithLogger(s.logger))
	game.Banner(console.Settings{
		RandMethod:    s.cfg.Game.RandMethod,
		Seed:          s.seed,
		DeckSize:      s.deckSize(),
		DealerStandOn: s.cfg.Game.DealerStandOn,
	})

	tally, err := game.Run(s.roundFactory())
	if err != nil {
		return err
	}
	s.logger.Debug("Session finished", "rounds", tally.Rounds, "won", tally.PlayerWins, "lost", tally.DealerWins)
	return nil
}

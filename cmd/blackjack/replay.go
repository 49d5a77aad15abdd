package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"
	"github.com/sanity-io/litter"
)

// ReplayCmd replays a single round of a simulation so it can be inspected
type ReplayCmd struct {
	Round    int    `arg:"" help:"Round index within the simulation (from 0)"`
	Strategy string `help:"Player strategy" enum:"stand-on,never-bust,always-stand" default:"stand-on"`
	StandOn  int    `name:"stand-on" help:"Total the stand-on strategy stands at" default:"17"`
	Dump     bool   `help:"Dump the full round record"`
}

func (cmd *ReplayCmd) Run(ctx *kong.Context, g *Globals) error {
	if !flagSet(ctx, "seed") {
		return fmt.Errorf("replay needs the --seed the simulation ran with")
	}
	s, err := g.resolve(ctx, quartz.NewReal())
	if err != nil {
		return err
	}
	if flagSet(ctx, "strategy") {
		s.cfg.Simulation.Strategy = cmd.Strategy
	}
	if flagSet(ctx, "stand-on") {
		s.cfg.Simulation.StandOn = cmd.StandOn
	}
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	if s.logger, err = setupLogger(os.Stderr, s.cfg.Log.Level); err != nil {
		return err
	}
	s.applyColor()

	sim, err := newSimulator(s)
	if err != nil {
		return err
	}
	round, result, err := sim.PlayRound(cmd.Round)
	if err != nil {
		return err
	}

	fmt.Printf("Round %d (seed %d, %s)\n", result.Round, result.Seed, s.cfg.Game.RandMethod)
	fmt.Printf("Player: %s (%s)\n", round.Player(), result.Player)
	fmt.Printf("Dealer: %s (%s)\n", round.Dealer(), result.Dealer)
	fmt.Printf("Result: %s\n", result.Outcome)
	if cmd.Dump {
		fmt.Println(litter.Sdump(result))
	}
	s.logger.Debug("Replayed round", "round", cmd.Round, "shoe_left", round.ShoeSize())
	return nil
}

// VersionCmd prints the version
type VersionCmd struct{}

func (cmd *VersionCmd) Run() error {
	fmt.Printf("blackjack %s\n", version)
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/report"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd plays many rounds in parallel with a fixed strategy
type SimulateCmd struct {
	Rounds   int    `help:"Number of rounds to simulate" default:"10000"`
	Workers  int    `help:"Parallel workers (default: number of CPUs)"`
	Strategy string `help:"Player strategy" enum:"stand-on,never-bust,always-stand" default:"stand-on"`
	StandOn  int    `name:"stand-on" help:"Total the stand-on strategy stands at" default:"17"`
	Report   string `type:"path" help:"Write a JSON report to this file"`
}

// apply copies flags given on the command line over the config file values
func (cmd *SimulateCmd) apply(ctx *kong.Context, s *settings) error {
	sim := &s.cfg.Simulation
	if flagSet(ctx, "rounds") {
		sim.Rounds = cmd.Rounds
	}
	if flagSet(ctx, "workers") {
		sim.Workers = cmd.Workers
	}
	if flagSet(ctx, "strategy") {
		sim.Strategy = cmd.Strategy
	}
	if flagSet(ctx, "stand-on") {
		sim.StandOn = cmd.StandOn
	}
	if flagSet(ctx, "report") {
		sim.Report = cmd.Report
	}
	return s.cfg.Validate()
}

func newSimulator(s *settings) (*simulator.Simulator, error) {
	strategy, err := blackjack.ParseStrategy(s.cfg.Simulation.Strategy, s.cfg.Simulation.StandOn)
	if err != nil {
		return nil, err
	}
	return simulator.New(simulator.Config{
		Rounds:      s.cfg.Simulation.Rounds,
		Workers:     s.cfg.Simulation.Workers,
		Method:      s.cfg.Method(),
		TwisterInit: s.cfg.TwisterInit(),
		Seed:        s.seed,
		Ranks:       s.cfg.Game.DeckRanks,
		Policy:      s.cfg.DealerPolicy(),
		Strategy:    strategy,
		Logger:      s.logger,
	}), nil
}

func (cmd *SimulateCmd) Run(ctx *kong.Context, g *Globals) error {
	clock := quartz.NewReal()
	s, err := g.resolve(ctx, clock)
	if err != nil {
		return err
	}
	if err := cmd.apply(ctx, s); err != nil {
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

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := clock.Now()
	stats, err := sim.Run(runCtx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	end := clock.Now()

	label := fmt.Sprintf("%s, %s", s.cfg.Game.RandMethod, strategyLabel(s))
	simulator.WriteSummary(os.Stdout, stats, label)

	if path := s.cfg.Simulation.Report; path != "" {
		r := report.New(report.Settings{
			RandMethod:    s.cfg.Game.RandMethod,
			TwisterInit:   s.cfg.Game.TwisterInit,
			Seed:          s.seed,
			DeckRanks:     s.cfg.Game.DeckRanks,
			DealerStandOn: s.cfg.Game.DealerStandOn,
			Strategy:      strategyLabel(s),
			Rounds:        s.cfg.Simulation.Rounds,
			Workers:       s.cfg.Simulation.Workers,
		}, stats, start, end)
		r.Metadata.Version = version
		if err := r.Write(path); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		s.logger.Info("Report written", "path", path, "run_id", r.RunID)
	}
	return nil
}

func strategyLabel(s *settings) string {
	if s.cfg.Simulation.Strategy == "stand-on" {
		return fmt.Sprintf("stand-on %d", s.cfg.Simulation.StandOn)
	}
	return s.cfg.Simulation.Strategy
}

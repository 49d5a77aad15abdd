package simulator

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rng"
	"github.com/lox/blackjack/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds      int
	Workers     int
	Method      rng.Method
	TwisterInit rng.TwisterInit
	Seed        uint64
	Ranks       int
	Policy      blackjack.DealerPolicy
	Strategy    blackjack.Strategy
	Logger      *log.Logger
}

// Simulator plays many independent rounds
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration. Zero values for
// Workers, Ranks and Policy fall back to 1 worker, a 52-card deck and the
// house dealer.
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.Ranks == 0 {
		config.Ranks = deck.StandardRanks
	}
	if config.Policy.StandOn == 0 {
		config.Policy = blackjack.DefaultDealerPolicy()
	}
	if config.Strategy == nil {
		config.Strategy = blackjack.StandOn(blackjack.DefaultStandOn)
	}
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Simulator{config: config, logger: logger.WithPrefix("sim")}
}

// Run plays every round and returns the aggregated statistics. Round i is
// always dealt from a generator seeded with rng.DeriveSeed(Seed, i), so
// results do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}

	workers := min(s.config.Workers, s.config.Rounds)
	partials := make([]statistics.Statistics, workers)

	s.logger.Info("Starting simulation",
		"rounds", s.config.Rounds,
		"workers", workers,
		"method", s.config.Method,
		"seed", s.config.Seed)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			stats := &partials[w]
			for i := w; i < s.config.Rounds; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				_, result, err := s.PlayRound(i)
				if err != nil {
					return fmt.Errorf("round %d (seed %d): %w", i, result.Seed, err)
				}
				stats.Add(result)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for i := range partials {
		total.Merge(&partials[i])
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation finished", "rounds", total.Rounds, "mean", fmt.Sprintf("%.4f", total.Mean()))
	return total, nil
}

// PlayRound plays round index with its own deck and generator and returns the
// finished round for inspection or replay.
func (s *Simulator) PlayRound(index int) (*blackjack.Round, statistics.RoundResult, error) {
	seed := rng.DeriveSeed(s.config.Seed, index)
	result := statistics.RoundResult{Round: index, Seed: seed}

	src, err := rng.New(s.config.Method, rng.WithSeed(seed), rng.WithTwisterInit(s.config.TwisterInit))
	if err != nil {
		return nil, result, err
	}
	round, err := blackjack.NewRound(src, s.logger,
		blackjack.WithRanks(s.config.Ranks),
		blackjack.WithDealerPolicy(s.config.Policy))
	if err != nil {
		return nil, result, err
	}

	outcome, err := blackjack.Play(round, s.config.Strategy)
	if err != nil {
		return round, result, err
	}

	return round, statistics.NewRoundResult(index, seed, round, outcome), nil
}

// Package config loads the optional HCL settings file.
//
//	game {
//	  rand_method     = "Mersenne"
//	  seed            = 20180116
//	  deck_ranks      = 13
//	  twister_init    = "canonical"
//	  dealer_stand_on = 17
//	}
//
//	simulation {
//	  rounds   = 100000
//	  workers  = 8
//	  strategy = "stand-on"
//	  stand_on = 17
//	  report   = "results.json"
//	}
//
//	log {
//	  level = "info"
//	}
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/rng"
)

// Config represents the complete settings file
type Config struct {
	Game       GameSettings       `hcl:"game,block"`
	Simulation SimulationSettings `hcl:"simulation,block"`
	Log        LogSettings        `hcl:"log,block"`
}

// GameSettings controls how every round is dealt
type GameSettings struct {
	RandMethod    string  `hcl:"rand_method,optional"`
	Seed          *uint64 `hcl:"seed,optional"`
	DeckRanks     int     `hcl:"deck_ranks,optional"`
	TwisterInit   string  `hcl:"twister_init,optional"`
	DealerStandOn int     `hcl:"dealer_stand_on,optional"`
}

// SimulationSettings controls batch simulation runs
type SimulationSettings struct {
	Rounds   int    `hcl:"rounds,optional"`
	Workers  int    `hcl:"workers,optional"`
	Strategy string `hcl:"strategy,optional"`
	StandOn  int    `hcl:"stand_on,optional"`
	Report   string `hcl:"report,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// file mirrors Config with optional blocks so a settings file may leave any
// of them out.
type file struct {
	Game       *GameSettings       `hcl:"game,block"`
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Log        *LogSettings        `hcl:"log,block"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			RandMethod:    rng.RandU.String(),
			DeckRanks:     deck.StandardRanks,
			TwisterInit:   rng.CanonicalInit.String(),
			DealerStandOn: blackjack.DefaultStandOn,
		},
		Simulation: SimulationSettings{
			Rounds:   10000,
			Workers:  runtime.NumCPU(),
			Strategy: "stand-on",
			StandOn:  blackjack.DefaultStandOn,
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; attributes left out of the file keep their default values.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if raw.Game != nil {
		config.Game.merge(*raw.Game)
	}
	if raw.Simulation != nil {
		config.Simulation.merge(*raw.Simulation)
	}
	if raw.Log != nil && raw.Log.Level != "" {
		config.Log.Level = raw.Log.Level
	}

	return config, nil
}

func (g *GameSettings) merge(o GameSettings) {
	if o.RandMethod != "" {
		g.RandMethod = o.RandMethod
	}
	if o.Seed != nil {
		g.Seed = o.Seed
	}
	if o.DeckRanks != 0 {
		g.DeckRanks = o.DeckRanks
	}
	if o.TwisterInit != "" {
		g.TwisterInit = o.TwisterInit
	}
	if o.DealerStandOn != 0 {
		g.DealerStandOn = o.DealerStandOn
	}
}

func (s *SimulationSettings) merge(o SimulationSettings) {
	if o.Rounds != 0 {
		s.Rounds = o.Rounds
	}
	if o.Workers != 0 {
		s.Workers = o.Workers
	}
	if o.Strategy != "" {
		s.Strategy = o.Strategy
	}
	if o.StandOn != 0 {
		s.StandOn = o.StandOn
	}
	if o.Report != "" {
		s.Report = o.Report
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := rng.ParseMethod(c.Game.RandMethod); err != nil {
		return err
	}
	if _, ok := rng.ParseTwisterInit(c.Game.TwisterInit); !ok {
		return fmt.Errorf("invalid twister_init: %s", c.Game.TwisterInit)
	}
	if c.Game.DeckRanks < 1 || c.Game.DeckRanks > deck.StandardRanks {
		return fmt.Errorf("deck_ranks must be between 1 and %d", deck.StandardRanks)
	}
	if c.Game.DealerStandOn < 1 || c.Game.DealerStandOn > blackjack.Target {
		return fmt.Errorf("dealer_stand_on must be between 1 and %d", blackjack.Target)
	}

	if c.Simulation.Rounds <= 0 {
		return fmt.Errorf("simulation rounds must be positive")
	}
	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation workers must be positive")
	}
	if _, err := blackjack.ParseStrategy(c.Simulation.Strategy, c.Simulation.StandOn); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// Method returns the configured generator
func (c *Config) Method() rng.Method {
	m, _ := rng.ParseMethod(c.Game.RandMethod)
	return m
}

// TwisterInit returns the configured Mersenne Twister seeding scheme
func (c *Config) TwisterInit() rng.TwisterInit {
	t, _ := rng.ParseTwisterInit(c.Game.TwisterInit)
	return t
}

// DealerPolicy returns the configured dealer rule
func (c *Config) DealerPolicy() blackjack.DealerPolicy {
	return blackjack.DealerPolicy{StandOn: c.Game.DealerStandOn}
}

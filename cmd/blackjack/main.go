package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play blackjack on the console (default)"`
	TUI      TUICmd      `cmd:"tui" help:"Play blackjack in a full-screen terminal UI"`
	Simulate SimulateCmd `cmd:"" help:"Simulate many rounds with a fixed player strategy"`
	Replay   ReplayCmd   `cmd:"" help:"Replay one simulated round card by card"`
	Info     VersionCmd  `cmd:"version" help:"Print version information"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-player blackjack against a house dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

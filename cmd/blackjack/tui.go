package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"
	"golang.org/x/term"

	"github.com/lox/blackjack/internal/tui"
)

// TUICmd plays in a full-screen Bubble Tea interface
type TUICmd struct {
	LogFile string `name:"log-file" type:"path" help:"Write logs to this file (the screen is taken by the UI)"`
}

func (cmd *TUICmd) Run(ctx *kong.Context, g *Globals) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tui needs an interactive terminal, use play instead")
	}

	s, err := g.resolve(ctx, quartz.NewReal())
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if cmd.LogFile != "" {
		f, err := os.OpenFile(cmd.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	if s.logger, err = setupLogger(logOut, s.cfg.Log.Level); err != nil {
		return err
	}
	s.applyColor()

	title := fmt.Sprintf("♠ ♥ BlackJack ♦ ♣  %s, %d cards", s.cfg.Game.RandMethod, s.deckSize())
	model, err := tui.New(s.roundFactory(), title, s.logger)
	if err != nil {
		return err
	}
	return tui.Run(model, tea.WithAltScreen())
}

// Package console plays blackjack on a line-oriented terminal: it prints the
// table after every card and asks yes/no questions on the input stream.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/statistics"
)

const (
	hitPrompt   = "Would you like another card? (y/n):"
	againPrompt = "Would you like to play again? (y/n):"
)

// Settings are echoed in the banner before the first round
type Settings struct {
	RandMethod    string
	Seed          uint64
	DeckSize      int
	DealerStandOn int
}

// RoundFactory creates round n of a session along with the seed it was
// dealt from.
type RoundFactory func(n int) (*blackjack.Round, uint64, error)

// Game reads answers from in and writes the table to out
type Game struct {
	in       *bufio.Reader
	out      io.Writer
	renderer *lipgloss.Renderer
	styles   styles
	logger   *log.Logger
}

// Option configures a Game
type Option func(*Game)

// WithColor forces colour output on or off. Without it the colour profile is
// detected from out.
func WithColor(enabled bool) Option {
	return func(g *Game) {
		if !enabled {
			g.renderer.SetColorProfile(termenv.Ascii)
		}
	}
}

// WithLogger sets the logger used for debug output
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New creates a console game
func New(in io.Reader, out io.Writer, opts ...Option) *Game {
	g := &Game{
		in:       bufio.NewReader(in),
		out:      out,
		renderer: lipgloss.NewRenderer(out),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.styles = newStyles(g.renderer)
	g.logger = g.logger.WithPrefix("console")
	return g
}

// Banner prints the title and the settings in force
func (g *Game) Banner(s Settings) {
	rule := g.styles.rule.Render(strings.Repeat("-", 30))
	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, g.styles.title.Render("BlackJack"))
	fmt.Fprintln(g.out, rule)
	fmt.Fprintf(g.out, "rand_method: %s\n", s.RandMethod)
	fmt.Fprintf(g.out, "seed: %d\n", s.Seed)
	fmt.Fprintf(g.out, "deck: %d cards\n", s.DeckSize)
	fmt.Fprintf(g.out, "dealer stands on: %d\n", s.DealerStandOn)
	fmt.Fprintln(g.out, rule)
	fmt.Fprintln(g.out)
}

// Run plays rounds from newRound until the player declines another game or
// input ends. It returns the tally of every finished round.
func (g *Game) Run(newRound RoundFactory) (*statistics.Statistics, error) {
	tally := &statistics.Statistics{}
	for n := 0; ; n++ {
		round, seed, err := newRound(n)
		if err != nil {
			return tally, err
		}
		g.logger.Debug("Starting round", "round", n, "seed", seed)

		outcome, err := g.PlayRound(round)
		if err != nil {
			return tally, err
		}
		tally.Add(statistics.NewRoundResult(n, seed, round, outcome))
		g.printTally(tally)

		again, err := g.ask(againPrompt)
		if err != nil {
			return tally, err
		}
		if !again {
			return tally, nil
		}
		fmt.Fprintln(g.out)
	}
}

// PlayRound deals r, asks the player to hit until they stand or bust, then
// plays out the dealer and announces the result.
func (g *Game) PlayRound(r *blackjack.Round) (blackjack.Outcome, error) {
	if err := r.Deal(); err != nil {
		return blackjack.Push, err
	}
	g.display(r)

	for r.Phase() == blackjack.PhasePlayer {
		hit, err := g.ask(hitPrompt)
		if err != nil {
			return blackjack.Push, err
		}
		if !hit {
			if err := r.Stand(); err != nil {
				return blackjack.Push, err
			}
			break
		}
		if _, err := r.Hit(); err != nil {
			return blackjack.Push, err
		}
		g.display(r)
		if r.Player().Value().IsBust() {
			fmt.Fprintln(g.out, g.styles.failure.Render("You have gone bust!"))
		}
	}

	fmt.Fprintf(g.out, "The dealer has: %s\n", g.styles.cards(r.Dealer().Cards()))
	for {
		_, drew, err := r.DealerHit()
		if err != nil {
			return blackjack.Push, err
		}
		if !drew {
			break
		}
		fmt.Fprintln(g.out, "The dealer hits")
		fmt.Fprintf(g.out, "The dealer has: %s\n", g.styles.cards(r.Dealer().Cards()))
	}

	dealer := r.Dealer().Value()
	if dealer.IsBust() {
		fmt.Fprintln(g.out, g.styles.success.Render("The dealer has gone bust!"))
	} else {
		fmt.Fprintf(g.out, "The dealer sticks with: %s (%s)\n", g.styles.cards(r.Dealer().Cards()), dealer)
	}

	outcome, err := r.Outcome()
	if err != nil {
		return blackjack.Push, err
	}
	switch outcome {
	case blackjack.PlayerWins:
		fmt.Fprintln(g.out, g.styles.success.Render("You won!"))
	case blackjack.DealerWins:
		fmt.Fprintln(g.out, g.styles.failure.Render("The dealer won!"))
	default:
		fmt.Fprintln(g.out, g.styles.prompt.Render("It's a draw!"))
	}
	return outcome, nil
}

func (g *Game) display(r *blackjack.Round) {
	if up, ok := r.DealerUpCard(); ok {
		fmt.Fprintf(g.out, "The dealer is showing: %s\n", g.styles.card(up))
	}
	fmt.Fprintf(g.out, "Your hand is: %s (%s)\n", g.styles.cards(r.Player().Cards()), r.Player().Value())
}

func (g *Game) printTally(s *statistics.Statistics) {
	fmt.Fprintln(g.out, g.styles.info.Render(fmt.Sprintf(
		"Won %d, lost %d, drawn %d", s.PlayerWins, s.DealerWins, s.Pushes)))
}

// ask repeats prompt until the answer is y or n. End of input counts as n.
func (g *Game) ask(prompt string) (bool, error) {
	for {
		fmt.Fprint(g.out, g.styles.prompt.Render(prompt)+" ")
		line, err := g.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("reading answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(g.out)
			g.logger.Debug("Input closed, answering no", "prompt", prompt)
			return false, nil
		}
	}
}

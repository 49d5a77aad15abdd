// Package tui is a full-screen blackjack table built on Bubble Tea.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/statistics"
)

// maxLogLines bounds the message history shown under the table
const maxLogLines = 8

// RoundFactory creates round n along with the seed it was dealt from
type RoundFactory func(n int) (*blackjack.Round, uint64, error)

// Model represents the Bubble Tea model for the blackjack table
type Model struct {
	newRound RoundFactory
	logger   *log.Logger
	title    string

	round   *blackjack.Round
	roundNo int
	seed    uint64
	tally   statistics.Statistics

	keys keyMap
	help help.Model

	gameLog  []string
	err      error
	quitting bool
	width    int
}

// New creates a model and deals the first round
func New(newRound RoundFactory, title string, logger *log.Logger) (*Model, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Model{
		newRound: newRound,
		logger:   logger.WithPrefix("tui"),
		title:    title,
		keys:     newKeyMap(),
		help:     help.New(),
		roundNo:  -1,
	}
	if err := m.startRound(); err != nil {
		return nil, err
	}
	return m, nil
}

// Run starts the program on the terminal and blocks until the player quits
func Run(m *Model, opts ...tea.ProgramOption) error {
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(*Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Hit):
			m.hit()
		case key.Matches(msg, m.keys.Stand):
			m.stand()
		case key.Matches(msg, m.keys.Next):
			if err := m.startRound(); err != nil {
				m.fail(err)
			}
		}
	}

	if m.err != nil {
		m.quitting = true
		return m, tea.Quit
	}
	m.updateKeys()
	return m, nil
}

func (m *Model) startRound() error {
	if m.round != nil && m.round.Phase() != blackjack.PhaseDone {
		return nil
	}
	round, seed, err := m.newRound(m.roundNo + 1)
	if err != nil {
		return err
	}
	if err := round.Deal(); err != nil {
		return err
	}
	m.roundNo++
	m.round = round
	m.seed = seed
	m.gameLog = nil
	m.logger.Debug("Starting round", "round", m.roundNo, "seed", seed)

	m.addLog("The dealer is showing: " + formatCards(m.dealerUp(), false))
	m.addLog("Your hand is: " + m.playerHand())
	m.updateKeys()
	return nil
}

func (m *Model) hit() {
	if m.round.Phase() != blackjack.PhasePlayer {
		return
	}
	if _, err := m.round.Hit(); err != nil {
		m.fail(err)
		return
	}
	m.addLog("Your hand is: " + m.playerHand())
	if m.round.Player().Value().IsBust() {
		m.addLog(ErrorStyle.Render("You have gone bust!"))
		m.playDealer()
	}
}

func (m *Model) stand() {
	if m.round.Phase() != blackjack.PhasePlayer {
		return
	}
	if err := m.round.Stand(); err != nil {
		m.fail(err)
		return
	}
	m.playDealer()
}

func (m *Model) playDealer() {
	dealer := m.round.Dealer()
	m.addLog("The dealer has: " + formatCards(dealer.Cards(), false))
	for {
		_, drew, err := m.round.DealerHit()
		if err != nil {
			m.fail(err)
			return
		}
		if !drew {
			break
		}
		m.addLog("The dealer hits")
		m.addLog("The dealer has: " + formatCards(dealer.Cards(), false))
	}

	if dealer.Value().IsBust() {
		m.addLog(SuccessStyle.Render("The dealer has gone bust!"))
	} else {
		m.addLog(fmt.Sprintf("The dealer sticks with: %s (%s)", formatCards(dealer.Cards(), false), dealer.Value()))
	}

	outcome, err := m.round.Outcome()
	if err != nil {
		m.fail(err)
		return
	}
	m.tally.Add(statistics.NewRoundResult(m.roundNo, m.seed, m.round, outcome))

	switch outcome {
	case blackjack.PlayerWins:
		m.addLog(SuccessStyle.Render("You won!"))
	case blackjack.DealerWins:
		m.addLog(ErrorStyle.Render("The dealer won!"))
	default:
		m.addLog(WarningStyle.Render("It's a draw!"))
	}
}

func (m *Model) fail(err error) {
	m.logger.Error("Round failed", "round", m.roundNo, "error", err)
	m.err = err
}

func (m *Model) updateKeys() {
	playing := m.round != nil && m.round.Phase() == blackjack.PhasePlayer
	m.keys.Hit.SetEnabled(playing)
	m.keys.Stand.SetEnabled(playing)
	m.keys.Next.SetEnabled(!playing)
}

// addLog adds an entry to the game log, keeping the most recent lines
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
}

func (m *Model) dealerUp() []deck.Card {
	if up, ok := m.round.DealerUpCard(); ok {
		return []deck.Card{up}
	}
	return nil
}

func (m *Model) playerHand() string {
	player := m.round.Player()
	return fmt.Sprintf("%s (%s)", formatCards(player.Cards(), false), player.Value())
}

// View renders the table
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.title))
	b.WriteString("\n\n")

	dealer := m.round.Dealer()
	hidden := m.round.Phase() == blackjack.PhasePlayer
	dealerLine := LabelStyle.Render("Dealer: ") + formatCards(dealer.Cards(), hidden)
	if !hidden {
		dealerLine += fmt.Sprintf(" (%s)", dealer.Value())
	}
	table := strings.Join([]string{
		dealerLine,
		"",
		LabelStyle.Render("You:    ") + m.playerHand(),
	}, "\n")
	b.WriteString(TableStyle.Render(table))
	b.WriteString("\n\n")

	b.WriteString(strings.Join(m.gameLog, "\n"))
	b.WriteString("\n\n")

	b.WriteString(InfoStyle.Render(fmt.Sprintf("Round %d  seed %d  won %d  lost %d  drawn %d",
		m.roundNo+1, m.seed, m.tally.PlayerWins, m.tally.DealerWins, m.tally.Pushes)))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

// Round returns the round on the table
func (m *Model) Round() *blackjack.Round {
	return m.round
}

// Tally returns the results of every finished round
func (m *Model) Tally() statistics.Statistics {
	return m.tally
}

// Err returns the error that ended the session, if any
func (m *Model) Err() error {
	return m.err
}

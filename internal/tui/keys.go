package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Hit   key.Binding
	Stand key.Binding
	Next  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Hit: key.NewBinding(
			key.WithKeys("h", "y"),
			key.WithHelp("h", "hit"),
		),
		Stand: key.NewBinding(
			key.WithKeys("s", "n"),
			key.WithHelp("s", "stand"),
		),
		Next: key.NewBinding(
			key.WithKeys("enter", "space", " "),
			key.WithHelp("enter", "next round"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hit, k.Stand, k.Next, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hit, k.Stand},
		{k.Next, k.Help, k.Quit},
	}
}

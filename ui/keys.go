package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	PrevSheet  key.Binding
	NextSheet  key.Binding
	Toggle     key.Binding
	Play       key.Binding
	PlayAll    key.Binding
	Stop       key.Binding
	Delete     key.Binding
	Import     key.Binding
	Filter     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevSheet: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev sheet"),
		),
		NextSheet: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next sheet"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle learned"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter", "play word"),
		),
		PlayAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "play all"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete sheet"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.PlayAll, k.Toggle, k.Import, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevSheet, k.NextSheet},
		{k.Play, k.PlayAll, k.Stop, k.Toggle},
		{k.Import, k.Delete, k.Filter, k.Quit},
	}
}

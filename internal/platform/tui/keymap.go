package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-sand/internal/core"
)

// KeyMap defines the key bindings for the sand box.
type KeyMap struct {
	Sand  key.Binding
	Saver key.Binding
	Crawl key.Binding
	Noise key.Binding
	Stop  key.Binding
	Reset key.Binding
	Fill  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sand, k.Stop, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sand, k.Saver, k.Crawl, k.Noise},
		{k.Stop, k.Reset, k.Fill},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Sand: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "falling sand"),
		),
		Saver: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "screen saver"),
		),
		Crawl: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "crawler"),
		),
		Noise: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "draw test"),
		),
		Stop: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reseed"),
		),
		Fill: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fill test"),
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

// Action translates a key message to a session command.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Sand):
		return core.ActionSand
	case key.Matches(msg, k.Saver):
		return core.ActionSaver
	case key.Matches(msg, k.Crawl):
		return core.ActionCrawl
	case key.Matches(msg, k.Noise):
		return core.ActionNoise
	case key.Matches(msg, k.Stop):
		return core.ActionStop
	case key.Matches(msg, k.Reset):
		return core.ActionReset
	case key.Matches(msg, k.Fill):
		return core.ActionFill
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

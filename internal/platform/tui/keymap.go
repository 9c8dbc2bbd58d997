package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-turnip/internal/core"
)

// KeyMap defines the key bindings of every screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Place   key.Binding
	Pull    key.Binding
	Skip    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Place: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "place in slot"),
		),
		Pull: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space/p", "pull"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a player input.
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Input {
	switch {
	case key.Matches(msg, k.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, k.Up):
		return core.Input{Action: core.ActionUp}
	case key.Matches(msg, k.Down):
		return core.Input{Action: core.ActionDown}
	case key.Matches(msg, k.Left):
		return core.Input{Action: core.ActionLeft}
	case key.Matches(msg, k.Right):
		return core.Input{Action: core.ActionRight}
	case key.Matches(msg, k.Confirm):
		return core.Input{Action: core.ActionConfirm}
	case key.Matches(msg, k.Place):
		// Bindings are the digits 1-9; slots are zero-based.
		return core.PlaceInput(int(msg.String()[0] - '1'))
	case key.Matches(msg, k.Pull):
		return core.Input{Action: core.ActionPull}
	case key.Matches(msg, k.Skip):
		return core.Input{Action: core.ActionSkip}
	case key.Matches(msg, k.Back):
		return core.Input{Action: core.ActionBack}
	}
	return core.Input{}
}

// helpKeys adapts a fixed list of bindings to help.KeyMap.
type helpKeys []key.Binding

// ShortHelp returns key bindings for the short help view.
func (h helpKeys) ShortHelp() []key.Binding { return h }

// FullHelp returns key bindings for the full help view.
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func (k KeyMap) introHelp() helpKeys {
	return helpKeys{k.Confirm, k.Skip, k.Quit}
}

func (k KeyMap) menuHelp() helpKeys {
	return helpKeys{k.Up, k.Down, k.Confirm, k.Quit}
}

func (k KeyMap) listHelp() helpKeys {
	return helpKeys{k.Up, k.Down, k.Confirm, k.Back}
}

// levelHelp lists only the placement keys the mechanic allows.
func (k KeyMap) levelHelp(allowDrop, allowPick bool) helpKeys {
	keys := helpKeys{k.Left, k.Right}
	if allowDrop {
		drop := k.Confirm
		drop.SetHelp("enter", "place")
		keys = append(keys, drop)
	}
	if allowPick {
		keys = append(keys, k.Place)
	}
	return append(keys, k.Pull, k.Back)
}

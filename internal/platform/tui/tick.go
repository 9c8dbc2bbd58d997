// Package tui provides the Bubble Tea front end of the turnip game and the
// SSH server that hosts it.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// introTickMsg advances the story intro. Ticks from an earlier generation
// are stale and ignored.
type introTickMsg struct {
	gen int
}

// advanceMsg moves on after a won level.
type advanceMsg struct {
	sessionID string
}

// introTickCmd returns a command that fires once after d.
func introTickCmd(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return introTickMsg{gen: gen}
	})
}

// advanceCmd returns a command that leaves the won session after d.
func advanceCmd(d time.Duration, sessionID string) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return advanceMsg{sessionID: sessionID}
	})
}

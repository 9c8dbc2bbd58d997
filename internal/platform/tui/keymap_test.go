package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-turnip/internal/core"
)

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Input
	}{
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.Input{Action: core.ActionConfirm}},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.Input{Action: core.ActionPull}},
		{"p", keyRunes("p"), core.Input{Action: core.ActionPull}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.Input{Action: core.ActionBack}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.Input{Action: core.ActionQuit}},
		{"q", keyRunes("q"), core.Input{Action: core.ActionQuit}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.Input{Action: core.ActionUp}},
		{"j", keyRunes("j"), core.Input{Action: core.ActionDown}},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.Input{Action: core.ActionLeft}},
		{"l", keyRunes("l"), core.Input{Action: core.ActionRight}},
		{"s", keyRunes("s"), core.Input{Action: core.ActionSkip}},
		{"1", keyRunes("1"), core.PlaceInput(0)},
		{"6", keyRunes("6"), core.PlaceInput(5)},
		{"unbound", keyRunes("x"), core.Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keys.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%s) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLevelHelp(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name      string
		drop      bool
		pick      bool
		wantLen   int
		wantPlace bool
	}{
		{"drag-drop", true, false, 5, false},
		{"click-place", false, true, 5, true},
		{"hybrid", true, true, 6, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			help := keys.levelHelp(tt.drop, tt.pick)
			if len(help) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(help), tt.wantLen)
			}
			hasPlace := false
			for _, b := range help {
				if b.Help().Key == "1-9" {
					hasPlace = true
				}
			}
			if hasPlace != tt.wantPlace {
				t.Errorf("slot keys listed = %v, want %v", hasPlace, tt.wantPlace)
			}
		})
	}

	// Relabeling the drop binding must not touch the shared map.
	if got := keys.Confirm.Help().Desc; got != "select" {
		t.Errorf("Confirm help = %q, want select", got)
	}
}

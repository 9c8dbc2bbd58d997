package tui

import (
	"github.com/vovakirdan/tui-turnip/internal/catalog"
	"github.com/vovakirdan/tui-turnip/internal/engine"
	"github.com/vovakirdan/tui-turnip/internal/game"
)

// Effects collects controller events for the screen to present. It is
// drained by the app after each controller call.
type Effects struct {
	game.NopObserver

	unlocked   []int
	completed  bool
	lastPlaced int // slot index of the most recent placement, -1 if none
}

// NewEffects creates an empty event collector.
func NewEffects() *Effects {
	return &Effects{lastPlaced: -1}
}

// LevelStarted implements game.Observer.
func (e *Effects) LevelStarted(catalog.Level, int) {
	e.reset()
}

// CharacterPlaced implements game.Observer.
func (e *Effects) CharacterPlaced(_ catalog.Level, res engine.PlaceResult) {
	e.lastPlaced = res.SlotIndex
}

// LevelUnlocked implements game.Observer.
func (e *Effects) LevelUnlocked(levelID int) {
	e.unlocked = append(e.unlocked, levelID)
}

// GameCompleted implements game.Observer.
func (e *Effects) GameCompleted() {
	e.completed = true
}

// takeUnlocked returns and clears the levels unlocked since the last call.
func (e *Effects) takeUnlocked() []int {
	out := e.unlocked
	e.unlocked = nil
	return out
}

func (e *Effects) reset() {
	e.unlocked = nil
	e.completed = false
	e.lastPlaced = -1
}

var _ game.Observer = (*Effects)(nil)

package core

import "time"

// RuntimeConfig contains the settings a front end passes to its screens.
type RuntimeConfig struct {
	ScreenW      int           // Screen width in characters
	ScreenH      int           // Screen height in characters
	IntroStep    time.Duration // Delay between intro parts
	AdvanceDelay time.Duration // Pause after a won level before the next starts
	Theme        string
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		IntroStep:    3500 * time.Millisecond,
		AdvanceDelay: 1500 * time.Millisecond,
		Theme:        "default",
	}
}

// FieldSize returns the area available for the level field, leaving room
// for the header, pool, status lines and help.
func (c RuntimeConfig) FieldSize() (w, h int) {
	w = Clamp(c.ScreenW-4, 52, 76)
	h = Clamp(c.ScreenH-14, 8, 14)
	return w, h
}

package game

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
	"github.com/vovakirdan/tui-turnip/internal/engine"
)

// Observer receives game events, typically to drive presentation effects.
type Observer interface {
	LevelStarted(level catalog.Level, required int)
	CharacterPlaced(level catalog.Level, res engine.PlaceResult)
	PullResolved(level catalog.Level, out engine.PullOutcome)
	LevelUnlocked(levelID int)
	GameCompleted()
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) LevelStarted(catalog.Level, int)                   {}
func (NopObserver) CharacterPlaced(catalog.Level, engine.PlaceResult) {}
func (NopObserver) PullResolved(catalog.Level, engine.PullOutcome)    {}
func (NopObserver) LevelUnlocked(int)                                 {}
func (NopObserver) GameCompleted()                                    {}

// AttemptRecord is one resolved pull, as kept in the attempt history.
type AttemptRecord struct {
	Profile   string
	SessionID string
	LevelID   int
	Placed    int
	Total     int
	Required  int
	Outcome   string
	At        time.Time
}

// AttemptRecorder persists pull attempts.
type AttemptRecorder interface {
	RecordAttempt(ctx context.Context, rec AttemptRecord) error
}

type nopRecorder struct{}

func (nopRecorder) RecordAttempt(context.Context, AttemptRecord) error { return nil }

package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
	"github.com/vovakirdan/tui-turnip/internal/engine"
	"github.com/vovakirdan/tui-turnip/internal/locale"
	"github.com/vovakirdan/tui-turnip/internal/progress"
)

type recordingObserver struct {
	NopObserver
	started   []int
	unlocked  []int
	results   []engine.PullResult
	completed int
}

func (o *recordingObserver) LevelStarted(l catalog.Level, _ int) { o.started = append(o.started, l.ID) }
func (o *recordingObserver) LevelUnlocked(id int)                { o.unlocked = append(o.unlocked, id) }
func (o *recordingObserver) GameCompleted()                      { o.completed++ }
func (o *recordingObserver) PullResolved(_ catalog.Level, out engine.PullOutcome) {
	o.results = append(o.results, out.Result)
}

type memoryRecorder struct {
	records []AttemptRecord
	err     error
}

func (r *memoryRecorder) RecordAttempt(_ context.Context, rec AttemptRecord) error {
	r.records = append(r.records, rec)
	return r.err
}

type fixture struct {
	ctrl     *Controller
	backend  *progress.MemoryBackend
	observer *recordingObserver
	recorder *memoryRecorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	chars, levels, err := catalog.Load("", "")
	require.NoError(t, err)
	return newFixtureWith(t, chars, levels)
}

func newFixtureWith(t *testing.T, chars *catalog.CharacterCatalog, levels *catalog.LevelCatalog) fixture {
	t.Helper()
	backend := progress.NewMemoryBackend()
	obs := &recordingObserver{}
	rec := &memoryRecorder{}

	ctrl, err := New(context.Background(), Deps{
		Characters: chars,
		Levels:     levels,
		Progress:   progress.NewStore(backend, "tester", nil),
		Locales:    locale.MustLoad(),
		Observer:   obs,
		Recorder:   rec,
		Now:        func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	require.NoError(t, err)
	return fixture{ctrl: ctrl, backend: backend, observer: obs, recorder: rec}
}

func placeAll(t *testing.T, c *Controller) {
	t.Helper()
	for i, sl := range c.Session().Slots() {
		_, err := c.Place(i, sl.Expected.ID)
		require.NoError(t, err)
	}
}

func TestNewRequiresDeps(t *testing.T) {
	_, err := New(context.Background(), Deps{})
	assert.Error(t, err)
}

func TestStartLevelUnknown(t *testing.T) {
	f := newFixture(t)
	for _, id := range []int{0, 11, -3} {
		_, err := f.ctrl.StartLevel(context.Background(), id)
		assert.ErrorIs(t, err, ErrUnknownLevel)
	}
	assert.Nil(t, f.ctrl.Session())
}

func TestStartLevelSetsCurrentLevel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	s, err := f.ctrl.StartLevel(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, engine.PhaseInitial, s.Phase())
	assert.Equal(t, 1, f.ctrl.Progress().CurrentLevel)
	assert.Equal(t, []int{1}, f.observer.started)

	// Persisted immediately.
	blob, err := f.backend.Load(ctx, "tester")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Decode(blob).CurrentLevel)
}

func TestSessionOpsWithoutLevel(t *testing.T) {
	f := newFixture(t)

	_, err := f.ctrl.Place(0, "grandfather")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, _, err = f.ctrl.Pull(context.Background())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestPullSuccessUnlocksButKeepsCurrentLevel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ctrl.StartLevel(ctx, 1)
	require.NoError(t, err)
	placeAll(t, f.ctrl)

	out, adv, err := f.ctrl.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.PullSuccess, out.Result)
	assert.Equal(t, Advance{Unlocked: 2, NextLevel: 2}, adv)

	p := f.ctrl.Progress()
	assert.Equal(t, []int{1, 2}, p.UnlockedLevels)
	assert.Equal(t, 1, p.CurrentLevel, "unlocking does not move the current level")
	assert.Equal(t, []int{2}, f.observer.unlocked)

	blob, err := f.backend.Load(ctx, "tester")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, progress.Decode(blob).UnlockedLevels)
}

func TestReplayingLevelDoesNotUnlockTwice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := 0; i < 2; i++ {
		_, err := f.ctrl.StartLevel(ctx, 1)
		require.NoError(t, err)
		placeAll(t, f.ctrl)
		_, adv, err := f.ctrl.Pull(ctx)
		require.NoError(t, err)
		if i == 0 {
			assert.Equal(t, 2, adv.Unlocked)
		} else {
			assert.Zero(t, adv.Unlocked)
		}
	}

	assert.Equal(t, []int{1, 2}, f.ctrl.Progress().UnlockedLevels)
	assert.Equal(t, []int{2}, f.observer.unlocked)
}

func TestPullFailureAndNoCharacters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ctrl.StartLevel(ctx, 1)
	require.NoError(t, err)

	out, adv, err := f.ctrl.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.PullNoCharactersPlaced, out.Result)
	assert.Equal(t, Advance{}, adv)
	assert.Empty(t, f.recorder.records, "hint-only pulls are not recorded")

	_, err = f.ctrl.Place(0, "grandfather")
	require.NoError(t, err)
	out, _, err = f.ctrl.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.PullFailure, out.Result)
	assert.Equal(t, []int{1}, f.ctrl.Progress().UnlockedLevels)

	require.Len(t, f.recorder.records, 1)
	rec := f.recorder.records[0]
	assert.Equal(t, "tester", rec.Profile)
	assert.Equal(t, 1, rec.LevelID)
	assert.Equal(t, 1, rec.Placed)
	assert.Equal(t, 1, rec.Total)
	assert.Equal(t, 3, rec.Required)
	assert.Equal(t, "failure", rec.Outcome)
	assert.Equal(t, f.ctrl.Session().ID(), rec.SessionID)
}

func TestRecorderFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.recorder.err = errors.New("db gone")

	_, err := f.ctrl.StartLevel(ctx, 1)
	require.NoError(t, err)
	placeAll(t, f.ctrl)

	out, _, err := f.ctrl.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.PullSuccess, out.Result)
}

func TestWrongPlacementSurfaces(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctrl.StartLevel(context.Background(), 1)
	require.NoError(t, err)

	_, err = f.ctrl.Place(0, "grandmother")
	assert.ErrorIs(t, err, engine.ErrWrongCharacterForSlot)
	assert.Equal(t, 0, f.ctrl.Session().OccupiedCount())
}

func TestFinalLevelSignalsCompletion(t *testing.T) {
	ctx := context.Background()

	chars, err := catalog.NewCharacterCatalog([]catalog.Character{
		{ID: "big", Order: 1, Strength: 50, Ability: catalog.AbilityLeader},
	})
	require.NoError(t, err)
	levels, err := catalog.NewLevelCatalog([]catalog.Level{
		{ID: 1, SourceType: catalog.SourceGround, RequiredCharacterIDs: []string{"big"}, Mechanic: catalog.MechanicDragDrop},
		{ID: 2, SourceType: catalog.SourceGround, RequiredCharacterIDs: []string{"big"}, Mechanic: catalog.MechanicDragDrop, IsFinal: true},
	}, chars)
	require.NoError(t, err)

	f := newFixtureWith(t, chars, levels)

	_, err = f.ctrl.StartLevel(ctx, 1)
	require.NoError(t, err)
	placeAll(t, f.ctrl)
	_, adv, err := f.ctrl.Pull(ctx)
	require.NoError(t, err)
	assert.False(t, adv.GameComplete)
	assert.Equal(t, 2, adv.NextLevel)

	_, err = f.ctrl.StartLevel(ctx, 2)
	require.NoError(t, err)
	placeAll(t, f.ctrl)
	_, adv, err = f.ctrl.Pull(ctx)
	require.NoError(t, err)
	assert.True(t, adv.GameComplete)
	assert.Zero(t, adv.NextLevel)
	assert.Zero(t, adv.Unlocked, "nothing exists past the final level")
	assert.Equal(t, 1, f.observer.completed)
	assert.Equal(t, []int{1, 2}, f.ctrl.Progress().UnlockedLevels)
}

func TestWonSessionCannotBePulledAgain(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.ctrl.StartLevel(ctx, 1)
	require.NoError(t, err)
	placeAll(t, f.ctrl)

	out, _, err := f.ctrl.Pull(ctx)
	require.NoError(t, err)
	require.Equal(t, engine.PullSuccess, out.Result)

	_, adv, err := f.ctrl.Pull(ctx)
	assert.ErrorIs(t, err, engine.ErrSessionResolved)
	assert.Zero(t, adv)
	assert.Len(t, f.recorder.records, 1)
	assert.Equal(t, []engine.PullResult{engine.PullSuccess}, f.observer.results)
	assert.Equal(t, []int{2}, f.observer.unlocked)
}

func TestChangeLanguage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.Equal(t, "ru", f.ctrl.ChangeLanguage(ctx, "ru"))
	assert.Equal(t, "Играть", f.ctrl.T("ui.play"))

	assert.Equal(t, "hy", f.ctrl.ChangeLanguage(ctx, "hy-AM"))

	// Unknown codes fall back silently.
	assert.Equal(t, "en", f.ctrl.ChangeLanguage(ctx, "klingon"))
	assert.Equal(t, "en", f.ctrl.Progress().Language)
	assert.Equal(t, "Play", f.ctrl.T("ui.play"))

	blob, err := f.backend.Load(ctx, "tester")
	require.NoError(t, err)
	assert.Equal(t, "en", progress.Decode(blob).Language)
}

func TestStoredUnknownLanguageResolvesToDefault(t *testing.T) {
	ctx := context.Background()
	backend := progress.NewMemoryBackend()
	require.NoError(t, backend.Save(ctx, "p", []byte(`{"language":"zz","currentLevel":3,"unlockedLevels":[1,2,3]}`)))

	ctrl, err := New(ctx, Deps{
		Characters: mustChars(t),
		Levels:     mustLevels(t),
		Progress:   progress.NewStore(backend, "p", nil),
		Locales:    locale.MustLoad(),
	})
	require.NoError(t, err)
	assert.Equal(t, "en", ctrl.Language())

	s, err := ctrl.Continue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Level().ID)
}

func TestContinueFallsBackToFirstLevel(t *testing.T) {
	ctx := context.Background()
	backend := progress.NewMemoryBackend()
	require.NoError(t, backend.Save(ctx, "p", []byte(`{"currentLevel":42}`)))

	ctrl, err := New(ctx, Deps{
		Characters: mustChars(t),
		Levels:     mustLevels(t),
		Progress:   progress.NewStore(backend, "p", nil),
		Locales:    locale.MustLoad(),
	})
	require.NoError(t, err)

	s, err := ctrl.Continue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Level().ID)
}

func TestMarkIntroViewedAndReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.ctrl.MarkIntroViewed(ctx)
	assert.True(t, f.ctrl.Progress().IntroViewed)

	_, err := f.ctrl.StartLevel(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, f.ctrl.ResetProgress(ctx))
	assert.Nil(t, f.ctrl.Session())
	assert.Equal(t, progress.Default(), f.ctrl.Progress())
}

func TestExitLevelDiscardsSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctrl.StartLevel(context.Background(), 2)
	require.NoError(t, err)

	f.ctrl.ExitLevel()
	assert.Nil(t, f.ctrl.Session())
}

func TestTranslateWithParams(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, "2 / 5", f.ctrl.T("msg.strength_progress", "total", "2", "required", "5"))
	assert.Equal(t, "Level 4", f.ctrl.LevelLabel(4))
}

func mustChars(t *testing.T) *catalog.CharacterCatalog {
	t.Helper()
	chars, _, err := catalog.Load("", "")
	require.NoError(t, err)
	return chars
}

func mustLevels(t *testing.T) *catalog.LevelCatalog {
	t.Helper()
	_, levels, err := catalog.Load("", "")
	require.NoError(t, err)
	return levels
}

package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
	"github.com/vovakirdan/tui-turnip/internal/core"
	"github.com/vovakirdan/tui-turnip/internal/engine"
	"github.com/vovakirdan/tui-turnip/internal/game"
	"github.com/vovakirdan/tui-turnip/internal/locale"
	"github.com/vovakirdan/tui-turnip/internal/progress"
)

func testFactory(backend progress.Backend, curve engine.StrengthCurve) ControllerFactory {
	return func(ctx context.Context, profile string, obs game.Observer) (*game.Controller, error) {
		chars, levels, err := catalog.Load("", "")
		if err != nil {
			return nil, err
		}
		return game.New(ctx, game.Deps{
			Characters: chars,
			Levels:     levels,
			Progress:   progress.NewStore(backend, profile, nil),
			Locales:    locale.MustLoad(),
			Curve:      curve,
			Observer:   obs,
		})
	}
}

func newTestApp(t *testing.T) App {
	t.Helper()
	return newTestAppWith(t, progress.NewMemoryBackend(), engine.StrengthCurve{})
}

func newTestAppWith(t *testing.T, backend progress.Backend, curve engine.StrengthCurve) App {
	t.Helper()
	app, err := NewSessionApp(context.Background(), testFactory(backend, curve), "tester", core.DefaultConfig())
	require.NoError(t, err)
	return app
}

func send(t *testing.T, m App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	app, ok := next.(App)
	require.True(t, ok)
	return app, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

// skipToMenu leaves the intro of a fresh profile.
func skipToMenu(t *testing.T, m App) App {
	t.Helper()
	m, _ = send(t, m, keyRunes("s"))
	require.Equal(t, screenMenu, m.screen)
	return m
}

func TestAppStartsOnIntroForNewPlayer(t *testing.T) {
	m := newTestApp(t)
	assert.Equal(t, screenIntro, m.screen)
	assert.NotNil(t, m.Init())

	m = skipToMenu(t, m)
	assert.True(t, m.Controller().Progress().IntroViewed)
	assert.Nil(t, m.Init())
}

func TestAppSkipsIntroForReturningPlayer(t *testing.T) {
	backend := progress.NewMemoryBackend()
	first := newTestAppWith(t, backend, engine.StrengthCurve{})
	skipToMenu(t, first)

	second := newTestAppWith(t, backend, engine.StrengthCurve{})
	assert.Equal(t, screenMenu, second.screen)
}

func TestIntroTicks(t *testing.T) {
	m := newTestApp(t)
	gen := m.introGen

	m, cmd := send(t, m, introTickMsg{gen: gen})
	assert.Equal(t, 1, m.introPart)
	assert.NotNil(t, cmd)

	// A tick of the previous page is stale.
	m, cmd = send(t, m, introTickMsg{gen: gen})
	assert.Equal(t, 1, m.introPart)
	assert.Nil(t, cmd)

	for i := 0; i < introParts; i++ {
		m, _ = send(t, m, keyEnter)
	}
	assert.Equal(t, screenMenu, m.screen)
	assert.True(t, m.Controller().Progress().IntroViewed)
}

func TestPlayFirstLevel(t *testing.T) {
	m := skipToMenu(t, newTestApp(t))

	m, _ = send(t, m, keyEnter)
	require.Equal(t, screenLevel, m.screen)
	s := m.level.session
	require.NotNil(t, s)
	assert.Equal(t, 1, s.Level().ID)
	assert.Contains(t, m.View(), "0 / 3")

	// Pulling with nobody placed only warns.
	m, cmd := send(t, m, keySpace)
	assert.Nil(t, cmd)
	assert.Equal(t, statusWarn, m.level.status)
	assert.False(t, m.level.won)

	m, _ = send(t, m, keyEnter)
	m, _ = send(t, m, keyEnter)
	assert.Equal(t, 2, s.OccupiedCount())
	assert.Equal(t, 1, m.fx.lastPlaced)

	m, cmd = send(t, m, keySpace)
	require.NotNil(t, cmd)
	assert.True(t, m.level.won)
	assert.Equal(t, statusSuccess, m.level.status)
	assert.Contains(t, m.level.notice, "Level 2")
	assert.True(t, m.Controller().Progress().IsUnlocked(2))

	// Input is ignored while the win is shown.
	m, _ = send(t, m, keyEnter)
	assert.Same(t, s, m.level.session)

	// A stale advance does nothing.
	m, _ = send(t, m, advanceMsg{sessionID: "other"})
	assert.Same(t, s, m.level.session)

	m, _ = send(t, m, advanceMsg{sessionID: s.ID()})
	require.Equal(t, screenLevel, m.screen)
	assert.Equal(t, 2, m.level.session.Level().ID)
	assert.False(t, m.level.won)
	assert.Equal(t, -1, m.fx.lastPlaced)
}

func TestFailedPullIsRetryable(t *testing.T) {
	m := skipToMenu(t, newTestApp(t))
	m, _ = send(t, m, keyEnter)

	m, _ = send(t, m, keyEnter)
	m, cmd := send(t, m, keySpace)
	assert.Nil(t, cmd)
	assert.Equal(t, statusFail, m.level.status)
	assert.Contains(t, m.level.message, "Not enough strength!")
	assert.False(t, m.level.won)

	m, _ = send(t, m, keyEnter)
	_, cmd = send(t, m, keySpace)
	assert.NotNil(t, cmd)
}

func TestPickMechanicPlacesBySlotNumber(t *testing.T) {
	m := skipToMenu(t, newTestApp(t))
	s, err := m.ctrl.StartLevel(context.Background(), 4)
	require.NoError(t, err)
	m.enterLevel(s)

	// Click-place levels ignore enter.
	m, _ = send(t, m, keyEnter)
	assert.Equal(t, 0, s.OccupiedCount())

	// The grandfather belongs to slot 1, not 2.
	m, _ = send(t, m, keyRunes("2"))
	assert.Equal(t, 0, s.OccupiedCount())
	assert.Equal(t, statusWarn, m.level.status)

	m, _ = send(t, m, keyRunes("1"))
	assert.True(t, s.IsPlaced("grandfather"))
	assert.Equal(t, 1, m.level.cursor)
}

func TestCursorSkipsPlacedCharacters(t *testing.T) {
	m := skipToMenu(t, newTestApp(t))
	s, err := m.ctrl.StartLevel(context.Background(), 3)
	require.NoError(t, err)
	m.enterLevel(s)

	m, _ = send(t, m, keyEnter)
	assert.Equal(t, 1, m.level.cursor)

	m, _ = send(t, m, keyRunes("h"))
	assert.Equal(t, 3, m.level.cursor, "wraps past the placed grandfather")

	m, _ = send(t, m, keyRunes("l"))
	assert.Equal(t, 1, m.level.cursor)
}

func TestBackLeavesLevel(t *testing.T) {
	m := skipToMenu(t, newTestApp(t))
	m, _ = send(t, m, keyEnter)
	require.Equal(t, screenLevel, m.screen)

	m, _ = send(t, m, keyEsc)
	assert.Equal(t, screenMenu, m.screen)
	assert.Nil(t, m.Controller().Session())
}

func TestFinalLevelEndsGame(t *testing.T) {
	easy := engine.StrengthCurve{Base: 1, ScaleBase: 0.8}
	m := skipToMenu(t, newTestAppWith(t, progress.NewMemoryBackend(), easy))

	s, err := m.ctrl.StartLevel(context.Background(), 10)
	require.NoError(t, err)
	m.enterLevel(s)

	for i, n := 0, s.Level().SlotCount(); i < n; i++ {
		m, _ = send(t, m, keyEnter)
	}
	m, cmd := send(t, m, keySpace)
	require.NotNil(t, cmd)
	assert.True(t, m.level.advance.GameComplete)

	m, _ = send(t, m, advanceMsg{sessionID: s.ID()})
	assert.Equal(t, screenGameOver, m.screen)
	assert.Nil(t, m.Controller().Session())
	assert.NotEmpty(t, m.View())

	m, _ = send(t, m, keyEnter)
	assert.Equal(t, screenMenu, m.screen)
}

func TestLanguageSwitch(t *testing.T) {
	m := skipToMenu(t, newTestApp(t))

	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keyEnter)
	require.Equal(t, screenLanguage, m.screen)
	assert.Equal(t, 0, m.langCursor)

	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keyEnter)
	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, "hy", m.Controller().Language())
	assert.Equal(t, "hy", m.Controller().Progress().Language)
}

func TestLevelsTable(t *testing.T) {
	m := skipToMenu(t, newTestApp(t))

	m, _ = send(t, m, keyDown)
	m, _ = send(t, m, keyEnter)
	require.Equal(t, screenLevels, m.screen)
	assert.Len(t, m.levels.Rows(), 1)
	assert.Equal(t, "1*", m.levels.SelectedRow()[0])
	assert.Contains(t, m.levels.SelectedRow()[1], "First Turnip")
	assert.NotEmpty(t, m.View())

	m, _ = send(t, m, keyEnter)
	require.Equal(t, screenLevel, m.screen)
	assert.Equal(t, 1, m.level.session.Level().ID)
}

func TestTrimMark(t *testing.T) {
	assert.Equal(t, "3", trimMark("3*"))
	assert.Equal(t, "12", trimMark("12"))
	assert.Equal(t, "", trimMark(""))
}

func TestQuit(t *testing.T) {
	m := skipToMenu(t, newTestApp(t))
	m, cmd := send(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.IsQuitting())
	assert.Empty(t, m.View())
}

func TestResizeKeepsFieldBounds(t *testing.T) {
	m := newTestApp(t)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.config.ScreenW)
	assert.Equal(t, 76, m.field.Width())
	assert.Equal(t, 14, m.field.Height())
}

func TestEffectsCollectEvents(t *testing.T) {
	fx := NewEffects()
	fx.CharacterPlaced(catalog.Level{}, engine.PlaceResult{SlotIndex: 2})
	fx.LevelUnlocked(3)
	fx.GameCompleted()

	assert.Equal(t, 2, fx.lastPlaced)
	assert.True(t, fx.completed)
	assert.Equal(t, []int{3}, fx.takeUnlocked())
	assert.Empty(t, fx.takeUnlocked())

	fx.LevelStarted(catalog.Level{}, 3)
	assert.Equal(t, -1, fx.lastPlaced)
	assert.False(t, fx.completed)
}

package tui

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
	"github.com/vovakirdan/tui-turnip/internal/core"
	"github.com/vovakirdan/tui-turnip/internal/engine"
	"github.com/vovakirdan/tui-turnip/internal/game"
)

type statusKind int

const (
	statusNone statusKind = iota
	statusInfo
	statusWarn
	statusFail
	statusSuccess
)

// levelState is the per-level part of the app.
type levelState struct {
	session *engine.Session
	pool    []catalog.Character
	cursor  int
	won     bool
	advance game.Advance
	status  statusKind
	message string
	notice  string
}

// enterLevel switches to the level screen for a freshly started session.
func (m *App) enterLevel(s *engine.Session) {
	m.level = levelState{
		session: s,
		pool:    m.ctrl.Characters().Resolve(s.Level().RequiredCharacterIDs),
	}
	m.screen = screenLevel
}

// selected returns the character under the pool cursor.
func (l *levelState) selected() (catalog.Character, bool) {
	if len(l.pool) == 0 {
		return catalog.Character{}, false
	}
	return l.pool[l.cursor], true
}

// moveCursor steps through the pool skipping placed characters. When every
// character is placed the cursor stays put.
func (l *levelState) moveCursor(step int) {
	n := len(l.pool)
	for i := 1; i <= n; i++ {
		next := core.Wrap(l.cursor+step*i, n)
		if !l.session.IsPlaced(l.pool[next].ID) {
			l.cursor = next
			return
		}
	}
}

// updateLevel handles input on the level screen.
func (m *App) updateLevel(in core.Input) tea.Cmd {
	l := &m.level
	if in.Action == core.ActionBack {
		m.ctrl.ExitLevel()
		m.level = levelState{}
		m.screen = screenMenu
		return nil
	}
	if l.won || l.session == nil {
		return nil
	}

	mech := l.session.Level().Mechanic
	switch in.Action {
	case core.ActionLeft:
		l.moveCursor(-1)
	case core.ActionRight:
		l.moveCursor(1)
	case core.ActionConfirm:
		if mech.AllowsDrop() {
			m.place(l.session.FirstEmptySlot())
		}
	case core.ActionPlace:
		if mech.AllowsPick() {
			m.place(in.Slot)
		}
	case core.ActionPull:
		return m.pull()
	}
	return nil
}

// place puts the selected character into slot. Rejections leave the field
// unchanged and show a hint.
func (m *App) place(slot int) {
	l := &m.level
	ch, ok := l.selected()
	if !ok || slot < 0 {
		return
	}

	res, err := m.ctrl.Place(slot, ch.ID)
	if err != nil {
		l.status = statusWarn
		l.message = m.ctrl.T("msg.place_characters")
		return
	}

	l.status = statusInfo
	l.message = m.ctrl.T(ch.NameKey()) + " +" + strconv.Itoa(ch.Strength)
	if res.Phase == engine.PhaseFullyFilled {
		l.message = m.ctrl.T("ui.pull_turnip") + "!"
	}
	l.moveCursor(1)
}

func (m *App) pull() tea.Cmd {
	l := &m.level
	out, adv, err := m.ctrl.Pull(m.ctx)
	if errors.Is(err, game.ErrNoActiveSession) {
		m.screen = screenMenu
		return nil
	}
	if err != nil {
		return nil
	}

	switch out.Result {
	case engine.PullNoCharactersPlaced:
		l.status = statusWarn
		l.message = m.ctrl.T("msg.place_characters")
		return nil

	case engine.PullFailure:
		l.status = statusFail
		l.message = m.ctrl.T("msg.level_failed")
		if l.session.OccupiedCount() < l.session.Level().SlotCount() {
			l.message += " " + m.ctrl.T("msg.all_characters_needed")
		}
		return nil
	}

	l.won = true
	l.advance = adv
	l.status = statusSuccess
	l.message = m.ctrl.T("msg.level_complete")
	var unlocked []string
	for _, id := range m.fx.takeUnlocked() {
		unlocked = append(unlocked, "🔓 "+m.ctrl.LevelLabel(id))
	}
	l.notice = strings.Join(unlocked, "  ")
	return advanceCmd(m.config.AdvanceDelay, l.session.ID())
}

// handleAdvance leaves a won level once its delay has passed.
func (m *App) handleAdvance(msg advanceMsg) tea.Cmd {
	l := &m.level
	if m.screen != screenLevel || !l.won || l.session == nil || l.session.ID() != msg.sessionID {
		return nil
	}

	if l.advance.GameComplete || m.fx.completed {
		m.ctrl.ExitLevel()
		m.level = levelState{}
		m.screen = screenGameOver
		return nil
	}

	s, err := m.ctrl.StartLevel(m.ctx, l.advance.NextLevel)
	if err != nil {
		m.level = levelState{}
		m.screen = screenMenu
		return nil
	}
	m.enterLevel(s)
	return nil
}

func (m App) viewLevel() string {
	l := m.level
	if l.session == nil {
		return ""
	}
	lvl := l.session.Level()

	header := joinLines(
		m.theme.Title.Render(m.ctrl.T(lvl.TitleKey())),
		m.theme.Subtitle.Render(m.ctrl.T(lvl.DescriptionKey())),
	)

	drawField(m.field, fieldView{
		source: lvl.SourceType,
		slots:  l.session.Slots(),
		scale:  m.ctrl.TurnipScale(lvl.ID),
		pulled: l.won,
		fresh:  m.fx.lastPlaced,
	})
	field := m.theme.FieldBorder.Render(m.renderer.Render(m.field))

	return m.center(lipgloss.JoinVertical(lipgloss.Center,
		header,
		"",
		field,
		m.viewPool(),
		m.viewAbility(),
		m.viewStrength(),
		m.viewStatus(),
		"",
		m.helpView(m.keys.levelHelp(lvl.Mechanic.AllowsDrop(), lvl.Mechanic.AllowsPick())),
	))
}

func (m App) viewPool() string {
	l := m.level
	items := make([]string, len(l.pool))
	for i, ch := range l.pool {
		label := m.ctrl.T(ch.NameKey()) + " " + strconv.Itoa(ch.Strength)
		switch {
		case l.session.IsPlaced(ch.ID):
			items[i] = m.theme.PoolPlaced.Render(label)
		case i == l.cursor && !l.won:
			items[i] = m.theme.PoolActive.Render(label)
		default:
			items[i] = m.theme.PoolItem.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

// viewAbility describes the selected character and the level's ability need.
func (m App) viewAbility() string {
	l := m.level
	var parts []string
	if ch, ok := l.selected(); ok && !l.won {
		parts = append(parts, m.ctrl.T(ch.AbilityKey()))
	}
	if want := l.session.Level().RequiresAbility; want != "" {
		mark := "✗"
		if l.session.AbilitySatisfied() {
			mark = "✓"
		}
		parts = append(parts, m.ctrl.T("ui.ability")+": "+m.ctrl.T(want.Key())+" "+mark)
	}
	return m.theme.Muted.Render(strings.Join(parts, "  |  "))
}

func (m App) viewStrength() string {
	s := m.level.session
	total, required := s.TotalStrength(), s.RequiredStrength()
	text := m.ctrl.T("ui.total_strength") + ": " + m.ctrl.T("msg.strength_progress",
		"total", strconv.Itoa(total),
		"required", strconv.Itoa(required),
	)
	if total >= required {
		return m.theme.StrengthOK.Render(text)
	}
	return m.theme.StrengthLow.Render(text)
}

func (m App) viewStatus() string {
	l := m.level
	var line string
	switch l.status {
	case statusInfo:
		line = m.theme.Text.Render(l.message)
	case statusWarn:
		line = m.theme.Warning.Render(l.message)
	case statusFail:
		line = m.theme.Failure.Render(l.message)
	case statusSuccess:
		line = m.theme.Success.Render(l.message)
	}
	if l.notice != "" {
		line += "  " + m.theme.Notice.Render(l.notice)
	}
	return line
}

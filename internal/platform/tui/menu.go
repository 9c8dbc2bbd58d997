package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-turnip/internal/core"
)

// menuItem is an entry of the main menu.
type menuItem int

const (
	menuPlay menuItem = iota
	menuLevels
	menuLanguage
	menuIntro
	menuQuit
)

var menuItems = []menuItem{menuPlay, menuLevels, menuLanguage, menuIntro, menuQuit}

// labelKey returns the localization key of the entry.
func (i menuItem) labelKey() string {
	switch i {
	case menuPlay:
		return "ui.play"
	case menuLevels:
		return "ui.levels"
	case menuLanguage:
		return "ui.select_language"
	case menuIntro:
		return "ui.replay_intro"
	default:
		return "ui.quit"
	}
}

// updateMenu handles input on the main menu.
func (m *App) updateMenu(in core.Input) tea.Cmd {
	switch in.Action {
	case core.ActionUp:
		m.menuCursor = core.Wrap(m.menuCursor-1, len(menuItems))
	case core.ActionDown:
		m.menuCursor = core.Wrap(m.menuCursor+1, len(menuItems))
	case core.ActionConfirm:
		return m.selectMenuItem(menuItems[m.menuCursor])
	}
	return nil
}

func (m *App) selectMenuItem(item menuItem) tea.Cmd {
	switch item {
	case menuPlay:
		if s, err := m.ctrl.Continue(m.ctx); err == nil {
			m.enterLevel(s)
		}
	case menuLevels:
		m.levels = m.createLevelsTable()
		m.screen = screenLevels
	case menuLanguage:
		m.langCursor = m.languageIndex(m.ctrl.Language())
		m.screen = screenLanguage
	case menuIntro:
		return m.startIntro()
	case menuQuit:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

func (m App) viewMenu() string {
	var b strings.Builder
	for i, item := range menuItems {
		label := m.ctrl.T(item.labelKey())
		if i == m.menuCursor {
			b.WriteString(m.theme.MenuItemActive.Render("> " + label))
		} else {
			b.WriteString(m.theme.MenuItemNormal.Render("  " + label))
		}
		b.WriteString("\n")
	}

	p := m.ctrl.Progress()
	current := m.theme.Muted.Render(m.ctrl.LevelLabel(p.CurrentLevel))

	return m.center(joinLines(
		"\n"+m.theme.Title.Render(m.ctrl.T("intro.title")),
		current,
		strings.TrimRight(b.String(), "\n"),
		m.helpView(m.keys.menuHelp()),
	))
}

// languageIndex returns the list position of code, 0 if absent.
func (m App) languageIndex(code string) int {
	for i, l := range m.ctrl.Locales().Languages() {
		if l.Code == code {
			return i
		}
	}
	return 0
}

// updateLanguage handles input on the language list.
func (m *App) updateLanguage(in core.Input) {
	langs := m.ctrl.Locales().Languages()
	switch in.Action {
	case core.ActionUp:
		m.langCursor = core.Wrap(m.langCursor-1, len(langs))
	case core.ActionDown:
		m.langCursor = core.Wrap(m.langCursor+1, len(langs))
	case core.ActionConfirm:
		m.ctrl.ChangeLanguage(m.ctx, langs[m.langCursor].Code)
		m.screen = screenMenu
	case core.ActionBack:
		m.screen = screenMenu
	}
}

func (m App) viewLanguage() string {
	current := m.ctrl.Language()

	var b strings.Builder
	for i, l := range m.ctrl.Locales().Languages() {
		label := l.Flag + "  " + l.Native
		if l.Code == current {
			label += " ✓"
		}
		if i == m.langCursor {
			b.WriteString(m.theme.MenuItemActive.Render("> " + label))
		} else {
			b.WriteString(m.theme.MenuItemNormal.Render("  " + label))
		}
		b.WriteString("\n")
	}

	return m.center(joinLines(
		"\n"+m.theme.Title.Render(m.ctrl.T("ui.select_language")),
		strings.TrimRight(b.String(), "\n"),
		m.helpView(m.keys.listHelp()),
	))
}

func (m App) viewGameOver() string {
	return m.center(joinLines(
		"\n"+m.theme.Success.Render(m.ctrl.T("msg.game_complete")),
		m.turnipArt(),
		m.helpView(helpKeys{m.keys.Confirm, m.keys.Quit}),
	))
}

// turnipArt draws a pulled turnip for the game over screen.
func (m App) turnipArt() string {
	s := core.NewScreen(9, 4)
	drawTurnip(s, 4, 2, turnipBody(2), true)
	return m.renderer.Render(s)
}

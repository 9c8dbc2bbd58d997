package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-turnip/internal/core"
)

// introParts is the number of story pages after the title page.
const introParts = 5

func (m *App) startIntro() tea.Cmd {
	m.screen = screenIntro
	m.introPart = 0
	m.introGen++
	return introTickCmd(m.config.IntroStep, m.introGen)
}

// advanceIntro shows the next page and restarts the timer. Pending ticks of
// the previous page become stale.
func (m *App) advanceIntro() tea.Cmd {
	m.introPart++
	if m.introPart > introParts {
		m.finishIntro()
		return nil
	}
	m.introGen++
	return introTickCmd(m.config.IntroStep, m.introGen)
}

func (m *App) finishIntro() {
	m.introGen++
	m.ctrl.MarkIntroViewed(m.ctx)
	m.screen = screenMenu
}

func (m *App) updateIntro(in core.Input) tea.Cmd {
	switch in.Action {
	case core.ActionConfirm:
		return m.advanceIntro()
	case core.ActionSkip, core.ActionBack:
		m.finishIntro()
	}
	return nil
}

func (m App) viewIntro() string {
	title := m.theme.Title.Render(m.ctrl.T("intro.title"))

	var page string
	if m.introPart > 0 {
		text := m.ctrl.T("intro.part" + strconv.Itoa(m.introPart))
		width := core.Clamp(m.config.ScreenW-8, 20, 60)
		page = m.theme.Text.Width(width).Align(lipgloss.Center).Render(text)
	}

	// One dot per page, the current one filled.
	dots := make([]string, introParts+1)
	for i := range dots {
		dots[i] = "○"
		if i == m.introPart {
			dots[i] = "●"
		}
	}

	return m.center(joinLines(
		"\n"+title,
		page,
		m.theme.Muted.Render(strings.Join(dots, " ")),
		m.helpView(m.keys.introHelp()),
	))
}

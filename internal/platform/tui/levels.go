package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-turnip/internal/core"
)

// Level table layout constants
const (
	levelColID       = 4
	levelColSource   = 12
	levelColStrength = 10
	levelTitleMin    = 20
	levelTitleMax    = 36
)

// createLevelsTable builds the table of unlocked levels.
func (m *App) createLevelsTable() table.Model {
	titleW := core.Clamp(m.config.ScreenW-levelColID-levelColSource-levelColStrength-12, levelTitleMin, levelTitleMax)
	columns := []table.Column{
		{Title: "#", Width: levelColID},
		{Title: m.ctrl.T("ui.level"), Width: titleW},
		{Title: "", Width: levelColSource},
		{Title: m.ctrl.T("ui.required_strength"), Width: levelColStrength},
	}

	p := m.ctrl.Progress()
	var rows []table.Row
	cursor := 0
	for _, l := range m.ctrl.Levels().All() {
		if !p.IsUnlocked(l.ID) {
			continue
		}
		mark := strconv.Itoa(l.ID)
		if l.ID == p.CurrentLevel {
			cursor = len(rows)
			mark += "*"
		}
		rows = append(rows, table.Row{
			mark,
			m.ctrl.T(l.TitleKey()),
			string(l.SourceType),
			strconv.Itoa(m.ctrl.RequiredStrength(l.ID)),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(core.Clamp(len(rows)+2, 3, core.Max(3, m.config.ScreenH-10))),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.TableHeader).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(m.theme.TableSelectF).
		Background(m.theme.TableSelectB).
		Bold(false)
	t.SetStyles(s)
	t.SetCursor(cursor)

	return t
}

// updateLevels handles input on the level table.
func (m *App) updateLevels(in core.Input, msg tea.KeyMsg) tea.Cmd {
	switch in.Action {
	case core.ActionBack:
		m.screen = screenMenu
		return nil

	case core.ActionConfirm:
		row := m.levels.SelectedRow()
		if row == nil {
			return nil
		}
		id, err := strconv.Atoi(trimMark(row[0]))
		if err != nil {
			return nil
		}
		if s, err := m.ctrl.StartLevel(m.ctx, id); err == nil {
			m.enterLevel(s)
		}
		return nil
	}

	// Pass navigation to the table for scrolling
	var cmd tea.Cmd
	m.levels, cmd = m.levels.Update(msg)
	return cmd
}

func trimMark(s string) string {
	if n := len(s); n > 0 && s[n-1] == '*' {
		return s[:n-1]
	}
	return s
}

func (m App) viewLevels() string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.TableHeader).
		Padding(0, 1)

	return m.center(joinLines(
		"\n"+m.theme.Title.Render(m.ctrl.T("ui.levels")),
		tableStyle.Render(m.levels.View()),
		m.helpView(m.keys.listHelp()),
	))
}

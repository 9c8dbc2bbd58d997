package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-turnip/internal/core"
)

// screenRenderer converts Screen buffers to styled strings. Styles are
// cached per color since a field reuses a handful of colors.
type screenRenderer struct {
	monochrome bool
	styles     map[core.Color]lipgloss.Style
}

func newScreenRenderer(theme Theme) *screenRenderer {
	return &screenRenderer{
		monochrome: theme.Monochrome,
		styles:     make(map[core.Color]lipgloss.Style),
	}
}

func (r *screenRenderer) style(c core.Color) lipgloss.Style {
	if r.monochrome || c.IsDefault() {
		return lipgloss.NewStyle()
	}
	st, ok := r.styles[c]
	if !ok {
		st = lipgloss.NewStyle().Foreground(lipgloss.Color(string(c)))
		r.styles[c] = st
	}
	return st
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (r *screenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		if r.monochrome {
			sb.WriteString(s.Row(y))
			continue
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(r.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders a screen with the given theme.
func RenderScreen(s *core.Screen, theme Theme) string {
	return newScreenRenderer(theme).Render(s)
}

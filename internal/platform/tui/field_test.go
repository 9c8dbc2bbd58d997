package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
	"github.com/vovakirdan/tui-turnip/internal/core"
	"github.com/vovakirdan/tui-turnip/internal/engine"
)

func testSlots(occupied ...bool) []engine.Slot {
	chars := []catalog.Character{
		{ID: "grandfather", Glyph: 'G', DisplayColor: "#8B4513"},
		{ID: "grandmother", Glyph: 'W', DisplayColor: "#FF69B4"},
		{ID: "grandchild", Glyph: 'c', DisplayColor: "#00CED1"},
	}
	slots := make([]engine.Slot, len(occupied))
	for i, occ := range occupied {
		slots[i] = engine.Slot{Expected: chars[i], Occupied: occ}
	}
	return slots
}

func TestDrawFieldSlots(t *testing.T) {
	s := core.NewScreen(52, 8)
	drawField(s, fieldView{
		source: catalog.SourceGround,
		slots:  testSlots(true, false, true),
		scale:  0.8,
		fresh:  2,
	})

	slotRow := s.Row(6)
	if !strings.HasPrefix(slotRow, " [ G ] [ · ] [ c ]") {
		t.Errorf("slot row = %q", slotRow)
	}
	numbers := s.Row(5)
	if numbers[3] != '1' || numbers[9] != '2' || numbers[15] != '3' {
		t.Errorf("slot numbers = %q", numbers)
	}
	if got := s.GetCell(slotX(2)+2, 5).Color; got != core.ColorSuccess {
		t.Errorf("fresh slot number color = %q, want %q", got, core.ColorSuccess)
	}
	if got := s.GetCell(slotX(0)+2, 6).Color; got != core.Color("#8B4513") {
		t.Errorf("occupant color = %q", got)
	}
	// The turnip sits in the soil near the right edge.
	if soil := s.Row(7); !strings.HasPrefix(soil, strings.Repeat("▒", 40)) {
		t.Errorf("soil row = %q", soil)
	}
}

func TestDrawFieldLeavesOutSlotsPastTheEdge(t *testing.T) {
	s := core.NewScreen(14, 8)
	drawField(s, fieldView{
		source: catalog.SourceGround,
		slots:  testSlots(true, true, true),
		scale:  0.8,
		fresh:  -1,
	})

	if s.Get(slotX(1), 6) != '[' || s.Get(slotX(1)+4, 6) != ']' {
		t.Errorf("second slot should fit, row = %q", s.Row(6))
	}
	if got := s.Get(slotX(2), 6); got != ' ' {
		t.Errorf("third slot should be left out, got %q at its left edge", got)
	}
}

func TestDrawFieldSources(t *testing.T) {
	tests := []struct {
		source catalog.SourceType
		pulled bool
		want   []string
		absent []string
	}{
		{source: catalog.SourceGround, want: []string{"(@)", `\|/`}},
		{source: catalog.SourceBottle, want: []string{"┌", "(@)"}},
		{source: catalog.SourceHigh, want: []string{"═", "╫"}},
		{source: catalog.SourceComplex, want: []string{"═", "┌", "╫"}},
		{source: catalog.SourceSpotlight, want: []string{"▼", "/", `\`}},
		{source: catalog.SourceNarrow, want: []string{"█", "(@)"}},
		{source: catalog.SourceDeepGround, want: []string{"▓", `\|/`}, absent: []string{"(@"}},
		{source: catalog.SourceDeepGround, pulled: true, want: []string{"(@)", "v"}},
	}

	for _, tt := range tests {
		name := string(tt.source)
		if tt.pulled {
			name += "/pulled"
		}
		t.Run(name, func(t *testing.T) {
			s := core.NewScreen(52, 12)
			drawField(s, fieldView{source: tt.source, scale: 0.8, pulled: tt.pulled, fresh: -1})
			text := s.String()
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("field missing %q:\n%s", w, text)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(text, a) {
					t.Errorf("field unexpectedly contains %q:\n%s", a, text)
				}
			}
		})
	}
}

func TestDrawFieldTooSmall(t *testing.T) {
	s := core.NewScreen(52, 5)
	drawField(s, fieldView{source: catalog.SourceGround, slots: testSlots(true)})
	if strings.TrimSpace(s.String()) != "" {
		t.Errorf("expected blank field, got:\n%s", s.String())
	}
}

func TestTurnipBody(t *testing.T) {
	tests := []struct {
		scale float64
		want  string
	}{
		{0.8, "(@)"},
		{0.94, "(@)"},
		{0.95, "(@@@)"},
		{1.05, "(@@@)"},
		{1.1, "(@@@@@)"},
		{1.25, "(@@@@@)"},
	}
	for _, tt := range tests {
		if got := turnipBody(tt.scale); got != tt.want {
			t.Errorf("turnipBody(%v) = %q, want %q", tt.scale, got, tt.want)
		}
	}
}

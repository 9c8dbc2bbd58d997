package tui

import (
	"strconv"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
	"github.com/vovakirdan/tui-turnip/internal/core"
	"github.com/vovakirdan/tui-turnip/internal/engine"
)

// Field layout constants
const (
	slotWidth   = 5 // "[ G ]"
	slotSpacing = 6
	slotLeft    = 1
	maxCone     = 6 // widest half-width of the spotlight cone
)

// fieldView is everything needed to draw one level's field.
type fieldView struct {
	source catalog.SourceType
	slots  []engine.Slot
	scale  float64
	pulled bool
	fresh  int // slot placed last, its number is highlighted; -1 for none
}

// turnipBody returns the turnip's body for its scale.
func turnipBody(scale float64) string {
	switch {
	case scale < 0.95:
		return "(@)"
	case scale < 1.1:
		return "(@@@)"
	default:
		return "(@@@@@)"
	}
}

// drawField draws the source, the turnip and the slot row into s.
// The bottom row is soil, the row above holds the slots and the row above
// that their numbers.
func drawField(s *core.Screen, v fieldView) {
	s.Clear()
	w, h := s.Width(), s.Height()
	if w == 0 || h < 8 {
		return
	}

	soilY := h - 1
	slotY := h - 2
	cx := w - 8

	soil := '▒'
	if v.source == catalog.SourceDeepGround {
		soil = '▓'
	}
	s.DrawRect(core.NewRect(0, soilY, w, 1), soil, core.ColorSoil)

	body := turnipBody(v.scale)
	lift := 0
	if v.pulled {
		lift = 2
	}

	switch v.source {
	case catalog.SourceBottle:
		box := core.NewRect(cx-4, h-6, 9, 5)
		s.DrawBox(box, core.ColorGlass)
		// Open neck
		s.DrawText(cx-1, box.Y, "   ")
		drawTurnip(s, cx, slotY-1-lift*2, body, v.pulled)

	case catalog.SourceHigh:
		shelfY := 3
		s.DrawHLine(cx-5, shelfY, 11, '═', core.ColorWood)
		drawLadder(s, cx-6, shelfY+1, slotY)
		drawTurnip(s, cx, shelfY-1-lift/2, body, v.pulled)

	case catalog.SourceComplex:
		// A bottle standing on a shelf.
		shelfY := 5
		s.DrawHLine(cx-5, shelfY, 11, '═', core.ColorWood)
		drawLadder(s, cx-6, shelfY+1, slotY)
		s.DrawBox(core.NewRect(cx-4, 1, 9, shelfY-1), core.ColorGlass)
		s.DrawText(cx-1, 1, "   ")
		drawTurnip(s, cx, shelfY-2-lift/2, body, v.pulled)

	case catalog.SourceSpotlight:
		s.SetWithColor(cx, 0, '▼', core.ColorLight)
		for y := 1; y < slotY-1; y++ {
			k := core.Min(y, maxCone)
			s.SetWithColor(cx-k, y, '/', core.ColorLight)
			s.SetWithColor(cx+k, y, '\\', core.ColorLight)
		}
		drawTurnip(s, cx, soilY-lift, body, v.pulled)

	case catalog.SourceNarrow:
		s.DrawRect(core.NewRect(cx-3, h-6, 1, 5), '█', core.ColorStone)
		s.DrawRect(core.NewRect(cx+3, h-6, 1, 5), '█', core.ColorStone)
		drawTurnip(s, cx, soilY-lift, turnipBody(0), v.pulled)

	case catalog.SourceDeepGround:
		if v.pulled {
			drawTurnip(s, cx, soilY-lift, body, true)
		} else {
			// Only the leaves show above the surface.
			s.DrawTextWithColor(cx-1, slotY, `\|/`, core.ColorLeaf)
		}

	default:
		drawTurnip(s, cx, soilY-lift, body, v.pulled)
	}

	drawSlots(s, v.slots, slotY, v.fresh)
}

// drawTurnip draws the body centered on cx at row y with leaves above it.
// A pulled turnip shows its root below the body.
func drawTurnip(s *core.Screen, cx, y int, body string, pulled bool) {
	half := len(body) / 2
	s.DrawTextWithColor(cx-1, y-1, `\|/`, core.ColorLeaf)
	s.DrawTextWithColor(cx-half, y, body, core.ColorTurnip)
	if pulled {
		s.SetWithColor(cx, y+1, 'v', core.ColorTurnip)
	}
}

func drawLadder(s *core.Screen, x, top, bottom int) {
	for y := top; y <= bottom; y++ {
		s.SetWithColor(x, y, '╫', core.ColorWood)
	}
}

// drawSlots draws the numbered slot row. Occupied slots show their
// character's glyph in its color; empty ones show a dim placeholder.
// Slots that do not fit the field are left out.
func drawSlots(s *core.Screen, slots []engine.Slot, y, fresh int) {
	bounds := s.Bounds()
	for i, sl := range slots {
		box := slotRect(i, y)
		if !bounds.Contains(box.Right()-1, y) {
			return
		}
		cx, _ := box.Center()
		numColor := core.ColorDim
		if i == fresh {
			numColor = core.ColorSuccess
		}
		s.DrawTextWithColor(cx, y-1, strconv.Itoa(i+1), numColor)
		s.SetWithColor(box.X, y, '[', core.ColorDim)
		s.SetWithColor(box.Right()-1, y, ']', core.ColorDim)
		if sl.Occupied {
			s.SetWithColor(cx, y, sl.Expected.Glyph, core.Color(sl.Expected.DisplayColor))
		} else {
			s.SetWithColor(cx, y, '·', core.ColorDim)
		}
	}
}

// slotRect returns the cells of slot i on row y.
func slotRect(i, y int) core.Rect {
	return core.NewRect(slotX(i), y, slotWidth, 1)
}

// slotX returns the left column of slot i.
func slotX(i int) int {
	return slotLeft + i*slotSpacing
}

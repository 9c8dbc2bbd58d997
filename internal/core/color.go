package core

// Color is a foreground color for a screen cell, expressed as a terminal
// color value: an ANSI index ("245") or a hex value ("#8B4513").
// The zero value renders with the terminal's default color.
type Color string

// Field palette.
const (
	ColorDefault Color = ""
	ColorSoil    Color = "#8B5A2B"
	ColorGrass   Color = "#6B8E23"
	ColorLeaf    Color = "#3CB371"
	ColorTurnip  Color = "#F0E68C"
	ColorGlass   Color = "#87CEEB"
	ColorWood    Color = "#A0522D"
	ColorLight   Color = "#FFFACD"
	ColorStone   Color = "245"
	ColorDim     Color = "240"
	ColorSuccess Color = "10"
	ColorFailure Color = "9"
)

// IsDefault reports whether c uses the terminal's default color.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}

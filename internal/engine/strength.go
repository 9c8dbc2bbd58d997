// Package engine implements level sessions: slot occupancy, placement rules,
// strength resolution and pull outcomes. It performs no I/O.
package engine

import (
	"math"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
)

// curveEpsilon absorbs float drift in the scale arithmetic so that whole
// numbers are not pushed over by ceil.
const curveEpsilon = 1e-9

// StrengthCurve maps a level id to the strength needed to pull its turnip.
//
//	required = ceil(Base + (TurnipScale(id) - ScaleBase) * Multiplier)
//	TurnipScale(id) = ScaleBase + (id - 1) * ScaleStep
type StrengthCurve struct {
	Base       float64 `yaml:"base"`
	ScaleBase  float64 `yaml:"scale_base"`
	ScaleStep  float64 `yaml:"scale_step"`
	Multiplier float64 `yaml:"multiplier"`
}

// DefaultCurve returns the campaign curve: level 1 needs 3, each level one more.
func DefaultCurve() StrengthCurve {
	return StrengthCurve{
		Base:       3,
		ScaleBase:  0.8,
		ScaleStep:  0.05,
		Multiplier: 20,
	}
}

// TurnipScale returns the visual scale of the turnip on the given level.
func (c StrengthCurve) TurnipScale(levelID int) float64 {
	return c.ScaleBase + float64(levelID-1)*c.ScaleStep
}

// Required returns the strength needed to pull the turnip on the given level.
func (c StrengthCurve) Required(levelID int) int {
	growth := float64(levelID-1) * c.ScaleStep * c.Multiplier
	return int(math.Ceil(c.Base + growth - curveEpsilon))
}

// IsZero reports whether the curve is unset.
func (c StrengthCurve) IsZero() bool {
	return c == StrengthCurve{}
}

// RequiredStrength returns the default curve's requirement for levelID.
func RequiredStrength(levelID int) int {
	return DefaultCurve().Required(levelID)
}

// TurnipScale returns the default curve's turnip scale for levelID.
func TurnipScale(levelID int) float64 {
	return DefaultCurve().TurnipScale(levelID)
}

// ComputeTotalStrength sums the strength of a row of slots, left to right.
// A nil entry is an empty slot.
//
// A half point is added for every occupied slot i > 0 whose left neighbor is
// occupied, once a support character has been scanned at or before i. The
// support flag is sticky for the rest of the scan. The sum is floored.
func ComputeTotalStrength(row []*catalog.Character) int {
	sum := 0
	halves := 0
	supportSeen := false

	for i, c := range row {
		if c == nil {
			continue
		}
		sum += c.Strength
		if c.Ability == catalog.AbilitySupport {
			supportSeen = true
		}
		if supportSeen && i > 0 && row[i-1] != nil {
			halves++
		}
	}

	return sum + halves/2
}

// Package catalog holds the immutable character and level registries.
// Both catalogs are validated once at construction; lookups never fail at
// play time for ids that came from the catalogs themselves.
package catalog

import (
	"fmt"
	"strconv"
)

// Ability is a tag on a character. Only AbilitySupport affects strength.
type Ability string

const (
	AbilityLeader   Ability = "leader"
	AbilitySupport  Ability = "support"
	AbilityFlexible Ability = "flexible"
	AbilityDig      Ability = "dig"
	AbilityClimb    Ability = "climb"
	AbilitySmall    Ability = "small"
)

// Valid reports whether a belongs to the closed ability set.
func (a Ability) Valid() bool {
	switch a {
	case AbilityLeader, AbilitySupport, AbilityFlexible, AbilityDig, AbilityClimb, AbilitySmall:
		return true
	}
	return false
}

// Key returns the localization key for the ability description.
func (a Ability) Key() string {
	return "ability." + string(a)
}

// SourceType describes where the turnip sits.
type SourceType string

const (
	SourceGround     SourceType = "ground"
	SourceBottle     SourceType = "bottle"
	SourceHigh       SourceType = "high"
	SourceSpotlight  SourceType = "spotlight"
	SourceNarrow     SourceType = "narrow"
	SourceDeepGround SourceType = "deep-ground"
	SourceComplex    SourceType = "complex"
)

// Valid reports whether s is a known source type.
func (s SourceType) Valid() bool {
	switch s {
	case SourceGround, SourceBottle, SourceHigh, SourceSpotlight,
		SourceNarrow, SourceDeepGround, SourceComplex:
		return true
	}
	return false
}

// Mechanic is the placement interaction a level expects from the input layer.
type Mechanic string

const (
	MechanicDragDrop   Mechanic = "drag-drop"
	MechanicClickPlace Mechanic = "click-place"
	MechanicHybrid     Mechanic = "hybrid"
)

// Valid reports whether m is a known mechanic.
func (m Mechanic) Valid() bool {
	switch m {
	case MechanicDragDrop, MechanicClickPlace, MechanicHybrid:
		return true
	}
	return false
}

// AllowsDrop reports whether characters may be dropped onto the next free slot.
func (m Mechanic) AllowsDrop() bool {
	return m == MechanicDragDrop || m == MechanicHybrid
}

// AllowsPick reports whether characters may be placed into an explicitly chosen slot.
func (m Mechanic) AllowsPick() bool {
	return m == MechanicClickPlace || m == MechanicHybrid
}

// Character is a playable entity.
type Character struct {
	ID           string
	Order        int
	Strength     int
	Ability      Ability
	DisplayColor string // #RRGGBB
	Icon         string
	Glyph        rune // single-cell stand-in for Icon in terminal fields
}

// NameKey returns the localization key for the character name.
func (c Character) NameKey() string {
	return "character." + c.ID
}

// AbilityKey returns the localization key for the character's ability.
func (c Character) AbilityKey() string {
	return c.Ability.Key()
}

// Level is one puzzle configuration.
type Level struct {
	ID                   int
	SourceType           SourceType
	RequiredCharacterIDs []string
	Mechanic             Mechanic
	TurnipStrengthHint   int
	RequiresAbility      Ability // empty when the level has no ability flavor
	IsFinal              bool
}

// TitleKey returns the localization key for the level title.
func (l Level) TitleKey() string {
	return "level." + strconv.Itoa(l.ID) + ".title"
}

// DescriptionKey returns the localization key for the level description.
func (l Level) DescriptionKey() string {
	return "level." + strconv.Itoa(l.ID) + ".desc"
}

// SlotCount returns how many placement slots the level has.
func (l Level) SlotCount() int {
	return len(l.RequiredCharacterIDs)
}

// ValidationError contains details about a catalog validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

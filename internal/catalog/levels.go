package catalog

import (
	"fmt"
)

// LevelCatalog is the validated, read-only set of levels.
type LevelCatalog struct {
	byID    map[int]Level
	ordered []Level
}

// NewLevelCatalog validates levels against chars and builds a catalog.
// Validation happens here so that sessions never meet an unresolvable id.
func NewLevelCatalog(levels []Level, chars *CharacterCatalog) (*LevelCatalog, error) {
	if len(levels) == 0 {
		return nil, ValidationError{Code: "EMPTY_CATALOG", Message: "no levels defined"}
	}
	if chars == nil {
		return nil, ValidationError{Code: "NO_CHARACTERS", Message: "level catalog needs a character catalog"}
	}

	byID := make(map[int]Level, len(levels))
	for _, l := range levels {
		if err := validateLevel(l, chars); err != nil {
			return nil, err
		}
		if _, dup := byID[l.ID]; dup {
			return nil, ValidationError{
				Code:    "DUPLICATE_ID",
				Message: fmt.Sprintf("level %d defined twice", l.ID),
			}
		}
		byID[l.ID] = l
	}

	ordered := make([]Level, 0, len(levels))
	for id := 1; id <= len(levels); id++ {
		l, ok := byID[id]
		if !ok {
			return nil, ValidationError{
				Code:    "ID_GAP",
				Message: fmt.Sprintf("no level with id %d (ids must run 1..%d)", id, len(levels)),
			}
		}
		ordered = append(ordered, l)
	}

	for i, l := range ordered {
		last := i == len(ordered)-1
		if l.IsFinal != last {
			return nil, ValidationError{
				Code:    "FINAL_MISPLACED",
				Message: fmt.Sprintf("level %d: only the last level may be final", l.ID),
			}
		}
	}

	return &LevelCatalog{byID: byID, ordered: ordered}, nil
}

// validateLevel checks a single level in isolation.
func validateLevel(l Level, chars *CharacterCatalog) error {
	if l.ID < 1 {
		return ValidationError{Code: "INVALID_ID", Message: fmt.Sprintf("level id %d must be positive", l.ID)}
	}
	if !l.SourceType.Valid() {
		return ValidationError{
			Code:    "INVALID_SOURCE",
			Message: fmt.Sprintf("level %d has unknown source type %q", l.ID, l.SourceType),
		}
	}
	if !l.Mechanic.Valid() {
		return ValidationError{
			Code:    "INVALID_MECHANIC",
			Message: fmt.Sprintf("level %d has unknown placement mechanic %q", l.ID, l.Mechanic),
		}
	}
	if l.RequiresAbility != "" && !l.RequiresAbility.Valid() {
		return ValidationError{
			Code:    "INVALID_ABILITY",
			Message: fmt.Sprintf("level %d requires unknown ability %q", l.ID, l.RequiresAbility),
		}
	}
	if len(l.RequiredCharacterIDs) == 0 {
		return ValidationError{
			Code:    "NO_SLOTS",
			Message: fmt.Sprintf("level %d has no required characters", l.ID),
		}
	}

	seen := make(map[string]bool, len(l.RequiredCharacterIDs))
	prevOrder := 0
	for _, id := range l.RequiredCharacterIDs {
		if seen[id] {
			return ValidationError{
				Code:    "DUPLICATE_CHARACTER",
				Message: fmt.Sprintf("level %d lists %q twice", l.ID, id),
			}
		}
		seen[id] = true
		ch, err := chars.Get(id)
		if err != nil {
			return ValidationError{
				Code:    "UNKNOWN_CHARACTER",
				Message: fmt.Sprintf("level %d references unknown character %q", l.ID, id),
			}
		}
		// Slots follow the canonical order of the required subset.
		if ch.Order <= prevOrder {
			return ValidationError{
				Code:    "OUT_OF_ORDER",
				Message: fmt.Sprintf("level %d lists %q out of canonical order", l.ID, id),
			}
		}
		prevOrder = ch.Order
	}
	return nil
}

// Get returns the level with the given id.
func (c *LevelCatalog) Get(id int) (Level, error) {
	l, ok := c.byID[id]
	if !ok {
		return Level{}, fmt.Errorf("level %d: %w", id, ErrNotFound)
	}
	return l, nil
}

// All returns every level ordered by id. The returned slice is a copy.
func (c *LevelCatalog) All() []Level {
	out := make([]Level, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Last returns the level with the highest id.
func (c *LevelCatalog) Last() Level {
	return c.ordered[len(c.ordered)-1]
}

// Len returns the number of levels.
func (c *LevelCatalog) Len() int {
	return len(c.ordered)
}

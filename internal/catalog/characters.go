package catalog

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned when a catalog lookup misses.
var ErrNotFound = errors.New("catalog: not found")

// CharacterCatalog is the validated, read-only set of characters.
type CharacterCatalog struct {
	byID    map[string]Character
	ordered []Character
}

// NewCharacterCatalog validates chars and builds a catalog.
// Checks:
//   - ids are non-empty and unique
//   - orders are unique and contiguous from 1
//   - strengths are positive
//   - abilities belong to the closed set
func NewCharacterCatalog(chars []Character) (*CharacterCatalog, error) {
	if len(chars) == 0 {
		return nil, ValidationError{Code: "EMPTY_CATALOG", Message: "no characters defined"}
	}

	byID := make(map[string]Character, len(chars))
	orders := make(map[int]string, len(chars))

	for _, c := range chars {
		if c.ID == "" {
			return nil, ValidationError{Code: "MISSING_ID", Message: "character without id"}
		}
		if _, dup := byID[c.ID]; dup {
			return nil, ValidationError{
				Code:    "DUPLICATE_ID",
				Message: fmt.Sprintf("character %q defined twice", c.ID),
			}
		}
		if other, dup := orders[c.Order]; dup {
			return nil, ValidationError{
				Code:    "DUPLICATE_ORDER",
				Message: fmt.Sprintf("characters %q and %q share order %d", other, c.ID, c.Order),
			}
		}
		if c.Strength <= 0 {
			return nil, ValidationError{
				Code:    "INVALID_STRENGTH",
				Message: fmt.Sprintf("character %q has strength %d", c.ID, c.Strength),
			}
		}
		if !c.Ability.Valid() {
			return nil, ValidationError{
				Code:    "INVALID_ABILITY",
				Message: fmt.Sprintf("character %q has unknown ability %q", c.ID, c.Ability),
			}
		}
		byID[c.ID] = c
		orders[c.Order] = c.ID
	}

	for i := 1; i <= len(chars); i++ {
		if _, ok := orders[i]; !ok {
			return nil, ValidationError{
				Code:    "ORDER_GAP",
				Message: fmt.Sprintf("no character with order %d (orders must run 1..%d)", i, len(chars)),
			}
		}
	}

	ordered := make([]Character, len(chars))
	copy(ordered, chars)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	return &CharacterCatalog{byID: byID, ordered: ordered}, nil
}

// Get returns the character with the given id.
func (c *CharacterCatalog) Get(id string) (Character, error) {
	ch, ok := c.byID[id]
	if !ok {
		return Character{}, fmt.Errorf("character %q: %w", id, ErrNotFound)
	}
	return ch, nil
}

// AllInCanonicalOrder returns every character sorted by Order.
// The returned slice is a copy.
func (c *CharacterCatalog) AllInCanonicalOrder() []Character {
	out := make([]Character, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of characters.
func (c *CharacterCatalog) Len() int {
	return len(c.ordered)
}

// Resolve returns the characters for ids, in the given order.
// Unknown ids are skipped.
func (c *CharacterCatalog) Resolve(ids []string) []Character {
	out := make([]Character, 0, len(ids))
	for _, id := range ids {
		if ch, ok := c.byID[id]; ok {
			out = append(out, ch)
		}
	}
	return out
}

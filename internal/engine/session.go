package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-turnip/internal/catalog"
)

// Placement rejections. The session is unchanged when any of these is returned.
var (
	ErrSlotOccupied          = errors.New("slot already occupied")
	ErrWrongCharacterForSlot = errors.New("wrong character for slot")
	ErrSlotOutOfRange        = errors.New("slot index out of range")
	ErrSessionResolved       = errors.New("session already resolved")
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	PhaseInitial Phase = iota
	PhasePartiallyFilled
	PhaseFullyFilled
	PhaseResolvedSuccess
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "Initial"
	case PhasePartiallyFilled:
		return "PartiallyFilled"
	case PhaseFullyFilled:
		return "FullyFilled"
	case PhaseResolvedSuccess:
		return "ResolvedSuccess"
	default:
		return "Unknown"
	}
}

// Slot is one ordered placement position.
type Slot struct {
	Expected catalog.Character
	Occupied bool
}

// PlaceResult describes an accepted placement.
type PlaceResult struct {
	SlotIndex int
	Character catalog.Character
	Total     int
	Phase     Phase
}

// PullResult is the semantic outcome of a pull attempt.
type PullResult int

const (
	PullNoCharactersPlaced PullResult = iota
	PullSuccess
	PullFailure
)

// String returns a human-readable name for the result.
func (r PullResult) String() string {
	switch r {
	case PullNoCharactersPlaced:
		return "no_characters"
	case PullSuccess:
		return "success"
	case PullFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// PullOutcome is returned by AttemptPull.
type PullOutcome struct {
	Result   PullResult
	Total    int
	Required int
}

// Session is the mutable state of one level attempt.
// A session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	id       string
	level    catalog.Level
	slots    []Slot
	required int
	total    int
	resolved bool
}

// NewSession builds an empty session for level. Slots follow the level's
// required character order.
func NewSession(level catalog.Level, chars *catalog.CharacterCatalog, curve StrengthCurve) (*Session, error) {
	if curve.IsZero() {
		curve = DefaultCurve()
	}

	slots := make([]Slot, 0, len(level.RequiredCharacterIDs))
	for _, id := range level.RequiredCharacterIDs {
		c, err := chars.Get(id)
		if err != nil {
			return nil, fmt.Errorf("level %d: %w", level.ID, err)
		}
		slots = append(slots, Slot{Expected: c})
	}

	return &Session{
		id:       uuid.NewString(),
		level:    level,
		slots:    slots,
		required: curve.Required(level.ID),
	}, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string { return s.id }

// Level returns the level being played.
func (s *Session) Level() catalog.Level { return s.level }

// RequiredStrength returns the strength needed for success, fixed at session start.
func (s *Session) RequiredStrength() int { return s.required }

// TotalStrength returns the current floored strength.
func (s *Session) TotalStrength() int { return s.total }

// Slots returns a snapshot of the slots.
func (s *Session) Slots() []Slot {
	out := make([]Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// OccupiedCount returns the number of filled slots.
func (s *Session) OccupiedCount() int {
	n := 0
	for _, sl := range s.slots {
		if sl.Occupied {
			n++
		}
	}
	return n
}

// IsPlaced reports whether the character already sits in its slot.
func (s *Session) IsPlaced(characterID string) bool {
	for _, sl := range s.slots {
		if sl.Expected.ID == characterID {
			return sl.Occupied
		}
	}
	return false
}

// FirstEmptySlot returns the leftmost empty slot, or -1 when full.
func (s *Session) FirstEmptySlot() int {
	for i, sl := range s.slots {
		if !sl.Occupied {
			return i
		}
	}
	return -1
}

// Phase reports the session's lifecycle state.
func (s *Session) Phase() Phase {
	if s.resolved {
		return PhaseResolvedSuccess
	}
	switch n := s.OccupiedCount(); {
	case n == 0:
		return PhaseInitial
	case n == len(s.slots):
		return PhaseFullyFilled
	default:
		return PhasePartiallyFilled
	}
}

// Place puts characterID into the slot at slotIndex.
func (s *Session) Place(slotIndex int, characterID string) (PlaceResult, error) {
	if slotIndex < 0 || slotIndex >= len(s.slots) {
		return PlaceResult{}, fmt.Errorf("slot %d: %w", slotIndex, ErrSlotOutOfRange)
	}
	if s.resolved {
		return PlaceResult{}, ErrSessionResolved
	}

	slot := &s.slots[slotIndex]
	if slot.Occupied {
		return PlaceResult{}, fmt.Errorf("slot %d: %w", slotIndex, ErrSlotOccupied)
	}
	if slot.Expected.ID != characterID {
		return PlaceResult{}, fmt.Errorf("slot %d expects %s, got %s: %w",
			slotIndex, slot.Expected.ID, characterID, ErrWrongCharacterForSlot)
	}

	slot.Occupied = true
	s.total = ComputeTotalStrength(s.row())

	return PlaceResult{
		SlotIndex: slotIndex,
		Character: slot.Expected,
		Total:     s.total,
		Phase:     s.Phase(),
	}, nil
}

// AttemptPull compares the current strength with the requirement.
// A failed pull keeps every placement so the player can add more and retry.
func (s *Session) AttemptPull() PullOutcome {
	out := PullOutcome{Total: s.total, Required: s.required}

	if s.OccupiedCount() == 0 {
		out.Result = PullNoCharactersPlaced
		return out
	}
	if s.total >= s.required {
		s.resolved = true
		out.Result = PullSuccess
		return out
	}
	out.Result = PullFailure
	return out
}

// AbilitySatisfied reports whether some placed character carries the level's
// ability. Levels without an ability are always satisfied. Pulls do not
// consult this.
func (s *Session) AbilitySatisfied() bool {
	want := s.level.RequiresAbility
	if want == "" {
		return true
	}
	for _, sl := range s.slots {
		if sl.Occupied && sl.Expected.Ability == want {
			return true
		}
	}
	return false
}

// row returns the slot occupants for strength computation.
func (s *Session) row() []*catalog.Character {
	row := make([]*catalog.Character, len(s.slots))
	for i := range s.slots {
		if s.slots[i].Occupied {
			row[i] = &s.slots[i].Expected
		}
	}
	return row
}

// Package progress holds the persisted player record and its blob codec.
package progress

import (
	"encoding/json"
	"sort"
)

// Defaults applied to missing or malformed fields.
const (
	DefaultLanguage = "en"
	DefaultLevel    = 1
)

// Progress is the persisted player state.
type Progress struct {
	Language       string
	CurrentLevel   int
	UnlockedLevels []int // sorted, unique, always contains 1
	IntroViewed    bool
}

// Default returns a fresh player record.
func Default() Progress {
	return Progress{
		Language:       DefaultLanguage,
		CurrentLevel:   DefaultLevel,
		UnlockedLevels: []int{DefaultLevel},
	}
}

// Clone returns a deep copy.
func (p Progress) Clone() Progress {
	out := p
	out.UnlockedLevels = append([]int(nil), p.UnlockedLevels...)
	return out
}

// IsUnlocked reports whether level n is playable.
func (p Progress) IsUnlocked(n int) bool {
	i := sort.SearchInts(p.UnlockedLevels, n)
	return i < len(p.UnlockedLevels) && p.UnlockedLevels[i] == n
}

// Unlock adds level n. It reports whether the set changed.
func (p *Progress) Unlock(n int) bool {
	if n < 1 || p.IsUnlocked(n) {
		return false
	}
	p.UnlockedLevels = append(p.UnlockedLevels, n)
	sort.Ints(p.UnlockedLevels)
	return true
}

// HighestUnlocked returns the largest unlocked level id.
func (p Progress) HighestUnlocked() int {
	if len(p.UnlockedLevels) == 0 {
		return DefaultLevel
	}
	return p.UnlockedLevels[len(p.UnlockedLevels)-1]
}

// blob is the wire shape of the persisted record.
type blob struct {
	Language       string `json:"language"`
	CurrentLevel   int    `json:"currentLevel"`
	UnlockedLevels []int  `json:"unlockedLevels"`
	IntroViewed    bool   `json:"introViewed"`
}

// Encode serializes p into the persisted blob.
func Encode(p Progress) ([]byte, error) {
	return json.Marshal(blob{
		Language:       p.Language,
		CurrentLevel:   p.CurrentLevel,
		UnlockedLevels: normalizeLevels(p.UnlockedLevels),
		IntroViewed:    p.IntroViewed,
	})
}

// Decode parses a persisted blob. Every field falls back to its default on
// its own, so a partially corrupt blob keeps whatever is still readable.
func Decode(data []byte) Progress {
	p := Default()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return p
	}

	if raw, ok := fields["language"]; ok {
		var lang string
		if json.Unmarshal(raw, &lang) == nil && lang != "" {
			p.Language = lang
		}
	}

	if raw, ok := fields["currentLevel"]; ok {
		var lvl int
		if json.Unmarshal(raw, &lvl) == nil && lvl >= 1 {
			p.CurrentLevel = lvl
		}
	}

	if raw, ok := fields["unlockedLevels"]; ok {
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) == nil {
			levels := make([]int, 0, len(items))
			for _, item := range items {
				var n int
				if json.Unmarshal(item, &n) == nil && n >= 1 {
					levels = append(levels, n)
				}
			}
			p.UnlockedLevels = normalizeLevels(levels)
		}
	}

	if raw, ok := fields["introViewed"]; ok {
		var viewed bool
		if json.Unmarshal(raw, &viewed) == nil {
			p.IntroViewed = viewed
		}
	}

	return p
}

// normalizeLevels sorts, de-duplicates and guarantees level 1.
func normalizeLevels(levels []int) []int {
	out := make([]int, 0, len(levels)+1)
	out = append(out, DefaultLevel)
	out = append(out, levels...)
	sort.Ints(out)

	uniq := out[:0]
	for _, n := range out {
		if n < 1 || (len(uniq) > 0 && uniq[len(uniq)-1] == n) {
			continue
		}
		uniq = append(uniq, n)
	}
	return uniq
}

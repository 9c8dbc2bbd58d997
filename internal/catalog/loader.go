package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed data/characters.yaml
var defaultCharactersYAML []byte

//go:embed data/levels.yaml
var defaultLevelsYAML []byte

// yamlCharacters is the on-disk character catalog format.
type yamlCharacters struct {
	Characters []yamlCharacter `yaml:"characters"`
}

type yamlCharacter struct {
	ID       string `yaml:"id"`
	Order    int    `yaml:"order"`
	Strength int    `yaml:"strength"`
	Ability  string `yaml:"ability"`
	Color    string `yaml:"color"`
	Icon     string `yaml:"icon"`
	Glyph    string `yaml:"glyph,omitempty"`
}

// yamlLevels is the on-disk level catalog format.
type yamlLevels struct {
	Levels []yamlLevel `yaml:"levels"`
}

type yamlLevel struct {
	ID              int      `yaml:"id"`
	Source          string   `yaml:"source"`
	Characters      []string `yaml:"characters"`
	Mechanic        string   `yaml:"mechanic"`
	StrengthHint    int      `yaml:"strength_hint"`
	RequiresAbility string   `yaml:"requires_ability,omitempty"`
	Final           bool     `yaml:"final,omitempty"`
}

// ParseCharacters parses and validates a YAML character catalog.
func ParseCharacters(data []byte) (*CharacterCatalog, error) {
	var yc yamlCharacters
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	chars := make([]Character, 0, len(yc.Characters))
	for _, c := range yc.Characters {
		glyph := '?'
		if c.Glyph != "" {
			glyph, _ = utf8.DecodeRuneInString(c.Glyph)
		} else if c.ID != "" {
			glyph, _ = utf8.DecodeRuneInString(c.ID)
		}
		chars = append(chars, Character{
			ID:           c.ID,
			Order:        c.Order,
			Strength:     c.Strength,
			Ability:      Ability(c.Ability),
			DisplayColor: c.Color,
			Icon:         c.Icon,
			Glyph:        glyph,
		})
	}
	return NewCharacterCatalog(chars)
}

// ParseLevels parses a YAML level catalog and validates it against chars.
func ParseLevels(data []byte, chars *CharacterCatalog) (*LevelCatalog, error) {
	var yl yamlLevels
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	levels := make([]Level, 0, len(yl.Levels))
	for _, l := range yl.Levels {
		levels = append(levels, Level{
			ID:                   l.ID,
			SourceType:           SourceType(l.Source),
			RequiredCharacterIDs: l.Characters,
			Mechanic:             Mechanic(l.Mechanic),
			TurnipStrengthHint:   l.StrengthHint,
			RequiresAbility:      Ability(l.RequiresAbility),
			IsFinal:              l.Final,
		})
	}
	return NewLevelCatalog(levels, chars)
}

// LoadCharacters loads the character catalog from path, or the built-in
// catalog when path is empty.
func LoadCharacters(path string) (*CharacterCatalog, error) {
	data, err := readOrDefault(path, defaultCharactersYAML)
	if err != nil {
		return nil, err
	}
	cat, err := ParseCharacters(data)
	if err != nil {
		return nil, fmt.Errorf("characters %s: %w", sourceName(path), err)
	}
	return cat, nil
}

// LoadLevels loads the level catalog from path, or the built-in catalog
// when path is empty.
func LoadLevels(path string, chars *CharacterCatalog) (*LevelCatalog, error) {
	data, err := readOrDefault(path, defaultLevelsYAML)
	if err != nil {
		return nil, err
	}
	cat, err := ParseLevels(data, chars)
	if err != nil {
		return nil, fmt.Errorf("levels %s: %w", sourceName(path), err)
	}
	return cat, nil
}

// Load loads both catalogs. Empty paths select the built-in data.
func Load(charactersPath, levelsPath string) (*CharacterCatalog, *LevelCatalog, error) {
	chars, err := LoadCharacters(charactersPath)
	if err != nil {
		return nil, nil, err
	}
	levels, err := LoadLevels(levelsPath, chars)
	if err != nil {
		return nil, nil, err
	}
	return chars, levels, nil
}

// MustDefault returns the built-in catalogs and panics if they are invalid.
func MustDefault() (*CharacterCatalog, *LevelCatalog) {
	chars, levels, err := Load("", "")
	if err != nil {
		panic(err)
	}
	return chars, levels
}

func readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return data, nil
}

func sourceName(path string) string {
	if path == "" {
		return "(built-in)"
	}
	return path
}

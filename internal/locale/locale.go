// Package locale resolves display strings for stable message keys.
package locale

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultCode is used whenever a requested locale is unknown.
const DefaultCode = "en"

//go:embed locales/*.yaml
var localeFS embed.FS

// Language describes one selectable UI language.
type Language struct {
	Code   string
	Native string
	Flag   string
}

// supported lists the shipped languages in menu order. DefaultCode comes first
// so the matcher falls back to it.
var supported = []Language{
	{Code: "en", Native: "English", Flag: "🇬🇧"},
	{Code: "hy", Native: "Հայերեն", Flag: "🇦🇲"},
	{Code: "ru", Native: "Русский", Flag: "🇷🇺"},
}

// Catalog holds every message for every supported language.
type Catalog struct {
	messages map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// Load reads the embedded locale files.
func Load() (*Catalog, error) {
	c := &Catalog{
		messages: make(map[string]map[string]string, len(supported)),
		tags:     make([]language.Tag, 0, len(supported)),
	}

	for _, lang := range supported {
		data, err := localeFS.ReadFile(path.Join("locales", lang.Code+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", lang.Code, err)
		}
		msgs := make(map[string]string)
		if err := yaml.Unmarshal(data, &msgs); err != nil {
			return nil, fmt.Errorf("locale %s: yaml unmarshal: %w", lang.Code, err)
		}
		c.messages[lang.Code] = msgs
		c.tags = append(c.tags, language.MustParse(lang.Code))
	}

	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// MustLoad is Load for the embedded catalogs, which are known to be valid.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Languages returns the selectable languages in menu order.
func (c *Catalog) Languages() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Resolve maps a locale code onto a supported one. Regional variants match
// their base language ("ru-RU" is "ru"); anything unknown yields DefaultCode,
// including languages that are merely close to a supported one.
func (c *Catalog) Resolve(code string) string {
	code = strings.TrimSpace(code)
	if _, ok := c.messages[code]; ok {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return DefaultCode
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf < language.High || idx < 0 || idx >= len(supported) {
		return DefaultCode
	}
	return supported[idx].Code
}

// Lookup returns the message for key in locale, then in DefaultCode, then
// the key itself. Placeholders of the form {{name}} are replaced from params.
func (c *Catalog) Lookup(key, locale string, params map[string]string) string {
	msg, ok := c.messages[locale][key]
	if !ok {
		msg, ok = c.messages[DefaultCode][key]
	}
	if !ok {
		msg = key
	}
	for name, value := range params {
		msg = strings.ReplaceAll(msg, "{{"+name+"}}", value)
	}
	return msg
}

// Has reports whether key exists in locale without falling back.
func (c *Catalog) Has(key, locale string) bool {
	_, ok := c.messages[locale][key]
	return ok
}

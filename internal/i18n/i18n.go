// Package i18n resolves user-facing messages from embedded locale
// tables, with a fallback language for missing keys.
package i18n

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yml
var localeFS embed.FS

// Translator looks up dotted message keys, preferring lang and falling
// back to fallback. Unknown keys resolve to the key itself so a missing
// translation never blanks the UI.
type Translator struct {
	lang     string
	fallback string
	tables   map[string]map[string]string
}

// New loads every embedded locale. lang and fallback are locale codes
// such as "es" or "en".
func New(lang, fallback string) (*Translator, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("localeFS.ReadDir > %w", err)
	}

	tables := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		code := strings.TrimSuffix(entry.Name(), ".yml")
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("localeFS.ReadFile(%s) > %w", entry.Name(), err)
		}

		var nested map[string]any
		if err := yaml.Unmarshal(data, &nested); err != nil {
			return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", entry.Name(), err)
		}

		table := make(map[string]string)
		flatten("", nested, table)
		tables[code] = table
	}

	if _, ok := tables[lang]; !ok {
		return nil, fmt.Errorf("locale %s not found", lang)
	}
	return &Translator{lang: lang, fallback: fallback, tables: tables}, nil
}

func flatten(prefix string, nested map[string]any, into map[string]string) {
	for key, value := range nested {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case map[string]any:
			flatten(full, v, into)
		case string:
			into[full] = v
		default:
			into[full] = fmt.Sprintf("%v", v)
		}
	}
}

// T resolves a message key and interpolates {{var}} placeholders.
func (t *Translator) T(key string, vars map[string]string) string {
	text, ok := t.tables[t.lang][key]
	if !ok {
		text, ok = t.tables[t.fallback][key]
	}
	if !ok {
		text = key
	}

	for name, value := range vars {
		text = strings.ReplaceAll(text, "{{"+name+"}}", value)
	}
	return text
}

// Languages returns the loaded locale codes.
func (t *Translator) Languages() []string {
	codes := make([]string, 0, len(t.tables))
	for code := range t.tables {
		codes = append(codes, code)
	}
	return codes
}

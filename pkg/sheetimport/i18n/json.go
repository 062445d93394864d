package i18n

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonEntry is one key of the JSON translation format used by web
// front ends:
//
//	{"config": {"value": {"de": "Konfiguration", "en": "Configuration"}, "default": "config"}}
type jsonEntry struct {
	Value   map[string]string `json:"value"`
	Default string            `json:"default"`
}

// LoadJSON reads a dictionary in the JSON translation format from r.
func LoadJSON(r io.Reader, defaultLang string) (*Dictionary, error) {
	var raw map[string]jsonEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	d := New(defaultLang)
	for key, entry := range raw {
		for lang, text := range entry.Value {
			d.AddTranslation(lang, key, text)
		}
	}
	return d, nil
}

// EncodeJSON writes the dictionary in the JSON translation format. Every
// key lists all languages in use; missing translations are written empty.
// With keysOnly, all translations are written empty.
func (d *Dictionary) EncodeJSON(w io.Writer, keysOnly bool) error {
	langs := d.Langs()
	out := make(map[string]jsonEntry, len(d.entries))
	for _, key := range d.Keys() {
		entry := jsonEntry{Value: make(map[string]string, len(langs)), Default: key}
		for _, lang := range langs {
			if keysOnly {
				entry.Value[lang] = ""
				continue
			}
			entry.Value[lang], _ = d.Translation(lang, key)
		}
		out[key] = entry
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

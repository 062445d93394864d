// Package i18n holds translations of names used to locate sheets and
// columns in workbooks written in different languages.
package i18n

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dictionary maps keys to their translations per language.
//
// The file format is YAML with one mapping per key:
//
//	config:
//	  en: Configuration
//	  de: Konfiguration
type Dictionary struct {
	// DefaultLang is listed first by Translations.
	DefaultLang string
	// CreateKeyIfNotPresent lets AddTranslation introduce new keys.
	CreateKeyIfNotPresent bool
	// OverwriteExisting lets AddTranslation replace non-blank translations.
	OverwriteExisting bool

	entries map[string]map[string]string
	langs   map[string]struct{}
	logger  *slog.Logger
}

// New returns an empty dictionary that creates keys on demand and keeps
// existing translations.
func New(defaultLang string) *Dictionary {
	return &Dictionary{
		DefaultLang:           defaultLang,
		CreateKeyIfNotPresent: true,
		entries:               make(map[string]map[string]string),
		langs:                 make(map[string]struct{}),
		logger:                slog.Default(),
	}
}

// Load reads a YAML dictionary from r.
func Load(r io.Reader, defaultLang string) (*Dictionary, error) {
	var raw map[string]map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode dictionary: %w", err)
	}
	d := New(defaultLang)
	for key, translations := range raw {
		for lang, text := range translations {
			d.AddTranslation(lang, key, text)
		}
	}
	return d, nil
}

// LoadFile reads a YAML dictionary from path.
func LoadFile(path, defaultLang string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, defaultLang)
}

// SetLogger sets the logger receiving translation decisions.
func (d *Dictionary) SetLogger(l *slog.Logger) { d.logger = l }

// AddTranslation stores translation for key in lang. Unknown keys are
// skipped unless CreateKeyIfNotPresent is set; non-blank translations are
// kept unless OverwriteExisting is set. It reports whether the translation
// was stored.
func (d *Dictionary) AddTranslation(lang, key, translation string) bool {
	entry, ok := d.entries[key]
	if !ok {
		if !d.CreateKeyIfNotPresent {
			d.logger.Debug("skipping new key", "lang", lang, "key", key)
			return false
		}
		entry = make(map[string]string)
		d.entries[key] = entry
	}
	d.langs[lang] = struct{}{}
	if existing := entry[lang]; !d.OverwriteExisting && strings.TrimSpace(existing) != "" {
		d.logger.Debug("keeping existing translation", "lang", lang, "key", key, "existing", existing)
		return false
	}
	entry[lang] = translation
	return true
}

// Translation returns the translation of key in lang.
func (d *Dictionary) Translation(lang, key string) (string, bool) {
	t, ok := d.entries[key][lang]
	return t, ok
}

// Translations returns all distinct non-blank translations of key: the
// default language first, then the others ordered by language code.
func (d *Dictionary) Translations(key string) []string {
	entry := d.entries[key]
	if len(entry) == 0 {
		return nil
	}
	langs := make([]string, 0, len(entry))
	for lang := range entry {
		if lang != d.DefaultLang {
			langs = append(langs, lang)
		}
	}
	sort.Strings(langs)
	if _, ok := entry[d.DefaultLang]; ok {
		langs = append([]string{d.DefaultLang}, langs...)
	}

	seen := make(map[string]bool, len(langs))
	var out []string
	for _, lang := range langs {
		t := entry[lang]
		if strings.TrimSpace(t) == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// Keys returns the sorted keys.
func (d *Dictionary) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Langs returns the sorted language codes in use.
func (d *Dictionary) Langs() []string {
	langs := make([]string, 0, len(d.langs))
	for l := range d.langs {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// Difference is a key whose translation differs between two dictionaries.
type Difference struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
	Other string `yaml:"other"`
}

// Differences lists the keys whose translation in lang differs from other,
// ordered by key. Missing translations compare as empty.
func (d *Dictionary) Differences(other *Dictionary, lang string) []Difference {
	keys := make(map[string]struct{})
	for k := range d.entries {
		keys[k] = struct{}{}
	}
	for k := range other.entries {
		keys[k] = struct{}{}
	}
	var out []Difference
	for k := range keys {
		a, aok := d.Translation(lang, k)
		b, bok := other.Translation(lang, k)
		if (!aok && !bok) || (aok && bok && a == b) {
			continue
		}
		out = append(out, Difference{Key: k, Value: a, Other: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Encode writes the dictionary as YAML.
func (d *Dictionary) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.entries); err != nil {
		return err
	}
	return enc.Close()
}

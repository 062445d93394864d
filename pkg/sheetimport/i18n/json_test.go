package i18n

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSON(t *testing.T) {
	const src = `{
  "config": {"value": {"de": "Konfiguration", "en": "Configuration"}, "default": "config"},
  "amount": {"value": {"de": "Betrag"}, "default": "amount"}
}`
	d, err := LoadJSON(strings.NewReader(src), "de")
	require.NoError(t, err)

	assert.Equal(t, []string{"amount", "config"}, d.Keys())
	assert.Equal(t, []string{"Konfiguration", "Configuration"}, d.Translations("config"))

	_, err = LoadJSON(strings.NewReader("{"), "de")
	assert.Error(t, err)
}

func TestEncodeJSON(t *testing.T) {
	d := New("en")
	d.AddTranslation("en", "config", "Configuration")
	d.AddTranslation("de", "config", "Konfiguration")
	d.AddTranslation("en", "amount", "Amount")

	tests := []struct {
		name     string
		keysOnly bool
		want     map[string]jsonEntry
	}{
		{"translations", false, map[string]jsonEntry{
			"amount": {Value: map[string]string{"de": "", "en": "Amount"}, Default: "amount"},
			"config": {Value: map[string]string{"de": "Konfiguration", "en": "Configuration"}, Default: "config"},
		}},
		{"keys only", true, map[string]jsonEntry{
			"amount": {Value: map[string]string{"de": "", "en": ""}, Default: "amount"},
			"config": {Value: map[string]string{"de": "", "en": ""}, Default: "config"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, d.EncodeJSON(&buf, tt.keysOnly))

			var got map[string]jsonEntry
			require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	d, err := Load(strings.NewReader(sample), "de")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, d.EncodeJSON(&buf, false))
	back, err := LoadJSON(&buf, "de")
	require.NoError(t, err)
	assert.Equal(t, d.Translations("config"), back.Translations("config"))
	assert.Equal(t, d.Keys(), back.Keys())
}

package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFieldsConfigYAML(t *testing.T) {
	path := writeTempFile(t, "fields.yaml", `
fields:
  - label: intro end
    match: "*.wav"
    at: 1.5
  - label: speaker
    match: "call_*"
    value: unknown
    at: 0.25
  - label: pitch
    match: "*.wav"
`)

	cfg, err := LoadFieldsConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Fields, 3)
	assert.Equal(t, "intro end", cfg.Fields[0].Label)
	require.NotNil(t, cfg.Fields[0].At)
	assert.Equal(t, 1.5, *cfg.Fields[0].At)
	assert.Nil(t, cfg.Fields[2].At)
}

func TestLoadFieldsConfigJSON(t *testing.T) {
	path := writeTempFile(t, "fields.json",
		`{"fields": [{"label": "onset", "at": 2.0}]}`)

	cfg, err := LoadFieldsConfig(path)
	require.NoError(t, err)
	require.Len(t, cfg.Fields, 1)
	assert.Equal(t, "onset", cfg.Fields[0].Label)
}

func TestLoadFieldsConfigMissingFile(t *testing.T) {
	_, err := LoadFieldsConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFieldsConfigInvalid(t *testing.T) {
	path := writeTempFile(t, "broken.yaml", "fields: [unclosed")
	_, err := LoadFieldsConfig(path)
	assert.Error(t, err)
}

func TestDeriveFields(t *testing.T) {
	at := func(v float64) *float64 { return &v }
	cfg := &FieldsConfig{Fields: []FieldRule{
		{Label: "intro end", Match: "*.wav", At: at(1.5)},
		{Label: "mp3 only", Match: "*.mp3", At: at(0.5)},
		{Label: "everything", Value: "x", At: at(3)},
		{Label: "pitch", Match: "*.wav"}, // no position: not computable
	}}

	marks, underivable := cfg.Derive("/tmp/session/recording.wav")

	require.Len(t, marks, 2)
	// Rule order is preserved in the output, not sorted.
	assert.Equal(t, "intro end", marks[0].Label)
	assert.Equal(t, 1.5, marks[0].Seconds)
	assert.Equal(t, "everything", marks[1].Label)
	assert.Equal(t, "x", marks[1].Value)

	assert.Equal(t, []string{"pitch"}, underivable)
}

func TestDeriveFieldsNoMatches(t *testing.T) {
	at := 1.0
	cfg := &FieldsConfig{Fields: []FieldRule{
		{Label: "wav only", Match: "*.wav", At: &at},
	}}

	marks, underivable := cfg.Derive("song.ogg")
	assert.Empty(t, marks)
	assert.Empty(t, underivable)
}

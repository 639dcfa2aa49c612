package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kylejlin/snafed/pkg/spectrogram"
)

// FieldRule derives one annotation field for files whose base name
// matches a glob pattern. A rule without a position is a field that
// could not be computed and is reported rather than drawn.
type FieldRule struct {
	Label string   `yaml:"label" json:"label"`
	Match string   `yaml:"match,omitempty" json:"match,omitempty"`
	Value string   `yaml:"value,omitempty" json:"value,omitempty"`
	At    *float64 `yaml:"at,omitempty" json:"at,omitempty"` // seconds
}

// FieldsConfig is the derived-field configuration supplied alongside
// the file list. The core passes its output straight through to the
// markings renderer.
type FieldsConfig struct {
	Fields []FieldRule `yaml:"fields" json:"fields"`
}

// LoadFieldsConfig loads a fields configuration from a YAML or JSON file.
func LoadFieldsConfig(filePath string) (*FieldsConfig, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("fields configuration file does not exist: %s", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fields config file: %w", err)
	}

	ext := filepath.Ext(filePath)
	switch ext {
	case ".json":
		return parseFieldsJSON(data)
	case ".yaml", ".yml":
		return parseFieldsYAML(data)
	default:
		// Try YAML first, then JSON
		if cfg, err := parseFieldsYAML(data); err == nil {
			return cfg, nil
		}
		return parseFieldsJSON(data)
	}
}

func parseFieldsYAML(data []byte) (*FieldsConfig, error) {
	var config FieldsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML fields config: %w", err)
	}
	return &config, nil
}

func parseFieldsJSON(data []byte) (*FieldsConfig, error) {
	var config FieldsConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON fields config: %w", err)
	}
	return &config, nil
}

// Derive implements view.FieldProvider: every rule matching the file's
// base name yields either a mark or, when its position is missing, an
// entry in the could-not-compute list. Rule order is preserved.
func (c *FieldsConfig) Derive(name string) ([]spectrogram.Mark, []string) {
	base := filepath.Base(name)

	var marks []spectrogram.Mark
	var underivable []string
	for _, rule := range c.Fields {
		if rule.Match != "" {
			ok, err := filepath.Match(rule.Match, base)
			if err != nil || !ok {
				continue
			}
		}

		if rule.At == nil {
			underivable = append(underivable, rule.Label)
			continue
		}

		marks = append(marks, spectrogram.Mark{
			Label:   rule.Label,
			Value:   rule.Value,
			Seconds: *rule.At,
		})
	}

	return marks, underivable
}

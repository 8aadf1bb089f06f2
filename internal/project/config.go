package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
)

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadPiperackConfig reads a rack description from YAML (.yaml, .yml) or
// JSON (anything else) and validates it. The returned config is
// normalised: offsets and elevations sorted and de-duplicated.
func LoadPiperackConfig(path string) (model.PiperackConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PiperackConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg model.PiperackConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return model.PiperackConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	norm, err := ValidatePiperackConfig(cfg)
	if err != nil {
		return model.PiperackConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return norm, nil
}

// ValidatePiperackConfig checks cfg and returns its normalised form.
func ValidatePiperackConfig(cfg model.PiperackConfig) (model.PiperackConfig, error) {
	norm, err := engine.Normalize(cfg)
	if err != nil {
		return model.PiperackConfig{}, err
	}
	for i, d := range norm.Ducts {
		if d.Width <= 0 {
			return model.PiperackConfig{}, fmt.Errorf("%w: duct %d has no width", engine.ErrInvalidConfig, i+1)
		}
	}
	for i, w := range norm.Walkways {
		if w.Width <= 0 {
			return model.PiperackConfig{}, fmt.Errorf("%w: walkway %d has no width", engine.ErrInvalidConfig, i+1)
		}
	}
	return norm, nil
}

// SavePiperackConfig writes cfg as YAML or JSON depending on the extension.
func SavePiperackConfig(path string, cfg model.PiperackConfig) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

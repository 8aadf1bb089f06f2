package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/RackGen/internal/model"
)

// DefaultConfigDir is ~/.rackgen, or .rackgen in the working directory when
// the home directory is unknown. Settings, templates and the section
// inventory live here.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".rackgen")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes the settings file, creating its directory.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads the settings file over the defaults, so a missing
// file or missing fields fall back to DefaultAppConfig. Out-of-range values
// are reset to their defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if _, err := readJSON(path, &config); err != nil {
		return model.AppConfig{}, err
	}
	normalizeAppConfig(&config)
	return config, nil
}

func normalizeAppConfig(c *model.AppConfig) {
	d := model.DefaultAppConfig()
	if c.RecentProjects == nil {
		c.RecentProjects = []string{}
	}
	if c.DefaultProfiles == nil {
		c.DefaultProfiles = []string{}
	}
	if c.DefaultAllowableRatio <= 0 {
		c.DefaultAllowableRatio = d.DefaultAllowableRatio
	}
	if c.RatioBandStep <= 0 {
		c.RatioBandStep = d.RatioBandStep
	}
	if c.AnalysisPollInterval <= 0 {
		c.AnalysisPollInterval = d.AnalysisPollInterval
	}
	if c.BridgeMaxRetries < 1 {
		c.BridgeMaxRetries = d.BridgeMaxRetries
	}
	if c.BridgeNetwork != "unix" && c.BridgeNetwork != "tcp" {
		c.BridgeNetwork = d.BridgeNetwork
	}
}

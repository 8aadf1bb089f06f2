package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackGen/internal/importer"
	"github.com/piwi3910/RackGen/internal/model"
	"github.com/piwi3910/RackGen/internal/project"
)

// configSource says where a rack configuration comes from.
type configSource struct {
	Path     string
	Template string
	Tiers    string
}

func (c *configSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.Path, "config", "c", "", "Rack configuration file (YAML or JSON)")
	cmd.Flags().StringVarP(&c.Template, "template", "t", "", "Start from a saved template (name or ID)")
	cmd.Flags().StringVar(&c.Tiers, "tiers", "", "Replace the tiers with a tier table (CSV or XLSX)")
}

// load resolves the configuration and validates it.
func (c *configSource) load() (model.PiperackConfig, error) {
	var cfg model.PiperackConfig
	switch {
	case c.Template != "":
		store, err := project.LoadDefaultTemplates()
		if err != nil {
			return cfg, fmt.Errorf("failed to load templates: %w", err)
		}
		t := store.FindByID(c.Template)
		if t == nil {
			t = store.FindByName(c.Template)
		}
		if t == nil {
			return cfg, fmt.Errorf("template %q not found", c.Template)
		}
		cfg = t.ToConfig(t.Name)
	case c.Path != "":
		var err error
		if cfg, err = project.LoadPiperackConfig(c.Path); err != nil {
			return cfg, err
		}
	default:
		return cfg, errors.New("either --config or --template is required")
	}

	if c.Tiers != "" {
		tiers, err := loadTierTable(c.Tiers)
		if err != nil {
			return cfg, err
		}
		cfg.Tiers = tiers
	}
	return project.ValidatePiperackConfig(cfg)
}

func loadTierTable(path string) ([]model.TierConfig, error) {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		res = importer.ImportTiersXLSX(path)
	default:
		res = importer.ImportTiersCSV(path)
	}
	for _, w := range res.Warnings {
		slog.Warn("rackgen: tier table", "file", path, "warning", w)
	}
	if len(res.Errors) > 0 {
		return nil, fmt.Errorf("failed to import tier table %s: %s", path, strings.Join(res.Errors, "; "))
	}
	if len(res.Tiers) == 0 {
		return nil, fmt.Errorf("tier table %s has no tiers", path)
	}
	return res.Tiers, nil
}

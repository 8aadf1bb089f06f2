package project

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/piwi3910/RackGen/internal/model"
)

// DefaultTemplatePath is templates.json in the config directory.
func DefaultTemplatePath() (string, error) {
	return filepath.Join(DefaultConfigDir(), "templates.json"), nil
}

func SaveTemplates(path string, store model.TemplateStore) error {
	return writeJSON(path, store)
}

// LoadTemplates reads a template store. A missing file is an empty store.
func LoadTemplates(path string) (model.TemplateStore, error) {
	store := model.NewTemplateStore()
	if _, err := readJSON(path, &store); err != nil {
		return model.TemplateStore{}, err
	}
	if store.Templates == nil {
		store.Templates = []model.PiperackTemplate{}
	}
	return store, nil
}

// SaveTemplate validates cfg and stores it under name. A template with the
// same name is replaced in place and keeps its ID and creation time.
func SaveTemplate(path, name, description string, cfg model.PiperackConfig) (model.PiperackTemplate, bool, error) {
	if name == "" {
		return model.PiperackTemplate{}, false, fmt.Errorf("template name is required")
	}
	if _, err := ValidatePiperackConfig(cfg); err != nil {
		return model.PiperackTemplate{}, false, fmt.Errorf("template %q: %w", name, err)
	}
	store, err := LoadTemplates(path)
	if err != nil {
		return model.PiperackTemplate{}, false, err
	}

	t := model.NewPiperackTemplate(name, description, cfg)
	replaced := false
	if old := store.FindByName(name); old != nil {
		t.ID, t.CreatedAt = old.ID, old.CreatedAt
		t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		*old = t
		replaced = true
	} else {
		store.Add(t)
	}
	return t, replaced, SaveTemplates(path, store)
}

func LoadDefaultTemplates() (model.TemplateStore, error) {
	path, err := DefaultTemplatePath()
	if err != nil {
		return model.NewTemplateStore(), err
	}
	return LoadTemplates(path)
}

func SaveDefaultTemplates(store model.TemplateStore) error {
	path, err := DefaultTemplatePath()
	if err != nil {
		return err
	}
	return SaveTemplates(path, store)
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// PiperackTemplate is a named, reusable rack configuration.
type PiperackTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	Config      PiperackConfig `json:"config"`
}

// NewPiperackTemplate captures cfg under a new ID.
func NewPiperackTemplate(name, description string, cfg PiperackConfig) PiperackTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return PiperackTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Config:      copyConfig(cfg),
	}
}

// ToConfig returns an independent copy of the template configuration
// renamed to name.
func (t PiperackTemplate) ToConfig(name string) PiperackConfig {
	cfg := copyConfig(t.Config)
	cfg.Name = name
	return cfg
}

// TemplateStore holds a collection of rack templates.
type TemplateStore struct {
	Templates []PiperackTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []PiperackTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t PiperackTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *PiperackTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *PiperackTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// copyConfig deep-copies every slice of a configuration.
func copyConfig(c PiperackConfig) PiperackConfig {
	c.PortalOffsets = append([]float64{}, c.PortalOffsets...)
	c.ColumnOffsets = append([]float64{}, c.ColumnOffsets...)
	c.Tiers = append([]TierConfig{}, c.Tiers...)
	if c.LongBeamElevations != nil {
		c.LongBeamElevations = append([]float64{}, c.LongBeamElevations...)
	}
	c.BracePlacement = append([]bool{}, c.BracePlacement...)
	if c.Walkways != nil {
		c.Walkways = append([]Walkway{}, c.Walkways...)
	}
	if c.Ducts != nil {
		ducts := make([]InstrumentationDuct, len(c.Ducts))
		for i, d := range c.Ducts {
			d.Cables = append([]Cable{}, d.Cables...)
			ducts[i] = d
		}
		c.Ducts = ducts
	}
	return c
}

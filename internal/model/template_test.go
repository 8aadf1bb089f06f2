package model

import (
	"testing"
)

func TestNewPiperackTemplate(t *testing.T) {
	cfg := DefaultPiperackConfig()
	tmpl := NewPiperackTemplate("Standard", "Six tier rack", cfg)

	if tmpl.Name != "Standard" {
		t.Errorf("expected name 'Standard', got %q", tmpl.Name)
	}
	if tmpl.ID == "" {
		t.Error("expected non-empty ID")
	}
	if tmpl.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if len(tmpl.Config.Tiers) != 6 {
		t.Errorf("expected 6 tiers, got %d", len(tmpl.Config.Tiers))
	}
}

func TestPiperackTemplate_ToConfigIsIndependent(t *testing.T) {
	cfg := DefaultPiperackConfig()
	tmpl := NewPiperackTemplate("Standard", "", cfg)

	out := tmpl.ToConfig("Unit 200")
	out.PortalOffsets[1] = 99
	out.Tiers[0].Elevation = 1
	out.Ducts[0] = out.Ducts[0].AddCable(Cable{Name: "C1", Diameter: 20})

	if out.Name != "Unit 200" {
		t.Errorf("expected renamed config, got %q", out.Name)
	}
	if tmpl.Config.PortalOffsets[1] != 8 {
		t.Errorf("template portal offsets were modified: %v", tmpl.Config.PortalOffsets)
	}
	if tmpl.Config.Tiers[0].Elevation != 3 {
		t.Errorf("template tiers were modified")
	}
	if len(tmpl.Config.Ducts[0].Cables) != 0 {
		t.Errorf("template ducts were modified")
	}
	if cfg.PortalOffsets[1] != 8 {
		t.Errorf("source config was modified")
	}
}

func TestTemplateStore_AddRemoveFind(t *testing.T) {
	store := NewTemplateStore()
	a := NewPiperackTemplate("A", "", DefaultPiperackConfig())
	b := NewPiperackTemplate("B", "", DefaultPiperackConfig())
	store.Add(a)
	store.Add(b)

	if got := store.FindByName("B"); got == nil || got.ID != b.ID {
		t.Fatalf("expected to find template B")
	}
	if got := store.FindByID(a.ID); got == nil || got.Name != "A" {
		t.Fatalf("expected to find template A by ID")
	}
	if !store.Remove(a.ID) {
		t.Fatal("expected Remove to succeed")
	}
	if store.Remove(a.ID) {
		t.Error("expected second Remove to fail")
	}
	names := store.Names()
	if len(names) != 1 || names[0] != "B" {
		t.Errorf("unexpected names %v", names)
	}
}

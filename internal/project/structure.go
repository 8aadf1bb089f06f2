package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
)

// StructureFormatVersion is written into every saved structure. Files whose
// major version differs are rejected.
const StructureFormatVersion = "1.0.0"

// ErrUnsupportedVersion is returned for structure and backup files written by
// an incompatible format version.
var ErrUnsupportedVersion = errors.New("unsupported file format version")

// StructureFile is the on-disk form of a classified rack and its member
// groups.
type StructureFile struct {
	Version   string                   `json:"version"`
	ID        string                   `json:"id"`
	SavedAt   string                   `json:"saved_at"`
	Config    model.PiperackConfig     `json:"config"`
	Structure *model.PiperackStructure `json:"structure"`
	Groups    *engine.Groups           `json:"groups"`
}

// NewStructureFile wraps a structure for saving. The structure ID is reused
// when set, otherwise a new one is assigned.
func NewStructureFile(cfg model.PiperackConfig, s *model.PiperackStructure, groups *engine.Groups) StructureFile {
	if s == nil {
		s = model.NewPiperackStructure()
	}
	if s.ID == "" {
		s.ID = uuid.New().String()[:8]
	}
	if groups == nil {
		groups = engine.NewGroups()
	}
	return StructureFile{
		Version:   StructureFormatVersion,
		ID:        s.ID,
		Config:    cfg,
		Structure: s,
		Groups:    groups,
	}
}

// SaveStructure writes f to path as indented JSON, stamping SavedAt.
func SaveStructure(path string, f StructureFile) error {
	if f.Version == "" {
		f.Version = StructureFormatVersion
	}
	f.SavedAt = time.Now().UTC().Format(time.RFC3339)

	if err := writeJSON(path, f); err != nil {
		return fmt.Errorf("failed to write structure file: %w", err)
	}
	return nil
}

// LoadStructure reads a structure file. Groups come back unbound; callers
// that evaluate them must bind a backend first.
func LoadStructure(path string) (StructureFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return StructureFile{}, fmt.Errorf("failed to read structure file: %w", err)
	}
	var f StructureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return StructureFile{}, fmt.Errorf("failed to parse structure file: %w", err)
	}
	if f.Version == "" {
		return StructureFile{}, fmt.Errorf("invalid structure file: missing version field")
	}
	if major(f.Version) != major(StructureFormatVersion) {
		return StructureFile{}, fmt.Errorf("%w: %s", ErrUnsupportedVersion, f.Version)
	}
	if f.Structure == nil {
		f.Structure = model.NewPiperackStructure()
	}
	if f.Groups == nil {
		f.Groups = engine.NewGroups()
	}
	return f, nil
}

func major(v string) string {
	if i := strings.IndexByte(v, '.'); i >= 0 {
		return v[:i]
	}
	return v
}

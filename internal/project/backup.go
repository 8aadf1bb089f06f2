package project

import (
	"fmt"
	"time"

	"github.com/piwi3910/RackGen/internal/model"
)

// BackupVersion is written into every backup. Backups with another major
// version are rejected on import.
const BackupVersion = "1.0.0"

// BackupData bundles every user-editable file in the config directory.
type BackupData struct {
	Version     string                 `json:"version"`
	CreatedAt   string                 `json:"created_at"`
	Config      model.AppConfig        `json:"config"`
	Templates   model.TemplateStore    `json:"templates"`
	ProfileSets []model.ProfileSet     `json:"profile_sets"`
	Sections    model.SectionInventory `json:"sections"`
}

// ExportAllData stamps backup with the format version and the current time
// and writes it to path.
func ExportAllData(path string, backup BackupData) error {
	backup.Version = BackupVersion
	backup.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := writeJSON(path, backup); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup. Nothing is applied; the caller decides which
// parts to restore.
func ImportAllData(path string) (BackupData, error) {
	backup := BackupData{Config: model.DefaultAppConfig()}
	found, err := readJSON(path, &backup)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	switch {
	case !found:
		return BackupData{}, fmt.Errorf("failed to read backup file: %s not found", path)
	case backup.Version == "":
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	case major(backup.Version) != major(BackupVersion):
		return BackupData{}, fmt.Errorf("%w: backup %s", ErrUnsupportedVersion, backup.Version)
	}

	normalizeAppConfig(&backup.Config)
	if backup.Templates.Templates == nil {
		backup.Templates = model.NewTemplateStore()
	}
	if backup.ProfileSets == nil {
		backup.ProfileSets = []model.ProfileSet{}
	}
	backup.ProfileSets = markCustom(backup.ProfileSets)
	return backup, nil
}

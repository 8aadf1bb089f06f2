package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackGen/internal/model"
	"github.com/piwi3910/RackGen/internal/project"
)

var (
	secFamily   string
	tplSource   configSource
	tplName     string
	tplDesc     string
	profileName string
)

// ─── Sections ───────────────────────────────────────────

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Manage the steel section inventory",
}

var sectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, s := range inv.Sections {
			if secFamily != "" && !strings.EqualFold(s.Family(), secFamily) {
				continue
			}
			fmt.Fprintf(w, "  %d\t%s\t%.2f kg/m\t%s\t%s\n", s.SlNo, s.Name, s.WeightPerMeter, s.Class, s.IntendedUse)
		}
		return w.Flush()
	},
}

var sectionsImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Merge sections from a file into the inventory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, path, err := project.LoadOrCreateInventory()
		if err != nil {
			return err
		}
		merged, added, err := project.ImportInventory(args[0], inv)
		if err != nil {
			return fmt.Errorf("failed to import sections: %w", err)
		}
		if err := project.SaveInventory(path, merged); err != nil {
			return err
		}
		fmt.Printf("Added %d sections (%d total)\n", added, len(merged.Sections))
		return nil
	},
}

var sectionsExportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Write the inventory to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			return err
		}
		return project.ExportInventory(args[0], inv)
	},
}

// ─── Profile sets ───────────────────────────────────────

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage candidate profile sets",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List built-in and saved profile sets",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := project.DefaultProfilesPath()
		if err != nil {
			return err
		}
		sets, err := project.AllProfileSets(path)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, s := range sets {
			kind := "saved"
			if s.IsBuiltIn {
				kind = "built-in"
			}
			fmt.Fprintf(w, "  %s\t%s\t%d profiles\t%s\n", s.Name, kind, len(s.Profiles), s.Description)
		}
		return w.Flush()
	},
}

var profilesImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Add a shared profile set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := project.ImportProfileSet(args[0])
		if err != nil {
			return fmt.Errorf("failed to import profile set: %w", err)
		}
		path, err := project.DefaultProfilesPath()
		if err != nil {
			return err
		}
		if _, err := project.AddProfileSet(path, set); err != nil {
			return err
		}
		fmt.Printf("Profile set %q saved (%d profiles)\n", set.Name, len(set.Profiles))
		return nil
	},
}

var profilesExportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Write one profile set to a file for sharing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := project.DefaultProfilesPath()
		if err != nil {
			return err
		}
		sets, err := project.AllProfileSets(path)
		if err != nil {
			return err
		}
		set, ok := model.FindProfileSet(sets, profileName)
		if !ok {
			return fmt.Errorf("profile set %q not found", profileName)
		}
		return project.ExportProfileSet(args[0], set)
	},
}

// ─── Templates ──────────────────────────────────────────

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage rack templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.LoadDefaultTemplates()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, t := range store.Templates {
			fmt.Fprintf(w, "  %s\t%s\t%d portals\t%d tiers\t%s\n", t.ID, t.Name, len(t.Config.PortalOffsets), len(t.Config.Tiers), t.Description)
		}
		return w.Flush()
	},
}

var templatesSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a configuration as a template",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := tplSource.load()
		if err != nil {
			return err
		}
		name := tplName
		if name == "" {
			name = cfg.Name
		}
		path, err := project.DefaultTemplatePath()
		if err != nil {
			return err
		}
		t, replaced, err := project.SaveTemplate(path, name, tplDesc, cfg)
		if err != nil {
			return err
		}
		if replaced {
			fmt.Printf("Template %s updated as %q\n", t.ID, t.Name)
			return nil
		}
		fmt.Printf("Template %s saved as %q\n", t.ID, t.Name)
		return nil
	},
}

var templatesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.LoadDefaultTemplates()
		if err != nil {
			return err
		}
		if !store.Remove(args[0]) {
			return fmt.Errorf("template %q not found", args[0])
		}
		return project.SaveDefaultTemplates(store)
	},
}

// ─── Backup ─────────────────────────────────────────────

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up or restore settings, templates, profile sets and sections",
}

var backupExportCmd = &cobra.Command{
	Use:   "export <file.json>",
	Short: "Write all application data to one file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := project.LoadDefaultTemplates()
		if err != nil {
			return err
		}
		profilesPath, err := project.DefaultProfilesPath()
		if err != nil {
			return err
		}
		sets, err := project.LoadProfileSets(profilesPath)
		if err != nil {
			return err
		}
		inv, _, err := project.LoadOrCreateInventory()
		if err != nil {
			return err
		}
		return project.ExportAllData(args[0], project.BackupData{
			Config:      appConfig,
			Templates:   store,
			ProfileSets: sets,
			Sections:    inv,
		})
	},
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Restore all application data from a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := project.ImportAllData(args[0])
		if err != nil {
			return err
		}
		if err := project.SaveAppConfig(appConfigPath, data.Config); err != nil {
			return err
		}
		if err := project.SaveDefaultTemplates(data.Templates); err != nil {
			return err
		}
		profilesPath, err := project.DefaultProfilesPath()
		if err != nil {
			return err
		}
		if err := project.SaveProfileSets(profilesPath, data.ProfileSets); err != nil {
			return err
		}
		invPath, err := project.DefaultInventoryPath()
		if err != nil {
			return err
		}
		if err := project.SaveInventory(invPath, data.Sections); err != nil {
			return err
		}
		fmt.Printf("Restored backup from %s (version %s)\n", data.CreatedAt, data.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sectionsCmd, profilesCmd, templatesCmd, backupCmd)

	sectionsCmd.AddCommand(sectionsListCmd, sectionsImportCmd, sectionsExportCmd)
	sectionsListCmd.Flags().StringVarP(&secFamily, "family", "f", "", "Only list one family, e.g. ISMB")

	profilesCmd.AddCommand(profilesListCmd, profilesImportCmd, profilesExportCmd)
	profilesExportCmd.Flags().StringVarP(&profileName, "name", "n", "", "Profile set to export")
	profilesExportCmd.MarkFlagRequired("name")

	templatesCmd.AddCommand(templatesListCmd, templatesSaveCmd, templatesDeleteCmd)
	tplSource.addFlags(templatesSaveCmd)
	templatesSaveCmd.Flags().StringVar(&tplName, "name", "", "Template name (default: configuration name)")
	templatesSaveCmd.Flags().StringVar(&tplDesc, "description", "", "Template description")

	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
}

package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackGen/internal/model"
	"github.com/piwi3910/RackGen/internal/project"
)

var (
	appConfigPath string
	verbose       bool

	// appConfig is loaded once before any command runs.
	appConfig model.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "rackgen",
	Short: "Generate, classify and optimize piperack structural models",
	Long: `RackGen builds piperack frames from a parametric configuration
(portal spacing, column lines, tier elevations, bracing), sorts every
member into structural categories, attaches the tier loads and searches
the lightest adequate profile for each member group.

Examples:
  # Generate a rack and save the classified structure
  rackgen generate -c rack.yaml -o rack.json

  # Classify members drawn in CAD against a configuration
  rackgen generate -c rack.yaml --dxf frame.dxf -o rack.json

  # Optimize profiles and write a PDF report
  rackgen optimize -c rack.yaml --profile-set ISMB --pdf report.pdf`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := project.LoadAppConfig(appConfigPath)
		if err != nil {
			return err
		}
		appConfig = cfg
		setupLogging(cfg.LogLevel, verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&appConfigPath, "app-config", project.DefaultConfigPath(), "Application settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// setupLogging installs a text handler on stderr at the configured level.
func setupLogging(level string, debug bool) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	if debug {
		l = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
	"github.com/piwi3910/RackGen/internal/project"
)

var (
	optSource     configSource
	optDXF        string
	optProfileSet string
	optProfiles   []string
	optAllowable  float64
	optRatioScale float64
	optCompare    bool
	optOutput     string
	optWaste      float64
	optPrice      float64
	optExports    exportTargets
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search the lightest adequate profile for each member group",
	Long: `Generate and classify a rack, group its steel members by category
and try each group's candidate profiles lightest first until every member
is within the allowable ratio.

Design ratios come from the built-in span-over-weight estimate, scaled
with --ratio-scale.

Examples:
  rackgen optimize -c rack.yaml --profile-set ISMB
  rackgen optimize -c rack.yaml --profiles "ISMB 200,ISMB 250" --allowable 0.9
  rackgen optimize -c rack.yaml --compare --pdf report.pdf --labels labels.pdf`,
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optSource.addFlags(optimizeCmd)
	optimizeCmd.Flags().StringVar(&optDXF, "dxf", "", "Classify the lines of a DXF drawing instead of generated members")
	optimizeCmd.Flags().StringVarP(&optProfileSet, "profile-set", "p", "", "Candidate profile set (built-in family or saved set)")
	optimizeCmd.Flags().StringSliceVar(&optProfiles, "profiles", nil, "Candidate profiles, lightest first")
	optimizeCmd.Flags().Float64VarP(&optAllowable, "allowable", "a", 0, "Allowable ratio (default from profile set or settings)")
	optimizeCmd.Flags().Float64Var(&optRatioScale, "ratio-scale", 3, "Scale of the span-over-weight design ratio")
	optimizeCmd.Flags().BoolVar(&optCompare, "compare", false, "Also compare the default scenarios")
	optimizeCmd.Flags().StringVarP(&optOutput, "output", "o", "", "Save the structure and groups (JSON)")
	optimizeCmd.Flags().Float64Var(&optWaste, "waste", 5, "Waste allowance for the steel takeoff (%)")
	optimizeCmd.Flags().Float64Var(&optPrice, "price", 0, "Steel price per tonne for the takeoff")
	optExports.addFlags(optimizeCmd)
}

// resolveCandidates picks the candidate list and allowable ratio from the
// flags, a profile set, or the application defaults in that order.
func resolveCandidates(setName string, profiles []string, allowable float64) ([]string, float64, error) {
	fallback := appConfig.DefaultAllowableRatio
	if len(profiles) > 0 {
		if allowable <= 0 {
			allowable = fallback
		}
		return profiles, allowable, nil
	}
	if setName == "" {
		if allowable <= 0 {
			allowable = fallback
		}
		return appConfig.DefaultProfiles, allowable, nil
	}

	path, err := project.DefaultProfilesPath()
	if err != nil {
		return nil, 0, err
	}
	sets, err := project.AllProfileSets(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load profile sets: %w", err)
	}
	set, ok := model.FindProfileSet(sets, setName)
	if !ok {
		return nil, 0, fmt.Errorf("profile set %q not found", setName)
	}
	if allowable <= 0 {
		allowable = set.Allowable(fallback)
	}
	return set.Profiles, allowable, nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := optSource.load()
	if err != nil {
		return err
	}
	profiles, allowable, err := resolveCandidates(optProfileSet, optProfiles, optAllowable)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return engine.ErrNoCandidates
	}

	inv, _, err := project.LoadOrCreateInventory()
	if err != nil {
		slog.Warn("rackgen: section inventory unavailable", "error", err)
	} else if missing := inv.Missing(profiles); len(missing) > 0 {
		slog.Warn("rackgen: profiles not in the section inventory", "profiles", strings.Join(missing, ", "))
	}

	r, err := buildRack(ctx, cfg, rackOptions{DXFPath: optDXF, RatioScale: optRatioScale})
	if err != nil {
		return err
	}
	printSummary(r.Config, r.Structure)

	opts := optimizeOptions{
		Profiles:     profiles,
		Allowable:    allowable,
		PollInterval: appConfig.AnalysisPollInterval,
		MaxWait:      appConfig.AnalysisMaxWait,
	}
	groups, results, err := r.optimize(ctx, opts)
	if err != nil {
		return err
	}
	printResults(groups, results)

	var comparison []engine.ComparisonResult
	if optCompare {
		comparison = r.compare(ctx, opts, engine.BuildDefaultScenarios(profiles, allowable))
		printComparison(comparison)
	}

	takeoff := model.CalculateSteelTakeoff(r.Structure.Steel(), optWaste, optPrice)
	fmt.Printf("Steel: %.1f kg, order %.1f t", takeoff.TotalWeight, takeoff.TonnesToOrder)
	if optPrice > 0 {
		fmt.Printf(", estimated cost %.2f", takeoff.EstimatedCost)
	}
	fmt.Println()

	if optOutput != "" {
		f := project.NewStructureFile(r.Config, r.Structure, groups)
		if err := project.SaveStructure(optOutput, f); err != nil {
			return err
		}
		fmt.Printf("Structure %s saved to %s\n", f.ID, optOutput)
	}

	return optExports.write(exportInput{
		Config:     r.Config,
		Structure:  r.Structure,
		Groups:     groups.All(),
		Search:     results,
		Comparison: comparison,
		Takeoff:    &takeoff,
	})
}

func printResults(groups *engine.Groups, results []engine.SearchResult) {
	fmt.Println("MEMBER GROUPS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  group\tmembers\tprofile\taverage\tmax\tallowable\tstatus\n")
	for _, res := range results {
		g, ok := groups.ByID(res.GroupID)
		if !ok {
			continue
		}
		status := "ok"
		switch {
		case res.Index < 0:
			status = "not run"
		case !res.Adequate:
			status = fmt.Sprintf("%d failed", len(res.Result.Failed))
		}
		fmt.Fprintf(w, "  %s\t%d\t%s\t%.3f\t%.3f\t%.2f\t%s\n",
			g.Label(), len(g.Members), res.Profile, res.Result.Average, res.Result.MaxRatio(), g.AllowableRatio, status)
	}
	w.Flush()

	if failures := engine.SortedFailures(results); len(failures) > 0 {
		fmt.Printf("\nWARNING: %d members over the allowable ratio\n", len(failures))
		for _, f := range failures {
			fmt.Printf("  member %d: %.3f\n", f.ID, f.Ratio)
		}
	}
	fmt.Println()
}

func printComparison(results []engine.ComparisonResult) {
	fmt.Println("SCENARIOS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, c := range results {
		if c.Err != nil {
			fmt.Fprintf(w, "  %s\t%.2f\terror: %v\n", c.Scenario.Name, c.Scenario.AllowableRatio, c.Err)
			continue
		}
		fmt.Fprintf(w, "  %s\t%.2f\t%s\t%.3f avg\t%d failed\t%.1f kg\n",
			c.Scenario.Name, c.Scenario.AllowableRatio, c.Search.Profile, c.Average, c.FailedCount, c.SteelWeight)
	}
	w.Flush()
	fmt.Println()
}

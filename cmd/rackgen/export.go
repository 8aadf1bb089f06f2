package main

import (
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
	"github.com/piwi3910/RackGen/internal/project"
)

var (
	expWaste   float64
	expPrice   float64
	expTargets exportTargets
)

var exportCmd = &cobra.Command{
	Use:   "export <structure.json>",
	Short: "Export a saved structure",
	Long: `Write reports, schedules, wireframes and labels for a structure saved
by generate or optimize.

Examples:
  rackgen export rack.json --pdf report.pdf --xlsx schedule.xlsx
  rackgen export rack.json --dxf-out rack.dxf --labels labels.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Float64Var(&expWaste, "waste", 5, "Waste allowance for the steel takeoff (%)")
	exportCmd.Flags().Float64Var(&expPrice, "price", 0, "Steel price per tonne for the takeoff")
	expTargets.addFlags(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if expTargets == (exportTargets{}) {
		return errors.New("nothing to export: set at least one of --pdf, --xlsx, --dxf-out, --labels")
	}

	f, err := project.LoadStructure(args[0])
	if err != nil {
		return err
	}

	takeoff := model.CalculateSteelTakeoff(f.Structure.Steel(), expWaste, expPrice)
	return expTargets.write(exportInput{
		Config:    f.Config,
		Structure: f.Structure,
		Groups:    f.Groups.All(),
		Search:    searchFromGroups(f.Groups),
		Takeoff:   &takeoff,
	})
}

// searchFromGroups rebuilds search outcomes from the scores saved with
// each group: the lowest adequate candidate, else the lowest scored one.
func searchFromGroups(groups *engine.Groups) []engine.SearchResult {
	var out []engine.SearchResult
	for _, g := range groups.All() {
		if len(g.Results) == 0 {
			continue
		}
		indices := make([]int, 0, len(g.Results))
		for i := range g.Results {
			indices = append(indices, i)
		}
		sort.Ints(indices)

		pick := indices[0]
		for _, i := range indices {
			if g.Results[i].Adequate() {
				pick = i
				break
			}
		}
		res := g.Results[pick]
		profile := res.Profile
		if profile == "" && pick < len(g.Profiles) {
			profile = g.Profiles[pick]
		}
		out = append(out, engine.SearchResult{
			GroupID:   g.ID,
			Index:     pick,
			Profile:   profile,
			Result:    res,
			Adequate:  res.Adequate(),
			Evaluated: len(g.Results),
		})
	}
	return out
}

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/model"
	"github.com/piwi3910/RackGen/internal/project"
)

var (
	genSource  configSource
	genDXF     string
	genOutput  string
	genNoLoads bool
	genExports exportTargets
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and classify a rack",
	Long: `Generate the members of a rack from its configuration, or read them
from a DXF wireframe, classify every member and attach the tier loads.

Examples:
  rackgen generate -c rack.yaml -o rack.json
  rackgen generate -c rack.yaml --tiers tiers.csv --dxf-out rack.dxf
  rackgen generate -c rack.yaml --dxf frame.dxf --xlsx schedule.xlsx`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	genSource.addFlags(generateCmd)
	generateCmd.Flags().StringVar(&genDXF, "dxf", "", "Classify the lines of a DXF drawing instead of generated members")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Save the classified structure (JSON)")
	generateCmd.Flags().BoolVar(&genNoLoads, "no-loads", false, "Do not attach tier loads")
	genExports.addFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := genSource.load()
	if err != nil {
		return err
	}

	r, err := buildRack(cmd.Context(), cfg, rackOptions{DXFPath: genDXF, SkipLoads: genNoLoads})
	if err != nil {
		return err
	}

	printSummary(r.Config, r.Structure)
	if n := len(r.Junctions); n > 0 {
		fmt.Printf("%d mid-member junctions: intersect the hosts before analysis\n\n", n)
	}

	if genOutput != "" {
		f := project.NewStructureFile(r.Config, r.Structure, engine.NewGroups())
		if err := project.SaveStructure(genOutput, f); err != nil {
			return err
		}
		fmt.Printf("Structure %s saved to %s\n", f.ID, genOutput)
	}

	return genExports.write(exportInput{Config: r.Config, Structure: r.Structure})
}

// printSummary writes the category table to stdout.
func printSummary(cfg model.PiperackConfig, s *model.PiperackStructure) {
	fmt.Println()
	fmt.Printf("RACK %s\n", cfg.Name)
	fmt.Println("───────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	summary := s.Summary()
	total := 0
	for _, c := range model.Categories {
		n := summary[c]
		total += n
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s\t%d\t%s\n", c, n, model.FormatMemberList(s.IDs(c)))
	}
	fmt.Fprintf(w, "  total\t%d\t\n", total)
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, t := range s.Tiers {
		fmt.Fprintf(w, "  EL %.3f\t%s\t%d beams\t%d loads\n", t.Elevation(), t.Type, t.BeamCount(), t.LoadCount())
	}
	w.Flush()
	fmt.Println()
}

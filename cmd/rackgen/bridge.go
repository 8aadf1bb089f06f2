package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackGen/internal/bridge"
	"github.com/piwi3910/RackGen/internal/model"
	"github.com/piwi3910/RackGen/internal/project"
)

var (
	brBeams     string
	brStructure string
	brCategory  string
	brParameter int
	brLX        bool
	brLY        bool
	brLZ        bool
	brDJ        bool
	brMain      bool
	brAction    string
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Talk to the desktop analysis helper",
}

var bridgeApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a design parameter set to members",
	Long: `Select members in the analysis application through the helper and
apply a steel design parameter set to them.

Examples:
  rackgen bridge apply --beams "1 To 12 20"
  rackgen bridge apply --structure rack.json --category main_column --parameter 2 --dj`,
	RunE: runBridgeApply,
}

var bridgeSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a single command to the helper",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := bridge.NewClient(bridge.ConfigFromApp(appConfig))
		res := c.Send(cmd.Context(), bridge.Message{Type: "command", Action: brAction})
		if !res.Success {
			return fmt.Errorf("helper unreachable after %d attempts: %s", res.Attempts, res.Error)
		}
		if r, ok := bridge.ParseReply(res.Response); ok {
			fmt.Printf("%s: %s\n", r.Status, r.Message)
			return nil
		}
		fmt.Println(res.Response)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bridgeCmd)
	bridgeCmd.AddCommand(bridgeApplyCmd, bridgeSendCmd)

	bridgeApplyCmd.Flags().StringVar(&brBeams, "beams", "", "Member list, e.g. \"1 To 5 9\" or \"1-5,9\"")
	bridgeApplyCmd.Flags().StringVar(&brStructure, "structure", "", "Take members from a saved structure")
	bridgeApplyCmd.Flags().StringVar(&brCategory, "category", "", "Category of the saved structure to select")
	bridgeApplyCmd.Flags().IntVar(&brParameter, "parameter", 1, "Design parameter set number")
	bridgeApplyCmd.Flags().BoolVar(&brLX, "lx", true, "Set the LX unbraced length")
	bridgeApplyCmd.Flags().BoolVar(&brLY, "ly", true, "Set the LY unbraced length")
	bridgeApplyCmd.Flags().BoolVar(&brLZ, "lz", true, "Set the LZ unbraced length")
	bridgeApplyCmd.Flags().BoolVar(&brDJ, "dj", false, "Set the DJ joint lengths")
	bridgeApplyCmd.Flags().BoolVar(&brMain, "main", true, "Apply the main parameter")

	bridgeSendCmd.Flags().StringVar(&brAction, "action", "read_all_data", "Command action")
}

// selectedBeams resolves --beams or --structure/--category to member IDs.
func selectedBeams() ([]int, error) {
	if brBeams != "" {
		return model.ParseMemberList(brBeams)
	}
	if brStructure == "" {
		return nil, errors.New("either --beams or --structure is required")
	}
	f, err := project.LoadStructure(brStructure)
	if err != nil {
		return nil, err
	}
	if brCategory == "" {
		return model.BeamIDs(f.Structure.Steel()), nil
	}
	for _, c := range model.Categories {
		if string(c) == brCategory {
			return f.Structure.IDs(c), nil
		}
	}
	return nil, fmt.Errorf("unknown category %q", brCategory)
}

func runBridgeApply(cmd *cobra.Command, args []string) error {
	beams, err := selectedBeams()
	if err != nil {
		return err
	}
	if len(beams) == 0 {
		return errors.New("no members selected")
	}

	req := bridge.ParameterRequest{
		Beams:       beams,
		ParameterNo: brParameter,
		LX:          brLX,
		LY:          brLY,
		LZ:          brLZ,
		DJ:          brDJ,
		Main:        brMain,
	}
	c := bridge.NewClient(bridge.ConfigFromApp(appConfig))
	logs, err := bridge.ApplyParameters(cmd.Context(), c, req)
	fmt.Print(bridge.FormatStepLog(logs))
	return err
}

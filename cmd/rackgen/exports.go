package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/export"
	"github.com/piwi3910/RackGen/internal/model"
)

// exportTargets are the optional output files shared by several commands.
type exportTargets struct {
	PDF    string
	XLSX   string
	DXF    string
	Labels string
}

func (e *exportTargets) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&e.PDF, "pdf", "", "Write a PDF report")
	cmd.Flags().StringVar(&e.XLSX, "xlsx", "", "Write an Excel member schedule")
	cmd.Flags().StringVar(&e.DXF, "dxf-out", "", "Write a DXF wireframe")
	cmd.Flags().StringVar(&e.Labels, "labels", "", "Write QR-coded member group labels (PDF)")
}

// exportInput is everything an export may draw from.
type exportInput struct {
	Config     model.PiperackConfig
	Structure  *model.PiperackStructure
	Groups     []*engine.MemberGroup
	Search     []engine.SearchResult
	Comparison []engine.ComparisonResult
	Takeoff    *model.SteelTakeoff
}

func (e *exportTargets) write(in exportInput) error {
	if e.PDF != "" {
		err := export.ExportReportPDF(e.PDF, export.Report{
			Title:      "Piperack Report - " + in.Config.Name,
			Config:     in.Config,
			Structure:  in.Structure,
			Groups:     in.Groups,
			Search:     in.Search,
			Comparison: in.Comparison,
			Takeoff:    in.Takeoff,
			BandStep:   appConfig.RatioBandStep,
		})
		if err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		fmt.Printf("Report written to %s\n", e.PDF)
	}
	if e.XLSX != "" {
		if err := export.ExportScheduleXLSX(e.XLSX, in.Structure, in.Groups, in.Search); err != nil {
			return err
		}
		fmt.Printf("Schedule written to %s\n", e.XLSX)
	}
	if e.DXF != "" {
		if err := export.ExportDXF(e.DXF, in.Structure); err != nil {
			return err
		}
		fmt.Printf("Wireframe written to %s\n", e.DXF)
	}
	if e.Labels != "" {
		if err := export.ExportGroupLabels(e.Labels, in.Groups, in.Search); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		fmt.Printf("Labels written to %s\n", e.Labels)
	}
	return nil
}

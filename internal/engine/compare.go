package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/RackGen/internal/model"
)

// ComparisonScenario defines a named candidate list and allowable ratio to
// compare.
type ComparisonScenario struct {
	Name           string
	Profiles       []string
	AllowableRatio float64
}

// ComparisonResult holds the search outcome and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Search      SearchResult
	Err         error
	FailedCount int
	Average     float64
	SteelWeight float64 // kg, members at the chosen profile
}

// CompareScenarios runs a profile search for each scenario over the same
// members and returns the results in scenario order. This enables
// side-by-side comparison of candidate families and allowable ratios.
func CompareScenarios(ctx context.Context, b GroupBackend, members []model.Beam3D, scenarios []ComparisonScenario, runAnalysis AnalysisFunc) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))
	ids := model.BeamIDs(members)

	for _, scenario := range scenarios {
		cr := ComparisonResult{Scenario: scenario}

		g, err := NewMemberGroup(ctx, b, "", ids, scenario.Profiles, scenario.AllowableRatio)
		if err == nil {
			g.Name = scenario.Name
			cr.Search, err = Search(ctx, g, runAnalysis)
		}
		if err != nil {
			cr.Err = err
			results = append(results, cr)
			continue
		}

		cr.FailedCount = len(cr.Search.Result.Failed)
		cr.Average = cr.Search.Result.Average
		if w, err := model.SectionWeight(cr.Search.Profile); err == nil {
			for _, m := range members {
				cr.SteelWeight += m.Length() * w
			}
		}
		results = append(results, cr)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current candidates, varying the section family and allowable ratio
// to show what-if alternatives.
func BuildDefaultScenarios(profiles []string, allowable float64) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:           "Current Settings",
			Profiles:       profiles,
			AllowableRatio: allowable,
		},
	}

	family := ""
	if len(profiles) > 0 {
		if s, ok := model.FindSection(profiles[0]); ok {
			family = s.Family()
		}
	}

	// Scenario: hollow sections instead of open ones
	if family != "SHS" {
		scenarios = append(scenarios, ComparisonScenario{
			Name:           "Square Hollow Sections",
			Profiles:       model.SectionNames(model.SectionsByFamily("SHS")),
			AllowableRatio: allowable,
		})
	}

	// Scenario: wide parallel flange beams
	if family != "ISWPB" {
		scenarios = append(scenarios, ComparisonScenario{
			Name:           "Wide Parallel Flange",
			Profiles:       model.SectionNames(model.SectionsByFamily("ISWPB")),
			AllowableRatio: allowable,
		})
	}

	// Scenario: design margin on the allowable ratio
	if allowable > 0.9 {
		scenarios = append(scenarios, ComparisonScenario{
			Name:           fmt.Sprintf("Allowable %.2f", 0.9),
			Profiles:       profiles,
			AllowableRatio: 0.9,
		})
	}

	return scenarios
}

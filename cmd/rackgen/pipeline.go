package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/piwi3910/RackGen/internal/backend"
	"github.com/piwi3910/RackGen/internal/engine"
	"github.com/piwi3910/RackGen/internal/importer"
	"github.com/piwi3910/RackGen/internal/model"
)

// rack is one generated or imported model held in the memory backend.
type rack struct {
	Config    model.PiperackConfig
	Result    *engine.Result
	Backend   *backend.Memory
	Designer  *backend.Designer
	Snapshot  *backend.Snapshot
	Structure *model.PiperackStructure
	// Junctions are mid-member connections left for the analysis program
	// to intersect.
	Junctions []engine.Junction
	Warnings  []string
}

// rackOptions control how a rack is built.
type rackOptions struct {
	// DXFPath replaces the generated members with the lines of a drawing.
	DXFPath string
	// RatioScale scales the span-over-weight design ratio.
	RatioScale float64
	// SkipLoads leaves the tiers without preset loads.
	SkipLoads bool
}

// buildRack generates the configured rack, materializes it in a memory
// backend, classifies the snapshot and applies the tier loads.
func buildRack(ctx context.Context, cfg model.PiperackConfig, opts rackOptions) (*rack, error) {
	res, err := engine.NewGenerator(cfg).Generate()
	if err != nil {
		return nil, err
	}
	r := &rack{Config: res.Config, Result: res}
	if res.ExceedsExpansionBay() {
		r.warn(fmt.Sprintf("Portal spacing %.3f m exceeds the maximum expansion bay %.3f m", res.MaxPortalSpacing, res.Config.MaxExpansionBay))
	}

	members := res.Members()
	if opts.DXFPath != "" {
		imp := importer.ImportDXFBeams(opts.DXFPath)
		for _, w := range imp.Warnings {
			r.warn(w)
		}
		if len(imp.Errors) > 0 {
			return nil, fmt.Errorf("failed to import %s: %s", opts.DXFPath, strings.Join(imp.Errors, "; "))
		}
		members = imp.Beams
	}

	r.Backend = backend.NewMemory()
	if opts.RatioScale > 0 {
		r.Backend.Ratio = backend.SpanRatio(opts.RatioScale)
	}
	r.Designer = backend.NewDesigner(r.Backend)

	r.Snapshot, err = backend.Materialize(ctx, r.Backend, nil, members)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize rack: %w", err)
	}
	if r.Snapshot.Skipped > 0 {
		r.warn(fmt.Sprintf("%d members could not be materialized", r.Snapshot.Skipped))
	}

	r.Junctions = engine.Junctions(sortedBeams(r.Snapshot.Beams))
	if n := len(r.Junctions); n > 0 {
		slog.Info("rackgen: members meet part-way along hosts", "junctions", n)
	}

	r.Structure = engine.Classify(r.Snapshot.Beams, res.ClassifyInput())
	if n := len(r.Structure.Unclassified); n > 0 {
		r.warn(fmt.Sprintf("%d members are unclassified: %s", n, model.FormatMemberList(r.Structure.IDs(model.CategoryUnclassified))))
	}

	if !opts.SkipLoads {
		if err := r.applyLoads(ctx); err != nil {
			return r, err
		}
	}
	return r, nil
}

func sortedBeams(beams map[int]model.Beam3D) []model.Beam3D {
	ids := slices.Sorted(maps.Keys(beams))
	out := make([]model.Beam3D, 0, len(ids))
	for _, id := range ids {
		out = append(out, beams[id])
	}
	return out
}

func (r *rack) warn(msg string) {
	slog.Warn("rackgen: " + msg)
	r.Warnings = append(r.Warnings, msg)
}

// applyLoads attaches the configured preset loads, component self-weights
// and derived cases to each tier and pushes them to the backend.
func (r *rack) applyLoads(ctx context.Context) error {
	if len(r.Config.Ducts) > 0 && !r.Config.HasTierType(model.TierElectricalInstrumentation) {
		r.warn(fmt.Sprintf("%d ducts ignored: no electrical tier", len(r.Config.Ducts)))
	}
	transforms := engine.DefaultLoadTransforms()
	var errs []error
	for _, t := range r.Structure.Tiers {
		tc, ok := r.Config.TierConfigAt(t.Elevation() - r.Config.Base.Y)
		if !ok {
			continue
		}
		if err := t.AddLoads(model.DefaultTierLoads(tc)...); err != nil {
			return err
		}
		if err := t.AddLoads(r.Config.ComponentLoads(tc)...); err != nil {
			return err
		}
		if _, err := engine.TransformTier(t, transforms); err != nil {
			return err
		}
		n, err := backend.ApplyTierLoads(ctx, r.Backend, r.Snapshot, t)
		if err != nil {
			errs = append(errs, err)
		}
		slog.Debug("rackgen: tier loads applied", "elevation", t.Elevation(), "loads", n)
	}
	return errors.Join(errs...)
}

// optimizeOptions select candidates and limits for a profile search.
type optimizeOptions struct {
	Profiles     []string
	Allowable    float64
	PollInterval time.Duration
	MaxWait      time.Duration
}

func (r *rack) runAnalysis(opts optimizeOptions) engine.AnalysisFunc {
	return r.Designer.RunAnalysis(opts.PollInterval, opts.MaxWait)
}

// optimize groups the steel members by category and searches each group.
func (r *rack) optimize(ctx context.Context, opts optimizeOptions) (*engine.Groups, []engine.SearchResult, error) {
	if err := backend.Analyze(ctx, r.Backend, opts.PollInterval, opts.MaxWait); err != nil {
		return nil, nil, err
	}
	groups, err := engine.GroupsFromStructure(ctx, r.Designer, r.Structure, opts.Profiles, opts.Allowable)
	if err != nil {
		return nil, nil, err
	}
	results, err := engine.New(r.runAnalysis(opts)).Optimize(ctx, groups)
	if err != nil {
		return groups, results, err
	}
	r.applyProfiles(groups, results)
	return groups, results, nil
}

// applyProfiles copies each chosen profile onto the structure's members.
func (r *rack) applyProfiles(groups *engine.Groups, results []engine.SearchResult) {
	chosen := map[int]string{}
	for _, res := range results {
		g, ok := groups.ByID(res.GroupID)
		if !ok || res.Index < 0 {
			continue
		}
		for _, id := range g.Members {
			chosen[id] = res.Profile
		}
	}
	r.Structure.SetProfiles(chosen)
}

// compare runs every scenario over the steel members.
func (r *rack) compare(ctx context.Context, opts optimizeOptions, scenarios []engine.ComparisonScenario) []engine.ComparisonResult {
	return engine.CompareScenarios(ctx, r.Designer, r.Structure.Steel(), scenarios, r.runAnalysis(opts))
}

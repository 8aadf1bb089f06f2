package backend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Designer adapts a Backend to the member-group optimizer: profiles are
// assigned by catalog name through a session cache and ratios are read from
// steel design results.
type Designer struct {
	Backend Backend
	Cache   *ProfileCache
}

func NewDesigner(b Backend) *Designer {
	return &Designer{Backend: b, Cache: NewProfileCache(b)}
}

func (d *Designer) ProfileName(ctx context.Context, beamID int) (string, error) {
	return d.Backend.ProfileName(ctx, beamID)
}

// AssignProfileByName assigns a catalog profile to every beam. Every beam
// is attempted; failures are joined.
func (d *Designer) AssignProfileByName(ctx context.Context, beamIDs []int, profile string) error {
	ref, err := d.Cache.Get(ctx, profile)
	if err != nil {
		return err
	}
	var errs []error
	for _, id := range beamIDs {
		if err := d.Backend.AssignProfile(ctx, id, ref); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to assign %s to %d of %d members: %w", profile, len(errs), len(beamIDs), errors.Join(errs...))
	}
	return nil
}

// CriticalRatio returns the member's critical design ratio.
func (d *Designer) CriticalRatio(ctx context.Context, beamID int) (float64, error) {
	res, err := d.Backend.SteelDesignResult(ctx, beamID)
	if err != nil {
		return 0, err
	}
	return res.CriticalRatio, nil
}

// RunAnalysis returns a function that starts an analysis and waits for it
// using the given poll settings.
func (d *Designer) RunAnalysis(interval, maxWait time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		return Analyze(ctx, d.Backend, interval, maxWait)
	}
}

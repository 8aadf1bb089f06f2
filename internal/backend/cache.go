package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/piwi3910/RackGen/internal/model"
)

// ProfileCache memoizes catalog profile references for one session so each
// profile is created in the backend at most once.
type ProfileCache struct {
	backend Property
	refs    map[string]int
}

func NewProfileCache(b Property) *ProfileCache {
	return &ProfileCache{backend: b, refs: map[string]int{}}
}

// Get returns the backend reference for a catalog profile, creating it on
// first use.
func (c *ProfileCache) Get(ctx context.Context, name string) (int, error) {
	if ref, ok := c.refs[name]; ok {
		return ref, nil
	}
	country := model.CountryFor(name)
	ref, err := c.backend.CreateProfileFromCatalog(ctx, country, name)
	if err != nil {
		return 0, fmt.Errorf("failed to create profile %s: %w", name, err)
	}
	slog.Debug("backend: profile created", "name", name, "country", country, "ref", ref)
	c.refs[name] = ref
	return ref, nil
}

// Len returns the number of cached profiles.
func (c *ProfileCache) Len() int {
	return len(c.refs)
}

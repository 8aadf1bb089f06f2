package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/piwi3910/RackGen/internal/model"
)

// ErrNoCandidates is returned when a group has no profile to try.
var ErrNoCandidates = errors.New("member group has no candidate profiles")

// GroupBackend is the part of the structural backend a member group talks
// to: profile lookup and assignment by catalog name, and per-member design
// ratios from the last analysis.
type GroupBackend interface {
	ProfileName(ctx context.Context, beamID int) (string, error)
	AssignProfileByName(ctx context.Context, beamIDs []int, profile string) error
	CriticalRatio(ctx context.Context, beamID int) (float64, error)
}

// AnalysisFunc re-runs the structural analysis after a profile change.
type AnalysisFunc func(ctx context.Context) error

// GroupResult is the score of one candidate profile for a group.
type GroupResult struct {
	Profile   string          `json:"profile"`
	Average   float64         `json:"average"`
	Deviation float64         `json:"deviation"`
	Failed    []MemberRatio   `json:"failed"`
	Ratios    map[int]float64 `json:"ratios"`
	Skipped   []int           `json:"skipped,omitempty"`
}

// Adequate reports whether at least one member was scored and none failed.
func (r GroupResult) Adequate() bool {
	return len(r.Ratios) > 0 && len(r.Failed) == 0
}

// MaxRatio returns the highest scored ratio.
func (r GroupResult) MaxRatio() float64 {
	max := 0.0
	for _, v := range r.Ratios {
		if v > max {
			max = v
		}
	}
	return max
}

// MemberGroup binds a set of members to an ordered list of candidate
// profiles, lightest first, and keeps a score per evaluated candidate.
type MemberGroup struct {
	ID             string              `json:"id"`
	Name           string              `json:"name,omitempty"`
	Members        []int               `json:"members"`
	Profiles       []string            `json:"profiles"`
	Preference     string              `json:"preference"`
	AllowableRatio float64             `json:"allowable_ratio"`
	Results        map[int]GroupResult `json:"results"`

	backend GroupBackend
}

// NewMemberGroup creates a group and derives its preferred profile from the
// profiles currently assigned to its members. An empty id gets a generated
// one.
func NewMemberGroup(ctx context.Context, b GroupBackend, id string, members []int, profiles []string, allowable float64) (*MemberGroup, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("member group %q has no members", id)
	}
	if allowable <= 0 {
		return nil, fmt.Errorf("member group %q: allowable ratio must be positive, got %.3f", id, allowable)
	}
	if id == "" {
		id = uuid.New().String()[:8]
	}
	g := &MemberGroup{
		ID:             id,
		Members:        append([]int(nil), members...),
		Profiles:       append([]string(nil), profiles...),
		AllowableRatio: allowable,
		Results:        map[int]GroupResult{},
		backend:        b,
	}
	g.Preference = g.majorityProfile(ctx)
	return g, nil
}

// Bind attaches a backend to a group restored from disk.
func (g *MemberGroup) Bind(b GroupBackend) {
	g.backend = b
	if g.Results == nil {
		g.Results = map[int]GroupResult{}
	}
}

// majorityProfile returns the most common profile among the members. Ties
// go to the profile seen first; members whose profile cannot be read are
// ignored.
func (g *MemberGroup) majorityProfile(ctx context.Context) string {
	counts := map[string]int{}
	var order []string
	for _, id := range g.Members {
		name, err := g.backend.ProfileName(ctx, id)
		if err != nil {
			slog.Debug("optimizer: profile unknown", "group", g.ID, "member", id, "error", err)
			continue
		}
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	best := ""
	for _, name := range order {
		if counts[name] > counts[best] {
			best = name
		}
	}
	return best
}

// Label returns the name when set, else the ID.
func (g *MemberGroup) Label() string {
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}

// AssignInitial assigns the preferred profile, or the first candidate when
// the members had none, to every member.
func (g *MemberGroup) AssignInitial(ctx context.Context) error {
	profile := g.Preference
	if profile == "" {
		if len(g.Profiles) == 0 {
			return ErrNoCandidates
		}
		profile = g.Profiles[0]
	}
	if err := g.backend.AssignProfileByName(ctx, g.Members, profile); err != nil {
		return fmt.Errorf("failed to assign initial profile to group %s: %w", g.Label(), err)
	}
	g.Preference = profile
	return nil
}

// Assign assigns candidate index to every member.
func (g *MemberGroup) Assign(ctx context.Context, index int) error {
	if index < 0 || index >= len(g.Profiles) {
		return fmt.Errorf("profile index %d out of range for group %s (%d candidates)", index, g.Label(), len(g.Profiles))
	}
	if err := g.backend.AssignProfileByName(ctx, g.Members, g.Profiles[index]); err != nil {
		return fmt.Errorf("failed to assign %s to group %s: %w", g.Profiles[index], g.Label(), err)
	}
	return nil
}

// Score reads each member's ratio for the currently assigned candidate and
// stores the result under index. Members without a ratio are skipped.
func (g *MemberGroup) Score(ctx context.Context, index int) GroupResult {
	res := GroupResult{Ratios: map[int]float64{}}
	if index >= 0 && index < len(g.Profiles) {
		res.Profile = g.Profiles[index]
	}

	values := make([]float64, 0, len(g.Members))
	for _, id := range g.Members {
		r, err := g.backend.CriticalRatio(ctx, id)
		if err != nil {
			slog.Warn("optimizer: skipping member without ratio", "group", g.Label(), "member", id, "error", err)
			res.Skipped = append(res.Skipped, id)
			continue
		}
		res.Ratios[id] = r
		values = append(values, r)
	}

	res.Average = CalculateAverage(values)
	res.Deviation = CalculateDeviation(values)
	res.Failed = FailedMembers(res.Ratios, g.AllowableRatio)
	g.Results[index] = res
	return res
}

// Evaluate assigns candidate index and scores it. The backend must produce
// ratios for the new profile without a separate analysis run; use Search
// when an analysis is needed in between.
func (g *MemberGroup) Evaluate(ctx context.Context, index int) (GroupResult, error) {
	if err := g.Assign(ctx, index); err != nil {
		return GroupResult{}, err
	}
	return g.Score(ctx, index), nil
}

// SearchResult is the outcome of a profile search for one group.
type SearchResult struct {
	GroupID   string      `json:"group_id"`
	Index     int         `json:"index"`
	Profile   string      `json:"profile"`
	Result    GroupResult `json:"result"`
	Adequate  bool        `json:"adequate"`
	Evaluated int         `json:"evaluated"`
}

// Search tries the group's candidates in order, re-running the analysis
// after each assignment, and stops at the first candidate with no failed
// members. When none is adequate the candidate with the fewest failures
// wins, then the lowest average. The winning profile is left assigned.
func Search(ctx context.Context, g *MemberGroup, runAnalysis AnalysisFunc) (SearchResult, error) {
	if len(g.Profiles) == 0 {
		return SearchResult{}, ErrNoCandidates
	}

	best := SearchResult{GroupID: g.ID, Index: -1}
	last := -1
	for i := range g.Profiles {
		if err := ctx.Err(); err != nil {
			return best, err
		}
		if err := g.Assign(ctx, i); err != nil {
			slog.Warn("optimizer: candidate skipped", "group", g.Label(), "profile", g.Profiles[i], "error", err)
			continue
		}
		last = i
		if runAnalysis != nil {
			if err := runAnalysis(ctx); err != nil {
				return best, fmt.Errorf("failed to analyse group %s with %s: %w", g.Label(), g.Profiles[i], err)
			}
		}
		res := g.Score(ctx, i)
		best.Evaluated++
		slog.Debug("optimizer: candidate scored", "group", g.Label(), "profile", res.Profile,
			"average", res.Average, "failed", len(res.Failed), "skipped", len(res.Skipped))

		if len(res.Ratios) == 0 {
			continue
		}
		if res.Adequate() {
			best.Index, best.Result, best.Adequate = i, res, true
			break
		}
		if best.Index < 0 || better(res, best.Result) {
			best.Index, best.Result = i, res
		}
	}

	if best.Index < 0 {
		return best, fmt.Errorf("no candidate profile could be scored for group %s", g.Label())
	}
	best.Profile = g.Profiles[best.Index]
	g.Preference = best.Profile

	if last != best.Index {
		if err := g.Assign(ctx, best.Index); err != nil {
			return best, err
		}
		if runAnalysis != nil {
			if err := runAnalysis(ctx); err != nil {
				return best, fmt.Errorf("failed to analyse group %s with %s: %w", g.Label(), best.Profile, err)
			}
		}
	}
	return best, nil
}

func better(a, b GroupResult) bool {
	if len(a.Failed) != len(b.Failed) {
		return len(a.Failed) < len(b.Failed)
	}
	return a.Average < b.Average
}

// Optimizer runs profile searches over a collection of member groups.
type Optimizer struct {
	RunAnalysis AnalysisFunc
}

func New(runAnalysis AnalysisFunc) *Optimizer {
	return &Optimizer{RunAnalysis: runAnalysis}
}

// Optimize searches every group in order. A group whose search fails is
// logged and reported with Index -1; the remaining groups still run.
func (o *Optimizer) Optimize(ctx context.Context, groups *Groups) ([]SearchResult, error) {
	results := make([]SearchResult, 0, groups.Len())
	for _, g := range groups.All() {
		res, err := Search(ctx, g, o.RunAnalysis)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}
			slog.Warn("optimizer: group search failed", "group", g.Label(), "error", err)
			res = SearchResult{GroupID: g.ID, Index: -1}
		}
		results = append(results, res)
	}
	return results, nil
}

// GroupsFromStructure creates one member group per populated steel
// category of a classified structure, named after the category.
func GroupsFromStructure(ctx context.Context, b GroupBackend, s *model.PiperackStructure, profiles []string, allowable float64) (*Groups, error) {
	groups := NewGroups()
	for _, c := range model.Categories {
		if c == model.CategoryConcrete || c == model.CategoryUnclassified {
			continue
		}
		ids := s.IDs(c)
		if len(ids) == 0 {
			continue
		}
		g, err := NewMemberGroup(ctx, b, "", ids, profiles, allowable)
		if err != nil {
			return nil, err
		}
		g.Name = string(c)
		groups.Add(g)
	}
	return groups, nil
}

// SortedFailures merges the failed members of every result, worst first.
func SortedFailures(results []SearchResult) []MemberRatio {
	var out []MemberRatio
	for _, r := range results {
		out = append(out, r.Result.Failed...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ratio != out[j].Ratio {
			return out[i].Ratio > out[j].Ratio
		}
		return out[i].ID < out[j].ID
	})
	return out
}

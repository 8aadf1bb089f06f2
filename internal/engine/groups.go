package engine

import (
	"errors"
	"fmt"
)

// ErrGroupNotFound is returned for unknown group indices or IDs.
var ErrGroupNotFound = errors.New("member group not found")

// Groups is an ordered collection of member groups.
type Groups struct {
	Items []*MemberGroup `json:"groups"`
}

func NewGroups() *Groups {
	return &Groups{Items: []*MemberGroup{}}
}

func (gs *Groups) Len() int { return len(gs.Items) }

// All returns the groups in order.
func (gs *Groups) All() []*MemberGroup { return gs.Items }

func (gs *Groups) Add(g *MemberGroup) {
	gs.Items = append(gs.Items, g)
}

func (gs *Groups) check(i int) error {
	if i < 0 || i >= len(gs.Items) {
		return fmt.Errorf("%w: index %d of %d", ErrGroupNotFound, i, len(gs.Items))
	}
	return nil
}

func (gs *Groups) Get(i int) (*MemberGroup, error) {
	if err := gs.check(i); err != nil {
		return nil, err
	}
	return gs.Items[i], nil
}

func (gs *Groups) Set(i int, g *MemberGroup) error {
	if err := gs.check(i); err != nil {
		return err
	}
	gs.Items[i] = g
	return nil
}

func (gs *Groups) Delete(i int) error {
	if err := gs.check(i); err != nil {
		return err
	}
	gs.Items = append(gs.Items[:i], gs.Items[i+1:]...)
	return nil
}

func (gs *Groups) indexOf(id string) int {
	for i, g := range gs.Items {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// ByID returns the group with the given ID.
func (gs *Groups) ByID(id string) (*MemberGroup, bool) {
	if i := gs.indexOf(id); i >= 0 {
		return gs.Items[i], true
	}
	return nil, false
}

// SetByID replaces the group with the given ID.
func (gs *Groups) SetByID(id string, g *MemberGroup) error {
	i := gs.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}
	gs.Items[i] = g
	return nil
}

// Bind attaches b to every group, after loading from disk.
func (gs *Groups) Bind(b GroupBackend) {
	for _, g := range gs.Items {
		g.Bind(b)
	}
}

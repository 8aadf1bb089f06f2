package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroups_IndexOperations(t *testing.T) {
	gs := NewGroups()
	a := &MemberGroup{ID: "a"}
	b := &MemberGroup{ID: "b"}
	c := &MemberGroup{ID: "c"}
	gs.Add(a)
	gs.Add(b)

	got, err := gs.Get(1)
	require.NoError(t, err)
	assert.Same(t, b, got)

	require.NoError(t, gs.Set(1, c))
	got, _ = gs.Get(1)
	assert.Same(t, c, got)

	require.NoError(t, gs.Delete(0))
	assert.Equal(t, 1, gs.Len())

	_, err = gs.Get(3)
	assert.ErrorIs(t, err, ErrGroupNotFound)
	assert.ErrorIs(t, gs.Set(-1, a), ErrGroupNotFound)
	assert.ErrorIs(t, gs.Delete(1), ErrGroupNotFound)
}

func TestGroups_ByID(t *testing.T) {
	gs := NewGroups()
	gs.Add(&MemberGroup{ID: "a"})
	gs.Add(&MemberGroup{ID: "b", Name: "old"})

	g, ok := gs.ByID("b")
	require.True(t, ok)
	assert.Equal(t, "old", g.Name)

	require.NoError(t, gs.SetByID("b", &MemberGroup{ID: "b", Name: "new"}))
	g, _ = gs.ByID("b")
	assert.Equal(t, "new", g.Name)

	_, ok = gs.ByID("zz")
	assert.False(t, ok)
	assert.ErrorIs(t, gs.SetByID("zz", &MemberGroup{}), ErrGroupNotFound)
}

func TestGroups_BindRestoresResults(t *testing.T) {
	gs := NewGroups()
	gs.Add(&MemberGroup{ID: "a"})
	gs.Bind(newFakeDesigner(nil, nil))

	g, _ := gs.ByID("a")
	assert.NotNil(t, g.Results)
}

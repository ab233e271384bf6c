package movement

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ringsim/internal/ring"
)

func info(id int, contents ...string) ring.ServerInfo {
	s := ring.ServerInfo{ID: id}
	for _, c := range contents {
		s.Blobs = append(s.Blobs, ring.Blob{ID: c})
	}
	return s
}

func TestDiff(t *testing.T) {
	before := []ring.ServerInfo{info(1, "a", "b", "gone"), info(2, "c")}
	after := []ring.ServerInfo{info(2, "a", "c", "new"), info(3, "b")}

	rep := Diff(before, after)

	assert.Equal(t, 3, rep.Total)
	assert.Equal(t, []Move{
		{Content: "a", From: 1, To: 2},
		{Content: "b", From: 1, To: 3},
	}, rep.Moves)
	assert.InDelta(t, 2.0/3.0, rep.Fraction(), 1e-9)
}

func TestDiff_Empty(t *testing.T) {
	rep := Diff(nil, nil)
	assert.Zero(t, rep.Total)
	assert.Empty(t, rep.Moves)
	assert.Zero(t, rep.Fraction())
}

func TestDiff_AcrossRebuild(t *testing.T) {
	r := ring.NewRing()
	require.NoError(t, r.AddServer(1))
	require.NoError(t, r.AddServer(2))
	require.NoError(t, r.AddBlob("abc"))
	before := r.Servers()

	r.RemoveServer(1)

	rep := Diff(before, r.Servers())
	require.Len(t, rep.Moves, 1)
	assert.Equal(t, Move{Content: "abc", From: 1, To: 2}, rep.Moves[0])
}

func TestClassic_Owner(t *testing.T) {
	c := NewClassic(nil)
	_, ok := c.Owner("x")
	assert.False(t, ok, "empty classic ring should have no owner")

	c = NewClassic([]int{1, 2, 3})
	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("key-%d", i)
		id, ok := c.Owner(key)
		require.True(t, ok)
		assert.Contains(t, []int{1, 2, 3}, id)

		again, _ := c.Owner(key)
		assert.Equal(t, id, again, "owner for %s not deterministic", key)
	}
}

func TestClassicDiff_SameMembership(t *testing.T) {
	servers := []ring.ServerInfo{info(1, "a", "b"), info(2, "c", "d")}
	rep := ClassicDiff(servers, servers)
	assert.Equal(t, 4, rep.Total)
	assert.Empty(t, rep.Moves)
}

func TestClassicDiff_RemovedServerOnlyLosesItsBlobs(t *testing.T) {
	var contents []string
	for i := 0; i < 200; i++ {
		contents = append(contents, fmt.Sprintf("blob-%d", i))
	}
	before := []ring.ServerInfo{info(1, contents...), info(2), info(3)}
	after := []ring.ServerInfo{info(1, contents...), info(2)}

	rep := ClassicDiff(before, after)
	assert.Equal(t, 200, rep.Total)
	for _, m := range rep.Moves {
		assert.NotEqual(t, 3, m.To, "blob %s moved onto removed server", m.Content)
	}
}
